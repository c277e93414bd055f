/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package erased_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/rtti/erased"
)

type Vector3 struct{ X, Y, Z float32 }

func (v Vector3) String() string { return fmt.Sprintf("(%g,%g,%g)", v.X, v.Y, v.Z) }

func TestZeroValue(t *testing.T) {
	var v erased.Value

	assert.False(t, v.IsValid())
	assert.Equal(t, erased.Invalid, v.Mode())
	assert.Nil(t, v.Type())
	assert.Nil(t, v.Interface())
	assert.Nil(t, v.Pointer())
	assert.Equal(t, "erased.Value(invalid)", v.String())

	_, err := erased.As[int](v)
	assert.ErrorIs(t, err, erased.ErrInvalid)
	_, err = erased.PtrAs[int](v)
	assert.ErrorIs(t, err, erased.ErrInvalid)
}

func TestOwn_CopiesValue(t *testing.T) {
	src := Vector3{X: 1}
	v := erased.Own(src)

	require.True(t, v.IsValid())
	assert.Equal(t, erased.Owned, v.Mode())
	assert.True(t, v.Owned())
	assert.Equal(t, reflect.TypeFor[Vector3](), v.Type())

	p, err := erased.PtrAs[Vector3](v)
	require.NoError(t, err)
	p.X = 42
	assert.Equal(t, float32(1), src.X, "owned value must not alias the source")

	got, err := erased.As[Vector3](v)
	require.NoError(t, err)
	assert.Equal(t, float32(42), got.X)
}

func TestRef_Borrows(t *testing.T) {
	src := Vector3{X: 1}
	v := erased.Ref(&src)

	assert.Equal(t, erased.Borrowed, v.Mode())
	assert.False(t, v.Owned())

	p, err := erased.PtrAs[Vector3](v)
	require.NoError(t, err)
	assert.Same(t, &src, p)
	p.Y = 7
	assert.Equal(t, float32(7), src.Y)

	assert.False(t, erased.Ref[int](nil).IsValid())
}

func TestOf(t *testing.T) {
	v := erased.Of(3.5)
	assert.Equal(t, reflect.TypeFor[float64](), v.Type())
	assert.Equal(t, 3.5, erased.MustAs[float64](v))

	// An erased.Value passes through unchanged.
	src := 1
	ref := erased.Ref(&src)
	assert.Equal(t, erased.Borrowed, erased.Of(ref).Mode())

	assert.False(t, erased.Of(nil).IsValid())
}

func TestRefOf(t *testing.T) {
	n := 5
	v, err := erased.RefOf(&n)
	require.NoError(t, err)
	assert.Equal(t, erased.Borrowed, v.Mode())
	assert.Equal(t, reflect.TypeFor[int](), v.Type())

	for _, bad := range []any{nil, 5, (*int)(nil)} {
		_, err := erased.RefOf(bad)
		assert.ErrorIs(t, err, erased.ErrNotPointer, "RefOf(%#v)", bad)
	}
}

func TestFromReflect_KeepsStaticType(t *testing.T) {
	var s fmt.Stringer = Vector3{}
	rv := reflect.ValueOf(&s).Elem()

	v := erased.FromReflect(rv)
	assert.Equal(t, reflect.TypeFor[fmt.Stringer](), v.Type())
	assert.False(t, erased.FromReflect(reflect.Value{}).IsValid())
}

func TestAs_TypeMismatch(t *testing.T) {
	v := erased.Own(int32(7))

	_, err := erased.As[int64](v)
	assert.ErrorIs(t, err, erased.ErrTypeMismatch)
	_, err = erased.PtrAs[int64](v)
	assert.ErrorIs(t, err, erased.ErrTypeMismatch)
	assert.Panics(t, func() { erased.MustAs[string](v) })
}

func TestAs_Interface(t *testing.T) {
	v := erased.Own(Vector3{X: 1, Y: 2, Z: 3})

	s, err := erased.As[fmt.Stringer](v)
	require.NoError(t, err)
	assert.Equal(t, "(1,2,3)", s.String())

	_, err = erased.As[error](v)
	assert.ErrorIs(t, err, erased.ErrTypeMismatch)
}

func TestAs_NilInterface(t *testing.T) {
	var s fmt.Stringer
	v := erased.FromReflect(reflect.ValueOf(&s).Elem())
	require.True(t, v.IsValid())

	var (
		got any
		err error
	)
	require.NotPanics(t, func() { got, err = erased.As[any](v) })
	require.NoError(t, err)
	assert.Nil(t, got)

	str, err := erased.As[fmt.Stringer](v)
	require.NoError(t, err)
	assert.Nil(t, str)
}

func TestRelease(t *testing.T) {
	owned := erased.Own(Vector3{X: 1})
	p, _ := erased.PtrAs[Vector3](owned)
	owned.Release()
	assert.False(t, owned.IsValid())
	assert.Equal(t, Vector3{}, *p, "owned storage is zeroed")

	src := Vector3{X: 1}
	borrowed := erased.Ref(&src)
	borrowed.Release()
	assert.False(t, borrowed.IsValid())
	assert.Equal(t, float32(1), src.X, "borrowed referent is untouched")

	var zero erased.Value
	zero.Release()
	assert.False(t, zero.IsValid())
}

func TestReconstruct(t *testing.T) {
	src := Vector3{X: 1}
	v := erased.Ref(&src)

	byValue, err := v.Reconstruct(reflect.TypeFor[Vector3]())
	require.NoError(t, err)
	assert.Equal(t, src, byValue.Interface())

	byPtr, err := v.Reconstruct(reflect.TypeFor[*Vector3]())
	require.NoError(t, err)
	assert.Same(t, &src, byPtr.Interface())

	asIface, err := v.Reconstruct(reflect.TypeFor[fmt.Stringer]())
	require.NoError(t, err)
	assert.Equal(t, "(1,0,0)", asIface.Interface().(fmt.Stringer).String())

	_, err = v.Reconstruct(reflect.TypeFor[int]())
	assert.ErrorIs(t, err, erased.ErrTypeMismatch)

	var invalid erased.Value
	nilPtr, err := invalid.Reconstruct(reflect.TypeFor[*Vector3]())
	require.NoError(t, err)
	assert.True(t, nilPtr.IsNil())
	_, err = invalid.Reconstruct(reflect.TypeFor[int]())
	assert.ErrorIs(t, err, erased.ErrInvalid)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "owned", erased.Owned.String())
	assert.Equal(t, "borrowed", erased.Borrowed.String())
	assert.Equal(t, "invalid", erased.Invalid.String())
	assert.Equal(t, "erased.Value(owned int)", erased.Own(1).String())
}
