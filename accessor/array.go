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

package accessor

import (
	"fmt"
	"reflect"

	"dirpx.dev/rtti/apis"
)

// Array is an apis.ArrayAccessor bound to a slice field of type S in struct C.
//
// The accessor always goes through the address of the field, so reads and
// writes hit the live slice of the instance, and Append is visible to later
// calls.
type Array[C any, S ~[]E, E any] struct {
	name         string
	typeName     string
	elemTypeName string
	ref          func(*C) *S
}

// Ensure Array implements apis.ArrayAccessor.
var _ apis.ArrayAccessor = (*Array[struct{}, []int, int])(nil)

// NewArray binds an array accessor. ref must return the address of the slice
// field inside its argument, e.g. func(s *Scene) *[]Node { return &s.Nodes }.
func NewArray[C any, S ~[]E, E any](name, typeName, elemTypeName string, ref func(*C) *S) *Array[C, S, E] {
	return &Array[C, S, E]{name: name, typeName: typeName, elemTypeName: elemTypeName, ref: ref}
}

// Name returns the registered field name.
func (a *Array[C, S, E]) Name() string { return a.name }

// TypeName returns the declared field type.
func (a *Array[C, S, E]) TypeName() string { return a.typeName }

// ElemTypeName returns the declared element type.
func (a *Array[C, S, E]) ElemTypeName() string { return a.elemTypeName }

// Owner returns C.
func (a *Array[C, S, E]) Owner() reflect.Type { return reflect.TypeFor[C]() }

// ElemType returns E.
func (a *Array[C, S, E]) ElemType() reflect.Type { return reflect.TypeFor[E]() }

// Len returns the length of the slice in instance.
func (a *Array[C, S, E]) Len(instance any) (int, error) {
	s, err := a.slice(instance)
	if err != nil {
		return 0, err
	}
	return len(*s), nil
}

// Get returns a *E pointing at element i of the slice in instance.
func (a *Array[C, S, E]) Get(instance any, i int) (any, error) {
	s, err := a.slice(instance)
	if err != nil {
		return nil, err
	}
	if err := a.check(s, i); err != nil {
		return nil, err
	}
	return &(*s)[i], nil
}

// Set overwrites element i of the slice in instance.
func (a *Array[C, S, E]) Set(instance any, i int, value any) error {
	s, err := a.slice(instance)
	if err != nil {
		return err
	}
	if err := a.check(s, i); err != nil {
		return err
	}
	v, err := valueOf[E](value)
	if err != nil {
		return fmt.Errorf("%s[%d]: %w", a.name, i, err)
	}
	(*s)[i] = v
	return nil
}

// Append appends value to the slice in instance.
func (a *Array[C, S, E]) Append(instance any, value any) error {
	s, err := a.slice(instance)
	if err != nil {
		return err
	}
	v, err := valueOf[E](value)
	if err != nil {
		return fmt.Errorf("%s: %w", a.name, err)
	}
	*s = append(*s, v)
	return nil
}

func (a *Array[C, S, E]) slice(instance any) (*S, error) {
	c, err := instanceOf[C](instance)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.name, err)
	}
	return a.ref(c), nil
}

func (a *Array[C, S, E]) check(s *S, i int) error {
	if i < 0 || i >= len(*s) {
		return fmt.Errorf("%s: %w: %d not in [0, %d)", a.name, ErrIndexOutOfRange, i, len(*s))
	}
	return nil
}
