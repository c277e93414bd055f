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

// Package erased provides Value, a container for a value whose concrete type
// is unknown to the code that carries it.
//
// A Value either borrows a caller-owned variable (Ref) or owns a private heap
// copy (Own, Of). The ownership mode is fixed at construction. Unlike a bare
// `any`, a Value can hand out a pointer to its storage, so a borrowed Value
// passed to a pointer parameter mutates the caller's variable while an owned
// Value only mutates its copy.
//
// Every Value records the reflect.Type of what it holds. Consumers ask for the
// type back with As, PtrAs or Reconstruct and receive ErrTypeMismatch instead
// of a reinterpreted bit pattern when they guess wrong.
package erased

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrInvalid is returned when an empty or released Value is read.
	ErrInvalid = errors.New("rtti(erased): invalid value")
	// ErrTypeMismatch is returned when a Value is reconstructed as a type it does not hold.
	ErrTypeMismatch = errors.New("rtti(erased): type mismatch")
	// ErrNotPointer is returned by RefOf when the argument is not a non-nil pointer.
	ErrNotPointer = errors.New("rtti(erased): not a non-nil pointer")
)

// Mode tells whether a Value owns its storage or borrows it.
type Mode uint8

const (
	// Invalid is the mode of the zero Value.
	Invalid Mode = iota
	// Owned values hold a private heap copy.
	Owned
	// Borrowed values point at a variable owned by the caller.
	Borrowed
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Owned:
		return "owned"
	case Borrowed:
		return "borrowed"
	default:
		return "invalid"
	}
}

// Value is a type-erased value with an ownership mode and a runtime type tag.
// The zero Value is invalid.
//
// Copies of a Value share its storage.
type Value struct {
	// ptr is a *T pointing at the storage.
	ptr  reflect.Value
	mode Mode
}

// Own returns an owned Value holding a copy of v.
func Own[T any](v T) Value {
	p := new(T)
	*p = v
	return Value{ptr: reflect.ValueOf(p), mode: Owned}
}

// Ref returns a Value borrowing *p. A nil p yields the invalid Value.
func Ref[T any](p *T) Value {
	if p == nil {
		return Value{}
	}
	return Value{ptr: reflect.ValueOf(p), mode: Borrowed}
}

// Of returns an owned Value holding a copy of the dynamic value of v.
// A nil v yields the invalid Value.
func Of(v any) Value {
	if v == nil {
		return Value{}
	}
	if ev, ok := v.(Value); ok {
		return ev
	}
	rv := reflect.ValueOf(v)
	p := reflect.New(rv.Type())
	p.Elem().Set(rv)
	return Value{ptr: p, mode: Owned}
}

// FromReflect returns an owned Value holding a copy of rv. The static type of
// rv is kept, so an interface-typed rv stays interface-typed.
func FromReflect(rv reflect.Value) Value {
	if !rv.IsValid() {
		return Value{}
	}
	p := reflect.New(rv.Type())
	p.Elem().Set(rv)
	return Value{ptr: p, mode: Owned}
}

// RefOf returns a Value borrowing the variable p points at.
// p must be a non-nil pointer.
func RefOf(p any) (Value, error) {
	rv := reflect.ValueOf(p)
	if !rv.IsValid() || rv.Kind() != reflect.Pointer || rv.IsNil() {
		return Value{}, fmt.Errorf("%w: %T", ErrNotPointer, p)
	}
	return Value{ptr: rv, mode: Borrowed}, nil
}

// IsValid reports whether v holds anything.
func (v Value) IsValid() bool {
	return v.ptr.IsValid()
}

// Mode returns the ownership mode of v.
func (v Value) Mode() Mode {
	if !v.IsValid() {
		return Invalid
	}
	return v.mode
}

// Owned reports whether v owns its storage.
func (v Value) Owned() bool {
	return v.Mode() == Owned
}

// Type returns the type of the held value, or nil for an invalid Value.
func (v Value) Type() reflect.Type {
	if !v.IsValid() {
		return nil
	}
	return v.ptr.Type().Elem()
}

// Interface returns a copy of the held value, or nil for an invalid Value.
func (v Value) Interface() any {
	if !v.IsValid() {
		return nil
	}
	return v.ptr.Elem().Interface()
}

// Pointer returns a pointer (*T) to the storage, or nil for an invalid Value.
// For a borrowed Value this is the caller's variable.
func (v Value) Pointer() any {
	if !v.IsValid() {
		return nil
	}
	return v.ptr.Interface()
}

// Release drops the storage of v. Owned storage is zeroed so it no longer
// keeps anything alive; a borrowed referent is never touched.
// v is invalid afterwards.
func (v *Value) Release() {
	if v.mode == Owned && v.ptr.IsValid() {
		v.ptr.Elem().SetZero()
	}
	v.ptr = reflect.Value{}
	v.mode = Invalid
}

// Reconstruct returns a reflect.Value usable where a value of type to is
// expected:
//   - the held value itself when its type is assignable to to;
//   - a pointer to the storage when to is *T and the Value holds a T;
//   - the zero value of to when v is invalid and to is nillable.
func (v Value) Reconstruct(to reflect.Type) (reflect.Value, error) {
	if !v.IsValid() {
		if nillable(to) {
			return reflect.Zero(to), nil
		}
		return reflect.Value{}, fmt.Errorf("%w: want %s", ErrInvalid, to)
	}
	have := v.Type()
	if have == to || have.AssignableTo(to) {
		return v.ptr.Elem(), nil
	}
	if to.Kind() == reflect.Pointer && to.Elem() == have {
		return v.ptr, nil
	}
	return reflect.Value{}, mismatch(have, to)
}

// String describes the Value for logs and test failures.
func (v Value) String() string {
	if !v.IsValid() {
		return "erased.Value(invalid)"
	}
	return fmt.Sprintf("erased.Value(%s %s)", v.mode, v.Type())
}

// As returns a copy of the held value as T.
// T must be the held type or an interface it implements. A held nil
// interface converts to the zero T.
func As[T any](v Value) (T, error) {
	var zero T
	if !v.IsValid() {
		return zero, ErrInvalid
	}
	want := reflect.TypeFor[T]()
	if v.Type() == want {
		return *v.ptr.Interface().(*T), nil
	}
	if want.Kind() == reflect.Interface && v.Type().Implements(want) {
		out, _ := v.ptr.Elem().Interface().(T)
		return out, nil
	}
	return zero, mismatch(v.Type(), want)
}

// PtrAs returns the storage pointer of v as *T. T must be the held type.
func PtrAs[T any](v Value) (*T, error) {
	if !v.IsValid() {
		return nil, ErrInvalid
	}
	want := reflect.TypeFor[T]()
	if v.Type() != want {
		return nil, mismatch(v.Type(), want)
	}
	return v.ptr.Interface().(*T), nil
}

// MustAs is As that panics on mismatch. Intended for tests and generated code
// whose types are known to line up.
func MustAs[T any](v Value) T {
	out, err := As[T](v)
	if err != nil {
		panic(err)
	}
	return out
}

func mismatch(have, want reflect.Type) error {
	return fmt.Errorf("%w: have %s, want %s", ErrTypeMismatch, have, want)
}

func nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	}
	return false
}
