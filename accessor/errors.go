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

// Package accessor implements the type-erased member accessors stored in
// apis.TypeDescriptor: fields and slice fields bound through statically
// typed closures, and methods bound through method expressions.
//
// Every accessor checks the dynamic types crossing its boundary against the
// types it was bound to and reports a mismatch as an error.
package accessor

import (
	"errors"
	"fmt"
	"reflect"

	"dirpx.dev/rtti/erased"
)

var (
	// ErrNilInstance is returned when the instance is nil or a nil pointer.
	ErrNilInstance = errors.New("rtti(accessor): nil instance")
	// ErrInstanceType is returned when the instance is not a pointer to the owner type.
	ErrInstanceType = errors.New("rtti(accessor): instance type mismatch")
	// ErrValueType is returned when a value does not have the member's type.
	ErrValueType = errors.New("rtti(accessor): value type mismatch")
	// ErrIndexOutOfRange is returned for array indices outside [0, len).
	ErrIndexOutOfRange = errors.New("rtti(accessor): index out of range")
	// ErrArity is matched by every *ArityError.
	ErrArity = errors.New("rtti(accessor): argument count mismatch")
	// ErrArgumentType is matched by every *ArgumentError.
	ErrArgumentType = errors.New("rtti(accessor): argument type mismatch")
	// ErrUnsupportedSignature is returned by NewMethod for functions it cannot bind.
	ErrUnsupportedSignature = errors.New("rtti(accessor): unsupported method signature")
	// ErrReceiverType is returned by NewMethod when the first parameter is not the owner type.
	ErrReceiverType = errors.New("rtti(accessor): receiver is not the owner type")
)

// ArityError reports an Invoke call with the wrong number of arguments.
type ArityError struct {
	Method string
	Want   int
	Got    int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("rtti(accessor): %s: want %d argument(s), got %d", e.Method, e.Want, e.Got)
}

// Is makes errors.Is(err, ErrArity) true.
func (e *ArityError) Is(target error) bool { return target == ErrArity }

// ArgumentError reports an Invoke argument that cannot be reconstructed as
// the parameter type.
type ArgumentError struct {
	Method string
	Index  int
	Err    error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("rtti(accessor): %s: argument %d: %v", e.Method, e.Index, e.Err)
}

// Unwrap exposes both ErrArgumentType and the underlying cause.
func (e *ArgumentError) Unwrap() []error { return []error{ErrArgumentType, e.Err} }

// instanceOf returns the *C behind instance.
func instanceOf[C any](instance any) (*C, error) {
	switch v := instance.(type) {
	case nil:
		return nil, ErrNilInstance
	case *C:
		if v == nil {
			return nil, ErrNilInstance
		}
		return v, nil
	case erased.Value:
		p, err := erased.PtrAs[C](v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInstanceType, err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%w: have %T, want *%s", ErrInstanceType, instance, reflect.TypeFor[C]())
	}
}

// valueOf returns the V carried by value.
func valueOf[V any](value any) (V, error) {
	var zero V
	if value == nil {
		switch reflect.TypeFor[V]().Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return zero, nil
		}
		return zero, fmt.Errorf("%w: have nil, want %s", ErrValueType, reflect.TypeFor[V]())
	}
	if ev, ok := value.(erased.Value); ok {
		out, err := erased.As[V](ev)
		if err != nil {
			return zero, fmt.Errorf("%w: %w", ErrValueType, err)
		}
		return out, nil
	}
	if v, ok := value.(V); ok {
		return v, nil
	}
	if p, ok := value.(*V); ok && p != nil {
		return *p, nil
	}
	return zero, fmt.Errorf("%w: have %T, want %s", ErrValueType, value, reflect.TypeFor[V]())
}
