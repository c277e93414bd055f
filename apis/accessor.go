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

package apis

import (
	"reflect"

	"dirpx.dev/rtti/erased"
)

// Member is what every accessor exposes about the member it is bound to.
type Member interface {
	// Name returns the registered member name.
	Name() string
	// Owner returns the struct type the member belongs to (never a pointer type).
	Owner() reflect.Type
}

// FieldAccessor gets and sets one field of one concrete struct type through
// untyped handles.
//
// Instances are passed as a pointer to the owner type. Implementations check
// the dynamic type of both the instance and the value against the bound types
// and return an error on mismatch; they never reinterpret memory.
type FieldAccessor interface {
	Member
	// TypeName returns the declared type of the field as written in source.
	TypeName() string
	// Type returns the Go type of the field.
	Type() reflect.Type
	// Get returns a pointer to the field inside instance.
	Get(instance any) (any, error)
	// Set overwrites the field inside instance. value may be the field type,
	// a pointer to it, or an erased.Value holding it.
	Set(instance any, value any) error
}

// ArrayAccessor is a FieldAccessor counterpart for slice fields: it reads and
// writes elements of the live slice stored in the instance.
type ArrayAccessor interface {
	Member
	// TypeName returns the declared type of the field as written in source.
	TypeName() string
	// ElemTypeName returns the element type as extracted from TypeName.
	ElemTypeName() string
	// ElemType returns the Go type of an element.
	ElemType() reflect.Type
	// Len returns the current length of the slice.
	Len(instance any) (int, error)
	// Get returns a pointer to element i.
	Get(instance any, i int) (any, error)
	// Set overwrites element i.
	Set(instance any, i int, value any) error
	// Append appends value to the slice.
	Append(instance any, value any) error
}

// MethodAccessor invokes one bound method with erased arguments.
type MethodAccessor interface {
	Member
	// Arity returns the number of arguments, receiver excluded.
	Arity() int
	// IsConst reports whether the method has a value receiver and therefore
	// operates on a copy of the instance.
	IsConst() bool
	// Signature returns the type of the bound method expression.
	Signature() reflect.Type
	// Invoke calls the method on instance. The number of args must equal
	// Arity. The result is invalid for methods without a non-error result;
	// a trailing error result is returned as the error.
	Invoke(instance any, args ...erased.Value) (erased.Value, error)
}
