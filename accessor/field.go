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

// Field is an apis.FieldAccessor bound to field F of struct C.
type Field[C, F any] struct {
	name     string
	typeName string
	ref      func(*C) *F
}

// Ensure Field implements apis.FieldAccessor.
var _ apis.FieldAccessor = (*Field[struct{}, int])(nil)

// NewField binds a field accessor. ref must return the address of the field
// inside its argument, e.g. func(v *Vector3) *float32 { return &v.X }.
func NewField[C, F any](name, typeName string, ref func(*C) *F) *Field[C, F] {
	return &Field[C, F]{name: name, typeName: typeName, ref: ref}
}

// Name returns the registered field name.
func (f *Field[C, F]) Name() string { return f.name }

// TypeName returns the declared field type.
func (f *Field[C, F]) TypeName() string { return f.typeName }

// Owner returns C.
func (f *Field[C, F]) Owner() reflect.Type { return reflect.TypeFor[C]() }

// Type returns F.
func (f *Field[C, F]) Type() reflect.Type { return reflect.TypeFor[F]() }

// Ref returns the address of the field inside c.
func (f *Field[C, F]) Ref(c *C) *F { return f.ref(c) }

// Get returns a *F pointing into instance.
func (f *Field[C, F]) Get(instance any) (any, error) {
	c, err := instanceOf[C](instance)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.name, err)
	}
	return f.ref(c), nil
}

// Set stores value into the field of instance.
func (f *Field[C, F]) Set(instance any, value any) error {
	c, err := instanceOf[C](instance)
	if err != nil {
		return fmt.Errorf("%s: %w", f.name, err)
	}
	v, err := valueOf[F](value)
	if err != nil {
		return fmt.Errorf("%s: %w", f.name, err)
	}
	*f.ref(c) = v
	return nil
}

// GetAs reads field a of instance as *F.
func GetAs[F any](a apis.FieldAccessor, instance any) (*F, error) {
	p, err := a.Get(instance)
	if err != nil {
		return nil, err
	}
	fp, ok := p.(*F)
	if !ok {
		return nil, fmt.Errorf("%s: %w: have %s, want %s", a.Name(), ErrValueType, a.Type(), reflect.TypeFor[F]())
	}
	return fp, nil
}
