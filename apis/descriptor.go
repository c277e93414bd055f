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
	"slices"
)

// TypeDescriptor describes one reflectable type: its registered name, its Go
// type and its ordered field, array and method accessors.
//
// A TypeDescriptor is immutable once constructed. Slices returned by its
// methods are copies.
type TypeDescriptor struct {
	name    string
	owner   reflect.Type
	fields  []FieldAccessor
	arrays  []ArrayAccessor
	methods []MethodAccessor
}

// NewTypeDescriptor constructs a TypeDescriptor. Member order is preserved.
func NewTypeDescriptor(name string, owner reflect.Type, fields []FieldAccessor, arrays []ArrayAccessor, methods []MethodAccessor) *TypeDescriptor {
	return &TypeDescriptor{
		name:    name,
		owner:   owner,
		fields:  slices.Clone(fields),
		arrays:  slices.Clone(arrays),
		methods: slices.Clone(methods),
	}
}

// Name returns the registered name.
func (d *TypeDescriptor) Name() string { return d.name }

// Owner returns the described Go type.
func (d *TypeDescriptor) Owner() reflect.Type { return d.owner }

// Fields returns the plain field accessors in registration order.
func (d *TypeDescriptor) Fields() []FieldAccessor { return slices.Clone(d.fields) }

// Arrays returns the array field accessors in registration order.
func (d *TypeDescriptor) Arrays() []ArrayAccessor { return slices.Clone(d.arrays) }

// Methods returns the method accessors in registration order.
func (d *TypeDescriptor) Methods() []MethodAccessor { return slices.Clone(d.methods) }

// Field returns the plain field accessor named name.
func (d *TypeDescriptor) Field(name string) (FieldAccessor, bool) {
	return find(d.fields, name)
}

// Array returns the array field accessor named name.
func (d *TypeDescriptor) Array(name string) (ArrayAccessor, bool) {
	return find(d.arrays, name)
}

// Method returns the method accessor named name.
func (d *TypeDescriptor) Method(name string) (MethodAccessor, bool) {
	return find(d.methods, name)
}

func find[M Member](members []M, name string) (M, bool) {
	for _, m := range members {
		if m.Name() == name {
			return m, true
		}
	}
	var zero M
	return zero, false
}
