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

// Package builder assembles apis.TypeDescriptors member by member and
// registers them. Generated RegisterAll functions are chains of its calls:
//
//	builder.For[scene.Player](reg, "Player").
//		AddField(accessor.NewField("Health", "int", func(o *scene.Player) *int { return &o.Health })).
//		AddMethod("Heal", (*scene.Player).Heal).
//		Register()
package builder

import (
	"errors"
	"fmt"
	"reflect"

	"dirpx.dev/rtti/accessor"
	"dirpx.dev/rtti/apis"
	uref "dirpx.dev/rtti/utils/reflect"
)

var (
	// ErrBuilderConsumed is returned when Build or Register is called twice.
	ErrBuilderConsumed = errors.New("rtti(builder): builder already consumed")
	// ErrNilRegistry is returned by Register on a builder without a registry.
	ErrNilRegistry = errors.New("rtti(builder): nil registry")
	// ErrNilAccessor is recorded when a nil accessor is added.
	ErrNilAccessor = errors.New("rtti(builder): nil accessor")
	// ErrOwnerMismatch is recorded when an accessor belongs to another type.
	ErrOwnerMismatch = errors.New("rtti(builder): accessor owner mismatch")
	// ErrDuplicateMember is recorded when a member name is added twice.
	ErrDuplicateMember = errors.New("rtti(builder): duplicate member name")
	// ErrNoName is returned when no name is given and C has none.
	ErrNoName = errors.New("rtti(builder): type has no name")
)

// TypeBuilder accumulates the members of type C. Add* calls never fail;
// problems are recorded and reported together by Build or Register.
// A TypeBuilder is single use and not safe for concurrent use.
type TypeBuilder[C any] struct {
	reg     apis.Registry
	name    string
	owner   reflect.Type
	fields  []apis.FieldAccessor
	arrays  []apis.ArrayAccessor
	methods []apis.MethodAccessor
	seen    map[string]struct{}
	errs    []error
	done    bool
}

// For starts a descriptor for C registered under name. An empty name
// defaults to the Go identifier of C without type arguments.
func For[C any](reg apis.Registry, name string) *TypeBuilder[C] {
	owner := reflect.TypeFor[C]()
	if name == "" {
		name = uref.BareName(owner)
	}
	return &TypeBuilder[C]{
		reg:   reg,
		name:  name,
		owner: owner,
		seen:  make(map[string]struct{}),
	}
}

// AddField appends a plain field accessor.
func (b *TypeBuilder[C]) AddField(f apis.FieldAccessor) *TypeBuilder[C] {
	if b.member(f) {
		b.fields = append(b.fields, f)
	}
	return b
}

// AddArray appends a slice field accessor.
func (b *TypeBuilder[C]) AddArray(a apis.ArrayAccessor) *TypeBuilder[C] {
	if b.member(a) {
		b.arrays = append(b.arrays, a)
	}
	return b
}

// AddMethod binds fn, a method expression of C such as (*C).M or C.M,
// under name.
func (b *TypeBuilder[C]) AddMethod(name string, fn any) *TypeBuilder[C] {
	m, err := accessor.NewMethod(b.owner, name, fn)
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	if b.member(m) {
		b.methods = append(b.methods, m)
	}
	return b
}

// member validates m and claims its name.
func (b *TypeBuilder[C]) member(m apis.Member) bool {
	if isNil(m) {
		b.errs = append(b.errs, ErrNilAccessor)
		return false
	}
	if m.Owner() != b.owner {
		b.errs = append(b.errs, fmt.Errorf("%w: %s belongs to %v", ErrOwnerMismatch, m.Name(), m.Owner()))
		return false
	}
	if _, dup := b.seen[m.Name()]; dup {
		b.errs = append(b.errs, fmt.Errorf("%w: %s", ErrDuplicateMember, m.Name()))
		return false
	}
	b.seen[m.Name()] = struct{}{}
	return true
}

// Build returns the descriptor, or every recorded error joined.
func (b *TypeBuilder[C]) Build() (*apis.TypeDescriptor, error) {
	if b.done {
		return nil, fmt.Errorf("%s: %w", b.name, ErrBuilderConsumed)
	}
	b.done = true
	if b.name == "" {
		b.errs = append(b.errs, ErrNoName)
	}
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("%s: %w", b.name, errors.Join(b.errs...))
	}
	return apis.NewTypeDescriptor(b.name, b.owner, b.fields, b.arrays, b.methods), nil
}

// Register builds the descriptor and adds it to the registry. A name that is
// already registered is left untouched and no error is returned.
func (b *TypeBuilder[C]) Register() error {
	if b.reg == nil {
		return fmt.Errorf("%s: %w", b.name, ErrNilRegistry)
	}
	desc, err := b.Build()
	if err != nil {
		return err
	}
	return b.reg.Register(desc)
}

func isNil(m apis.Member) bool {
	if m == nil {
		return true
	}
	rv := reflect.ValueOf(m)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
