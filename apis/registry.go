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

import "reflect"

// Registry maps registered type names to TypeDescriptors.
//
// Lifecycle: a Registry starts empty, is populated once at start-up (usually
// by a generated RegisterAll), is frozen, and is then only read. Clear drops
// every descriptor and returns it to the empty, writable state; it exists for
// teardown and tests.
type Registry interface {
	// Register adds desc under desc.Name(). The first registration of a name
	// wins: registering an existing name is a no-op that returns nil.
	// After Freeze, Register returns an error.
	Register(desc *TypeDescriptor) error
	// HasType reports whether name is registered.
	HasType(name string) bool
	// GetType returns the descriptor registered under name or a
	// not-found error.
	GetType(name string) (*TypeDescriptor, error)
	// Lookup returns the descriptor registered under name if present.
	Lookup(name string) (desc *TypeDescriptor, ok bool)
	// LookupType returns the descriptor whose owner type is the nearest
	// named type of t.
	LookupType(t reflect.Type) (desc *TypeDescriptor, ok bool)
	// Describe returns the descriptor for the dynamic type of v.
	Describe(v any) (*TypeDescriptor, error)
	// Types returns every descriptor sorted by name.
	Types() []*TypeDescriptor
	// Count returns the number of registered descriptors.
	Count() int
	// Freeze makes the registry read-only.
	Freeze()
	// State returns the current lifecycle state.
	State() State
	// Clear drops every descriptor and unfreezes the registry.
	Clear()
}

// State is the lifecycle state of a Registry.
type State int

const (
	// StateEmpty means nothing is registered and the registry is writable.
	StateEmpty State = iota
	// StatePopulated means descriptors are registered and the registry is writable.
	StatePopulated
	// StateFrozen means the registry is read-only.
	StateFrozen
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StatePopulated:
		return "populated"
	case StateFrozen:
		return "frozen"
	default:
		return "unknown"
	}
}
