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

package strategy

import (
	"reflect"

	"dirpx.dev/rtti/apis"
)

// TypeIndex is the owner-type lookup consulted by the registry strategy.
// apis.Registry implements it.
type TypeIndex interface {
	LookupType(t reflect.Type) (*apis.TypeDescriptor, bool)
}

// NewRegistryStrategy creates an apis.Strategy that finds the descriptor
// whose owner type matches the value's type in reg.
func NewRegistryStrategy(reg TypeIndex) apis.Strategy {
	return &registryStrategy{reg: reg}
}

// registryStrategy consults the owner-type index of an apis.Registry.
// It is what lets a type registered under a custom name be described
// without implementing apis.Namer.
type registryStrategy struct {
	reg TypeIndex
}

// Ensure registryStrategy implements apis.Strategy.
var _ apis.Strategy = (*registryStrategy)(nil)

// TryResolve looks up v's type in the registry.
func (s *registryStrategy) TryResolve(v any, cfg apis.Config) (string, bool) {
	if v == nil {
		return "", false
	}
	return s.TryResolveType(reflect.TypeOf(v), cfg)
}

// TryResolveType looks up t in the registry.
func (s *registryStrategy) TryResolveType(t reflect.Type, _ apis.Config) (string, bool) {
	if t == nil || s.reg == nil {
		return "", false
	}
	desc, ok := s.reg.LookupType(t)
	if !ok {
		return "", false
	}
	return desc.Name(), true
}
