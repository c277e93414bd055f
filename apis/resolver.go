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

// Resolver names the registered type of a value or a Go type. Registry
// Describe runs a Resolver first and then looks the name up, so a Resolver
// decides which descriptor an instance maps to.
//
// An empty name means "not resolvable"; it never names a descriptor.
type Resolver interface {
	// Resolve returns the registered name for the dynamic type of v.
	Resolve(v any, cfg Config) string
	// ResolveType returns the registered name for t.
	ResolveType(t reflect.Type, cfg Config) string
}

// Strategy is one link of a Resolver chain. The default chain asks the
// value itself (Namer), then the registry's owner-type index, then derives
// the bare Go identifier by reflection.
//
// A strategy that cannot answer returns handled == false so the next link
// runs. Returning ("", true) stops the chain with no name.
type Strategy interface {
	TryResolve(v any, cfg Config) (name string, handled bool)
	TryResolveType(t reflect.Type, cfg Config) (name string, handled bool)
}
