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

// Package resolver chains name strategies into an apis.Resolver.
package resolver

import (
	"reflect"

	"dirpx.dev/rtti/apis"
	"dirpx.dev/rtti/strategy"
)

// New returns a Resolver that asks strategies in order and stops at the
// first one that handles the input. Nil strategies are dropped. The chain is
// as safe for concurrent use as its strategies.
func New(strategies ...apis.Strategy) apis.Resolver {
	c := make(chain, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			c = append(c, s)
		}
	}
	return c
}

// Default is the chain behind Registry.Describe: the value's own Namer, then
// the owner-type index of reg, then the bare Go identifier.
func Default(reg strategy.TypeIndex) apis.Resolver {
	return New(
		strategy.NewNamerStrategy(),
		strategy.NewRegistryStrategy(reg),
		strategy.NewReflectStrategy(),
	)
}

type chain []apis.Strategy

func (c chain) Resolve(v any, cfg apis.Config) string {
	return c.first(func(s apis.Strategy) (string, bool) { return s.TryResolve(v, cfg) })
}

func (c chain) ResolveType(t reflect.Type, cfg apis.Config) string {
	return c.first(func(s apis.Strategy) (string, bool) { return s.TryResolveType(t, cfg) })
}

// first returns the name of the first handling strategy, or "".
func (c chain) first(try func(apis.Strategy) (string, bool)) string {
	for _, s := range c {
		if name, ok := try(s); ok {
			return name
		}
	}
	return ""
}
