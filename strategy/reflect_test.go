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
	"testing"

	"dirpx.dev/rtti/apis"
)

type Transform struct{ X, Y float32 }
type Pool[T any] struct{ items []T }
type Handle[K comparable, V any] struct{}
type Season uint8

// baseConfig mirrors config.DefaultConfig without importing it.
func baseConfig(opts ...func(*apis.Config)) apis.Config {
	c := apis.Config{IncludeBuiltins: true, MaxUnwrap: 8, MapPreferElem: true}
	for _, o := range opts {
		o(&c)
	}
	return c
}

func hideBuiltins(c *apis.Config) { c.IncludeBuiltins = false }
func preferMapKey(c *apis.Config) { c.MapPreferElem = false }
func unwrapOnce(c *apis.Config) { c.MaxUnwrap = 1 }

func TestReflectStrategy_Names(t *testing.T) {
	s := NewReflectStrategy()

	cases := []struct {
		name string
		typ  reflect.Type
		cfg  apis.Config
		want string
	}{
		{"registered name of a struct", reflect.TypeFor[Transform](), baseConfig(), "Transform"},
		{"pointer field", reflect.TypeFor[*Transform](), baseConfig(), "Transform"},
		{"children slice", reflect.TypeFor[[]*Transform](), baseConfig(), "Transform"},
		{"fixed array", reflect.TypeFor[[4]Transform](), baseConfig(), "Transform"},
		{"named integer enum", reflect.TypeFor[Season](), baseConfig(), "Season"},
		{"map element", reflect.TypeFor[map[Season]Transform](), baseConfig(), "Transform"},
		{"map key", reflect.TypeFor[map[Season]Transform](), baseConfig(preferMapKey), "Season"},
		{"builtin map key hidden", reflect.TypeFor[map[string]Transform](), baseConfig(preferMapKey, hideBuiltins), ""},
		{"builtin shown", reflect.TypeFor[float32](), baseConfig(), "float32"},
		{"builtin hidden", reflect.TypeFor[float32](), baseConfig(hideBuiltins), ""},
		{"one type argument", reflect.TypeFor[Pool[Transform]](), baseConfig(), "Pool"},
		{"two type arguments", reflect.TypeFor[Handle[string, *Transform]](), baseConfig(), "Handle"},
		{"instantiation behind a slice", reflect.TypeFor[[]Pool[Pool[int]]](), baseConfig(), "Pool"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := s.TryResolveType(tc.typ, tc.cfg)
			if !ok || got != tc.want {
				t.Fatalf("TryResolveType(%v) = (%q,%v), want (%q,true)", tc.typ, got, ok, tc.want)
			}
			v := reflect.Zero(tc.typ).Interface()
			if got, ok := s.TryResolve(v, tc.cfg); !ok || got != tc.want {
				t.Fatalf("TryResolve(%T) = (%q,%v), want (%q,true)", v, got, ok, tc.want)
			}
		})
	}
}

func TestReflectStrategy_Nil(t *testing.T) {
	s := NewReflectStrategy()
	if _, ok := s.TryResolve(nil, baseConfig()); ok {
		t.Fatalf("TryResolve(nil): expected ok=false")
	}
	if _, ok := s.TryResolveType(nil, baseConfig()); ok {
		t.Fatalf("TryResolveType(nil): expected ok=false")
	}
}

// Two distinct Go types spelled Transform resolve to the same bare name.
// Telling them apart is left to the owner-type index of the registry.
func TestReflectStrategy_SharedIdentifier(t *testing.T) {
	type Transform struct{ M [16]float32 }

	s := NewReflectStrategy()
	outer, _ := s.TryResolveType(reflect.TypeFor[Transform](), baseConfig())
	inner, _ := s.TryResolveType(reflect.TypeFor[transformAlias](), baseConfig())
	if outer != "Transform" || inner != "Transform" {
		t.Fatalf("got %q and %q, want Transform for both", outer, inner)
	}
	if reflect.TypeFor[Transform]() == reflect.TypeFor[transformAlias]() {
		t.Fatalf("local Transform must be a distinct type")
	}
}

type transformAlias = Transform

// Memoized names must not leak between configurations.
func TestReflectStrategy_CachePerConfig(t *testing.T) {
	s := NewReflectStrategy()
	typ := reflect.TypeFor[map[Season]Transform]()

	for i := 0; i < 2; i++ {
		if got, _ := s.TryResolveType(typ, baseConfig()); got != "Transform" {
			t.Fatalf("round %d prefer elem: got %q", i, got)
		}
		if got, _ := s.TryResolveType(typ, baseConfig(preferMapKey)); got != "Season" {
			t.Fatalf("round %d prefer key: got %q", i, got)
		}
	}
}

func TestReflectStrategy_MaxUnwrap(t *testing.T) {
	s := NewReflectStrategy()
	typ := reflect.TypeFor[[][]*Transform]()

	if got, ok := s.TryResolveType(typ, baseConfig(unwrapOnce)); ok && got != "" {
		t.Fatalf("MaxUnwrap=1: got %q, want no name", got)
	}
	if got, ok := s.TryResolveType(typ, baseConfig()); !ok || got != "Transform" {
		t.Fatalf("MaxUnwrap=8: got (%q,%v), want (Transform,true)", got, ok)
	}
}

func BenchmarkReflectStrategy_ByType(b *testing.B) {
	s := NewReflectStrategy()
	types := []reflect.Type{
		reflect.TypeFor[Transform](),
		reflect.TypeFor[*Transform](),
		reflect.TypeFor[[]*Transform](),
		reflect.TypeFor[map[Season]Transform](),
		reflect.TypeFor[Pool[Transform]](),
		reflect.TypeFor[int](),
	}
	conf := baseConfig()
	for _, t0 := range types {
		s.TryResolveType(t0, conf)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.TryResolveType(types[i%len(types)], conf)
	}
}
