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

package registry_test

import (
	"fmt"
	"reflect"
	"runtime"
	"sync"
	"testing"

	apis "dirpx.dev/rtti/apis"
	"dirpx.dev/rtti/config"
	"dirpx.dev/rtti/registry"
)

// A few named types to avoid anonymous/unnamed pitfalls.
type T0 struct{}
type T1 struct{}
type T2 struct{}
type T3 struct{}
type T4 struct{}
type T5 struct{}
type T6 struct{}
type T7 struct{}
type T8 struct{}
type T9 struct{}

var allTypes = []reflect.Type{
	reflect.TypeFor[T0](), reflect.TypeFor[T1](), reflect.TypeFor[T2](),
	reflect.TypeFor[T3](), reflect.TypeFor[T4](), reflect.TypeFor[T5](),
	reflect.TypeFor[T6](), reflect.TypeFor[T7](), reflect.TypeFor[T8](),
	reflect.TypeFor[T9](),
}

// TestConcurrentRegisterAndLookup verifies that concurrent duplicate
// registrations keep exactly one descriptor per name and that readers never
// observe a partially published registry.
func TestConcurrentRegisterAndLookup(t *testing.T) {
	reg := registry.New(config.DefaultConfig())

	wg := sync.WaitGroup{}
	workers := runtime.GOMAXPROCS(0) * 4

	// Writers race on the same names.
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				j := (i + id) % len(allTypes)
				_ = reg.Register(desc(allTypes[j].Name(), allTypes[j]))
			}
		}(w)
	}

	// Readers see a consistent snapshot: Types is sorted and never longer
	// than the number of distinct names.
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				types := reg.Types()
				if len(types) > len(allTypes) {
					t.Errorf("Types() len = %d, want <= %d", len(types), len(allTypes))
					return
				}
				for k := 1; k < len(types); k++ {
					if types[k-1].Name() >= types[k].Name() {
						t.Errorf("Types() not sorted: %q >= %q", types[k-1].Name(), types[k].Name())
						return
					}
				}
				if d, ok := reg.LookupType(allTypes[i%len(allTypes)]); ok && d.Owner() != allTypes[i%len(allTypes)] {
					t.Errorf("LookupType returned owner %v", d.Owner())
					return
				}
				_ = reg.Count()
			}
		}()
	}

	wg.Wait()

	if reg.Count() != len(allTypes) {
		t.Fatalf("count mismatch: got %d want %d", reg.Count(), len(allTypes))
	}
	for _, tt := range allTypes {
		d, err := reg.GetType(tt.Name())
		if err != nil || d.Owner() != tt {
			t.Fatalf("GetType(%s) = (%v,%v)", tt.Name(), d, err)
		}
	}
}

// TestConcurrentReadsAfterFreeze covers the steady state: populated once,
// frozen, then read from many goroutines.
func TestConcurrentReadsAfterFreeze(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	for _, tt := range allTypes {
		if err := reg.Register(desc(tt.Name(), tt)); err != nil {
			t.Fatalf("register %s: %v", tt, err)
		}
	}
	reg.Freeze()

	wg := sync.WaitGroup{}
	workers := runtime.GOMAXPROCS(0) * 4
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 5000; i++ {
				tt := allTypes[(i+id)%len(allTypes)]
				d, err := reg.Describe(reflect.New(tt).Interface())
				if err != nil || d.Name() != tt.Name() {
					t.Errorf("Describe(*%s) = (%v,%v)", tt.Name(), d, err)
					return
				}
				if !reg.HasType(tt.Name()) {
					t.Errorf("HasType(%s) = false", tt.Name())
					return
				}
			}
		}(w)
	}
	wg.Wait()
}

// TestClearSnapshot ensures Clear does not disturb slices handed out earlier.
func TestClearSnapshot(t *testing.T) {
	reg := registry.New(config.DefaultConfig())

	_ = reg.Register(desc("T0", reflect.TypeFor[T0]()))
	_ = reg.Register(desc("T1", reflect.TypeFor[T1]()))

	snap := reg.Types()
	reg.Clear()

	if reg.Count() != 0 {
		t.Fatalf("count after clear: got %d want 0", reg.Count())
	}
	if len(snap) != 2 || snap[0].Name() != "T0" || snap[1].Name() != "T1" {
		t.Fatalf("snapshot changed after clear: %v", snap)
	}
}

func BenchmarkLookup(b *testing.B) {
	reg := registry.New(config.DefaultConfig())
	for i := 0; i < 256; i++ {
		_ = reg.Register(desc(fmt.Sprintf("Type%03d", i), nil))
	}
	reg.Freeze()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			_, _ = reg.Lookup(fmt.Sprintf("Type%03d", i%256))
			i++
		}
	})
}

// This ensures the interface is satisfied; not a test but a compile-time check.
var _ apis.Registry = registry.New(config.DefaultConfig())
