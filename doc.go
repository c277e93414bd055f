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

// Package rtti is a reflection subsystem for game-engine style programs:
// an offline generator that turns marked Go declarations into registration
// code, and a runtime registry of type descriptors that lets tools (editor
// panels, inspectors, serializers) read and write fields and call methods
// of values whose concrete type they do not know at compile time.
//
// # Markers
//
// Reflection intent is declared with comment directives placed in the doc
// comment of a declaration:
//
//	//rtti:class
//	type Player struct {
//		//rtti:field
//		Health int
//		//rtti:field
//		Path []Vector3
//	}
//
//	//rtti:method
//	func (p *Player) Heal(amount int) { p.Health += amount }
//
//	//rtti:enum
//	type Season uint8
//
// Recognized tags are class, struct, field, method and enum. A declaration
// carries at most one of them. Unknown tags under the rtti: prefix are
// ignored. Tags take free-form arguments; name=Other registers a class under
// another name.
//
// # Generation
//
// cmd/rttigen runs the extract and emit packages as a build step:
//
//	rttigen -S ./engine -O ./engine/generated
//
// For every enum it writes <enum>.gen.go next to the declaration with
// String, <Enum>FromString and <Enum>Values. Every enum must declare an
// invalid enumerator named None (or <Enum>None); FromString returns it for
// unknown input. For the classes it writes one register_all.gen.go with a
// single entry point:
//
//	func RegisterAll(reg apis.Registry) error
//
// # Runtime
//
// The registry is an ordinary value, constructed and owned by the program's
// startup sequence and handed to whatever needs lookups. Bootstrap performs
// the whole sequence:
//
//	reg, err := rtti.Bootstrap(config.DefaultConfig(), generated.RegisterAll)
//
// After Bootstrap the registry is frozen. Reads are lock-free over an
// immutable snapshot, so any number of goroutines may look types up:
//
//	desc, err := reg.GetType("Player")
//	health, _ := desc.Field("Health")
//	_ = health.Set(player, 100)
//	heal, _ := desc.Method("Heal")
//	_, err = accessor.Call(heal, player, 10)
//
// Accessors check the dynamic type of every instance, value and argument
// against the types they were bound to. A mismatch is an error, never a
// reinterpretation of memory. Method arguments travel as erased.Value, which
// either borrows a caller variable or owns a copy and always carries the
// runtime type of what it holds.
//
// # Describing values
//
// Registry.Describe maps a value to its descriptor through a chain of
// strategies:
//
//  1. If the value implements apis.Namer, use EntityName().
//  2. If its type (pointers, slices and maps unwrapped) is the owner of a
//     registered descriptor, use that descriptor.
//  3. Otherwise use the bare Go type name.
//
// # Scope
//
// rtti only maps names to descriptors and descriptors to members. Rendering,
// entity models, editor UI and serialization formats belong to the
// consumers.
package rtti
