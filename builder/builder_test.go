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

package builder_test

import (
	"errors"
	"reflect"
	"testing"

	"dirpx.dev/rtti/accessor"
	"dirpx.dev/rtti/apis"
	"dirpx.dev/rtti/builder"
	"dirpx.dev/rtti/config"
	"dirpx.dev/rtti/registry"
)

type Player struct {
	Name   string
	Health int
	Tags   []string
}

func (p *Player) Heal(amount int) { p.Health += amount }

func (p Player) Alive() bool { return p.Health > 0 }

type Camera struct{ FOV float32 }

type Pool[T any] struct{ Items []T }

func playerBuilder(reg apis.Registry) *builder.TypeBuilder[Player] {
	return builder.For[Player](reg, "Player").
		AddField(accessor.NewField("Name", "string", func(o *Player) *string { return &o.Name })).
		AddField(accessor.NewField("Health", "int", func(o *Player) *int { return &o.Health })).
		AddArray(accessor.NewArray("Tags", "[]string", "string", func(o *Player) *[]string { return &o.Tags })).
		AddMethod("Heal", (*Player).Heal).
		AddMethod("Alive", Player.Alive)
}

func TestBuild_Descriptor(t *testing.T) {
	desc, err := playerBuilder(nil).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if desc.Name() != "Player" || desc.Owner() != reflect.TypeFor[Player]() {
		t.Fatalf("descriptor = (%q,%v), want (Player,Player)", desc.Name(), desc.Owner())
	}
	if n := len(desc.Fields()); n != 2 {
		t.Fatalf("fields = %d, want 2", n)
	}
	if desc.Fields()[0].Name() != "Name" || desc.Fields()[1].Name() != "Health" {
		t.Fatalf("field order = %q,%q", desc.Fields()[0].Name(), desc.Fields()[1].Name())
	}
	if a, ok := desc.Array("Tags"); !ok || a.ElemTypeName() != "string" {
		t.Fatalf("Array(Tags) = (%v,%v)", a, ok)
	}
	heal, ok := desc.Method("Heal")
	if !ok || heal.IsConst() || heal.Arity() != 1 {
		t.Fatalf("Method(Heal) = (%v,%v)", heal, ok)
	}
	alive, ok := desc.Method("Alive")
	if !ok || !alive.IsConst() || alive.Arity() != 0 {
		t.Fatalf("Method(Alive) = (%v,%v)", alive, ok)
	}
}

func TestRegister_EndToEnd(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	if err := playerBuilder(reg).Register(); err != nil {
		t.Fatalf("Register: %v", err)
	}

	desc, err := reg.GetType("Player")
	if err != nil {
		t.Fatalf("GetType: %v", err)
	}

	p := &Player{Health: 10}
	health, _ := desc.Field("Health")
	if err := health.Set(p, 25); err != nil {
		t.Fatalf("Set(Health): %v", err)
	}
	heal, _ := desc.Method("Heal")
	if _, err := accessor.Call(heal, p, 5); err != nil {
		t.Fatalf("Heal: %v", err)
	}
	if p.Health != 30 {
		t.Fatalf("Health = %d, want 30", p.Health)
	}
}

func TestRegister_DuplicateIsNoop(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	if err := playerBuilder(reg).Register(); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if err := builder.For[Camera](reg, "Player").Register(); err != nil {
		t.Fatalf("duplicate Register: %v", err)
	}
	desc, _ := reg.GetType("Player")
	if desc.Owner() != reflect.TypeFor[Player]() {
		t.Fatalf("owner = %v, want Player (first wins)", desc.Owner())
	}
}

func TestFor_DefaultName(t *testing.T) {
	desc, err := builder.For[Pool[int]](nil, "").Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if desc.Name() != "Pool" {
		t.Fatalf("name = %q, want Pool", desc.Name())
	}

	if _, err := builder.For[struct{}](nil, "").Build(); !errors.Is(err, builder.ErrNoName) {
		t.Fatalf("anonymous type: want ErrNoName, got %v", err)
	}
}

func TestBuild_Errors(t *testing.T) {
	cases := []struct {
		name string
		b    *builder.TypeBuilder[Player]
		want error
	}{
		{
			"owner mismatch",
			builder.For[Player](nil, "Player").
				AddField(accessor.NewField("FOV", "float32", func(o *Camera) *float32 { return &o.FOV })),
			builder.ErrOwnerMismatch,
		},
		{
			"duplicate member",
			builder.For[Player](nil, "Player").
				AddField(accessor.NewField("Health", "int", func(o *Player) *int { return &o.Health })).
				AddField(accessor.NewField("Health", "int", func(o *Player) *int { return &o.Health })),
			builder.ErrDuplicateMember,
		},
		{
			"nil accessor",
			builder.For[Player](nil, "Player").AddField(nil),
			builder.ErrNilAccessor,
		},
		{
			"foreign method",
			builder.For[Player](nil, "Player").AddMethod("Heal", func(c *Camera, n int) {}),
			accessor.ErrReceiverType,
		},
		{
			"not a function",
			builder.For[Player](nil, "Player").AddMethod("Heal", 42),
			accessor.ErrUnsupportedSignature,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			desc, err := tc.b.Build()
			if !errors.Is(err, tc.want) {
				t.Fatalf("Build: want %v, got %v", tc.want, err)
			}
			if desc != nil {
				t.Fatalf("Build: want nil descriptor on error")
			}
		})
	}
}

func TestBuild_ReportsAllErrors(t *testing.T) {
	_, err := builder.For[Player](nil, "Player").
		AddField(nil).
		AddMethod("Bad", 1).
		Build()
	if !errors.Is(err, builder.ErrNilAccessor) || !errors.Is(err, accessor.ErrUnsupportedSignature) {
		t.Fatalf("want both errors joined, got %v", err)
	}
}

func TestBuilder_SingleUse(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	b := builder.For[Camera](reg, "Camera")
	if err := b.Register(); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := b.Register(); !errors.Is(err, builder.ErrBuilderConsumed) {
		t.Fatalf("second Register: want ErrBuilderConsumed, got %v", err)
	}
	if _, err := b.Build(); !errors.Is(err, builder.ErrBuilderConsumed) {
		t.Fatalf("Build after Register: want ErrBuilderConsumed, got %v", err)
	}
}

func TestRegister_NilRegistry(t *testing.T) {
	if err := builder.For[Camera](nil, "Camera").Register(); !errors.Is(err, builder.ErrNilRegistry) {
		t.Fatalf("want ErrNilRegistry, got %v", err)
	}
}

func TestRegister_Frozen(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	reg.Freeze()
	if err := builder.For[Camera](reg, "Camera").Register(); !errors.Is(err, registry.ErrFrozen) {
		t.Fatalf("want ErrFrozen, got %v", err)
	}
}
