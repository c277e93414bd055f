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

// Package scene is a small marked package used to exercise rttigen end to
// end. Its *.gen.go files and ../generated are produced from these
// declarations.
package scene

import "errors"

// ErrDead is returned when a dead player is damaged.
var ErrDead = errors.New("scene: player is dead")

//rtti:class
type Vector3 struct {
	X float32 //rtti:field name=x
	Y float32 //rtti:field name=y
	Z float32 //rtti:field name=z
}

//rtti:struct
type Transform struct {
	//rtti:field
	Position Vector3
	//rtti:field
	Scale Vector3
	//rtti:field
	Children []*Transform
}

//rtti:class
type Player struct {
	//rtti:field
	Name string
	//rtti:field
	Health int
	//rtti:field
	Transform *Transform
	//rtti:field
	Inventory []string
	//rtti:field
	Season Season

	cooldown int
}

//rtti:method
func (p *Player) Heal(amount int) { p.Health += amount }

//rtti:method
func (p *Player) Damage(amount int) error {
	if p.Health <= 0 {
		return ErrDead
	}
	p.Health -= amount
	return nil
}

//rtti:method
func (p Player) Alive() bool { return p.Health > 0 }

// Position is not marked and stays invisible to reflection.
func (p *Player) Position() Vector3 {
	if p.Transform == nil {
		return Vector3{}
	}
	return p.Transform.Position
}

//rtti:enum
type Season uint8

const (
	SeasonNone Season = iota
	Spring
	Summer
	Fall
	Winter
)
