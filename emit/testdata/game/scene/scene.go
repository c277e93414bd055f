package scene

import "time"

type Seq[T any] []T

//rtti:class
type Vector3 struct {
	X float32 //rtti:field name=x
	Y float32 //rtti:field name=y
	Z float32 //rtti:field name=z
}

//rtti:class
type Player struct {
	//rtti:field
	Health int
	//rtti:field
	Position *Vector3
	//rtti:field
	Tags []string
	//rtti:field
	Path Seq[Vector3]
	//rtti:field
	Stats map[string]int
	//rtti:field
	Key [4]byte
	//rtti:field
	Updated time.Time
}

//rtti:method
func (p *Player) Heal(amount int) { p.Health += amount }

//rtti:method
func (p Player) Alive() bool { return p.Health > 0 }

//rtti:enum
type Season int

const (
	SeasonNone Season = iota
	Spring
	Summer
	Fall
	Winter
)
