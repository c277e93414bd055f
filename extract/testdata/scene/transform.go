package scene

import (
	"time"

	m "example.com/game/math"
)

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
	Children []*Transform
	//rtti:field
	Weights Seq[float32]
	//rtti:field
	Matrix m.Mat4
	//rtti:field
	Updated time.Time

	cache []byte
}

type Seq[T any] []T

//rtti:class
type Pool[T any] struct {
	Items []T //rtti:field
}

//rtti:class
type Handle int
