package broken

//rtti:class
type Broken struct {
	A int //rtti:field
