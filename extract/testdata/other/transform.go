package other

//rtti:class
type Transform struct {
	Scale float64 //rtti:field
}

//rtti:method
func (t *Transform) Reset() {}

//rtti:enum
type Season int

const (
	None Season = iota
	Monsoon
)
