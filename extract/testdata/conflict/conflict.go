package conflict

//rtti:class
//rtti:enum
type Both struct{}

//rtti:class
type Fields struct {
	//rtti:field
	A int //rtti:method
}
