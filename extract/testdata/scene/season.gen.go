package scene

//rtti:class
type Generated struct{}
