package scene

//rtti:class
type TestOnly struct{}
