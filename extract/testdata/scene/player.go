package scene

//rtti:class name=Hero
type Player struct {
	//rtti:field
	Health int
	//rtti:field
	Name string
	//rtti:field
	Tags, Aliases []string
	//rtti:field
	*Transform
	//rtti:field
	Grid [][]int

	Secret string //rtti:nothing
}

//rtti:method
func (p *Player) Heal(amount int) { p.Health += amount }

//rtti:method name=is_alive
func (p Player) Alive() bool { return p.Health > 0 }

func (p *Player) Unmarked() {}

//rtti:method
func (g *Ghost) Haunt() {}

//rtti:method
func Free() {}

type Ghost struct{}

//rtti:enum
type Season uint8

const (
	SeasonNone Season = iota
	Spring
	Summer
	_
	Fall
	Winter
)

const Untyped = 3

const Solstice = Season(9)

//rtti:enum
type Empty int

//rtti:enum
type Label string
