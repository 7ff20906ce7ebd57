package demo

// Person is anybody attending the school.
type Person interface {
	Role() string
}

// Player is the root object of the demo.
type Player struct {
	HP     int    `inspect:"name=Health,tooltip=Clamped to 0..100,proxy=Health"`
	Person Person `inspect:"name=Person,tooltip=Who the player is"`
	A      int
	B      int `inspect:"readonly"`
}

// NewPlayer returns a player with the default counters.
func NewPlayer() *Player {
	return &Player{A: 10, B: 20}
}

// Health returns the hit points.
func (p *Player) Health() int {
	return p.HP
}

// SetHealth stores v clamped to [0, 100].
func (p *Player) SetHealth(v int) {
	p.HP = min(max(v, 0), 100)
}
