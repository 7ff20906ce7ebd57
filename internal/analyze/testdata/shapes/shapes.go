package shapes

type Shape interface {
	Area() float64
}

type Solid interface {
	Shape
	Volume() float64
}

type Square struct{ Side float64 }

func (s Square) Area() float64 { return s.Side * s.Side }

func NewSquare() Square { return Square{Side: 1} }

type Circle struct{ R float64 }

func (c *Circle) Area() float64 { return 3 * c.R * c.R }

func NewCircle() *Circle { return &Circle{R: 1} }

type Meters float64

func (m Meters) Area() float64 { return float64(m) }

type Blob struct{ Size int }

func (b *Blob) Area() float64 { return float64(b.Size) }

func NewBlob(size int) *Blob { return &Blob{Size: size} }

type Box[T any] struct{ V T }

func (Box[T]) Area() float64 { return 0 }

type hidden struct{}

func (hidden) Area() float64 { return 0 }

type Label string
