package vec

import "math"

// Vec2 is a 2D vector with float64 components.
type Vec2 struct {
	X, Y float64
}

func New(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// Zero is the additive identity.
var Zero = Vec2{}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

func (v Vec2) Length() float64 { return math.Hypot(v.X, v.Y) }

func (v Vec2) LengthSq() float64 { return v.X*v.X + v.Y*v.Y }

// Normalize returns the unit vector pointing in v's direction.
// The zero vector has no direction and normalizes to itself.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Zero
	}
	return v.Scale(1 / l)
}

func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
