package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/springlab/internal/lattice"
	"github.com/san-kum/springlab/internal/vec"
)

const (
	massRadius = 8.0
	// speedScale maps mass speed onto the blue-to-red ramp.
	speedScale = 100.0
)

func drawSystem(sys *lattice.System) {
	for i := 0; i < sys.SpringCount(); i++ {
		v := sys.SpringAt(i)
		var c rl.Color
		if v.Stretch < 0 {
			c = lerpColor(rl.White, rl.Red, -v.Stretch)
		} else {
			c = lerpColor(rl.White, rl.Blue, v.Stretch)
		}
		rl.DrawLineV(rlVec(v.First), rlVec(v.Second), c)
	}

	for _, m := range sys.Masses() {
		c := lerpColor(rl.Blue, rl.Red, m.Velocity.Length()/speedScale)
		rl.DrawCircleV(rlVec(m.Position), massRadius, c)
	}
}

func rlVec(v vec.Vec2) rl.Vector2 {
	return rl.NewVector2(float32(v.X), float32(v.Y))
}

func lerpColor(a, b rl.Color, t float64) rl.Color {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return rl.NewColor(lerp(a.R, b.R), lerp(a.G, b.G), lerp(a.B, b.B), lerp(a.A, b.A))
}
