package lattice

import (
	"math"
	"testing"

	"github.com/san-kum/springlab/internal/vec"
)

func newTestMass(init MassInit, forceCap int) *Mass {
	return &Mass{
		Position: init.Position,
		Velocity: init.Velocity,
		Mass:     init.Mass,
		Fixed:    init.Fixed,
		forces:   make([]vec.Vec2, 0, forceCap),
	}
}

func TestFixedMassNeverMoves(t *testing.T) {
	m := newTestMass(MassInit{
		Position: vec.New(3, 7),
		Velocity: vec.New(1, -2),
		Mass:     1,
		Fixed:    true,
	}, 8)
	p0, v0 := m.Position, m.Velocity

	gravity := vec.New(0, 98)
	for i := 0; i < 50; i++ {
		m.AppendForce(vec.New(100, -250))
		m.Integrate(gravity, 0.016)
	}

	if m.Position != p0 {
		t.Errorf("fixed mass moved: %v -> %v", p0, m.Position)
	}
	if m.Velocity != v0 {
		t.Errorf("fixed mass changed velocity: %v -> %v", v0, m.Velocity)
	}
}

func TestForceFreeConstantVelocity(t *testing.T) {
	v0 := vec.New(2, -3)
	m := newTestMass(MassInit{Velocity: v0, Mass: 1}, 8)

	const (
		dt    = 0.01
		steps = 100
	)
	for i := 0; i < steps; i++ {
		m.Integrate(vec.Zero, dt)
	}

	want := v0.Scale(steps * dt)
	if math.Abs(m.Position.X-want.X) > 1e-9 || math.Abs(m.Position.Y-want.Y) > 1e-9 {
		t.Errorf("position: got %v, expected %v", m.Position, want)
	}
	if m.Velocity != v0 {
		t.Errorf("velocity drifted without forces: %v", m.Velocity)
	}
}

// The integrator must update velocity before position (semi-implicit Euler).
// With a single constant force, the first step's displacement is the
// post-update velocity times dt, not the initial velocity times dt.
func TestIntegrateIsSemiImplicit(t *testing.T) {
	m := newTestMass(MassInit{Velocity: vec.New(1, 0), Mass: 2}, 8)
	gravity := vec.New(0, 10)
	force := vec.New(4, 0)
	dt := 0.5

	m.AppendForce(force)
	m.Integrate(gravity, dt)

	wantAcc := gravity.Add(force.Scale(1.0 / 2.0))
	wantVel := vec.New(1, 0).Add(wantAcc.Scale(dt))
	wantPos := wantVel.Scale(dt)

	if m.Acceleration != wantAcc {
		t.Errorf("acceleration: got %v, expected %v", m.Acceleration, wantAcc)
	}
	if m.Velocity != wantVel {
		t.Errorf("velocity: got %v, expected %v", m.Velocity, wantVel)
	}
	if m.Position != wantPos {
		t.Errorf("position used stale velocity: got %v, expected %v", m.Position, wantPos)
	}
}

func TestAppendForceSaturation(t *testing.T) {
	const capF = 4
	m := newTestMass(MassInit{Mass: 1}, capF)

	for i := 0; i < capF; i++ {
		if err := m.AppendForce(vec.New(float64(i+1), 0)); err != nil {
			t.Fatalf("append %d failed below capacity: %v", i, err)
		}
	}
	if err := m.AppendForce(vec.New(99, 0)); err != ErrForceCapacity {
		t.Fatalf("expected ErrForceCapacity, got %v", err)
	}
	if m.ForceCount() != capF {
		t.Errorf("force count: got %d, expected %d", m.ForceCount(), capF)
	}
	for i, f := range m.forces {
		if f.X != float64(i+1) {
			t.Errorf("entry %d corrupted: %v", i, f)
		}
	}
}

func TestResetForcesIdempotent(t *testing.T) {
	m := newTestMass(MassInit{Mass: 1}, 4)
	m.AppendForce(vec.New(1, 1))
	m.AppendForce(vec.New(2, 2))

	m.ResetForces()
	if m.ForceCount() != 0 {
		t.Fatalf("count after reset: %d", m.ForceCount())
	}
	m.ResetForces()
	if m.ForceCount() != 0 {
		t.Fatalf("count after second reset: %d", m.ForceCount())
	}
	if err := m.AppendForce(vec.New(3, 3)); err != nil {
		t.Fatalf("append after reset: %v", err)
	}
}

func TestIntegrateLeavesForcesQueued(t *testing.T) {
	m := newTestMass(MassInit{Mass: 1}, 4)
	m.AppendForce(vec.New(1, 0))
	m.Integrate(vec.Zero, 0.01)
	if m.ForceCount() != 1 {
		t.Errorf("Integrate must not consume the accumulator: count %d", m.ForceCount())
	}
}
