package lattice

import (
	"math"
	"testing"

	"github.com/san-kum/springlab/internal/vec"
)

func sumForces(m *Mass) vec.Vec2 {
	total := vec.Zero
	for _, f := range m.forces {
		total = total.Add(f)
	}
	return total
}

func TestSpringNewtonThirdLaw(t *testing.T) {
	a := newTestMass(MassInit{Position: vec.New(0, 0), Velocity: vec.New(3, -1), Mass: 1}, 8)
	b := newTestMass(MassInit{Position: vec.New(7, 2), Velocity: vec.New(-2, 4), Mass: 1}, 8)
	s := &Spring{RestLength: 5, Stiffness: 1000, Damping: 5}

	if dropped := s.applyForce(a, b); dropped != 0 {
		t.Fatalf("dropped %d forces", dropped)
	}

	net := sumForces(a).Add(sumForces(b))
	if net != vec.Zero {
		t.Errorf("net force on the pair is %v, expected zero", net)
	}
	if a.ForceCount() != 2 || b.ForceCount() != 2 {
		t.Errorf("expected one Hooke and one damping term per mass, got %d and %d",
			a.ForceCount(), b.ForceCount())
	}
}

func TestSpringRestLengthEquilibrium(t *testing.T) {
	a := newTestMass(MassInit{Position: vec.New(0, 0), Mass: 1}, 8)
	b := newTestMass(MassInit{Position: vec.New(10, 0), Mass: 1}, 8)
	s := &Spring{RestLength: 10, Stiffness: 1000, Damping: 5}

	s.applyForce(a, b)

	for _, f := range append(append([]vec.Vec2{}, a.forces...), b.forces...) {
		if f.Length() > 1e-12 {
			t.Errorf("non-zero force %v at rest length with zero closing speed", f)
		}
	}
}

func TestSpringStretchedPullsTogether(t *testing.T) {
	a := newTestMass(MassInit{Position: vec.New(0, 0), Mass: 1}, 8)
	b := newTestMass(MassInit{Position: vec.New(20, 0), Mass: 1}, 8)
	s := &Spring{RestLength: 10, Stiffness: 100, Damping: 0}

	s.applyForce(a, b)

	// Stretched: first is pulled toward second (+X), second toward first.
	fa, fb := sumForces(a), sumForces(b)
	if fa.X <= 0 {
		t.Errorf("force on first mass points away from second: %v", fa)
	}
	if fb.X >= 0 {
		t.Errorf("force on second mass points away from first: %v", fb)
	}
	if want := 100.0 * 10.0; math.Abs(fa.Length()-want) > 1e-9 {
		t.Errorf("Hooke magnitude: got %f, expected %f", fa.Length(), want)
	}
}

func TestSpringDampingOpposesClosing(t *testing.T) {
	// Masses at rest length, first moving toward second: damping alone acts
	// and must push back against the closing motion.
	a := newTestMass(MassInit{Position: vec.New(0, 0), Velocity: vec.New(4, 0), Mass: 1}, 8)
	b := newTestMass(MassInit{Position: vec.New(10, 0), Mass: 1}, 8)
	s := &Spring{RestLength: 10, Stiffness: 1000, Damping: 2}

	s.applyForce(a, b)

	fa := sumForces(a)
	if fa.X >= 0 {
		t.Errorf("damping should oppose first mass's motion, got %v", fa)
	}
	if want := 2.0 * 4.0; math.Abs(fa.Length()-want) > 1e-9 {
		t.Errorf("damping magnitude: got %f, expected %f", fa.Length(), want)
	}
}

func TestSpringCoincidentEndpoints(t *testing.T) {
	// Zero span has no axis: the spring applies nothing rather than
	// propagating a NaN direction.
	at := vec.New(5, 5)
	a := newTestMass(MassInit{Position: at, Velocity: vec.New(1, 0), Mass: 1}, 8)
	b := newTestMass(MassInit{Position: at, Velocity: vec.New(-1, 0), Mass: 1}, 8)
	s := &Spring{RestLength: 10, Stiffness: 1000, Damping: 5}

	if dropped := s.applyForce(a, b); dropped != 0 {
		t.Fatalf("dropped %d forces", dropped)
	}
	if a.ForceCount() != 0 || b.ForceCount() != 0 {
		t.Errorf("coincident endpoints appended forces: %d and %d",
			a.ForceCount(), b.ForceCount())
	}

	a.Integrate(vec.Zero, 0.01)
	if !a.Position.IsValid() || !a.Velocity.IsValid() {
		t.Errorf("state invalid after degenerate spring: p=%v v=%v", a.Position, a.Velocity)
	}
}

func TestSpringAccumulatesAcrossSprings(t *testing.T) {
	// A mass shared by two springs collects contributions from both.
	shared := newTestMass(MassInit{Position: vec.New(0, 0), Mass: 1}, 8)
	left := newTestMass(MassInit{Position: vec.New(-20, 0), Mass: 1}, 8)
	right := newTestMass(MassInit{Position: vec.New(20, 0), Mass: 1}, 8)

	s1 := &Spring{RestLength: 10, Stiffness: 100, Damping: 0}
	s2 := &Spring{RestLength: 10, Stiffness: 100, Damping: 0}
	s1.applyForce(left, shared)
	s2.applyForce(shared, right)

	if shared.ForceCount() != 4 {
		t.Errorf("shared mass force count: got %d, expected 4", shared.ForceCount())
	}
	// Symmetric pulls cancel.
	if net := sumForces(shared); net.Length() > 1e-9 {
		t.Errorf("symmetric configuration should cancel, net %v", net)
	}
}
