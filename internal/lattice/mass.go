package lattice

import "github.com/san-kum/springlab/internal/vec"

// Mass is a point body. Forces queued between ticks are consumed by the next
// Integrate call; the accumulator is bounded and never grows.
type Mass struct {
	Position     vec.Vec2
	Velocity     vec.Vec2
	Acceleration vec.Vec2
	Mass         float64
	Fixed        bool

	forces []vec.Vec2 // allocated once by the owning System
}

// MassInit describes a mass to be added to a System.
type MassInit struct {
	Position vec.Vec2
	Velocity vec.Vec2
	Mass     float64
	Fixed    bool
}

// AppendForce queues f for the next integration step. At capacity the force
// is dropped, the mass is otherwise unaffected, and ErrForceCapacity is
// returned.
func (m *Mass) AppendForce(f vec.Vec2) error {
	if len(m.forces) == cap(m.forces) {
		return ErrForceCapacity
	}
	m.forces = append(m.forces, f)
	return nil
}

// ForceCount reports the number of queued forces.
func (m *Mass) ForceCount() int { return len(m.forces) }

// ResetForces discards all queued forces. Idempotent.
func (m *Mass) ResetForces() { m.forces = m.forces[:0] }

// Integrate advances the mass one semi-implicit Euler step: acceleration from
// gravity and queued forces, then velocity, then position from the updated
// velocity. The velocity-first ordering is what keeps stiff springs stable;
// do not reorder. Fixed masses never move. Queued forces are left in place
// for the caller to reset.
func (m *Mass) Integrate(gravity vec.Vec2, dt float64) {
	if m.Fixed {
		return
	}
	m.Acceleration = gravity
	for _, f := range m.forces {
		m.Acceleration = m.Acceleration.Add(f.Scale(1 / m.Mass))
	}
	m.Velocity = m.Velocity.Add(m.Acceleration.Scale(dt))
	m.Position = m.Position.Add(m.Velocity.Scale(dt))
}
