package lattice

import (
	"fmt"

	"github.com/san-kum/springlab/internal/vec"
)

const (
	DefaultSystemCapacity = 8096
	DefaultForceCapacity  = 64
)

// Config declares a System's capacities and ambient acceleration.
type Config struct {
	MassCapacity   int
	SpringCapacity int
	ForceCapacity  int
	Gravity        vec.Vec2
}

// DefaultConfig matches the classic hanging-cloth tuning: screen-space
// gravity pointing down the Y axis.
func DefaultConfig() Config {
	return Config{
		MassCapacity:   DefaultSystemCapacity,
		SpringCapacity: DefaultSystemCapacity,
		ForceCapacity:  DefaultForceCapacity,
		Gravity:        vec.Vec2{X: 0, Y: 98},
	}
}

// System owns bounded stores of masses and springs. Springs reference masses
// by index; existing entries are never moved or removed individually, so
// indices stay valid until Clear.
type System struct {
	cfg     Config
	masses  []Mass
	springs []Spring
	dropped int
}

// NewSystem allocates a System with the given capacities. Non-positive
// capacities fall back to the defaults.
func NewSystem(cfg Config) *System {
	def := DefaultConfig()
	if cfg.MassCapacity <= 0 {
		cfg.MassCapacity = def.MassCapacity
	}
	if cfg.SpringCapacity <= 0 {
		cfg.SpringCapacity = def.SpringCapacity
	}
	if cfg.ForceCapacity <= 0 {
		cfg.ForceCapacity = def.ForceCapacity
	}
	return &System{
		cfg:     cfg,
		masses:  make([]Mass, 0, cfg.MassCapacity),
		springs: make([]Spring, 0, cfg.SpringCapacity),
	}
}

func (sys *System) Config() Config { return sys.cfg }

// AddMass appends a mass and returns its index.
func (sys *System) AddMass(init MassInit) (int, error) {
	if len(sys.masses) == cap(sys.masses) {
		return 0, ErrMassCapacity
	}
	sys.masses = append(sys.masses, Mass{
		Position: init.Position,
		Velocity: init.Velocity,
		Mass:     init.Mass,
		Fixed:    init.Fixed,
		forces:   make([]vec.Vec2, 0, sys.cfg.ForceCapacity),
	})
	return len(sys.masses) - 1, nil
}

// AddSpring connects the masses at indices first and second.
func (sys *System) AddSpring(init SpringInit, first, second int) error {
	if len(sys.springs) == cap(sys.springs) {
		return ErrSpringCapacity
	}
	if first < 0 || first >= len(sys.masses) {
		return fmt.Errorf("first endpoint %d of %d masses: %w", first, len(sys.masses), ErrMassIndex)
	}
	if second < 0 || second >= len(sys.masses) {
		return fmt.Errorf("second endpoint %d of %d masses: %w", second, len(sys.masses), ErrMassIndex)
	}
	if first == second {
		return fmt.Errorf("endpoint %d twice: %w", first, ErrSpringEndpoints)
	}
	sys.springs = append(sys.springs, Spring{
		First:      first,
		Second:     second,
		RestLength: init.RestLength,
		Stiffness:  init.Stiffness,
		Damping:    init.Damping,
	})
	return nil
}

// StepSprings applies every spring's force pair to its endpoint masses.
func (sys *System) StepSprings() {
	for i := range sys.springs {
		s := &sys.springs[i]
		sys.dropped += s.applyForce(&sys.masses[s.First], &sys.masses[s.Second])
	}
}

// StepIntegrate advances every mass by dt under the configured gravity.
func (sys *System) StepIntegrate(dt float64) {
	for i := range sys.masses {
		sys.masses[i].Integrate(sys.cfg.Gravity, dt)
	}
}

// ResetForces clears every mass's accumulator.
func (sys *System) ResetForces() {
	for i := range sys.masses {
		sys.masses[i].ResetForces()
	}
}

// ApplyGlobalForce queues f on every non-fixed mass, to be consumed by the
// next integration step.
func (sys *System) ApplyGlobalForce(f vec.Vec2) {
	for i := range sys.masses {
		if sys.masses[i].Fixed {
			continue
		}
		if err := sys.masses[i].AppendForce(f); err != nil {
			sys.dropped++
		}
	}
}

// Clear discards all masses and springs, retaining capacity. Every spring
// index handed out before Clear is invalid afterwards.
func (sys *System) Clear() {
	sys.masses = sys.masses[:0]
	sys.springs = sys.springs[:0]
	sys.dropped = 0
}

func (sys *System) MassCount() int   { return len(sys.masses) }
func (sys *System) SpringCount() int { return len(sys.springs) }

// Mass returns the mass at index i. The pointer stays valid until Clear.
func (sys *System) Mass(i int) *Mass { return &sys.masses[i] }

// Masses exposes the mass store in insertion order for read access.
func (sys *System) Masses() []Mass { return sys.masses }

// Springs exposes the spring store in insertion order for read access.
func (sys *System) Springs() []Spring { return sys.springs }

// DroppedForces reports how many force appends were rejected by full
// accumulators since the last Clear.
func (sys *System) DroppedForces() int { return sys.dropped }

// SpringView is a spring with endpoints resolved for presentation.
type SpringView struct {
	First, Second vec.Vec2
	RestLength    float64
	// Stretch is (restLength - length) / length: negative when extended,
	// positive when compressed, zero for a degenerate span.
	Stretch float64
}

// SpringAt resolves spring i against the current mass positions.
func (sys *System) SpringAt(i int) SpringView {
	s := &sys.springs[i]
	a := sys.masses[s.First].Position
	b := sys.masses[s.Second].Position
	view := SpringView{First: a, Second: b, RestLength: s.RestLength}
	if l := b.Sub(a).Length(); l > 0 {
		view.Stretch = (s.RestLength - l) / l
	}
	return view
}

// Energy reports the system's total mechanical energy: kinetic plus elastic
// plus gravitational potential (relative to the origin).
func (sys *System) Energy() float64 {
	e := 0.0
	for i := range sys.masses {
		m := &sys.masses[i]
		e += 0.5 * m.Mass * m.Velocity.LengthSq()
		e -= m.Mass * sys.cfg.Gravity.Dot(m.Position)
	}
	for i := range sys.springs {
		s := &sys.springs[i]
		span := sys.masses[s.Second].Position.Sub(sys.masses[s.First].Position)
		d := s.RestLength - span.Length()
		e += 0.5 * s.Stiffness * d * d
	}
	return e
}
