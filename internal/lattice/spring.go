package lattice

// Spring is a damped linear constraint between the masses at indices First
// and Second in the owning System. It never owns its endpoints.
type Spring struct {
	First, Second int

	RestLength float64
	Stiffness  float64
	Damping    float64
}

// SpringInit describes a spring to be added to a System.
type SpringInit struct {
	RestLength float64
	Stiffness  float64
	Damping    float64
}

// applyForce appends the Hooke and damping force pairs to both endpoints.
// Coincident endpoints span no axis, so both terms are skipped rather than
// normalizing a zero vector. Returns the number of appends dropped by full
// accumulators.
func (s *Spring) applyForce(first, second *Mass) int {
	span := second.Position.Sub(first.Position)
	length := span.Length()
	if length == 0 {
		return 0
	}
	dir := span.Scale(1 / length)
	dropped := 0

	displacement := s.RestLength - length
	if err := first.AppendForce(dir.Scale(-s.Stiffness * displacement)); err != nil {
		dropped++
	}
	if err := second.AppendForce(dir.Scale(s.Stiffness * displacement)); err != nil {
		dropped++
	}

	// Closing speed along the spring axis.
	rate := first.Velocity.Dot(dir) - second.Velocity.Dot(dir)
	if err := first.AppendForce(dir.Scale(-s.Damping * rate)); err != nil {
		dropped++
	}
	if err := second.AppendForce(dir.Scale(s.Damping * rate)); err != nil {
		dropped++
	}
	return dropped
}
