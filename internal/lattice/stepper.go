package lattice

import "github.com/san-kum/springlab/internal/vec"

// Stepper advances a System one tick at a time in a fixed order: spring
// forces, integration, accumulator reset, then any enabled wind queued for
// the next tick. Nothing interleaves within a tick.
type Stepper struct {
	sys    *System
	wind   vec.Vec2
	windOn bool
	ticks  int
	time   float64
}

func NewStepper(sys *System) *Stepper {
	return &Stepper{sys: sys}
}

func (st *Stepper) System() *System { return st.sys }

// SetWind sets the uniform force queued on every non-fixed mass after each
// tick while wind is enabled.
func (st *Stepper) SetWind(f vec.Vec2) { st.wind = f }

// ToggleWind flips wind injection and reports the new state.
func (st *Stepper) ToggleWind() bool {
	st.windOn = !st.windOn
	return st.windOn
}

func (st *Stepper) SetWindEnabled(on bool) { st.windOn = on }
func (st *Stepper) WindEnabled() bool      { return st.windOn }

// Tick runs one full simulation step of size dt.
func (st *Stepper) Tick(dt float64) {
	st.sys.StepSprings()
	st.sys.StepIntegrate(dt)
	st.sys.ResetForces()
	if st.windOn {
		st.sys.ApplyGlobalForce(st.wind)
	}
	st.ticks++
	st.time += dt
}

// Ticks reports how many ticks have run since creation or Reset.
func (st *Stepper) Ticks() int { return st.ticks }

// Time reports accumulated simulated time.
func (st *Stepper) Time() float64 { return st.time }

// Reset zeroes the tick and time counters. The System's contents are left
// alone; rebuild the topology separately if needed.
func (st *Stepper) Reset() {
	st.ticks = 0
	st.time = 0
}
