package metrics

import (
	"math"

	"github.com/san-kum/springlab/internal/lattice"
)

// AvgEnergy averages the system's total mechanical energy over a run.
type AvgEnergy struct {
	total   float64
	samples int
}

func NewAvgEnergy() *AvgEnergy { return &AvgEnergy{} }

func (e *AvgEnergy) Name() string { return "avg_energy" }

func (e *AvgEnergy) Observe(sys *lattice.System, t float64) {
	e.total += sys.Energy()
	e.samples++
}

func (e *AvgEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *AvgEnergy) Reset() {
	e.total = 0
	e.samples = 0
}

// EnergyDrift tracks the maximum relative deviation from the first observed
// energy. Damped systems are expected to drift; this is a diagnostic, not an
// invariant.
type EnergyDrift struct {
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *EnergyDrift { return &EnergyDrift{} }

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(sys *lattice.System, t float64) {
	energy := sys.Energy()
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}
