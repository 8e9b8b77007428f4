package metrics

import (
	"math"

	"github.com/san-kum/springlab/internal/lattice"
)

// MaxStretch records the largest relative spring deformation seen during a
// run. Values near zero mean the lattice stayed close to rest length.
type MaxStretch struct {
	max float64
}

func NewMaxStretch() *MaxStretch { return &MaxStretch{} }

func (m *MaxStretch) Name() string { return "max_stretch" }

func (m *MaxStretch) Observe(sys *lattice.System, t float64) {
	for i := 0; i < sys.SpringCount(); i++ {
		m.max = math.Max(m.max, math.Abs(sys.SpringAt(i).Stretch))
	}
}

func (m *MaxStretch) Value() float64 { return m.max }

func (m *MaxStretch) Reset() { m.max = 0 }

// Settle reports the fraction of ticks on which every mass moved slower than
// the threshold. A run ending fully damped scores close to 1.
type Settle struct {
	threshold float64
	calm      int
	samples   int
}

func NewSettle(threshold float64) *Settle {
	return &Settle{threshold: threshold}
}

func (s *Settle) Name() string { return "settle" }

func (s *Settle) Observe(sys *lattice.System, t float64) {
	s.samples++
	for _, m := range sys.Masses() {
		if m.Velocity.Length() > s.threshold {
			return
		}
	}
	s.calm++
}

func (s *Settle) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return float64(s.calm) / float64(s.samples)
}

func (s *Settle) Reset() {
	s.calm = 0
	s.samples = 0
}
