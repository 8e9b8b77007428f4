package lattice

import (
	"math"
	"testing"

	"github.com/san-kum/springlab/internal/vec"
)

func buildTestGrid(t *testing.T, rows, cols int) *Stepper {
	t.Helper()
	sys := NewSystem(DefaultConfig())
	err := BuildGrid(sys, GridSpec{
		Rows: rows, Cols: cols,
		CellSize: 10, Mass: 1, Stiffness: 1000, Damping: 5,
	})
	if err != nil {
		t.Fatalf("build grid: %v", err)
	}
	return NewStepper(sys)
}

func TestTickClearsAccumulators(t *testing.T) {
	st := buildTestGrid(t, 3, 3)
	st.Tick(0.01)

	for i, m := range st.System().Masses() {
		if m.ForceCount() != 0 {
			t.Errorf("mass %d: %d forces left after tick", i, m.ForceCount())
		}
	}
}

func TestTickQueuesWindForNextTick(t *testing.T) {
	st := buildTestGrid(t, 3, 3)
	st.SetWind(vec.New(75, 0))
	st.SetWindEnabled(true)

	st.Tick(0.01)

	for i, m := range st.System().Masses() {
		want := 1
		if m.Fixed {
			want = 0
		}
		if m.ForceCount() != want {
			t.Errorf("mass %d (fixed=%v): %d queued forces, expected %d",
				i, m.Fixed, m.ForceCount(), want)
		}
	}

	st.SetWindEnabled(false)
	st.Tick(0.01)
	for i, m := range st.System().Masses() {
		if m.ForceCount() != 0 {
			t.Errorf("mass %d: wind still queued after disable: %d", i, m.ForceCount())
		}
	}
}

func TestHangingRopeSagsUnderGravity(t *testing.T) {
	st := buildTestGrid(t, 5, 1)
	bottom := st.System().MassCount() - 1
	y0 := st.System().Mass(bottom).Position.Y

	for i := 0; i < 200; i++ {
		st.Tick(1.0 / 60)
	}

	sys := st.System()
	if y := sys.Mass(bottom).Position.Y; y <= y0 {
		t.Errorf("bottom mass did not sag: y %f -> %f", y0, y)
	}
	if p := sys.Mass(0).Position; p != vec.Zero {
		t.Errorf("pinned top moved to %v", p)
	}
	for i := 0; i < sys.MassCount(); i++ {
		m := sys.Mass(i)
		if !m.Position.IsValid() || !m.Velocity.IsValid() {
			t.Fatalf("mass %d diverged: p=%v v=%v", i, m.Position, m.Velocity)
		}
	}
}

func TestDampedClothSettles(t *testing.T) {
	st := buildTestGrid(t, 4, 4)
	for i := 0; i < 3000; i++ {
		st.Tick(1.0 / 120)
	}

	maxSpeed := 0.0
	for _, m := range st.System().Masses() {
		maxSpeed = math.Max(maxSpeed, m.Velocity.Length())
	}
	if maxSpeed > 1.0 {
		t.Errorf("cloth still moving after settling time: max speed %f", maxSpeed)
	}
}

func TestStepperAccounting(t *testing.T) {
	st := buildTestGrid(t, 2, 2)
	for i := 0; i < 10; i++ {
		st.Tick(0.5)
	}
	if st.Ticks() != 10 {
		t.Errorf("ticks: got %d", st.Ticks())
	}
	if math.Abs(st.Time()-5.0) > 1e-12 {
		t.Errorf("time: got %f", st.Time())
	}

	st.Reset()
	if st.Ticks() != 0 || st.Time() != 0 {
		t.Errorf("reset left ticks=%d time=%f", st.Ticks(), st.Time())
	}
	if st.System().MassCount() != 4 {
		t.Errorf("reset must not touch topology")
	}
}
