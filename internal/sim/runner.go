package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/springlab/internal/lattice"
	"github.com/san-kum/springlab/internal/vec"
)

// Metric samples the system once per tick and reduces to a scalar.
type Metric interface {
	Name() string
	Observe(sys *lattice.System, t float64)
	Value() float64
	Reset()
}

// Observer receives the system after every tick.
type Observer interface {
	OnTick(sys *lattice.System, t float64)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(sys *lattice.System, t float64)

func (f ObserverFunc) OnTick(sys *lattice.System, t float64) { f(sys, t) }

// Config controls a headless run.
type Config struct {
	Dt       float64
	Duration float64
	// RecordEvery captures a position snapshot every n ticks; 0 disables
	// recording.
	RecordEvery int
}

// Frame is a recorded position snapshot.
type Frame struct {
	Time      float64
	Positions []vec.Vec2
}

// Result collects everything a run produced.
type Result struct {
	Frames        []Frame
	Metrics       map[string]float64
	EnergyDrift   float64
	TicksRun      int
	DroppedForces int
}

// Runner drives a Stepper for a configured duration, feeding metrics and
// observers after every tick. Not safe for concurrent use; see Ensemble for
// parallel runs.
type Runner struct {
	stepper   *lattice.Stepper
	metrics   []Metric
	observers []Observer
}

func New(stepper *lattice.Stepper) *Runner {
	return &Runner{stepper: stepper}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) Stepper() *lattice.Stepper { return r.stepper }

// Run executes ticks until the configured duration elapses or ctx is
// canceled. The partial result is returned alongside the context error.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	sys := r.stepper.System()
	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{Metrics: make(map[string]float64)}
	if cfg.RecordEvery > 0 {
		result.Frames = make([]Frame, 0, steps/cfg.RecordEvery+1)
	}

	for _, m := range r.metrics {
		m.Reset()
	}
	initialEnergy := sys.Energy()

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			r.finish(result, sys, initialEnergy)
			return result, ctx.Err()
		default:
		}

		r.stepper.Tick(cfg.Dt)
		result.TicksRun++
		t := r.stepper.Time()

		for _, m := range r.metrics {
			m.Observe(sys, t)
		}
		for _, obs := range r.observers {
			obs.OnTick(sys, t)
		}

		if cfg.RecordEvery > 0 && result.TicksRun%cfg.RecordEvery == 0 {
			result.Frames = append(result.Frames, snapshot(sys, t))
		}
	}

	r.finish(result, sys, initialEnergy)
	return result, nil
}

// RunWithCallback executes ticks until the duration elapses, ctx is canceled,
// or the callback returns false.
func (r *Runner) RunWithCallback(ctx context.Context, cfg Config, callback func(sys *lattice.System, t float64) bool) error {
	if err := validate(cfg); err != nil {
		return err
	}

	sys := r.stepper.System()
	steps := int(cfg.Duration / cfg.Dt)
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		r.stepper.Tick(cfg.Dt)
		if !callback(sys, r.stepper.Time()) {
			return nil
		}
	}
	return nil
}

func (r *Runner) finish(result *Result, sys *lattice.System, initialEnergy float64) {
	result.DroppedForces = sys.DroppedForces()
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(sys.Energy()-initialEnergy) / math.Abs(initialEnergy)
	}
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func snapshot(sys *lattice.System, t float64) Frame {
	masses := sys.Masses()
	frame := Frame{Time: t, Positions: make([]vec.Vec2, len(masses))}
	for i := range masses {
		frame.Positions[i] = masses[i].Position
	}
	return frame
}

func validate(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	if cfg.RecordEvery < 0 {
		return fmt.Errorf("record interval must be non-negative, got %d", cfg.RecordEvery)
	}
	return nil
}
