package sim

import (
	"context"
	"sync"

	"github.com/san-kum/springlab/internal/lattice"
)

// Variant is one parameter set in a sweep. Build must return a fresh stepper
// owning its own System so variants never share state.
type Variant struct {
	Name  string
	Build func() (*lattice.Stepper, error)
}

// Ensemble runs independent variants concurrently. Each system is confined
// to its own goroutine, so no locking is needed around the lattice itself.
type Ensemble struct {
	variants []Variant
	metrics  func() []Metric
}

// NewEnsemble creates an ensemble over the given variants. metrics, when
// non-nil, supplies a fresh metric set per run.
func NewEnsemble(variants []Variant, metrics func() []Metric) *Ensemble {
	return &Ensemble{variants: variants, metrics: metrics}
}

// Run executes every variant and returns results in variant order. The first
// build or run error wins.
func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(e.variants))
	errs := make([]error, len(e.variants))

	var wg sync.WaitGroup
	for i, v := range e.variants {
		wg.Add(1)
		go func(idx int, v Variant) {
			defer wg.Done()

			stepper, err := v.Build()
			if err != nil {
				errs[idx] = err
				return
			}
			runner := New(stepper)
			if e.metrics != nil {
				for _, m := range e.metrics() {
					runner.AddMetric(m)
				}
			}
			results[idx], errs[idx] = runner.Run(ctx, cfg)
		}(i, v)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
