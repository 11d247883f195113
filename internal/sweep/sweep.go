// Package sweep maps the largest Lyapunov exponent over a grid of
// initial conditions, running the per-point estimates in parallel.
package sweep

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/soham-b/orbitlab/internal/chaos"
	"github.com/soham-b/orbitlab/internal/force"
	"github.com/soham-b/orbitlab/internal/orbit"
)

// Point is the outcome for one initial condition. A failed point
// carries its error instead of aborting the whole map.
type Point struct {
	W0       orbit.Phase
	Exponent float64
	Err      error
}

// Sweep fans a Lyapunov request out over many initial conditions. Each
// worker owns its own Estimator, so points never share integration
// state.
type Sweep struct {
	field   force.Field
	tol     orbit.Tolerances
	workers int
}

type Option func(*Sweep)

// WithWorkers caps the number of concurrent estimates.
func WithWorkers(n int) Option {
	return func(s *Sweep) {
		if n > 0 {
			s.workers = n
		}
	}
}

func New(field force.Field, tol orbit.Tolerances, opts ...Option) (*Sweep, error) {
	if err := tol.Validate(); err != nil {
		return nil, err
	}
	s := &Sweep{field: field, tol: tol, workers: runtime.NumCPU()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Run estimates the exponent for every initial condition, applying the
// cadence and separation settings of base to each. Results come back in
// input order. Cancellation stops feeding new points; points already
// underway finish with their own cancellation error.
func (s *Sweep) Run(ctx context.Context, base chaos.Request, ics []orbit.Phase) ([]Point, error) {
	if len(ics) == 0 {
		return nil, fmt.Errorf("empty initial-condition grid: %w", orbit.ErrConfig)
	}

	points := make([]Point, len(ics))
	jobs := make(chan int)

	nworkers := s.workers
	if nworkers > len(ics) {
		nworkers = len(ics)
	}

	var wg sync.WaitGroup
	for w := 0; w < nworkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			est, err := chaos.NewEstimator(s.field, s.tol)
			if err != nil {
				for idx := range jobs {
					points[idx] = Point{W0: ics[idx], Err: err}
				}
				return
			}
			for idx := range jobs {
				req := base
				req.W0 = ics[idx]
				res, err := est.Run(ctx, req)
				p := Point{W0: ics[idx], Err: err}
				if err == nil {
					p.Exponent = res.Series.Final()
				}
				points[idx] = p
			}
		}()
	}

	for i := range ics {
		if ctx.Err() != nil {
			points[i] = Point{W0: ics[i], Err: fmt.Errorf("sweep: %w", orbit.ErrCancelled)}
			continue
		}
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return points, nil
}

// Line builds a grid of initial conditions by varying one phase
// component of base linearly over [from, to] in n points.
func Line(base orbit.Phase, component int, from, to float64, n int) ([]orbit.Phase, error) {
	if n < 2 {
		return nil, fmt.Errorf("grid needs at least 2 points, got %d: %w", n, orbit.ErrConfig)
	}
	if component < 0 || component >= len(base) {
		return nil, fmt.Errorf("component %d out of range for %d-component phase: %w", component, len(base), orbit.ErrConfig)
	}
	ics := make([]orbit.Phase, n)
	step := (to - from) / float64(n-1)
	for i := range ics {
		w := base.Clone()
		w[component] = from + float64(i)*step
		ics[i] = w
	}
	return ics, nil
}
