package chaos

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/soham-b/orbitlab/internal/dop853"
	"github.com/soham-b/orbitlab/internal/force"
	"github.com/soham-b/orbitlab/internal/orbit"
)

// Observer is notified after each renormalization boundary with the
// boundary time and the running exponent estimate.
type Observer interface {
	OnRenorm(t, lambda float64)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(t, lambda float64)

func (f ObserverFunc) OnRenorm(t, lambda float64) { f(t, lambda) }

// Request describes one Lyapunov run: a single reference orbit, an
// offset companion at distance D0, and a fixed renormalization cadence
// of StepsPerRenorm outer steps of size Dt, repeated Renorms times.
type Request struct {
	W0             orbit.Phase
	T0             float64
	Dt             float64
	StepsPerRenorm int
	Renorms        int
	D0             float64

	// Direction is the initial deviation direction; it defaults to the
	// first position axis. Only its direction matters.
	Direction orbit.Phase

	Observer Observer
}

// Result carries the reference-orbit trajectory and the running
// exponent series; the series' final entry is the estimate.
type Result struct {
	Trajectory *orbit.Trajectory
	Series     orbit.LyapunovSeries
}

// Estimator computes the largest Lyapunov exponent by co-integrating a
// reference orbit and a deviation orbit in one lockstep batch,
// renormalizing their separation back to D0 at a fixed cadence and
// accumulating the log growth.
type Estimator struct {
	driver *dop853.Driver
	ndim   int
}

func NewEstimator(field force.Field, tol orbit.Tolerances, opts ...dop853.Option) (*Estimator, error) {
	d, err := dop853.New(field, tol, opts...)
	if err != nil {
		return nil, err
	}
	return &Estimator{driver: d, ndim: field.NDim()}, nil
}

func (e *Estimator) Run(ctx context.Context, req Request) (*Result, error) {
	size := 2 * e.ndim
	if len(req.W0) != size {
		return nil, fmt.Errorf("initial condition has %d components, want %d: %w", len(req.W0), size, orbit.ErrConfig)
	}
	if req.D0 <= 0 {
		return nil, fmt.Errorf("d0 must be positive, got %g: %w", req.D0, orbit.ErrConfig)
	}
	if req.Dt == 0 {
		return nil, fmt.Errorf("dt must be non-zero: %w", orbit.ErrConfig)
	}
	if req.StepsPerRenorm < 1 || req.Renorms < 1 {
		return nil, fmt.Errorf("renormalization cadence must be positive: %w", orbit.ErrConfig)
	}

	dir, err := e.unitDirection(req.Direction)
	if err != nil {
		return nil, err
	}

	ref := req.W0.Clone()
	dev := req.W0.Clone()
	for i := range dev {
		dev[i] += req.D0 * dir[i]
	}

	nsamples := req.Renorms*req.StepsPerRenorm + 1
	res := &Result{Trajectory: &orbit.Trajectory{
		Times:  make([]float64, 0, nsamples),
		States: make([]orbit.Batch, 0, nsamples),
	}}

	t := req.T0
	sumLog := 0.0
	for k := 1; k <= req.Renorms; k++ {
		pair, err := orbit.BatchOf(ref, dev)
		if err != nil {
			return nil, err
		}

		sub, subErr := e.driver.IntegrateSteps(ctx, pair, t, req.Dt, req.StepsPerRenorm)
		if subErr != nil && !errors.Is(subErr, orbit.ErrCancelled) {
			return nil, subErr
		}
		e.appendReference(res.Trajectory, sub.Trajectory)
		if subErr != nil {
			return res, subErr
		}

		final := sub.Trajectory.Final()
		ref = final.Orbit(0).Clone()
		dev = final.Orbit(1).Clone()
		t += float64(req.StepsPerRenorm) * req.Dt

		d1 := dev.Sub(ref).Norm()
		if d1 == 0 {
			return nil, &orbit.StepError{Step: k, Time: t, Wrapped: orbit.ErrDegenerateSeparation}
		}
		sumLog += math.Log(d1 / req.D0)

		lambda := sumLog / (t - req.T0)
		res.Series.Times = append(res.Series.Times, t)
		res.Series.Exponents = append(res.Series.Exponents, lambda)
		if req.Observer != nil {
			req.Observer.OnRenorm(t, lambda)
		}

		// Pull the deviation orbit back to separation D0 along the
		// current (rotated) separation direction.
		scale := req.D0 / d1
		for i := range dev {
			dev[i] = ref[i] + (dev[i]-ref[i])*scale
		}
	}

	return res, nil
}

func (e *Estimator) unitDirection(dir orbit.Phase) (orbit.Phase, error) {
	size := 2 * e.ndim
	if dir == nil {
		d := make(orbit.Phase, size)
		d[0] = 1.0
		return d, nil
	}
	if len(dir) != size {
		return nil, fmt.Errorf("deviation direction has %d components, want %d: %w", len(dir), size, orbit.ErrConfig)
	}
	norm := dir.Norm()
	if norm == 0 {
		return nil, fmt.Errorf("deviation direction is zero: %w", orbit.ErrConfig)
	}
	unit := make(orbit.Phase, size)
	for i, v := range dir {
		unit[i] = v / norm
	}
	return unit, nil
}

// appendReference copies the reference-orbit samples of a sub-interval
// onto the accumulated trajectory, dropping the duplicated boundary
// sample on all but the first interval.
func (e *Estimator) appendReference(dst, sub *orbit.Trajectory) {
	start := 0
	if dst.Len() > 0 {
		start = 1
	}
	for i := start; i < sub.Len(); i++ {
		w := sub.States[i].Orbit(0).Clone()
		dst.Times = append(dst.Times, sub.Times[i])
		dst.States = append(dst.States, orbit.Batch{W: w, Norb: 1, NDim: e.ndim})
	}
}
