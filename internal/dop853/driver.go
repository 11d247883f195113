package dop853

import (
	"context"
	"fmt"
	"math"

	"github.com/soham-b/orbitlab/internal/force"
	"github.com/soham-b/orbitlab/internal/orbit"
)

const defaultMaxRetries = 50

// Driver integrates a batch of orbits under one force field. It holds
// no per-run state, so a single Driver may serve concurrent calls on
// independent batches.
type Driver struct {
	field      force.Field
	tol        orbit.Tolerances
	maxRetries int
	hInit      float64
}

type Option func(*Driver)

// WithMaxRetries caps how often one step may be rejected before the
// run aborts with orbit.ErrConvergence.
func WithMaxRetries(n int) Option {
	return func(d *Driver) { d.maxRetries = n }
}

// WithInitialStep fixes the magnitude of the first trial step instead
// of estimating it from the initial derivatives.
func WithInitialStep(h float64) Option {
	return func(d *Driver) { d.hInit = math.Abs(h) }
}

func New(field force.Field, tol orbit.Tolerances, opts ...Option) (*Driver, error) {
	if err := tol.Validate(); err != nil {
		return nil, err
	}
	d := &Driver{field: field, tol: tol, maxRetries: defaultMaxRetries}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Stats counts the work done by one integration call.
type Stats struct {
	Accepted    int
	Rejected    int
	Evaluations int
	LastStep    float64
}

// Result is the outcome of one integration call. EnergyDrift is the
// largest relative energy change across the batch, or zero when the
// field has no scalar potential.
type Result struct {
	Trajectory  *orbit.Trajectory
	Stats       Stats
	EnergyDrift float64
}

// IntegrateSteps advances the batch nsteps steps of size dt from t0 and
// samples after each one: nsteps+1 samples at t0 + i*dt. Negative dt
// integrates backward.
func (d *Driver) IntegrateSteps(ctx context.Context, w0 orbit.Batch, t0, dt float64, nsteps int) (*Result, error) {
	if dt == 0 {
		return nil, fmt.Errorf("dt must be non-zero: %w", orbit.ErrConfig)
	}
	if nsteps < 1 {
		return nil, fmt.Errorf("nsteps must be positive, got %d: %w", nsteps, orbit.ErrConfig)
	}
	return d.run(ctx, w0, t0, dt, nsteps)
}

// IntegrateRange integrates from t1 to t2, producing nsteps samples
// evenly spaced over [t1, t2] (the first at t1, the last exactly at
// t2). The direction is inferred from sign(t2 - t1).
func (d *Driver) IntegrateRange(ctx context.Context, w0 orbit.Batch, t1, t2 float64, nsteps int) (*Result, error) {
	if t2 == t1 {
		return nil, fmt.Errorf("t2 must differ from t1: %w", orbit.ErrConfig)
	}
	if nsteps < 2 {
		return nil, fmt.Errorf("need at least 2 samples, got %d: %w", nsteps, orbit.ErrConfig)
	}
	return d.run(ctx, w0, t1, (t2-t1)/float64(nsteps-1), nsteps-1)
}

// run is the shared outer loop: nout output intervals of size dt after
// the initial sample. Inside each interval the step size adapts freely;
// the last sub-step is clamped so every sample lands exactly on its
// grid time.
//
// On cancellation the partial Result produced so far is returned
// alongside an error wrapping orbit.ErrCancelled. Every other error
// discards the partial trajectory.
func (d *Driver) run(ctx context.Context, w0 orbit.Batch, t0, dt float64, nout int) (*Result, error) {
	if err := d.validateBatch(w0); err != nil {
		return nil, err
	}

	r := newRHS(d.field, w0.Norb)
	st := newStepper(r, w0.Norb, w0.PhaseSize())

	n := len(w0.W)
	y := make([]float64, n)
	copy(y, w0.W)
	k1 := make([]float64, n)
	ynew := make([]float64, n)
	k1next := make([]float64, n)

	if err := r.eval(t0, y, k1); err != nil {
		return nil, &orbit.StepError{Step: 0, Time: t0, Wrapped: err}
	}

	posneg := 1.0
	if dt < 0 {
		posneg = -1.0
	}
	hmax := math.Abs(dt) * float64(nout)

	var h float64
	if d.hInit > 0 {
		h = d.hInit * posneg
	} else {
		var err error
		h, err = initialStep(r, t0, y, k1, posneg, math.Abs(dt), d.tol)
		if err != nil {
			return nil, &orbit.StepError{Step: 0, Time: t0, Wrapped: err}
		}
	}

	res := &Result{Trajectory: &orbit.Trajectory{
		Times:  make([]float64, 0, nout+1),
		States: make([]orbit.Batch, 0, nout+1),
	}}
	record := func(t float64) {
		res.Trajectory.Times = append(res.Trajectory.Times, t)
		snap := orbit.Batch{W: make([]float64, n), Norb: w0.Norb, NDim: w0.NDim}
		copy(snap.W, y)
		res.Trajectory.States = append(res.Trajectory.States, snap)
	}
	record(t0)

	t := t0
	stepIdx := 0
	for i := 1; i <= nout; i++ {
		target := t0 + float64(i)*dt

		retries := 0
		for {
			select {
			case <-ctx.Done():
				res.Stats = Stats{Accepted: stepIdx, Rejected: res.Stats.Rejected, Evaluations: r.evals, LastStep: h}
				return res, fmt.Errorf("cancelled at t=%.6g: %w", t, orbit.ErrCancelled)
			default:
			}

			// Clamp the final sub-step onto the sample time.
			hFull := h
			clamped := false
			if (target-(t+h))*posneg <= 0 {
				h = target - t
				clamped = true
			}

			if err := st.step(t, h, y, k1, ynew, d.tol); err != nil {
				return nil, &orbit.StepError{Step: stepIdx, Time: t, Wrapped: err}
			}

			accept, hNew := proposeStep(h, st.maxErr())
			if !accept {
				h = hNew
				retries++
				res.Stats.Rejected++
				if retries > d.maxRetries {
					return nil, &orbit.StepError{Step: stepIdx, Time: t, Wrapped: orbit.ErrConvergence}
				}
				continue
			}

			for _, v := range ynew {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					return nil, &orbit.StepError{Step: stepIdx, Time: t, Wrapped: orbit.ErrEvaluation}
				}
			}

			// First-stage-as-last: the derivative at the accepted point
			// seeds the next step's first stage.
			if err := r.eval(t+h, ynew, k1next); err != nil {
				return nil, &orbit.StepError{Step: stepIdx, Time: t + h, Wrapped: err}
			}

			t += h
			copy(y, ynew)
			copy(k1, k1next)
			stepIdx++
			retries = 0

			if clamped {
				t = target
				// Resume from the pre-clamp proposal, not the shrunken
				// remainder step.
				h = clampMag(hFull, hmax)
				break
			}
			h = clampMag(hNew, hmax)
		}

		record(target)
	}

	res.Stats.Accepted = stepIdx
	res.Stats.Evaluations = r.evals
	res.Stats.LastStep = h
	res.EnergyDrift = d.energyDrift(w0, res.Trajectory.Final())
	return res, nil
}

func (d *Driver) validateBatch(w0 orbit.Batch) error {
	if w0.Norb < 1 || len(w0.W) != w0.Norb*w0.PhaseSize() {
		return fmt.Errorf("malformed batch (norb=%d, len=%d): %w", w0.Norb, len(w0.W), orbit.ErrConfig)
	}
	if w0.NDim != d.field.NDim() {
		return fmt.Errorf("batch is %d-dimensional but field wants %d: %w", w0.NDim, d.field.NDim(), orbit.ErrConfig)
	}
	if !w0.IsValid() {
		return fmt.Errorf("initial conditions contain NaN/Inf: %w", orbit.ErrConfig)
	}
	return nil
}

func (d *Driver) energyDrift(w0, wf orbit.Batch) float64 {
	drift := 0.0
	for o := 0; o < w0.Norb; o++ {
		e0, ok := force.Energy(d.field, w0.Orbit(o))
		if !ok || e0 == 0 {
			return 0
		}
		ef, _ := force.Energy(d.field, wf.Orbit(o))
		if rel := math.Abs(ef-e0) / math.Abs(e0); rel > drift {
			drift = rel
		}
	}
	return drift
}

func clampMag(h, hmax float64) float64 {
	if math.Abs(h) > hmax {
		return math.Copysign(hmax, h)
	}
	return h
}
