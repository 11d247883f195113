package orbit

import (
	"errors"
	"math"
	"testing"
)

func TestBatchOf(t *testing.T) {
	b, err := BatchOf(Phase{1, 2, 3, 4}, Phase{5, 6, 7, 8})
	if err != nil {
		t.Fatalf("BatchOf failed: %v", err)
	}
	if b.Norb != 2 || b.NDim != 2 {
		t.Errorf("got norb=%d ndim=%d, want 2 and 2", b.Norb, b.NDim)
	}
	if got := b.Orbit(1); got[0] != 5 || got[3] != 8 {
		t.Errorf("orbit 1 misplaced: %v", got)
	}
}

func TestBatchOfRejectsBadShapes(t *testing.T) {
	if _, err := BatchOf(); !errors.Is(err, ErrConfig) {
		t.Errorf("empty batch should be ErrConfig, got %v", err)
	}
	if _, err := BatchOf(Phase{1, 2, 3}); !errors.Is(err, ErrConfig) {
		t.Errorf("odd phase size should be ErrConfig, got %v", err)
	}
	if _, err := BatchOf(Phase{1, 2, 3, 4}, Phase{1, 2}); !errors.Is(err, ErrConfig) {
		t.Errorf("mismatched sizes should be ErrConfig, got %v", err)
	}
}

func TestOrbitIsView(t *testing.T) {
	b := NewBatch(2, 3)
	b.Orbit(1)[0] = 42
	if b.W[6] != 42 {
		t.Error("Orbit should alias the backing array, not copy it")
	}

	c := b.Clone()
	c.W[6] = 0
	if b.W[6] != 42 {
		t.Error("Clone must not share the backing array")
	}
}

func TestBatchIsValid(t *testing.T) {
	b := NewBatch(1, 2)
	if !b.IsValid() {
		t.Error("zero batch should be valid")
	}
	b.W[2] = math.Inf(1)
	if b.IsValid() {
		t.Error("Inf component should invalidate the batch")
	}
}

func TestTolerancesValidate(t *testing.T) {
	if err := (Tolerances{Abs: 1e-10, Rel: 1e-10}).Validate(); err != nil {
		t.Errorf("positive tolerances rejected: %v", err)
	}
	for _, tol := range []Tolerances{
		{Abs: 0, Rel: 1e-10},
		{Abs: 1e-10, Rel: 0},
		{Abs: -1e-10, Rel: 1e-10},
	} {
		if err := tol.Validate(); !errors.Is(err, ErrConfig) {
			t.Errorf("tolerances %+v should be ErrConfig, got %v", tol, err)
		}
	}
}

func TestStepErrorUnwraps(t *testing.T) {
	err := error(&StepError{Step: 7, Time: 1.5, Wrapped: ErrConvergence})

	if !errors.Is(err, ErrConvergence) {
		t.Error("StepError should unwrap to its domain error")
	}

	var se *StepError
	if !errors.As(err, &se) || se.Step != 7 {
		t.Errorf("errors.As lost the step context: %+v", se)
	}
}

func TestPhaseSubNorm(t *testing.T) {
	a := Phase{3, 0, 4, 0}
	b := Phase{0, 0, 0, 0}
	if got := a.Sub(b).Norm(); got != 5 {
		t.Errorf("got norm %g, want 5", got)
	}
}

func TestTrajectoryOrbitSeries(t *testing.T) {
	b1, _ := BatchOf(Phase{1, 2}, Phase{3, 4})
	b2, _ := BatchOf(Phase{5, 6}, Phase{7, 8})
	tr := &Trajectory{Times: []float64{0, 1}, States: []Batch{b1, b2}}

	series := tr.OrbitSeries(1)
	if len(series) != 2 || series[0][0] != 3 || series[1][1] != 8 {
		t.Errorf("unexpected series: %v", series)
	}

	series[0][0] = 99
	if tr.States[0].Orbit(1)[0] != 3 {
		t.Error("OrbitSeries must return copies")
	}
}
