package dop853

import (
	"math"
	"testing"

	"github.com/soham-b/orbitlab/internal/force"
	"github.com/soham-b/orbitlab/internal/orbit"
)

// A single order-8 step on the harmonic oscillator should land within
// roundoff of the closed-form solution for a moderate step size.
func TestSingleStepAccuracy(t *testing.T) {
	field := force.NewHarmonic()
	r := newRHS(field, 1)
	s := newStepper(r, 1, 6)

	y := []float64{1, 0, 0, 0, 0, 0}
	k1 := make([]float64, 6)
	if err := r.eval(0, y, k1); err != nil {
		t.Fatalf("eval failed: %v", err)
	}

	h := 0.2
	ynew := make([]float64, 6)
	tol := orbit.Tolerances{Abs: 1e-10, Rel: 1e-10}
	if err := s.step(0, h, y, k1, ynew, tol); err != nil {
		t.Fatalf("step failed: %v", err)
	}

	if math.Abs(ynew[0]-math.Cos(h)) > 1e-12 {
		t.Errorf("x after one step: got %.15f, want %.15f", ynew[0], math.Cos(h))
	}
	if math.Abs(ynew[3]+math.Sin(h)) > 1e-12 {
		t.Errorf("vx after one step: got %.15f, want %.15f", ynew[3], -math.Sin(h))
	}
}

// Halving the step size of an order-8 method should shrink the local
// error estimate by far more than 2x.
func TestErrorNormScalesWithOrder(t *testing.T) {
	field := force.NewKepler()
	r := newRHS(field, 1)
	s := newStepper(r, 1, 6)

	y := []float64{1, 0, 0, 0, 1, 0}
	k1 := make([]float64, 6)
	if err := r.eval(0, y, k1); err != nil {
		t.Fatalf("eval failed: %v", err)
	}

	tol := orbit.Tolerances{Abs: 1e-12, Rel: 1e-12}
	ynew := make([]float64, 6)

	if err := s.step(0, 0.4, y, k1, ynew, tol); err != nil {
		t.Fatalf("step failed: %v", err)
	}
	coarse := s.maxErr()

	if err := s.step(0, 0.2, y, k1, ynew, tol); err != nil {
		t.Fatalf("step failed: %v", err)
	}
	fine := s.maxErr()

	if coarse <= 0 || fine <= 0 {
		t.Fatalf("expected positive error norms, got %g and %g", coarse, fine)
	}
	if fine >= coarse/16 {
		t.Errorf("error norm fell only from %g to %g when halving the step", coarse, fine)
	}
}

// The batch error norm is the max over orbits, so the orbit with the
// fastest dynamics governs the shared step.
func TestBatchErrorIsMaxOverOrbits(t *testing.T) {
	field := force.NewKepler()

	run := func(w []float64, norb int) float64 {
		r := newRHS(field, norb)
		s := newStepper(r, norb, 6)
		k1 := make([]float64, len(w))
		if err := r.eval(0, w, k1); err != nil {
			t.Fatalf("eval failed: %v", err)
		}
		ynew := make([]float64, len(w))
		tol := orbit.Tolerances{Abs: 1e-10, Rel: 1e-10}
		if err := s.step(0, 0.3, w, k1, ynew, tol); err != nil {
			t.Fatalf("step failed: %v", err)
		}
		return s.maxErr()
	}

	slow := []float64{2, 0, 0, 0, 0.7, 0}
	fast := []float64{0.3, 0, 0, 0, 1.8, 0}

	slowErr := run(slow, 1)
	fastErr := run(fast, 1)
	both := run(append(append([]float64{}, slow...), fast...), 2)

	want := math.Max(slowErr, fastErr)
	if math.Abs(both-want)/want > 1e-12 {
		t.Errorf("batch error %g, want max of per-orbit errors %g", both, want)
	}
}
