package dop853

import (
	"math"
	"testing"
)

func TestProposeStep_Accept(t *testing.T) {
	accept, hNew := proposeStep(0.1, 0.1)
	if !accept {
		t.Error("norm 0.1 should be accepted")
	}
	if hNew <= 0.1 {
		t.Errorf("step should grow for norm well below 1, got %g", hNew)
	}
}

// The update factor is 0.9*norm^(-1/8), so growth starts only below
// norm = 0.9^8 ~ 0.43; a step can be accepted and still shrink.
func TestProposeStep_AcceptCanShrink(t *testing.T) {
	accept, hNew := proposeStep(0.1, 0.5)
	if !accept {
		t.Error("norm 0.5 should be accepted")
	}
	want := 0.1 * 0.9 * math.Pow(0.5, -1.0/8.0)
	if math.Abs(hNew-want) > 1e-15 {
		t.Errorf("got %g, want %g", hNew, want)
	}
	if hNew >= 0.1 {
		t.Errorf("norm 0.5 should shrink the step slightly, got %g", hNew)
	}
}

func TestProposeStep_Reject(t *testing.T) {
	accept, hNew := proposeStep(0.1, 2.0)
	if accept {
		t.Error("norm 2.0 should be rejected")
	}
	if hNew >= 0.1 {
		t.Errorf("step should shrink on rejection, got %g", hNew)
	}
}

func TestProposeStep_GrowthCap(t *testing.T) {
	_, hNew := proposeStep(0.1, 1e-16)
	if math.Abs(hNew-0.1*facMax) > 1e-12 {
		t.Errorf("growth should cap at facMax, got %g", hNew)
	}
}

func TestProposeStep_ShrinkCap(t *testing.T) {
	_, hNew := proposeStep(0.1, 1e16)
	if math.Abs(hNew-0.1*facMin) > 1e-12 {
		t.Errorf("shrink should cap at facMin, got %g", hNew)
	}
}

func TestProposeStep_ZeroError(t *testing.T) {
	accept, hNew := proposeStep(0.1, 0)
	if !accept {
		t.Error("zero error must always be accepted")
	}
	if math.Abs(hNew-0.1*facMax) > 1e-12 {
		t.Errorf("zero error grows by facMax, got %g", hNew)
	}
}

func TestProposeStep_NegativeStep(t *testing.T) {
	accept, hNew := proposeStep(-0.1, 0.1)
	if !accept {
		t.Error("norm 0.1 should be accepted")
	}
	if hNew >= -0.1 {
		t.Errorf("backward step should grow in magnitude, got %g", hNew)
	}

	// Mirrors the forward case: accepted at norm 0.5, slightly shrunk.
	accept, hNew = proposeStep(-0.1, 0.5)
	if !accept {
		t.Error("norm 0.5 should be accepted")
	}
	if hNew >= 0 || hNew <= -0.1 {
		t.Errorf("backward step should shrink in magnitude at norm 0.5, got %g", hNew)
	}
}
