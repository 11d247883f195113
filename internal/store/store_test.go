package store

import (
	"testing"

	"github.com/soham-b/orbitlab/internal/orbit"
)

func sampleTrajectory() *orbit.Trajectory {
	b0, _ := orbit.BatchOf(orbit.Phase{1, 0, 0, 0, 1, 0})
	b1, _ := orbit.BatchOf(orbit.Phase{0.9, 0.1, 0, -0.1, 0.95, 0})
	return &orbit.Trajectory{
		Times:  []float64{0, 0.1},
		States: []orbit.Batch{b0, b1},
	}
}

func TestSaveAndLoad(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	meta := RunMetadata{
		Kind:      "orbit",
		Potential: "kepler",
		Dt:        0.1,
		Atol:      1e-10,
		Rtol:      1e-10,
		Accepted:  12,
	}

	runID, err := s.Save(meta, sampleTrajectory(), nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := s.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Potential != "kepler" {
		t.Errorf("expected kepler, got %s", loaded.Potential)
	}
	if loaded.Samples != 2 {
		t.Errorf("expected 2 samples, got %d", loaded.Samples)
	}

	states, times, err := s.LoadStates(runID)
	if err != nil {
		t.Fatalf("load states failed: %v", err)
	}
	if len(states) != 2 || len(times) != 2 {
		t.Fatalf("expected 2 rows, got %d states %d times", len(states), len(times))
	}
	if states[0][0] != 1.0 {
		t.Errorf("expected first component 1.0, got %g", states[0][0])
	}
	if times[1] != 0.1 {
		t.Errorf("expected t=0.1, got %g", times[1])
	}
}

func TestSaveLyapunovSeries(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	series := &orbit.LyapunovSeries{
		Times:     []float64{1, 2, 3},
		Exponents: []float64{0.5, 0.3, 0.2},
	}

	runID, err := s.Save(RunMetadata{Kind: "lyapunov", Potential: "henonheiles", Exponent: 0.2}, sampleTrajectory(), series)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	values, times, err := s.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}
	if len(values) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(values))
	}
	if values[2] != 0.2 || times[2] != 3 {
		t.Errorf("unexpected final entry: t=%g value=%g", times[2], values[2])
	}
}

func TestList(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := s.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	if _, err := s.Save(RunMetadata{Kind: "orbit", Potential: "plummer"}, sampleTrajectory(), nil); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = s.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].Potential != "plummer" {
		t.Errorf("expected plummer, got %s", runs[0].Potential)
	}
}
