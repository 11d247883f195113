package export

import (
	"strings"
	"testing"

	"github.com/soham-b/orbitlab/internal/orbit"
)

func TestOrbitSVG(t *testing.T) {
	b1, _ := orbit.BatchOf(orbit.Phase{0, 0, 1, 0})
	b2, _ := orbit.BatchOf(orbit.Phase{1, 1, 0, 1})
	b3, _ := orbit.BatchOf(orbit.Phase{2, 0, -1, 0})
	tr := &orbit.Trajectory{Times: []float64{0, 1, 2}, States: []orbit.Batch{b1, b2, b3}}

	svg := OrbitSVG(tr, 0, 0, 1, 400, 300, "#00ff00")
	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("missing XML header")
	}
	if !strings.Contains(svg, `width="400" height="300"`) {
		t.Error("dimensions not applied")
	}
	if !strings.Contains(svg, `stroke="#00ff00"`) {
		t.Error("stroke color not applied")
	}
	if strings.Count(svg, " L") != 2 {
		t.Errorf("expected 2 line segments, got %d", strings.Count(svg, " L"))
	}
}

func TestSeriesSVG(t *testing.T) {
	s := orbit.LyapunovSeries{
		Times:     []float64{1, 2, 3, 4},
		Exponents: []float64{0.2, 0.15, 0.12, 0.11},
	}
	svg := SeriesSVG(s, 640, 480, "#ff8800")
	if !strings.Contains(svg, "<path") {
		t.Error("missing path element")
	}
}

func TestTooFewPoints(t *testing.T) {
	b, _ := orbit.BatchOf(orbit.Phase{0, 0, 1, 0})
	tr := &orbit.Trajectory{Times: []float64{0}, States: []orbit.Batch{b}}
	if svg := OrbitSVG(tr, 0, 0, 1, 100, 100, "#fff"); svg != "" {
		t.Error("single point should render nothing")
	}
}

// A constant series must not divide by a zero range.
func TestDegenerateRange(t *testing.T) {
	s := orbit.LyapunovSeries{
		Times:     []float64{1, 2, 3},
		Exponents: []float64{0.5, 0.5, 0.5},
	}
	svg := SeriesSVG(s, 100, 100, "#fff")
	if strings.Contains(svg, "NaN") || strings.Contains(svg, "Inf") {
		t.Error("flat series produced non-finite coordinates")
	}
}
