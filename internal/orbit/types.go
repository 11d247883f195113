package orbit

import (
	"fmt"
	"math"
)

// Phase is one orbit's phase-space point, positions followed by
// velocities: [q0..q(d-1), v0..v(d-1)].
type Phase []float64

func (p Phase) Clone() Phase {
	c := make(Phase, len(p))
	copy(c, p)
	return c
}

func (p Phase) IsValid() bool {
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (p Phase) Norm() float64 {
	sum := 0.0
	for _, v := range p {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (p Phase) Sub(other Phase) Phase {
	result := make(Phase, len(p))
	for i := range p {
		if i < len(other) {
			result[i] = p[i] - other[i]
		} else {
			result[i] = p[i]
		}
	}
	return result
}

// Batch holds norb phase-space points contiguously. Orbit i occupies
// W[i*2*ndim : (i+1)*2*ndim].
type Batch struct {
	W    []float64
	Norb int
	NDim int
}

func NewBatch(norb, ndim int) Batch {
	return Batch{W: make([]float64, norb*2*ndim), Norb: norb, NDim: ndim}
}

// BatchOf packs the given orbits into one contiguous batch. All orbits
// must share the same even length.
func BatchOf(orbits ...Phase) (Batch, error) {
	if len(orbits) == 0 {
		return Batch{}, fmt.Errorf("empty batch: %w", ErrConfig)
	}
	size := len(orbits[0])
	if size == 0 || size%2 != 0 {
		return Batch{}, fmt.Errorf("phase size %d is not 2*ndim: %w", size, ErrConfig)
	}
	b := NewBatch(len(orbits), size/2)
	for i, w := range orbits {
		if len(w) != size {
			return Batch{}, fmt.Errorf("orbit %d has size %d, want %d: %w", i, len(w), size, ErrConfig)
		}
		copy(b.W[i*size:], w)
	}
	return b, nil
}

// PhaseSize is the number of components per orbit (2*NDim).
func (b Batch) PhaseSize() int { return 2 * b.NDim }

// Orbit returns a view (not a copy) of orbit i.
func (b Batch) Orbit(i int) Phase {
	size := b.PhaseSize()
	return Phase(b.W[i*size : (i+1)*size])
}

func (b Batch) Clone() Batch {
	w := make([]float64, len(b.W))
	copy(w, b.W)
	return Batch{W: w, Norb: b.Norb, NDim: b.NDim}
}

func (b Batch) IsValid() bool {
	for _, v := range b.W {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Tolerances govern the error norm targeted by the adaptive step-size
// control. Both must be strictly positive.
type Tolerances struct {
	Abs float64
	Rel float64
}

func (t Tolerances) Validate() error {
	if t.Abs <= 0 || t.Rel <= 0 {
		return fmt.Errorf("tolerances must be strictly positive, got atol=%g rtol=%g: %w", t.Abs, t.Rel, ErrConfig)
	}
	return nil
}

// Trajectory is an ordered sequence of (time, batch) samples. Sample
// times are strictly monotonic in the direction of integration. A
// Trajectory is immutable once the producing call returns.
type Trajectory struct {
	Times  []float64
	States []Batch
}

func (tr *Trajectory) Len() int { return len(tr.Times) }

func (tr *Trajectory) Final() Batch {
	return tr.States[len(tr.States)-1]
}

// OrbitSeries extracts the per-sample phase points of orbit i.
func (tr *Trajectory) OrbitSeries(i int) []Phase {
	out := make([]Phase, len(tr.States))
	for k, b := range tr.States {
		out[k] = b.Orbit(i).Clone()
	}
	return out
}

// LyapunovSeries records the running exponent estimate, one entry per
// renormalization boundary. The final entry is the exponent estimate.
type LyapunovSeries struct {
	Times     []float64
	Exponents []float64
}

func (s LyapunovSeries) Len() int { return len(s.Times) }

func (s LyapunovSeries) Final() float64 {
	return s.Exponents[len(s.Exponents)-1]
}
