package dop853

import (
	"math"

	"github.com/soham-b/orbitlab/internal/force"
	"github.com/soham-b/orbitlab/internal/orbit"
)

// rhs assembles the phase-space time derivative [velocity, acceleration]
// for a batch from a force field. It owns contiguous scratch buffers for
// the position/acceleration views handed to the field, so the field sees
// the layout promised by its contract regardless of batch layout.
type rhs struct {
	field force.Field
	norb  int
	ndim  int
	pos   []float64
	acc   []float64
	evals int
}

func newRHS(field force.Field, norb int) *rhs {
	d := field.NDim()
	return &rhs{
		field: field,
		norb:  norb,
		ndim:  d,
		pos:   make([]float64, norb*d),
		acc:   make([]float64, norb*d),
	}
}

// eval writes d(w)/dt into dw. w and dw are orbit-major batches of
// 2*ndim components each; w is never mutated. Non-finite accelerations
// abort the step with orbit.ErrEvaluation.
func (r *rhs) eval(t float64, w, dw []float64) error {
	d := r.ndim
	size := 2 * d
	for o := 0; o < r.norb; o++ {
		copy(r.pos[o*d:(o+1)*d], w[o*size:o*size+d])
	}

	r.field.Accel(t, r.pos, r.acc)
	r.evals++

	for o := 0; o < r.norb; o++ {
		base := o * size
		for i := 0; i < d; i++ {
			dw[base+i] = w[base+d+i] // dq/dt = v
			a := r.acc[o*d+i]
			if math.IsNaN(a) || math.IsInf(a, 0) {
				return orbit.ErrEvaluation
			}
			dw[base+d+i] = a
		}
	}
	return nil
}
