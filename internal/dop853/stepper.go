package dop853

import (
	"math"

	"github.com/soham-b/orbitlab/internal/orbit"
)

// stepper computes one embedded 8(5,3) step for a whole batch. All
// stage buffers are owned by the stepper and reused across steps.
type stepper struct {
	rhs  *rhs
	norb int
	size int // components per orbit (2*ndim)

	k2, k3, k4, k5, k6  []float64
	k7, k8, k9, k10     []float64
	k11, k12, agg, ytmp []float64

	// errs holds the per-orbit scaled error norm of the last step.
	errs []float64
}

func newStepper(r *rhs, norb, size int) *stepper {
	n := norb * size
	s := &stepper{rhs: r, norb: norb, size: size, errs: make([]float64, norb)}
	for _, buf := range []*[]float64{
		&s.k2, &s.k3, &s.k4, &s.k5, &s.k6, &s.k7, &s.k8, &s.k9, &s.k10,
		&s.k11, &s.k12, &s.agg, &s.ytmp,
	} {
		*buf = make([]float64, n)
	}
	return s
}

// step advances y by h, given k1 = f(t, y) from the previous accepted
// step. It writes the order-8 solution into ynew and the per-orbit
// error norms into s.errs. y and k1 are not modified; on an evaluation
// error both outputs are meaningless and the step must be discarded.
func (s *stepper) step(t, h float64, y, k1, ynew []float64, tol orbit.Tolerances) error {
	n := len(y)

	for i := 0; i < n; i++ {
		s.ytmp[i] = y[i] + h*a21*k1[i]
	}
	if err := s.rhs.eval(t+c2*h, s.ytmp, s.k2); err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		s.ytmp[i] = y[i] + h*(a31*k1[i]+a32*s.k2[i])
	}
	if err := s.rhs.eval(t+c3*h, s.ytmp, s.k3); err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		s.ytmp[i] = y[i] + h*(a41*k1[i]+a43*s.k3[i])
	}
	if err := s.rhs.eval(t+c4*h, s.ytmp, s.k4); err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		s.ytmp[i] = y[i] + h*(a51*k1[i]+a53*s.k3[i]+a54*s.k4[i])
	}
	if err := s.rhs.eval(t+c5*h, s.ytmp, s.k5); err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		s.ytmp[i] = y[i] + h*(a61*k1[i]+a64*s.k4[i]+a65*s.k5[i])
	}
	if err := s.rhs.eval(t+c6*h, s.ytmp, s.k6); err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		s.ytmp[i] = y[i] + h*(a71*k1[i]+a74*s.k4[i]+a75*s.k5[i]+a76*s.k6[i])
	}
	if err := s.rhs.eval(t+c7*h, s.ytmp, s.k7); err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		s.ytmp[i] = y[i] + h*(a81*k1[i]+a84*s.k4[i]+a85*s.k5[i]+a86*s.k6[i]+a87*s.k7[i])
	}
	if err := s.rhs.eval(t+c8*h, s.ytmp, s.k8); err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		s.ytmp[i] = y[i] + h*(a91*k1[i]+a94*s.k4[i]+a95*s.k5[i]+a96*s.k6[i]+a97*s.k7[i]+a98*s.k8[i])
	}
	if err := s.rhs.eval(t+c9*h, s.ytmp, s.k9); err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		s.ytmp[i] = y[i] + h*(a101*k1[i]+a104*s.k4[i]+a105*s.k5[i]+a106*s.k6[i]+
			a107*s.k7[i]+a108*s.k8[i]+a109*s.k9[i])
	}
	if err := s.rhs.eval(t+c10*h, s.ytmp, s.k10); err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		s.ytmp[i] = y[i] + h*(a111*k1[i]+a114*s.k4[i]+a115*s.k5[i]+a116*s.k6[i]+
			a117*s.k7[i]+a118*s.k8[i]+a119*s.k9[i]+a1110*s.k10[i])
	}
	if err := s.rhs.eval(t+c11*h, s.ytmp, s.k11); err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		s.ytmp[i] = y[i] + h*(a121*k1[i]+a124*s.k4[i]+a125*s.k5[i]+a126*s.k6[i]+
			a127*s.k7[i]+a128*s.k8[i]+a129*s.k9[i]+a1210*s.k10[i]+a1211*s.k11[i])
	}
	if err := s.rhs.eval(t+h, s.ytmp, s.k12); err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		s.agg[i] = b1*k1[i] + b6*s.k6[i] + b7*s.k7[i] + b8*s.k8[i] + b9*s.k9[i] +
			b10*s.k10[i] + b11*s.k11[i] + b12*s.k12[i]
		ynew[i] = y[i] + h*s.agg[i]
	}

	s.errorNorms(h, y, ynew, k1, tol)
	return nil
}

// errorNorms fills s.errs with the scaled per-orbit error of the last
// step, combining the order-5 and order-3 embedded estimates the way
// the reference scheme does so the two cannot cancel when both are
// small. A zero norm means the step is exact to working precision.
func (s *stepper) errorNorms(h float64, y, ynew, k1 []float64, tol orbit.Tolerances) {
	for o := 0; o < s.norb; o++ {
		base := o * s.size
		err5, err3 := 0.0, 0.0
		for j := 0; j < s.size; j++ {
			i := base + j
			sk := tol.Abs + tol.Rel*math.Max(math.Abs(y[i]), math.Abs(ynew[i]))

			e3 := s.agg[i] - bhh1*k1[i] - bhh2*s.k9[i] - bhh3*s.k12[i]
			err3 += (e3 / sk) * (e3 / sk)

			e5 := er1*k1[i] + er6*s.k6[i] + er7*s.k7[i] + er8*s.k8[i] + er9*s.k9[i] +
				er10*s.k10[i] + er11*s.k11[i] + er12*s.k12[i]
			err5 += (e5 / sk) * (e5 / sk)
		}
		deno := err5 + 0.01*err3
		if deno <= 0 {
			deno = 1.0
		}
		s.errs[o] = math.Abs(h) * err5 * math.Sqrt(1.0/(float64(s.size)*deno))
	}
}

// maxErr returns the largest per-orbit error norm: the most restrictive
// orbit controls the whole batch.
func (s *stepper) maxErr() float64 {
	m := 0.0
	for _, e := range s.errs {
		if e > m {
			m = e
		}
	}
	return m
}
