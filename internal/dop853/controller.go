package dop853

import (
	"math"

	"github.com/soham-b/orbitlab/internal/orbit"
)

// Step-size control constants for the 8(5,3) pair.
const (
	safety = 0.9
	facMin = 1.0 / 3.0
	facMax = 6.0
	errExp = 1.0 / 8.0
)

// proposeStep decides accept/reject for the given scaled error norm and
// returns the step size to use next: on acceptance the candidate for
// the following step, on rejection the size to retry the same step at.
func proposeStep(h, errNorm float64) (accept bool, hNew float64) {
	if errNorm == 0 {
		return true, h * facMax
	}
	fac := safety * math.Pow(errNorm, -errExp)
	if fac > facMax {
		fac = facMax
	}
	if fac < facMin {
		fac = facMin
	}
	return errNorm <= 1.0, h * fac
}

// initialStep estimates a starting step size from the local derivative
// magnitudes (the classical hinit scheme): a trial explicit Euler step
// probes the second derivative, and the estimate is sized so the first
// step's error is near the tolerance target.
func initialStep(r *rhs, t0 float64, y, f0 []float64, posneg, hmax float64, tol orbit.Tolerances) (float64, error) {
	n := len(y)
	y1 := make([]float64, n)
	f1 := make([]float64, n)

	dnf, dny := 0.0, 0.0
	for i := 0; i < n; i++ {
		sk := tol.Abs + tol.Rel*math.Abs(y[i])
		dnf += (f0[i] / sk) * (f0[i] / sk)
		dny += (y[i] / sk) * (y[i] / sk)
	}

	var h float64
	if dnf <= 1e-10 || dny <= 1e-10 {
		h = 1e-6
	} else {
		h = 0.01 * math.Sqrt(dny/dnf)
	}
	h = math.Min(h, hmax)

	for i := 0; i < n; i++ {
		y1[i] = y[i] + h*posneg*f0[i]
	}
	if err := r.eval(t0+h*posneg, y1, f1); err != nil {
		return 0, err
	}

	der2 := 0.0
	for i := 0; i < n; i++ {
		sk := tol.Abs + tol.Rel*math.Abs(y[i])
		d := (f1[i] - f0[i]) / sk
		der2 += d * d
	}
	der2 = math.Sqrt(der2) / h
	der12 := math.Max(der2, math.Sqrt(dnf))

	var h1 float64
	if der12 <= 1e-15 {
		h1 = math.Max(1e-6, h*1e-3)
	} else {
		h1 = math.Pow(0.01/der12, errExp)
	}
	h = math.Min(math.Min(100*h, h1), hmax)
	return h * posneg, nil
}
