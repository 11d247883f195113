package dop853

import (
	"github.com/soham-b/orbitlab/internal/force"
	"github.com/soham-b/orbitlab/internal/orbit"
)

// rk4Integrate is a naive fixed-step RK4 used only as a verification
// double in tests; it is deliberately not part of the shipped API.
func rk4Integrate(field force.Field, w0 orbit.Phase, t0, dt float64, nsteps int) orbit.Phase {
	d := field.NDim()
	size := 2 * d

	deriv := func(t float64, w orbit.Phase) orbit.Phase {
		pos := make([]float64, d)
		acc := make([]float64, d)
		copy(pos, w[:d])
		field.Accel(t, pos, acc)
		dw := make(orbit.Phase, size)
		copy(dw[:d], w[d:])
		copy(dw[d:], acc)
		return dw
	}

	w := w0.Clone()
	t := t0
	for s := 0; s < nsteps; s++ {
		k1 := deriv(t, w)
		k2 := deriv(t+dt/2, axpy(w, dt/2, k1))
		k3 := deriv(t+dt/2, axpy(w, dt/2, k2))
		k4 := deriv(t+dt, axpy(w, dt, k3))
		for i := range w {
			w[i] += dt / 6 * (k1[i] + 2*k2[i] + 2*k3[i] + k4[i])
		}
		t += dt
	}
	return w
}

func axpy(w orbit.Phase, a float64, k orbit.Phase) orbit.Phase {
	out := make(orbit.Phase, len(w))
	for i := range w {
		out[i] = w[i] + a*k[i]
	}
	return out
}
