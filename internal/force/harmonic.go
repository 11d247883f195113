package force

import "fmt"

// Harmonic is an isotropic harmonic oscillator with angular frequency
// Omega. Every orbit is periodic, so the largest Lyapunov exponent is
// zero; useful as the non-chaotic reference system.
type Harmonic struct {
	Omega float64
}

func NewHarmonic() *Harmonic { return &Harmonic{Omega: 1.0} }
func (h *Harmonic) NDim() int { return 3 }

func (h *Harmonic) Accel(_ float64, pos, acc []float64) {
	w2 := h.Omega * h.Omega
	for i := range pos {
		acc[i] = -w2 * pos[i]
	}
}

func (h *Harmonic) Value(q []float64) float64 {
	return 0.5 * h.Omega * h.Omega * radius2(q)
}

func (h *Harmonic) GetParams() map[string]float64 {
	return map[string]float64{"omega": h.Omega}
}

func (h *Harmonic) SetParam(name string, v float64) error {
	switch name {
	case "omega":
		h.Omega = v
	default:
		return fmt.Errorf("harmonic: unknown parameter %q", name)
	}
	return nil
}
