package force

import (
	"fmt"
	"math"
)

// Hernquist is the Hernquist (1990) spheroid: Phi = -G*M/(r+c).
type Hernquist struct {
	G float64
	M float64
	C float64
}

func NewHernquist() *Hernquist { return &Hernquist{G: 1.0, M: 1.0, C: 0.5} }
func (h *Hernquist) NDim() int { return 3 }

func (h *Hernquist) Accel(_ float64, pos, acc []float64) {
	for o := 0; o+3 <= len(pos); o += 3 {
		q := pos[o : o+3]
		r := radius(q)
		rc := r + h.C
		f := -h.G * h.M / (rc * rc * r)
		acc[o] = f * q[0]
		acc[o+1] = f * q[1]
		acc[o+2] = f * q[2]
	}
}

func (h *Hernquist) Value(q []float64) float64 {
	return -h.G * h.M / (radius(q) + h.C)
}

func (h *Hernquist) GetParams() map[string]float64 {
	return map[string]float64{"g": h.G, "m": h.M, "c": h.C}
}

func (h *Hernquist) SetParam(name string, v float64) error {
	switch name {
	case "g":
		h.G = v
	case "m":
		h.M = v
	case "c":
		if v <= 0 {
			return fmt.Errorf("hernquist: scale radius must be positive, got %g", v)
		}
		h.C = v
	default:
		return fmt.Errorf("hernquist: unknown parameter %q", name)
	}
	return nil
}

// CircularVelocity returns the circular speed at radius r.
func (h *Hernquist) CircularVelocity(r float64) float64 {
	return math.Sqrt(h.G * h.M * r / ((r + h.C) * (r + h.C)))
}
