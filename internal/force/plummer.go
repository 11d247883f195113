package force

import (
	"fmt"
	"math"
)

// Plummer is the softened point mass Phi = -G*M/sqrt(r^2 + b^2).
type Plummer struct {
	G float64
	M float64
	B float64
}

func NewPlummer() *Plummer { return &Plummer{G: 1.0, M: 1.0, B: 0.3} }
func (p *Plummer) NDim() int { return 3 }

func (p *Plummer) Accel(_ float64, pos, acc []float64) {
	b2 := p.B * p.B
	for o := 0; o+3 <= len(pos); o += 3 {
		q := pos[o : o+3]
		s := radius2(q) + b2
		f := -p.G * p.M / (s * math.Sqrt(s))
		acc[o] = f * q[0]
		acc[o+1] = f * q[1]
		acc[o+2] = f * q[2]
	}
}

func (p *Plummer) Value(q []float64) float64 {
	return -p.G * p.M / math.Sqrt(radius2(q)+p.B*p.B)
}

func (p *Plummer) GetParams() map[string]float64 {
	return map[string]float64{"g": p.G, "m": p.M, "b": p.B}
}

func (p *Plummer) SetParam(name string, v float64) error {
	switch name {
	case "g":
		p.G = v
	case "m":
		p.M = v
	case "b":
		if v <= 0 {
			return fmt.Errorf("plummer: softening must be positive, got %g", v)
		}
		p.B = v
	default:
		return fmt.Errorf("plummer: unknown parameter %q", name)
	}
	return nil
}
