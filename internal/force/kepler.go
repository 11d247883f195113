package force

import "fmt"

// Kepler is an inverse-square attractive field of strength Mu (=GM)
// centered at the origin.
type Kepler struct {
	Mu float64
}

func NewKepler() *Kepler { return &Kepler{Mu: 1.0} }
func (k *Kepler) NDim() int { return 3 }

func (k *Kepler) Accel(_ float64, pos, acc []float64) {
	for o := 0; o+3 <= len(pos); o += 3 {
		q := pos[o : o+3]
		r := radius(q)
		f := -k.Mu / (r * r * r)
		acc[o] = f * q[0]
		acc[o+1] = f * q[1]
		acc[o+2] = f * q[2]
	}
}

func (k *Kepler) Value(q []float64) float64 {
	return -k.Mu / radius(q)
}

func (k *Kepler) GetParams() map[string]float64 {
	return map[string]float64{"mu": k.Mu}
}

func (k *Kepler) SetParam(name string, v float64) error {
	switch name {
	case "mu":
		k.Mu = v
	default:
		return fmt.Errorf("kepler: unknown parameter %q", name)
	}
	return nil
}
