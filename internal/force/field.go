package force

import (
	"fmt"
	"math"

	"github.com/soham-b/orbitlab/internal/orbit"
)

// Field computes accelerations for a batch of positions. pos holds
// norb*NDim() components, orbit-major; the field writes the matching
// accelerations into acc. Implementations must not retain or mutate
// pos and must be pure for the duration of one integration call.
//
// Time-independent fields ignore t.
type Field interface {
	NDim() int
	Accel(t float64, pos, acc []float64)
}

// PotentialEnergy is implemented by fields with a scalar potential,
// enabling energy-drift checks on conservative systems.
type PotentialEnergy interface {
	Value(q []float64) float64
}

// Energy returns the specific energy 0.5*v^2 + Phi(q) of one phase
// point, and whether the field exposes a potential at all.
func Energy(f Field, w orbit.Phase) (float64, bool) {
	pe, ok := f.(PotentialEnergy)
	if !ok {
		return 0, false
	}
	d := f.NDim()
	ke := 0.0
	for _, v := range w[d:] {
		ke += v * v
	}
	return 0.5*ke + pe.Value(w[:d]), true
}

// Configurable is implemented by fields whose parameters can be set by
// name, for config-file driven construction.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// FromName constructs a field by registry name and applies params.
func FromName(name string, params map[string]float64) (Field, error) {
	var f Field
	switch name {
	case "kepler":
		f = NewKepler()
	case "harmonic":
		f = NewHarmonic()
	case "hernquist":
		f = NewHernquist()
	case "plummer":
		f = NewPlummer()
	case "loghalo":
		f = NewLogHalo()
	case "henonheiles":
		f = NewHenonHeiles()
	default:
		return nil, fmt.Errorf("unknown potential: %s", name)
	}
	if len(params) > 0 {
		c, ok := f.(Configurable)
		if !ok {
			return nil, fmt.Errorf("potential %s takes no parameters", name)
		}
		for k, v := range params {
			if err := c.SetParam(k, v); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}

// Names lists the registered potential names.
func Names() []string {
	return []string{"harmonic", "henonheiles", "hernquist", "kepler", "loghalo", "plummer"}
}

func radius2(q []float64) float64 {
	r2 := 0.0
	for _, x := range q {
		r2 += x * x
	}
	return r2
}

func radius(q []float64) float64 { return math.Sqrt(radius2(q)) }
