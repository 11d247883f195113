package force

import (
	"fmt"
	"math"
)

// LogHalo is the triaxial logarithmic halo
// Phi = 0.5*v0^2 * ln(rc^2 + x^2 + (y/qy)^2 + (z/qz)^2),
// a flat-rotation-curve model. With qy = qz = 1 it is spherical.
type LogHalo struct {
	V0 float64
	Rc float64
	Qy float64
	Qz float64
}

func NewLogHalo() *LogHalo { return &LogHalo{V0: 1.0, Rc: 0.1, Qy: 1.0, Qz: 1.0} }
func (l *LogHalo) NDim() int { return 3 }

func (l *LogHalo) Accel(_ float64, pos, acc []float64) {
	v02 := l.V0 * l.V0
	qy2 := l.Qy * l.Qy
	qz2 := l.Qz * l.Qz
	for o := 0; o+3 <= len(pos); o += 3 {
		x, y, z := pos[o], pos[o+1], pos[o+2]
		s := l.Rc*l.Rc + x*x + y*y/qy2 + z*z/qz2
		acc[o] = -v02 * x / s
		acc[o+1] = -v02 * y / (qy2 * s)
		acc[o+2] = -v02 * z / (qz2 * s)
	}
}

func (l *LogHalo) Value(q []float64) float64 {
	s := l.Rc*l.Rc + q[0]*q[0] + q[1]*q[1]/(l.Qy*l.Qy) + q[2]*q[2]/(l.Qz*l.Qz)
	return 0.5 * l.V0 * l.V0 * math.Log(s)
}

func (l *LogHalo) GetParams() map[string]float64 {
	return map[string]float64{"v0": l.V0, "rc": l.Rc, "qy": l.Qy, "qz": l.Qz}
}

func (l *LogHalo) SetParam(name string, v float64) error {
	switch name {
	case "v0":
		l.V0 = v
	case "rc":
		l.Rc = v
	case "qy":
		if v <= 0 {
			return fmt.Errorf("loghalo: axis ratio must be positive, got %g", v)
		}
		l.Qy = v
	case "qz":
		if v <= 0 {
			return fmt.Errorf("loghalo: axis ratio must be positive, got %g", v)
		}
		l.Qz = v
	default:
		return fmt.Errorf("loghalo: unknown parameter %q", name)
	}
	return nil
}
