package force

// HenonHeiles is the two-dimensional Henon-Heiles potential
// Phi = 0.5*(x^2 + y^2) + x^2*y - y^3/3. Orbits near the escape
// energy 1/6 are chaotic; the canonical chaos test bed.
type HenonHeiles struct{}

func NewHenonHeiles() *HenonHeiles { return &HenonHeiles{} }
func (*HenonHeiles) NDim() int { return 2 }

func (*HenonHeiles) Accel(_ float64, pos, acc []float64) {
	for o := 0; o+2 <= len(pos); o += 2 {
		x, y := pos[o], pos[o+1]
		acc[o] = -x - 2*x*y
		acc[o+1] = -y - x*x + y*y
	}
}

func (*HenonHeiles) Value(q []float64) float64 {
	x, y := q[0], q[1]
	return 0.5*(x*x+y*y) + x*x*y - y*y*y/3
}
