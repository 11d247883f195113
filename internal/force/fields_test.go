package force_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/soham-b/orbitlab/internal/force"
	"github.com/soham-b/orbitlab/internal/orbit"
)

// gradCheck verifies Accel against a central finite difference of the
// potential at one point: a = -dPhi/dq.
func gradCheck(f force.Field, q []float64) {
	pe, ok := f.(force.PotentialEnergy)
	Expect(ok).To(BeTrue(), "field must expose a potential")

	d := f.NDim()
	acc := make([]float64, d)
	f.Accel(0, q, acc)

	const eps = 1e-6
	for i := 0; i < d; i++ {
		qp := append([]float64{}, q...)
		qm := append([]float64{}, q...)
		qp[i] += eps
		qm[i] -= eps
		grad := (pe.Value(qp) - pe.Value(qm)) / (2 * eps)
		Expect(acc[i]).To(BeNumerically("~", -grad, 1e-5))
	}
}

var _ = Describe("gravitational fields", func() {
	DescribeTable("acceleration is the negative potential gradient",
		func(name string, q []float64) {
			f, err := force.FromName(name, nil)
			Expect(err).NotTo(HaveOccurred())
			gradCheck(f, q)
		},
		Entry("kepler", "kepler", []float64{1.0, 0.5, -0.3}),
		Entry("harmonic", "harmonic", []float64{0.7, -0.2, 1.1}),
		Entry("hernquist", "hernquist", []float64{1.2, 0.4, 0.9}),
		Entry("plummer", "plummer", []float64{0.6, -0.8, 0.2}),
		Entry("loghalo", "loghalo", []float64{1.5, 0.3, -0.7}),
		Entry("henonheiles", "henonheiles", []float64{0.3, -0.2}),
	)

	Describe("Kepler", func() {
		It("gives the circular orbit balance at r=1", func() {
			k := force.NewKepler()
			acc := make([]float64, 3)
			k.Accel(0, []float64{1, 0, 0}, acc)
			Expect(acc[0]).To(BeNumerically("~", -1.0, 1e-12))
			Expect(acc[1]).To(BeZero())
			Expect(acc[2]).To(BeZero())
		})

		It("scales with mu", func() {
			k := force.NewKepler()
			Expect(k.SetParam("mu", 4.0)).To(Succeed())
			acc := make([]float64, 3)
			k.Accel(0, []float64{1, 0, 0}, acc)
			Expect(acc[0]).To(BeNumerically("~", -4.0, 1e-12))
		})
	})

	Describe("Hernquist", func() {
		It("approaches Keplerian circular velocity far out", func() {
			h := force.NewHernquist()
			far := h.CircularVelocity(1000.0)
			kepler := math.Sqrt(1.0 / 1000.0)
			Expect(far).To(BeNumerically("~", kepler, kepler*0.01))
		})
	})

	Describe("Hénon-Heiles", func() {
		It("is two-dimensional", func() {
			Expect(force.NewHenonHeiles().NDim()).To(Equal(2))
		})

		It("puts the reference chaotic state near the escape energy", func() {
			f := force.NewHenonHeiles()
			e, ok := force.Energy(f, orbit.Phase{0, -0.25, 0.510310, 0})
			Expect(ok).To(BeTrue())
			Expect(e).To(BeNumerically("~", 1.0/6.0, 1e-3))
		})
	})

	Describe("batch evaluation", func() {
		It("treats each orbit independently", func() {
			k := force.NewKepler()
			q1 := []float64{1, 0, 0}
			q2 := []float64{0, 2, 0}

			solo1 := make([]float64, 3)
			solo2 := make([]float64, 3)
			k.Accel(0, q1, solo1)
			k.Accel(0, q2, solo2)

			batched := make([]float64, 6)
			k.Accel(0, append(append([]float64{}, q1...), q2...), batched)

			Expect(batched[:3]).To(Equal(solo1))
			Expect(batched[3:]).To(Equal(solo2))
		})
	})
})

var _ = Describe("registry", func() {
	It("constructs every listed potential", func() {
		for _, name := range force.Names() {
			f, err := force.FromName(name, nil)
			Expect(err).NotTo(HaveOccurred(), name)
			Expect(f).NotTo(BeNil(), name)
		}
	})

	It("rejects unknown names", func() {
		_, err := force.FromName("yukawa", nil)
		Expect(err).To(HaveOccurred())
	})

	It("applies parameter overrides", func() {
		f, err := force.FromName("plummer", map[string]float64{"b": 0.7})
		Expect(err).NotTo(HaveOccurred())
		c := f.(force.Configurable)
		Expect(c.GetParams()["b"]).To(Equal(0.7))
	})

	It("rejects unknown parameters", func() {
		_, err := force.FromName("kepler", map[string]float64{"spin": 1.0})
		Expect(err).To(HaveOccurred())
	})

	It("rejects parameters on fixed potentials", func() {
		_, err := force.FromName("henonheiles", map[string]float64{"a": 1.0})
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Energy helper", func() {
	It("sums kinetic and potential parts", func() {
		e, ok := force.Energy(force.NewKepler(), orbit.Phase{1, 0, 0, 0, 1, 0})
		Expect(ok).To(BeTrue())
		Expect(e).To(BeNumerically("~", -0.5, 1e-12))
	})

	It("reports fields without a potential", func() {
		_, ok := force.Energy(bareField{}, orbit.Phase{1, 0, 0, 1})
		Expect(ok).To(BeFalse())
	})
})

type bareField struct{}

func (bareField) NDim() int { return 2 }

func (bareField) Accel(t float64, pos, acc []float64) {
	for i := range acc {
		acc[i] = 0
	}
}
