package stability_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/odelab/internal/linalg"
	"github.com/san-kum/odelab/internal/stability"
)

var _ = Describe("forward Euler", func() {
	It("is never stable for a purely imaginary eigenvalue", func() {
		lam := complex(0, 1)
		for _, dt := range []float64{0.001, 0.01, 0.1, 1, 10} {
			Expect(stability.IsStableEigen(lam, dt, stability.ExplicitEuler)).To(BeFalse(),
				"dt=%g should be unstable", dt)
		}
	})

	It("is stable for lambda=-1 exactly up to dt=2", func() {
		lam := complex(-1, 0)
		Expect(stability.IsStableEigen(lam, 1.9, stability.ExplicitEuler)).To(BeTrue())
		Expect(stability.IsStableEigen(lam, 2.0, stability.ExplicitEuler)).To(BeTrue())
		Expect(stability.IsStableEigen(lam, 2.0000001, stability.ExplicitEuler)).To(BeFalse())
	})

	It("reports the 2/|lambda| step bound for decaying modes", func() {
		Expect(stability.MaxStableDt(complex(-4, 0), stability.ExplicitEuler)).To(BeNumerically("~", 0.5, 1e-12))
		Expect(stability.MaxStableDt(complex(0, 1), stability.ExplicitEuler)).To(BeZero())
	})

	It("requires every eigenvalue to be stable", func() {
		eigs := []complex128{complex(-1, 0), complex(-10, 0)}
		Expect(stability.IsStable(eigs, 0.1, stability.ExplicitEuler)).To(BeTrue())
		// dt=0.5 keeps -1 stable but pushes -10 out of the disk.
		Expect(stability.IsStable(eigs, 0.5, stability.ExplicitEuler)).To(BeFalse())
	})
})

var _ = Describe("backward Euler", func() {
	It("is unconditionally stable in the left half plane", func() {
		lambdas := []complex128{
			complex(-1, 0),
			complex(-0.001, 0),
			complex(0, 1),
			complex(0, -3),
			complex(-2, 5),
		}
		for _, lam := range lambdas {
			for _, dt := range []float64{0.01, 1, 100} {
				Expect(stability.IsStableEigen(lam, dt, stability.ImplicitEuler)).To(BeTrue(),
					"lambda=%v dt=%g", lam, dt)
			}
		}
	})

	It("damps growing modes only for large enough steps", func() {
		// lambda=+1: |1/(1-dt)| <= 1 requires dt >= 2.
		lam := complex(1, 0)
		Expect(stability.IsStableEigen(lam, 0.5, stability.ImplicitEuler)).To(BeFalse())
		Expect(stability.IsStableEigen(lam, 2, stability.ImplicitEuler)).To(BeTrue())
	})

	It("has infinite amplification at the pole lambda*dt=1", func() {
		Expect(stability.Amplification(stability.ImplicitEuler, complex(2, 0), 0.5)).To(Equal(math.Inf(1)))
	})
})

var _ = Describe("operator spectra", func() {
	It("classifies the undamped oscillator as explicit-unstable, implicit-stable", func() {
		gamma := math.Sqrt2
		op, err := linalg.NewOperator(mat.NewDense(2, 2, []float64{0, 1, -gamma * gamma, 0}), nil)
		Expect(err).NotTo(HaveOccurred())

		eigs, err := op.Spectrum()
		Expect(err).NotTo(HaveOccurred())

		Expect(stability.IsStable(eigs, 0.15, stability.ExplicitEuler)).To(BeFalse())
		Expect(stability.IsStable(eigs, 0.15, stability.ImplicitEuler)).To(BeTrue())
	})
})

var _ = Describe("Region", func() {
	It("shades the forward Euler disk around z=-1", func() {
		grid := stability.Region(stability.ExplicitEuler, -3, 1, -2, 2, 81, 41)
		Expect(grid).To(HaveLen(41))

		center := grid[20][40] // z = -1 + 0i
		Expect(center).To(BeTrue())
		Expect(grid[20][80]).To(BeFalse(), "z = +1 is outside the disk")
	})

	It("returns nil for degenerate grids", func() {
		Expect(stability.Region(stability.ExplicitEuler, -1, 1, -1, 1, 1, 5)).To(BeNil())
	})
})
