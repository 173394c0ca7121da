package field_test

import (
	"math"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nkotak/gridflow/internal/field"
	"github.com/nkotak/gridflow/internal/grid"
)

func TestField(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Field Operators Suite")
}

var _ = Describe("staggered grid operators", func() {
	var g *grid.Raster

	BeforeEach(func() {
		var err error
		g, err = grid.NewRaster(4, 5, grid.Spacing(10, 10))
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("GradAtLink", func() {
		It("returns one gradient per link", func() {
			z := field.NewNodeField(g, "elevation")
			grad, err := field.GradAtLink(g, z.Values, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(grad).To(HaveLen(g.LinkCount()))
		})

		It("recovers the slope of a linear ramp", func() {
			z := field.NewNodeField(g, "elevation")
			z.SetFromFunc(func(x, y float64) float64 { return 0.05 * x })

			grad, err := field.GradAtLink(g, z.Values, nil)
			Expect(err).NotTo(HaveOccurred())

			for l, v := range grad {
				if g.LinkDirection(l) == grid.East {
					Expect(v).To(BeNumerically("~", 0.05, 1e-12))
				} else {
					Expect(v).To(BeNumerically("~", 0.0, 1e-12))
				}
			}
		})
	})

	Describe("FluxDivAtNode", func() {
		It("is zero everywhere for a divergence-free flux", func() {
			q := make([]float64, g.LinkCount())
			for l := range q {
				q[l] = 1.25
			}
			div, err := field.FluxDivAtNode(g, q, nil)
			Expect(err).NotTo(HaveOccurred())
			for _, v := range div {
				Expect(v).To(BeNumerically("~", 0.0, 1e-12))
			}
		})

		It("balances interior divergence against boundary outflow", func() {
			q := make([]float64, g.LinkCount())
			for l := range q {
				q[l] = math.Sin(float64(l)*0.7 + 0.2)
			}

			div, err := field.FluxDivAtNode(g, q, nil)
			Expect(err).NotTo(HaveOccurred())

			interior := 0.0
			for _, n := range g.CoreNodes() {
				interior += div[n] * g.CellAreaAtNode(n)
			}

			boundary := 0.0
			for _, n := range g.CoreNodes() {
				links, dirs := g.LinksAtNode(n)
				for i, l := range links {
					other := g.TailNode(l)
					if other == n {
						other = g.HeadNode(l)
					}
					if g.IsPerimeter(other) {
						boundary -= float64(dirs[i]) * q[l] * g.FaceWidth(l)
					}
				}
			}

			Expect(interior).To(BeNumerically("~", boundary, 1e-9))
		})

		It("rejects a flux slice sized for another grid", func() {
			_, err := field.FluxDivAtNode(g, make([]float64, 3), nil)
			Expect(err).To(MatchError(field.ErrLengthMismatch))
		})
	})

	Describe("round trip through a diffusive flux", func() {
		It("drains mass from a bump at the grid center", func() {
			z := field.NewNodeField(g, "elevation")
			center := g.NodeAt(2, 2)
			z.Values[center] = 1.0

			grad, err := field.GradAtLink(g, z.Values, nil)
			Expect(err).NotTo(HaveOccurred())

			q := make([]float64, g.LinkCount())
			for l := range grad {
				q[l] = -0.01 * grad[l]
			}

			div, err := field.FluxDivAtNode(g, q, nil)
			Expect(err).NotTo(HaveOccurred())

			// Divergence is positive at the bump (net outflow) and
			// negative at its core neighbors.
			Expect(div[center]).To(BeNumerically(">", 0))
			Expect(div[center-1]).To(BeNumerically("<", 0))
			Expect(div[center-g.Cols()]).To(BeNumerically("<", 0))
		})
	})
})
