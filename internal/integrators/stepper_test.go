package integrators

import (
	"math"
	"testing"

	"github.com/nkotak/gridflow/internal/field"
	"github.com/nkotak/gridflow/internal/grid"
	"github.com/nkotak/gridflow/internal/sim"
)

type diffusive struct {
	d float64
}

func (p *diffusive) Name() string { return "test_diffusion" }

func (p *diffusive) Flux(g *grid.Raster, z []float64, q []float64) error {
	grad, err := field.GradAtLink(g, z, nil)
	if err != nil {
		return err
	}
	for l := range q {
		q[l] = -p.d * grad[l]
	}
	field.ZeroInactive(g, q)
	return nil
}

func bumpField(g *grid.Raster) []float64 {
	z := make([]float64, g.NodeCount())
	z[g.NodeAt(g.Rows()/2, g.Cols()/2)] = 10.0
	return z
}

func TestEulerMatchesRateOfChange(t *testing.T) {
	g, _ := grid.NewRaster(5, 5, grid.Spacing(1, 1))
	p := &diffusive{d: 0.1}
	z := bumpField(g)
	dt := 0.2

	q := make([]float64, g.LinkCount())
	rate := make([]float64, g.NodeCount())
	if err := sim.RateOfChange(g, p, z, 0, q, rate); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stepped, err := NewEuler().Step(g, p, z, 0, dt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for n := range z {
		want := z[n] + dt*rate[n]
		if math.Abs(stepped[n]-want) > 1e-12 {
			t.Errorf("node %d: expected %f, got %f", n, want, stepped[n])
		}
	}
}

func TestSteppersHoldSteadyState(t *testing.T) {
	// A constant field has zero gradient, so neither stepper should
	// move it.
	g, _ := grid.NewRaster(4, 5)
	p := &diffusive{d: 0.5}
	z := make([]float64, g.NodeCount())
	for n := range z {
		z[n] = 3.0
	}

	for _, stepper := range []sim.Stepper{NewEuler(), NewHeun()} {
		stepped, err := stepper.Step(g, p, z, 0, 0.1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for n := range stepped {
			if stepped[n] != 3.0 {
				t.Errorf("node %d moved from steady state: %f", n, stepped[n])
			}
		}
	}
}

func TestSteppersPreserveBoundaries(t *testing.T) {
	g, _ := grid.NewRaster(5, 5)
	p := &diffusive{d: 0.1}
	z := bumpField(g)
	for n := range z {
		if g.IsPerimeter(n) {
			z[n] = 2.0
		}
	}

	for _, stepper := range []sim.Stepper{NewEuler(), NewHeun()} {
		stepped, err := stepper.Step(g, p, z, 0, 0.1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for n := range stepped {
			if g.IsPerimeter(n) && stepped[n] != 2.0 {
				t.Errorf("boundary node %d changed: %f", n, stepped[n])
			}
		}
	}
}

func TestHeunMoreAccurateThanEuler(t *testing.T) {
	// Against a reference computed with tiny Euler steps, one large
	// Heun step should land closer than one large Euler step.
	g, _ := grid.NewRaster(5, 5, grid.Spacing(1, 1))
	p := &diffusive{d: 0.1}
	z0 := bumpField(g)
	bigDt := 1.0

	reference := append([]float64(nil), z0...)
	euler := NewEuler()
	smallSteps := 1000
	for i := 0; i < smallSteps; i++ {
		var err error
		reference, err = euler.Step(g, p, reference, 0, bigDt/float64(smallSteps))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	eulerOnce, err := NewEuler().Step(g, p, z0, 0, bigDt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	heunOnce, err := NewHeun().Step(g, p, z0, 0, bigDt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	errOf := func(z []float64) float64 {
		sum := 0.0
		for n := range z {
			d := z[n] - reference[n]
			sum += d * d
		}
		return math.Sqrt(sum)
	}

	if errOf(heunOnce) >= errOf(eulerOnce) {
		t.Errorf("heun error %e not below euler error %e", errOf(heunOnce), errOf(eulerOnce))
	}
}
