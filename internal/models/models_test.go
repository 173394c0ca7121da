package models

import (
	"errors"
	"math"
	"testing"

	"github.com/nkotak/gridflow/internal/field"
	"github.com/nkotak/gridflow/internal/grid"
)

func rampField(g *grid.Raster, slope float64) []float64 {
	z := make([]float64, g.NodeCount())
	for n := range z {
		z[n] = slope * g.X(n)
	}
	return z
}

func TestDiffusionFluxIsMinusDGrad(t *testing.T) {
	g, _ := grid.NewRaster(4, 5, grid.Spacing(2, 2))
	p := NewDiffusion(0.5)
	z := rampField(g, 0.2)

	q := make([]float64, g.LinkCount())
	if err := p.Flux(g, z, q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	grad, _ := field.GradAtLink(g, z, nil)
	for l := range q {
		if g.LinkStatus(l) == grid.Inactive {
			if q[l] != 0 {
				t.Errorf("inactive link %d carries flux %f", l, q[l])
			}
			continue
		}
		want := -0.5 * grad[l]
		if math.Abs(q[l]-want) > 1e-12 {
			t.Errorf("link %d: expected %f, got %f", l, want, q[l])
		}
	}
}

func TestDiffusionZeroesClosedBoundaryFlux(t *testing.T) {
	g, _ := grid.NewRaster(4, 5)
	g.SetClosedBoundaries(true, true, true, true)
	p := NewDiffusion(1.0)
	z := rampField(g, 1.0)

	q := make([]float64, g.LinkCount())
	if err := p.Flux(g, z, q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for l := range q {
		if g.LinkStatus(l) == grid.Inactive && q[l] != 0 {
			t.Errorf("closed-boundary link %d carries flux %f", l, q[l])
		}
	}
}

func TestDiffusionUpliftSource(t *testing.T) {
	g, _ := grid.NewRaster(4, 5)
	p := NewDiffusion(0.01)
	p.Uplift = 0.001

	s := make([]float64, g.NodeCount())
	p.Source(g, 0, s)

	for n := range s {
		want := 0.0
		if g.Status(n) == grid.Core {
			want = 0.001
		}
		if s[n] != want {
			t.Errorf("node %d: expected source %f, got %f", n, want, s[n])
		}
	}
}

func TestDiffusionParams(t *testing.T) {
	p := NewDiffusion(0.01)

	if err := p.SetParam("D", 0.5); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if p.D != 0.5 {
		t.Errorf("expected D=0.5, got %f", p.D)
	}

	if err := p.SetParam("D", -1); !errors.Is(err, ErrParamBounds) {
		t.Errorf("expected ErrParamBounds, got %v", err)
	}
	if err := p.SetParam("bogus", 1); !errors.Is(err, ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
}

func TestHeatUniformKappa(t *testing.T) {
	g, _ := grid.NewRaster(4, 5)
	p := NewHeat(2.0)
	temp := rampField(g, 3.0)

	q := make([]float64, g.LinkCount())
	if err := p.Flux(g, temp, q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	grad, _ := field.GradAtLink(g, temp, nil)
	for l := range q {
		if g.LinkStatus(l) == grid.Inactive {
			continue
		}
		want := -2.0 * grad[l]
		if math.Abs(q[l]-want) > 1e-12 {
			t.Errorf("link %d: expected %f, got %f", l, want, q[l])
		}
	}
}

func TestHeatNodeKappaAveragesOntoLinks(t *testing.T) {
	g, _ := grid.NewRaster(4, 5)
	p := NewHeat(1.0)
	p.NodeKappa = make([]float64, g.NodeCount())
	for n := range p.NodeKappa {
		p.NodeKappa[n] = 1.0 + 0.1*float64(n)
	}
	temp := rampField(g, 1.0)

	q := make([]float64, g.LinkCount())
	if err := p.Flux(g, temp, q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	grad, _ := field.GradAtLink(g, temp, nil)
	for l := range q {
		if g.LinkStatus(l) == grid.Inactive {
			continue
		}
		k := 0.5 * (p.NodeKappa[g.TailNode(l)] + p.NodeKappa[g.HeadNode(l)])
		want := -k * grad[l]
		if math.Abs(q[l]-want) > 1e-12 {
			t.Errorf("link %d: expected %f, got %f", l, want, q[l])
		}
	}
}

func TestNonlinearReducesToLinearForGentleSlopes(t *testing.T) {
	g, _ := grid.NewRaster(4, 5, grid.Spacing(100, 100))
	lin := NewDiffusion(0.01)
	nl := NewNonlinear(0.01, 1e6) // huge critical slope

	z := rampField(g, 0.001)
	qLin := make([]float64, g.LinkCount())
	qNl := make([]float64, g.LinkCount())
	if err := lin.Flux(g, z, qLin); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := nl.Flux(g, z, qNl); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for l := range qLin {
		if math.Abs(qLin[l]-qNl[l]) > 1e-15 {
			t.Errorf("link %d: linear %e vs nonlinear %e", l, qLin[l], qNl[l])
		}
	}
}

func TestNonlinearAmplifiesSteepSlopes(t *testing.T) {
	g, _ := grid.NewRaster(4, 5, grid.Spacing(1, 1))
	lin := NewDiffusion(0.01)
	nl := NewNonlinear(0.01, 0.5)

	z := rampField(g, 2.0) // slope well above Sc
	qLin := make([]float64, g.LinkCount())
	qNl := make([]float64, g.LinkCount())
	lin.Flux(g, z, qLin)
	nl.Flux(g, z, qNl)

	for l := range qLin {
		if g.LinkStatus(l) == grid.Inactive || g.LinkDirection(l) != grid.East {
			continue
		}
		if math.Abs(qNl[l]) <= math.Abs(qLin[l]) {
			t.Errorf("link %d: nonlinear flux %e not above linear %e", l, qNl[l], qLin[l])
		}
	}
}

func TestNonlinearParams(t *testing.T) {
	p := NewNonlinear(0.01, 0.7)

	if err := p.SetParam("Sc", 0); !errors.Is(err, ErrParamBounds) {
		t.Errorf("expected ErrParamBounds for Sc=0, got %v", err)
	}
	if err := p.SetParam("Sc", 1.2); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if p.Sc != 1.2 {
		t.Errorf("expected Sc=1.2, got %f", p.Sc)
	}
}
