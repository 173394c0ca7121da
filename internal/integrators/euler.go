package integrators

import (
	"github.com/nkotak/gridflow/internal/grid"
	"github.com/nkotak/gridflow/internal/sim"
)

// Euler is the explicit forward-Euler stepper. First-order accurate and
// subject to the usual diffusion stability limit (see sim.StableDt).
type Euler struct {
	q    []float64
	rate []float64
}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(g *grid.Raster, p sim.Process, z []float64, t, dt float64) ([]float64, error) {
	e.resize(g)

	if err := sim.RateOfChange(g, p, z, t, e.q, e.rate); err != nil {
		return nil, err
	}

	newZ := make([]float64, len(z))
	for n := range z {
		newZ[n] = z[n] + dt*e.rate[n]
	}
	return newZ, nil
}

func (e *Euler) resize(g *grid.Raster) {
	if len(e.q) != g.LinkCount() {
		e.q = make([]float64, g.LinkCount())
	}
	if len(e.rate) != g.NodeCount() {
		e.rate = make([]float64, g.NodeCount())
	}
}
