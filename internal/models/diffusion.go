package models

import (
	"github.com/nkotak/gridflow/internal/field"
	"github.com/nkotak/gridflow/internal/grid"
)

// Diffusion is linear diffusion with an optional uniform uplift source:
// q = -D grad(z). With uplift it models a steadily rising surface worn
// down by slope-proportional transport.
type Diffusion struct {
	D      float64 // diffusivity [L²/T]
	Uplift float64 // source at core nodes [L/T]

	grad []float64
}

// NewDiffusion returns a diffusion process with diffusivity d.
func NewDiffusion(d float64) *Diffusion {
	return &Diffusion{D: d}
}

func (p *Diffusion) Name() string { return "diffusion" }

func (p *Diffusion) Flux(g *grid.Raster, z []float64, q []float64) error {
	if len(p.grad) != g.LinkCount() {
		p.grad = make([]float64, g.LinkCount())
	}
	if _, err := field.GradAtLink(g, z, p.grad); err != nil {
		return err
	}
	if len(q) != g.LinkCount() {
		return field.ErrLengthMismatch
	}
	for l := range q {
		q[l] = -p.D * p.grad[l]
	}
	field.ZeroInactive(g, q)
	return nil
}

func (p *Diffusion) Source(g *grid.Raster, t float64, s []float64) {
	if p.Uplift == 0 {
		return
	}
	for _, n := range g.CoreNodes() {
		s[n] = p.Uplift
	}
}

func (p *Diffusion) Params() map[string]float64 {
	return map[string]float64{"D": p.D, "uplift": p.Uplift}
}

func (p *Diffusion) SetParam(name string, value float64) error {
	switch name {
	case "D":
		if value < 0 {
			return ErrParamBounds
		}
		p.D = value
	case "uplift":
		p.Uplift = value
	default:
		return ErrUnknownParam
	}
	return nil
}
