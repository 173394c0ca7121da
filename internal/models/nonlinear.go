package models

import (
	"github.com/nkotak/gridflow/internal/field"
	"github.com/nkotak/gridflow/internal/grid"
)

// Nonlinear is slope-dependent diffusion:
// q = -D (1 + (|grad z| / Sc)²) grad(z). Transport accelerates as
// slopes approach the critical slope Sc, a common hillslope closure.
type Nonlinear struct {
	D  float64 // linear diffusivity [L²/T]
	Sc float64 // critical slope [-]

	grad []float64
}

// NewNonlinear returns a nonlinear diffusion process.
func NewNonlinear(d, sc float64) *Nonlinear {
	return &Nonlinear{D: d, Sc: sc}
}

func (p *Nonlinear) Name() string { return "nonlinear" }

func (p *Nonlinear) Flux(g *grid.Raster, z []float64, q []float64) error {
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
		s := p.grad[l]
		ratio := s / p.Sc
		q[l] = -p.D * (1 + ratio*ratio) * s
	}
	field.ZeroInactive(g, q)
	return nil
}

func (p *Nonlinear) Params() map[string]float64 {
	return map[string]float64{"D": p.D, "Sc": p.Sc}
}

func (p *Nonlinear) SetParam(name string, value float64) error {
	switch name {
	case "D":
		if value < 0 {
			return ErrParamBounds
		}
		p.D = value
	case "Sc":
		if value <= 0 {
			return ErrParamBounds
		}
		p.Sc = value
	default:
		return ErrUnknownParam
	}
	return nil
}
