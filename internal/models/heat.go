package models

import (
	"github.com/nkotak/gridflow/internal/field"
	"github.com/nkotak/gridflow/internal/grid"
)

// Heat is thermal diffusion: q = -kappa grad(T). Fixed-value boundary
// nodes act as heat reservoirs at their prescribed temperature. A
// spatially variable conductivity can be supplied per node; it is
// averaged onto link midpoints before the flux is formed.
type Heat struct {
	Kappa     float64   // uniform thermal diffusivity [L²/T]
	NodeKappa []float64 // optional per-node diffusivity, overrides Kappa

	grad  []float64
	klink []float64
}

// NewHeat returns a heat conduction process with uniform diffusivity.
func NewHeat(kappa float64) *Heat {
	return &Heat{Kappa: kappa}
}

func (p *Heat) Name() string { return "heat" }

func (p *Heat) Flux(g *grid.Raster, temp []float64, q []float64) error {
	if len(p.grad) != g.LinkCount() {
		p.grad = make([]float64, g.LinkCount())
	}
	if _, err := field.GradAtLink(g, temp, p.grad); err != nil {
		return err
	}
	if len(q) != g.LinkCount() {
		return field.ErrLengthMismatch
	}

	if p.NodeKappa != nil {
		if len(p.klink) != g.LinkCount() {
			p.klink = make([]float64, g.LinkCount())
		}
		if _, err := field.MeanOfLinkNodesToLink(g, p.NodeKappa, p.klink); err != nil {
			return err
		}
		for l := range q {
			q[l] = -p.klink[l] * p.grad[l]
		}
	} else {
		for l := range q {
			q[l] = -p.Kappa * p.grad[l]
		}
	}

	field.ZeroInactive(g, q)
	return nil
}

func (p *Heat) Params() map[string]float64 {
	return map[string]float64{"kappa": p.Kappa}
}

func (p *Heat) SetParam(name string, value float64) error {
	if name != "kappa" {
		return ErrUnknownParam
	}
	if value < 0 {
		return ErrParamBounds
	}
	p.Kappa = value
	return nil
}
