package field

import (
	"github.com/nkotak/gridflow/internal/grid"
)

// MeanOfLinkNodesToLink maps a node scalar onto links as the average of
// each link's endpoint values. Nonlinear flux laws use this to evaluate
// value-dependent coefficients at link midpoints.
func MeanOfLinkNodesToLink(g *grid.Raster, nodeVals []float64, out []float64) ([]float64, error) {
	if len(nodeVals) != g.NodeCount() {
		return nil, ErrLengthMismatch
	}
	if out == nil {
		out = make([]float64, g.LinkCount())
	} else if len(out) != g.LinkCount() {
		return nil, ErrLengthMismatch
	}

	for l := 0; l < g.LinkCount(); l++ {
		out[l] = 0.5 * (nodeVals[g.TailNode(l)] + nodeVals[g.HeadNode(l)])
	}
	return out, nil
}
