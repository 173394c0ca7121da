package field

import (
	"github.com/nkotak/gridflow/internal/grid"
)

// GradAtLink computes the gradient of a node scalar along every link:
// the head value minus the tail value, divided by the link length.
// Links point east or north, so a positive gradient means the field
// increases eastward or northward.
//
// out is reused when non-nil; pass nil to allocate. The result has one
// entry per link.
func GradAtLink(g *grid.Raster, nodeVals []float64, out []float64) ([]float64, error) {
	if len(nodeVals) != g.NodeCount() {
		return nil, ErrLengthMismatch
	}
	if out == nil {
		out = make([]float64, g.LinkCount())
	} else if len(out) != g.LinkCount() {
		return nil, ErrLengthMismatch
	}

	for l := 0; l < g.LinkCount(); l++ {
		out[l] = (nodeVals[g.HeadNode(l)] - nodeVals[g.TailNode(l)]) / g.LinkLength(l)
	}
	return out, nil
}

// NetFluxAtNode sums a link flux field over the faces of each node's
// cell: outgoing flux counts positive, incoming negative, each weighted
// by the face width the link crosses. Units are flux times length.
// Perimeter nodes own no cell and get exactly zero.
func NetFluxAtNode(g *grid.Raster, linkFlux []float64, out []float64) ([]float64, error) {
	if len(linkFlux) != g.LinkCount() {
		return nil, ErrLengthMismatch
	}
	if out == nil {
		out = make([]float64, g.NodeCount())
	} else if len(out) != g.NodeCount() {
		return nil, ErrLengthMismatch
	}

	for n := 0; n < g.NodeCount(); n++ {
		if g.IsPerimeter(n) {
			out[n] = 0
			continue
		}
		links, dirs := g.LinksAtNode(n)
		total := 0.0
		for i, l := range links {
			// dir is +1 for links pointing into the node, so
			// -dir converts link flux to outgoing flux.
			total -= float64(dirs[i]) * linkFlux[l] * g.FaceWidth(l)
		}
		out[n] = total
	}
	return out, nil
}

// FluxDivAtNode computes the finite-volume flux divergence at each
// node: the net flux out of the node's cell divided by the cell area.
// Perimeter nodes get exactly zero.
func FluxDivAtNode(g *grid.Raster, linkFlux []float64, out []float64) ([]float64, error) {
	out, err := NetFluxAtNode(g, linkFlux, out)
	if err != nil {
		return nil, err
	}
	for n := 0; n < g.NodeCount(); n++ {
		if area := g.CellAreaAtNode(n); area > 0 {
			out[n] /= area
		}
	}
	return out, nil
}

// ZeroInactive zeroes a link flux field on every inactive link, which
// enforces no-flow across closed boundaries.
func ZeroInactive(g *grid.Raster, linkFlux []float64) {
	for l := 0; l < g.LinkCount(); l++ {
		if g.LinkStatus(l) == grid.Inactive {
			linkFlux[l] = 0
		}
	}
}
