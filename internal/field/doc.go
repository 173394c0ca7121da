// Package field provides scalar fields bound to a raster grid and the
// staggered-grid operators that connect them.
//
// Values live either at nodes or at links. [GradAtLink] differences a
// node field onto links; [FluxDivAtNode] and [NetFluxAtNode] integrate
// a link flux field back onto nodes using each cell's face widths and
// area. Together they satisfy a discrete divergence theorem: summing
// FluxDivAtNode times cell area over the core nodes recovers the net
// flux through the grid boundary.
package field
