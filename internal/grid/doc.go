// Package grid provides a structured raster grid of nodes, links, and
// cells for finite-volume calculations.
//
// Nodes are numbered row by row from the bottom-left corner. Links join
// adjacent nodes and always point east or north, so scalar differences
// along links have a fixed sign convention. Interior nodes own cells;
// perimeter nodes are boundaries with a [NodeStatus] of FixedValue or
// Closed.
//
// # Example
//
//	g, _ := grid.NewRaster(4, 5, grid.Spacing(10, 10))
//	for _, n := range g.CoreNodes() {
//		_ = g.CellAreaAtNode(n)
//	}
//
// Raster values are immutable after construction apart from boundary
// status, so a grid may be shared by any number of fields.
package grid
