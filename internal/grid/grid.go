package grid

import (
	"fmt"
)

// Direction of a link relative to its tail node. Links only ever point
// east or north, so the tail is always the lower-numbered node.
type Direction int

const (
	East Direction = iota
	North
)

// Raster is a rectangular grid of nodes joined by links. Nodes are
// numbered row by row from the bottom-left corner. Each interior node
// owns a cell of area Dx*Dy; perimeter nodes own no cell.
type Raster struct {
	rows, cols int
	dx, dy     float64
	status     []NodeStatus
}

// Option configures a Raster at construction time.
type Option func(*Raster)

// Spacing sets the node spacing in the x and y directions.
func Spacing(dx, dy float64) Option {
	return func(g *Raster) {
		g.dx = dx
		g.dy = dy
	}
}

// NewRaster builds a rows-by-cols grid with unit spacing unless
// overridden. Grids smaller than 3x3 have no interior and are rejected.
func NewRaster(rows, cols int, opts ...Option) (*Raster, error) {
	g := &Raster{rows: rows, cols: cols, dx: 1.0, dy: 1.0}
	for _, opt := range opts {
		opt(g)
	}

	if rows < 3 || cols < 3 {
		return nil, fmt.Errorf("grid must be at least 3x3, got %dx%d", rows, cols)
	}
	if g.dx <= 0 || g.dy <= 0 {
		return nil, fmt.Errorf("spacing must be positive, got dx=%f dy=%f", g.dx, g.dy)
	}

	g.status = make([]NodeStatus, rows*cols)
	for n := range g.status {
		r, c := n/cols, n%cols
		if r == 0 || r == rows-1 || c == 0 || c == cols-1 {
			g.status[n] = FixedValue
		} else {
			g.status[n] = Core
		}
	}

	return g, nil
}

func (g *Raster) Rows() int     { return g.rows }
func (g *Raster) Cols() int     { return g.cols }
func (g *Raster) Dx() float64   { return g.dx }
func (g *Raster) Dy() float64   { return g.dy }
func (g *Raster) NodeCount() int { return g.rows * g.cols }

// LinkCount returns the number of links: one east link per node pair in
// a row, one north link per node pair in a column.
func (g *Raster) LinkCount() int {
	return g.rows*(g.cols-1) + (g.rows-1)*g.cols
}

// X returns the x coordinate of node n.
func (g *Raster) X(n int) float64 { return float64(n%g.cols) * g.dx }

// Y returns the y coordinate of node n.
func (g *Raster) Y(n int) float64 { return float64(n/g.cols) * g.dy }

// NodeAt returns the node id at grid position (row, col).
func (g *Raster) NodeAt(row, col int) int { return row*g.cols + col }

// linksPerRow is the number of links in one "link row": the east links
// of a node row followed by the north links rising from it.
func (g *Raster) linksPerRow() int { return 2*g.cols - 1 }

// Links are numbered row by row: first the east links of node row r,
// then the north links from row r to row r+1, then the east links of
// row r+1, and so on. The top node row contributes only east links.

// eastLink returns the id of the link leaving (row, col) eastward, or
// -1 when the node is on the east edge.
func (g *Raster) eastLink(row, col int) int {
	if col >= g.cols-1 {
		return -1
	}
	return row*g.linksPerRow() + col
}

// northLink returns the id of the link leaving (row, col) northward, or
// -1 when the node is on the north edge.
func (g *Raster) northLink(row, col int) int {
	if row >= g.rows-1 {
		return -1
	}
	return row*g.linksPerRow() + (g.cols - 1) + col
}

// LinkDirection reports whether link l points east or north.
func (g *Raster) LinkDirection(l int) Direction {
	if l%g.linksPerRow() < g.cols-1 {
		return East
	}
	return North
}

// TailNode returns the node a link points away from.
func (g *Raster) TailNode(l int) int {
	row := l / g.linksPerRow()
	rem := l % g.linksPerRow()
	if rem < g.cols-1 {
		return row*g.cols + rem // east link
	}
	return row*g.cols + (rem - (g.cols - 1)) // north link
}

// HeadNode returns the node a link points toward.
func (g *Raster) HeadNode(l int) int {
	if g.LinkDirection(l) == East {
		return g.TailNode(l) + 1
	}
	return g.TailNode(l) + g.cols
}

// LinkLength returns the distance between a link's endpoints.
func (g *Raster) LinkLength(l int) float64 {
	if g.LinkDirection(l) == East {
		return g.dx
	}
	return g.dy
}

// FaceWidth returns the width of the cell face a link crosses: the
// spacing perpendicular to the link.
func (g *Raster) FaceWidth(l int) float64 {
	if g.LinkDirection(l) == East {
		return g.dy
	}
	return g.dx
}

// LinksAtNode returns the links touching node n, ordered east, north,
// west, south, together with their directions relative to the node:
// +1 for a link pointing into the node, -1 for a link pointing away.
// Edge nodes get fewer than four entries.
func (g *Raster) LinksAtNode(n int) (links []int, dirs []int) {
	row, col := n/g.cols, n%g.cols

	if l := g.eastLink(row, col); l >= 0 {
		links = append(links, l)
		dirs = append(dirs, -1)
	}
	if l := g.northLink(row, col); l >= 0 {
		links = append(links, l)
		dirs = append(dirs, -1)
	}
	if col > 0 {
		links = append(links, g.eastLink(row, col-1))
		dirs = append(dirs, +1)
	}
	if row > 0 {
		links = append(links, g.northLink(row-1, col))
		dirs = append(dirs, +1)
	}
	return links, dirs
}

// CellAreaAtNode returns the area of the cell owned by node n, or 0 for
// perimeter nodes, which own no cell.
func (g *Raster) CellAreaAtNode(n int) float64 {
	if g.IsPerimeter(n) {
		return 0
	}
	return g.dx * g.dy
}

// IsPerimeter reports whether node n lies on the grid edge.
func (g *Raster) IsPerimeter(n int) bool {
	r, c := n/g.cols, n%g.cols
	return r == 0 || r == g.rows-1 || c == 0 || c == g.cols-1
}
