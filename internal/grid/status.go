package grid

// NodeStatus marks how a node participates in flux exchange.
type NodeStatus int

const (
	// Core nodes evolve; they own a cell and exchange flux with
	// their neighbors.
	Core NodeStatus = iota
	// FixedValue nodes hold a prescribed value and exchange flux
	// with adjacent core nodes. All perimeter nodes start fixed.
	FixedValue
	// Closed nodes exchange no flux at all.
	Closed
)

func (s NodeStatus) String() string {
	switch s {
	case Core:
		return "core"
	case FixedValue:
		return "fixed"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// LinkStatus marks whether a link carries flux.
type LinkStatus int

const (
	// Active links join a core node to a core or fixed-value node.
	Active LinkStatus = iota
	// Inactive links touch a closed node or join two boundary nodes.
	Inactive
)

// Status returns the boundary status of node n.
func (g *Raster) Status(n int) NodeStatus { return g.status[n] }

// SetStatus overrides the status of node n. Interior nodes cannot be
// made fixed-value or closed through this grid; only perimeter status
// is adjustable.
func (g *Raster) SetStatus(n int, s NodeStatus) {
	if g.IsPerimeter(n) {
		g.status[n] = s
	}
}

// SetClosedBoundaries closes the chosen grid edges. Closed perimeter
// nodes exchange no flux, which makes those edges no-flow walls.
func (g *Raster) SetClosedBoundaries(right, top, left, bottom bool) {
	for n := 0; n < g.NodeCount(); n++ {
		r, c := n/g.cols, n%g.cols
		switch {
		case right && c == g.cols-1:
			g.status[n] = Closed
		case top && r == g.rows-1:
			g.status[n] = Closed
		case left && c == 0:
			g.status[n] = Closed
		case bottom && r == 0:
			g.status[n] = Closed
		}
	}
}

// CoreNodes returns the ids of all core nodes in ascending order.
func (g *Raster) CoreNodes() []int {
	core := make([]int, 0, (g.rows-2)*(g.cols-2))
	for n, s := range g.status {
		if s == Core {
			core = append(core, n)
		}
	}
	return core
}

// LinkStatus derives a link's status from its endpoint nodes.
func (g *Raster) LinkStatus(l int) LinkStatus {
	tail := g.status[g.TailNode(l)]
	head := g.status[g.HeadNode(l)]

	if tail == Closed || head == Closed {
		return Inactive
	}
	if tail != Core && head != Core {
		return Inactive
	}
	return Active
}

// ActiveLinks returns the ids of all active links in ascending order.
func (g *Raster) ActiveLinks() []int {
	active := make([]int, 0, g.LinkCount())
	for l := 0; l < g.LinkCount(); l++ {
		if g.LinkStatus(l) == Active {
			active = append(active, l)
		}
	}
	return active
}
