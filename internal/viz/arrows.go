package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/nkotak/gridflow/internal/grid"
)

// Arrows renders a link field as a lattice of nodes and direction
// glyphs, top row first. East links draw between nodes on a row; north
// links draw on the rows between. Arrowheads follow the sign of the
// value: positive values point east or north.
func Arrows(g *grid.Raster, linkVals []float64) string {
	if len(linkVals) != g.LinkCount() {
		return fmt.Sprintf("arrows: want %d values, got %d", g.LinkCount(), len(linkVals))
	}

	_, max := 0.0, 0.0
	for _, v := range linkVals {
		if a := math.Abs(v); a > max {
			max = a
		}
	}
	threshold := max * 1e-9

	var b strings.Builder
	for row := g.Rows() - 1; row >= 0; row-- {
		// Node row with east links.
		for col := 0; col < g.Cols(); col++ {
			b.WriteRune('o')
			if col < g.Cols()-1 {
				b.WriteString(eastGlyph(eastLinkValue(g, row, col, linkVals), threshold))
			}
		}
		b.WriteByte('\n')

		// North links down to the row below (drawn beneath this row).
		if row > 0 {
			for col := 0; col < g.Cols(); col++ {
				b.WriteString(northGlyph(northLinkValue(g, row-1, col, linkVals), threshold))
				if col < g.Cols()-1 {
					b.WriteString("   ")
				}
			}
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func eastLinkValue(g *grid.Raster, row, col int, linkVals []float64) float64 {
	links, dirs := g.LinksAtNode(g.NodeAt(row, col))
	for i, l := range links {
		if dirs[i] == -1 && g.LinkDirection(l) == grid.East {
			return linkVals[l]
		}
	}
	return 0
}

func northLinkValue(g *grid.Raster, row, col int, linkVals []float64) float64 {
	links, dirs := g.LinksAtNode(g.NodeAt(row, col))
	for i, l := range links {
		if dirs[i] == -1 && g.LinkDirection(l) == grid.North {
			return linkVals[l]
		}
	}
	return 0
}

func eastGlyph(v, threshold float64) string {
	switch {
	case v > threshold:
		return "-->"
	case v < -threshold:
		return "<--"
	default:
		return "---"
	}
}

func northGlyph(v, threshold float64) string {
	switch {
	case v > threshold:
		return "^"
	case v < -threshold:
		return "v"
	default:
		return "|"
	}
}
