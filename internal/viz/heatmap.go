package viz

import (
	"fmt"
	"strings"

	"github.com/nkotak/gridflow/internal/grid"
)

var rampGlyphs = []rune{' ', '░', '▒', '▓', '█'}

// Heatmap renders a node field as an ascii grid, one glyph pair per
// node, top row first. Color tracks the normalized value when the
// terminal supports it.
func Heatmap(g *grid.Raster, vals []float64, colored bool) string {
	if len(vals) != g.NodeCount() {
		return fmt.Sprintf("heatmap: want %d values, got %d", g.NodeCount(), len(vals))
	}

	min, max := vals[0], vals[0]
	for _, v := range vals {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	rng := max - min
	if rng == 0 {
		rng = 1
	}

	var b strings.Builder
	for row := g.Rows() - 1; row >= 0; row-- {
		for col := 0; col < g.Cols(); col++ {
			v := vals[g.NodeAt(row, col)]
			norm := (v - min) / rng

			gi := int(norm * float64(len(rampGlyphs)-1))
			if gi >= len(rampGlyphs) {
				gi = len(rampGlyphs) - 1
			}
			cell := strings.Repeat(string(rampGlyphs[gi]), 2)

			if colored {
				si := int(norm * float64(len(rampStyles)-1))
				if si >= len(rampStyles) {
					si = len(rampStyles) - 1
				}
				cell = rampStyles[si].Render(cell)
			}
			b.WriteString(cell)
		}
		b.WriteByte('\n')
	}

	b.WriteString(fmt.Sprintf("min %.4g  max %.4g\n", min, max))
	return b.String()
}

// NodeTable renders node values as a row-by-row numeric table, top row
// first, matching the heatmap orientation.
func NodeTable(g *grid.Raster, vals []float64) string {
	if len(vals) != g.NodeCount() {
		return fmt.Sprintf("table: want %d values, got %d", g.NodeCount(), len(vals))
	}

	var b strings.Builder
	for row := g.Rows() - 1; row >= 0; row-- {
		for col := 0; col < g.Cols(); col++ {
			b.WriteString(fmt.Sprintf("%8.3f", vals[g.NodeAt(row, col)]))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
