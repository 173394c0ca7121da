package viz

import (
	"fmt"
	"strings"

	"github.com/nkotak/gridflow/internal/grid"
)

// svgRamp is the heat ramp used for SVG cells, cold to hot.
var svgRamp = []string{
	"#00005f", "#005f87", "#0087af", "#00afaf", "#d7af00", "#ff8700", "#ff0000",
}

// HeatmapSVG renders a node field as an SVG of colored cells, one rect
// per node, with the grid's south-west corner at the bottom left.
func HeatmapSVG(g *grid.Raster, vals []float64, cellPx int) (string, error) {
	if len(vals) != g.NodeCount() {
		return "", fmt.Errorf("svg: want %d values, got %d", g.NodeCount(), len(vals))
	}
	if cellPx < 1 {
		cellPx = 10
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

	width := g.Cols() * cellPx
	height := g.Rows() * cellPx

	var b strings.Builder
	b.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for row := 0; row < g.Rows(); row++ {
		// SVG y grows downward, the grid's row index grows upward.
		y := (g.Rows() - 1 - row) * cellPx
		for col := 0; col < g.Cols(); col++ {
			norm := (vals[g.NodeAt(row, col)] - min) / rng
			ci := int(norm * float64(len(svgRamp)-1))
			if ci >= len(svgRamp) {
				ci = len(svgRamp) - 1
			}
			b.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>
`, col*cellPx, y, cellPx, cellPx, svgRamp[ci]))
		}
	}

	b.WriteString(fmt.Sprintf(`<text x="4" y="%d" font-family="monospace" font-size="10" fill="#cccccc">min %.4g  max %.4g</text>
`, height-4, min, max))
	b.WriteString("</svg>\n")
	return b.String(), nil
}

// ProfileSVG renders a 1D profile as an SVG polyline, scaled to fit
// with a small margin.
func ProfileSVG(vals []float64, width, height int, strokeColor string) string {
	if len(vals) < 2 {
		return ""
	}
	if strokeColor == "" {
		strokeColor = "#00ff00"
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
	min -= rng * 0.1
	max += rng * 0.1
	rng = max - min

	var b strings.Builder
	b.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, v := range vals {
		x := float64(i) / float64(len(vals)-1) * float64(width)
		y := float64(height) - (v-min)/rng*float64(height)
		if i == 0 {
			b.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			b.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	b.WriteString("\"/>\n</svg>\n")
	return b.String()
}
