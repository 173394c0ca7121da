package analysis

import (
	"fmt"

	"github.com/nkotak/gridflow/internal/grid"
)

// ProfileRow extracts node values along one grid row, west to east.
func ProfileRow(g *grid.Raster, vals []float64, row int) ([]float64, error) {
	if len(vals) != g.NodeCount() {
		return nil, fmt.Errorf("profile: want %d values, got %d", g.NodeCount(), len(vals))
	}
	if row < 0 || row >= g.Rows() {
		return nil, fmt.Errorf("profile: row %d out of range [0,%d)", row, g.Rows())
	}

	out := make([]float64, g.Cols())
	for col := 0; col < g.Cols(); col++ {
		out[col] = vals[g.NodeAt(row, col)]
	}
	return out, nil
}

// ProfileCol extracts node values along one grid column, south to north.
func ProfileCol(g *grid.Raster, vals []float64, col int) ([]float64, error) {
	if len(vals) != g.NodeCount() {
		return nil, fmt.Errorf("profile: want %d values, got %d", g.NodeCount(), len(vals))
	}
	if col < 0 || col >= g.Cols() {
		return nil, fmt.Errorf("profile: col %d out of range [0,%d)", col, g.Cols())
	}

	out := make([]float64, g.Rows())
	for row := 0; row < g.Rows(); row++ {
		out[row] = vals[g.NodeAt(row, col)]
	}
	return out, nil
}
