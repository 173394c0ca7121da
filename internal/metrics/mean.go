package metrics

import (
	"github.com/nkotak/gridflow/internal/grid"
)

// MeanValue reports the area-weighted mean field value over core nodes
// at the last observation.
type MeanValue struct {
	g    *grid.Raster
	mean float64
}

func NewMeanValue(g *grid.Raster) *MeanValue {
	return &MeanValue{g: g}
}

func (m *MeanValue) Name() string { return "mean_value" }

func (m *MeanValue) Observe(z []float64, t float64) {
	total, area := 0.0, 0.0
	for _, n := range m.g.CoreNodes() {
		a := m.g.CellAreaAtNode(n)
		total += z[n] * a
		area += a
	}
	if area > 0 {
		m.mean = total / area
	}
}

func (m *MeanValue) Value() float64 { return m.mean }

func (m *MeanValue) Reset() { m.mean = 0 }
