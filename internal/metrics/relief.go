package metrics

import (
	"github.com/nkotak/gridflow/internal/grid"
)

// Relief reports the max minus min field value over core nodes at the
// last observation.
type Relief struct {
	g      *grid.Raster
	relief float64
}

func NewRelief(g *grid.Raster) *Relief {
	return &Relief{g: g}
}

func (m *Relief) Name() string { return "relief" }

func (m *Relief) Observe(z []float64, t float64) {
	core := m.g.CoreNodes()
	if len(core) == 0 {
		m.relief = 0
		return
	}
	min, max := z[core[0]], z[core[0]]
	for _, n := range core[1:] {
		if z[n] < min {
			min = z[n]
		}
		if z[n] > max {
			max = z[n]
		}
	}
	m.relief = max - min
}

func (m *Relief) Value() float64 { return m.relief }

func (m *Relief) Reset() { m.relief = 0 }
