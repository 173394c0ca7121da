package viz

import (
	"github.com/guptarohit/asciigraph"
)

// Section plots a 1D profile with a caption.
func Section(vals []float64, caption string) string {
	if len(vals) == 0 {
		return "no data"
	}
	return asciigraph.Plot(vals,
		asciigraph.Height(10),
		asciigraph.Width(70),
		asciigraph.Caption(caption),
	)
}

// SeriesPlot plots a time series with a caption at a taller aspect.
func SeriesPlot(vals []float64, caption string) string {
	if len(vals) == 0 {
		return "no data"
	}
	return asciigraph.Plot(vals,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
}
