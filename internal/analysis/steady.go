package analysis

import (
	"math"
)

// SteadyState returns the index of the first snapshot where the maximum
// rate of change |Δz|/Δt from the previous snapshot falls under tol, or
// -1 if the run never settles.
func SteadyState(snapshots [][]float64, times []float64, tol float64) int {
	for i := 1; i < len(snapshots) && i < len(times); i++ {
		dt := times[i] - times[i-1]
		if dt <= 0 {
			continue
		}
		maxRate := 0.0
		for n := range snapshots[i] {
			rate := math.Abs(snapshots[i][n]-snapshots[i-1][n]) / dt
			if rate > maxRate {
				maxRate = rate
			}
		}
		if maxRate < tol {
			return i
		}
	}
	return -1
}
