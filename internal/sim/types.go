package sim

import (
	"github.com/nkotak/gridflow/internal/grid"
)

// Process computes the link flux driven by a node field. Implementations
// must zero flux on inactive links (see field.ZeroInactive) so closed
// boundaries stay no-flow.
type Process interface {
	Name() string
	// Flux fills q (one entry per link) from the node values z.
	Flux(g *grid.Raster, z []float64, q []float64) error
}

// Sourcer is an optional Process extension adding a per-node source
// term (e.g. uplift) in field units per time.
type Sourcer interface {
	Source(g *grid.Raster, t float64, s []float64)
}

// Configurable exposes tunable process parameters for the live view.
type Configurable interface {
	Params() map[string]float64
	SetParam(name string, value float64) error
}

// Stepper advances a node field by one timestep under a process.
type Stepper interface {
	Step(g *grid.Raster, p Process, z []float64, t, dt float64) ([]float64, error)
}

// Metric accumulates a scalar summary over the course of a run.
type Metric interface {
	Name() string
	Observe(z []float64, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every step.
type Observer interface {
	OnStep(z []float64, t float64)
}

// Config controls a simulation run.
type Config struct {
	Dt            float64
	Duration      float64
	SaveEvery     int // snapshot every n steps; 1 saves all
	ValidateState bool
}

// DefaultConfig returns conservative run settings.
func DefaultConfig() Config {
	return Config{
		Dt:            0.1,
		Duration:      100.0,
		SaveEvery:     1,
		ValidateState: true,
	}
}

// Result holds the saved snapshots and summary metrics of a run.
type Result struct {
	Snapshots  [][]float64
	Times      []float64
	Metrics    map[string]float64
	StepsTaken int
}
