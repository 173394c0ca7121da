package experiment

import (
	"context"
	"fmt"

	"github.com/nkotak/gridflow/internal/grid"
	"github.com/nkotak/gridflow/internal/sim"
)

// Config describes one complete run: grid shape, process, stepper,
// initial condition, and timestepping.
type Config struct {
	Model     string
	Stepper   string
	Rows      int
	Cols      int
	Dx        float64
	Dy        float64
	Init      string
	Amplitude float64
	Dt        float64
	Duration  float64
	SaveEvery int
	Seed      int64
	Params    map[string]float64
	// Closed edges, in grid order: right, top, left, bottom.
	ClosedRight, ClosedTop, ClosedLeft, ClosedBottom bool
}

// Experiment wires a config into a grid, process, and simulator.
type Experiment struct {
	cfg       Config
	g         *grid.Raster
	proc      sim.Process
	simulator *sim.Simulator
	z0        []float64
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// Setup builds the grid, process, stepper, initial field, and metrics.
func (e *Experiment) Setup(registry *Registry) error {
	g, err := grid.NewRaster(e.cfg.Rows, e.cfg.Cols, grid.Spacing(e.cfg.Dx, e.cfg.Dy))
	if err != nil {
		return err
	}
	g.SetClosedBoundaries(e.cfg.ClosedRight, e.cfg.ClosedTop, e.cfg.ClosedLeft, e.cfg.ClosedBottom)
	e.g = g

	proc, err := registry.GetProcess(e.cfg.Model, e.cfg.Params)
	if err != nil {
		return err
	}
	e.proc = proc

	stepper, err := registry.GetStepper(e.cfg.Stepper)
	if err != nil {
		return err
	}

	z0, err := InitialField(g, e.cfg.Init, e.cfg.Amplitude, e.cfg.Seed)
	if err != nil {
		return err
	}
	e.z0 = z0

	e.simulator = sim.New(g, proc, stepper)
	for _, m := range registry.DefaultMetrics(g) {
		e.simulator.AddMetric(m)
	}
	return nil
}

// Run executes the configured simulation.
func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	simCfg := sim.Config{
		Dt:            e.cfg.Dt,
		Duration:      e.cfg.Duration,
		SaveEvery:     e.cfg.SaveEvery,
		ValidateState: true,
	}
	return e.simulator.Run(ctx, e.z0, simCfg)
}

// Grid returns the grid built during Setup.
func (e *Experiment) Grid() *grid.Raster { return e.g }

// Process returns the process built during Setup.
func (e *Experiment) Process() sim.Process { return e.proc }

// InitField returns the initial node values built during Setup.
func (e *Experiment) InitField() []float64 { return e.z0 }

// Simulator exposes the underlying simulator for adding observers.
func (e *Experiment) Simulator() *sim.Simulator { return e.simulator }
