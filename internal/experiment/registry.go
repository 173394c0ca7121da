package experiment

import (
	"fmt"

	"github.com/nkotak/gridflow/internal/grid"
	"github.com/nkotak/gridflow/internal/integrators"
	"github.com/nkotak/gridflow/internal/metrics"
	"github.com/nkotak/gridflow/internal/models"
	"github.com/nkotak/gridflow/internal/sim"
)

// Registry maps names to process and stepper constructors.
type Registry struct {
	processes map[string]func(params map[string]float64) sim.Process
	steppers  map[string]func() sim.Stepper
}

func NewRegistry() *Registry {
	r := &Registry{
		processes: make(map[string]func(map[string]float64) sim.Process),
		steppers:  make(map[string]func() sim.Stepper),
	}

	r.processes["diffusion"] = func(params map[string]float64) sim.Process {
		p := models.NewDiffusion(paramOr(params, "D", 0.01))
		p.Uplift = params["uplift"]
		return p
	}
	r.processes["heat"] = func(params map[string]float64) sim.Process {
		return models.NewHeat(paramOr(params, "kappa", 1.0))
	}
	r.processes["nonlinear"] = func(params map[string]float64) sim.Process {
		return models.NewNonlinear(paramOr(params, "D", 0.01), paramOr(params, "Sc", 0.7))
	}

	r.steppers["euler"] = func() sim.Stepper { return integrators.NewEuler() }
	r.steppers["heun"] = func() sim.Stepper { return integrators.NewHeun() }

	return r
}

func paramOr(params map[string]float64, name string, fallback float64) float64 {
	if v, ok := params[name]; ok {
		return v
	}
	return fallback
}

func (r *Registry) GetProcess(name string, params map[string]float64) (sim.Process, error) {
	fn, ok := r.processes[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", name)
	}
	return fn(params), nil
}

func (r *Registry) GetStepper(name string) (sim.Stepper, error) {
	fn, ok := r.steppers[name]
	if !ok {
		return nil, fmt.Errorf("unknown stepper: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListProcesses() []string {
	names := make([]string, 0, len(r.processes))
	for name := range r.processes {
		names = append(names, name)
	}
	return names
}

// DefaultMetrics returns the metric set attached to every run.
func (r *Registry) DefaultMetrics(g *grid.Raster) []sim.Metric {
	return []sim.Metric{
		metrics.NewTotalMass(g),
		metrics.NewRelief(g),
		metrics.NewMeanValue(g),
	}
}
