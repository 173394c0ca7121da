package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/nkotak/gridflow/internal/field"
	"github.com/nkotak/gridflow/internal/grid"
)

// Simulator advances a node field under a flux process on a fixed grid.
type Simulator struct {
	g         *grid.Raster
	proc      Process
	stepper   Stepper
	metrics   []Metric
	observers []Observer
}

// New builds a simulator for one process on one grid.
func New(g *grid.Raster, proc Process, stepper Stepper) *Simulator {
	return &Simulator{
		g:         g,
		proc:      proc,
		stepper:   stepper,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run evolves z0 for cfg.Duration and returns the saved snapshots.
// A canceled context returns the partial result together with ctx.Err().
func (s *Simulator) Run(ctx context.Context, z0 []float64, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	if len(z0) != s.g.NodeCount() {
		return nil, field.ErrLengthMismatch
	}

	saveEvery := cfg.SaveEvery
	if saveEvery < 1 {
		saveEvery = 1
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Snapshots: make([][]float64, 0, steps/saveEvery+2),
		Times:     make([]float64, 0, steps/saveEvery+2),
		Metrics:   make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	z := make([]float64, len(z0))
	copy(z, z0)
	t := 0.0

	result.Snapshots = append(result.Snapshots, snapshot(z))
	result.Times = append(result.Times, t)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			s.finish(result, z, t)
			return result, ctx.Err()
		default:
		}

		for _, m := range s.metrics {
			m.Observe(z, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(z, t)
		}

		newZ, err := s.stepper.Step(s.g, s.proc, z, t, cfg.Dt)
		if err != nil {
			s.finish(result, z, t)
			return result, &StepError{Step: i, Time: t, Wrapped: err}
		}

		if cfg.ValidateState && !field.IsValid(newZ) {
			s.finish(result, z, t)
			return result, &StepError{Step: i, Time: t, Wrapped: ErrUnstable}
		}

		z = newZ
		t += cfg.Dt
		result.StepsTaken++

		if (i+1)%saveEvery == 0 {
			result.Snapshots = append(result.Snapshots, snapshot(z))
			result.Times = append(result.Times, t)
		}
	}

	s.finish(result, z, t)
	return result, nil
}

// RunWithCallback steps the field until the callback returns false or
// the duration elapses, without retaining history. The live view uses
// this to drive rendering.
func (s *Simulator) RunWithCallback(ctx context.Context, z0 []float64, cfg Config, callback func(z []float64, t float64) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}

	z := make([]float64, len(z0))
	copy(z, z0)
	t := 0.0

	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !callback(z, t) {
			return nil
		}

		newZ, err := s.stepper.Step(s.g, s.proc, z, t, cfg.Dt)
		if err != nil {
			return err
		}
		if cfg.ValidateState && !field.IsValid(newZ) {
			return fmt.Errorf("%w at t=%.4f", ErrUnstable, t)
		}
		z = newZ
		t += cfg.Dt
	}

	return nil
}

func (s *Simulator) finish(result *Result, z []float64, t float64) {
	if len(result.Times) == 0 || result.Times[len(result.Times)-1] != t {
		result.Snapshots = append(result.Snapshots, snapshot(z))
		result.Times = append(result.Times, t)
	}
	for _, m := range s.metrics {
		m.Observe(z, t)
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrBadConfig, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrBadConfig, cfg.Duration)
	}
	return nil
}

func snapshot(z []float64) []float64 {
	c := make([]float64, len(z))
	copy(c, z)
	return c
}

// RateOfChange fills out with dz/dt at every node: the process source
// minus the flux divergence. Boundary nodes always get zero, so fixed
// values stay fixed. q and out are caller-provided scratch slices sized
// to the grid's links and nodes.
func RateOfChange(g *grid.Raster, p Process, z []float64, t float64, q, out []float64) error {
	if len(q) != g.LinkCount() || len(out) != g.NodeCount() {
		return field.ErrLengthMismatch
	}
	if err := p.Flux(g, z, q); err != nil {
		return err
	}

	if _, err := field.FluxDivAtNode(g, q, out); err != nil {
		return err
	}
	for n := range out {
		out[n] = -out[n]
	}

	if src, ok := p.(Sourcer); ok {
		srcVals := make([]float64, g.NodeCount())
		src.Source(g, t, srcVals)
		for _, n := range g.CoreNodes() {
			out[n] += srcVals[n]
		}
	}

	for n := range out {
		if g.Status(n) != grid.Core {
			out[n] = 0
		}
	}
	return nil
}

// StableDt returns the forward-Euler stability limit for an explicit
// diffusion update with diffusivity d.
func StableDt(g *grid.Raster, d float64) float64 {
	if d <= 0 {
		return math.Inf(1)
	}
	h := math.Min(g.Dx(), g.Dy())
	return 0.25 * h * h / d
}
