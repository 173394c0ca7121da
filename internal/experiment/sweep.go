package experiment

import (
	"context"
	"fmt"
	"sync"
)

// Sweep runs one experiment per value of a single parameter, keeping
// everything else in the base config fixed. Runs execute in parallel;
// each gets its own grid and process.
type Sweep struct {
	Base      Config
	ParamName string
	Values    []float64
}

// SweepPoint is the outcome of one run in a sweep.
type SweepPoint struct {
	ParamValue float64
	Metrics    map[string]float64
	Steps      int
	Err        error
}

// Run executes every point of the sweep. Individual run failures land
// in the point's Err field rather than aborting the whole sweep.
func (s *Sweep) Run(ctx context.Context, registry *Registry) ([]SweepPoint, error) {
	if len(s.Values) == 0 {
		return nil, fmt.Errorf("sweep: no values for %s", s.ParamName)
	}

	points := make([]SweepPoint, len(s.Values))

	var wg sync.WaitGroup
	for i, val := range s.Values {
		wg.Add(1)
		go func(idx int, v float64) {
			defer wg.Done()

			cfg := s.Base
			cfg.Params = make(map[string]float64, len(s.Base.Params)+1)
			for k, pv := range s.Base.Params {
				cfg.Params[k] = pv
			}
			cfg.Params[s.ParamName] = v

			points[idx] = SweepPoint{ParamValue: v}

			e := New(cfg)
			if err := e.Setup(registry); err != nil {
				points[idx].Err = err
				return
			}
			result, err := e.Run(ctx)
			if err != nil {
				points[idx].Err = err
				return
			}
			points[idx].Metrics = result.Metrics
			points[idx].Steps = result.StepsTaken
		}(i, val)
	}
	wg.Wait()

	return points, nil
}

// Range builds n evenly spaced values from lo to hi inclusive.
func Range(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}
	step := (hi - lo) / float64(n-1)
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = lo + float64(i)*step
	}
	return vals
}

// Best returns the sweep point minimizing the named metric, skipping
// failed runs. The second return is false when every run failed or the
// metric is absent.
func Best(points []SweepPoint, metricName string) (SweepPoint, bool) {
	found := false
	var best SweepPoint
	for _, p := range points {
		if p.Err != nil {
			continue
		}
		v, ok := p.Metrics[metricName]
		if !ok {
			continue
		}
		if !found || v < best.Metrics[metricName] {
			best = p
			found = true
		}
	}
	return best, found
}
