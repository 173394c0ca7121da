package analysis

import (
	"math"
	"testing"

	"github.com/nkotak/gridflow/internal/grid"
)

func TestFFTConstantSignal(t *testing.T) {
	data := []float64{2, 2, 2, 2, 2, 2, 2, 2}
	fft := FFT(data)

	// All energy in the DC bin.
	if math.Abs(real(fft[0])-16) > 1e-9 {
		t.Errorf("expected DC component 16, got %v", fft[0])
	}
	for k := 1; k < len(fft); k++ {
		if math.Hypot(real(fft[k]), imag(fft[k])) > 1e-9 {
			t.Errorf("bin %d not zero: %v", k, fft[k])
		}
	}
}

func TestFFTSingleFrequency(t *testing.T) {
	n := 16
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Cos(2 * math.Pi * 3 * float64(i) / float64(n))
	}

	ps := PowerSpectrum(data)
	peak := 0
	for k := range ps {
		if ps[k] > ps[peak] {
			peak = k
		}
	}
	if peak != 3 {
		t.Errorf("expected spectral peak at bin 3, got %d", peak)
	}
}

func TestPowerSpectrumPadsToPowerOfTwo(t *testing.T) {
	// 10 samples pad to 16, so the spectrum has 8 bins.
	ps := PowerSpectrum(make([]float64, 10))
	if len(ps) != 8 {
		t.Errorf("expected 8 bins, got %d", len(ps))
	}
}

func TestProfileRow(t *testing.T) {
	g, _ := grid.NewRaster(4, 5, grid.Spacing(1, 1))
	vals := make([]float64, g.NodeCount())
	for n := range vals {
		vals[n] = float64(n)
	}

	profile, err := ProfileRow(g, vals, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(profile) != 5 {
		t.Fatalf("expected 5 values, got %d", len(profile))
	}
	// Row 2 starts at node 10.
	for col, v := range profile {
		if v != float64(10+col) {
			t.Errorf("col %d: expected %d, got %f", col, 10+col, v)
		}
	}

	if _, err := ProfileRow(g, vals, 4); err == nil {
		t.Error("expected error for out-of-range row")
	}
	if _, err := ProfileRow(g, vals[:3], 0); err == nil {
		t.Error("expected error for short values")
	}
}

func TestProfileCol(t *testing.T) {
	g, _ := grid.NewRaster(4, 5, grid.Spacing(1, 1))
	vals := make([]float64, g.NodeCount())
	for n := range vals {
		vals[n] = float64(n)
	}

	profile, err := ProfileCol(g, vals, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(profile) != 4 {
		t.Fatalf("expected 4 values, got %d", len(profile))
	}
	// Column 3 is nodes 3, 8, 13, 18.
	for row, v := range profile {
		if v != float64(3+5*row) {
			t.Errorf("row %d: expected %d, got %f", row, 3+5*row, v)
		}
	}

	if _, err := ProfileCol(g, vals, -1); err == nil {
		t.Error("expected error for negative column")
	}
}

func TestSteadyState(t *testing.T) {
	snapshots := [][]float64{
		{0, 10, 0},
		{0, 5, 0},  // max rate 5
		{0, 4, 0},  // max rate 1
		{0, 3.95, 0}, // max rate 0.05
	}
	times := []float64{0, 1, 2, 3}

	if got := SteadyState(snapshots, times, 0.1); got != 3 {
		t.Errorf("expected steady at snapshot 3, got %d", got)
	}
	if got := SteadyState(snapshots, times, 2.0); got != 2 {
		t.Errorf("expected steady at snapshot 2, got %d", got)
	}
	if got := SteadyState(snapshots, times, 0.001); got != -1 {
		t.Errorf("expected never steady, got %d", got)
	}
	if got := SteadyState(nil, nil, 1.0); got != -1 {
		t.Errorf("expected -1 for empty history, got %d", got)
	}
}
