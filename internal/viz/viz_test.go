package viz

import (
	"strings"
	"testing"

	"github.com/nkotak/gridflow/internal/grid"
)

func TestHeatmapShape(t *testing.T) {
	g, _ := grid.NewRaster(4, 5, grid.Spacing(1, 1))
	vals := make([]float64, g.NodeCount())
	for n := range vals {
		vals[n] = float64(n)
	}

	out := Heatmap(g, vals, false)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	// One line per row plus the min/max footer.
	if len(lines) != g.Rows()+1 {
		t.Fatalf("expected %d lines, got %d", g.Rows()+1, len(lines))
	}
	for i := 0; i < g.Rows(); i++ {
		if n := len([]rune(lines[i])); n != 2*g.Cols() {
			t.Errorf("line %d: expected %d glyphs, got %d", i, 2*g.Cols(), n)
		}
	}
	if !strings.Contains(lines[len(lines)-1], "min") {
		t.Errorf("footer missing min/max: %q", lines[len(lines)-1])
	}

	// Top line holds the highest values (the last node row), so it
	// should be solid blocks; bottom node line is blanks.
	if !strings.Contains(lines[0], "█") {
		t.Errorf("top row should be darkest: %q", lines[0])
	}
	if strings.ContainsAny(lines[g.Rows()-1], "▒▓█") {
		t.Errorf("bottom row should be lightest: %q", lines[g.Rows()-1])
	}
}

func TestHeatmapConstantField(t *testing.T) {
	g, _ := grid.NewRaster(3, 3)
	vals := []float64{5, 5, 5, 5, 5, 5, 5, 5, 5}
	out := Heatmap(g, vals, false)
	if out == "" {
		t.Fatal("empty output")
	}
	if strings.Contains(out, "█") {
		t.Error("flat field should render at the low end of the ramp")
	}
}

func TestHeatmapLengthMismatch(t *testing.T) {
	g, _ := grid.NewRaster(3, 3)
	out := Heatmap(g, []float64{1, 2}, false)
	if !strings.Contains(out, "want 9") {
		t.Errorf("expected length complaint, got %q", out)
	}
}

func TestNodeTableOrientation(t *testing.T) {
	g, _ := grid.NewRaster(3, 3, grid.Spacing(1, 1))
	vals := make([]float64, g.NodeCount())
	for n := range vals {
		vals[n] = float64(n)
	}

	out := NodeTable(g, vals)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	// Top line is the top node row: nodes 6, 7, 8.
	if !strings.Contains(lines[0], "6.000") || !strings.Contains(lines[0], "8.000") {
		t.Errorf("top line should hold the top row: %q", lines[0])
	}
	if !strings.Contains(lines[2], "0.000") {
		t.Errorf("bottom line should hold node 0: %q", lines[2])
	}
}

func TestArrowsFollowSign(t *testing.T) {
	g, _ := grid.NewRaster(3, 3, grid.Spacing(1, 1))

	// Positive on every link: everything points east or north.
	q := make([]float64, g.LinkCount())
	for l := range q {
		q[l] = 1.0
	}
	out := Arrows(g, q)
	if !strings.Contains(out, "-->") || !strings.Contains(out, "^") {
		t.Errorf("positive flux should draw east/north arrows:\n%s", out)
	}
	if strings.Contains(out, "<--") || strings.Contains(out, "v") {
		t.Errorf("positive flux drew west/south arrows:\n%s", out)
	}

	// Negative on every link.
	for l := range q {
		q[l] = -1.0
	}
	out = Arrows(g, q)
	if !strings.Contains(out, "<--") || !strings.Contains(out, "v") {
		t.Errorf("negative flux should draw west/south arrows:\n%s", out)
	}

	// Zero draws neutral glyphs.
	for l := range q {
		q[l] = 0
	}
	out = Arrows(g, q)
	if !strings.Contains(out, "---") || !strings.Contains(out, "|") {
		t.Errorf("zero flux should draw neutral glyphs:\n%s", out)
	}
}

func TestArrowsLatticeShape(t *testing.T) {
	g, _ := grid.NewRaster(4, 5, grid.Spacing(1, 1))
	out := Arrows(g, make([]float64, g.LinkCount()))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	// Node rows interleaved with link rows: rows + (rows-1).
	if len(lines) != 2*g.Rows()-1 {
		t.Fatalf("expected %d lines, got %d", 2*g.Rows()-1, len(lines))
	}
	if strings.Count(lines[0], "o") != g.Cols() {
		t.Errorf("expected %d nodes on top line: %q", g.Cols(), lines[0])
	}
}

func TestSection(t *testing.T) {
	out := Section([]float64{0, 1, 4, 9, 4, 1, 0}, "profile")
	if !strings.Contains(out, "profile") {
		t.Errorf("caption missing:\n%s", out)
	}
	if Section(nil, "x") != "no data" {
		t.Error("empty input should report no data")
	}
}

func TestSparkline(t *testing.T) {
	out := Sparkline([]float64{0, 1, 2, 3, 4, 5, 6, 7}, 8)
	if len([]rune(out)) != 8 {
		t.Errorf("expected 8 glyphs, got %d: %q", len([]rune(out)), out)
	}
	runes := []rune(out)
	if runes[0] != '▁' || runes[7] != '█' {
		t.Errorf("expected ramp from low to high: %q", out)
	}

	if Sparkline(nil, 10) != "" {
		t.Error("empty input should produce empty output")
	}
	if Sparkline([]float64{1, 2}, 0) != "" {
		t.Error("zero width should produce empty output")
	}
}
