package tutorial

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunAllPrintsEveryStep(t *testing.T) {
	var buf bytes.Buffer
	if err := RunAll(&buf, DefaultOptions()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()

	for _, step := range Steps() {
		if !strings.Contains(out, step.Title) {
			t.Errorf("output missing step %q", step.Title)
		}
	}

	// The default 4x5 grid facts should appear in the prose.
	for _, want := range []string{"20 nodes", "31 links", "GradAtLink", "FluxDivAtNode"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRunStep(t *testing.T) {
	var buf bytes.Buffer
	if err := RunStep(&buf, 1, DefaultOptions()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "step 1") {
		t.Errorf("missing step header:\n%s", out)
	}
	if !strings.Contains(out, "tail -> head") {
		t.Errorf("step 1 should list links:\n%s", out)
	}
}

func TestRunStepOutOfRange(t *testing.T) {
	var buf bytes.Buffer
	if err := RunStep(&buf, 0, DefaultOptions()); err == nil {
		t.Error("expected error for step 0")
	}
	if err := RunStep(&buf, len(Steps())+1, DefaultOptions()); err == nil {
		t.Error("expected error past the last step")
	}
}

func TestRunAllRejectsTinyGrid(t *testing.T) {
	opts := DefaultOptions()
	opts.Rows = 2
	var buf bytes.Buffer
	if err := RunAll(&buf, opts); err == nil {
		t.Error("expected error for a grid too small to have core nodes")
	}
}

func TestDivergenceSignsMatchMound(t *testing.T) {
	// With the mound centered on the demo grid, the divergence table in
	// step 4 must show at least one positive core value (the mound
	// sheds material under a diffusive flux).
	var buf bytes.Buffer
	if err := RunStep(&buf, 4, DefaultOptions()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "core nodes only") {
		t.Fatalf("step 4 should list core divergence:\n%s", out)
	}
	if !strings.Contains(out, "+0.") {
		t.Errorf("expected a positive core divergence in:\n%s", out)
	}
}
