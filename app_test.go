package main

import (
	"os"
	"strings"
	"testing"
)

// TestE2EShapesExample exercises the full pipeline: Lisp source → engine →
// planner → emitter → serialized text. This is the same path the CLI takes,
// but without the process wrapper.
func TestE2EShapesExample(t *testing.T) {
	app := NewApp()

	source, err := os.ReadFile("examples/shapes.lisp")
	if err != nil {
		t.Fatalf("failed to read shapes.lisp: %v", err)
	}

	result := app.Evaluate(string(source))

	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error (line %d): %s", e.Line, e.Message)
		}
		t.FailNow()
	}

	if len(result.Programs) != 3 {
		t.Fatalf("expected 3 programs, got %d", len(result.Programs))
	}

	wantNames := []string{"plate", "bore", "scribe"}
	for i, p := range result.Programs {
		if p.Name != wantNames[i] {
			t.Errorf("program %d name = %q, want %q", i, p.Name, wantNames[i])
		}
		if !strings.HasSuffix(p.Text, "M2\n") {
			t.Errorf("program %q does not end with program stop:\n%s", p.Name, p.Text)
		}
	}

	// plate: millimeter program tracing the rectangle.
	plate := result.Programs[0].Text
	if !strings.HasPrefix(plate, "G21\nG90\n") {
		t.Errorf("plate prologue wrong:\n%s", plate)
	}
	if !strings.Contains(plate, "G0 X0 Y0\n") {
		t.Errorf("plate missing initial rapid:\n%s", plate)
	}

	// bore: the full circle stays a single arc instruction.
	bore := result.Programs[1].Text
	if n := strings.Count(bore, "\nG3 "); n != 1 {
		t.Errorf("bore arc count = %d, want 1:\n%s", n, bore)
	}

	// scribe: inch program with three layers of Z words.
	scribe := result.Programs[2].Text
	if !strings.HasPrefix(scribe, "G20\n") {
		t.Errorf("scribe prologue wrong:\n%s", scribe)
	}
	for _, z := range []string{"Z0", "Z0.1", "Z0.2"} {
		if !strings.Contains(scribe, z) {
			t.Errorf("scribe missing %s word:\n%s", z, scribe)
		}
	}
}

// TestE2EDeterministic runs the same source twice and expects byte-identical
// program text.
func TestE2EDeterministic(t *testing.T) {
	app := NewApp()
	source := `(spec :feed-rate 100
                     (rect :width 10 :height 5)
                     (jitter :seed 7 :magnitude 0.05))`

	a := app.Evaluate(source)
	b := app.Evaluate(source)
	if len(a.Errors) > 0 || len(b.Errors) > 0 {
		t.Fatalf("eval errors: %v / %v", a.Errors, b.Errors)
	}
	if len(a.Programs) != 1 || len(b.Programs) != 1 {
		t.Fatalf("program counts = %d, %d, want 1, 1", len(a.Programs), len(b.Programs))
	}
	if a.Programs[0].Text != b.Programs[0].Text {
		t.Errorf("same source produced different text:\n%q\n%q",
			a.Programs[0].Text, b.Programs[0].Text)
	}
}
