// Package program assembles complete G-code programs from generation
// specs: it validates the spec, drives the planner and emitter across the
// shape list, enforces whole-program invariants, and serializes the
// result.
package program

import (
	"fmt"

	"github.com/Hutch-Bros/gcode-sample-generator/pkg/gcode"
	"github.com/Hutch-Bros/gcode-sample-generator/pkg/plan"
	"github.com/Hutch-Bros/gcode-sample-generator/pkg/spec"
)

// TooLargeError reports that a program exceeded the configured instruction
// ceiling. The program is never truncated; no output text is produced.
type TooLargeError struct {
	Limit int
	Count int
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("program too large: %d instructions exceeds limit of %d", e.Count, e.Limit)
}

// Generate produces the program text for one spec. The result is
// deterministic: the same spec (including its jitter seed) always yields
// byte-identical output. On error no partial text is returned.
func Generate(s *spec.Spec) (string, error) {
	n := s.Normalized()
	ins, err := assemble(n)
	if err != nil {
		return "", err
	}
	return gcode.Serialize(ins, n.Precision), nil
}

// Instructions runs the same pipeline as Generate but stops before
// serialization, for callers that embed the engine and want the records.
func Instructions(s *spec.Spec) ([]gcode.Instruction, error) {
	return assemble(s.Normalized())
}

func assemble(s *spec.Spec) ([]gcode.Instruction, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	groups, err := plan.NewPlanner(s).Plan()
	if err != nil {
		return nil, err
	}

	em := gcode.NewEmitter(s)
	em.Begin(s.Spindle)
	for _, g := range groups {
		em.Comment(g.Desc)
		for _, st := range g.Steps {
			em.Move(st)
		}
	}
	em.End()

	ins := em.Instructions()
	if s.MaxInstructions > 0 && len(ins) > s.MaxInstructions {
		return nil, &TooLargeError{Limit: s.MaxInstructions, Count: len(ins)}
	}
	return ins, nil
}
