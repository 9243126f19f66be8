package main

import (
	"log"

	"github.com/Hutch-Bros/gcode-sample-generator/pkg/engine"
	"github.com/Hutch-Bros/gcode-sample-generator/pkg/program"
	"github.com/Hutch-Bros/gcode-sample-generator/pkg/spec"
)

// App wires the Lisp engine to the program pipeline. It is the single
// entry point the CLI drives; one App can evaluate many sources.
type App struct {
	engine *engine.Engine
}

// ProgramData is one generated program, named after its spec's first
// shape when the source gave no better label.
type ProgramData struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// EvalErrorData is a serializable evaluation error.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result of evaluating one source.
type EvalResult struct {
	Programs []ProgramData   `json:"programs"`
	Errors   []EvalErrorData `json:"errors"`
}

// NewApp creates a new App with a fresh engine.
func NewApp() *App {
	return &App{engine: engine.NewEngine()}
}

// Evaluate takes Lisp source and returns the generated programs plus any
// errors. Generation stops at the first stage that fails; a source that
// produced errors yields no program text.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Programs: []ProgramData{},
		Errors:   []EvalErrorData{},
	}

	specs, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("Evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	for i, s := range specs {
		text, err := program.Generate(s)
		if err != nil {
			log.Printf("Generate error for spec %d: %v", i+1, err)
			result.Errors = append(result.Errors, EvalErrorData{
				Message: "generation failed: " + err.Error(),
			})
			return result
		}
		result.Programs = append(result.Programs, ProgramData{
			Name: programName(s),
			Text: text,
		})
	}
	return result
}

// programName labels a program after its first shape, falling back to a
// generic name for sources that declared none.
func programName(s *spec.Spec) string {
	if len(s.Shapes) > 0 {
		if n := s.Shapes[0].Name; n != "" {
			return n
		}
		return s.Shapes[0].Label()
	}
	return "program"
}
