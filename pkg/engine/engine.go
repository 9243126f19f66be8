// Package engine provides the Lisp front end for describing generation
// specs. It wraps zygomys in a sandboxed environment and evaluates user
// source into validated specs ready for program assembly.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/Hutch-Bros/gcode-sample-generator/pkg/spec"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error, a bad option value, or an invalid spec.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Engine wraps the zygomys interpreter. It is safe for concurrent use;
// each call to Evaluate creates a fresh sandboxed environment for
// determinism.
type Engine struct {
	mu         sync.Mutex
	generation uint64
}

// NewEngine creates a new Engine instance.
func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate takes Lisp source code and produces the specs it declares, in
// declaration order. Each call creates a fresh zygomys sandbox.
//
// Return semantics:
//   - On success: specs + nil errors + nil error
//   - On parse/eval/validation failure: nil + eval errors + nil error
//   - On fatal failure (timeout, panic): nil + nil + error
func (e *Engine) Evaluate(source string) ([]*spec.Spec, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		specs, evalErrs, err := e.evaluate(source)
		ch <- evalResult{specs: specs, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation)
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) ([]*spec.Spec, []EvalError, error) {
	// Empty source is a valid program that declares no specs.
	if strings.TrimSpace(source) == "" {
		return nil, nil, nil
	}

	// Sandbox mode prevents user code from accessing the filesystem or
	// syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	b := &batch{}
	registerBuiltins(env, b)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err), nil
	}

	// Declared specs are validated before they are handed back; a spec
	// that fails validation surfaces as an eval error, not a result.
	var evalErrs []EvalError
	for i, s := range b.specs {
		if err := s.Validate(); err != nil {
			evalErrs = append(evalErrs, EvalError{
				Message: fmt.Sprintf("spec %d: %v", i+1, err),
			})
		}
	}
	if len(evalErrs) > 0 {
		return nil, evalErrs, nil
	}
	return b.specs, nil, nil
}

// batch collects the specs declared during one evaluation.
type batch struct {
	specs []*spec.Spec
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError
// values, extracting line numbers where the message carries them.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	if m := linePattern.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}
	if m := linePatternShort.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
