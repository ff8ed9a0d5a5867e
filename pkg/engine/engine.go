// Package engine runs viewer command scripts. It wraps zygomys in a
// sandboxed environment whose builtins drive the viewer commands, so a
// sequence of edits can be replayed or scripted from the frontend.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/chazu/meshview/pkg/kernel"
	"github.com/chazu/meshview/pkg/viewer"
	zygo "github.com/glycerine/zygomys/zygo"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
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

// EvalWarning represents a non-fatal warning produced during evaluation,
// such as a degenerate face in a mesh built by the script.
type EvalWarning struct {
	Message string
}

// EvalResult bundles the output of an evaluation.
type EvalResult struct {
	State    *viewer.State // nil unless the script ran to completion
	Value    string        // printed value of the last expression
	Errors   []EvalError
	Warnings []EvalWarning
}

// Engine wraps the zygomys interpreter for viewer scripts.
// It is safe for concurrent use; each call to Evaluate creates a fresh
// sandboxed environment for determinism.
type Engine struct {
	mu         sync.Mutex
	generation uint64
	kernel     kernel.Kernel
}

// NewEngine creates an Engine that builds script solids with k.
func NewEngine(k kernel.Kernel) *Engine {
	return &Engine{kernel: k}
}

// Evaluate runs source against a snapshot of st. st itself is never
// touched; on success the caller swaps in result.State.
//
// Return semantics:
//   - On success: State set, no Errors, nil error
//   - On parse/eval failure: nil State, Errors set, nil error
//   - On fatal failure (timeout, panic, superseded): zero result + error
func (e *Engine) Evaluate(source string, st *viewer.State) (EvalResult, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	snapshot := st.Snapshot()
	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		res, err := e.evaluate(source, snapshot)
		ch <- evalResult{result: res, err: err}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation)
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string, st *viewer.State) (EvalResult, error) {
	// Empty source is a valid script that changes nothing.
	if strings.TrimSpace(source) == "" {
		return EvalResult{State: st}, nil
	}

	// Sandbox mode prevents scripts from accessing the filesystem or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	sc := &scriptContext{state: st, kernel: e.kernel}
	registerBuiltins(env, sc)

	err := env.LoadString(preprocessSource(source))
	if err != nil {
		return EvalResult{Errors: parseZygomysError(err)}, nil
	}

	v, err := env.Run()
	if err != nil {
		return EvalResult{Errors: parseZygomysError(err)}, nil
	}

	res := EvalResult{State: st, Warnings: sc.warnings}
	if v != nil {
		res.Value = v.SexpString(nil)
	}
	return res, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError values.
// It attempts to extract line number information from the error message.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	// zygomys formats parse errors as "Error on line N: <details>\n"
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
