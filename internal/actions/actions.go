// Package actions compiles spec action records into Go statements.
// The Compiler interface is the capability boundary between the
// module emitter and action semantics: the emitter hands over one
// case's ordered records and embeds whatever text comes back, so the
// verb grammar can evolve without touching emission.
package actions

import (
	"fmt"

	"specgen/internal/spec"
)

// Compiler turns one case's action sequence into the statements of a
// generated test method. Implementations must be deterministic for
// equal input, and failures must identify the originating case.
type Compiler interface {
	Compile(caseName string, seq []spec.ActionRecord) (string, error)
}

// CompileError reports an action sequence that could not be compiled.
// It is fatal for the whole build.
type CompileError struct {
	Case string
	Err  error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile actions for case %q: %v", e.Case, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }
