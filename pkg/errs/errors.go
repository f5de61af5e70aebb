// Package errs defines the error taxonomy shared by the compiler, the VM,
// and the CLI that drives them.
package errs

import "fmt"

// Error is a pijama error: every error the tool can report also knows the
// process exit status it should cause.
type Error interface {
	error
	ExitCode() int
}

//
// CompileBug
//

// CompileBug represents a violated compile-time invariant: an unresolved
// Var, a type variable reaching Print, a PrimFn arity mismatch. Per
// spec.md §7, these are never expected to happen given a well-formed,
// well-typed IR — they indicate a bug in an earlier (out-of-scope) stage,
// not a user-facing error.
type CompileBug struct {
	Message string
}

// NewCompileBug is a handy way to create a CompileBug.
func NewCompileBug(format string, a ...any) *CompileBug {
	return &CompileBug{Message: fmt.Sprintf(format, a...)}
}

func (e *CompileBug) Error() string {
	return "compiler bug: " + e.Message
}

// ExitCode fulfills the Error interface.
func (e *CompileBug) ExitCode() int {
	return StatusCodeCompileBug
}

//
// Runtime
//

// Runtime represents a violated run-time invariant: arithmetic on a
// FuncPtr, calling a non-FuncPtr, stack underflow on a malformed chunk.
// Like CompileBug, this is never expected given well-typed input.
type Runtime struct {
	Message string
}

// NewRuntime is a handy way to create a Runtime error.
func NewRuntime(format string, a ...any) *Runtime {
	return &Runtime{Message: fmt.Sprintf(format, a...)}
}

func (e *Runtime) Error() string {
	return "runtime error: " + e.Message
}

// ExitCode fulfills the Error interface.
func (e *Runtime) ExitCode() int {
	return StatusCodeRuntime
}

//
// ToolError
//

// ToolError is an error that happened running the pijama tool itself and
// doesn't fit any of the other categories: a file that couldn't be opened,
// a TOML document that couldn't be decoded.
type ToolError struct {
	Message string
}

// NewToolError is a handy way to create a ToolError.
func NewToolError(format string, a ...any) *ToolError {
	return &ToolError{Message: fmt.Sprintf(format, a...)}
}

func (e *ToolError) Error() string {
	return e.Message
}

// ExitCode fulfills the Error interface.
func (e *ToolError) ExitCode() int {
	return StatusCodeToolError
}

//
// BadUsage
//

// BadUsage is an error caused by the pijama tool being invoked incorrectly.
type BadUsage struct {
	Message string
}

// NewBadUsage is a handy way to create a BadUsage.
func NewBadUsage(format string, a ...any) *BadUsage {
	return &BadUsage{Message: fmt.Sprintf(format, a...)}
}

func (e *BadUsage) Error() string {
	return "usage error: " + e.Message
}

// ExitCode fulfills the Error interface.
func (e *BadUsage) ExitCode() int {
	return StatusCodeBadUsage
}
