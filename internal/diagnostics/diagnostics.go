// Package diagnostics defines comet's error taxonomy (spec §7) as a set of
// stable error codes and a DiagnosticError carrying a source position and a
// human-readable message naming the offending declaration.
package diagnostics

import (
	"fmt"

	"github.com/Thessal/comet/internal/ast"
)

// Code identifies one kind of error from the taxonomy in spec §7.
type Code string

const (
	// ErrS001: raised by the external parser; surfaced verbatim with the file name.
	ErrS001 Code = "S001" // ParseFailure
	ErrS002 Code = "S002" // DuplicateDeclaration(kind, name)
	ErrS003 Code = "S003" // ImportFailure(path, cause)
	ErrS004 Code = "S004" // UnknownReference(name)
	ErrS005 Code = "S005" // ArgumentMismatch(call-site, reason) — local to one candidate
	ErrS006 Code = "S006" // NoImplementation(name)
	ErrS007 Code = "S007" // RecursionLimitExceeded
	ErrS008 Code = "S008" // SubsumptionFailure — detail under NoImplementation
)

// DiagnosticError is the single error type every comet component returns.
// RunID is set on errors raised by a synthesis.Synthesizer and is shared by
// every Synthesize call made through that Synthesizer; errors from loading
// and resolving leave it empty. Error() does not include it.
type DiagnosticError struct {
	Code    Code
	Pos     ast.Position
	Message string
	RunID   string
}

func (e *DiagnosticError) Error() string {
	if e.Pos.File != "" {
		return fmt.Sprintf("%s:%d:%d: [%s] %s", e.Pos.File, e.Pos.Line, e.Pos.Col, e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// New constructs a DiagnosticError with a formatted message.
func New(code Code, pos ast.Position, format string, args ...any) *DiagnosticError {
	return &DiagnosticError{Code: code, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// WithRunID returns a copy of e tagged with the given run id.
func (e *DiagnosticError) WithRunID(runID string) *DiagnosticError {
	cp := *e
	cp.RunID = runID
	return &cp
}
