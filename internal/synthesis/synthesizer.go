// Package synthesis implements the branching search of spec §4.4: given a
// flow, enumerate every well-typed concrete pipeline it admits, each
// materialized as a Context holding variable bindings and an execution
// graph (spec §4.5).
package synthesis

import (
	"context"

	"github.com/google/uuid"

	"github.com/Thessal/comet/internal/ast"
	"github.com/Thessal/comet/internal/config"
	"github.com/Thessal/comet/internal/diagnostics"
	"github.com/Thessal/comet/internal/symbols"
)

var posZero ast.Position

// Synthesizer interprets flows against an immutable SymbolTable (spec §5:
// "the SymbolTable is read-only during synthesis").
type Synthesizer struct {
	Table  *symbols.SymbolTable
	Limits config.Limits
	RunID  string

	ctx context.Context
}

// New returns a Synthesizer bound to table, applying limits (spec §5
// "configurable maximum recursion limit"). Each Synthesizer is tagged with
// a fresh run id so a caller synthesizing several flows can correlate the
// diagnostics each run raises.
func New(table *symbols.SymbolTable, limits config.Limits) *Synthesizer {
	return &Synthesizer{Table: table, Limits: limits, RunID: uuid.NewString(), ctx: context.Background()}
}

// WithContext attaches a cancellation context. The engine checks it
// cooperatively between statements and between call-site branches (spec
// §5); it never suspends, blocks, or is preempted.
func (s *Synthesizer) WithContext(ctx context.Context) *Synthesizer {
	cp := *s
	cp.ctx = ctx
	return &cp
}

func (s *Synthesizer) checkCancelled() *diagnostics.DiagnosticError {
	select {
	case <-s.ctx.Done():
		return s.errf(diagnostics.ErrS007, "synthesis cancelled: %v", s.ctx.Err())
	default:
		return nil
	}
}

func (s *Synthesizer) errf(code diagnostics.Code, format string, args ...any) *diagnostics.DiagnosticError {
	return diagnostics.New(code, posZero, format, args...).WithRunID(s.RunID)
}

// Synthesize is the entry point: synthesize(flow-name) -> list<Context>
// (spec §4.4). A positive Limits.Timeout bounds the call through the same
// cooperative cancellation checks as WithContext.
func (s *Synthesizer) Synthesize(flowName string) ([]*Context, *diagnostics.DiagnosticError) {
	if s.Limits.Timeout > 0 {
		ctx, cancel := context.WithTimeout(s.ctx, s.Limits.Timeout)
		defer cancel()
		return s.WithContext(ctx).synthesizeFlow(flowName, nil, 0)
	}
	return s.synthesizeFlow(flowName, nil, 0)
}

// synthesizeFlow threads the active flow-call stack (for self-reference
// rejection, spec §9 Open Questions) and an AST-nesting depth counter
// (spec §5) through the statement loop.
func (s *Synthesizer) synthesizeFlow(flowName string, stack []string, depth int) ([]*Context, *diagnostics.DiagnosticError) {
	if depth > s.Limits.MaxRecursionDepth {
		return nil, s.errf(diagnostics.ErrS007, "recursion limit exceeded synthesizing flow %q", flowName)
	}
	for _, active := range stack {
		if active == flowName {
			return nil, s.errf(diagnostics.ErrS007, "recursive flow reference rejected: %q is already on the active synthesis stack", flowName)
		}
	}

	flow, ok := s.Table.Flows[flowName]
	if !ok {
		return nil, s.errf(diagnostics.ErrS004, "flow not found: %s", flowName)
	}
	stack = append(append([]string{}, stack...), flowName)

	live := []*Context{NewContext()}

	for _, stmt := range flow.Body {
		if err := s.checkCancelled(); err != nil {
			return nil, err
		}
		next, err := s.execFlowStmt(stmt, live, stack, depth+1)
		if err != nil {
			return nil, err
		}
		live = next
	}

	return live, nil
}
