// Package ast defines the fixed AST shape the synthesis core consumes.
// The concrete-syntax parser that produces these values is out of scope
// (spec §1 Non-goals); callers (a parser, an LSP, or a test) construct
// Program values directly.
package ast

// Position is a source location, stamped by whatever external component
// produced the AST. Zero value means "unknown" and is used freely by
// hand-built test fixtures.
type Position struct {
	File string
	Line int
	Col  int
}

// Node is the base interface implemented by every AST node that carries a
// source position, for diagnostics.
type Node interface {
	Pos() Position
}

// Program is the root of a single analyzed source unit.
type Program struct {
	File         string
	Declarations []Declaration
}

// Declaration is one top-level declaration: an import, a type, a behavior,
// a function, or a flow.
type Declaration interface {
	Node
	declarationNode()
}

// ImportDecl brings another module path into scope (spec §3, §4.2).
type ImportDecl struct {
	Position Position
	Path     string
}

func (d *ImportDecl) Pos() Position  { return d.Position }
func (*ImportDecl) declarationNode() {}

// TypedArg is a single named, constrained parameter of a behavior or
// function.
type TypedArg struct {
	Name       string
	Constraint Constraint
}

// ArgValue is a single call-site argument, optionally named.
type ArgValue struct {
	Name  string // empty when positional
	Value Expr
}
