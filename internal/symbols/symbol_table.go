// Package symbols holds the SymbolTable and its single-pass resolver (spec
// §4.2): population of declarations from one or more imported source
// units, duplicate detection, recursive import loading with cycle safety,
// and property-closure expansion through the parent-constraint graph.
package symbols

import "github.com/Thessal/comet/internal/ast"

// SymbolTable holds every declaration registered across one analysis run.
// Within one run each kind is unique-by-name; duplicates are hard errors
// (spec §3).
type SymbolTable struct {
	Types      map[string]*ast.TypeDecl
	Behaviors  map[string]*ast.BehaviorDecl
	Functions  map[string]*ast.FuncDecl
	Flows      map[string]*ast.FlowDecl
	// LoadedPaths is the registry of canonicalized source paths already
	// processed, consulted before parsing to make import cycles terminate
	// (spec §4.2).
	LoadedPaths map[string]bool
}

// New returns an empty SymbolTable.
func New() *SymbolTable {
	return &SymbolTable{
		Types:       make(map[string]*ast.TypeDecl),
		Behaviors:   make(map[string]*ast.BehaviorDecl),
		Functions:   make(map[string]*ast.FuncDecl),
		Flows:       make(map[string]*ast.FlowDecl),
		LoadedPaths: make(map[string]bool),
	}
}
