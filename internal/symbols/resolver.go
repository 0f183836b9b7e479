package symbols

import (
	"github.com/Thessal/comet/internal/ast"
	"github.com/Thessal/comet/internal/diagnostics"
)

// ImportSource is the external collaborator that turns a (basePath,
// modulePath) pair into canonicalized source text (spec §6). A filesystem
// implementation lives in internal/importfs; tests use an in-memory one.
type ImportSource interface {
	// Canonicalize collapses ".."/symlinks and returns an absolute,
	// comparable identity for modulePath as resolved from basePath, so that
	// two different spellings of the same file compare equal.
	Canonicalize(basePath, modulePath string) (string, error)
	// Parse returns the already-parsed Program for a canonicalized path.
	// Concrete-syntax parsing is out of scope for comet's core (spec §1);
	// the ImportSource is responsible for producing the AST.
	Parse(canonicalPath string) (*ast.Program, error)
}

// Resolver performs the single-pass registration described in spec §4.2: for
// each declaration, check uniqueness within its kind and insert; for
// imports, resolve, skip if already loaded, otherwise parse and recurse.
type Resolver struct {
	Table  *SymbolTable
	Source ImportSource
}

// NewResolver returns a Resolver writing into a fresh SymbolTable.
func NewResolver(source ImportSource) *Resolver {
	return &Resolver{Table: New(), Source: source}
}

// Analyze registers every declaration in program, recursively following its
// imports, with basePath as the path program was loaded from.
func (r *Resolver) Analyze(program *ast.Program, basePath string) []*diagnostics.DiagnosticError {
	var errs []*diagnostics.DiagnosticError
	r.Table.LoadedPaths[basePath] = true
	errs = append(errs, r.processProgram(program, basePath)...)
	return errs
}

func (r *Resolver) processProgram(program *ast.Program, basePath string) []*diagnostics.DiagnosticError {
	var errs []*diagnostics.DiagnosticError
	for _, decl := range program.Declarations {
		if imp, ok := decl.(*ast.ImportDecl); ok {
			errs = append(errs, r.loadImport(imp, basePath)...)
			continue
		}
		if err := r.register(decl); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// loadImport resolves imp relative to basePath, skipping it if an
// already-loaded file canonicalizes to the same identity (spec §4.2, §8
// "importing the same file twice via different path spellings... loads it
// exactly once"). The visited-set is consulted before parsing, so import
// cycles terminate after each participant is processed once.
func (r *Resolver) loadImport(imp *ast.ImportDecl, basePath string) []*diagnostics.DiagnosticError {
	canonical, err := r.Source.Canonicalize(basePath, imp.Path)
	if err != nil {
		return []*diagnostics.DiagnosticError{
			diagnostics.New(diagnostics.ErrS003, imp.Position, "import %q: %v", imp.Path, err),
		}
	}
	if r.Table.LoadedPaths[canonical] {
		return nil
	}
	r.Table.LoadedPaths[canonical] = true

	program, err := r.Source.Parse(canonical)
	if err != nil {
		return []*diagnostics.DiagnosticError{
			diagnostics.New(diagnostics.ErrS003, imp.Position, "import %q: %v", imp.Path, err),
		}
	}
	return r.processProgram(program, canonical)
}

func (r *Resolver) register(decl ast.Declaration) *diagnostics.DiagnosticError {
	switch d := decl.(type) {
	case *ast.TypeDecl:
		if _, exists := r.Table.Types[d.Name]; exists {
			return diagnostics.New(diagnostics.ErrS002, d.Position, "duplicate type declaration: %s", d.Name)
		}
		r.Table.Types[d.Name] = d
	case *ast.BehaviorDecl:
		if _, exists := r.Table.Behaviors[d.Name]; exists {
			return diagnostics.New(diagnostics.ErrS002, d.Position, "duplicate behavior declaration: %s", d.Name)
		}
		r.Table.Behaviors[d.Name] = d
	case *ast.FuncDecl:
		if _, exists := r.Table.Functions[d.Name]; exists {
			return diagnostics.New(diagnostics.ErrS002, d.Position, "duplicate function declaration: %s", d.Name)
		}
		r.Table.Functions[d.Name] = d
	case *ast.FlowDecl:
		if _, exists := r.Table.Flows[d.Name]; exists {
			return diagnostics.New(diagnostics.ErrS002, d.Position, "duplicate flow declaration: %s", d.Name)
		}
		r.Table.Flows[d.Name] = d
	}
	return nil
}
