// Package dispatcher implements the behavior/function resolution described
// in spec §4.3: given a call site and the constraint sets of its evaluated
// arguments, it selects every candidate implementation whose signature
// subsumes the arguments and whose return constraint subsumes the
// behavior's requirement. Flow-reference calls (spec §4.3 item 3) are
// handled by internal/synthesis directly, since they require recursing
// into the synthesizer itself.
package dispatcher

import (
	"sort"

	"github.com/Thessal/comet/internal/ast"
	"github.com/Thessal/comet/internal/constraintalg"
	"github.com/Thessal/comet/internal/symbols"
)

// ArgResult is one evaluated call-site argument: its execution-graph node
// id, its constraint set, and its optional binding name.
type ArgResult struct {
	NodeID int
	Set    constraintalg.ConstraintSet
	Name   string // empty when positional
}

// CandidateKind distinguishes the two sources of behavior candidates (spec
// §4.3 "Both sources of candidates are emitted").
type CandidateKind int

const (
	// FunctionCandidate is a concrete FuncDecl whose signature subsumes the
	// call's arguments and whose fully-expanded return subsumes the
	// behavior's requirement.
	FunctionCandidate CandidateKind = iota
	// VariantCandidate is a literal drawn from a Union position in a
	// behavior's return constraint that is not itself a declared type.
	VariantCandidate
	// DirectCandidate is a plain (non-behavior) function call.
	DirectCandidate
)

// Candidate is one dispatch outcome: either a FunctionCall node (naming the
// chosen function) or a Constant node (naming the chosen variant literal).
type Candidate struct {
	Kind      CandidateKind
	FuncName  string // set for FunctionCandidate and DirectCandidate
	Variant   string // set for VariantCandidate
	ReturnSet constraintalg.ConstraintSet
}

// Dispatch resolves call `name(args)` per spec §4.3 resolution order 1–2.
// The caller (internal/synthesis) handles order 3 (flow reference)
// separately. An empty, non-nil slice means every dispatch attempt was
// rejected (NoImplFound); a nil slice means name names neither a behavior
// nor a function (the caller should then try a flow reference).
func Dispatch(table *symbols.SymbolTable, name string, args []ArgResult) []Candidate {
	triedBehavior := false
	if beh, ok := table.Behaviors[name]; ok {
		triedBehavior = true
		if MatchArgs(beh.Args, args) {
			if cands := behaviorCandidates(table, beh, args); len(cands) > 0 {
				return cands
			}
		}
		// The behavior's own signature rejected these arguments, or it
		// matched but produced no surviving candidate: per spec §4.3 step 2
		// ("if name is not a behavior, or no behavior candidates matched,
		// look up a function") and synthesis.rs (found stays false, then the
		// functions.get(func_name) branch runs unconditionally), fall
		// through to a like-named function rather than stopping here.
	}

	if fn, ok := table.Functions[name]; ok {
		if MatchArgs(fn.Params, args) {
			return []Candidate{{
				Kind:      DirectCandidate,
				FuncName:  fn.Name,
				ReturnSet: table.FullyExpandSet(constraintalg.Expand(fn.ReturnType)),
			}}
		}
		return []Candidate{}
	}

	if triedBehavior {
		return []Candidate{}
	}
	return nil
}

// behaviorCandidates implements spec §4.3 step 1: scan every function for a
// subsuming implementation, and scan the behavior's return constraint for
// literal variants.
func behaviorCandidates(table *symbols.SymbolTable, beh *ast.BehaviorDecl, args []ArgResult) []Candidate {
	var out []Candidate

	names := make([]string, 0, len(table.Functions))
	for n := range table.Functions {
		names = append(names, n)
	}
	sort.Strings(names)

	for _, n := range names {
		fn := table.Functions[n]
		if !MatchArgs(fn.Params, args) {
			continue
		}
		fullReturn := table.FullyExpandSet(constraintalg.Expand(fn.ReturnType))
		if fullReturn.IsEmpty() {
			// An empty expanded return set means the function is
			// uninhabited and is skipped (spec §9 Open Questions).
			continue
		}
		if !behaviorReturnSubsumedBy(beh.ReturnType, fullReturn) {
			continue
		}
		out = append(out, Candidate{Kind: FunctionCandidate, FuncName: fn.Name, ReturnSet: fullReturn})
	}

	for _, variant := range CollectVariants(table, beh.ReturnType) {
		out = append(out, Candidate{
			Kind:      VariantCandidate,
			Variant:   variant,
			ReturnSet: variantConstraintSet(beh.ReturnType, variant),
		})
	}

	return out
}

// behaviorReturnSubsumedBy reports whether every chain of a function's
// fully-expanded return set satisfies the behavior's return requirement
// (spec §4.3: "every chain subsumes the behavior's return constraint").
func behaviorReturnSubsumedBy(behaviorReturn ast.Constraint, fnReturn constraintalg.ConstraintSet) bool {
	for _, chain := range fnReturn.Chains() {
		if !constraintalg.MatchesChain(chain, behaviorReturn) {
			return false
		}
	}
	return true
}

// variantConstraintSet builds the ConstraintSet for a literal variant: any
// chain of the behavior's return expansion that already names the variant
// atom, or (if none does) a singleton chain containing just the variant
// (spec §4.4 "Literal").
func variantConstraintSet(behaviorReturn ast.Constraint, variant string) constraintalg.ConstraintSet {
	base := constraintalg.Expand(behaviorReturn)
	out := constraintalg.NewConstraintSet()
	atom := constraintalg.Atom{Kind: constraintalg.TypeAtom, Name: variant}
	for _, chain := range base.Chains() {
		if chain.Contains(atom) {
			out.Add(chain)
		}
	}
	if out.IsEmpty() {
		out.Add(constraintalg.Chain{atom})
	}
	return out
}

// MatchArgs implements spec §4.3 "Argument matching": positional binding by
// default, named arguments bind by parameter name and are extracted before
// positional assignment, arity must match exactly, and every chain of each
// bound argument's ConstraintSet must satisfy matches_chain against the
// corresponding parameter constraint.
func MatchArgs(params []ast.TypedArg, args []ArgResult) bool {
	if len(params) != len(args) {
		return false
	}

	named := make(map[string]ArgResult, len(args))
	var positional []ArgResult
	for _, a := range args {
		if a.Name != "" {
			named[a.Name] = a
		} else {
			positional = append(positional, a)
		}
	}

	ordered := make([]ArgResult, 0, len(params))
	posIdx := 0
	for _, p := range params {
		if a, ok := named[p.Name]; ok {
			ordered = append(ordered, a)
			delete(named, p.Name)
			continue
		}
		if posIdx >= len(positional) {
			return false // missing argument
		}
		ordered = append(ordered, positional[posIdx])
		posIdx++
	}
	if posIdx != len(positional) {
		return false // surplus positional argument
	}
	if len(named) != 0 {
		return false // unmatched named argument
	}

	for i, p := range params {
		for _, chain := range ordered[i].Set.Chains() {
			if !constraintalg.MatchesChain(chain, p.Constraint) {
				return false
			}
		}
	}
	return true
}

// CollectVariants scans a constraint for atoms appearing in Union positions
// that are not declared types (spec §4.3 "the behavior's return type is
// scanned for variants"). A bare atom outside any Union is never a variant;
// Addition operands are searched only for nested Unions.
func CollectVariants(table *symbols.SymbolTable, c ast.Constraint) []string {
	var out []string
	switch n := c.(type) {
	case ast.Union:
		for _, item := range n.Items {
			a, isAtom := item.(ast.AtomConstraint)
			if !isAtom {
				out = append(out, CollectVariants(table, item)...)
				continue
			}
			// Deliberate deviation from the Rust original: a type-variable
			// atom ('a) is never collected as a variant. The Rust
			// collect_variants has no such guard and would materialize a
			// type variable as a literal candidate, which cannot be
			// instantiated at a call site.
			if _, isType := table.Types[a.Name]; !isType && !a.IsVariable() {
				out = append(out, a.Name)
			}
		}
	case ast.Addition:
		for _, item := range n.Items {
			out = append(out, CollectVariants(table, item)...)
		}
	}
	return out
}
