package constraintalg

import "github.com/Thessal/comet/internal/ast"

// Expand normalizes a Constraint tree into a ConstraintSet of chains,
// distributing intersection over alternation (spec §4.1). Expansion never
// fails: an unsatisfiable constraint simply yields the empty set.
func Expand(c ast.Constraint) ConstraintSet {
	switch n := c.(type) {
	case nil:
		return NewConstraintSet()

	case ast.AtomConstraint:
		if n.IsVariable() {
			return singleChain(Chain{{Kind: VariableAtom, Name: n.Name}})
		}
		return singleChain(Chain{{Kind: TypeAtom, Name: n.Name}})

	case ast.Addition:
		// Fold: start with the identity { [] }, then for each operand take
		// the pairwise concatenation of every existing chain with every
		// incoming chain.
		result := singleChain(Chain{})
		for _, item := range n.Items {
			incoming := Expand(item)
			next := NewConstraintSet()
			for _, existing := range result.Chains() {
				for _, in := range incoming.Chains() {
					next.Add(concatChain(existing, in))
				}
			}
			result = next
		}
		return result

	case ast.Union:
		result := NewConstraintSet()
		for _, item := range n.Items {
			result = result.Union(Expand(item))
		}
		return result

	case ast.Subtraction:
		left := Expand(n.Left)
		result := NewConstraintSet()
		for _, chain := range left.Chains() {
			if !MatchesChain(chain, n.Right) {
				result.Add(chain)
			}
		}
		return result

	case ast.NoneConstraint:
		return NewConstraintSet()

	default:
		return NewConstraintSet()
	}
}

// MatchesChain reports whether chain satisfies constraint c: true iff at
// least one chain of Expand(c) is an atom-wise subset of chain. This is the
// subsumption relation every dispatch decision reduces to (spec §4.1).
func MatchesChain(chain Chain, c ast.Constraint) bool {
	for _, req := range Expand(c).Chains() {
		if isSubset(req, chain) {
			return true
		}
	}
	return false
}

func isSubset(req, chain Chain) bool {
	for _, a := range req {
		if !chain.Contains(a) {
			return false
		}
	}
	return true
}
