package symbols

import (
	"github.com/Thessal/comet/internal/constraintalg"
)

// FullyExpandChain walks the parent-constraint graph from every type atom
// already in chain and accumulates all transitively-granted property
// atoms, deduplicating and re-sorting (spec §4.2 "Property closure").
// Termination is bounded by a visited-set over declared type names, since
// the invariant in spec §3 forbids cycles in the parent-constraint graph.
func (t *SymbolTable) FullyExpandChain(chain constraintalg.Chain) constraintalg.Chain {
	full := append(constraintalg.Chain{}, chain...)
	visited := make(map[string]bool)

	var stack []string
	for _, a := range chain {
		if a.Kind == constraintalg.TypeAtom {
			stack = append(stack, a.Name)
		}
	}

	contains := func(c constraintalg.Chain, a constraintalg.Atom) bool {
		for _, x := range c {
			if x == a {
				return true
			}
		}
		return false
	}

	for len(stack) > 0 {
		name := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[name] {
			continue
		}
		visited[name] = true

		typeInfo, ok := t.Types[name]
		if !ok {
			continue
		}
		for _, prop := range typeInfo.Properties {
			atom := constraintalg.Atom{Kind: constraintalg.TypeAtom, Name: prop}
			if !contains(full, atom) {
				full = append(full, atom)
				stack = append(stack, prop)
			}
		}
		if typeInfo.ParentConstraint != nil {
			for _, parentChain := range constraintalg.Expand(typeInfo.ParentConstraint).Chains() {
				for _, atom := range parentChain {
					if !contains(full, atom) {
						full = append(full, atom)
						if atom.Kind == constraintalg.TypeAtom {
							stack = append(stack, atom.Name)
						}
					}
				}
			}
		}
	}

	return canonicalize(full)
}

func canonicalize(c constraintalg.Chain) constraintalg.Chain {
	tmp := constraintalg.NewConstraintSet()
	tmp.Add(c)
	return tmp.Chains()[0]
}

// FullyExpandSet applies FullyExpandChain to every chain of a
// ConstraintSet, used by the dispatcher to fully expand a function's
// declared return constraint before checking it subsumes a behavior's
// requirement (spec §4.2).
func (t *SymbolTable) FullyExpandSet(set constraintalg.ConstraintSet) constraintalg.ConstraintSet {
	out := constraintalg.NewConstraintSet()
	for _, chain := range set.Chains() {
		out.Add(t.FullyExpandChain(chain))
	}
	return out
}

// TypeUniverseChain builds the initial chain for using a declared type as a
// universe: the type's own name plus its fully-expanded properties (spec
// §4.4 "Identifier... if it names a type, synthesize a Source... and build
// the initial chain from the type's atoms plus fully-expanded properties").
func (t *SymbolTable) TypeUniverseChain(name string) constraintalg.Chain {
	base := constraintalg.Chain{{Kind: constraintalg.TypeAtom, Name: name}}
	return t.FullyExpandChain(base)
}
