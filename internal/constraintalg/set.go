package constraintalg

import "sort"

// ConstraintSet is the normalized form of a Constraint: a set of chains.
// The empty set denotes the unsatisfiable constraint; a set containing only
// the empty chain denotes the trivially-true constraint (spec §3).
type ConstraintSet struct {
	chains map[string]Chain
}

// NewConstraintSet returns the empty (unsatisfiable) set.
func NewConstraintSet() ConstraintSet {
	return ConstraintSet{chains: make(map[string]Chain)}
}

// singleChain returns a set containing exactly one canonicalized chain.
func singleChain(c Chain) ConstraintSet {
	s := NewConstraintSet()
	s.Add(c)
	return s
}

// sortChain returns a sorted, duplicate-free copy of atoms following the
// chain total order (spec §3).
func sortChain(atoms []Atom) Chain {
	seen := make(map[Atom]bool, len(atoms))
	out := make(Chain, 0, len(atoms))
	for _, a := range atoms {
		if !seen[a] {
			seen[a] = true
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return Less(out[i], out[j]) })
	return out
}

// Add inserts a chain into the set, canonicalizing it first.
func (s *ConstraintSet) Add(c Chain) {
	canon := sortChain(c)
	s.chains[canon.key()] = canon
}

// Contains reports whether the set contains the given chain (after
// canonicalization).
func (s ConstraintSet) Contains(c Chain) bool {
	_, ok := s.chains[sortChain(c).key()]
	return ok
}

// Len returns the number of chains in the set.
func (s ConstraintSet) Len() int { return len(s.chains) }

// IsEmpty reports whether the set has no chains (the unsatisfiable
// constraint).
func (s ConstraintSet) IsEmpty() bool { return len(s.chains) == 0 }

// Chains returns the set's chains in deterministic (canonical-key) order.
func (s ConstraintSet) Chains() []Chain {
	keys := make([]string, 0, len(s.chains))
	for k := range s.chains {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Chain, len(keys))
	for i, k := range keys {
		out[i] = s.chains[k]
	}
	return out
}

// Equal reports whether two sets contain exactly the same chains.
func (s ConstraintSet) Equal(other ConstraintSet) bool {
	if len(s.chains) != len(other.chains) {
		return false
	}
	for k := range s.chains {
		if _, ok := other.chains[k]; !ok {
			return false
		}
	}
	return true
}

// Union returns the set union of the receiver's chains with other's.
func (s ConstraintSet) Union(other ConstraintSet) ConstraintSet {
	out := NewConstraintSet()
	for k, v := range s.chains {
		out.chains[k] = v
	}
	for k, v := range other.chains {
		out.chains[k] = v
	}
	return out
}

// concatChain combines two chains' atoms (deduped) and canonicalizes.
func concatChain(a, b Chain) Chain {
	merged := make([]Atom, 0, len(a)+len(b))
	merged = append(merged, a...)
	merged = append(merged, b...)
	return sortChain(merged)
}
