package constraintalg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstraintSetUnion(t *testing.T) {
	a := NewConstraintSet()
	a.Add(Chain{{Kind: TypeAtom, Name: "A"}})
	b := NewConstraintSet()
	b.Add(Chain{{Kind: TypeAtom, Name: "B"}})

	u := a.Union(b)
	assert.Equal(t, 2, u.Len())
	assert.True(t, u.Contains(Chain{{Kind: TypeAtom, Name: "A"}}))
	assert.True(t, u.Contains(Chain{{Kind: TypeAtom, Name: "B"}}))
}

func TestConstraintSetEqualIgnoresInsertionOrder(t *testing.T) {
	a := NewConstraintSet()
	a.Add(Chain{{Kind: TypeAtom, Name: "A"}, {Kind: TypeAtom, Name: "B"}})
	a.Add(Chain{{Kind: TypeAtom, Name: "C"}})

	b := NewConstraintSet()
	b.Add(Chain{{Kind: TypeAtom, Name: "C"}})
	b.Add(Chain{{Kind: TypeAtom, Name: "B"}, {Kind: TypeAtom, Name: "A"}})

	assert.True(t, a.Equal(b))
}

func TestConstraintSetAddDedupesAtomsWithinAChain(t *testing.T) {
	s := NewConstraintSet()
	s.Add(Chain{{Kind: TypeAtom, Name: "A"}, {Kind: TypeAtom, Name: "A"}})
	assert.Equal(t, Chain{{Kind: TypeAtom, Name: "A"}}, s.Chains()[0])
}

func TestConstraintSetChainsAreDeterministic(t *testing.T) {
	s := NewConstraintSet()
	s.Add(Chain{{Kind: TypeAtom, Name: "Z"}})
	s.Add(Chain{{Kind: TypeAtom, Name: "A"}})

	first := s.Chains()
	second := s.Chains()
	assert.Equal(t, first, second)
}
