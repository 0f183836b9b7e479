package constraintalg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thessal/comet/internal/ast"
)

func atomC(name string) ast.Constraint { return ast.AtomConstraint{Name: name} }

func TestExpandAtom(t *testing.T) {
	set := Expand(atomC("Series"))
	require.Equal(t, 1, set.Len())
	assert.True(t, set.Contains(Chain{{Kind: TypeAtom, Name: "Series"}}))
}

func TestExpandAdditionDistributesOverUnion(t *testing.T) {
	// (A | B) C  should expand to { [A C], [B C] }
	c := ast.Addition{Items: []ast.Constraint{
		ast.Union{Items: []ast.Constraint{atomC("A"), atomC("B")}},
		atomC("C"),
	}}
	set := Expand(c)
	require.Equal(t, 2, set.Len())
	assert.True(t, set.Contains(Chain{{Kind: TypeAtom, Name: "A"}, {Kind: TypeAtom, Name: "C"}}))
	assert.True(t, set.Contains(Chain{{Kind: TypeAtom, Name: "B"}, {Kind: TypeAtom, Name: "C"}}))
}

func TestExpandAdditionDeduplicatesAndSorts(t *testing.T) {
	c := ast.Addition{Items: []ast.Constraint{atomC("B"), atomC("A"), atomC("A")}}
	set := Expand(c)
	require.Equal(t, 1, set.Len())
	assert.Equal(t, Chain{{Kind: TypeAtom, Name: "A"}, {Kind: TypeAtom, Name: "B"}}, set.Chains()[0])
}

func TestExpandSubtractionRemovesMatchingChains(t *testing.T) {
	c := ast.Subtraction{
		Left:  ast.Union{Items: []ast.Constraint{atomC("A"), atomC("B")}},
		Right: atomC("A"),
	}
	set := Expand(c)
	require.Equal(t, 1, set.Len())
	assert.True(t, set.Contains(Chain{{Kind: TypeAtom, Name: "B"}}))
}

func TestExpandNoneIsEmpty(t *testing.T) {
	assert.True(t, Expand(ast.NoneConstraint{}).IsEmpty())
	assert.True(t, Expand(nil).IsEmpty())
}

func TestMatchesChainSubsumption(t *testing.T) {
	chain := Chain{{Kind: TypeAtom, Name: "Series"}, {Kind: TypeAtom, Name: "Numeric"}}
	assert.True(t, MatchesChain(chain, atomC("Series")))
	assert.True(t, MatchesChain(chain, ast.Addition{Items: []ast.Constraint{atomC("Series"), atomC("Numeric")}}))
	assert.False(t, MatchesChain(chain, atomC("Text")))
}

func TestMatchesChainUnionRequiresOnlyOneAlternative(t *testing.T) {
	chain := Chain{{Kind: TypeAtom, Name: "B"}}
	c := ast.Union{Items: []ast.Constraint{atomC("A"), atomC("B")}}
	assert.True(t, MatchesChain(chain, c))
}

func TestAtomOrderingTypeBeforeVariable(t *testing.T) {
	typeAtom := Atom{Kind: TypeAtom, Name: "Zeta"}
	varAtom := Atom{Kind: VariableAtom, Name: "a"}
	assert.True(t, Less(typeAtom, varAtom))
	assert.False(t, Less(varAtom, typeAtom))
}
