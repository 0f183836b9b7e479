package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Thessal/comet/internal/ast"
	"github.com/Thessal/comet/internal/constraintalg"
)

func TestFullyExpandChainWalksDeclaredProperties(t *testing.T) {
	table := New()
	table.Types["Series"] = &ast.TypeDecl{Name: "Series", Properties: []string{"Numeric"}}

	chain := constraintalg.Chain{{Kind: constraintalg.TypeAtom, Name: "Series"}}
	full := table.FullyExpandChain(chain)

	assert.True(t, full.Contains(constraintalg.Atom{Kind: constraintalg.TypeAtom, Name: "Series"}))
	assert.True(t, full.Contains(constraintalg.Atom{Kind: constraintalg.TypeAtom, Name: "Numeric"}))
}

func TestFullyExpandChainWalksParentConstraint(t *testing.T) {
	table := New()
	table.Types["TimeSeries"] = &ast.TypeDecl{
		Name:             "TimeSeries",
		ParentConstraint: ast.AtomConstraint{Name: "Series"},
	}
	table.Types["Series"] = &ast.TypeDecl{Name: "Series", Properties: []string{"Numeric"}}

	chain := constraintalg.Chain{{Kind: constraintalg.TypeAtom, Name: "TimeSeries"}}
	full := table.FullyExpandChain(chain)

	assert.True(t, full.Contains(constraintalg.Atom{Kind: constraintalg.TypeAtom, Name: "Series"}))
	assert.True(t, full.Contains(constraintalg.Atom{Kind: constraintalg.TypeAtom, Name: "Numeric"}))
}

func TestFullyExpandChainTerminatesOnCyclicProperties(t *testing.T) {
	table := New()
	table.Types["A"] = &ast.TypeDecl{Name: "A", Properties: []string{"B"}}
	table.Types["B"] = &ast.TypeDecl{Name: "B", Properties: []string{"A"}}

	chain := constraintalg.Chain{{Kind: constraintalg.TypeAtom, Name: "A"}}
	full := table.FullyExpandChain(chain)

	assert.True(t, full.Contains(constraintalg.Atom{Kind: constraintalg.TypeAtom, Name: "A"}))
	assert.True(t, full.Contains(constraintalg.Atom{Kind: constraintalg.TypeAtom, Name: "B"}))
}

func TestTypeUniverseChainIncludesPropertyClosure(t *testing.T) {
	table := New()
	table.Types["TimeSeries"] = &ast.TypeDecl{Name: "TimeSeries", Properties: []string{"Numeric"}}

	chain := table.TypeUniverseChain("TimeSeries")
	assert.True(t, chain.Contains(constraintalg.Atom{Kind: constraintalg.TypeAtom, Name: "TimeSeries"}))
	assert.True(t, chain.Contains(constraintalg.Atom{Kind: constraintalg.TypeAtom, Name: "Numeric"}))
}
