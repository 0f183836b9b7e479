package synthesis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thessal/comet/internal/ast"
	"github.com/Thessal/comet/internal/builtins"
	"github.com/Thessal/comet/internal/config"
	"github.com/Thessal/comet/internal/constraintalg"
	"github.com/Thessal/comet/internal/diagnostics"
	"github.com/Thessal/comet/internal/symbols"
)

func newTable(t *testing.T) *symbols.SymbolTable {
	t.Helper()
	table := symbols.New()
	builtins.Load(table)
	return table
}

func intLit(v int64) *ast.Literal { return &ast.Literal{Kind: ast.IntLiteral, Int: v} }

func TestSynthesizeLiteralReturn(t *testing.T) {
	table := newTable(t)
	table.Flows["Main"] = &ast.FlowDecl{Name: "Main", Body: []ast.FlowStmt{
		&ast.FlowReturn{Expr: intLit(1)},
	}}

	s := New(table, config.DefaultLimits())
	ctxs, err := s.Synthesize("Main")
	require.Nil(t, err)
	require.Len(t, ctxs, 1)

	res, ok := ctxs[0].Result()
	require.True(t, ok)
	assert.True(t, res.Set.Contains(constraintalg.Chain{
		{Kind: constraintalg.TypeAtom, Name: "Constant"},
		{Kind: constraintalg.TypeAtom, Name: "Integer"},
		{Kind: constraintalg.TypeAtom, Name: "Number"},
	}))
}

func TestSynthesizeBinaryOpDesugarsToAddBehavior(t *testing.T) {
	table := newTable(t)
	table.Flows["Main"] = &ast.FlowDecl{Name: "Main", Body: []ast.FlowStmt{
		&ast.FlowReturn{Expr: &ast.BinaryOp{Op: ast.OpAdd, Left: intLit(1), Right: intLit(2)}},
	}}

	s := New(table, config.DefaultLimits())
	ctxs, err := s.Synthesize("Main")
	require.Nil(t, err)
	require.Len(t, ctxs, 1)

	res, ok := ctxs[0].Result()
	require.True(t, ok)
	op := ctxs[0].Graph.Nodes[res.NodeID].Op
	assert.Equal(t, OpAdd, op.Kind)
	assert.Equal(t, "add_numbers", op.FuncName)
}

func TestSynthesizeBranchesAcrossBehaviorVariants(t *testing.T) {
	table := newTable(t)
	table.Behaviors["signal"] = &ast.BehaviorDecl{
		Name: "signal",
		ReturnType: ast.Union{Items: []ast.Constraint{
			ast.AtomConstraint{Name: "Buy"}, ast.AtomConstraint{Name: "Sell"},
		}},
	}
	table.Flows["Main"] = &ast.FlowDecl{Name: "Main", Body: []ast.FlowStmt{
		&ast.FlowReturn{Expr: &ast.Call{Name: "signal"}},
	}}

	s := New(table, config.DefaultLimits())
	ctxs, err := s.Synthesize("Main")
	require.Nil(t, err)
	assert.Len(t, ctxs, 2)
}

func TestSynthesizeUnknownFlowReturnsDiagnostic(t *testing.T) {
	table := newTable(t)
	s := New(table, config.DefaultLimits())
	_, err := s.Synthesize("DoesNotExist")
	require.NotNil(t, err)
	assert.Equal(t, diagnostics.ErrS004, err.Code)
}

func TestSynthesizeRejectsSelfReferencingFlow(t *testing.T) {
	table := newTable(t)
	table.Flows["Loop"] = &ast.FlowDecl{Name: "Loop", Body: []ast.FlowStmt{
		&ast.FlowReturn{Expr: &ast.Call{Name: "Loop"}},
	}}

	s := New(table, config.DefaultLimits())
	_, err := s.Synthesize("Loop")
	require.NotNil(t, err)
	assert.Equal(t, diagnostics.ErrS007, err.Code)
}

func TestSynthesizeCallToUnknownNameReturnsUnknownReference(t *testing.T) {
	table := newTable(t)
	table.Flows["Main"] = &ast.FlowDecl{Name: "Main", Body: []ast.FlowStmt{
		&ast.FlowReturn{Expr: &ast.Call{Name: "does_not_exist", Args: []ast.ArgValue{{Value: intLit(1)}}}},
	}}

	s := New(table, config.DefaultLimits())
	_, err := s.Synthesize("Main")
	require.NotNil(t, err)
	assert.Equal(t, diagnostics.ErrS004, err.Code)
}
