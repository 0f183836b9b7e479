package astyaml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thessal/comet/internal/ast"
)

func TestUnmarshalTypeDeclWithParentAndProperties(t *testing.T) {
	src := `
file: strategy.yaml
declarations:
  - kind: type
    name: TimeSeries
    parent:
      kind: atom
      name: Series
    properties: [Numeric, Ordered]
`
	program, err := Unmarshal([]byte(src))
	require.NoError(t, err)
	require.Len(t, program.Declarations, 1)

	td, ok := program.Declarations[0].(*ast.TypeDecl)
	require.True(t, ok)
	assert.Equal(t, "TimeSeries", td.Name)
	assert.Equal(t, []string{"Numeric", "Ordered"}, td.Properties)

	parent, ok := td.ParentConstraint.(ast.AtomConstraint)
	require.True(t, ok)
	assert.Equal(t, "Series", parent.Name)
}

func TestUnmarshalBehaviorRequiresReturnType(t *testing.T) {
	src := `
declarations:
  - kind: behavior
    name: add
    args:
      - name: a
        constraint: {kind: atom, name: Number}
`
	_, err := Unmarshal([]byte(src))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "behavior add missing returns")
}

func TestUnmarshalFlowWithAssignAndReturn(t *testing.T) {
	src := `
declarations:
  - kind: flow
    name: Main
    body:
      - kind: assign
        target: total
        expr:
          kind: binary
          op: add
          left: {kind: literal, literalKind: int, int: 1}
          right: {kind: literal, literalKind: int, int: 2}
      - kind: return
        expr: {kind: identifier, name: total}
`
	program, err := Unmarshal([]byte(src))
	require.NoError(t, err)
	require.Len(t, program.Declarations, 1)

	flow, ok := program.Declarations[0].(*ast.FlowDecl)
	require.True(t, ok)
	require.Len(t, flow.Body, 2)

	assign, ok := flow.Body[0].(*ast.FlowAssignment)
	require.True(t, ok)
	assert.Equal(t, "total", assign.Target)
	bin, ok := assign.Expr.(*ast.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, ast.OpAdd, bin.Op)

	ret, ok := flow.Body[1].(*ast.FlowReturn)
	require.True(t, ok)
	id, ok := ret.Expr.(*ast.Identifier)
	require.True(t, ok)
	assert.Equal(t, "total", id.Name)
}

func TestUnmarshalCallWithNamedArgs(t *testing.T) {
	src := `
declarations:
  - kind: flow
    name: Main
    body:
      - kind: return
        expr:
          kind: call
          name: update_when
          args:
            - name: data
              value: {kind: identifier, name: prices}
            - name: signal
              value: {kind: identifier, name: trigger}
`
	program, err := Unmarshal([]byte(src))
	require.NoError(t, err)
	flow := program.Declarations[0].(*ast.FlowDecl)
	ret := flow.Body[0].(*ast.FlowReturn)
	call, ok := ret.Expr.(*ast.Call)
	require.True(t, ok)
	assert.Equal(t, "update_when", call.Name)
	require.Len(t, call.Args, 2)
	assert.Equal(t, "data", call.Args[0].Name)
	assert.Equal(t, "signal", call.Args[1].Name)
}

func TestUnmarshalUnionAndSubtractionConstraints(t *testing.T) {
	src := `
declarations:
  - kind: behavior
    name: signal
    returns:
      kind: union
      items:
        - {kind: atom, name: Buy}
        - kind: subtraction
          left: {kind: atom, name: Sell}
          right: {kind: atom, name: Hold}
`
	program, err := Unmarshal([]byte(src))
	require.NoError(t, err)
	b := program.Declarations[0].(*ast.BehaviorDecl)
	union, ok := b.ReturnType.(ast.Union)
	require.True(t, ok)
	require.Len(t, union.Items, 2)

	_, ok = union.Items[0].(ast.AtomConstraint)
	assert.True(t, ok)
	sub, ok := union.Items[1].(ast.Subtraction)
	require.True(t, ok)
	left := sub.Left.(ast.AtomConstraint)
	assert.Equal(t, "Sell", left.Name)
}

func TestUnmarshalRejectsUnknownDeclarationKind(t *testing.T) {
	src := `
declarations:
  - kind: bogus
`
	_, err := Unmarshal([]byte(src))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown declaration kind")
}

func TestUnmarshalRejectsMalformedYAML(t *testing.T) {
	_, err := Unmarshal([]byte("declarations: [this is not a mapping"))
	require.Error(t, err)
}
