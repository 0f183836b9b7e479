package synthesis

import (
	"fmt"

	"github.com/Thessal/comet/internal/ast"
	"github.com/Thessal/comet/internal/builtins"
	"github.com/Thessal/comet/internal/constraintalg"
	"github.com/Thessal/comet/internal/diagnostics"
	"github.com/Thessal/comet/internal/dispatcher"
)

// evalResult is one branch produced by evaluating an expression: the
// (possibly cloned) context it lives in, the value's ConstraintSet, and
// the execution-graph node id that produced it.
type evalResult struct {
	Ctx    *Context
	Set    constraintalg.ConstraintSet
	NodeID int
}

// execFlowStmt evaluates one flow statement against every live context,
// threading branching: a statement fails only when, across ALL incoming
// contexts, its expression yields zero resulting contexts (spec §4.4
// "Assignment"/"Return").
func (s *Synthesizer) execFlowStmt(stmt ast.FlowStmt, live []*Context, stack []string, depth int) ([]*Context, *diagnostics.DiagnosticError) {
	var lastErr *diagnostics.DiagnosticError
	switch st := stmt.(type) {
	case *ast.FlowAssignment:
		var next []*Context
		for _, ctx := range live {
			results, err := s.evaluateExpr(st.Expr, ctx, stack, depth+1)
			if err != nil {
				lastErr = err
				continue
			}
			for _, r := range results {
				r.Ctx.Bind(st.Target, r.Set, r.NodeID)
				next = append(next, r.Ctx)
			}
		}
		if len(next) == 0 {
			if lastErr != nil {
				return nil, lastErr
			}
			return nil, s.errf(diagnostics.ErrS006, "assignment to %q yielded no contexts", st.Target)
		}
		return next, nil

	case *ast.FlowReturn:
		var next []*Context
		for _, ctx := range live {
			results, err := s.evaluateExpr(st.Expr, ctx, stack, depth+1)
			if err != nil {
				lastErr = err
				continue
			}
			for _, r := range results {
				// The returned value is exposed under the "result" binding
				// by convention (spec §4.4 "Return"), so callers and the
				// CLI (spec §6) can read it the same way regardless of
				// whether the flow ends in an explicit assignment or a
				// bare return.
				r.Ctx.Bind("result", r.Set, r.NodeID)
				next = append(next, r.Ctx)
			}
		}
		if len(next) == 0 {
			if lastErr != nil {
				return nil, lastErr
			}
			return nil, s.errf(diagnostics.ErrS006, "return statement yielded no contexts")
		}
		return next, nil

	default:
		return nil, s.errf(diagnostics.ErrS004, "unsupported flow statement %T", stmt)
	}
}

// evaluateExpr is the recursive expression evaluator of spec §4.4. depth
// counts AST nesting and flow-call nesting together; synthesizeFlow checks
// the same counter against MaxRecursionDepth.
func (s *Synthesizer) evaluateExpr(expr ast.Expr, ctx *Context, stack []string, depth int) ([]evalResult, *diagnostics.DiagnosticError) {
	if depth > s.Limits.MaxRecursionDepth {
		return nil, s.errf(diagnostics.ErrS007, "recursion limit exceeded evaluating expression")
	}
	if err := s.checkCancelled(); err != nil {
		return nil, err
	}

	switch e := expr.(type) {
	case *ast.Literal:
		return s.evaluateLiteral(e, ctx)
	case *ast.Identifier:
		return s.evaluateIdentifier(e, ctx, stack, depth)
	case *ast.Call:
		return s.evaluateCall(e, ctx, stack, depth)
	case *ast.BinaryOp:
		return s.evaluateBinaryOp(e, ctx, stack, depth)
	default:
		return nil, s.errf(diagnostics.ErrS004, "expression kind not supported by synthesis: %T", expr)
	}
}

func literalTag(k ast.LiteralKind) string {
	switch k {
	case ast.IntLiteral:
		return "Integer"
	case ast.FloatLiteral:
		return "Float"
	case ast.StringLiteral:
		return "String"
	case ast.BoolLiteral:
		return "Boolean"
	default:
		return "Constant"
	}
}

func literalText(l *ast.Literal) string {
	switch l.Kind {
	case ast.IntLiteral:
		return fmt.Sprintf("%d", l.Int)
	case ast.FloatLiteral:
		return fmt.Sprintf("%g", l.Float)
	case ast.StringLiteral:
		return l.Str
	case ast.BoolLiteral:
		return fmt.Sprintf("%t", l.Bool)
	default:
		return ""
	}
}

// evaluateLiteral implements spec §4.4 "Literal": a Constant node whose
// ConstraintSet carries the Constant atom plus the literal's concrete
// numeric/string/boolean type atom, so dispatch can distinguish literal
// kinds (e.g. divide's compatibility table).
func (s *Synthesizer) evaluateLiteral(l *ast.Literal, ctx *Context) ([]evalResult, *diagnostics.DiagnosticError) {
	tag := literalTag(l.Kind)
	chain := constraintalg.Chain{
		{Kind: constraintalg.TypeAtom, Name: "Constant"},
		{Kind: constraintalg.TypeAtom, Name: tag},
	}
	// Run the chain through the same property closure a declared type's
	// universe gets (spec §4.2), so a literal's declared parent (e.g.
	// Integer -> Number) is visible to dispatch without a special case.
	full := s.Table.FullyExpandChain(chain)
	set := constraintalg.NewConstraintSet()
	set.Add(full)
	id := ctx.AddNode(Node{Kind: NodeConstant, Value: literalText(l), TypeTag: tag})
	return []evalResult{{Ctx: ctx, Set: set, NodeID: id}}, nil
}

// evaluateIdentifier implements spec §4.4 "Identifier": a bound variable
// returns as-is; a type name opens a new universe Source node seeded by
// the type's fully-expanded property closure (one branch per component,
// each also carrying the component's closure, when the type declares
// Components); a flow name (bare, no
// parens) recurses into synthesis of that flow.
func (s *Synthesizer) evaluateIdentifier(id *ast.Identifier, ctx *Context, stack []string, depth int) ([]evalResult, *diagnostics.DiagnosticError) {
	if v, ok := ctx.Variables[id.Name]; ok {
		return []evalResult{{Ctx: ctx, Set: v.Set, NodeID: v.NodeID}}, nil
	}
	if td, ok := s.Table.Types[id.Name]; ok {
		universes := td.Components
		if len(universes) == 0 {
			universes = []string{id.Name}
		}
		var out []evalResult
		for _, u := range universes {
			branch := ctx.Clone()
			set := constraintalg.NewConstraintSet()
			set.Add(s.Table.FullyExpandChain(constraintalg.Chain{{Kind: constraintalg.TypeAtom, Name: id.Name}, {Kind: constraintalg.TypeAtom, Name: u}}))
			nodeID := branch.AddNode(Node{Kind: NodeSource, Name: "Universe(" + u + ")", TypeTag: u})
			out = append(out, evalResult{Ctx: branch, Set: set, NodeID: nodeID})
		}
		return out, nil
	}
	if _, ok := s.Table.Flows[id.Name]; ok {
		return s.evaluateFlowReference(id.Name, ctx, stack, depth)
	}
	return nil, s.errf(diagnostics.ErrS004, "unknown reference: %s", id.Name)
}

// evaluateFlowReference recurses into the named flow's synthesis (spec
// §4.3 item 3 and §4.4 "Identifier"/bare flow reference), then continues
// the caller's context once per resulting sub-context: the flow's result
// becomes an opaque Source node in the caller's own graph.
func (s *Synthesizer) evaluateFlowReference(name string, ctx *Context, stack []string, depth int) ([]evalResult, *diagnostics.DiagnosticError) {
	subCtxs, err := s.synthesizeFlow(name, stack, depth+1)
	if err != nil {
		return nil, err
	}

	var out []evalResult
	for _, sub := range subCtxs {
		res, ok := sub.Result()
		if !ok {
			continue
		}
		newCtx := ctx.Clone()
		nodeID := newCtx.AddNode(Node{Kind: NodeSource, Name: "Flow(" + name + ")"})
		out = append(out, evalResult{Ctx: newCtx, Set: res.Set, NodeID: nodeID})
	}
	if len(out) == 0 {
		return nil, s.errf(diagnostics.ErrS006, "flow %q produced no usable result", name)
	}
	return out, nil
}

// argBranch accumulates one Cartesian-product branch across a call's
// argument list: the context it has branched into so far, and the
// ArgResults evaluated in order.
type argBranch struct {
	Ctx  *Context
	Args []dispatcher.ArgResult
}

// evaluateCall implements spec §4.3/§4.4 "Call": arguments are evaluated
// left to right, branching the Cartesian product of their results across
// contexts; each resulting argument binding is then dispatched per spec
// §4.3, trying behavior/function resolution first and a zero-arity flow
// reference only when name names neither.
func (s *Synthesizer) evaluateCall(call *ast.Call, ctx *Context, stack []string, depth int) ([]evalResult, *diagnostics.DiagnosticError) {
	branches := []argBranch{{Ctx: ctx, Args: nil}}

	for _, argv := range call.Args {
		var next []argBranch
		for _, b := range branches {
			results, err := s.evaluateExpr(argv.Value, b.Ctx, stack, depth+1)
			if err != nil {
				return nil, err
			}
			for _, r := range results {
				args := make([]dispatcher.ArgResult, len(b.Args), len(b.Args)+1)
				copy(args, b.Args)
				args = append(args, dispatcher.ArgResult{NodeID: r.NodeID, Set: r.Set, Name: argv.Name})
				next = append(next, argBranch{Ctx: r.Ctx, Args: args})
			}
		}
		branches = next
		if len(branches) == 0 {
			return nil, s.errf(diagnostics.ErrS005, "call to %q: argument evaluation yielded no contexts", call.Name)
		}
	}

	var out []evalResult
	for _, b := range branches {
		cands := dispatcher.Dispatch(s.Table, call.Name, b.Args)

		if cands == nil {
			if len(call.Args) != 0 {
				return nil, s.errf(diagnostics.ErrS004, "unknown reference: %s", call.Name)
			}
			sub, err := s.evaluateFlowReference(call.Name, b.Ctx, stack, depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)
			continue
		}

		for _, cand := range cands {
			newCtx := b.Ctx.Clone()
			var node Node
			switch cand.Kind {
			case dispatcher.VariantCandidate:
				node = Node{Kind: NodeConstant, Value: cand.Variant, TypeTag: cand.Variant}
			default:
				argIDs := make([]int, len(b.Args))
				for i, a := range b.Args {
					argIDs[i] = a.NodeID
				}
				node = Node{Kind: NodeOperation, Op: operatorFor(cand.FuncName, builtins.OpKindName(cand.FuncName)), Args: argIDs}
			}
			nodeID := newCtx.AddNode(node)
			out = append(out, evalResult{Ctx: newCtx, Set: cand.ReturnSet, NodeID: nodeID})
		}
	}

	if len(out) == 0 {
		return nil, s.errf(diagnostics.ErrS006, "no implementation found for %s", call.Name)
	}
	return out, nil
}

// evaluateBinaryOp implements spec §4.4 "BinaryOp": desugars to a call to
// the corresponding behavior, then dispatches exactly like any other call.
func (s *Synthesizer) evaluateBinaryOp(op *ast.BinaryOp, ctx *Context, stack []string, depth int) ([]evalResult, *diagnostics.DiagnosticError) {
	name, ok := op.Op.BehaviorName()
	if !ok {
		return nil, s.errf(diagnostics.ErrS004, "operator has no synthesizable behavior")
	}
	desugared := &ast.Call{
		Position: op.Position,
		Name:     name,
		Args: []ast.ArgValue{
			{Value: op.Left},
			{Value: op.Right},
		},
	}
	return s.evaluateCall(desugared, ctx, stack, depth)
}
