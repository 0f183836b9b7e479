// Package builtins supplies comet's standard library: the Number/
// Constant/DataFrame/TimeSeries/Ranged type hierarchy and the arithmetic,
// rolling-statistics, and signal behaviors a quantitative pipeline expects
// out of the box. The original Rust implementation wired these in as
// hand-written BehaviorHandler/FunctionHandler trait impls
// (_examples/original_source/src/comet/behaviors/normalizer.rs,
// functions/divide.rs, functions/update_when.rs); comet's dispatcher
// already resolves declared functions against declared constraints, so
// the same behaviors are expressed here as ordinary declarations loaded
// into every SymbolTable rather than as a second, hand-coded dispatch
// path (spec §4.3's "Both sources of candidates" already covers them).
package builtins

import "github.com/Thessal/comet/internal/ast"

func atom(name string) ast.Constraint { return ast.AtomConstraint{Name: name} }

func and(items ...ast.Constraint) ast.Constraint { return ast.Addition{Items: items} }

func typeDecl(name string, parent ast.Constraint, props ...string) *ast.TypeDecl {
	return &ast.TypeDecl{Name: name, ParentConstraint: parent, Properties: props}
}

func arg(name string, c ast.Constraint) ast.TypedArg { return ast.TypedArg{Name: name, Constraint: c} }

func behavior(name string, ret ast.Constraint, args ...ast.TypedArg) *ast.BehaviorDecl {
	return &ast.BehaviorDecl{Name: name, Args: args, ReturnType: ret}
}

func fn(name string, ret ast.Constraint, params ...ast.TypedArg) *ast.FuncDecl {
	return &ast.FuncDecl{Name: name, Params: params, ReturnType: ret}
}

// Types returns the builtin type hierarchy. Sum/Difference/Product/
// Quotient/Updated are declared types (not left as bare atoms) so that,
// when one appears inside a Union, CollectVariants' "not a known type,
// therefore a variant" rule (spec §4.3; _examples/original_source/src/
// comet/synthesis.rs collect_variants) does not mistake a structural
// marker tag for a literal enum-like outcome the way Buy/Sell would be.
func Types() []*ast.TypeDecl {
	return []*ast.TypeDecl{
		typeDecl("Number", nil),
		typeDecl("Constant", nil, "Constant"),
		typeDecl("Integer", atom("Number"), "Integer"),
		typeDecl("Float", atom("Number"), "Float"),
		typeDecl("DataFrame", nil, "DataFrame"),
		typeDecl("TimeSeries", nil, "TimeSeries"),
		typeDecl("Ranged", nil, "Ranged"),
		typeDecl("Sum", nil),
		typeDecl("Difference", nil),
		typeDecl("Product", nil),
		typeDecl("Quotient", nil),
		typeDecl("Updated", nil),
	}
}

// Behaviors returns the builtin polymorphic operations that BinaryOp
// desugaring and rolling-statistics calls resolve against. Each behavior's
// return requires a distinguishing marker atom (Sum/Difference/Product/
// Quotient) rather than bare Number: a structural signature of (Number,
// Number) -> Number alone cannot tell add from multiply apart, so every
// implementing function below tags its own result with the matching
// marker (spec §4.3 dispatch is purely structural; there is no separate
// "implements" declaration binding a function to one behavior).
func Behaviors() []*ast.BehaviorDecl {
	number := atom("Number")
	divisible := ast.Union{Items: []ast.Constraint{number, atom("DataFrame"), atom("TimeSeries")}}
	return []*ast.BehaviorDecl{
		behavior("add", atom("Sum"), arg("a", number), arg("b", number)),
		behavior("subtract", atom("Difference"), arg("a", number), arg("b", number)),
		behavior("multiply", atom("Product"), arg("a", number), arg("b", number)),
		behavior("divide", atom("Quotient"), arg("a", divisible), arg("b", divisible)),
		behavior("normalize", atom("Ranged"), arg("a", divisible)),
		behavior("update_when", atom("Updated"), arg("data", divisible), arg("signal", atom("Ranged"))),
	}
}

// Functions returns the concrete implementations the behaviors above
// dispatch to, plus the time-series primitives (delay/diff/rolling
// statistics/filter) supplemented from
// _examples/original_source/src/comet/ir.rs's OperatorOp enum, which the
// distilled spec.md only names in passing.
func Functions() []*ast.FuncDecl {
	number, constant := atom("Number"), atom("Constant")
	dataframe, timeseries, ranged := atom("DataFrame"), atom("TimeSeries"), atom("Ranged")
	sum, diff, product, quotient, updated := atom("Sum"), atom("Difference"), atom("Product"), atom("Quotient"), atom("Updated")

	return []*ast.FuncDecl{
		fn("add_numbers", and(number, sum), arg("a", number), arg("b", number)),
		fn("subtract_numbers", and(number, diff), arg("a", number), arg("b", number)),
		fn("multiply_numbers", and(number, product), arg("a", number), arg("b", number)),

		// divide's result type depends on which side is a DataFrame,
		// TimeSeries, or bare Constant (functions/divide.rs); the static
		// dispatcher expresses this the same way it expresses any other
		// overload set, as one candidate function per admissible argument
		// pairing. Every variant tags its return Quotient so it qualifies
		// for the divide behavior regardless of its concrete shape.
		fn("divide_dataframe_by_dataframe", and(dataframe, quotient), arg("a", dataframe), arg("b", dataframe)),
		fn("divide_dataframe_by_timeseries", and(dataframe, quotient), arg("a", dataframe), arg("b", timeseries)),
		fn("divide_dataframe_by_constant", and(dataframe, quotient), arg("a", dataframe), arg("b", constant)),
		fn("divide_timeseries_by_timeseries", and(timeseries, quotient), arg("a", timeseries), arg("b", timeseries)),
		fn("divide_timeseries_by_constant", and(timeseries, quotient), arg("a", timeseries), arg("b", constant)),
		fn("divide_constant_by_constant", and(constant, quotient), arg("a", constant), arg("b", constant)),

		// normalize (behaviors/normalizer.rs): Ranged plus the concrete
		// shape, since its behavior only requires the Ranged property.
		fn("normalize_dataframe", and(dataframe, ranged), arg("a", dataframe)),
		fn("normalize_timeseries", and(timeseries, ranged), arg("a", timeseries)),

		// update_when (functions/update_when.rs): its signal argument's
		// Ranged requirement is now an ordinary parameter constraint
		// rather than a hand-written check; the return type is arg0's
		// concrete shape tagged Updated.
		fn("update_when_dataframe", and(dataframe, updated), arg("data", dataframe), arg("signal", ranged)),
		fn("update_when_timeseries", and(timeseries, updated), arg("data", timeseries), arg("signal", ranged)),

		fn("delay_timeseries", timeseries, arg("a", timeseries), arg("lag", constant)),
		fn("diff_timeseries", timeseries, arg("a", timeseries)),
		fn("rolling_mean_timeseries", timeseries, arg("a", timeseries), arg("window", constant)),
		fn("rolling_std_timeseries", timeseries, arg("a", timeseries), arg("window", constant)),
		fn("filter_dataframe", dataframe, arg("a", dataframe), arg("cond", ranged)),
	}
}

// OpKindName returns the execution-graph operator tag a builtin function
// should be recorded under, or "" for a plain user function (spec §3;
// tags mirror ir.rs's OperatorOp so the graph records what an operation
// actually computes instead of a generic function-call node).
func OpKindName(funcName string) string {
	switch funcName {
	case "add_numbers":
		return "Add"
	case "subtract_numbers":
		return "Subtract"
	case "multiply_numbers":
		return "Multiply"
	case "divide_dataframe_by_dataframe", "divide_dataframe_by_timeseries", "divide_dataframe_by_constant",
		"divide_timeseries_by_timeseries", "divide_timeseries_by_constant", "divide_constant_by_constant":
		return "Divide"
	case "normalize_dataframe", "normalize_timeseries":
		return "ZScore"
	case "update_when_dataframe", "update_when_timeseries":
		return "UpdateWhen"
	case "delay_timeseries":
		return "Delay"
	case "diff_timeseries":
		return "Diff"
	case "rolling_mean_timeseries":
		return "RollingMean"
	case "rolling_std_timeseries":
		return "RollingStd"
	case "filter_dataframe":
		return "Filter"
	default:
		return ""
	}
}
