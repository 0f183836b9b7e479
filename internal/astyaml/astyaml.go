// Package astyaml decodes a YAML document into an ast.Program. comet's core
// has no concrete-syntax parser (spec §1 Non-goals); YAML is the input
// format the peripheral CLI (cmd/comet) and test fixtures use to hand the
// synthesizer an AST without writing Go literals by hand, following the
// teacher's choice of gopkg.in/yaml.v3 for structured config.
package astyaml

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Thessal/comet/internal/ast"
)

// Program is the YAML-decodable mirror of ast.Program.
type Program struct {
	File         string `yaml:"file"`
	Declarations []Decl `yaml:"declarations"`
}

// Decl is one top-level declaration. Kind selects which fields apply:
// "import", "type", "behavior", "function", or "flow".
type Decl struct {
	Kind string `yaml:"kind"`

	// import
	Path string `yaml:"path,omitempty"`

	// type
	Name             string      `yaml:"name,omitempty"`
	ParentConstraint *Constraint `yaml:"parent,omitempty"`
	Properties       []string    `yaml:"properties,omitempty"`
	Components       []string    `yaml:"components,omitempty"`
	Structure        string      `yaml:"structure,omitempty"`

	// behavior / function
	Args       []TypedArg  `yaml:"args,omitempty"`
	ReturnType *Constraint `yaml:"returns,omitempty"`

	// flow
	Body []FlowStmt `yaml:"body,omitempty"`
}

// Constraint is the YAML-decodable mirror of ast.Constraint. Kind selects
// "atom", "addition", "union", "subtraction", or "none".
type Constraint struct {
	Kind  string       `yaml:"kind"`
	Name  string       `yaml:"name,omitempty"`
	Items []Constraint `yaml:"items,omitempty"`
	Left  *Constraint  `yaml:"left,omitempty"`
	Right *Constraint  `yaml:"right,omitempty"`
}

// TypedArg is the YAML-decodable mirror of ast.TypedArg.
type TypedArg struct {
	Name       string     `yaml:"name"`
	Constraint Constraint `yaml:"constraint"`
}

// Expr is the YAML-decodable mirror of ast.Expr. Kind selects "literal",
// "identifier", "binary", "unary", "call", or "member".
type Expr struct {
	Kind string `yaml:"kind"`

	// literal
	LiteralKind string  `yaml:"literalKind,omitempty"`
	Int         int64   `yaml:"int,omitempty"`
	Float       float64 `yaml:"float,omitempty"`
	Str         string  `yaml:"str,omitempty"`
	Bool        bool    `yaml:"bool,omitempty"`

	// identifier / call / member
	Name string     `yaml:"name,omitempty"`
	Args []ArgValue `yaml:"args,omitempty"`

	// binary / unary
	Op     string `yaml:"op,omitempty"`
	Left   *Expr  `yaml:"left,omitempty"`
	Right  *Expr  `yaml:"right,omitempty"`
	Target *Expr  `yaml:"target,omitempty"`

	// member
	Field string `yaml:"field,omitempty"`
}

// ArgValue is the YAML-decodable mirror of ast.ArgValue.
type ArgValue struct {
	Name  string `yaml:"name,omitempty"`
	Value Expr   `yaml:"value"`
}

// FlowStmt is the YAML-decodable mirror of ast.FlowStmt. Kind selects
// "assign" or "return".
type FlowStmt struct {
	Kind   string `yaml:"kind"`
	Target string `yaml:"target,omitempty"`
	Expr   Expr   `yaml:"expr"`
}

// Unmarshal parses source as a YAML-encoded Program and converts it into
// the ast.Program the resolver and synthesizer consume.
func Unmarshal(source []byte) (*ast.Program, error) {
	var doc Program
	if err := yaml.Unmarshal(source, &doc); err != nil {
		return nil, fmt.Errorf("astyaml: %w", err)
	}
	return doc.toAST()
}

func (p *Program) toAST() (*ast.Program, error) {
	out := &ast.Program{File: p.File}
	for _, d := range p.Declarations {
		decl, err := d.toAST()
		if err != nil {
			return nil, err
		}
		out.Declarations = append(out.Declarations, decl)
	}
	return out, nil
}

func (d *Decl) toAST() (ast.Declaration, error) {
	switch d.Kind {
	case "import":
		return &ast.ImportDecl{Path: d.Path}, nil
	case "type":
		var parent ast.Constraint
		if d.ParentConstraint != nil {
			var err error
			parent, err = d.ParentConstraint.toAST()
			if err != nil {
				return nil, err
			}
		}
		return &ast.TypeDecl{
			Name:             d.Name,
			ParentConstraint: parent,
			Properties:       d.Properties,
			Components:       d.Components,
			Structure:        d.Structure,
		}, nil
	case "behavior":
		args, err := typedArgs(d.Args)
		if err != nil {
			return nil, err
		}
		ret, err := requireConstraint(d.ReturnType, "behavior "+d.Name)
		if err != nil {
			return nil, err
		}
		return &ast.BehaviorDecl{Name: d.Name, Args: args, ReturnType: ret}, nil
	case "function":
		params, err := typedArgs(d.Args)
		if err != nil {
			return nil, err
		}
		ret, err := requireConstraint(d.ReturnType, "function "+d.Name)
		if err != nil {
			return nil, err
		}
		return &ast.FuncDecl{Name: d.Name, Params: params, ReturnType: ret}, nil
	case "flow":
		body := make([]ast.FlowStmt, 0, len(d.Body))
		for _, s := range d.Body {
			stmt, err := s.toAST()
			if err != nil {
				return nil, err
			}
			body = append(body, stmt)
		}
		return &ast.FlowDecl{Name: d.Name, Body: body}, nil
	default:
		return nil, fmt.Errorf("astyaml: unknown declaration kind %q", d.Kind)
	}
}

func requireConstraint(c *Constraint, what string) (ast.Constraint, error) {
	if c == nil {
		return nil, fmt.Errorf("astyaml: %s missing returns", what)
	}
	return c.toAST()
}

func typedArgs(in []TypedArg) ([]ast.TypedArg, error) {
	out := make([]ast.TypedArg, 0, len(in))
	for _, a := range in {
		c, err := a.Constraint.toAST()
		if err != nil {
			return nil, err
		}
		out = append(out, ast.TypedArg{Name: a.Name, Constraint: c})
	}
	return out, nil
}

func (c *Constraint) toAST() (ast.Constraint, error) {
	switch c.Kind {
	case "atom":
		return ast.AtomConstraint{Name: c.Name}, nil
	case "addition":
		items, err := constraints(c.Items)
		if err != nil {
			return nil, err
		}
		return ast.Addition{Items: items}, nil
	case "union":
		items, err := constraints(c.Items)
		if err != nil {
			return nil, err
		}
		return ast.Union{Items: items}, nil
	case "subtraction":
		if c.Left == nil || c.Right == nil {
			return nil, fmt.Errorf("astyaml: subtraction requires left and right")
		}
		left, err := c.Left.toAST()
		if err != nil {
			return nil, err
		}
		right, err := c.Right.toAST()
		if err != nil {
			return nil, err
		}
		return ast.Subtraction{Left: left, Right: right}, nil
	case "none", "":
		return ast.NoneConstraint{}, nil
	default:
		return nil, fmt.Errorf("astyaml: unknown constraint kind %q", c.Kind)
	}
}

func constraints(in []Constraint) ([]ast.Constraint, error) {
	out := make([]ast.Constraint, 0, len(in))
	for i := range in {
		c, err := in[i].toAST()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

var binaryOps = map[string]ast.Op{
	"add": ast.OpAdd, "sub": ast.OpSub, "mul": ast.OpMul, "div": ast.OpDiv,
	"eq": ast.OpEq, "neq": ast.OpNeq, "lt": ast.OpLt, "gt": ast.OpGt,
	"and": ast.OpAnd, "or": ast.OpOr,
}

func (e *Expr) toAST() (ast.Expr, error) {
	switch e.Kind {
	case "literal":
		switch e.LiteralKind {
		case "int":
			return &ast.Literal{Kind: ast.IntLiteral, Int: e.Int}, nil
		case "float":
			return &ast.Literal{Kind: ast.FloatLiteral, Float: e.Float}, nil
		case "string":
			return &ast.Literal{Kind: ast.StringLiteral, Str: e.Str}, nil
		case "bool":
			return &ast.Literal{Kind: ast.BoolLiteral, Bool: e.Bool}, nil
		default:
			return nil, fmt.Errorf("astyaml: unknown literal kind %q", e.LiteralKind)
		}
	case "identifier":
		return &ast.Identifier{Name: e.Name}, nil
	case "binary":
		op, ok := binaryOps[e.Op]
		if !ok {
			return nil, fmt.Errorf("astyaml: unknown binary op %q", e.Op)
		}
		if e.Left == nil || e.Right == nil {
			return nil, fmt.Errorf("astyaml: binary expr requires left and right")
		}
		left, err := e.Left.toAST()
		if err != nil {
			return nil, err
		}
		right, err := e.Right.toAST()
		if err != nil {
			return nil, err
		}
		return &ast.BinaryOp{Op: op, Left: left, Right: right}, nil
	case "unary":
		op, ok := binaryOps[e.Op]
		if !ok {
			return nil, fmt.Errorf("astyaml: unknown unary op %q", e.Op)
		}
		if e.Target == nil {
			return nil, fmt.Errorf("astyaml: unary expr requires target")
		}
		target, err := e.Target.toAST()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: op, Target: target}, nil
	case "call":
		args := make([]ast.ArgValue, 0, len(e.Args))
		for _, a := range e.Args {
			v, err := a.Value.toAST()
			if err != nil {
				return nil, err
			}
			args = append(args, ast.ArgValue{Name: a.Name, Value: v})
		}
		return &ast.Call{Name: e.Name, Args: args}, nil
	case "member":
		if e.Target == nil {
			return nil, fmt.Errorf("astyaml: member expr requires target")
		}
		target, err := e.Target.toAST()
		if err != nil {
			return nil, err
		}
		return &ast.MemberAccess{Target: target, Field: e.Field}, nil
	default:
		return nil, fmt.Errorf("astyaml: unknown expr kind %q", e.Kind)
	}
}

func (s *FlowStmt) toAST() (ast.FlowStmt, error) {
	expr, err := s.Expr.toAST()
	if err != nil {
		return nil, err
	}
	switch s.Kind {
	case "assign":
		return &ast.FlowAssignment{Target: s.Target, Expr: expr}, nil
	case "return":
		return &ast.FlowReturn{Expr: expr}, nil
	default:
		return nil, fmt.Errorf("astyaml: unknown flow statement kind %q", s.Kind)
	}
}
