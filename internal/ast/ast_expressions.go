package ast

// Expr is one expression node.
type Expr interface {
	Node
	exprNode()
}

// LiteralKind distinguishes the kinds of literal value an Expr can carry.
type LiteralKind int

const (
	IntLiteral LiteralKind = iota
	FloatLiteral
	StringLiteral
	BoolLiteral
)

// Literal is a constant value appearing directly in source.
type Literal struct {
	Position Position
	Kind     LiteralKind
	Int      int64
	Float    float64
	Str      string
	Bool     bool
}

func (e *Literal) Pos() Position { return e.Position }
func (*Literal) exprNode()       {}

// Identifier references a variable, type, or flow by name.
type Identifier struct {
	Position Position
	Name     string
}

func (e *Identifier) Pos() Position { return e.Position }
func (*Identifier) exprNode()       {}

// Op enumerates the binary operators that desugar into behavior calls
// (spec §4.4 "BinaryOp").
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpEq
	OpNeq
	OpLt
	OpGt
	OpAnd
	OpOr
)

// BehaviorName returns the behavior call name a binary operator desugars to,
// and ok=false for operators with no such behavior (e.g. comparisons).
func (o Op) BehaviorName() (string, bool) {
	switch o {
	case OpAdd:
		return "add", true
	case OpSub:
		return "subtract", true
	case OpMul:
		return "multiply", true
	case OpDiv:
		return "divide", true
	default:
		return "", false
	}
}

// BinaryOp is syntactic sugar for a call to the corresponding behavior name.
type BinaryOp struct {
	Position Position
	Op       Op
	Left     Expr
	Right    Expr
}

func (e *BinaryOp) Pos() Position { return e.Position }
func (*BinaryOp) exprNode()       {}

// UnaryOp applies a unary operator to a single operand.
type UnaryOp struct {
	Position Position
	Op       Op
	Target   Expr
}

func (e *UnaryOp) Pos() Position { return e.Position }
func (*UnaryOp) exprNode()       {}

// Call invokes a behavior, function, or zero-arity flow by name.
type Call struct {
	Position Position
	Name     string
	Args     []ArgValue
}

func (e *Call) Pos() Position { return e.Position }
func (*Call) exprNode()       {}

// MemberAccess reads a field off the value of Target. Carried for AST
// completeness (spec §3); the synthesizer does not evaluate it, since
// comet's data model has no record/struct universes.
type MemberAccess struct {
	Position Position
	Target   Expr
	Field    string
}

func (e *MemberAccess) Pos() Position { return e.Position }
func (*MemberAccess) exprNode()       {}
