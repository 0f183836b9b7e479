package ast

import "strings"

// Constraint is a tree of atoms combined by the Addition (intersection),
// Union (alternation) and Subtraction operators. See internal/constraintalg
// for the normalized-set representation and subsumption check built on top
// of this tree.
type Constraint interface {
	constraintNode()
	String() string
}

// AtomConstraint is a single named atom: a Type ("Series") or a Variable
// ("'a", conventionally prefixed with a leading apostrophe).
type AtomConstraint struct {
	Name string
}

func (AtomConstraint) constraintNode() {}
func (a AtomConstraint) String() string { return a.Name }

// IsVariable reports whether this atom names a type variable rather than a
// declared type, by convention of the leading sigil.
func (a AtomConstraint) IsVariable() bool {
	return strings.HasPrefix(a.Name, "'")
}

// Addition is the intersection of its operands: "A B" means "A and B".
type Addition struct {
	Items []Constraint
}

func (Addition) constraintNode() {}
func (a Addition) String() string {
	parts := make([]string, len(a.Items))
	for i, it := range a.Items {
		parts[i] = it.String()
	}
	return strings.Join(parts, " ")
}

// Union is the alternation of its operands: "A | B" means "A or B".
type Union struct {
	Items []Constraint
}

func (Union) constraintNode() {}
func (u Union) String() string {
	parts := make([]string, len(u.Items))
	for i, it := range u.Items {
		parts[i] = it.String()
	}
	return "(" + strings.Join(parts, " | ") + ")"
}

// Subtraction removes any chain matching Right from the expansion of Left.
// Left-associative with a single right-hand side by construction.
type Subtraction struct {
	Left  Constraint
	Right Constraint
}

func (Subtraction) constraintNode() {}
func (s Subtraction) String() string {
	return s.Left.String() + " - " + s.Right.String()
}

// NoneConstraint is the explicit empty (unsatisfiable) constraint.
type NoneConstraint struct{}

func (NoneConstraint) constraintNode() {}
func (NoneConstraint) String() string  { return "<none>" }
