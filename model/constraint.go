package model

import "fmt"

// Relation is the kind of a Constraint. Inequalities are always stored in
// the "expression >= 0" (or "> 0") direction.
type Relation int

const (
	Equality Relation = iota
	NonStrictInequality
	StrictInequality
)

func (r Relation) String() string {
	switch r {
	case Equality:
		return "="
	case NonStrictInequality:
		return ">="
	case StrictInequality:
		return ">"
	}
	return fmt.Sprintf("Relation(%d)", int(r))
}

// Constraint is "expr rel 0".
type Constraint struct {
	expr LinearExpression
	rel  Relation
}

// NewConstraint builds "expr rel 0".
func NewConstraint(expr LinearExpression, rel Relation) Constraint {
	return Constraint{expr: expr, rel: rel}
}

// GreaterOrEqual is a >= b.
func GreaterOrEqual(a, b LinearExpression) Constraint {
	return Constraint{expr: a.Sub(b), rel: NonStrictInequality}
}

// LessOrEqual is a <= b.
func LessOrEqual(a, b LinearExpression) Constraint {
	return Constraint{expr: b.Sub(a), rel: NonStrictInequality}
}

// Equal is a = b.
func Equal(a, b LinearExpression) Constraint {
	return Constraint{expr: a.Sub(b), rel: Equality}
}

// Greater is a > b.
func Greater(a, b LinearExpression) Constraint {
	return Constraint{expr: a.Sub(b), rel: StrictInequality}
}

// Less is a < b.
func Less(a, b LinearExpression) Constraint {
	return Constraint{expr: b.Sub(a), rel: StrictInequality}
}

func (c Constraint) Relation() Relation { return c.rel }

func (c Constraint) Expression() LinearExpression { return c.expr }

func (c Constraint) SpaceDimension() int { return c.expr.SpaceDimension() }

func (c Constraint) IsEquality() bool { return c.rel == Equality }

func (c Constraint) IsInequality() bool { return c.rel != Equality }

func (c Constraint) IsStrictInequality() bool { return c.rel == StrictInequality }

// IsTautological reports whether the constraint holds at every point.
func (c Constraint) IsTautological() bool {
	if !c.expr.AllHomogeneousTermsAreZero() {
		return false
	}
	k := c.expr.Constant().Sign()
	switch c.rel {
	case Equality:
		return k == 0
	case NonStrictInequality:
		return k >= 0
	default:
		return k > 0
	}
}

// IsInconsistent reports whether the constraint holds at no point.
func (c Constraint) IsInconsistent() bool {
	if !c.expr.AllHomogeneousTermsAreZero() {
		return false
	}
	return !c.IsTautological()
}

// SatisfiedBy reports whether g satisfies the constraint.
func (c Constraint) SatisfiedBy(g Generator) bool {
	s := c.expr.Evaluate(g).Sign()
	switch c.rel {
	case Equality:
		return s == 0
	case NonStrictInequality:
		return s >= 0
	default:
		return s > 0
	}
}

func (c Constraint) String() string {
	return fmt.Sprintf("%s %s 0", c.expr, c.rel)
}
