package model

import (
	"fmt"
	"math/big"
	"strings"
)

// LinearExpression is sum_i coeffs[i]*x_i + constant. Values are immutable:
// every constructor and operation returns a fresh expression.
type LinearExpression struct {
	coeffs   []*big.Rat
	constant *big.Rat
}

// NewLinearExpression copies coeffs and constant. A nil constant is zero.
func NewLinearExpression(coeffs []*big.Rat, constant *big.Rat) LinearExpression {
	e := LinearExpression{
		coeffs:   make([]*big.Rat, len(coeffs)),
		constant: new(big.Rat),
	}
	for i, c := range coeffs {
		e.coeffs[i] = new(big.Rat)
		if c != nil {
			e.coeffs[i].Set(c)
		}
	}
	if constant != nil {
		e.constant.Set(constant)
	}
	return e
}

// Expr builds sum_i coeffs[i]*x_i. Use Plus to add a constant.
func Expr(coeffs ...int64) LinearExpression {
	rs := make([]*big.Rat, len(coeffs))
	for i, c := range coeffs {
		rs[i] = big.NewRat(c, 1)
	}
	return NewLinearExpression(rs, nil)
}

// Var is the expression 1*x_i.
func Var(i int) LinearExpression {
	rs := make([]*big.Rat, i+1)
	rs[i] = big.NewRat(1, 1)
	return NewLinearExpression(rs, nil)
}

// Const is the expression c with no variables.
func Const(c *big.Rat) LinearExpression {
	return NewLinearExpression(nil, c)
}

// ConstInt is the expression c with no variables.
func ConstInt(c int64) LinearExpression {
	return Const(big.NewRat(c, 1))
}

// SpaceDimension is the number of variables the expression is defined on.
func (e LinearExpression) SpaceDimension() int {
	return len(e.coeffs)
}

// Coefficient returns a copy of the coefficient of x_i, zero beyond the space dimension.
func (e LinearExpression) Coefficient(i int) *big.Rat {
	if i < 0 || i >= len(e.coeffs) {
		return new(big.Rat)
	}
	return new(big.Rat).Set(e.coeffs[i])
}

// Constant returns a copy of the inhomogeneous term.
func (e LinearExpression) Constant() *big.Rat {
	if e.constant == nil {
		return new(big.Rat)
	}
	return new(big.Rat).Set(e.constant)
}

// AllHomogeneousTermsAreZero reports whether every variable coefficient is zero.
func (e LinearExpression) AllHomogeneousTermsAreZero() bool {
	for _, c := range e.coeffs {
		if c.Sign() != 0 {
			return false
		}
	}
	return true
}

// NonZeros returns the indices of the non-zero coefficients.
func (e LinearExpression) NonZeros() []int {
	var idx []int
	for i, c := range e.coeffs {
		if c.Sign() != 0 {
			idx = append(idx, i)
		}
	}
	return idx
}

func (e LinearExpression) combine(o LinearExpression, sign int64) LinearExpression {
	n := len(e.coeffs)
	if len(o.coeffs) > n {
		n = len(o.coeffs)
	}
	s := big.NewRat(sign, 1)
	rs := make([]*big.Rat, n)
	for i := range n {
		rs[i] = e.Coefficient(i)
		rs[i].Add(rs[i], new(big.Rat).Mul(o.Coefficient(i), s))
	}
	c := e.Constant()
	c.Add(c, new(big.Rat).Mul(o.Constant(), s))
	return LinearExpression{coeffs: rs, constant: c}
}

func (e LinearExpression) Add(o LinearExpression) LinearExpression { return e.combine(o, 1) }

func (e LinearExpression) Sub(o LinearExpression) LinearExpression { return e.combine(o, -1) }

// Plus adds a constant.
func (e LinearExpression) Plus(c int64) LinearExpression { return e.Add(ConstInt(c)) }

// Times multiplies the whole expression by k.
func (e LinearExpression) Times(k *big.Rat) LinearExpression {
	rs := make([]*big.Rat, len(e.coeffs))
	for i := range e.coeffs {
		rs[i] = new(big.Rat).Mul(e.coeffs[i], k)
	}
	return LinearExpression{coeffs: rs, constant: new(big.Rat).Mul(e.Constant(), k)}
}

func (e LinearExpression) Neg() LinearExpression { return e.Times(big.NewRat(-1, 1)) }

// Evaluate returns the value of the expression at g. Variables beyond the
// space dimension of g count as zero.
func (e LinearExpression) Evaluate(g Generator) *big.Rat {
	v := e.Constant()
	var tmp big.Rat
	for i, c := range e.coeffs {
		if c.Sign() == 0 {
			continue
		}
		tmp.Mul(c, g.Value(i))
		v.Add(v, &tmp)
	}
	return v
}

func (e LinearExpression) String() string {
	var b strings.Builder
	for i, c := range e.coeffs {
		if c.Sign() == 0 {
			continue
		}
		switch {
		case b.Len() == 0 && c.Sign() < 0:
			b.WriteString("-")
		case b.Len() > 0 && c.Sign() < 0:
			b.WriteString(" - ")
		case b.Len() > 0:
			b.WriteString(" + ")
		}
		a := new(big.Rat).Abs(c)
		if a.Cmp(big.NewRat(1, 1)) != 0 {
			b.WriteString(a.RatString())
			b.WriteString("*")
		}
		fmt.Fprintf(&b, "x%d", i)
	}
	k := e.Constant()
	switch {
	case b.Len() == 0:
		b.WriteString(k.RatString())
	case k.Sign() > 0:
		b.WriteString(" + " + k.RatString())
	case k.Sign() < 0:
		b.WriteString(" - " + new(big.Rat).Abs(k).RatString())
	}
	return b.String()
}
