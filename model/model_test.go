package model

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearExpression(t *testing.T) {
	e := Expr(1, -2, 0).Plus(3)
	assert.Equal(t, 3, e.SpaceDimension())
	assert.Equal(t, []int{0, 1}, e.NonZeros())
	assert.Equal(t, "x0 - 2*x1 + 3", e.String())
	assert.False(t, e.AllHomogeneousTermsAreZero())

	assert.Equal(t, "-x0 + 2*x1 - 3", e.Neg().String())
	assert.Equal(t, "1/2*x0 - x1 + 3/2", e.Times(big.NewRat(1, 2)).String())
	assert.Equal(t, "x0 - 2*x1 + x3 + 3", e.Add(Var(3)).String())
	assert.Equal(t, "-2*x1 + 3", e.Sub(Var(0)).String())
	assert.Equal(t, "0", LinearExpression{}.String())
	assert.Equal(t, "-7/3", Const(big.NewRat(-7, 3)).String())
	assert.True(t, ConstInt(4).AllHomogeneousTermsAreZero())

	// Accessors return copies.
	e.Coefficient(0).SetInt64(10)
	e.Constant().SetInt64(10)
	assert.Equal(t, "x0 - 2*x1 + 3", e.String())
	assert.Equal(t, "0", e.Coefficient(7).RatString())
}

func TestNewLinearExpressionCopies(t *testing.T) {
	c := big.NewRat(2, 1)
	e := NewLinearExpression([]*big.Rat{c, nil}, c)
	c.SetInt64(5)
	assert.Equal(t, "2*x0 + 2", e.String())
}

func TestEvaluate(t *testing.T) {
	g, err := NewPoint([]*big.Int{big.NewInt(1), big.NewInt(3)}, big.NewInt(2))
	require.NoError(t, err)
	// 1/2 - 2*3/2 + 3
	assert.Equal(t, "1/2", Expr(1, -2).Plus(3).Evaluate(g).RatString())
	// Variables beyond the point count as zero.
	assert.Equal(t, "1/2", Expr(1, 0, 5).Evaluate(g).RatString())
	assert.Equal(t, "0", LinearExpression{}.Evaluate(Origin(2)).RatString())
}

func TestConstraint(t *testing.T) {
	for _, tt := range []struct {
		name         string
		c            Constraint
		str          string
		equality     bool
		strict       bool
		tautological bool
		inconsistent bool
	}{
		{name: "ge", c: GreaterOrEqual(Expr(1, 1), ConstInt(2)), str: "x0 + x1 - 2 >= 0"},
		{name: "le", c: LessOrEqual(Var(1), ConstInt(2)), str: "-x1 + 2 >= 0"},
		{name: "eq", c: Equal(Var(0), Var(1)), str: "x0 - x1 = 0", equality: true},
		{name: "gt", c: Greater(Var(0), ConstInt(0)), str: "x0 > 0", strict: true},
		{name: "lt", c: Less(Var(0), ConstInt(1)), str: "-x0 + 1 > 0", strict: true},
		{name: "true ge", c: GreaterOrEqual(ConstInt(0), ConstInt(0)), str: "0 >= 0", tautological: true},
		{name: "false ge", c: GreaterOrEqual(ConstInt(-1), ConstInt(0)), str: "-1 >= 0", inconsistent: true},
		{name: "false gt", c: Greater(ConstInt(0), ConstInt(0)), str: "0 > 0", strict: true, inconsistent: true},
		{name: "true eq", c: Equal(ConstInt(3), ConstInt(3)), str: "0 = 0", equality: true, tautological: true},
		{name: "false eq", c: Equal(ConstInt(3), ConstInt(1)), str: "2 = 0", equality: true, inconsistent: true},
		{name: "cancelled", c: Equal(Var(0), Var(0)), str: "0 = 0", equality: true, tautological: true},
	} {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.str, tt.c.String())
			assert.Equal(t, tt.equality, tt.c.IsEquality())
			assert.Equal(t, !tt.equality, tt.c.IsInequality())
			assert.Equal(t, tt.strict, tt.c.IsStrictInequality())
			assert.Equal(t, tt.tautological, tt.c.IsTautological())
			assert.Equal(t, tt.inconsistent, tt.c.IsInconsistent())
		})
	}
}

func TestSatisfiedBy(t *testing.T) {
	g := PointFromValues([]*big.Rat{big.NewRat(1, 2), big.NewRat(3, 2)})
	assert.True(t, GreaterOrEqual(Expr(1, 1), ConstInt(2)).SatisfiedBy(g))
	assert.False(t, Greater(Expr(1, 1), ConstInt(2)).SatisfiedBy(g))
	assert.True(t, Equal(Expr(3, -1), ConstInt(0)).SatisfiedBy(g))
	assert.False(t, LessOrEqual(Var(1), ConstInt(1)).SatisfiedBy(g))
}

func TestGenerator(t *testing.T) {
	g, err := NewPoint([]*big.Int{big.NewInt(-4), big.NewInt(6), big.NewInt(0)}, big.NewInt(-8))
	require.NoError(t, err)
	assert.Equal(t, "p((2, -3, 0)/4)", g.String())
	assert.Equal(t, "4", g.Divisor().String())
	assert.Equal(t, "-3", g.Coefficient(1).String())
	assert.Equal(t, "1/2", g.Value(0).RatString())
	assert.Equal(t, "0", g.Value(9).RatString())

	_, err = NewPoint([]*big.Int{big.NewInt(1)}, big.NewInt(0))
	assert.Error(t, err)

	h := PointFromValues([]*big.Rat{big.NewRat(1, 2), big.NewRat(-2, 3), big.NewRat(4, 1)})
	assert.Equal(t, "p((3, -4, 24)/6)", h.String())
	vs := h.Values()
	require.Len(t, vs, 3)
	assert.Equal(t, "-2/3", vs[1].RatString())

	wider := h.AddSpaceDimensions(2)
	assert.Equal(t, 5, wider.SpaceDimension())
	assert.Equal(t, "p((3, -4, 24, 0, 0)/6)", wider.String())

	assert.Equal(t, "p(()/1)", Generator{}.String())
	assert.Equal(t, "p((0, 0)/1)", Origin(2).String())
}

func TestVariablesSet(t *testing.T) {
	s := NewVariablesSet(3, 1)
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Insert(0))
	assert.False(t, s.Insert(3))
	assert.True(t, s.Contains(1))
	assert.False(t, s.Contains(2))
	assert.Equal(t, []int{0, 1, 3}, s.Slice())
	assert.Equal(t, 4, s.SpaceDimension())
	assert.Equal(t, "{x0, x1, x3}", s.String())

	c := s.Clone()
	c.Insert(7)
	assert.False(t, s.Contains(7))

	var empty VariablesSet
	assert.True(t, empty.Empty())
	assert.Equal(t, 0, empty.SpaceDimension())
	assert.True(t, empty.Insert(2))
	assert.Equal(t, []int{2}, empty.Slice())
}

func TestMatrix(t *testing.T) {
	cs := []Constraint{
		LessOrEqual(Expr(1, 2), ConstInt(4)),
		Equal(Var(1), NewLinearExpression(nil, big.NewRat(1, 2))),
	}
	m := Matrix(2, cs)
	require.NotNil(t, m)
	r, c := m.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, []float64{-1, -2, 4}, m.RawRowView(0))
	assert.Equal(t, []float64{0, 1, -0.5}, m.RawRowView(1))
	assert.Nil(t, Matrix(2, nil))

	var buf bytes.Buffer
	PrintConstraints(&buf, 2, cs)
	assert.Contains(t, buf.String(), "rel = [>= =]")
	buf.Reset()
	PrintConstraints(&buf, 2, nil)
	assert.Equal(t, "A = []\n", buf.String())
	buf.Reset()
	PrintObjective(&buf, 2, Expr(3, 1))
	assert.Contains(t, buf.String(), "c = ")
}
