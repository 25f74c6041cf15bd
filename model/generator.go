package model

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

// Generator is a point: integer coefficients over a common positive divisor.
// The zero value is the origin of the 0-dimensional space.
type Generator struct {
	coeffs  []*big.Int
	divisor *big.Int
}

// NewPoint builds the point coeffs/divisor, reduced so that the divisor is
// positive and shares no factor with all the coefficients.
func NewPoint(coeffs []*big.Int, divisor *big.Int) (Generator, error) {
	if divisor == nil || divisor.Sign() == 0 {
		return Generator{}, errors.New("point divisor must be non-zero")
	}
	g := Generator{coeffs: make([]*big.Int, len(coeffs)), divisor: new(big.Int).Set(divisor)}
	for i, c := range coeffs {
		g.coeffs[i] = new(big.Int)
		if c != nil {
			g.coeffs[i].Set(c)
		}
	}
	g.normalize()
	return g, nil
}

// PointFromValues puts the given rational coordinates over their least
// common denominator.
func PointFromValues(values []*big.Rat) Generator {
	den := big.NewInt(1)
	var gcd big.Int
	for _, v := range values {
		d := v.Denom()
		gcd.GCD(nil, nil, den, d)
		den.Mul(den, d)
		den.Quo(den, &gcd)
	}
	g := Generator{coeffs: make([]*big.Int, len(values)), divisor: den}
	for i, v := range values {
		c := new(big.Int).Mul(v.Num(), den)
		g.coeffs[i] = c.Quo(c, v.Denom())
	}
	return g
}

// Origin is the point with every coordinate zero.
func Origin(dim int) Generator {
	return PointFromValues(make([]*big.Rat, 0)).AddSpaceDimensions(dim)
}

func (g *Generator) normalize() {
	if g.divisor.Sign() < 0 {
		g.divisor.Neg(g.divisor)
		for _, c := range g.coeffs {
			c.Neg(c)
		}
	}
	gcd := new(big.Int).Set(g.divisor)
	for _, c := range g.coeffs {
		if c.Sign() != 0 {
			gcd.GCD(nil, nil, gcd, new(big.Int).Abs(c))
		}
	}
	if gcd.Cmp(big.NewInt(1)) == 0 {
		return
	}
	g.divisor.Quo(g.divisor, gcd)
	for _, c := range g.coeffs {
		c.Quo(c, gcd)
	}
}

func (g Generator) SpaceDimension() int { return len(g.coeffs) }

// Coefficient returns a copy of the numerator of coordinate i.
func (g Generator) Coefficient(i int) *big.Int {
	if i < 0 || i >= len(g.coeffs) {
		return new(big.Int)
	}
	return new(big.Int).Set(g.coeffs[i])
}

// Divisor returns a copy of the common divisor.
func (g Generator) Divisor() *big.Int {
	if g.divisor == nil {
		return big.NewInt(1)
	}
	return new(big.Int).Set(g.divisor)
}

// Value returns coordinate i as a rational.
func (g Generator) Value(i int) *big.Rat {
	if i < 0 || i >= len(g.coeffs) {
		return new(big.Rat)
	}
	return new(big.Rat).SetFrac(g.coeffs[i], g.Divisor())
}

// Values returns every coordinate as a rational.
func (g Generator) Values() []*big.Rat {
	vs := make([]*big.Rat, len(g.coeffs))
	for i := range g.coeffs {
		vs[i] = g.Value(i)
	}
	return vs
}

// AddSpaceDimensions embeds the point in a space with n more dimensions,
// the new coordinates being zero.
func (g Generator) AddSpaceDimensions(n int) Generator {
	out := Generator{coeffs: make([]*big.Int, len(g.coeffs)+n), divisor: g.Divisor()}
	for i := range out.coeffs {
		out.coeffs[i] = g.Coefficient(i)
	}
	return out
}

func (g Generator) String() string {
	vs := make([]string, len(g.coeffs))
	for i := range g.coeffs {
		vs[i] = g.coeffs[i].String()
	}
	return fmt.Sprintf("p((%s)/%s)", strings.Join(vs, ", "), g.Divisor())
}
