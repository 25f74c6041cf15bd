package simplex

import (
	"math"
	"math/big"

	"gonum.org/v1/gonum/floats"
)

// Entering-variable selection. A column improves the working cost when its
// entry is positive; every strategy returns 0 when none does.

// textbookEnteringIndex picks the lowest improving column.
func (p *Problem) textbookEnteringIndex() int {
	entering := 0
	p.workingCost.ForEachNonZero(func(j int, v *big.Rat) {
		if entering == 0 && j > 0 && v.Sign() > 0 {
			entering = j
		}
	})
	return entering
}

// improvingColumns returns the improving columns in increasing order.
func (p *Problem) improvingColumns() []int {
	var cols []int
	p.workingCost.ForEachNonZero(func(j int, v *big.Rat) {
		if j > 0 && v.Sign() > 0 {
			cols = append(cols, j)
		}
	})
	return cols
}

// steepestEdgeExactEnteringIndex maximizes cost_j / sqrt(1 + sum_i a_ij^2).
// The entries of the candidate columns are scaled to integers by the lcm L
// of their denominators, and the costs by the lcm of theirs, so the squared
// weights cost_j^2 / (L^2 + sum_i (L*a_ij)^2) are compared by integer cross
// multiplication.
func (p *Problem) steepestEdgeExactEnteringIndex() int {
	cols := p.improvingColumns()
	if len(cols) == 0 {
		return 0
	}
	candidate := make([]bool, p.numColumns())
	for _, j := range cols {
		candidate[j] = true
	}
	l := big.NewInt(1)
	for _, r := range p.tableau {
		r.ForEachNonZero(func(j int, v *big.Rat) {
			if j < len(candidate) && candidate[j] {
				lcm(l, v.Denom())
			}
		})
	}
	norms := make([]*big.Int, len(candidate))
	for _, j := range cols {
		norms[j] = new(big.Int).Mul(l, l)
	}
	var a big.Int
	for _, r := range p.tableau {
		r.ForEachNonZero(func(j int, v *big.Rat) {
			if j < len(norms) && norms[j] != nil {
				scaleToInt(&a, l, v)
				norms[j].Add(norms[j], a.Mul(&a, &a))
			}
		})
	}

	lc := big.NewInt(1)
	for _, j := range cols {
		lcm(lc, p.workingCost.Get(j).Denom())
	}
	entering := 0
	var best, bestNorm, c, lhs, rhs big.Int
	for _, j := range cols {
		scaleToInt(&c, lc, p.workingCost.Get(j))
		c.Mul(&c, &c)
		// c/norms[j] > best/bestNorm
		if entering == 0 || lhs.Mul(&c, &bestNorm).Cmp(rhs.Mul(&best, norms[j])) > 0 {
			best.Set(&c)
			bestNorm.Set(norms[j])
			entering = j
		}
	}
	return entering
}

// lcm sets l to the least common multiple of l and d, both positive.
func lcm(l, d *big.Int) {
	if d.IsInt64() && d.Int64() == 1 {
		return
	}
	g := new(big.Int).GCD(nil, nil, l, d)
	l.Mul(l, new(big.Int).Quo(d, g))
}

// scaleToInt sets z to l*v, where l is a multiple of v's denominator.
func scaleToInt(z, l *big.Int, v *big.Rat) {
	z.Mul(l, v.Num())
	z.Quo(z, v.Denom())
}

// steepestEdgeFloatEnteringIndex evaluates the same weights in floating
// point. Only the improving columns are candidates, so optimality is still
// decided exactly.
func (p *Problem) steepestEdgeFloatEnteringIndex() int {
	cols := p.improvingColumns()
	if len(cols) == 0 {
		return 0
	}
	alpha := make([][]float64, p.numColumns())
	for _, j := range cols {
		alpha[j] = make([]float64, len(p.tableau))
	}
	for i, r := range p.tableau {
		r.ForEachNonZero(func(j int, v *big.Rat) {
			if j < len(alpha) && alpha[j] != nil {
				alpha[j][i], _ = v.Float64()
			}
		})
	}
	entering := 0
	best := math.Inf(-1)
	for _, j := range cols {
		c, _ := p.workingCost.Get(j).Float64()
		w := c / math.Sqrt(1+floats.Dot(alpha[j], alpha[j]))
		if w > best {
			best = w
			entering = j
		}
	}
	if entering == 0 {
		// Every weight overflowed to NaN.
		return cols[0]
	}
	return entering
}
