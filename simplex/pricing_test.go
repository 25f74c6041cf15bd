package simplex

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"q.log/mip/row"
)

// pricingProblem builds a bare tableau: rows[i][j] is the entry of column j+1
// and cost[j] the working cost of column j+1.
func pricingProblem(cost []*big.Rat, rows [][]*big.Rat) *Problem {
	n := len(cost) + 1
	p := &Problem{workingCost: row.New(row.DenseKind, n)}
	for j, c := range cost {
		p.workingCost.Set(j+1, c)
	}
	for _, entries := range rows {
		r := row.New(row.SparseKind, n)
		for j, v := range entries {
			r.Set(j+1, v)
		}
		p.tableau = append(p.tableau, r)
	}
	return p
}

// rationalSteepestEdge is the textbook argmax of cost_j^2 / (1 + sum_i a_ij^2)
// over improving columns, lowest index on ties.
func rationalSteepestEdge(p *Problem) int {
	entering := 0
	var best big.Rat
	for _, j := range p.improvingColumns() {
		norm := big.NewRat(1, 1)
		for _, r := range p.tableau {
			a := r.Get(j)
			norm.Add(norm, new(big.Rat).Mul(a, a))
		}
		c := p.workingCost.Get(j)
		w := new(big.Rat).Mul(c, c)
		w.Quo(w, norm)
		if entering == 0 || w.Cmp(&best) > 0 {
			best.Set(w)
			entering = j
		}
	}
	return entering
}

func TestSteepestEdgeExact(t *testing.T) {
	r := big.NewRat
	for _, tt := range []struct {
		name string
		cost []*big.Rat
		rows [][]*big.Rat
		want int
	}{
		{
			name: "optimal",
			cost: []*big.Rat{r(-1, 2), r(0, 1)},
			rows: [][]*big.Rat{{r(1, 3), r(2, 1)}},
			want: 0,
		},
		{
			name: "fractional entries",
			cost: []*big.Rat{r(1, 1), r(1, 2), r(3, 1)},
			rows: [][]*big.Rat{
				{r(1, 3), r(0, 1), r(2, 5)},
				{r(1, 2), r(1, 4), r(-7, 3)},
			},
			want: 3,
		},
		{
			name: "short edge beats larger cost",
			cost: []*big.Rat{r(5, 1), r(1, 1)},
			rows: [][]*big.Rat{
				{r(10, 1), r(0, 1)},
				{r(-10, 1), r(1, 7)},
			},
			want: 2,
		},
		{
			name: "ties go to the lowest column",
			cost: []*big.Rat{r(0, 1), r(2, 3), r(2, 3)},
			rows: [][]*big.Rat{{r(0, 1), r(1, 6), r(-1, 6)}},
			want: 2,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			p := pricingProblem(tt.cost, tt.rows)
			assert.Equal(t, tt.want, p.steepestEdgeExactEnteringIndex())
			assert.Equal(t, rationalSteepestEdge(p), p.steepestEdgeExactEnteringIndex())
		})
	}
}

func TestSteepestEdgeExactMatchesRationalWeights(t *testing.T) {
	rnd := rand.New(rand.NewSource(5))
	entry := func() *big.Rat {
		if rnd.Intn(3) == 0 {
			return new(big.Rat)
		}
		return big.NewRat(rnd.Int63n(21)-10, rnd.Int63n(12)+1)
	}
	for n := 0; n < 200; n++ {
		cols, rows := rnd.Intn(6)+1, rnd.Intn(5)+1
		cost := make([]*big.Rat, cols)
		for j := range cost {
			cost[j] = entry()
		}
		entries := make([][]*big.Rat, rows)
		for i := range entries {
			entries[i] = make([]*big.Rat, cols)
			for j := range entries[i] {
				entries[i][j] = entry()
			}
		}
		p := pricingProblem(cost, entries)
		assert.Equal(t, rationalSteepestEdge(p), p.steepestEdgeExactEnteringIndex(), "instance %d", n)
	}
}
