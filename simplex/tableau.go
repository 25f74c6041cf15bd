package simplex

import (
	"math/big"
	"sort"

	"github.com/sirupsen/logrus"

	"q.log/mip/model"
	"q.log/mip/row"
)

var (
	one      = big.NewRat(1, 1)
	minusOne = big.NewRat(-1, 1)
)

func (p *Problem) numColumns() int {
	if p.workingCost == nil {
		return 0
	}
	return p.workingCost.Size()
}

func (p *Problem) ensureInitialized() {
	if p.initialized {
		return
	}
	p.workingCost = row.New(p.rowKind, 1)
	p.artificial = []bool{false}
	p.initialized = true
}

// addColumns appends n zero columns and returns the index of the first.
func (p *Problem) addColumns(n int, artificial bool) int {
	first := p.numColumns()
	size := first + n
	for _, r := range p.tableau {
		r.Resize(size)
	}
	p.workingCost.Resize(size)
	for range n {
		p.artificial = append(p.artificial, artificial)
	}
	return first
}

// removeColumns drops every column j with drop[j] and renumbers the rest.
// Basic columns must not be dropped.
func (p *Problem) removeColumns(drop []bool) {
	n := p.numColumns()
	index := make([]int, n)
	k := 0
	for j := range n {
		if drop[j] {
			index[j] = -1
			continue
		}
		index[j] = k
		k++
	}
	if k == n {
		return
	}
	for i, r := range p.tableau {
		p.tableau[i] = row.Project(r, k, index)
	}
	p.workingCost = row.Project(p.workingCost, k, index)
	for i, b := range p.base {
		if index[b] < 0 {
			panic("removing a basic column")
		}
		p.base[i] = index[b]
	}
	for v, pair := range p.mapping {
		p.mapping[v].pos = index[pair.pos]
		if pair.neg != 0 {
			p.mapping[v].neg = index[pair.neg]
		}
	}
	artificial := make([]bool, 0, k)
	for j, a := range p.artificial {
		if index[j] >= 0 {
			artificial = append(artificial, a)
		}
	}
	p.artificial = artificial
}

func (p *Problem) removeRows(rows []int) {
	if len(rows) == 0 {
		return
	}
	drop := make(map[int]bool, len(rows))
	for _, i := range rows {
		drop[i] = true
	}
	tableau := p.tableau[:0]
	base := p.base[:0]
	for i := range p.tableau {
		if drop[i] {
			continue
		}
		tableau = append(tableau, p.tableau[i])
		base = append(base, p.base[i])
	}
	p.tableau = tableau
	p.base = base
}

func (p *Problem) hasArtificials() bool {
	for _, a := range p.artificial {
		if a {
			return true
		}
	}
	return false
}

// basicRows maps every column to the row it is basic in, or -1.
func (p *Problem) basicRows() []int {
	rows := make([]int, p.numColumns())
	for j := range rows {
		rows[j] = -1
	}
	for i, b := range p.base {
		rows[b] = i
	}
	return rows
}

// addVariables gives columns to the variables up to dim. Variables in
// nonneg get a single column, the others a positive and a negative part.
func (p *Problem) addVariables(dim int, nonneg map[int]bool) {
	if dim <= p.internalSpaceDim {
		return
	}
	n := 0
	for v := p.internalSpaceDim; v < dim; v++ {
		if nonneg[v] {
			n++
		} else {
			n += 2
		}
	}
	col := p.addColumns(n, false)
	for v := p.internalSpaceDim; v < dim; v++ {
		if nonneg[v] {
			p.mapping = append(p.mapping, columnPair{pos: col})
			col++
			continue
		}
		p.mapping = append(p.mapping, columnPair{pos: col, neg: col + 1})
		col += 2
	}
	p.internalSpaceDim = dim
}

// nonNegativeVariable reports the variable c proves non-negative, if c
// bounds a single variable from below by a non-negative value.
func nonNegativeVariable(c model.Constraint) (int, bool) {
	expr := c.Expression()
	nz := expr.NonZeros()
	if len(nz) != 1 {
		return 0, false
	}
	a := expr.Coefficient(nz[0]).Sign()
	b := expr.Constant().Sign()
	if c.IsEquality() {
		return nz[0], a*b <= 0
	}
	return nz[0], a > 0 && b <= 0
}

// processPendingConstraints incorporates the constraints added since the
// last call into the tableau. It returns false, leaving the problem
// Unsatisfiable, when a pending constraint is trivially false.
func (p *Problem) processPendingConstraints() bool {
	p.ensureInitialized()
	dim := p.internalSpaceDim
	if d := p.objective.SpaceDimension(); d > dim {
		dim = d
	}
	nonneg := make(map[int]bool)
	var rows []model.Constraint
	for _, c := range p.constraints[p.firstPending:] {
		if c.IsInconsistent() {
			p.log.WithField("constraint", c).Debug("trivially false constraint")
			p.status = Unsatisfiable
			return false
		}
		if c.IsTautological() {
			continue
		}
		if d := c.SpaceDimension(); d > dim {
			dim = d
		}
		if v, ok := nonNegativeVariable(c); ok {
			nonneg[v] = true
			// x_v >= 0 is carried by the sign of the column alone.
			if c.IsInequality() && c.Expression().Constant().Sign() == 0 {
				continue
			}
		}
		rows = append(rows, c)
	}
	p.firstPending = len(p.constraints)

	merge := make([]int, 0, len(nonneg))
	for v := range nonneg {
		if v < p.internalSpaceDim && p.mapping[v].neg != 0 {
			merge = append(merge, v)
		}
	}
	sort.Ints(merge)
	for _, v := range merge {
		p.mergeSplitVariable(v)
	}
	p.addVariables(dim, nonneg)
	p.addRows(rows)
	return true
}

type rowKind int

const (
	slackRow rowKind = iota
	violatedRow
	equalityRow
)

// addRows appends one tableau row per constraint, expressed on the current
// non-basic columns. A row gets a basic slack when the current vertex
// satisfies it and a basic artificial variable otherwise.
func (p *Problem) addRows(cs []model.Constraint) {
	if len(cs) == 0 {
		return
	}
	n := p.numColumns()
	rows := make([]row.Row, len(cs))
	kinds := make([]rowKind, len(cs))
	slacks, artificials := 0, 0
	var tmp big.Rat
	for k, c := range cs {
		e := row.New(p.rowKind, n)
		expr := c.Expression()
		for _, v := range expr.NonZeros() {
			a := expr.Coefficient(v)
			pair := p.mapping[v]
			e.Set(pair.pos, a)
			if pair.neg != 0 {
				e.Set(pair.neg, tmp.Neg(a))
			}
		}
		e.Set(0, tmp.Neg(expr.Constant()))
		for i, b := range p.base {
			if a := e.Get(b); a.Sign() != 0 {
				tmp.Neg(a)
				e.LinearCombine(p.tableau[i], one, &tmp, 0, n)
			}
		}
		// e[0] is now minus the value of the constraint at the current vertex.
		switch {
		case c.IsEquality():
			kinds[k] = equalityRow
			artificials++
		case e.Get(0).Sign() <= 0:
			kinds[k] = slackRow
			slacks++
		default:
			kinds[k] = violatedRow
			slacks++
			artificials++
		}
		rows[k] = e
	}

	slack := p.addColumns(slacks, false)
	artificial := p.addColumns(artificials, true)
	size := p.numColumns()
	for k, e := range rows {
		e.Resize(size)
		switch kinds[k] {
		case slackRow:
			e.Set(slack, minusOne)
			e.Scale(minusOne)
			p.base = append(p.base, slack)
			slack++
		case violatedRow:
			e.Set(slack, minusOne)
			e.Set(artificial, one)
			p.base = append(p.base, artificial)
			slack++
			artificial++
		case equalityRow:
			if e.Get(0).Sign() < 0 {
				e.Scale(minusOne)
			}
			e.Set(artificial, one)
			p.base = append(p.base, artificial)
			artificial++
		}
		p.tableau = append(p.tableau, e)
	}
	p.log.WithFields(logrus.Fields{
		"rows":        len(cs),
		"slacks":      slacks,
		"artificials": artificials,
		"columns":     size,
	}).Debug("incorporated pending constraints")
}
