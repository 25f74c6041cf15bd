package simplex

import (
	"github.com/pkg/errors"
)

// OK checks the internal invariants of the problem and returns the first
// violation found.
func (p *Problem) OK() error {
	if p.inherited > len(p.constraints) {
		return errors.Errorf("%d inherited constraints out of %d", p.inherited, len(p.constraints))
	}
	if p.firstPending > len(p.constraints) {
		return errors.Errorf("first pending constraint %d out of %d", p.firstPending, len(p.constraints))
	}
	if p.internalSpaceDim > p.externalSpaceDim {
		return errors.Errorf("internal space dimension %d exceeds %d", p.internalSpaceDim, p.externalSpaceDim)
	}
	if len(p.mapping) != p.internalSpaceDim {
		return errors.Errorf("%d mapped variables, internal space dimension %d", len(p.mapping), p.internalSpaceDim)
	}
	if len(p.base) != len(p.tableau) {
		return errors.Errorf("%d base entries for %d rows", len(p.base), len(p.tableau))
	}
	if p.lastGenerator.SpaceDimension() != p.externalSpaceDim {
		return errors.Errorf("last point has space dimension %d, problem has %d",
			p.lastGenerator.SpaceDimension(), p.externalSpaceDim)
	}
	if !p.initialized {
		if len(p.tableau) != 0 {
			return errors.New("tableau rows before initialization")
		}
		return nil
	}

	n := p.numColumns()
	if len(p.artificial) != n {
		return errors.Errorf("%d artificial flags for %d columns", len(p.artificial), n)
	}
	seen := make(map[int]bool, len(p.base))
	for i, b := range p.base {
		r := p.tableau[i]
		if r.Size() != n {
			return errors.Errorf("row %d has %d columns, expected %d", i, r.Size(), n)
		}
		if b <= 0 || b >= n {
			return errors.Errorf("row %d has basic column %d out of range", i, b)
		}
		if seen[b] {
			return errors.Errorf("column %d is basic twice", b)
		}
		seen[b] = true
		if r.Get(b).Cmp(one) != 0 {
			return errors.Errorf("row %d has %s on its basic column %d", i, r.Get(b).RatString(), b)
		}
		if r.Get(0).Sign() < 0 {
			return errors.Errorf("row %d has negative rhs %s", i, r.Get(0).RatString())
		}
		for k, o := range p.tableau {
			if k != i && o.Get(b).Sign() != 0 {
				return errors.Errorf("basic column %d of row %d is non-zero in row %d", b, i, k)
			}
		}
		if p.workingCost.Get(b).Sign() != 0 {
			return errors.Errorf("basic column %d has cost %s", b, p.workingCost.Get(b).RatString())
		}
	}
	for v, pair := range p.mapping {
		if pair.pos <= 0 || pair.pos >= n {
			return errors.Errorf("variable %d has column %d out of range", v, pair.pos)
		}
		if pair.neg < 0 || pair.neg >= n || pair.neg == pair.pos {
			return errors.Errorf("variable %d has negative column %d", v, pair.neg)
		}
		if p.artificial[pair.pos] || (pair.neg != 0 && p.artificial[pair.neg]) {
			return errors.Errorf("variable %d is mapped to an artificial column", v)
		}
	}
	return nil
}
