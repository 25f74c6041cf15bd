package simplex

import (
	"math/big"

	"q.log/mip/model"
)

// computeGenerator reads the current vertex off the tableau: a variable is
// the value of its positive column minus that of its negative column, a
// column being worth the rhs of the row it is basic in and zero otherwise.
func (p *Problem) computeGenerator() model.Generator {
	basic := p.basicRows()
	value := func(col int) *big.Rat {
		if i := basic[col]; i >= 0 {
			return p.tableau[i].Get(0)
		}
		return new(big.Rat)
	}
	values := make([]*big.Rat, p.externalSpaceDim)
	for k := range values {
		v := new(big.Rat)
		if k < p.internalSpaceDim {
			pair := p.mapping[k]
			v.Set(value(pair.pos))
			if pair.neg != 0 {
				v.Sub(v, value(pair.neg))
			}
		}
		values[k] = v
	}
	return model.PointFromValues(values)
}
