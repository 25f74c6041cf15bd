package simplex

import (
	"math/big"

	"github.com/sirupsen/logrus"

	"q.log/mip/row"
)

// isLPSatisfiable decides feasibility of the linear relaxation, leaving a
// feasible tableau without artificial variables on success.
func (p *Problem) isLPSatisfiable() bool {
	switch p.status {
	case Unsatisfiable:
		return false
	case Satisfiable, Unbounded, Optimized:
		return true
	}
	if !p.processPendingConstraints() {
		return false
	}
	if p.hasArtificials() && !p.firstPhase() {
		p.status = Unsatisfiable
		return false
	}
	p.lastGenerator = p.computeGenerator()
	p.status = Satisfiable
	return true
}

// installCost sets the working cost to the function written by set and
// eliminates it on the basic columns.
func (p *Problem) installCost(set func(cost row.Row)) {
	n := p.numColumns()
	cost := row.New(p.rowKind, n)
	set(cost)
	var c big.Rat
	for i, b := range p.base {
		if a := cost.Get(b); a.Sign() != 0 {
			c.Neg(a)
			cost.LinearCombine(p.tableau[i], one, &c, 0, n)
		}
	}
	p.workingCost = cost
}

// firstPhase maximizes minus the sum of the artificial variables. It reports
// whether that sum reached zero, in which case the artificial variables are
// erased.
func (p *Problem) firstPhase() bool {
	p.installCost(func(cost row.Row) {
		for j, a := range p.artificial {
			if a {
				cost.Set(j, minusOne)
			}
		}
	})
	if !p.computeSimplex(PhaseOne) {
		panic("feasibility phase is bounded by zero")
	}
	if p.workingCost.Get(0).Sign() != 0 {
		p.log.WithField("infeasibility", p.workingCost.Get(0).RatString()).Debug("relaxation is unsatisfiable")
		return false
	}
	p.eraseArtificials()
	return true
}

// eraseArtificials drives the artificial variables out of the base, drops
// the rows that turn out redundant and removes the artificial columns.
func (p *Problem) eraseArtificials() {
	var redundant []int
	for i := range p.tableau {
		if !p.artificial[p.base[i]] {
			continue
		}
		entering := 0
		p.tableau[i].ForEachNonZero(func(j int, _ *big.Rat) {
			if entering == 0 && j > 0 && !p.artificial[j] {
				entering = j
			}
		})
		if entering == 0 {
			redundant = append(redundant, i)
			continue
		}
		// The artificial variable is zero, so this pivot is degenerate.
		p.pivot(entering, i)
		p.tracer.Pivot(PhaseCleanup, entering, i)
	}
	p.removeRows(redundant)
	p.removeColumns(p.artificial)
	p.log.WithFields(logrus.Fields{
		"redundant": len(redundant),
		"rows":      len(p.tableau),
		"columns":   p.numColumns(),
	}).Debug("erased artificial variables")
}

// secondPhase optimizes the objective from the current feasible tableau and
// records the final vertex.
func (p *Problem) secondPhase() {
	p.addVariables(p.objective.SpaceDimension(), nil)
	p.installCost(func(cost row.Row) {
		var c big.Rat
		for _, k := range p.objective.NonZeros() {
			c.Set(p.objective.Coefficient(k))
			if p.mode == Minimization {
				c.Neg(&c)
			}
			pair := p.mapping[k]
			cost.Set(pair.pos, &c)
			if pair.neg != 0 {
				cost.Set(pair.neg, c.Neg(&c))
			}
		}
	})
	if p.computeSimplex(PhaseTwo) {
		p.status = Optimized
	} else {
		p.status = Unbounded
	}
	p.lastGenerator = p.computeGenerator()
}
