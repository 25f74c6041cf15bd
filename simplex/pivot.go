package simplex

import (
	"math/big"

	"github.com/sirupsen/logrus"
)

// pivot makes the entering column basic in the exiting row.
func (p *Problem) pivot(entering, exiting int) {
	pr := p.tableau[exiting]
	n := pr.Size()
	pr.Scale(new(big.Rat).Inv(pr.Get(entering)))
	var c big.Rat
	for i, r := range p.tableau {
		if i == exiting {
			continue
		}
		if a := r.Get(entering); a.Sign() != 0 {
			c.Neg(a)
			r.LinearCombine(pr, one, &c, 0, n)
		}
	}
	if a := p.workingCost.Get(entering); a.Sign() != 0 {
		c.Neg(a)
		p.workingCost.LinearCombine(pr, one, &c, 0, n)
	}
	p.base[exiting] = entering
}

// exitingRow runs the ratio test for the entering column: among the rows
// with a positive entry it picks the one minimizing rhs/entry, breaking ties
// on the lowest basic column. It returns -1 when no row bounds the entering
// direction.
func (p *Problem) exitingRow(entering int) int {
	exiting := -1
	var best, ratio big.Rat
	for i, r := range p.tableau {
		a := r.Get(entering)
		if a.Sign() <= 0 {
			continue
		}
		ratio.Quo(r.Get(0), a)
		if exiting < 0 {
			best.Set(&ratio)
			exiting = i
			continue
		}
		if cmp := ratio.Cmp(&best); cmp < 0 || (cmp == 0 && p.base[i] < p.base[exiting]) {
			best.Set(&ratio)
			exiting = i
		}
	}
	return exiting
}

// Steepest-edge pricing may cycle on degenerate vertices: once the objective
// has stalled for more than this many pivots, computeSimplex falls back to
// Bland's rule for the rest of the phase.
var allowedNonIncreasingLoops = 200

// computeSimplex pivots until no column improves the working cost, returning
// true, or an improving column is unbounded, returning false.
func (p *Problem) computeSimplex(phase Phase) bool {
	textbook := p.pricing == PricingTextbook
	stalled := 0
	var previous big.Rat
	previous.Set(p.workingCost.Get(0))
	for iter := 0; ; iter++ {
		var entering int
		switch {
		case textbook:
			entering = p.textbookEnteringIndex()
		case p.pricing == PricingSteepestEdgeExact:
			entering = p.steepestEdgeExactEnteringIndex()
		default:
			entering = p.steepestEdgeFloatEnteringIndex()
		}
		if entering == 0 {
			p.log.WithFields(logrus.Fields{"phase": phase, "pivots": iter}).Debug("optimal")
			return true
		}
		exiting := p.exitingRow(entering)
		if exiting < 0 {
			p.log.WithFields(logrus.Fields{"phase": phase, "pivots": iter, "entering": entering}).Debug("unbounded")
			return false
		}
		p.pivot(entering, exiting)
		p.tracer.Pivot(phase, entering, exiting)
		p.log.WithFields(logrus.Fields{"phase": phase, "entering": entering, "exiting": exiting}).Trace("pivot")

		if textbook {
			continue
		}
		if p.workingCost.Get(0).Cmp(&previous) != 0 {
			previous.Set(p.workingCost.Get(0))
			stalled = 0
			continue
		}
		stalled++
		if stalled > allowedNonIncreasingLoops {
			p.log.WithField("phase", phase).Debug("objective stalled, switching to textbook pricing")
			textbook = true
		}
	}
}
