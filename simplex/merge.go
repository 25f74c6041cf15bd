package simplex

// mergeSplitVariable drops the negative-part column of variable v, which a
// constraint has proved non-negative.
//
// The negative column is always the opposite of the positive one, so the
// positive column alone represents v afterwards. When the negative part was
// basic its row loses its basic variable: at value zero the positive part
// takes over, otherwise the row is infeasible for a non-negative v and gets
// an artificial variable for the feasibility phase to drive out.
func (p *Problem) mergeSplitVariable(v int) {
	pair := p.mapping[v]
	for i, b := range p.base {
		if b != pair.neg {
			continue
		}
		r := p.tableau[i]
		if r.Get(0).Sign() == 0 {
			r.Scale(minusOne)
			p.base[i] = pair.pos
		} else {
			a := p.addColumns(1, true)
			r.Set(a, one)
			p.base[i] = a
		}
		break
	}
	drop := make([]bool, p.numColumns())
	drop[pair.neg] = true
	p.mapping[v].neg = 0
	p.removeColumns(drop)
	p.log.WithField("var", v).Debug("merged split variable")
}
