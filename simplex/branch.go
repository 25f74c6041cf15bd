package simplex

import (
	"math/big"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"q.log/mip/model"
)

// incumbent is the best integer-feasible point found so far. It is shared by
// every node of one search and guarded by mu.
type incumbent struct {
	mu    sync.Mutex
	mode  Mode
	found bool
	// value is meaningless for points found on unbounded relaxations.
	value big.Rat
	point model.Generator
	// stopOnFirst ends the search as soon as a point is found.
	stopOnFirst bool
}

// improvedBy reports whether a relaxation worth v may still beat the incumbent.
func (c *incumbent) improvedBy(v *big.Rat) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.found || c.mode.better(v.Cmp(&c.value))
}

// offer records g, worth v, if it beats the incumbent. A nil v stands for a
// point of an unbounded relaxation and only wins when nothing was found yet.
func (c *incumbent) offer(v *big.Rat, g model.Generator) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.found && (v == nil || !c.mode.better(v.Cmp(&c.value))) {
		return false
	}
	c.found = true
	if v != nil {
		c.value.Set(v)
	}
	c.point = g
	return true
}

func (c *incumbent) done() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopOnFirst && c.found
}

func (c *incumbent) stopAtFirst() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopOnFirst = true
}

// relaxIntegrality empties the integer variable set until the returned
// function is called.
func (p *Problem) relaxIntegrality() (restore func()) {
	saved := p.integerVars
	p.integerVars = model.NewVariablesSet()
	return func() {
		p.integerVars = saved
	}
}

type brancher struct {
	ints    []int
	policy  BranchingPolicy
	cell    *incumbent
	workers int
	group   *errgroup.Group
	log     logrus.FieldLogger
	tracer  Tracer

	// rootUnbounded is written before any node runs concurrently.
	rootUnbounded bool
}

func (p *Problem) newBrancher(ints []int, cell *incumbent) *brancher {
	return &brancher{
		ints:    ints,
		policy:  p.branching,
		cell:    cell,
		workers: p.workers,
		log:     p.log,
		tracer:  p.tracer,
	}
}

func (b *brancher) run(root *Problem) {
	if b.workers > 1 {
		b.group = &errgroup.Group{}
		b.group.SetLimit(b.workers - 1)
	}
	b.explore(root, 0)
	if b.group != nil {
		_ = b.group.Wait()
	}
}

func (b *brancher) spawn(node *Problem, depth int) {
	if b.group != nil && b.group.TryGo(func() error {
		b.explore(node, depth)
		return nil
	}) {
		return
	}
	b.explore(node, depth)
}

// explore solves the relaxation at node and either prunes it, records an
// integral vertex or branches on a fractional integer variable.
func (b *brancher) explore(node *Problem, depth int) {
	if b.cell.done() {
		return
	}
	log := b.log.WithField("depth", depth)
	if !node.isLPSatisfiable() {
		log.Debug("relaxation unsatisfiable")
		b.tracer.Node(depth, NodeInfeasible)
		return
	}
	node.secondPhase()

	var value *big.Rat
	if node.status == Unbounded {
		if depth == 0 {
			// An unbounded problem with one integer point is unbounded.
			b.rootUnbounded = true
			b.cell.stopAtFirst()
		}
	} else {
		value = node.objective.Evaluate(node.lastGenerator)
		if !b.cell.improvedBy(value) {
			log.WithField("bound", value.RatString()).Debug("pruned")
			b.tracer.Node(depth, NodePruned)
			return
		}
	}

	v, f, ok := b.chooseBranchingVariable(node.lastGenerator)
	if !ok {
		if b.cell.offer(value, node.lastGenerator) {
			log.WithField("point", node.lastGenerator).Debug("new incumbent")
		}
		b.tracer.Node(depth, NodeIntegral)
		return
	}
	b.tracer.Node(depth, NodeBranched)

	floor := new(big.Int).Div(f.Num(), f.Denom())
	ceil := new(big.Int).Add(floor, big.NewInt(1))
	log.WithFields(logrus.Fields{"var": v, "value": f.RatString()}).Debug("branching")

	below := node.inherit()
	below.addBranchConstraint(model.LessOrEqual(model.Var(v), model.Const(new(big.Rat).SetInt(floor))))
	above := node.inherit()
	above.addBranchConstraint(model.GreaterOrEqual(model.Var(v), model.Const(new(big.Rat).SetInt(ceil))))
	b.spawn(below, depth+1)
	b.spawn(above, depth+1)
}

func (p *Problem) addBranchConstraint(c model.Constraint) {
	if err := p.AddConstraint(c); err != nil {
		panic(err)
	}
}

// chooseBranchingVariable returns an integer variable whose value in g is
// fractional, with that value.
func (b *brancher) chooseBranchingVariable(g model.Generator) (int, *big.Rat, bool) {
	chosen := -1
	var value, dist big.Rat
	half := big.NewRat(1, 2)
	for _, v := range b.ints {
		x := g.Value(v)
		if x.IsInt() {
			continue
		}
		if b.policy == BranchFirstFractional {
			return v, x, true
		}
		// |frac(x) - 1/2|
		floor := new(big.Int).Div(x.Num(), x.Denom())
		d := new(big.Rat).Sub(x, new(big.Rat).SetInt(floor))
		d.Sub(d, half)
		d.Abs(d)
		if chosen < 0 || d.Cmp(&dist) < 0 {
			chosen = v
			value.Set(x)
			dist.Set(d)
		}
	}
	if chosen < 0 {
		return 0, nil, false
	}
	return chosen, &value, true
}

// solveMIP runs branch-and-bound from this problem's relaxation.
func (p *Problem) solveMIP() {
	ints := p.integerVars.Slice()
	restore := p.relaxIntegrality()
	defer restore()

	cell := &incumbent{mode: p.mode}
	b := p.newBrancher(ints, cell)
	b.run(p)
	switch {
	case !cell.found:
		p.status = Unsatisfiable
	case b.rootUnbounded:
		p.status = Unbounded
		p.lastGenerator = cell.point
	default:
		p.status = Optimized
		p.lastGenerator = cell.point
	}
}

// isMIPSatisfiable searches for any integer-feasible point.
func (p *Problem) isMIPSatisfiable() bool {
	ints := p.integerVars.Slice()
	restore := p.relaxIntegrality()
	defer restore()

	if !p.isLPSatisfiable() {
		return false
	}
	root := p.inherit()
	root.objective = model.LinearExpression{}
	cell := &incumbent{mode: p.mode, stopOnFirst: true}
	p.newBrancher(ints, cell).run(root)
	if !cell.found {
		p.status = Unsatisfiable
		return false
	}
	p.lastGenerator = cell.point
	p.status = Satisfiable
	return true
}
