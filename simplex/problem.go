// Package simplex decides satisfiability and optimality of mixed integer
// linear problems with exact rational arithmetic: a revised simplex tableau
// driven in two phases, lifted to integer variables by branch-and-bound.
package simplex

import (
	"math/big"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"q.log/mip/model"
	"q.log/mip/row"
)

// columnPair records the tableau columns of one variable. A variable with
// neg == 0 is known non-negative and lives in pos alone; column 0 holds the
// right-hand sides so it is never a variable column.
type columnPair struct {
	pos, neg int
}

// Problem is a mixed integer linear problem:
//
//	optimize objective(x) subject to constraints(x), x_i integer for i in integerVars
//
// Constraints, dimensions and the objective may be changed between solves;
// the tableau built so far is kept and extended.
type Problem struct {
	externalSpaceDim int
	// internalSpaceDim counts the variables that own tableau columns.
	internalSpaceDim int

	// Every row reads sum_j row[j]*y_j = row[0] with row[0] >= 0 and the
	// column base[i] basic in row i.
	tableau []row.Row
	// workingCost encodes z = -cost[0] + sum_j cost[j]*y_j, the function the
	// current phase maximizes; cost[j] is zero on basic columns.
	workingCost row.Row
	mapping     []columnPair
	base        []int
	// artificial marks the columns of artificial variables.
	artificial []bool

	status      Status
	pricing     ControlParameter
	rowKind     row.Kind
	initialized bool

	// constraints[:inherited] are shared with the node this problem was
	// branched from and are never modified here; appends always copy.
	constraints  []model.Constraint
	inherited    int
	firstPending int

	objective     model.LinearExpression
	mode          Mode
	lastGenerator model.Generator
	integerVars   model.VariablesSet

	branching BranchingPolicy
	workers   int
	log       logrus.FieldLogger
	tracer    Tracer
}

// NewProblem builds a problem over dim variables. Nothing is computed until
// a satisfiability or optimization query is made.
func NewProblem(dim int, cs []model.Constraint, objective model.LinearExpression, mode Mode, options ...Option) (*Problem, error) {
	if dim < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "negative space dimension %d", dim)
	}
	p := &Problem{
		externalSpaceDim: dim,
		status:           PartiallySatisfiable,
		objective:        objective,
		mode:             mode,
		lastGenerator:    model.Origin(dim),
		integerVars:      model.NewVariablesSet(),
	}
	if err := p.checkObjective(objective); err != nil {
		return nil, err
	}
	for i, c := range cs {
		if err := p.checkConstraint(c); err != nil {
			return nil, errors.Wrapf(err, "constraint %d", i)
		}
	}
	p.constraints = append([]model.Constraint(nil), cs...)
	for _, option := range append(append([]Option(nil), options...), defaults...) {
		if err := option(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Problem) checkConstraint(c model.Constraint) error {
	if c.SpaceDimension() > p.externalSpaceDim {
		return errors.Wrapf(ErrDimensionIncompatible,
			"constraint %s has space dimension %d, problem has %d", c, c.SpaceDimension(), p.externalSpaceDim)
	}
	if c.IsStrictInequality() {
		return errors.Wrapf(ErrInvalidArgument, "strict inequality %s", c)
	}
	return nil
}

func (p *Problem) checkObjective(obj model.LinearExpression) error {
	if obj.SpaceDimension() > p.externalSpaceDim {
		return errors.Wrapf(ErrDimensionIncompatible,
			"objective %s has space dimension %d, problem has %d", obj, obj.SpaceDimension(), p.externalSpaceDim)
	}
	return nil
}

func (p *Problem) SpaceDimension() int { return p.externalSpaceDim }

func (p *Problem) Status() Status { return p.status }

func (p *Problem) ObjectiveFunction() model.LinearExpression { return p.objective }

func (p *Problem) OptimizationMode() Mode { return p.mode }

func (p *Problem) ControlParameter() ControlParameter { return p.pricing }

// IntegerSpaceDimensions returns a copy of the integer-constrained variables.
func (p *Problem) IntegerSpaceDimensions() model.VariablesSet { return p.integerVars.Clone() }

// Constraints returns a copy of the constraint list.
func (p *Problem) Constraints() []model.Constraint {
	return append([]model.Constraint(nil), p.constraints...)
}

// AddConstraint appends c. On error the problem is left untouched.
func (p *Problem) AddConstraint(c model.Constraint) error {
	return p.AddConstraints([]model.Constraint{c})
}

// AddConstraints appends cs, all or nothing.
func (p *Problem) AddConstraints(cs []model.Constraint) error {
	for i, c := range cs {
		if err := p.checkConstraint(c); err != nil {
			return errors.Wrapf(err, "constraint %d", i)
		}
	}
	if len(cs) == 0 {
		return nil
	}
	p.constraints = append(p.constraints, cs...)
	if p.status != Unsatisfiable {
		p.status = PartiallySatisfiable
	}
	return nil
}

// AddSpaceDimensionsAndEmbed adds n unconstrained variables.
func (p *Problem) AddSpaceDimensionsAndEmbed(n int) error {
	if n < 0 {
		return errors.Wrapf(ErrInvalidArgument, "cannot add %d space dimensions", n)
	}
	if n == 0 {
		return nil
	}
	p.externalSpaceDim += n
	p.lastGenerator = p.lastGenerator.AddSpaceDimensions(n)
	if p.status != Unsatisfiable {
		p.status = PartiallySatisfiable
	}
	return nil
}

// AddToIntegerSpaceDimensions constrains more variables to integer values.
func (p *Problem) AddToIntegerSpaceDimensions(vars model.VariablesSet) error {
	added, err := p.insertIntegerVariables(vars)
	if err != nil {
		return err
	}
	if added && p.status != Unsatisfiable {
		p.status = PartiallySatisfiable
	}
	return nil
}

func (p *Problem) insertIntegerVariables(vars model.VariablesSet) (bool, error) {
	if d := vars.SpaceDimension(); d > p.externalSpaceDim {
		return false, errors.Wrapf(ErrDimensionIncompatible,
			"integer variable x%d outside a space of dimension %d", d-1, p.externalSpaceDim)
	}
	for _, v := range vars.Slice() {
		if v < 0 {
			return false, errors.Wrapf(ErrInvalidArgument, "negative variable index %d", v)
		}
	}
	added := false
	for _, v := range vars.Slice() {
		if p.integerVars.Insert(v) {
			added = true
		}
	}
	return added, nil
}

func (p *Problem) SetObjectiveFunction(obj model.LinearExpression) error {
	if err := p.checkObjective(obj); err != nil {
		return err
	}
	p.objective = obj
	if p.status == Unbounded || p.status == Optimized {
		p.status = Satisfiable
	}
	return nil
}

func (p *Problem) SetOptimizationMode(mode Mode) {
	if p.mode == mode {
		return
	}
	p.mode = mode
	if p.status == Unbounded || p.status == Optimized {
		p.status = Satisfiable
	}
}

// SetControlParameter selects the pricing strategy of later solves. It never
// changes results, only the pivot path.
func (p *Problem) SetControlParameter(pricing ControlParameter) {
	p.pricing = pricing
}

func (p *Problem) SetBranching(policy BranchingPolicy) { p.branching = policy }

// IsSatisfiable reports whether the problem has a feasible point, integer
// constraints included.
func (p *Problem) IsSatisfiable() bool {
	switch p.status {
	case Unsatisfiable:
		return false
	case Satisfiable, Unbounded, Optimized:
		return true
	}
	if p.integerVars.Empty() {
		return p.isLPSatisfiable()
	}
	return p.isMIPSatisfiable()
}

// Solve optimizes the objective and returns the resulting status:
// Unsatisfiable, Unbounded or Optimized.
func (p *Problem) Solve() Status {
	switch p.status {
	case Unsatisfiable, Unbounded, Optimized:
		return p.status
	}
	if p.integerVars.Empty() {
		if p.isLPSatisfiable() {
			p.secondPhase()
		}
	} else {
		p.solveMIP()
	}
	p.log.WithField("status", p.status).Debug("solved")
	p.tracer.Solved(p.status)
	return p.status
}

// FeasiblePoint returns a point satisfying every constraint.
func (p *Problem) FeasiblePoint() (model.Generator, error) {
	if !p.IsSatisfiable() {
		return model.Generator{}, errors.Wrap(ErrDomain, "problem is not satisfiable")
	}
	return p.lastGenerator, nil
}

// OptimizingPoint returns a point where the objective reaches its optimum.
func (p *Problem) OptimizingPoint() (model.Generator, error) {
	if s := p.Solve(); s != Optimized {
		return model.Generator{}, errors.Wrapf(ErrDomain, "problem is %s, not optimized", s)
	}
	return p.lastGenerator, nil
}

// OptimalValue returns the optimum of the objective as a reduced fraction.
func (p *Problem) OptimalValue() (num, den *big.Int, err error) {
	g, err := p.OptimizingPoint()
	if err != nil {
		return nil, nil, err
	}
	return p.EvaluateObjectiveFunction(g)
}

// EvaluateObjectiveFunction returns the objective at g as a reduced fraction.
func (p *Problem) EvaluateObjectiveFunction(g model.Generator) (num, den *big.Int, err error) {
	if g.SpaceDimension() > p.externalSpaceDim {
		return nil, nil, errors.Wrapf(ErrDimensionIncompatible,
			"point of space dimension %d, problem has %d", g.SpaceDimension(), p.externalSpaceDim)
	}
	v := p.objective.Evaluate(g)
	return new(big.Int).Set(v.Num()), new(big.Int).Set(v.Denom()), nil
}

// Clone returns an independent deep copy that owns all its constraints.
func (p *Problem) Clone() *Problem {
	c := p.copyState()
	c.constraints = append([]model.Constraint(nil), p.constraints...)
	c.inherited = 0
	return c
}

// inherit returns a copy sharing p's constraints as a read-only prefix.
func (p *Problem) inherit() *Problem {
	c := p.copyState()
	n := len(p.constraints)
	c.constraints = p.constraints[:n:n]
	c.inherited = n
	return c
}

func (p *Problem) copyState() *Problem {
	c := *p
	c.tableau = make([]row.Row, len(p.tableau))
	for i, r := range p.tableau {
		c.tableau[i] = r.Clone()
	}
	if p.workingCost != nil {
		c.workingCost = p.workingCost.Clone()
	}
	c.mapping = append([]columnPair(nil), p.mapping...)
	c.base = append([]int(nil), p.base...)
	c.artificial = append([]bool(nil), p.artificial...)
	c.integerVars = p.integerVars.Clone()
	return &c
}
