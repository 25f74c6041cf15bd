package simplex

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"q.log/mip/model"
	"q.log/mip/row"
)

type Option func(p *Problem) error

// WithIntegerVariables constrains the given variables to integer values.
func WithIntegerVariables(vars model.VariablesSet) Option {
	return func(p *Problem) error {
		_, err := p.insertIntegerVariables(vars)
		return err
	}
}

func WithPricing(pricing ControlParameter) Option {
	return func(p *Problem) error {
		p.pricing = pricing
		return nil
	}
}

// WithRowKind selects the row storage of the tableau.
func WithRowKind(kind row.Kind) Option {
	return func(p *Problem) error {
		p.rowKind = kind
		return nil
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(p *Problem) error {
		p.log = log
		return nil
	}
}

func WithTracer(t Tracer) Option {
	return func(p *Problem) error {
		p.tracer = t
		return nil
	}
}

func WithBranching(policy BranchingPolicy) Option {
	return func(p *Problem) error {
		p.branching = policy
		return nil
	}
}

// WithBranchWorkers lets branch-and-bound explore up to n nodes at once.
// n = 1 is the sequential depth-first search.
func WithBranchWorkers(n int) Option {
	return func(p *Problem) error {
		if n < 1 {
			return errors.Wrapf(ErrInvalidArgument, "branch workers must be positive, got %d", n)
		}
		p.workers = n
		return nil
	}
}

var defaults = []Option{
	func(p *Problem) error {
		if p.log == nil {
			l := logrus.New()
			l.SetOutput(io.Discard)
			p.log = l
		}
		return nil
	},
	func(p *Problem) error {
		if p.tracer == nil {
			p.tracer = DefaultTracer{}
		}
		return nil
	},
	func(p *Problem) error {
		if p.workers == 0 {
			p.workers = 1
		}
		return nil
	},
}
