package simplex

import "github.com/pkg/errors"

var (
	// ErrDimensionIncompatible is returned when a constraint, objective,
	// point or integer variable lives in a larger space than the problem.
	ErrDimensionIncompatible = errors.New("dimension incompatible")
	// ErrInvalidArgument is returned for strict inequalities and other
	// arguments the solver cannot accept.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrDomain is returned when a point or value is requested from a
	// problem that has none.
	ErrDomain = errors.New("domain error")
)
