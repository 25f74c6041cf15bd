// Package instance reads and writes problem files.
package instance

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"q.log/mip/model"
	"q.log/mip/simplex"
)

// Description is a problem as found in a file, before any solver state
// exists.
type Description struct {
	Name      string
	Dimension int
	// Names optionally labels every variable.
	Names       []string
	Mode        simplex.Mode
	Objective   model.LinearExpression
	Integers    model.VariablesSet
	Constraints []model.Constraint
}

// Problem builds a solver problem from the description. The options are
// applied after the integer variables are set.
func (d *Description) Problem(options ...simplex.Option) (*simplex.Problem, error) {
	if len(d.Names) != 0 && len(d.Names) != d.Dimension {
		return nil, errors.Errorf("%d variable names for dimension %d", len(d.Names), d.Dimension)
	}
	options = append([]simplex.Option{simplex.WithIntegerVariables(d.Integers)}, options...)
	p, err := simplex.NewProblem(d.Dimension, d.Constraints, d.Objective, d.Mode, options...)
	if err != nil {
		return nil, errors.Wrapf(err, "building problem %q", d.Name)
	}
	return p, nil
}

// VariableName returns the name of variable i, x<i> when unnamed.
func (d *Description) VariableName(i int) string {
	if i < len(d.Names) && d.Names[i] != "" {
		return d.Names[i]
	}
	return fmt.Sprintf("x%d", i)
}

// WritePoint prints one "name = value" line per coordinate of g.
func (d *Description) WritePoint(w io.Writer, g model.Generator) {
	width := 0
	for i := range g.SpaceDimension() {
		if n := len(d.VariableName(i)); n > width {
			width = n
		}
	}
	for i, v := range g.Values() {
		name := d.VariableName(i)
		fmt.Fprintf(w, "%s%s = %s\n", name, strings.Repeat(" ", width-len(name)), v.RatString())
	}
}
