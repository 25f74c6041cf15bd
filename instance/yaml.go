package instance

import (
	"io"
	"math/big"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"q.log/mip/model"
	"q.log/mip/simplex"
)

// rational is an exact number written as an integer, a decimal or a
// fraction such as "-3/4".
type rational struct {
	big.Rat
}

func (r *rational) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	if _, ok := r.SetString(s); !ok {
		return errors.Errorf("invalid rational %q", s)
	}
	return nil
}

func (r rational) MarshalYAML() (interface{}, error) {
	return r.RatString(), nil
}

type expression struct {
	Coefficients []rational `yaml:"coefficients,flow"`
	Constant     rational   `yaml:"constant"`
}

type constraint struct {
	Coefficients []rational `yaml:"coefficients,flow"`
	Constant     rational   `yaml:"constant"`
	Relation     string     `yaml:"relation"`
}

// document is the YAML layout of a problem. Every constraint reads
// "coefficients . x + constant relation 0".
type document struct {
	Name        string       `yaml:"name,omitempty"`
	Dimension   int          `yaml:"dimension"`
	Names       []string     `yaml:"names,omitempty,flow"`
	Mode        string       `yaml:"mode,omitempty"`
	Objective   expression   `yaml:"objective"`
	Integers    []int        `yaml:"integers,omitempty,flow"`
	Constraints []constraint `yaml:"constraints"`
}

func toExpression(coeffs []rational, constant rational) model.LinearExpression {
	cs := make([]*big.Rat, len(coeffs))
	for i := range coeffs {
		cs[i] = &coeffs[i].Rat
	}
	return model.NewLinearExpression(cs, &constant.Rat)
}

func fromExpression(e model.LinearExpression) ([]rational, rational) {
	coeffs := make([]rational, e.SpaceDimension())
	for i := range coeffs {
		coeffs[i].Set(e.Coefficient(i))
	}
	var constant rational
	constant.Set(e.Constant())
	return coeffs, constant
}

func toConstraint(c constraint) (model.Constraint, error) {
	e := toExpression(c.Coefficients, c.Constant)
	switch c.Relation {
	case ">=":
		return model.NewConstraint(e, model.NonStrictInequality), nil
	case "<=":
		return model.NewConstraint(e.Neg(), model.NonStrictInequality), nil
	case "=", "==":
		return model.NewConstraint(e, model.Equality), nil
	case ">":
		return model.NewConstraint(e, model.StrictInequality), nil
	case "<":
		return model.NewConstraint(e.Neg(), model.StrictInequality), nil
	}
	return model.Constraint{}, errors.Errorf("unknown relation %q", c.Relation)
}

func fromConstraint(c model.Constraint) constraint {
	coeffs, constant := fromExpression(c.Expression())
	relation := ">="
	switch c.Relation() {
	case model.Equality:
		relation = "="
	case model.StrictInequality:
		relation = ">"
	}
	return constraint{Coefficients: coeffs, Constant: constant, Relation: relation}
}

// ReadYAML decodes a problem document. Unknown fields are rejected.
func ReadYAML(r io.Reader) (*Description, error) {
	dec := yaml.NewDecoder(r)
	dec.SetStrict(true)
	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "decoding problem")
	}
	if doc.Dimension < 0 {
		return nil, errors.Errorf("negative dimension %d", doc.Dimension)
	}

	d := &Description{
		Name:      doc.Name,
		Dimension: doc.Dimension,
		Names:     doc.Names,
		Objective: toExpression(doc.Objective.Coefficients, doc.Objective.Constant),
		Integers:  model.NewVariablesSet(doc.Integers...),
	}
	if doc.Mode != "" {
		mode, err := simplex.ParseMode(doc.Mode)
		if err != nil {
			return nil, err
		}
		d.Mode = mode
	}
	for i, c := range doc.Constraints {
		con, err := toConstraint(c)
		if err != nil {
			return nil, errors.Wrapf(err, "constraint %d", i)
		}
		d.Constraints = append(d.Constraints, con)
	}
	return d, nil
}

// ReadYAMLFile reads the problem document at path.
func ReadYAMLFile(path string) (*Description, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening problem")
	}
	defer f.Close()
	d, err := ReadYAML(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return d, nil
}

// WriteYAML encodes d in the format ReadYAML accepts.
func WriteYAML(w io.Writer, d *Description) error {
	doc := document{
		Name:      d.Name,
		Dimension: d.Dimension,
		Names:     d.Names,
		Mode:      "maximize",
		Integers:  d.Integers.Slice(),
	}
	if d.Mode == simplex.Minimization {
		doc.Mode = "minimize"
	}
	doc.Objective.Coefficients, doc.Objective.Constant = fromExpression(d.Objective)
	for _, c := range d.Constraints {
		doc.Constraints = append(doc.Constraints, fromConstraint(c))
	}
	out, err := yaml.Marshal(&doc)
	if err != nil {
		return errors.Wrap(err, "encoding problem")
	}
	_, err = w.Write(out)
	return err
}
