// Package model holds the values a MIP problem is stated with: linear
// expressions, constraints, points and variable sets. All arithmetic is exact.
package model

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/mat"
)

// Matrix returns a float approximation of the constraint system as a
// len(cs) x (dim+1) matrix: one row per constraint, variable coefficients
// first and the inhomogeneous term in the last column.
func Matrix(dim int, cs []Constraint) *mat.Dense {
	if len(cs) == 0 {
		return nil
	}
	m := mat.NewDense(len(cs), dim+1, nil)
	for r, c := range cs {
		for col := range dim {
			f, _ := c.expr.Coefficient(col).Float64()
			m.Set(r, col, f)
		}
		f, _ := c.expr.Constant().Float64()
		m.Set(r, dim, f)
	}
	return m
}

// PrintConstraints writes the approximate constraint matrix and the relation
// of every row.
func PrintConstraints(w io.Writer, dim int, cs []Constraint) {
	m := Matrix(dim, cs)
	if m == nil {
		fmt.Fprintln(w, "A = []")
		return
	}
	caux := mat.Formatted(m, mat.Prefix("    "), mat.Squeeze())
	fmt.Fprintf(w, "A = %v\n", caux)
	rels := make([]string, len(cs))
	for i, c := range cs {
		rels[i] = c.rel.String()
	}
	fmt.Fprintf(w, "rel = %v\n", rels)
}

// PrintObjective writes the approximate objective coefficients.
func PrintObjective(w io.Writer, dim int, obj LinearExpression) {
	c := mat.NewVecDense(dim+1, nil)
	for i := range dim {
		f, _ := obj.Coefficient(i).Float64()
		c.SetVec(i, f)
	}
	f, _ := obj.Constant().Float64()
	c.SetVec(dim, f)
	caux := mat.Formatted(c.T(), mat.Prefix("    "), mat.Squeeze())
	fmt.Fprintf(w, "c = %v\n", caux)
}
