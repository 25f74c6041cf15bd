// Package mps reads problems in MPS format through GLPK.
package mps

import (
	"math"
	"math/big"
	"runtime"
	"strconv"

	"github.com/lukpank/go-glpk/glpk"
	"github.com/pkg/errors"

	"q.log/mip/instance"
	"q.log/mip/model"
	"q.log/mip/simplex"
)

// Reader reads a mps file to construct a problem description
type Reader struct {
	filename string
	format   glpk.MPSFormat
}

func NewReader(filename string) *Reader {
	return &Reader{
		filename: filename,
		format:   glpk.MPS_FILE,
	}
}

// Fixed switches to the fixed column MPS layout.
func (r *Reader) Fixed() *Reader {
	r.format = glpk.MPS_DECK
	return r
}

// exact turns a GLPK number into the shortest decimal that prints as it,
// so 0.1 reads as 1/10 rather than as its binary approximation.
func exact(v float64) *big.Rat {
	q, _ := new(big.Rat).SetString(strconv.FormatFloat(v, 'g', -1, 64))
	return q
}

func unbounded(v float64) bool {
	return v == -math.MaxFloat64 || v == math.MaxFloat64
}

// Read returns the description of the problem in the file. Rows and column
// bounds become constraints; a column without a lower bound is a free
// variable.
func (r *Reader) Read() (*instance.Description, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	lp := glpk.New()
	defer lp.Delete()
	if err := lp.ReadMPS(r.format, nil, r.filename); err != nil {
		return nil, errors.Wrapf(err, "reading %s", r.filename)
	}

	numCols := lp.NumCols()
	d := &instance.Description{
		Name:      lp.ProbName(),
		Dimension: numCols,
		Names:     make([]string, numCols),
		Integers:  model.NewVariablesSet(),
	}
	if lp.ObjDir() == glpk.MIN {
		d.Mode = simplex.Minimization
	}

	//populate obj function
	obj := make([]*big.Rat, numCols)
	for c := range numCols {
		obj[c] = exact(lp.ObjCoef(c + 1))
		d.Names[c] = lp.ColName(c + 1)
		if kind := lp.ColKind(c + 1); kind == glpk.IV || kind == glpk.BV {
			d.Integers.Insert(c)
		}
	}
	d.Objective = model.NewLinearExpression(obj, exact(lp.ObjCoef(0)))

	//populate constraints
	for i := range lp.NumRows() {
		rowVec := make([]*big.Rat, numCols)
		idxs, row := lp.MatRow(i + 1)
		for k, v := range idxs {
			if v == 0 {
				continue
			}
			rowVec[v-1] = exact(row[k])
		}
		expr := model.NewLinearExpression(rowVec, nil)
		d.Constraints = append(d.Constraints, bounds(expr, lp.RowLB(i+1), lp.RowUB(i+1))...)
	}

	for c := range numCols {
		d.Constraints = append(d.Constraints, bounds(model.Var(c), lp.ColLB(c+1), lp.ColUB(c+1))...)
	}
	return d, nil
}

// bounds returns the constraints lb <= expr <= ub, skipping infinite sides.
func bounds(expr model.LinearExpression, lb, ub float64) []model.Constraint {
	if !unbounded(lb) && lb == ub {
		return []model.Constraint{model.Equal(expr, model.Const(exact(lb)))}
	}
	var cs []model.Constraint
	if !unbounded(lb) {
		cs = append(cs, model.GreaterOrEqual(expr, model.Const(exact(lb))))
	}
	if !unbounded(ub) {
		cs = append(cs, model.LessOrEqual(expr, model.Const(exact(ub))))
	}
	return cs
}
