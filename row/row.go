// Package row provides the rows a simplex tableau is made of: fixed-length
// sequences of exact rationals with a linear-combine primitive.
package row

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"
)

// Kind selects the backing storage of a Row.
type Kind int

const (
	DenseKind Kind = iota
	SparseKind
)

func (k Kind) String() string {
	switch k {
	case DenseKind:
		return "dense"
	case SparseKind:
		return "sparse"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "dense":
		return DenseKind, nil
	case "sparse":
		return SparseKind, nil
	}
	return 0, errors.Errorf("unknown row kind %q", s)
}

// Row is a fixed-length sequence of exact rationals.
//
// Values returned by Get are owned by the row and must not be modified.
// Set copies its argument.
type Row interface {
	Kind() Kind
	Size() int
	Get(i int) *big.Rat
	Set(i int, v *big.Rat)
	// Resize grows the row with zeros or truncates it.
	Resize(n int)
	Clone() Row
	// Scale multiplies every entry by c.
	Scale(c *big.Rat)
	// LinearCombine sets row[i] = row[i]*c1 + other[i]*c2 for start <= i < end.
	LinearCombine(other Row, c1, c2 *big.Rat, start, end int)
	// ForEachNonZero calls fn for every non-zero entry in increasing index order.
	ForEachNonZero(fn func(i int, v *big.Rat))
}

// New returns a zero row of the given kind and size.
func New(kind Kind, n int) Row {
	switch kind {
	case SparseKind:
		return NewSparse(n)
	default:
		return NewDense(n)
	}
}

// Project builds a row of size n holding r[i] at position index[i] for every
// i with index[i] >= 0. Entries mapped to -1 are dropped.
func Project(r Row, n int, index []int) Row {
	out := New(r.Kind(), n)
	r.ForEachNonZero(func(i int, v *big.Rat) {
		if j := index[i]; j >= 0 {
			out.Set(j, v)
		}
	})
	return out
}

// Equal reports whether two rows have the same size and entries,
// whatever their backing.
func Equal(a, b Row) bool {
	if a.Size() != b.Size() {
		return false
	}
	for i := range a.Size() {
		if a.Get(i).Cmp(b.Get(i)) != 0 {
			return false
		}
	}
	return true
}

var zero big.Rat

func isOne(c *big.Rat) bool {
	return c.IsInt() && c.Num().IsInt64() && c.Num().Int64() == 1
}
