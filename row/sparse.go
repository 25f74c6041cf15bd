package row

import (
	"math/big"
	"sort"
)

// Sparse stores only the non-zero entries.
type Sparse struct {
	size    int
	entries map[int]*big.Rat
}

func NewSparse(n int) *Sparse {
	return &Sparse{size: n, entries: make(map[int]*big.Rat)}
}

func (s *Sparse) Kind() Kind { return SparseKind }

func (s *Sparse) Size() int { return s.size }

func (s *Sparse) Get(i int) *big.Rat {
	if v, ok := s.entries[i]; ok {
		return v
	}
	return &zero
}

func (s *Sparse) Set(i int, v *big.Rat) {
	if v.Sign() == 0 {
		delete(s.entries, i)
		return
	}
	if e, ok := s.entries[i]; ok {
		e.Set(v)
		return
	}
	s.entries[i] = new(big.Rat).Set(v)
}

func (s *Sparse) Resize(n int) {
	if n < s.size {
		for i := range s.entries {
			if i >= n {
				delete(s.entries, i)
			}
		}
	}
	s.size = n
}

func (s *Sparse) Clone() Row {
	c := NewSparse(s.size)
	for i, v := range s.entries {
		c.entries[i] = new(big.Rat).Set(v)
	}
	return c
}

func (s *Sparse) Scale(c *big.Rat) {
	if c.Sign() == 0 {
		s.entries = make(map[int]*big.Rat)
		return
	}
	for _, v := range s.entries {
		v.Mul(v, c)
	}
}

func (s *Sparse) LinearCombine(other Row, c1, c2 *big.Rat, start, end int) {
	if !isOne(c1) {
		for i, v := range s.entries {
			if i < start || i >= end {
				continue
			}
			v.Mul(v, c1)
			if v.Sign() == 0 {
				delete(s.entries, i)
			}
		}
	}
	if c2.Sign() == 0 {
		return
	}
	var tmp big.Rat
	other.ForEachNonZero(func(i int, o *big.Rat) {
		if i < start || i >= end {
			return
		}
		tmp.Mul(o, c2)
		v, ok := s.entries[i]
		if !ok {
			s.entries[i] = new(big.Rat).Set(&tmp)
			return
		}
		v.Add(v, &tmp)
		if v.Sign() == 0 {
			delete(s.entries, i)
		}
	})
}

func (s *Sparse) ForEachNonZero(fn func(i int, v *big.Rat)) {
	idx := make([]int, 0, len(s.entries))
	for i := range s.entries {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	for _, i := range idx {
		fn(i, s.entries[i])
	}
}
