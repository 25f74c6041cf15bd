package model

import (
	"fmt"
	"sort"
	"strings"
)

// VariablesSet is a set of variable indices.
type VariablesSet struct {
	vars map[int]struct{}
}

func NewVariablesSet(vars ...int) VariablesSet {
	s := VariablesSet{vars: make(map[int]struct{}, len(vars))}
	for _, v := range vars {
		s.vars[v] = struct{}{}
	}
	return s
}

// Insert adds v and reports whether it was missing.
func (s *VariablesSet) Insert(v int) bool {
	if s.vars == nil {
		s.vars = make(map[int]struct{})
	}
	if _, ok := s.vars[v]; ok {
		return false
	}
	s.vars[v] = struct{}{}
	return true
}

func (s VariablesSet) Contains(v int) bool {
	_, ok := s.vars[v]
	return ok
}

func (s VariablesSet) Len() int { return len(s.vars) }

func (s VariablesSet) Empty() bool { return len(s.vars) == 0 }

// Slice returns the members in increasing order.
func (s VariablesSet) Slice() []int {
	out := make([]int, 0, len(s.vars))
	for v := range s.vars {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

// SpaceDimension is one more than the largest member, zero for the empty set.
func (s VariablesSet) SpaceDimension() int {
	d := 0
	for v := range s.vars {
		if v+1 > d {
			d = v + 1
		}
	}
	return d
}

// Clone returns an independent copy.
func (s VariablesSet) Clone() VariablesSet {
	return NewVariablesSet(s.Slice()...)
}

func (s VariablesSet) String() string {
	vs := s.Slice()
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = fmt.Sprintf("x%d", v)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
