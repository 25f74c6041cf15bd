package mps

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"q.log/mip/model"
	"q.log/mip/simplex"
)

const tiny = `NAME TINY
ROWS
 N COST
 L LIM1
 G LIM2
COLUMNS
 MARKER 'MARKER' 'INTORG'
 X COST 1.0 LIM1 1.0
 X LIM2 1.0
 MARKER 'MARKER' 'INTEND'
 Y COST 2.0 LIM1 1.0
RHS
 RHS LIM1 4.5 LIM2 1.0
BOUNDS
 UP BND X 4.0
 LO BND Y -2.5
 UP BND Y 1.0
ENDATA
`

func TestRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.mps")
	require.NoError(t, os.WriteFile(path, []byte(tiny), 0o644))

	d, err := NewReader(path).Read()
	require.NoError(t, err)
	assert.Equal(t, "TINY", d.Name)
	assert.Equal(t, 2, d.Dimension)
	assert.Equal(t, []string{"X", "Y"}, d.Names)
	assert.Equal(t, simplex.Minimization, d.Mode)
	assert.Equal(t, []int{0}, d.Integers.Slice())
	assert.Equal(t, "x0 + 2*x1", d.Objective.String())

	p, err := d.Problem()
	require.NoError(t, err)
	require.Equal(t, simplex.Optimized, p.Solve())
	num, den, err := p.OptimalValue()
	require.NoError(t, err)
	assert.Equal(t, "-4", num.String())
	assert.Equal(t, "1", den.String())
}

func TestReadMissingFile(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "missing.mps")).Read()
	assert.Error(t, err)
}

func TestExact(t *testing.T) {
	assert.Equal(t, "1/10", exact(0.1).RatString())
	assert.Equal(t, "-5/2", exact(-2.5).RatString())
	assert.Equal(t, "3", exact(3).RatString())
}

func TestBounds(t *testing.T) {
	for _, tt := range []struct {
		name   string
		lb, ub float64
		want   []string
	}{
		{name: "free", lb: -math.MaxFloat64, ub: math.MaxFloat64},
		{name: "lower", lb: 1, ub: math.MaxFloat64, want: []string{"x0 - 1 >= 0"}},
		{name: "upper", lb: -math.MaxFloat64, ub: 2, want: []string{"-x0 + 2 >= 0"}},
		{name: "range", lb: 0, ub: 2, want: []string{"x0 >= 0", "-x0 + 2 >= 0"}},
		{name: "fixed", lb: 3, ub: 3, want: []string{"x0 - 3 = 0"}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, c := range bounds(model.Var(0), tt.lb, tt.ub) {
				got = append(got, c.String())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
