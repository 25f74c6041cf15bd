package simplex

import (
	"fmt"
	"io"
	"math/big"
	"strings"
)

// Dump writes a human readable snapshot of the problem, tableau included.
func (p *Problem) Dump(w io.Writer) {
	fmt.Fprintf(w, "external_space_dim: %d\n", p.externalSpaceDim)
	fmt.Fprintf(w, "internal_space_dim: %d\n", p.internalSpaceDim)
	fmt.Fprintf(w, "constraints: %d (inherited %d, first pending %d)\n",
		len(p.constraints), p.inherited, p.firstPending)
	for i, c := range p.constraints {
		fmt.Fprintf(w, "  %d: %s\n", i, c)
	}
	fmt.Fprintf(w, "objective: %s\n", p.objective)
	fmt.Fprintf(w, "mode: %s\n", p.mode)
	fmt.Fprintf(w, "pricing: %s\n", p.pricing)
	fmt.Fprintf(w, "integer_variables: %s\n", p.integerVars)
	fmt.Fprintf(w, "status: %s\n", p.status)
	fmt.Fprintf(w, "last_generator: %s\n", p.lastGenerator)
	if !p.initialized {
		fmt.Fprintln(w, "tableau: uninitialized")
		return
	}
	mapping := make([]string, len(p.mapping))
	for v, pair := range p.mapping {
		mapping[v] = fmt.Sprintf("x%d->(%d,%d)", v, pair.pos, pair.neg)
	}
	fmt.Fprintf(w, "mapping: %s\n", strings.Join(mapping, " "))
	fmt.Fprintf(w, "tableau: %d x %d\n", len(p.tableau), p.numColumns())
	for i, r := range p.tableau {
		fmt.Fprintf(w, "  [%d] %s\n", p.base[i], formatRow(r.Size(), r.Get))
	}
	fmt.Fprintf(w, "cost: %s\n", formatRow(p.workingCost.Size(), p.workingCost.Get))
}

func formatRow(n int, get func(int) *big.Rat) string {
	vs := make([]string, n)
	for j := range n {
		vs[j] = get(j).RatString()
	}
	return strings.Join(vs, " ")
}
