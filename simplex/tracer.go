package simplex

import (
	"fmt"
	"io"
	"sync"
)

// NodeOutcome says what branch-and-bound did with a search-tree node.
type NodeOutcome string

const (
	NodeInfeasible NodeOutcome = "infeasible"
	NodePruned     NodeOutcome = "pruned"
	NodeIntegral   NodeOutcome = "integral"
	NodeBranched   NodeOutcome = "branched"
)

// Tracer receives solver events. Implementations must be safe for
// concurrent use when branch workers are enabled.
type Tracer interface {
	Pivot(phase Phase, entering, exiting int)
	Node(depth int, outcome NodeOutcome)
	Solved(status Status)
}

type DefaultTracer struct{}

func (DefaultTracer) Pivot(Phase, int, int) {}

func (DefaultTracer) Node(int, NodeOutcome) {}

func (DefaultTracer) Solved(Status) {}

// LoggingTracer writes one line per event.
type LoggingTracer struct {
	Writer io.Writer

	mu sync.Mutex
}

func (t *LoggingTracer) Pivot(phase Phase, entering, exiting int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.Writer, "pivot %s: column %d enters at row %d\n", phase, entering, exiting)
}

func (t *LoggingTracer) Node(depth int, outcome NodeOutcome) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.Writer, "node depth %d: %s\n", depth, outcome)
}

func (t *LoggingTracer) Solved(status Status) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.Writer, "solved: %s\n", status)
}

// MultiTracer forwards every event to each of its tracers in order.
type MultiTracer []Tracer

func (m MultiTracer) Pivot(phase Phase, entering, exiting int) {
	for _, t := range m {
		t.Pivot(phase, entering, exiting)
	}
}

func (m MultiTracer) Node(depth int, outcome NodeOutcome) {
	for _, t := range m {
		t.Node(depth, outcome)
	}
}

func (m MultiTracer) Solved(status Status) {
	for _, t := range m {
		t.Solved(status)
	}
}
