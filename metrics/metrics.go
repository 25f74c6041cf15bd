// Package metrics exposes solver activity as prometheus collectors.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"q.log/mip/simplex"
)

const (
	PhaseLabel   = "phase"
	OutcomeLabel = "outcome"
	StatusLabel  = "status"
)

var (
	pivotCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mip_pivots_total",
			Help: "Number of simplex pivots, by phase",
		},
		[]string{PhaseLabel},
	)

	nodeCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mip_branch_nodes_total",
			Help: "Number of branch-and-bound nodes, by outcome",
		},
		[]string{OutcomeLabel},
	)

	maxDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "mip_branch_max_depth",
			Help: "Deepest branch-and-bound node seen",
		},
	)

	solveCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mip_solves_total",
			Help: "Number of completed solves, by resulting status",
		},
		[]string{StatusLabel},
	)
)

// MaxDepth returns the gauge of the deepest node.
func MaxDepth() prometheus.Gauge {
	return maxDepth
}

// Collectors returns every collector of this package.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{pivotCount, nodeCount, maxDepth, solveCount}
}

// RegisterSolver registers the solver collectors with r.
func RegisterSolver(r prometheus.Registerer) error {
	for _, c := range Collectors() {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Tracer feeds the solver collectors. It is safe for concurrent use.
type Tracer struct{}

var _ simplex.Tracer = &Tracer{}

func (t *Tracer) Pivot(phase simplex.Phase, _, _ int) {
	pivotCount.WithLabelValues(string(phase)).Inc()
}

func (t *Tracer) Node(depth int, outcome simplex.NodeOutcome) {
	nodeCount.WithLabelValues(string(outcome)).Inc()
	deepest.observe(depth)
}

func (t *Tracer) Solved(status simplex.Status) {
	solveCount.WithLabelValues(status.String()).Inc()
}

// NodeCount returns the counter of one outcome, for reports.
func NodeCount(outcome simplex.NodeOutcome) prometheus.Counter {
	return nodeCount.WithLabelValues(string(outcome))
}

// PivotCount returns the counter of one phase, for reports.
func PivotCount(phase simplex.Phase) prometheus.Counter {
	return pivotCount.WithLabelValues(string(phase))
}

// deepest keeps maxDepth at the deepest node observed by any tracer.
var deepest depthGauge

type depthGauge struct {
	mu  sync.Mutex
	max int
}

func (d *depthGauge) observe(depth int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if depth > d.max {
		d.max = depth
		maxDepth.Set(float64(depth))
	}
}
