package simplex

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"q.log/mip/model"
)

const stallMessage = "objective stalled, switching to textbook pricing"

// bealeProblem is Beale's cycling example with rows scaled to integers:
// maximize 3x0 - 80x1 + 2x2 - 24x3, every pivot out of the origin along x0
// is degenerate.
func bealeProblem(t *testing.T, pricing ControlParameter, log logrus.FieldLogger) *Problem {
	t.Helper()
	cs := []model.Constraint{
		le(0, 1, -32, -4, 36),
		le(0, 1, -24, -1, 6),
		le(1, 0, 0, 1),
		ge(0, 1),
		ge(0, 0, 1),
		ge(0, 0, 0, 1),
		ge(0, 0, 0, 0, 1),
	}
	p, err := NewProblem(4, cs, model.Expr(3, -80, 2, -24), Maximization, WithPricing(pricing), WithLogger(log))
	require.NoError(t, err)
	return p
}

func withStallThreshold(t *testing.T, n int) {
	t.Helper()
	saved := allowedNonIncreasingLoops
	allowedNonIncreasingLoops = n
	t.Cleanup(func() { allowedNonIncreasingLoops = saved })
}

func stalled(hook *test.Hook) bool {
	for _, e := range hook.AllEntries() {
		if e.Message == stallMessage {
			return true
		}
	}
	return false
}

func TestStallFallsBackToTextbook(t *testing.T) {
	for _, tt := range []struct {
		name      string
		pricing   ControlParameter
		threshold int
		stalls    bool
	}{
		{name: "float steepest edge", pricing: PricingSteepestEdgeFloat, threshold: 0, stalls: true},
		{name: "exact steepest edge", pricing: PricingSteepestEdgeExact, threshold: 0, stalls: true},
		{name: "textbook never switches", pricing: PricingTextbook, threshold: 0, stalls: false},
		{name: "default threshold", pricing: PricingSteepestEdgeFloat, threshold: allowedNonIncreasingLoops, stalls: false},
	} {
		t.Run(tt.name, func(t *testing.T) {
			withStallThreshold(t, tt.threshold)
			logger, hook := test.NewNullLogger()
			logger.SetLevel(logrus.DebugLevel)

			p := bealeProblem(t, tt.pricing, logger)
			require.Equal(t, Optimized, p.Solve())
			require.NoError(t, p.OK())
			assert.Equal(t, tt.stalls, stalled(hook))

			assert.Equal(t, "1/5", optimalValue(t, p))
			g, err := p.OptimizingPoint()
			require.NoError(t, err)
			for _, c := range p.Constraints() {
				assert.True(t, c.SatisfiedBy(g), "%s violated at %s", c, g)
			}
		})
	}
}
