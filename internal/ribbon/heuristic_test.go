package ribbon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asv-planner/internal/nav"
)

func TestHeuristic_ZeroWhenDone(t *testing.T) {
	for h := MaxDistance; h <= TspDubinsNoSplitKRibbons; h++ {
		m := newTestManager(h)
		assert.Zero(t, m.ApproxDistanceUntilDone(nav.State{X: 3, Y: 4}))
	}
}

func TestHeuristic_MaxDistance(t *testing.T) {
	m := newTestManager(MaxDistance)
	m.Add(0, 0, 30, 0)
	m.Add(0, 40, 10, 40)

	// the far endpoint of the second ribbon dominates
	d := m.ApproxDistanceUntilDone(nav.State{X: 0, Y: 0})
	assert.InDelta(t, 41.231, d, 1e-3) // hypot(10, 40)
}

func TestHeuristic_TspPointSingleRibbon(t *testing.T) {
	m := newTestManager(TspPointNoSplitAllRibbons)
	m.Add(10, 0, 20, 0)

	// approach the near end, then traverse
	d := m.ApproxDistanceUntilDone(nav.State{X: 0, Y: 0})
	assert.InDelta(t, 20, d, 1e-9)
}

func TestHeuristic_TspPointOrdersRibbons(t *testing.T) {
	m := newTestManager(TspPointNoSplitAllRibbons)
	m.Add(10, 0, 20, 0)
	m.Add(30, 0, 40, 0)

	// near ribbon first, hop, far ribbon: 10 + 10 + 10 + 10
	d := m.ApproxDistanceUntilDone(nav.State{X: 0, Y: 0})
	assert.InDelta(t, 40, d, 1e-9)
}

func TestHeuristic_TspKLimitsSubset(t *testing.T) {
	m := newTestManager(TspPointNoSplitKRibbons) // k = 2
	for i := 0; i < 6; i++ {
		m.Add(float64(10+i*20), 0, float64(20+i*20), 0)
	}
	dK := m.ApproxDistanceUntilDone(nav.State{X: 0, Y: 0})

	m.SetHeuristic(TspPointNoSplitAllRibbons)
	dAll := m.ApproxDistanceUntilDone(nav.State{X: 0, Y: 0})

	// the K-limited estimate only covers the nearest two ribbons
	assert.Less(t, dK, dAll)
	assert.InDelta(t, 40, dK, 1e-9)
}

func TestHeuristic_TspDubinsAtLeastPoint(t *testing.T) {
	mp := newTestManager(TspPointNoSplitAllRibbons)
	md := newTestManager(TspDubinsNoSplitAllRibbons)
	for _, m := range []*Manager{mp, md} {
		m.Add(10, 5, 20, 5)
		m.Add(0, -30, -10, -30)
	}
	from := nav.State{X: 0, Y: 0, Heading: 0}

	dp := mp.ApproxDistanceUntilDone(from)
	dd := md.ApproxDistanceUntilDone(from)
	require.Greater(t, dp, 0.0)
	// Dubins approaches respect the turning radius, never shorter than
	// straight lines
	assert.GreaterOrEqual(t, dd, dp-1e-9)
}

func TestHeuristic_ShrinksAsCoverageGrows(t *testing.T) {
	m := newTestManager(TspPointNoSplitAllRibbons)
	m.Add(10, 0, 50, 0)
	from := nav.State{X: 0, Y: 0}

	before := m.ApproxDistanceUntilDone(from)
	m.CoverBetween(10, 0, 30, 0)
	after := m.ApproxDistanceUntilDone(from)
	assert.Less(t, after, before)
}
