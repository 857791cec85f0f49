package nav

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func straightPlan(t *testing.T) Plan {
	t.Helper()
	p, err := ShortestPath(NewState(0, 0, 0, 2, 10), NewState(40, 0, 0, 2, 0), 8)
	require.NoError(t, err)
	var plan Plan
	plan.AppendAll(p.Arcs(2))
	return plan
}

func TestPlan_SampleAtStart(t *testing.T) {
	plan := straightPlan(t)

	s := State{Time: plan.StartTime()}
	require.True(t, plan.Sample(&s))
	assert.InDelta(t, 0, s.X, 1e-9)
	assert.InDelta(t, 0, s.Y, 1e-9)
	assert.InDelta(t, 0, s.Heading, 1e-9)
}

func TestPlan_SampleMidway(t *testing.T) {
	plan := straightPlan(t)

	s := State{Time: 20} // 10 s in at 2 m/s
	require.True(t, plan.Sample(&s))
	assert.InDelta(t, 20, s.X, 1e-9)
}

func TestPlan_SampleBeyondEnd(t *testing.T) {
	plan := straightPlan(t)

	s := State{Time: plan.EndTime() + 5}
	assert.False(t, plan.Sample(&s))
}

func TestPlan_ChangeIntoSuffix(t *testing.T) {
	plan := straightPlan(t)

	plan.ChangeIntoSuffix(20)
	assert.InDelta(t, 20, plan.StartTime(), 1e-9)
	s := State{Time: 20}
	require.True(t, plan.Sample(&s))
	assert.InDelta(t, 20, s.X, 1e-9)
}

func TestPlan_ChangeIntoSuffixIdempotentBeforeStart(t *testing.T) {
	plan := straightPlan(t)
	before := plan.Copy()

	plan.ChangeIntoSuffix(plan.StartTime())
	plan.ChangeIntoSuffix(plan.StartTime() - 100)

	require.Equal(t, len(before.Arcs()), len(plan.Arcs()))
	for i := range before.Arcs() {
		assert.Equal(t, before.Arcs()[i], plan.Arcs()[i])
	}
}

func TestPlan_TimesStrictlyIncreasing(t *testing.T) {
	p, err := ShortestPath(NewState(0, 0, 0, 2, 0), NewState(15, 25, 2.5, 2, 0), 8)
	require.NoError(t, err)
	var plan Plan
	plan.AppendAll(p.Arcs(2))

	prev := math.Inf(-1)
	for _, a := range plan.Arcs() {
		assert.Greater(t, a.Start.Time, prev-1e-9)
		assert.Greater(t, a.EndTime(), a.Start.Time)
		prev = a.EndTime()
	}
}

func TestPlan_HalfSecondSamples(t *testing.T) {
	plan := straightPlan(t)

	samples := plan.HalfSecondSamples()
	require.NotEmpty(t, samples)
	for i := 1; i < len(samples); i++ {
		assert.InDelta(t, 0.5, samples[i].Time-samples[i-1].Time, 1e-9)
	}
}

func TestArc_InterpolateTurn(t *testing.T) {
	// quarter left turn of radius 10 starting east ends heading north
	a := Arc{
		Start:     NewState(0, 0, 0, 2, 0),
		Curvature: 0.1,
		Length:    10 * math.Pi / 2,
	}
	end := a.End()
	assert.InDelta(t, 10, end.X, 1e-9)
	assert.InDelta(t, 10, end.Y, 1e-9)
	assert.InDelta(t, math.Pi/2, end.Heading, 1e-9)
}
