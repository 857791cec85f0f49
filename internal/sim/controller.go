// Package sim runs missions without a vessel: a simulated controller
// follows published plans and feeds telemetry back into the executive,
// while scripted traffic vessels exercise the obstacle path.
package sim

import (
	"sync"
	"time"

	"asv-planner/internal/executive"
	"asv-planner/internal/nav"
	"asv-planner/internal/ribbon"
	"asv-planner/internal/telemetry"
)

// Controller implements executive.TrajectoryPublisher against a simulated
// vessel that follows the latest published plan exactly.
type Controller struct {
	missionID string
	epoch     time.Time
	writer    *telemetry.MultiWriter

	mu      sync.Mutex
	plan    nav.Plan
	last    nav.State
	allDone bool
	done    chan struct{}
}

// NewController creates a controller with the mission clock starting now.
func NewController(missionID string, start nav.State, writer *telemetry.MultiWriter) *Controller {
	return &Controller{
		missionID: missionID,
		epoch:     time.Now(),
		writer:    writer,
		last:      start,
		done:      make(chan struct{}),
	}
}

// Time returns the mission clock in seconds.
func (c *Controller) Time() float64 {
	return time.Since(c.epoch).Seconds()
}

// PublishPlan accepts a plan and reports the state the vessel will start
// executing from: the plan sampled one planning quantum ahead.
func (c *Controller) PublishPlan(plan nav.Plan) nav.State {
	c.mu.Lock()
	c.plan = plan
	c.mu.Unlock()

	s := nav.State{Time: c.Time() + executive.PlanningTimeSeconds}
	if !plan.Sample(&s) {
		if arcs := plan.Arcs(); len(arcs) > 0 {
			// past the plan's end; report its terminal state
			end := arcs[len(arcs)-1].End()
			end.Time = s.Time
			s = end
		}
	}
	return s
}

// DisplayTrajectory forwards trajectory samples to the writers.
func (c *Controller) DisplayTrajectory(samples []nav.State, isPlan bool) {
	points := make([]telemetry.TrajectoryPoint, len(samples))
	for i, s := range samples {
		points[i] = telemetry.TrajectoryPoint{X: s.X, Y: s.Y, Heading: s.Heading, T: s.Time}
	}
	c.writer.WriteTrajectory(telemetry.TrajectoryRow{
		MissionID: c.missionID,
		IsPlan:    isPlan,
		Points:    points,
		Timestamp: time.Now().UTC(),
	})
}

// DisplayRibbons forwards coverage progress to the writers.
func (c *Controller) DisplayRibbons(rm *ribbon.Manager) {
	c.writer.WriteCoverage(telemetry.CoverageRow{
		MissionID:      c.missionID,
		Ribbons:        rm.Count(),
		UncoveredMeter: rm.TotalUncovered(),
		Done:           rm.Done(),
		Timestamp:      time.Now().UTC(),
	})
}

// AllDone records mission completion.
func (c *Controller) AllDone() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.allDone {
		c.allDone = true
		close(c.done)
	}
}

// Done returns a channel closed when the mission completes.
func (c *Controller) Done() <-chan struct{} { return c.done }

// IsAllDone reports whether the mission has completed.
func (c *Controller) IsAllDone() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.allDone
}

// CurrentState advances the simulated vessel to the present: it samples
// the latest plan at the mission clock, or holds position when no plan
// covers the moment.
func (c *Controller) CurrentState() nav.State {
	now := c.Time()
	c.mu.Lock()
	defer c.mu.Unlock()
	s := nav.State{Time: now}
	if c.plan.Sample(&s) {
		c.last = s
		return s
	}
	held := c.last
	held.Time = now
	held.Speed = 0
	c.last = held
	return held
}
