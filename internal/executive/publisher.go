package executive

import (
	"asv-planner/internal/nav"
	"asv-planner/internal/ribbon"
)

// TrajectoryPublisher is the transport the executive drives: it ticks the
// mission clock, hands plans to the downstream controller, and surfaces
// display data. Implementations live outside the planning core.
type TrajectoryPublisher interface {
	// Time returns the mission clock in seconds, monotonic within a run.
	Time() float64

	// PublishPlan hands a plan to the controller, which reports the start
	// state it will actually execute from.
	PublishPlan(plan nav.Plan) nav.State

	// DisplayTrajectory surfaces trajectory samples for display; isPlan
	// distinguishes plans from other traces.
	DisplayTrajectory(samples []nav.State, isPlan bool)

	// DisplayRibbons surfaces the remaining ribbons for display.
	DisplayRibbons(rm *ribbon.Manager)

	// AllDone signals that every ribbon has been covered.
	AllDone()
}
