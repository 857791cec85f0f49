package executive

import (
	"fmt"
	"time"

	"asv-planner/internal/logging"
	"asv-planner/internal/nav"
	"asv-planner/internal/planner"
	"asv-planner/internal/ribbon"
)

// planLoop is the planning task: one planning iteration per cycle until
// the ribbons are covered or the task is cancelled.
func (e *Executive) planLoop() {
	defer close(e.loopDone)
	log := logging.FromContext(e.ctx)
	log.Info("initializing planner")

	pl, err := planner.New(planner.StrategyAStar)
	if err != nil {
		log.Error("could not construct planner", "err", err)
		return
	}

	// A Cancelled flag here means a previous planning task has not exited
	// yet; every task sets Inactive on exit, so wait for that.
	if e.plannerState.waitNot(Cancelled, terminateGracePeriod) == Cancelled {
		log.Error("planner initialization timed out with the cancel flag still set; " +
			"restart the planner to keep using it")
		return
	}
	e.plannerState.set(Running)
	defer e.plannerState.set(Inactive)

	startState := nav.State{Time: nav.TimeUnset}
	// the plan persists across cycles so it can seed the next iteration
	var plan nav.Plan

	for {
		startTime := e.publisher.Time()

		if e.plannerState.get() == Cancelled {
			return
		}
		if e.RibbonsDone() {
			log.Info("finished covering ribbons")
			e.publisher.AllDone()
			return
		}

		e.publisher.DisplayRibbons(e.snapshotRibbons())

		// install a staged map if one is ready; never wait for the loader
		select {
		case m := <-e.newMaps:
			e.cfgMu.Lock()
			e.currentMap = m
			e.cfgMu.Unlock()
		default:
		}

		last := e.snapshotTelemetry()
		if startState.Time == nav.TimeUnset {
			// no usable state from the controller; push the last fix to
			// where the vehicle will be when this plan starts
			startState = last.Push(e.publisher.Time() + PlanningTimeSeconds - last.Time)
		}

		if !reusePlanEnabled {
			plan = nav.Plan{}
		}
		if !plan.Empty() {
			plan.ChangeIntoSuffix(startState.Time)
		}

		if radiusShrinkEnabled {
			e.cfgMu.Lock()
			e.turningRadius -= radiusShrinkAmount
			e.coverageTurningRadius -= radiusShrinkAmount
			e.radiusShrink += radiusShrinkAmount
			e.cfgMu.Unlock()
		}

		cfg := e.buildPlannerConfig(startState)
		ribbonsCopy := e.snapshotRibbons()
		// cover up to the state we are planning from
		ribbonsCopy.CoverBetween(last.X, last.Y, startState.X, startState.Y)

		plan, err = e.runPlanner(pl, ribbonsCopy, startState, cfg, plan,
			startTime+PlanningTimeSeconds-e.publisher.Time())
		if err != nil {
			log.Error("exception thrown while planning; pausing", "err", err)
			e.CancelPlanner()
			continue
		}

		// sleep out the rest of the planning quantum
		elapsed := e.publisher.Time() - startTime
		if sleep := PlanningTimeSeconds - elapsed; sleep > 0 {
			time.Sleep(time.Duration(sleep * float64(time.Second)))
		}

		e.publisher.DisplayTrajectory(plan.HalfSecondSamples(), true)

		if plan.Empty() {
			log.Warn("planner returned empty trajectory")
			startState = nav.State{Time: nav.TimeUnset}
			continue
		}

		startState = e.publisher.PublishPlan(plan.Copy())
		expected := startState
		plan.Sample(&expected)
		if startState.IsCoLocated(expected) {
			e.cfgMu.Lock()
			e.radiusShrink += radiusShrinkAmount
			e.cfgMu.Unlock()
			continue
		}

		// controller says it cannot follow the plan from there
		plan = nav.Plan{}
		e.restoreTurningRadii()
		log.Warn("start state is not along previous plan" + mismatchAxes(startState, expected))
	}
}

// runPlanner isolates one Plan call so planner panics pause the loop
// instead of crashing the process. Panics that are not errors are
// re-raised after cancelling, so the host terminates predictably.
func (e *Executive) runPlanner(pl *planner.Planner, rm *ribbon.Manager, startState nav.State,
	cfg planner.Config, previous nav.Plan, timeRemaining float64) (plan nav.Plan, err error) {
	defer func() {
		if r := recover(); r != nil {
			e.CancelPlanner()
			if perr, ok := r.(error); ok {
				err = perr
				return
			}
			panic(r)
		}
	}()
	return pl.Plan(e.ctx, rm, startState, cfg, previous, timeRemaining)
}

func (e *Executive) buildPlannerConfig(startState nav.State) planner.Config {
	e.cfgMu.Lock()
	defer e.cfgMu.Unlock()
	return planner.Config{
		MaxSpeed:              e.settings.MaxSpeed,
		TurningRadius:         e.turningRadius,
		CoverageTurningRadius: e.coverageTurningRadius,
		BranchingFactor:       e.settings.K,
		Obstacles:             e.snapshotObstacles(),
		Map:                   e.currentMap,
		StartStateTime:        startState.Time,
		Visualizer:            e.visualizer,
		Now:                   e.publisher.Time,
	}
}

func (e *Executive) restoreTurningRadii() {
	e.cfgMu.Lock()
	defer e.cfgMu.Unlock()
	e.turningRadius += e.radiusShrink
	e.coverageTurningRadius += e.radiusShrink
	e.radiusShrink = 0
}

// mismatchAxes names which state components disagree, for the log.
func mismatchAxes(got, expected nav.State) string {
	out := ""
	switch {
	case got.X != expected.X && got.Y != expected.Y:
		out += fmt.Sprintf("; position is different: (%.2f, %.2f) vs (%.2f, %.2f)",
			got.X, got.Y, expected.X, expected.Y)
	case got.X != expected.X:
		out += fmt.Sprintf("; X is different: %.2f vs %.2f", got.X, expected.X)
	case got.Y != expected.Y:
		out += fmt.Sprintf("; Y is different: %.2f vs %.2f", got.Y, expected.Y)
	}
	if got.HeadingDifference(expected) != 0 {
		out += fmt.Sprintf("; headings are different: %.2f vs %.2f", got.Heading, expected.Heading)
	}
	return out
}
