package sim

import (
	"context"
	"testing"
	"time"

	"asv-planner/internal/config"
	"asv-planner/internal/logging"
	"asv-planner/internal/nav"
	"asv-planner/internal/telemetry"
)

func testMission(ribbons []config.RibbonSpec) *config.MissionConfig {
	return &config.MissionConfig{
		MissionID: "mission-test",
		Vehicle:   config.Vehicle{MaxSpeed: 2.5, TurningRadius: 8, CoverageTurningRadius: 16},
		Planner:   config.Planner{K: 5, Heuristic: 2, LineWidth: 2},
		Ribbons:   ribbons,
	}
}

func collectWriter() (*telemetry.MultiWriter, *MockWriter) {
	mock := &MockWriter{}
	return telemetry.NewMultiWriter(
		[]telemetry.Writer{mock},
		[]telemetry.TrajectoryWriter{mock},
		[]telemetry.CoverageWriter{mock},
	), mock
}

// MockWriter collects rows for validation.
type MockWriter struct {
	States       []telemetry.StateRow
	Trajectories []telemetry.TrajectoryRow
	Coverages    []telemetry.CoverageRow
}

func (w *MockWriter) WriteState(row telemetry.StateRow) error {
	w.States = append(w.States, row)
	return nil
}

func (w *MockWriter) WriteTrajectory(row telemetry.TrajectoryRow) error {
	w.Trajectories = append(w.Trajectories, row)
	return nil
}

func (w *MockWriter) WriteCoverage(row telemetry.CoverageRow) error {
	w.Coverages = append(w.Coverages, row)
	return nil
}

func TestController_PublishPlanReportsPlanState(t *testing.T) {
	writer, _ := collectWriter()
	ctrl := NewController("m", nav.NewState(0, 0, 0, 0, 0), writer)

	p, err := nav.ShortestPath(nav.NewState(0, 0, 0, 2, ctrl.Time()), nav.NewState(100, 0, 0, 2, 0), 8)
	if err != nil {
		t.Fatal(err)
	}
	var plan nav.Plan
	plan.AppendAll(p.Arcs(2))

	s := ctrl.PublishPlan(plan)
	expected := nav.State{Time: s.Time}
	if !plan.Sample(&expected) {
		t.Fatalf("reported state time %v not on plan", s.Time)
	}
	if !s.IsCoLocated(expected) {
		t.Errorf("reported state %v not co-located with plan state %v", s, expected)
	}
}

func TestController_CurrentStateFollowsPlan(t *testing.T) {
	writer, _ := collectWriter()
	ctrl := NewController("m", nav.NewState(5, 5, 0, 0, 0), writer)

	// no plan yet: holds position
	s := ctrl.CurrentState()
	if s.X != 5 || s.Y != 5 {
		t.Errorf("expected held position (5,5), got (%v,%v)", s.X, s.Y)
	}

	p, _ := nav.ShortestPath(nav.NewState(0, 0, 0, 2, ctrl.Time()), nav.NewState(100, 0, 0, 2, 0), 8)
	var plan nav.Plan
	plan.AppendAll(p.Arcs(2))
	ctrl.PublishPlan(plan)

	s = ctrl.CurrentState()
	if s.Speed != 2 {
		t.Errorf("expected plan speed 2, got %v", s.Speed)
	}
}

func TestTraffic_HoldsCourse(t *testing.T) {
	vessels := NewTraffic([]config.TrafficVessel{
		{ID: 1, X: 0, Y: 0, Heading: 0, Speed: 2},
	}, 0)
	s := vessels[0].Step(10)
	if s.X != 20 || s.Y != 0 {
		t.Errorf("expected (20,0), got (%v,%v)", s.X, s.Y)
	}
}

func TestRunner_EmptyMissionCompletes(t *testing.T) {
	writer, _ := collectWriter()
	ctx := logging.NewContext(context.Background(), logging.New())
	runner := NewRunner(ctx, testMission(nil), writer)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := runner.Run(ctx); err != nil {
		t.Fatalf("empty mission failed: %v", err)
	}
	if !runner.Controller().IsAllDone() {
		t.Fatalf("empty mission did not reach allDone")
	}
}

func TestRunner_BoxPattern(t *testing.T) {
	if testing.Short() {
		t.Skip("long mission test")
	}
	writer, mock := collectWriter()
	ctx := logging.NewContext(context.Background(), logging.New())
	cfg := testMission([]config.RibbonSpec{
		{X1: 10, Y1: 10, X2: 20, Y2: 10},
		{X1: 20, Y1: 10, X2: 20, Y2: 20},
		{X1: 20, Y1: 20, X2: 10, Y2: 20},
		{X1: 10, Y1: 20, X2: 10, Y2: 10},
	})
	runner := NewRunner(ctx, cfg, writer)

	ctx, cancel := context.WithTimeout(ctx, 120*500*time.Millisecond)
	defer cancel()
	if err := runner.Run(ctx); err != nil {
		t.Fatalf("box mission failed: %v", err)
	}
	if len(mock.Coverages) == 0 {
		t.Errorf("no coverage rows published")
	}
	last := mock.Coverages[len(mock.Coverages)-1]
	if !runner.Controller().IsAllDone() && !last.Done {
		t.Fatalf("box pattern not covered within budget")
	}
}
