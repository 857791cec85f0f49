package executive

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"asv-planner/internal/logging"
	"asv-planner/internal/nav"
	"asv-planner/internal/ribbon"
)

// stubPublisher plays the role of the transport node: it accepts plans and
// reports the state the controller would execute from, optionally offset
// to provoke a disagreement.
type stubPublisher struct {
	epoch time.Time

	mu          sync.Mutex
	lastPlan    nav.Plan
	plansSeen   int
	ribbonsSeen int
	allDone     bool
	offsetX     float64
}

func newStubPublisher() *stubPublisher {
	return &stubPublisher{epoch: time.Now()}
}

func (s *stubPublisher) Time() float64 {
	return time.Since(s.epoch).Seconds()
}

func (s *stubPublisher) PublishPlan(plan nav.Plan) nav.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastPlan = plan
	s.plansSeen++
	st := nav.State{Time: s.Time() + PlanningTimeSeconds}
	if !plan.Sample(&st) {
		if arcs := plan.Arcs(); len(arcs) > 0 {
			st = arcs[len(arcs)-1].End()
		}
	}
	st.X += s.offsetX
	return st
}

func (s *stubPublisher) DisplayTrajectory(samples []nav.State, isPlan bool) {}

func (s *stubPublisher) DisplayRibbons(rm *ribbon.Manager) {
	s.mu.Lock()
	s.ribbonsSeen++
	s.mu.Unlock()
}

func (s *stubPublisher) AllDone() {
	s.mu.Lock()
	s.allDone = true
	s.mu.Unlock()
}

func (s *stubPublisher) allDoneCalled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allDone
}

func (s *stubPublisher) trajectory() nav.Plan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastPlan
}

func testContext(buf *bytes.Buffer) context.Context {
	log := slog.New(slog.NewTextHandler(buf, nil))
	return logging.NewContext(context.Background(), log)
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(50 * time.Millisecond)
	}
	return cond()
}

func TestEmptyMissionSignalsAllDone(t *testing.T) {
	var buf bytes.Buffer
	stub := newStubPublisher()
	exec := New(testContext(&buf), stub)
	defer exec.Terminate()

	exec.UpdateCovered(0, 0, 2.5, 0, stub.Time())
	exec.StartPlanner()

	if !waitFor(t, 2*PlanningTimeSeconds*time.Second, stub.allDoneCalled) {
		t.Fatalf("allDone not signaled for an empty mission")
	}
}

func TestCancellationReachesInactive(t *testing.T) {
	var buf bytes.Buffer
	stub := newStubPublisher()
	exec := New(testContext(&buf), stub)

	exec.AddRibbon(100, 100, 200, 100)
	exec.UpdateCovered(0, 0, 2.5, 0, stub.Time())
	exec.StartPlanner()

	if !waitFor(t, time.Second, exec.PlannerIsRunning) {
		t.Fatalf("planner never reached Running")
	}
	exec.CancelPlanner()

	if !waitFor(t, 2*PlanningTimeSeconds*time.Second, func() bool { return exec.plannerState.get() == Inactive }) {
		t.Fatalf("planner did not reach Inactive within the cancellation window")
	}

	done := make(chan struct{})
	go func() {
		exec.Terminate()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatalf("Terminate deadlocked")
	}
}

func TestMapLoadFailureDoesNotStopPlanner(t *testing.T) {
	var buf bytes.Buffer
	stub := newStubPublisher()
	exec := New(testContext(&buf), stub)
	defer exec.Terminate()

	exec.AddRibbon(10, 0, 30, 0)
	exec.UpdateCovered(0, 0, 2.5, 0, stub.Time())
	exec.StartPlanner()
	exec.RefreshMap("nonexistent.tiff", 0, 0)

	if !waitFor(t, 5*time.Second, func() bool {
		return strings.Contains(buf.String(), "Encountered an error loading map at path nonexistent.tiff")
	}) {
		t.Fatalf("map load error not logged; log: %s", buf.String())
	}
	if !exec.PlannerIsRunning() && !stub.allDoneCalled() {
		t.Fatalf("planner stopped after map load failure")
	}
}

func TestControllerDisagreementDropsPlan(t *testing.T) {
	var buf bytes.Buffer
	stub := newStubPublisher()
	stub.offsetX = 10 // controller reports a start 10 m off in x
	exec := New(testContext(&buf), stub)
	defer exec.Terminate()

	exec.AddRibbon(10, 0, 30, 0)
	exec.UpdateCovered(0, 0, 2.5, 0, stub.Time())
	exec.StartPlanner()

	if !waitFor(t, 10*time.Second, func() bool {
		return strings.Contains(buf.String(), "X is different")
	}) {
		t.Fatalf("mismatch axis not logged; log: %s", buf.String())
	}
}

func TestUnknownHeuristicIgnored(t *testing.T) {
	var buf bytes.Buffer
	stub := newStubPublisher()
	exec := New(testContext(&buf), stub)
	defer exec.Terminate()

	s := DefaultSettings()
	s.Heuristic = 9
	exec.SetConfiguration(s)

	if !strings.Contains(buf.String(), "unknown heuristic") {
		t.Errorf("expected unknown-heuristic warning, log: %s", buf.String())
	}

	exec.ribbonMu.Lock()
	h := exec.ribbons.GetHeuristic()
	exec.ribbonMu.Unlock()
	if h != ribbon.Heuristic(DefaultSettings().Heuristic) {
		t.Errorf("heuristic changed to %v on invalid index", h)
	}
}

func TestSingleRibbonMission(t *testing.T) {
	if testing.Short() {
		t.Skip("long mission test")
	}
	var buf bytes.Buffer
	stub := newStubPublisher()
	exec := New(testContext(&buf), stub)
	defer exec.Terminate()

	exec.AddRibbon(0, 0, 50, 0)
	exec.UpdateCovered(0, 0, 2.5, 0, stub.Time())
	exec.StartPlanner()

	// follow the published trajectory like the controller would
	for i := 0; i < 120; i++ {
		if stub.allDoneCalled() {
			break
		}
		plan := stub.trajectory()
		if !plan.Empty() {
			s := nav.State{Time: stub.Time()}
			if plan.Sample(&s) {
				exec.UpdateCovered(s.X, s.Y, s.Speed, s.Heading, stub.Time())
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
	if !stub.allDoneCalled() {
		t.Fatalf("single ribbon not covered within budget")
	}
}
