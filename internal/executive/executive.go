// Package executive supervises the planning loop: it ingests telemetry,
// obstacle tracks, operator commands and map refreshes, and drives one
// planning iteration per cycle until every ribbon is covered.
package executive

import (
	"context"
	"math"
	"sync"
	"time"

	"asv-planner/internal/logging"
	"asv-planner/internal/nav"
	"asv-planner/internal/obstacle"
	"asv-planner/internal/ribbon"
	"asv-planner/internal/viz"
	"asv-planner/internal/worldmap"
)

// Tunable constants for the planning loop.
const (
	// PlanningTimeSeconds is the cycle quantum: each iteration gets this
	// much wall time to plan, then the loop sleeps out the remainder.
	PlanningTimeSeconds = 1.0

	// coverageHeadingRateMax gates coverage credit during sharp turns,
	// where position estimates are least reliable.
	coverageHeadingRateMax = 0.1

	reusePlanEnabled    = true
	radiusShrinkEnabled = false
	radiusShrinkAmount  = 1e-6

	// terminateGracePeriod bounds how long Terminate waits for the
	// planning task.
	terminateGracePeriod = 2 * time.Second
)

// PlannerState is the planning task's lifecycle state.
type PlannerState int

const (
	Inactive PlannerState = iota
	Running
	Cancelled
)

// Settings mirrors the runtime-configurable planner parameters.
type Settings struct {
	TurningRadius         float64
	CoverageTurningRadius float64
	MaxSpeed              float64
	LineWidth             float64
	K                     int
	Heuristic             int
	Visualization         bool
	VisualizationDir      string
}

// DefaultSettings returns a workable configuration for a small survey
// vessel.
func DefaultSettings() Settings {
	return Settings{
		TurningRadius:         8,
		CoverageTurningRadius: 16,
		MaxSpeed:              2.5,
		LineWidth:             2,
		K:                     5,
		Heuristic:             int(ribbon.TspPointNoSplitKRibbons),
	}
}

// plannerStateVar is a mutex+notification pair over the planner state; Go
// has no timed condition-variable wait, so transitions close a channel
// waiters select on.
type plannerStateVar struct {
	mu      sync.Mutex
	state   PlannerState
	changed chan struct{}
}

func newPlannerStateVar() *plannerStateVar {
	return &plannerStateVar{changed: make(chan struct{})}
}

func (s *plannerStateVar) get() PlannerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *plannerStateVar) set(st PlannerState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == st {
		return
	}
	s.state = st
	close(s.changed)
	s.changed = make(chan struct{})
}

// compareAndSet transitions from want to next, reporting success.
func (s *plannerStateVar) compareAndSet(want, next PlannerState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != want {
		return false
	}
	s.state = next
	close(s.changed)
	s.changed = make(chan struct{})
	return true
}

// waitNot blocks until the state differs from st or the timeout elapses,
// returning the state observed last.
func (s *plannerStateVar) waitNot(st PlannerState, timeout time.Duration) PlannerState {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	for {
		s.mu.Lock()
		cur := s.state
		ch := s.changed
		s.mu.Unlock()
		if cur != st {
			return cur
		}
		select {
		case <-ch:
		case <-deadline.C:
			return cur
		}
	}
}

// Executive owns the shared state between the producer threads and the
// planning task.
type Executive struct {
	ctx       context.Context
	publisher TrajectoryPublisher

	// telemetry tuple, updated atomically together
	stateMu        sync.Mutex
	lastState      nav.State
	lastHeading    float64
	lastUpdateTime float64

	ribbonMu sync.Mutex
	ribbons  *ribbon.Manager

	obstacleMu sync.Mutex
	obstacles  *obstacle.Manager

	// map staging: single-slot "latest map" channel, try-received by the
	// planning loop so a slow load never stalls a cycle
	newMaps        chan worldmap.Map
	mapMu          sync.Mutex
	currentMapPath string

	cfgMu                 sync.Mutex
	settings              Settings
	turningRadius         float64
	coverageTurningRadius float64
	currentMap            worldmap.Map
	radiusShrink          float64
	visualizer            *viz.Writer

	plannerState *plannerStateVar
	loopDone     chan struct{}
}

// New creates an executive bound to a publisher. The context carries the
// logger used by every internal task.
func New(ctx context.Context, publisher TrajectoryPublisher) *Executive {
	s := DefaultSettings()
	e := &Executive{
		ctx:                   ctx,
		publisher:             publisher,
		lastState:             nav.State{Time: nav.TimeUnset},
		lastUpdateTime:        1, // gate divisor before the first telemetry update
		ribbons:               ribbon.NewManager(ribbon.Heuristic(s.Heuristic), s.CoverageTurningRadius, 2),
		obstacles:             obstacle.NewManager(),
		newMaps:               make(chan worldmap.Map, 1),
		settings:              s,
		turningRadius:         s.TurningRadius,
		coverageTurningRadius: s.CoverageTurningRadius,
		plannerState:          newPlannerStateVar(),
	}
	ribbon.SetWidth(s.LineWidth)
	return e
}

// UpdateCovered ingests a telemetry fix: it marks coverage at (x, y)
// unless the vehicle is turning too sharply, and always refreshes the
// last-known state.
func (e *Executive) UpdateCovered(x, y, speed, heading, t float64) {
	e.stateMu.Lock()
	// The original divides by the last update's timestamp, not the
	// elapsed interval; kept as-is for fidelity.
	rate := math.Abs(heading-e.lastHeading) / e.lastUpdateTime
	e.lastUpdateTime = t
	e.lastHeading = heading
	e.lastState = nav.NewState(x, y, heading, speed, t)
	e.stateMu.Unlock()

	if rate <= coverageHeadingRateMax {
		e.ribbonMu.Lock()
		e.ribbons.Cover(x, y)
		e.ribbonMu.Unlock()
	}
}

// UpdateDynamicObstacle ingests one tracked-vessel state, synthesizing a
// two-point distribution timeline: the observation and a one-second
// projection along its heading, both with unit covariance. The synthesis
// is a stand-in; the distribution interface is the stable contract.
func (e *Executive) UpdateDynamicObstacle(id uint32, s nav.State) {
	projected := s.Push(1)
	dists := []obstacle.Distribution{
		obstacle.NewDistribution(s.X, s.Y, 1, 0, 1, s.Heading, s.Time),
		obstacle.NewDistribution(projected.X, projected.Y, 1, 0, 1, projected.Heading, projected.Time),
	}
	e.UpdateDynamicObstacleDistributions(id, dists)
}

// UpdateDynamicObstacleDistributions ingests a prepared distribution
// timeline for a vessel.
func (e *Executive) UpdateDynamicObstacleDistributions(id uint32, dists []obstacle.Distribution) {
	e.obstacleMu.Lock()
	e.obstacles.Update(id, dists)
	e.obstacleMu.Unlock()
}

// AddRibbon adds a survey line to the mission.
func (e *Executive) AddRibbon(x1, y1, x2, y2 float64) {
	e.ribbonMu.Lock()
	e.ribbons.Add(x1, y1, x2, y2)
	e.ribbonMu.Unlock()
}

// ClearRibbons discards the mission's ribbons, re-creating the manager at
// the currently configured heuristic.
func (e *Executive) ClearRibbons() {
	e.cfgMu.Lock()
	h := ribbon.Heuristic(e.settings.Heuristic)
	r := e.coverageTurningRadius
	e.cfgMu.Unlock()

	e.ribbonMu.Lock()
	e.ribbons = ribbon.NewManager(h, r, 2)
	e.ribbonMu.Unlock()
}

// RibbonsDone reports whether every ribbon is covered.
func (e *Executive) RibbonsDone() bool {
	e.ribbonMu.Lock()
	defer e.ribbonMu.Unlock()
	return e.ribbons.Done()
}

// RefreshMap loads a map asynchronously and stages it for the next
// planning cycle. Callers never wait; failures are logged and leave the
// current map untouched.
func (e *Executive) RefreshMap(path string, latitude, longitude float64) {
	go func() {
		log := logging.FromContext(e.ctx)
		e.mapMu.Lock()
		defer e.mapMu.Unlock()
		if e.currentMapPath == path {
			return
		}
		m, err := worldmap.Load(path, latitude, longitude)
		if err != nil {
			log.Error("Encountered an error loading map at path "+path+". Map was not updated.", "err", err)
			e.currentMapPath = ""
			return
		}
		// replace whatever is staged; last write wins
		select {
		case <-e.newMaps:
		default:
		}
		e.newMaps <- m
		e.currentMapPath = path
		log.Info("done loading map", "path", path)
	}()
}

// SetConfiguration applies runtime parameters. An unknown heuristic index
// is logged and ignored, keeping the previous heuristic.
func (e *Executive) SetConfiguration(s Settings) {
	log := logging.FromContext(e.ctx)

	e.cfgMu.Lock()
	prevHeuristic := e.settings.Heuristic
	e.settings = s
	e.turningRadius = s.TurningRadius
	e.coverageTurningRadius = s.CoverageTurningRadius
	if s.Visualization && e.visualizer == nil {
		w, err := viz.Open(s.VisualizationDir)
		if err != nil {
			log.Error("could not open visualization log", "err", err)
		} else {
			e.visualizer = w
		}
	}
	e.cfgMu.Unlock()

	ribbon.SetWidth(s.LineWidth)

	if s.Heuristic >= int(ribbon.MaxDistance) && s.Heuristic <= int(ribbon.TspDubinsNoSplitKRibbons) {
		e.ribbonMu.Lock()
		e.ribbons.SetHeuristic(ribbon.Heuristic(s.Heuristic))
		e.ribbonMu.Unlock()
	} else {
		log.Warn("unknown heuristic, ignoring", "heuristic", s.Heuristic)
		e.cfgMu.Lock()
		e.settings.Heuristic = prevHeuristic
		e.cfgMu.Unlock()
	}
}

// StartPlanner spawns the planning task. A default empty map is installed
// if none has been loaded yet.
func (e *Executive) StartPlanner() {
	e.cfgMu.Lock()
	if e.currentMap == nil {
		e.currentMap = worldmap.EmptyMap{}
	}
	e.cfgMu.Unlock()

	e.loopDone = make(chan struct{})
	go e.planLoop()
}

// CancelPlanner asks the planning task to stop after its current cycle.
func (e *Executive) CancelPlanner() {
	e.plannerState.compareAndSet(Running, Cancelled)
}

// PlannerIsRunning reports whether the planning task is active.
func (e *Executive) PlannerIsRunning() bool {
	return e.plannerState.get() == Running
}

// Terminate cancels the planner and waits up to the grace period for the
// planning task to exit.
func (e *Executive) Terminate() {
	e.CancelPlanner()
	if e.loopDone != nil {
		select {
		case <-e.loopDone:
		case <-time.After(terminateGracePeriod):
		}
	}
	e.cfgMu.Lock()
	w := e.visualizer
	e.visualizer = nil
	e.cfgMu.Unlock()
	w.Close()
}

// snapshotTelemetry reads the telemetry tuple atomically.
func (e *Executive) snapshotTelemetry() nav.State {
	e.stateMu.Lock()
	defer e.stateMu.Unlock()
	return e.lastState
}

// snapshotRibbons deep-copies the ribbon manager for one iteration.
func (e *Executive) snapshotRibbons() *ribbon.Manager {
	e.ribbonMu.Lock()
	defer e.ribbonMu.Unlock()
	return e.ribbons.Clone()
}

// snapshotObstacles deep-copies the obstacle manager for one iteration.
func (e *Executive) snapshotObstacles() *obstacle.Manager {
	e.obstacleMu.Lock()
	defer e.obstacleMu.Unlock()
	return e.obstacles.Snapshot()
}
