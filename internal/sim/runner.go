package sim

import (
	"context"
	"time"

	"asv-planner/internal/config"
	"asv-planner/internal/executive"
	"asv-planner/internal/logging"
	"asv-planner/internal/nav"
	"asv-planner/internal/telemetry"
)

// telemetryInterval paces the simulated telemetry feed.
const telemetryInterval = 500 * time.Millisecond

// Runner wires an executive to the simulated controller and drives a
// mission to completion.
type Runner struct {
	cfg     *config.MissionConfig
	exec    *executive.Executive
	ctrl    *Controller
	traffic []*Vessel
	writer  *telemetry.MultiWriter
}

// NewRunner builds the mission from its config.
func NewRunner(ctx context.Context, cfg *config.MissionConfig, writer *telemetry.MultiWriter) *Runner {
	start := nav.NewState(cfg.Start.X, cfg.Start.Y, cfg.Start.Heading, 0, 0)
	ctrl := NewController(cfg.MissionID, start, writer)
	exec := executive.New(ctx, ctrl)

	exec.SetConfiguration(executive.Settings{
		TurningRadius:         cfg.Vehicle.TurningRadius,
		CoverageTurningRadius: cfg.Vehicle.CoverageTurningRadius,
		MaxSpeed:              cfg.Vehicle.MaxSpeed,
		LineWidth:             cfg.Planner.LineWidth,
		K:                     cfg.Planner.K,
		Heuristic:             cfg.Planner.Heuristic,
		Visualization:         cfg.Planner.Visualization,
		VisualizationDir:      cfg.Planner.VisualizationDir,
	})
	for _, r := range cfg.Ribbons {
		exec.AddRibbon(r.X1, r.Y1, r.X2, r.Y2)
	}
	if cfg.Map.Path != "" {
		exec.RefreshMap(cfg.Map.Path, cfg.Map.Latitude, cfg.Map.Longitude)
	}

	return &Runner{
		cfg:     cfg,
		exec:    exec,
		ctrl:    ctrl,
		traffic: NewTraffic(cfg.Traffic, 0),
		writer:  writer,
	}
}

// Run starts the planner and feeds telemetry until the mission completes
// or the context is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	log := logging.FromContext(ctx)
	log.Info("starting mission", "mission_id", r.cfg.MissionID,
		"ribbons", len(r.cfg.Ribbons), "tick", telemetryInterval)

	// prime the executive with the initial fix before planning starts
	start := nav.NewState(r.cfg.Start.X, r.cfg.Start.Y, r.cfg.Start.Heading,
		r.cfg.Vehicle.MaxSpeed, r.ctrl.Time())
	r.exec.UpdateCovered(start.X, start.Y, start.Speed, start.Heading, start.Time)

	r.exec.StartPlanner()
	defer r.exec.Terminate()

	ticker := time.NewTicker(telemetryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s := r.ctrl.CurrentState()
			r.exec.UpdateCovered(s.X, s.Y, s.Speed, s.Heading, s.Time)
			r.writer.WriteState(telemetry.StateRow{
				MissionID: r.cfg.MissionID,
				X:         s.X, Y: s.Y, Heading: s.Heading, Speed: s.Speed,
				PlanTime:  s.Time,
				Timestamp: time.Now().UTC(),
			})
			now := r.ctrl.Time()
			for _, v := range r.traffic {
				r.exec.UpdateDynamicObstacle(v.ID, v.Step(now))
			}
		case <-r.ctrl.Done():
			log.Info("mission complete", "mission_id", r.cfg.MissionID)
			return nil
		case <-ctx.Done():
			log.Info("mission aborted", "mission_id", r.cfg.MissionID)
			return ctx.Err()
		}
	}
}

// Executive exposes the underlying executive for operator surfaces.
func (r *Runner) Executive() *executive.Executive { return r.exec }

// Controller exposes the simulated controller.
func (r *Runner) Controller() *Controller { return r.ctrl }
