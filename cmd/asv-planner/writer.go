package main

import (
	"os"

	"asv-planner/internal/config"
	"asv-planner/internal/telemetry"
	"asv-planner/internal/tui"
)

// newWriters sets up the telemetry writer stack from flags and env vars.
// It returns the fan-out writer, an optional TUI wait function, and a
// cleanup function for any file handles.
func newWriters(cfg *config.MissionConfig, printOnly bool, logFile string, withTUI bool) (*telemetry.MultiWriter, func() error, func(), error) {
	cleanup := func() {}

	base, err := baseWriter(printOnly)
	if err != nil {
		return nil, nil, nil, err
	}

	states := []telemetry.Writer{base}
	var trajectories []telemetry.TrajectoryWriter
	var coverages []telemetry.CoverageWriter
	if tw, ok := base.(telemetry.TrajectoryWriter); ok {
		trajectories = append(trajectories, tw)
	}
	if cw, ok := base.(telemetry.CoverageWriter); ok {
		coverages = append(coverages, cw)
	}

	if logFile != "" {
		fw, err := telemetry.NewFileWriter(logFile, logFile+".trajectories", logFile+".coverage")
		if err != nil {
			return nil, nil, nil, err
		}
		states = append(states, fw)
		trajectories = append(trajectories, fw)
		coverages = append(coverages, fw)
		cleanup = func() { fw.Close() }
	}

	var uiWait func() error
	if withTUI {
		uw, wait := tui.NewWriter(cfg.MissionID)
		states = append(states, uw)
		trajectories = append(trajectories, uw)
		coverages = append(coverages, uw)
		uiWait = wait
	}

	return telemetry.NewMultiWriter(states, trajectories, coverages), uiWait, cleanup, nil
}

// baseWriter picks the primary sink: GreptimeDB when configured, a
// colorized console on a TTY, plain JSON otherwise.
func baseWriter(printOnly bool) (telemetry.Writer, error) {
	if !printOnly {
		if endpoint := os.Getenv("ASV_GREPTIME_ENDPOINT"); endpoint != "" {
			return telemetry.NewGreptimeDBWriter(endpoint, "public")
		}
	}
	if telemetry.StdoutIsTerminal() {
		return telemetry.NewColorWriter(), nil
	}
	return &telemetry.StdoutWriter{}, nil
}
