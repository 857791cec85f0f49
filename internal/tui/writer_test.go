package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"asv-planner/internal/telemetry"
)

type fakeProgram struct {
	msgs []tea.Msg
}

func (f *fakeProgram) Send(msg tea.Msg) { f.msgs = append(f.msgs, msg) }

func TestWriter_ForwardsRows(t *testing.T) {
	p := &fakeProgram{}
	w := &Writer{program: p}

	w.WriteState(telemetry.StateRow{MissionID: "m"})
	w.WriteCoverage(telemetry.CoverageRow{Done: true, Timestamp: time.Now()})
	w.WriteTrajectory(telemetry.TrajectoryRow{IsPlan: true, Timestamp: time.Now()})

	var states, coverages, trajectories, logs int
	for _, m := range p.msgs {
		switch m.(type) {
		case stateMsg:
			states++
		case coverageMsg:
			coverages++
		case trajectoryMsg:
			trajectories++
		case logMsg:
			logs++
		}
	}
	if states != 1 || coverages != 1 || trajectories != 1 {
		t.Errorf("rows not forwarded: states=%d coverages=%d trajectories=%d", states, coverages, trajectories)
	}
	if logs != 2 { // plan published + mission complete
		t.Errorf("expected 2 log lines, got %d", logs)
	}
}

func TestModel_UpdatesSections(t *testing.T) {
	m := newModel("mission-x")

	next, _ := m.Update(stateMsg{telemetry.StateRow{X: 3, Y: 4}})
	m = next.(model)
	next, _ = m.Update(coverageMsg{telemetry.CoverageRow{Ribbons: 2, UncoveredMeter: 40}})
	m = next.(model)

	view := m.View()
	if view == "" {
		t.Fatal("empty view")
	}
}
