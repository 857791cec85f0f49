package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"asv-planner/internal/telemetry"
)

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// Writer is a telemetry writer that feeds the TUI.
type Writer struct {
	program teaProgram
}

// NewWriter starts the TUI program and returns its writer plus a function
// that blocks until the UI exits.
func NewWriter(missionID string) (*Writer, func() error) {
	p := tea.NewProgram(newModel(missionID), tea.WithAltScreen())
	wait := func() error {
		_, err := p.Run()
		return err
	}
	return &Writer{program: p}, wait
}

// WriteState forwards a state row to the UI.
func (w *Writer) WriteState(row telemetry.StateRow) error {
	w.program.Send(stateMsg{row})
	return nil
}

// WriteTrajectory forwards a trajectory row to the UI.
func (w *Writer) WriteTrajectory(row telemetry.TrajectoryRow) error {
	w.program.Send(trajectoryMsg{row})
	if row.IsPlan {
		w.program.Send(logMsg{fmt.Sprintf("[%s] plan published, %d points",
			row.Timestamp.Format(time.TimeOnly), len(row.Points))})
	}
	return nil
}

// WriteCoverage forwards coverage progress to the UI.
func (w *Writer) WriteCoverage(row telemetry.CoverageRow) error {
	w.program.Send(coverageMsg{row})
	if row.Done {
		w.program.Send(logMsg{fmt.Sprintf("[%s] mission complete",
			row.Timestamp.Format(time.TimeOnly))})
	}
	return nil
}
