// Package tui renders a live mission view: vehicle state, coverage
// progress, and the latest published plan.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"asv-planner/internal/telemetry"
)

type stateMsg struct{ telemetry.StateRow }
type coverageMsg struct{ telemetry.CoverageRow }
type trajectoryMsg struct{ telemetry.TrajectoryRow }
type logMsg struct{ line string }

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	doneStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	sectionStyle = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("8")).Padding(0, 1)
)

const maxLogLines = 200

type model struct {
	missionID string
	width     int
	height    int

	state    telemetry.StateRow
	coverage telemetry.CoverageRow
	plan     telemetry.TrajectoryRow
	logs     []string
	view     viewport.Model
}

func newModel(missionID string) model {
	return model{
		missionID: missionID,
		view:      viewport.New(80, 10),
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.view, cmd = m.view.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.view.Width = msg.Width - 4
		m.view.Height = max(4, msg.Height-12)
	case stateMsg:
		m.state = msg.StateRow
	case coverageMsg:
		m.coverage = msg.CoverageRow
	case trajectoryMsg:
		if msg.IsPlan {
			m.plan = msg.TrajectoryRow
		}
	case logMsg:
		m.logs = append(m.logs, msg.line)
		if len(m.logs) > maxLogLines {
			m.logs = m.logs[len(m.logs)-maxLogLines:]
		}
		width := m.view.Width
		if width <= 0 {
			width = 80
		}
		m.view.SetContent(wordwrap.String(strings.Join(m.logs, "\n"), width))
		m.view.GotoBottom()
	}
	return m, nil
}

func (m model) View() string {
	header := titleStyle.Render("asv-planner — " + m.missionID)

	vehicle := fmt.Sprintf("%s %s  %s %s  %s %s",
		labelStyle.Render("pos"),
		valueStyle.Render(fmt.Sprintf("(%.1f, %.1f)", m.state.X, m.state.Y)),
		labelStyle.Render("hdg"),
		valueStyle.Render(fmt.Sprintf("%.2f", m.state.Heading)),
		labelStyle.Render("spd"),
		valueStyle.Render(fmt.Sprintf("%.2f m/s", m.state.Speed)),
	)

	covText := fmt.Sprintf("%s %s  %s %s",
		labelStyle.Render("ribbons"),
		valueStyle.Render(fmt.Sprintf("%d", m.coverage.Ribbons)),
		labelStyle.Render("uncovered"),
		warnStyle.Render(fmt.Sprintf("%.1f m", m.coverage.UncoveredMeter)),
	)
	if m.coverage.Done {
		covText = doneStyle.Render("all ribbons covered")
	}

	planText := labelStyle.Render("no plan")
	if len(m.plan.Points) > 0 {
		first := m.plan.Points[0]
		last := m.plan.Points[len(m.plan.Points)-1]
		planText = fmt.Sprintf("%s %s  %s %s",
			labelStyle.Render("plan"),
			valueStyle.Render(fmt.Sprintf("%d points", len(m.plan.Points))),
			labelStyle.Render("span"),
			valueStyle.Render(fmt.Sprintf("(%.1f,%.1f) → (%.1f,%.1f)", first.X, first.Y, last.X, last.Y)),
		)
	}

	sections := []string{
		header,
		sectionStyle.Render(vehicle),
		sectionStyle.Render(covText + "\n" + planText),
		sectionStyle.Render(m.view.View()),
		labelStyle.Render("q to quit"),
	}
	return strings.Join(sections, "\n")
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
