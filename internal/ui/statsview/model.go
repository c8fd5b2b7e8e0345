package statsview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"goaltrack/internal/model"
	"goaltrack/internal/theme"
	"goaltrack/internal/tracker"
)

// StatsLoadedMsg carries a fresh statistics snapshot for rendering.
type StatsLoadedMsg struct {
	Stats tracker.GoalStats
	Tasks []model.DailyTask
}

// Model is the statistics view component. It shows aggregate goal
// counts plus a per-task completion rate over the configured window.
type Model struct {
	tracker   *tracker.Tracker
	rateWeeks int
	stats     tracker.GoalStats
	tasks     []model.DailyTask
	bar       progress.Model
	width     int
	height    int
}

// New creates a new statistics view model. rateWeeks is the trailing
// window used for daily task completion rates.
func New(tr *tracker.Tracker, rateWeeks, width, height int) Model {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 30
	bar.ShowPercentage = false

	return Model{
		tracker:   tr,
		rateWeeks: rateWeeks,
		bar:       bar,
		width:     width,
		height:    height,
	}
}

// Init returns a command that loads the initial snapshot.
func (m Model) Init() tea.Cmd {
	return m.LoadStats()
}

// Update handles messages for the statistics view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StatsLoadedMsg:
		m.stats = msg.Stats
		m.tasks = msg.Tasks
	}
	return m, nil
}

// View renders the statistics panel.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	labelStyle := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Width(14)

	var b strings.Builder

	b.WriteString(titleStyle.Render("Goal Progress"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %d\n", labelStyle.Render("Total"), m.stats.Total))
	b.WriteString(fmt.Sprintf("%s %s\n",
		labelStyle.Render("Completed"),
		theme.StatusStyle(model.GoalStatusCompleted).Render(fmt.Sprintf("%d", m.stats.Completed))))
	b.WriteString(fmt.Sprintf("%s %s\n",
		labelStyle.Render("Failed"),
		theme.StatusStyle(model.GoalStatusFailed).Render(fmt.Sprintf("%d", m.stats.Failed))))
	b.WriteString(fmt.Sprintf("%s %d\n", labelStyle.Render("In progress"), m.stats.InProgress))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s\n",
		m.bar.ViewAs(m.stats.CompletionRate/100),
		theme.RateStyle(m.stats.CompletionRate).Render(fmt.Sprintf("%.0f%%", m.stats.CompletionRate))))

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(fmt.Sprintf("Daily Tasks (last %d weeks)", m.rateWeeks)))
	b.WriteString("\n")

	if len(m.tasks) == 0 {
		b.WriteString(theme.DimmedStyle.Render("No daily tasks yet."))
		b.WriteString("\n")
	} else {
		nameWidth := 0
		for _, task := range m.tasks {
			if w := lipgloss.Width(task.Name); w > nameWidth {
				nameWidth = w
			}
		}
		nameStyle := lipgloss.NewStyle().Width(nameWidth + 2)

		for _, task := range m.tasks {
			rate := task.CompletionRate(m.rateWeeks)
			b.WriteString(fmt.Sprintf("%s %s %s\n",
				nameStyle.Render(task.Name),
				m.bar.ViewAs(rate/100),
				theme.RateStyle(rate).Render(fmt.Sprintf("%3.0f%%", rate))))
		}
	}

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Render(b.String())
}

// LoadStats returns a tea.Cmd that computes a fresh snapshot.
func (m Model) LoadStats() tea.Cmd {
	tr := m.tracker
	return func() tea.Msg {
		return StatsLoadedMsg{Stats: tr.Stats(), Tasks: tr.DailyTasks()}
	}
}

// SetSize updates the panel dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	barWidth := width / 3
	if barWidth < 10 {
		barWidth = 10
	}
	if barWidth > 40 {
		barWidth = 40
	}
	m.bar.Width = barWidth
}
