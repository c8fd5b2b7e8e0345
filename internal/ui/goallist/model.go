package goallist

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"goaltrack/internal/model"
	"goaltrack/internal/theme"
	"goaltrack/internal/tracker"
)

// GoalsLoadedMsg is sent when goals have been loaded from the tracker.
type GoalsLoadedMsg struct {
	Goals []model.Goal
}

// Model is the goal list view component.
type Model struct {
	list    list.Model
	tracker *tracker.Tracker
	width   int
	height  int
}

// New creates a new goal list model.
func New(tr *tracker.Tracker, width, height int) Model {
	delegate := ItemDelegate{}
	l := list.New([]list.Item{}, delegate, width, height-2)
	l.Title = "Goals"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:    l,
		tracker: tr,
		width:   width,
		height:  height,
	}
}

// Init returns a command that loads the initial set of goals.
func (m Model) Init() tea.Cmd {
	return m.LoadGoals()
}

// Update handles messages for the goal list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case GoalsLoadedMsg:
		items := make([]list.Item, len(msg.Goals))
		for i, g := range msg.Goals {
			items[i] = GoalItem{Goal: g}
		}
		cmd := m.list.SetItems(items)
		return m, cmd
	}

	// Delegate to list model for navigation keys
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// SelectedGoal returns the currently highlighted goal, if any.
func (m Model) SelectedGoal() (model.Goal, bool) {
	item, ok := m.list.SelectedItem().(GoalItem)
	if !ok {
		return model.Goal{}, false
	}
	return item.Goal, true
}

// View renders the goal list.
func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}
	return m.list.View()
}

// renderEmptyState shows guidance text when no goals exist yet.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	return style.Render("No goals yet.\n\nPress n to add one.")
}

// LoadGoals returns a tea.Cmd that fetches the current goal collection.
func (m Model) LoadGoals() tea.Cmd {
	tr := m.tracker
	return func() tea.Msg {
		return GoalsLoadedMsg{Goals: tr.Goals()}
	}
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}
