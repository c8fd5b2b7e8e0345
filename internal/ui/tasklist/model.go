package tasklist

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"goaltrack/internal/model"
	"goaltrack/internal/theme"
	"goaltrack/internal/tracker"
)

// TasksLoadedMsg is sent when daily tasks have been loaded from the tracker.
type TasksLoadedMsg struct {
	Tasks []model.DailyTask
}

// Model is the daily task list view component.
type Model struct {
	list    list.Model
	tracker *tracker.Tracker
	width   int
	height  int
}

// New creates a new daily task list model. rateWeeks is the trailing
// window used for the per-task completion rate column.
func New(tr *tracker.Tracker, rateWeeks, width, height int) Model {
	delegate := ItemDelegate{RateWeeks: rateWeeks}
	l := list.New([]list.Item{}, delegate, width, height-2)
	l.Title = "Daily Tasks"
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

// Init returns a command that loads the initial set of tasks.
func (m Model) Init() tea.Cmd {
	return m.LoadTasks()
}

// Update handles messages for the daily task list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TasksLoadedMsg:
		items := make([]list.Item, len(msg.Tasks))
		for i, task := range msg.Tasks {
			items[i] = TaskItem{Task: task}
		}
		cmd := m.list.SetItems(items)
		return m, cmd
	}

	// Delegate to list model for navigation keys
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// SelectedTask returns the currently highlighted task, if any.
func (m Model) SelectedTask() (model.DailyTask, bool) {
	item, ok := m.list.SelectedItem().(TaskItem)
	if !ok {
		return model.DailyTask{}, false
	}
	return item.Task, true
}

// View renders the daily task list.
func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}
	return m.list.View()
}

// renderEmptyState shows guidance text when no tasks exist yet.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	return style.Render("No daily tasks yet.\n\nPress n to add one.")
}

// LoadTasks returns a tea.Cmd that fetches the current task collection.
func (m Model) LoadTasks() tea.Cmd {
	tr := m.tracker
	return func() tea.Msg {
		return TasksLoadedMsg{Tasks: tr.DailyTasks()}
	}
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}
