package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// taskAddedMsg is sent after a new daily task is persisted.
type taskAddedMsg struct{ err error }

// taskCompletedMsg is sent after a daily task completion is persisted.
type taskCompletedMsg struct{ err error }

// taskDeletedMsg is sent after a daily task is deleted.
type taskDeletedMsg struct{ err error }

// addDailyTask persists a new daily task through the tracker.
func (m *Model) addDailyTask(name string, daysOfWeek []int) tea.Cmd {
	tr := m.tracker
	return func() tea.Msg {
		_, err := tr.AddDailyTask(context.Background(), name, daysOfWeek)
		return taskAddedMsg{err: err}
	}
}

// completeDailyTask logs today's completion through the tracker.
func (m *Model) completeDailyTask(id string) tea.Cmd {
	tr := m.tracker
	return func() tea.Msg {
		_, err := tr.CompleteDailyTask(context.Background(), id)
		return taskCompletedMsg{err: err}
	}
}

// deleteDailyTask removes a daily task through the tracker.
func (m *Model) deleteDailyTask(id string) tea.Cmd {
	tr := m.tracker
	return func() tea.Msg {
		err := tr.DeleteDailyTask(context.Background(), id)
		return taskDeletedMsg{err: err}
	}
}
