package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// goalAddedMsg is sent after a new goal is persisted.
type goalAddedMsg struct{ err error }

// goalCompletedMsg is sent after a goal completion is persisted.
type goalCompletedMsg struct{ err error }

// goalDeletedMsg is sent after a goal is deleted.
type goalDeletedMsg struct{ err error }

// sweepDoneMsg reports the outcome of a deadline check.
type sweepDoneMsg struct {
	changed bool
	err     error
}

// addGoal persists a new goal through the tracker.
func (m *Model) addGoal(name string, deadlineDays int) tea.Cmd {
	tr := m.tracker
	return func() tea.Msg {
		_, err := tr.AddGoal(context.Background(), name, deadlineDays)
		return goalAddedMsg{err: err}
	}
}

// completeGoal marks a goal as completed through the tracker.
func (m *Model) completeGoal(id string) tea.Cmd {
	tr := m.tracker
	return func() tea.Msg {
		_, err := tr.CompleteGoal(context.Background(), id)
		return goalCompletedMsg{err: err}
	}
}

// deleteGoal removes a goal through the tracker.
func (m *Model) deleteGoal(id string) tea.Cmd {
	tr := m.tracker
	return func() tea.Msg {
		err := tr.DeleteGoal(context.Background(), id)
		return goalDeletedMsg{err: err}
	}
}

// runSweep checks every goal for a passed deadline.
func (m *Model) runSweep() tea.Cmd {
	tr := m.tracker
	return func() tea.Msg {
		changed, err := tr.CheckFailedGoals(context.Background())
		return sweepDoneMsg{changed: changed, err: err}
	}
}
