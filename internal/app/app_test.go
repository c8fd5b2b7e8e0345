package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"goaltrack/internal/model"
	"goaltrack/internal/tracker"
	"goaltrack/internal/ui/confirm"
	"goaltrack/internal/ui/goalform"
	"goaltrack/internal/ui/taskform"
	"goaltrack/tests/testutil"
)

func newTestModel(t *testing.T) (Model, *tracker.Tracker) {
	t.Helper()

	tr := tracker.New(testutil.NewTestFileStore(t))
	if err := tr.Initialize(context.Background()); err != nil {
		t.Fatalf("initializing tracker: %v", err)
	}

	// SweepIntervalSec stays zero so no timer commands fire mid-test.
	cfg := model.AppConfig{}
	cfg.Display.RateWindowWeeks = 4

	m := New(tr, cfg, "")
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 32})
	return m, tr
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("unexpected model type: %T", next)
	}
	return out, cmd
}

// drain executes commands and feeds their messages back into the model
// until the chain goes quiet, standing in for the Bubble Tea runtime.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()

	for cmd != nil {
		msg := cmd()
		if msg == nil {
			break
		}
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, c := range batch {
				m = drain(t, m, c)
			}
			return m
		}
		m, cmd = update(t, m, msg)
	}
	return m
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestInitialState(t *testing.T) {
	m, _ := newTestModel(t)

	if m.currentView != ViewGoals {
		t.Fatalf("expected goals view on startup, got %d", m.currentView)
	}
	if !m.ready {
		t.Fatalf("expected model ready after window size")
	}
	if !strings.Contains(m.View(), "Goal Tracker") {
		t.Fatalf("expected header in rendered view")
	}
}

func TestViewBeforeReady(t *testing.T) {
	tr := tracker.New(testutil.NewTestFileStore(t))
	m := New(tr, model.AppConfig{}, "")

	if m.View() != "Loading..." {
		t.Fatalf("expected loading placeholder before the first window size")
	}
}

func TestViewSwitchingKeys(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := update(t, m, keyPress('t'))
	if m.currentView != ViewTasks {
		t.Fatalf("expected tasks view after t, got %d", m.currentView)
	}
	if cmd == nil {
		t.Fatalf("expected a reload command on view switch")
	}

	m, _ = update(t, m, keyPress('s'))
	if m.currentView != ViewStats {
		t.Fatalf("expected stats view after s, got %d", m.currentView)
	}

	m, _ = update(t, m, keyPress('g'))
	if m.currentView != ViewGoals {
		t.Fatalf("expected goals view after g, got %d", m.currentView)
	}
}

func TestTabCyclesListViews(t *testing.T) {
	m, _ := newTestModel(t)

	want := []ViewState{ViewTasks, ViewStats, ViewGoals}
	for _, expected := range want {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
		if m.currentView != expected {
			t.Fatalf("expected view %d in tab order, got %d", expected, m.currentView)
		}
	}
}

func TestHelpToggle(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = update(t, m, keyPress('?'))
	if m.currentView != ViewHelp {
		t.Fatalf("expected help view, got %d", m.currentView)
	}
	if m.previousView != ViewGoals {
		t.Fatalf("expected previous view recorded")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.currentView != ViewGoals {
		t.Fatalf("expected esc to restore the previous view, got %d", m.currentView)
	}

	// ? toggles help off as well.
	m, _ = update(t, m, keyPress('?'))
	m, _ = update(t, m, keyPress('?'))
	if m.currentView != ViewGoals {
		t.Fatalf("expected ? to close help, got %d", m.currentView)
	}
}

func TestQuitKeys(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := update(t, m, keyPress('q'))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected quit message from q")
	}

	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected quit message from ctrl+c")
	}
}

func TestNewKeyOpensForms(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := update(t, m, keyPress('n'))
	if m.currentView != ViewGoalForm {
		t.Fatalf("expected goal form, got %d", m.currentView)
	}
	if cmd == nil {
		t.Fatalf("expected form init command")
	}

	m, _ = update(t, m, goalform.GoalFormCancelMsg{})
	if m.currentView != ViewGoals {
		t.Fatalf("expected cancel to return to goals, got %d", m.currentView)
	}

	m, cmd = update(t, m, keyPress('t'))
	m = drain(t, m, cmd)
	m, _ = update(t, m, keyPress('n'))
	if m.currentView != ViewTaskForm {
		t.Fatalf("expected task form, got %d", m.currentView)
	}

	m, _ = update(t, m, taskform.TaskFormCancelMsg{})
	if m.currentView != ViewTasks {
		t.Fatalf("expected cancel to return to tasks, got %d", m.currentView)
	}
}

func TestQInsideFormTypesInsteadOfQuitting(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := update(t, m, keyPress('n'))
	m = drain(t, m, cmd)

	m, _ = update(t, m, keyPress('q'))
	if m.currentView != ViewGoalForm {
		t.Fatalf("expected q to be typed into the form, got view %d", m.currentView)
	}
}

func TestGoalSubmissionAddsGoal(t *testing.T) {
	m, tr := newTestModel(t)

	m, cmd := update(t, m, goalform.GoalSubmittedMsg{Name: "run 5k", DeadlineDays: 14})
	if m.currentView != ViewGoals {
		t.Fatalf("expected return to goals view, got %d", m.currentView)
	}
	m = drain(t, m, cmd)

	goals := tr.Goals()
	if len(goals) != 1 || goals[0].Name != "run 5k" || goals[0].DeadlineDays != 14 {
		t.Fatalf("expected submitted goal in tracker, got %+v", goals)
	}
	if m.statusMessage != "" {
		t.Fatalf("expected clean status after success, got %q", m.statusMessage)
	}
}

func TestTaskSubmissionAddsTask(t *testing.T) {
	m, tr := newTestModel(t)

	m, cmd := update(t, m, taskform.TaskSubmittedMsg{Name: "gym", DaysOfWeek: []int{0, 2}})
	if m.currentView != ViewTasks {
		t.Fatalf("expected return to tasks view, got %d", m.currentView)
	}
	m = drain(t, m, cmd)

	tasks := tr.DailyTasks()
	if len(tasks) != 1 || tasks[0].Name != "gym" {
		t.Fatalf("expected submitted task in tracker, got %+v", tasks)
	}
	if len(tasks[0].DaysOfWeek) != 2 {
		t.Fatalf("expected two scheduled days, got %v", tasks[0].DaysOfWeek)
	}
}

func TestMutationErrorShownInStatusBar(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := update(t, m, goalAddedMsg{err: errors.New("disk full")})
	m = drain(t, m, cmd)

	if m.statusMessage != "disk full" {
		t.Fatalf("expected error in status message, got %q", m.statusMessage)
	}
	if !strings.Contains(m.View(), "disk full") {
		t.Fatalf("expected error rendered in the status bar")
	}
}

func TestCompleteKeyActsOnSelectedGoal(t *testing.T) {
	m, tr := newTestModel(t)

	if _, err := tr.AddGoal(context.Background(), "read book", 10); err != nil {
		t.Fatalf("adding goal: %v", err)
	}
	m = drain(t, m, m.goalList.LoadGoals())

	m, cmd := update(t, m, keyPress('c'))
	if cmd == nil {
		t.Fatalf("expected completion command for the selected goal")
	}
	m = drain(t, m, cmd)

	if !tr.Goals()[0].Completed {
		t.Fatalf("expected selected goal completed")
	}
}

func TestDeleteKeyAsksForConfirmation(t *testing.T) {
	m, tr := newTestModel(t)

	if _, err := tr.AddDailyTask(context.Background(), "gym", []int{0}); err != nil {
		t.Fatalf("adding task: %v", err)
	}

	m, cmd := update(t, m, keyPress('t'))
	m = drain(t, m, cmd)

	m, cmd = update(t, m, keyPress('d'))
	if m.currentView != ViewConfirmDelete {
		t.Fatalf("expected confirmation dialog, got view %d", m.currentView)
	}
	if cmd == nil {
		t.Fatalf("expected dialog init command")
	}

	m, cmd = update(t, m, confirm.ConfirmedMsg{})
	if m.currentView != ViewTasks {
		t.Fatalf("expected return to tasks view, got %d", m.currentView)
	}
	m = drain(t, m, cmd)

	if len(tr.DailyTasks()) != 0 {
		t.Fatalf("expected task deleted, got %+v", tr.DailyTasks())
	}
}

func TestDeleteDismissalKeepsEntity(t *testing.T) {
	m, tr := newTestModel(t)

	if _, err := tr.AddGoal(context.Background(), "keep me", 10); err != nil {
		t.Fatalf("adding goal: %v", err)
	}
	m = drain(t, m, m.goalList.LoadGoals())

	m, _ = update(t, m, keyPress('d'))
	if m.currentView != ViewConfirmDelete {
		t.Fatalf("expected confirmation dialog, got view %d", m.currentView)
	}

	m, _ = update(t, m, confirm.DismissedMsg{})
	if m.currentView != ViewGoals {
		t.Fatalf("expected return to goals view, got %d", m.currentView)
	}
	if len(tr.Goals()) != 1 {
		t.Fatalf("expected goal kept after dismissal, got %+v", tr.Goals())
	}
}

func TestRefreshKeySweepsDeadlines(t *testing.T) {
	m, tr := newTestModel(t)

	// A zero day deadline is already past by the time the key arrives.
	if _, err := tr.AddGoal(context.Background(), "instant", 0); err != nil {
		t.Fatalf("adding goal: %v", err)
	}

	m, cmd := update(t, m, keyPress('r'))
	if cmd == nil {
		t.Fatalf("expected sweep command")
	}
	m = drain(t, m, cmd)

	if !tr.Goals()[0].Failed {
		t.Fatalf("expected expired goal failed after manual sweep")
	}
}

func TestSweepErrorShownInStatusBar(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := update(t, m, sweepDoneMsg{err: errors.New("sweep broke")})
	if cmd != nil {
		t.Fatalf("expected no reload after a failed sweep")
	}
	if m.statusMessage != "sweep broke" {
		t.Fatalf("expected sweep error recorded, got %q", m.statusMessage)
	}
}
