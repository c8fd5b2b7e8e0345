package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"goaltrack/internal/keys"
	"goaltrack/internal/model"
	"goaltrack/internal/tracker"
	"goaltrack/internal/ui"
	"goaltrack/internal/ui/confirm"
	"goaltrack/internal/ui/goalform"
	"goaltrack/internal/ui/goallist"
	helpview "goaltrack/internal/ui/help"
	"goaltrack/internal/ui/statsview"
	"goaltrack/internal/ui/taskform"
	"goaltrack/internal/ui/tasklist"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewGoals ViewState = iota
	ViewTasks
	ViewStats
	ViewHelp
	ViewGoalForm
	ViewTaskForm
	ViewConfirmDelete
)

// sweepTickMsg fires when the periodic deadline check is due.
type sweepTickMsg struct{}

// Model is the root Bubble Tea model that manages view routing,
// layout, and access to the tracker.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	tracker      *tracker.Tracker
	keys         *keys.KeyMap

	goalList     goallist.Model
	taskList     tasklist.Model
	statsView    statsview.Model
	helpView     helpview.Model
	goalFormView goalform.Model
	taskFormView taskform.Model
	confirmView  confirm.Model

	// The entity the pending delete confirmation refers to.
	deleteKind string
	deleteID   string

	sweepInterval time.Duration
	webURL        string
	ready         bool
	statusMessage string
}

// New creates a new root application model. webURL is shown in the
// header when the web dashboard is enabled, empty otherwise.
func New(tr *tracker.Tracker, cfg model.AppConfig, webURL string) Model {
	k := keys.DefaultKeyMap()
	rateWeeks := cfg.Display.RateWindowWeeks

	return Model{
		currentView:   ViewGoals,
		tracker:       tr,
		keys:          k,
		goalList:      goallist.New(tr, 80, 24),
		taskList:      tasklist.New(tr, rateWeeks, 80, 24),
		statsView:     statsview.New(tr, rateWeeks, 80, 24),
		helpView:      helpview.New(k, 80, 24),
		goalFormView:  goalform.New(80, 24),
		taskFormView:  taskform.New(80, 24),
		confirmView:   confirm.New(80, 24),
		sweepInterval: time.Duration(cfg.Display.SweepIntervalSec) * time.Second,
		webURL:        webURL,
	}
}

// Init returns the initial commands to load data and arm the periodic
// deadline check.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.goalList.Init(),
		m.taskList.Init(),
		m.statsView.Init(),
		m.scheduleSweep(),
	)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.goalList.SetSize(contentWidth, contentHeight)
		m.taskList.SetSize(contentWidth, contentHeight)
		m.statsView.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.goalFormView.SetSize(contentWidth, contentHeight)
		m.taskFormView.SetSize(contentWidth, contentHeight)
		m.confirmView.SetSize(contentWidth, contentHeight)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case sweepTickMsg:
		return m, tea.Batch(m.runSweep(), m.scheduleSweep())

	case sweepDoneMsg:
		if msg.err != nil {
			m.statusMessage = msg.err.Error()
			return m, nil
		}
		// Reload even when nothing transitioned so day-sensitive columns
		// stay current across midnight.
		return m, m.reloadData()

	case goallist.GoalsLoadedMsg:
		var cmd tea.Cmd
		m.goalList, cmd = m.goalList.Update(msg)
		return m, cmd

	case tasklist.TasksLoadedMsg:
		var cmd tea.Cmd
		m.taskList, cmd = m.taskList.Update(msg)
		return m, cmd

	case statsview.StatsLoadedMsg:
		var cmd tea.Cmd
		m.statsView, cmd = m.statsView.Update(msg)
		return m, cmd

	case goalform.GoalSubmittedMsg:
		m.currentView = ViewGoals
		return m, m.addGoal(msg.Name, msg.DeadlineDays)

	case goalform.GoalFormCancelMsg:
		m.currentView = ViewGoals
		return m, nil

	case taskform.TaskSubmittedMsg:
		m.currentView = ViewTasks
		return m, m.addDailyTask(msg.Name, msg.DaysOfWeek)

	case taskform.TaskFormCancelMsg:
		m.currentView = ViewTasks
		return m, nil

	case confirm.ConfirmedMsg:
		m.currentView = m.previousView
		switch m.deleteKind {
		case "goal":
			return m, m.deleteGoal(m.deleteID)
		case "task":
			return m, m.deleteDailyTask(m.deleteID)
		}
		return m, nil

	case confirm.DismissedMsg:
		m.currentView = m.previousView
		return m, nil

	case goalAddedMsg:
		return m, m.afterMutation(msg.err)

	case goalCompletedMsg:
		return m, m.afterMutation(msg.err)

	case goalDeletedMsg:
		return m, m.afterMutation(msg.err)

	case taskAddedMsg:
		return m, m.afterMutation(msg.err)

	case taskCompletedMsg:
		return m, m.afterMutation(msg.err)

	case taskDeletedMsg:
		return m, m.afterMutation(msg.err)

	case tea.KeyMsg:
		// Global keys that work regardless of current view
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.inListView() {
				return m, tea.Quit
			}

		case "?":
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}
			if m.inListView() {
				m.previousView = m.currentView
				m.currentView = ViewHelp
				return m, nil
			}

		case "esc":
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}

		case "tab":
			if m.inListView() {
				m.currentView = m.nextListView()
				return m, m.refreshView(m.currentView)
			}

		case "g":
			if m.inListView() {
				m.currentView = ViewGoals
				return m, m.goalList.LoadGoals()
			}

		case "t":
			if m.inListView() {
				m.currentView = ViewTasks
				return m, m.taskList.LoadTasks()
			}

		case "s":
			if m.inListView() {
				m.currentView = ViewStats
				return m, m.statsView.LoadStats()
			}

		case "n":
			if m.currentView == ViewGoals {
				m.previousView = m.currentView
				m.currentView = ViewGoalForm
				return m, m.goalFormView.Start()
			}
			if m.currentView == ViewTasks {
				m.previousView = m.currentView
				m.currentView = ViewTaskForm
				return m, m.taskFormView.Start()
			}

		case "c":
			if m.currentView == ViewGoals {
				if g, ok := m.goalList.SelectedGoal(); ok {
					return m, m.completeGoal(g.ID)
				}
			}
			if m.currentView == ViewTasks {
				if task, ok := m.taskList.SelectedTask(); ok {
					return m, m.completeDailyTask(task.ID)
				}
			}

		case "d":
			if m.currentView == ViewGoals {
				if g, ok := m.goalList.SelectedGoal(); ok {
					m.previousView = m.currentView
					m.currentView = ViewConfirmDelete
					m.deleteKind, m.deleteID = "goal", g.ID
					return m, m.confirmView.Start(
						fmt.Sprintf("Delete goal %q?", g.Name),
						"Its deadline record disappears with it.",
					)
				}
			}
			if m.currentView == ViewTasks {
				if task, ok := m.taskList.SelectedTask(); ok {
					m.previousView = m.currentView
					m.currentView = ViewConfirmDelete
					m.deleteKind, m.deleteID = "task", task.ID
					return m, m.confirmView.Start(
						fmt.Sprintf("Delete daily task %q?", task.Name),
						"Its completion log disappears with it.",
					)
				}
			}

		case "r":
			if m.inListView() {
				return m, m.runSweep()
			}
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewGoals:
		m.goalList, cmd = m.goalList.Update(msg)
	case ViewTasks:
		m.taskList, cmd = m.taskList.Update(msg)
	case ViewStats:
		m.statsView, cmd = m.statsView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewGoalForm:
		m.goalFormView, cmd = m.goalFormView.Update(msg)
	case ViewTaskForm:
		m.taskFormView, cmd = m.taskFormView.Update(msg)
	case ViewConfirmDelete:
		m.confirmView, cmd = m.confirmView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Goal Tracker", m.headerStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewGoals:
		return m.goalList.View()
	case ViewTasks:
		return m.taskList.View()
	case ViewStats:
		return m.statsView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewGoalForm:
		return m.goalFormView.View()
	case ViewTaskForm:
		return m.taskFormView.View()
	case ViewConfirmDelete:
		return m.confirmView.View()
	default:
		return ""
	}
}

// headerStatus returns the right-aligned header label.
func (m Model) headerStatus() string {
	if m.webURL != "" {
		return m.webURL
	}
	return "web off"
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	// Show the last tracker error prominently when present.
	if m.statusMessage != "" && m.inListView() {
		return m.statusMessage
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewGoalForm, ViewTaskForm:
		return "enter submit | esc cancel"
	case ViewConfirmDelete:
		return "y / n | enter confirm | esc cancel"
	case ViewStats:
		return "tab next view | g goals | t tasks | q quit | ? help"
	default:
		return "n new | c complete | d delete | r check deadlines | tab next view | q quit | ? help"
	}
}

// inListView reports whether the current view is one of the three
// top-level browsing views.
func (m Model) inListView() bool {
	switch m.currentView {
	case ViewGoals, ViewTasks, ViewStats:
		return true
	}
	return false
}

// nextListView returns the view after the current one in tab order.
func (m Model) nextListView() ViewState {
	switch m.currentView {
	case ViewGoals:
		return ViewTasks
	case ViewTasks:
		return ViewStats
	default:
		return ViewGoals
	}
}

// refreshView returns the load command for the given browsing view.
func (m Model) refreshView(v ViewState) tea.Cmd {
	switch v {
	case ViewGoals:
		return m.goalList.LoadGoals()
	case ViewTasks:
		return m.taskList.LoadTasks()
	case ViewStats:
		return m.statsView.LoadStats()
	default:
		return nil
	}
}

// reloadData reloads every browsing view from the tracker.
func (m Model) reloadData() tea.Cmd {
	return tea.Batch(
		m.goalList.LoadGoals(),
		m.taskList.LoadTasks(),
		m.statsView.LoadStats(),
	)
}

// afterMutation records the outcome of a tracker mutation and reloads.
func (m *Model) afterMutation(err error) tea.Cmd {
	if err != nil {
		m.statusMessage = err.Error()
	} else {
		m.statusMessage = ""
	}
	return m.reloadData()
}

// scheduleSweep arms the next periodic deadline check.
func (m Model) scheduleSweep() tea.Cmd {
	if m.sweepInterval <= 0 {
		return nil
	}
	return tea.Tick(m.sweepInterval, func(time.Time) tea.Msg {
		return sweepTickMsg{}
	})
}
