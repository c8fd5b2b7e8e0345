package taskform

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"goaltrack/internal/theme"
)

// TaskSubmittedMsg is dispatched when the user submits the new-task form.
type TaskSubmittedMsg struct {
	Name       string
	DaysOfWeek []int
}

// TaskFormCancelMsg is dispatched when the user cancels the form.
type TaskFormCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	name string
	days []int
}

// Model is the Bubble Tea model for the new daily task form.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	width  int
	height int
}

// New creates a new task form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start initializes the form for creating a new daily task.
func (m *Model) Start() tea.Cmd {
	m.fb.name = ""
	m.fb.days = nil
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the task form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return TaskFormCancelMsg{} }
	}

	return m, cmd
}

// View renders the task form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("New Daily Task") + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("What should happen every scheduled day?").
				Value(&m.fb.name).
				Validate(validateRequired("Name")),
			huh.NewMultiSelect[int]().
				Title("Active days").
				Options(
					huh.NewOption("Monday", 0),
					huh.NewOption("Tuesday", 1),
					huh.NewOption("Wednesday", 2),
					huh.NewOption("Thursday", 3),
					huh.NewOption("Friday", 4),
					huh.NewOption("Saturday", 5),
					huh.NewOption("Sunday", 6),
				).
				Value(&m.fb.days).
				Validate(validateDaysChosen),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	name := strings.TrimSpace(m.fb.name)
	days := append([]int(nil), m.fb.days...)
	return func() tea.Msg {
		return TaskSubmittedMsg{Name: name, DaysOfWeek: days}
	}
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateDaysChosen(days []int) error {
	if len(days) == 0 {
		return fmt.Errorf("pick at least one day")
	}
	return nil
}
