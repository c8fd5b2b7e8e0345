package goallist

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"goaltrack/internal/model"
	"goaltrack/internal/theme"
)

// GoalItem wraps a model.Goal so it can be used in a bubbles/list.
type GoalItem struct {
	Goal model.Goal
}

// FilterValue returns the string used for fuzzy filtering.
func (i GoalItem) FilterValue() string { return i.Goal.Name }

// ItemDelegate implements list.ItemDelegate for rendering goal rows.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single goal line.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	gi, ok := item.(GoalItem)
	if !ok {
		return
	}

	g := gi.Goal
	isSelected := index == m.Index()

	prefix := "○"
	switch {
	case g.Completed:
		prefix = "✓"
	case g.Failed:
		prefix = "✗"
	}

	statusBadge := theme.StatusStyle(g.Status()).Render(g.Status())
	age := theme.DimmedStyle.Render(relativeAge(g.CreatedAt))

	line := fmt.Sprintf("%s %s %s  %s  %s", prefix, statusBadge, g.Name, deadlineLabel(g), age)

	if g.Completed || g.Failed {
		line = theme.DimmedStyle.Render(line)
	}

	if isSelected {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// deadlineLabel returns a short, color-coded description of where the
// goal stands relative to its deadline.
func deadlineLabel(g model.Goal) string {
	if g.Completed || g.Failed {
		return g.DeadlineDate().Format("Jan 02")
	}

	days := g.DaysLeft()
	var label string
	switch {
	case days < 0:
		label = fmt.Sprintf("%dd past due", -days)
	case days == 0:
		label = "due today"
	case days == 1:
		label = "1d left"
	default:
		label = fmt.Sprintf("%dd left", days)
	}

	return theme.DeadlineStyle(days).Render(label)
}

// relativeAge describes how long ago the goal was created.
func relativeAge(t time.Time) string {
	days := int(time.Since(t).Hours() / 24)
	switch {
	case days <= 0:
		return "today"
	case days == 1:
		return "1d ago"
	default:
		return fmt.Sprintf("%dd ago", days)
	}
}
