package tasklist

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"goaltrack/internal/model"
	"goaltrack/internal/theme"
)

// TaskItem wraps a model.DailyTask so it can be used in a bubbles/list.
type TaskItem struct {
	Task model.DailyTask
}

// FilterValue returns the string used for fuzzy filtering.
func (i TaskItem) FilterValue() string { return i.Task.Name }

// ItemDelegate implements list.ItemDelegate for rendering daily task rows.
type ItemDelegate struct {
	// RateWeeks is the trailing window used for the completion rate column.
	RateWeeks int
}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single daily task line.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(TaskItem)
	if !ok {
		return
	}

	task := ti.Task
	isSelected := index == m.Index()

	// Prefix reflects today's state: logged, still open, or not scheduled.
	prefix := "·"
	doneToday := false
	if task.IsActiveToday() {
		if task.IsCompletedToday() {
			prefix = "✓"
			doneToday = true
		} else {
			prefix = "○"
		}
	}

	days := theme.DimmedStyle.Render(strings.Join(task.ActiveDayNames(), ","))

	rate := task.CompletionRate(d.RateWeeks)
	rateBadge := theme.RateStyle(rate).Render(fmt.Sprintf("%3.0f%%", rate))

	line := fmt.Sprintf("%s %s  %s  %s", prefix, task.Name, days, rateBadge)

	if doneToday {
		line = theme.DimmedStyle.Render(line)
	}

	if isSelected {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}
