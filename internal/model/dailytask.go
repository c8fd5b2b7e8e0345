package model

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar-date form used in completion logs.
const DateLayout = "2006-01-02"

// dayNames maps schedule indices (0=Monday .. 6=Sunday) to labels.
var dayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// WeekdayIndex converts t's weekday to the Monday-based index used by
// daily task schedules.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// DailyTask is a recurring commitment scheduled on specific weekdays,
// tracked through an append-only log of completion dates. Tasks never
// fail; missed days only lower the completion rate.
type DailyTask struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`

	// DaysOfWeek holds the schedule as indices 0=Monday .. 6=Sunday.
	DaysOfWeek []int `json:"days_of_week"`

	// CompletedDates is append-only. Each date appears at most once,
	// and only if the task was active on that date's weekday.
	CompletedDates []string `json:"completed_dates"`
}

// NewDailyTask constructs a task with an empty completion log. The
// constructor never fails; validating the name and schedule is the
// caller's job.
func NewDailyTask(name string, daysOfWeek []int) DailyTask {
	return DailyTask{
		ID:             uuid.New().String(),
		Name:           name,
		DaysOfWeek:     daysOfWeek,
		CompletedDates: []string{},
	}
}

// IsActiveToday reports whether the task is scheduled for today.
func (t DailyTask) IsActiveToday() bool {
	return t.ActiveOn(time.Now())
}

// ActiveOn reports whether the task is scheduled on day's weekday.
func (t DailyTask) ActiveOn(day time.Time) bool {
	idx := WeekdayIndex(day)
	for _, d := range t.DaysOfWeek {
		if d == idx {
			return true
		}
	}
	return false
}

// IsCompletedToday reports whether today's date is already logged.
func (t DailyTask) IsCompletedToday() bool {
	return t.CompletedOn(time.Now())
}

// CompletedOn reports whether day's date is already logged.
func (t DailyTask) CompletedOn(day time.Time) bool {
	date := day.Format(DateLayout)
	for _, d := range t.CompletedDates {
		if d == date {
			return true
		}
	}
	return false
}

// CompleteToday logs today's date if the task is active today and the
// date is not yet logged. It reports whether the log changed; calls on
// inactive days are silent no-ops.
func (t *DailyTask) CompleteToday() bool {
	return t.CompleteOn(time.Now())
}

// CompleteOn is CompleteToday evaluated at an explicit instant.
func (t *DailyTask) CompleteOn(day time.Time) bool {
	if !t.ActiveOn(day) || t.CompletedOn(day) {
		return false
	}
	t.CompletedDates = append(t.CompletedDates, day.Format(DateLayout))
	return true
}

// ActiveDayNames returns display labels for the scheduled weekdays,
// skipping out-of-range indices.
func (t DailyTask) ActiveDayNames() []string {
	names := make([]string, 0, len(t.DaysOfWeek))
	for _, d := range t.DaysOfWeek {
		if d < 0 || d >= len(dayNames) {
			continue
		}
		names = append(names, dayNames[d])
	}
	return names
}

// CompletionRate returns the share of scheduled occurrences completed
// over an observation window of the given weeks, as a percentage. It
// is 0 when the schedule is empty or the window is not positive.
func (t DailyTask) CompletionRate(weeks int) float64 {
	possible := len(t.DaysOfWeek) * weeks
	if possible <= 0 {
		return 0
	}
	return float64(len(t.CompletedDates)) / float64(possible) * 100
}
