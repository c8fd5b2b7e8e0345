package model

import (
	"reflect"
	"testing"
	"time"
)

// 2025-01-06 is a Monday; the rest of the week follows from it.
var (
	monday    = time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC)
	tuesday   = monday.AddDate(0, 0, 1)
	wednesday = monday.AddDate(0, 0, 2)
	sunday    = monday.AddDate(0, 0, 6)
)

func TestWeekdayIndex(t *testing.T) {
	tests := []struct {
		name string
		day  time.Time
		want int
	}{
		{"monday", monday, 0},
		{"tuesday", tuesday, 1},
		{"wednesday", wednesday, 2},
		{"sunday", sunday, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekdayIndex(tt.day); got != tt.want {
				t.Fatalf("expected index %d, got %d", tt.want, got)
			}
		})
	}
}

func TestNewDailyTask(t *testing.T) {
	task := NewDailyTask("morning run", []int{0, 2, 4})

	if task.ID == "" {
		t.Fatalf("expected generated id, got empty")
	}
	if task.Name != "morning run" {
		t.Fatalf("expected name preserved, got %q", task.Name)
	}
	if !reflect.DeepEqual(task.DaysOfWeek, []int{0, 2, 4}) {
		t.Fatalf("expected schedule preserved, got %v", task.DaysOfWeek)
	}
	if task.CompletedDates == nil || len(task.CompletedDates) != 0 {
		t.Fatalf("expected empty non-nil completion log, got %v", task.CompletedDates)
	}
}

func TestDailyTaskActiveOn(t *testing.T) {
	task := NewDailyTask("gym", []int{0, 2})

	if !task.ActiveOn(monday) {
		t.Fatalf("expected task active on monday")
	}
	if task.ActiveOn(tuesday) {
		t.Fatalf("expected task inactive on tuesday")
	}
	if !task.ActiveOn(wednesday) {
		t.Fatalf("expected task active on wednesday")
	}
}

func TestDailyTaskCompleteOn(t *testing.T) {
	task := NewDailyTask("gym", []int{0})

	if !task.CompleteOn(monday) {
		t.Fatalf("expected first completion to log the date")
	}
	if !task.CompletedOn(monday) {
		t.Fatalf("expected monday to be logged")
	}
	want := []string{"2025-01-06"}
	if !reflect.DeepEqual(task.CompletedDates, want) {
		t.Fatalf("expected log %v, got %v", want, task.CompletedDates)
	}

	if task.CompleteOn(monday) {
		t.Fatalf("expected repeat completion to be a no-op")
	}
	if len(task.CompletedDates) != 1 {
		t.Fatalf("expected single log entry, got %v", task.CompletedDates)
	}

	if task.CompleteOn(tuesday) {
		t.Fatalf("expected completion on an inactive day to be a no-op")
	}
	if len(task.CompletedDates) != 1 {
		t.Fatalf("expected log unchanged after inactive day, got %v", task.CompletedDates)
	}

	// A week later the same weekday logs a new date.
	nextMonday := monday.AddDate(0, 0, 7)
	if !task.CompleteOn(nextMonday) {
		t.Fatalf("expected completion on the next monday to log")
	}
	if len(task.CompletedDates) != 2 {
		t.Fatalf("expected two log entries, got %v", task.CompletedDates)
	}
}

func TestDailyTaskActiveDayNames(t *testing.T) {
	task := NewDailyTask("stretch", []int{0, 2, 4})
	want := []string{"Mon", "Wed", "Fri"}
	if got := task.ActiveDayNames(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestDailyTaskActiveDayNamesSkipsOutOfRange(t *testing.T) {
	task := DailyTask{Name: "odd", DaysOfWeek: []int{-1, 3, 9}}
	want := []string{"Thu"}
	if got := task.ActiveDayNames(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestDailyTaskCompletionRate(t *testing.T) {
	task := NewDailyTask("gym", []int{0, 2})

	if got := task.CompletionRate(4); got != 0 {
		t.Fatalf("expected 0%% with empty log, got %v", got)
	}

	task.CompleteOn(monday)
	task.CompleteOn(wednesday)

	// 2 completions over 2 scheduled days x 4 weeks.
	if got := task.CompletionRate(4); got != 25 {
		t.Fatalf("expected 25%%, got %v", got)
	}

	if got := task.CompletionRate(1); got != 100 {
		t.Fatalf("expected 100%% over one week, got %v", got)
	}
}

func TestDailyTaskCompletionRateDegenerate(t *testing.T) {
	empty := DailyTask{Name: "no schedule"}
	if got := empty.CompletionRate(4); got != 0 {
		t.Fatalf("expected 0%% with empty schedule, got %v", got)
	}

	task := NewDailyTask("gym", []int{0})
	if got := task.CompletionRate(0); got != 0 {
		t.Fatalf("expected 0%% with zero-week window, got %v", got)
	}
	if got := task.CompletionRate(-2); got != 0 {
		t.Fatalf("expected 0%% with negative window, got %v", got)
	}
}
