package model

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Goal status labels derived from the terminal flags.
const (
	GoalStatusPending   = "pending"
	GoalStatusCompleted = "completed"
	GoalStatusFailed    = "failed"
)

// Goal is a one-time commitment with a deadline measured in days from
// its creation time.
type Goal struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	DeadlineDays int       `json:"deadline_days" db:"deadline_days"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	// Completed and Failed are terminal and never both true. A goal
	// that has failed can no longer be completed.
	Completed bool `json:"completed" db:"completed"`
	Failed    bool `json:"failed" db:"failed"`
}

// NewGoal constructs a pending goal created now. The constructor never
// fails; validating the name and deadline is the caller's job.
func NewGoal(name string, deadlineDays int) Goal {
	return Goal{
		ID:           uuid.New().String(),
		Name:         name,
		DeadlineDays: deadlineDays,
		CreatedAt:    time.Now(),
	}
}

// DeadlineDate returns the instant by which the goal must be completed.
func (g Goal) DeadlineDate() time.Time {
	return g.CreatedAt.AddDate(0, 0, g.DeadlineDays)
}

// DaysLeft returns the whole days remaining until the deadline,
// negative once it has passed. The value is recomputed from the clock
// on every call, never cached.
func (g Goal) DaysLeft() int {
	return g.DaysLeftAt(time.Now())
}

// DaysLeftAt is DaysLeft evaluated at an explicit instant. Partial
// days round toward negative infinity, so one second past the deadline
// already counts as -1.
func (g Goal) DaysLeftAt(now time.Time) int {
	return int(math.Floor(g.DeadlineDate().Sub(now).Hours() / 24))
}

// CheckFailed marks the goal failed when its deadline has passed and
// it was never completed. It reports whether the state changed;
// terminal goals are left untouched.
func (g *Goal) CheckFailed() bool {
	return g.CheckFailedAt(time.Now())
}

// CheckFailedAt is CheckFailed evaluated at an explicit instant.
func (g *Goal) CheckFailedAt(now time.Time) bool {
	if g.Completed || g.Failed {
		return false
	}
	if !now.After(g.DeadlineDate()) {
		return false
	}
	g.Failed = true
	return true
}

// Complete marks the goal completed and reports whether the state
// changed. Completing a failed goal is a silent no-op.
func (g *Goal) Complete() bool {
	if g.Failed || g.Completed {
		return false
	}
	g.Completed = true
	return true
}

// Status returns the display status derived from the terminal flags.
func (g Goal) Status() string {
	switch {
	case g.Completed:
		return GoalStatusCompleted
	case g.Failed:
		return GoalStatusFailed
	default:
		return GoalStatusPending
	}
}
