package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"goaltrack/internal/model"
	"goaltrack/internal/store"
)

// Tracker is the single authoritative in-memory view of all goals and
// daily tasks. It owns both collections exclusively: callers receive
// copies plus entity IDs and request every mutation through it.
//
// Every mutation persists the full collections before it is committed
// to memory. When the store reports an error the in-memory state is
// left exactly as it was, so memory and disk never diverge.
type Tracker struct {
	mu    sync.Mutex
	store store.Store
	log   *slog.Logger
	now   func() time.Time

	goals []model.Goal
	tasks []model.DailyTask
}

// GoalStats aggregates goal counts for display.
type GoalStats struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	Failed         int     `json:"failed"`
	InProgress     int     `json:"in_progress"`
	CompletionRate float64 `json:"completion_rate"`
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the logger used for domain events.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) {
		t.log = l
	}
}

// New creates a Tracker backed by s. Call Initialize before use.
func New(s store.Store, opts ...Option) *Tracker {
	t := &Tracker{
		store: s,
		log:   slog.Default(),
		now:   time.Now,
		goals: []model.Goal{},
		tasks: []model.DailyTask{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Initialize loads the persisted snapshot and reconciles goal
// deadlines that passed while the process was not running. Corrupt or
// unreadable snapshots surface to the caller; user data is never
// silently discarded.
func (t *Tracker) Initialize(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	goals, tasks, err := t.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading snapshot: %w", err)
	}
	t.goals = goals
	t.tasks = tasks

	changed, err := t.sweepFailedLocked(ctx)
	if err != nil {
		return fmt.Errorf("reconciling deadlines: %w", err)
	}
	t.log.Info("tracker initialized",
		"goals", len(t.goals), "tasks", len(t.tasks), "newly_failed", changed)
	return nil
}

// AddGoal validates, constructs, appends, and persists a new goal.
func (t *Tracker) AddGoal(ctx context.Context, name string, deadlineDays int) (model.Goal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Goal{}, &InvalidArgumentError{Reason: "goal name is required"}
	}
	if deadlineDays < 0 {
		return model.Goal{}, &InvalidArgumentError{Reason: "deadline days must not be negative"}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	g := model.NewGoal(name, deadlineDays)
	goals := append(cloneGoals(t.goals), g)
	if err := t.store.Save(ctx, goals, t.tasks); err != nil {
		return model.Goal{}, err
	}
	t.goals = goals

	t.log.Info("goal added", "id", g.ID, "name", g.Name, "deadline_days", g.DeadlineDays)
	return g, nil
}

// AddDailyTask validates, constructs, appends, and persists a new
// daily task. Duplicate weekday indices are dropped, first occurrence
// kept.
func (t *Tracker) AddDailyTask(ctx context.Context, name string, daysOfWeek []int) (model.DailyTask, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.DailyTask{}, &InvalidArgumentError{Reason: "task name is required"}
	}
	if len(daysOfWeek) == 0 {
		return model.DailyTask{}, &InvalidArgumentError{Reason: "at least one weekday is required"}
	}
	days := make([]int, 0, len(daysOfWeek))
	var seen [7]bool
	for _, d := range daysOfWeek {
		if d < 0 || d > 6 {
			return model.DailyTask{}, &InvalidArgumentError{
				Reason: fmt.Sprintf("weekday index %d is out of range 0-6", d),
			}
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		days = append(days, d)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	task := model.NewDailyTask(name, days)
	tasks := append(cloneTasks(t.tasks), task)
	if err := t.store.Save(ctx, t.goals, tasks); err != nil {
		return model.DailyTask{}, err
	}
	t.tasks = tasks

	t.log.Info("daily task added", "id", task.ID, "name", task.Name, "days", task.DaysOfWeek)
	return task, nil
}

// CompleteGoal marks the goal completed and persists the snapshot.
// Completing an already failed goal is a no-op on the entity, but the
// snapshot is written regardless so memory and disk stay aligned.
func (t *Tracker) CompleteGoal(ctx context.Context, id string) (model.Goal, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := indexGoal(t.goals, id)
	if idx < 0 {
		return model.Goal{}, &NotFoundError{Kind: "goal", ID: id}
	}

	goals := cloneGoals(t.goals)
	changed := goals[idx].Complete()
	if err := t.store.Save(ctx, goals, t.tasks); err != nil {
		return model.Goal{}, err
	}
	t.goals = goals

	t.log.Info("goal complete requested", "id", id, "changed", changed)
	return goals[idx], nil
}

// CompleteDailyTask logs today's date on the task and persists the
// snapshot. Inactive days and repeat completions are no-ops on the
// entity; the snapshot is written regardless.
func (t *Tracker) CompleteDailyTask(ctx context.Context, id string) (model.DailyTask, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := indexTask(t.tasks, id)
	if idx < 0 {
		return model.DailyTask{}, &NotFoundError{Kind: "daily task", ID: id}
	}

	tasks := cloneTasks(t.tasks)
	changed := tasks[idx].CompleteOn(t.now())
	if err := t.store.Save(ctx, t.goals, tasks); err != nil {
		return model.DailyTask{}, err
	}
	t.tasks = tasks

	t.log.Info("daily task complete requested", "id", id, "changed", changed)
	return tasks[idx], nil
}

// DeleteGoal removes the goal by identity and persists the snapshot.
func (t *Tracker) DeleteGoal(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := indexGoal(t.goals, id)
	if idx < 0 {
		return &NotFoundError{Kind: "goal", ID: id}
	}

	goals := cloneGoals(t.goals)
	goals = append(goals[:idx], goals[idx+1:]...)
	if err := t.store.Save(ctx, goals, t.tasks); err != nil {
		return err
	}
	t.goals = goals

	t.log.Info("goal deleted", "id", id)
	return nil
}

// DeleteDailyTask removes the task by identity and persists the snapshot.
func (t *Tracker) DeleteDailyTask(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := indexTask(t.tasks, id)
	if idx < 0 {
		return &NotFoundError{Kind: "daily task", ID: id}
	}

	tasks := cloneTasks(t.tasks)
	tasks = append(tasks[:idx], tasks[idx+1:]...)
	if err := t.store.Save(ctx, t.goals, tasks); err != nil {
		return err
	}
	t.tasks = tasks

	t.log.Info("daily task deleted", "id", id)
	return nil
}

// CheckFailedGoals sweeps every goal for a passed deadline, persisting
// once if any transitioned. It reports whether anything changed. The
// sweep is idempotent and safe to run on any read path.
func (t *Tracker) CheckFailedGoals(ctx context.Context) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sweepFailedLocked(ctx)
}

// Goals returns a copy of the goal collection in insertion order.
func (t *Tracker) Goals() []model.Goal {
	t.mu.Lock()
	defer t.mu.Unlock()
	return cloneGoals(t.goals)
}

// DailyTasks returns a copy of the daily task collection in insertion
// order.
func (t *Tracker) DailyTasks() []model.DailyTask {
	t.mu.Lock()
	defer t.mu.Unlock()
	return cloneTasks(t.tasks)
}

// Stats computes aggregate goal counts. The completion rate is the
// share of all goals completed, 0 when there are none.
func (t *Tracker) Stats() GoalStats {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := GoalStats{Total: len(t.goals)}
	for _, g := range t.goals {
		switch {
		case g.Completed:
			s.Completed++
		case g.Failed:
			s.Failed++
		default:
			s.InProgress++
		}
	}
	if s.Total > 0 {
		s.CompletionRate = float64(s.Completed) / float64(s.Total) * 100
	}
	return s
}

// sweepFailedLocked runs the deadline check over a copy of the goals,
// persists once if anything transitioned, and installs the copy.
// Callers must hold t.mu.
func (t *Tracker) sweepFailedLocked(ctx context.Context) (bool, error) {
	now := t.now()
	goals := cloneGoals(t.goals)
	changed := false
	for i := range goals {
		if goals[i].CheckFailedAt(now) {
			changed = true
			t.log.Info("goal failed", "id", goals[i].ID, "name", goals[i].Name)
		}
	}
	if !changed {
		return false, nil
	}
	if err := t.store.Save(ctx, goals, t.tasks); err != nil {
		return false, err
	}
	t.goals = goals
	return true, nil
}

func indexGoal(goals []model.Goal, id string) int {
	for i := range goals {
		if goals[i].ID == id {
			return i
		}
	}
	return -1
}

func indexTask(tasks []model.DailyTask, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneGoals(src []model.Goal) []model.Goal {
	out := make([]model.Goal, len(src))
	copy(out, src)
	return out
}

func cloneTasks(src []model.DailyTask) []model.DailyTask {
	out := make([]model.DailyTask, len(src))
	for i, task := range src {
		task.DaysOfWeek = append(make([]int, 0, len(task.DaysOfWeek)), task.DaysOfWeek...)
		task.CompletedDates = append(make([]string, 0, len(task.CompletedDates)), task.CompletedDates...)
		out[i] = task
	}
	return out
}
