package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"goaltrack/internal/model"
)

// SQLiteStore implements the Store interface using a local SQLite database.
type SQLiteStore struct {
	db   *sqlx.DB
	path string
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Enable foreign keys.
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{db: db, path: dbPath}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	// Check if schema_version table exists.
	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// Load reads the full snapshot in saved order.
func (s *SQLiteStore) Load(ctx context.Context) ([]model.Goal, []model.DailyTask, error) {
	goals := []model.Goal{}
	rows, err := s.db.QueryxContext(ctx,
		"SELECT id, name, deadline_days, created_at, completed, failed FROM goals ORDER BY position",
	)
	if err != nil {
		return nil, nil, &PersistenceError{Op: "load", Path: s.path, Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, nil, &CorruptDataError{Path: s.path, Err: err}
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, &PersistenceError{Op: "load", Path: s.path, Err: err}
	}

	tasks := []model.DailyTask{}
	taskRows, err := s.db.QueryxContext(ctx,
		"SELECT id, name, days_of_week, completed_dates FROM daily_tasks ORDER BY position",
	)
	if err != nil {
		return nil, nil, &PersistenceError{Op: "load", Path: s.path, Err: err}
	}
	defer taskRows.Close()

	for taskRows.Next() {
		t, err := scanDailyTask(taskRows)
		if err != nil {
			return nil, nil, &CorruptDataError{Path: s.path, Err: err}
		}
		tasks = append(tasks, t)
	}
	if err := taskRows.Err(); err != nil {
		return nil, nil, &PersistenceError{Op: "load", Path: s.path, Err: err}
	}

	return goals, tasks, nil
}

// Save replaces the snapshot in a single transaction; the commit is
// the atomicity boundary.
func (s *SQLiteStore) Save(ctx context.Context, goals []model.Goal, tasks []model.DailyTask) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: fmt.Errorf("beginning transaction: %w", err)}
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM goals"); err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: fmt.Errorf("clearing goals: %w", err)}
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM daily_tasks"); err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: fmt.Errorf("clearing daily tasks: %w", err)}
	}

	const goalQuery = `
		INSERT INTO goals (id, name, deadline_days, created_at, completed, failed, position)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	for i, g := range goals {
		_, err := tx.ExecContext(ctx, goalQuery,
			g.ID, g.Name, g.DeadlineDays,
			g.CreatedAt.Format(time.RFC3339Nano),
			boolToInt(g.Completed), boolToInt(g.Failed), i,
		)
		if err != nil {
			return &PersistenceError{Op: "save", Path: s.path, Err: fmt.Errorf("inserting goal %s: %w", g.ID, err)}
		}
	}

	const taskQuery = `
		INSERT INTO daily_tasks (id, name, days_of_week, completed_dates, position)
		VALUES (?, ?, ?, ?, ?)`
	for i, t := range tasks {
		days := t.DaysOfWeek
		if days == nil {
			days = []int{}
		}
		dates := t.CompletedDates
		if dates == nil {
			dates = []string{}
		}
		daysJSON, err := json.Marshal(days)
		if err != nil {
			return &PersistenceError{Op: "save", Path: s.path, Err: fmt.Errorf("marshaling days_of_week for task %s: %w", t.ID, err)}
		}
		datesJSON, err := json.Marshal(dates)
		if err != nil {
			return &PersistenceError{Op: "save", Path: s.path, Err: fmt.Errorf("marshaling completed_dates for task %s: %w", t.ID, err)}
		}
		_, err = tx.ExecContext(ctx, taskQuery,
			t.ID, t.Name, string(daysJSON), string(datesJSON), i,
		)
		if err != nil {
			return &PersistenceError{Op: "save", Path: s.path, Err: fmt.Errorf("inserting daily task %s: %w", t.ID, err)}
		}
	}

	if err := tx.Commit(); err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: fmt.Errorf("committing snapshot: %w", err)}
	}
	return nil
}

// scanGoal scans a goal row from a sqlx.Rows result set.
func scanGoal(rows *sqlx.Rows) (model.Goal, error) {
	var (
		g         model.Goal
		createdAt string
		completed int
		failed    int
	)

	err := rows.Scan(&g.ID, &g.Name, &g.DeadlineDays, &createdAt, &completed, &failed)
	if err != nil {
		return model.Goal{}, fmt.Errorf("scanning goal row: %w", err)
	}

	g.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return model.Goal{}, fmt.Errorf("parsing created_at for goal %s: %w", g.ID, err)
	}
	g.Completed = completed != 0
	g.Failed = failed != 0

	return g, nil
}

// scanDailyTask scans a daily task row from a sqlx.Rows result set.
func scanDailyTask(rows *sqlx.Rows) (model.DailyTask, error) {
	var (
		t         model.DailyTask
		daysJSON  string
		datesJSON string
	)

	err := rows.Scan(&t.ID, &t.Name, &daysJSON, &datesJSON)
	if err != nil {
		return model.DailyTask{}, fmt.Errorf("scanning daily task row: %w", err)
	}

	if err := json.Unmarshal([]byte(daysJSON), &t.DaysOfWeek); err != nil {
		return model.DailyTask{}, fmt.Errorf("unmarshaling days_of_week for task %s: %w", t.ID, err)
	}
	if err := json.Unmarshal([]byte(datesJSON), &t.CompletedDates); err != nil {
		return model.DailyTask{}, fmt.Errorf("unmarshaling completed_dates for task %s: %w", t.ID, err)
	}
	if t.DaysOfWeek == nil {
		t.DaysOfWeek = []int{}
	}
	if t.CompletedDates == nil {
		t.CompletedDates = []string{}
	}

	return t, nil
}

// boolToInt converts a boolean to 0 or 1 for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
