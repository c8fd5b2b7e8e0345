package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"goaltrack/internal/model"
)

// snapshotVersion is the newest on-disk snapshot shape this build
// understands. Version 0 snapshots predate the version and id fields
// and carry naive local timestamps; they are upgraded transparently
// on load and rewritten at the current version on the next save.
const snapshotVersion = 1

// FileStore implements Store as a single versioned JSON snapshot file.
// Writes are atomic and durable: temp file in the same directory,
// fsync, rename over the target, then a best-effort directory sync.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by the file at path. The file
// need not exist yet; loading a missing file yields empty collections.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Close implements Store. The file store keeps no open resources.
func (s *FileStore) Close() error { return nil }

type snapshotFile struct {
	Version    int          `json:"version"`
	Goals      []goalRecord `json:"goals"`
	DailyTasks []taskRecord `json:"daily_tasks"`
}

type goalRecord struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name"`
	DeadlineDays int    `json:"deadline_days"`
	CreatedAt    string `json:"created_at"`
	Completed    bool   `json:"completed"`
	Failed       bool   `json:"failed"`
}

type taskRecord struct {
	ID             string   `json:"id,omitempty"`
	Name           string   `json:"name"`
	DaysOfWeek     []int    `json:"days_of_week"`
	CompletedDates []string `json:"completed_dates"`
}

// Load reads the snapshot file at the store's path.
func (s *FileStore) Load(ctx context.Context) ([]model.Goal, []model.DailyTask, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.Goal{}, []model.DailyTask{}, nil
		}
		return nil, nil, &PersistenceError{Op: "load", Path: s.path, Err: err}
	}
	defer f.Close()

	var snap snapshotFile
	if err := decodeStrict(f, &snap); err != nil {
		return nil, nil, &CorruptDataError{Path: s.path, Err: err}
	}
	if snap.Version > snapshotVersion {
		return nil, nil, &CorruptDataError{
			Path: s.path,
			Err:  fmt.Errorf("snapshot version %d is newer than supported version %d", snap.Version, snapshotVersion),
		}
	}

	goals := make([]model.Goal, 0, len(snap.Goals))
	for _, r := range snap.Goals {
		g, err := r.toModel()
		if err != nil {
			return nil, nil, &CorruptDataError{Path: s.path, Err: err}
		}
		goals = append(goals, g)
	}

	tasks := make([]model.DailyTask, 0, len(snap.DailyTasks))
	for _, r := range snap.DailyTasks {
		tasks = append(tasks, r.toModel())
	}

	return goals, tasks, nil
}

// Save writes the collections to the snapshot file atomically.
func (s *FileStore) Save(ctx context.Context, goals []model.Goal, tasks []model.DailyTask) error {
	snap := snapshotFile{
		Version:    snapshotVersion,
		Goals:      make([]goalRecord, 0, len(goals)),
		DailyTasks: make([]taskRecord, 0, len(tasks)),
	}
	for _, g := range goals {
		snap.Goals = append(snap.Goals, goalRecord{
			ID:           g.ID,
			Name:         g.Name,
			DeadlineDays: g.DeadlineDays,
			CreatedAt:    g.CreatedAt.Format(time.RFC3339Nano),
			Completed:    g.Completed,
			Failed:       g.Failed,
		})
	}
	for _, t := range tasks {
		rec := taskRecord{
			ID:             t.ID,
			Name:           t.Name,
			DaysOfWeek:     t.DaysOfWeek,
			CompletedDates: t.CompletedDates,
		}
		// Serialize empty schedules and logs as [] rather than null.
		if rec.DaysOfWeek == nil {
			rec.DaysOfWeek = []int{}
		}
		if rec.CompletedDates == nil {
			rec.CompletedDates = []string{}
		}
		snap.DailyTasks = append(snap.DailyTasks, rec)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	data = append(data, '\n')

	if err := writeFileAtomic(s.path, data, 0o644); err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	return nil
}

func (r goalRecord) toModel() (model.Goal, error) {
	createdAt, err := parseSnapshotTime(r.CreatedAt)
	if err != nil {
		return model.Goal{}, fmt.Errorf("goal %q: %w", r.Name, err)
	}
	id := r.ID
	if id == "" {
		// Legacy records carry no identity; assign one now.
		id = uuid.New().String()
	}
	return model.Goal{
		ID:           id,
		Name:         r.Name,
		DeadlineDays: r.DeadlineDays,
		CreatedAt:    createdAt,
		Completed:    r.Completed,
		Failed:       r.Failed,
	}, nil
}

func (r taskRecord) toModel() model.DailyTask {
	id := r.ID
	if id == "" {
		id = uuid.New().String()
	}
	days := r.DaysOfWeek
	if days == nil {
		days = []int{}
	}
	dates := r.CompletedDates
	if dates == nil {
		dates = []string{}
	}
	return model.DailyTask{
		ID:             id,
		Name:           r.Name,
		DaysOfWeek:     days,
		CompletedDates: dates,
	}
}

// snapshotTimeLayouts covers the naive local forms legacy snapshots
// carried alongside the current RFC 3339 form.
var snapshotTimeLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

func parseSnapshotTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, layout := range snapshotTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func decodeStrict(r io.Reader, dst any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	// Ensure no trailing junk.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("trailing content after snapshot")
	}
	return nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true

	// Directory sync is best-effort; not every platform allows it.
	if f, err := os.Open(dir); err == nil {
		_ = f.Sync()
		_ = f.Close()
	}
	return nil
}
