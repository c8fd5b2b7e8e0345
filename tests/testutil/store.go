package testutil

import (
	"path/filepath"
	"testing"

	"goaltrack/internal/store"
)

// NewTestSQLiteStore creates an in-memory SQLiteStore with all
// migrations applied. It automatically closes the store when the test
// completes.
func NewTestSQLiteStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// NewTestFileStore creates a FileStore backed by a snapshot file in a
// temporary directory that is removed when the test completes.
func NewTestFileStore(t *testing.T) *store.FileStore {
	t.Helper()

	return store.NewFileStore(filepath.Join(t.TempDir(), "goals_data.json"))
}
