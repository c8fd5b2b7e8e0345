package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"goaltrack/internal/tracker"
	"goaltrack/tests/testutil"
)

func newTestServer(t *testing.T) (*Server, *tracker.Tracker) {
	t.Helper()

	tr := tracker.New(testutil.NewTestSQLiteStore(t))
	if err := tr.Initialize(context.Background()); err != nil {
		t.Fatalf("initializing tracker: %v", err)
	}
	return New(tr, 8000, 4), tr
}

func doRequest(t *testing.T, s *Server, method, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestGoalsEndpoint(t *testing.T) {
	s, tr := newTestServer(t)
	if _, err := tr.AddGoal(context.Background(), "ship release", 30); err != nil {
		t.Fatalf("adding goal: %v", err)
	}

	rec := doRequest(t, s, http.MethodGet, "/api/goals")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected JSON content type, got %q", ct)
	}

	var goals []goalView
	if err := json.Unmarshal(rec.Body.Bytes(), &goals); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(goals) != 1 {
		t.Fatalf("expected one goal, got %d", len(goals))
	}
	g := goals[0]
	if g.Name != "ship release" || g.DeadlineDays != 30 {
		t.Fatalf("unexpected goal fields: %+v", g)
	}
	if g.Status != "pending" {
		t.Fatalf("expected pending status, got %q", g.Status)
	}
	// Created moments ago with a 30 day deadline: 29 full days remain.
	if g.DaysLeft != 29 {
		t.Fatalf("expected 29 days left, got %d", g.DaysLeft)
	}
	if g.DeadlineDate == "" {
		t.Fatalf("expected formatted deadline date")
	}
}

func TestTasksEndpoint(t *testing.T) {
	s, tr := newTestServer(t)
	ctx := context.Background()

	task, err := tr.AddDailyTask(ctx, "stretch", []int{0, 1, 2, 3, 4, 5, 6})
	if err != nil {
		t.Fatalf("adding task: %v", err)
	}
	if _, err := tr.CompleteDailyTask(ctx, task.ID); err != nil {
		t.Fatalf("completing task: %v", err)
	}

	rec := doRequest(t, s, http.MethodGet, "/api/tasks")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var tasks []taskView
	if err := json.Unmarshal(rec.Body.Bytes(), &tasks); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected one task, got %d", len(tasks))
	}
	got := tasks[0]
	if got.Name != "stretch" {
		t.Fatalf("unexpected task name %q", got.Name)
	}
	if !got.ActiveToday {
		t.Fatalf("expected an everyday task to be active")
	}
	if !got.CompletedToday {
		t.Fatalf("expected task completed today")
	}
	if len(got.CompletedDates) != 1 {
		t.Fatalf("expected one logged date, got %v", got.CompletedDates)
	}
	if len(got.ActiveDays) != 7 || got.ActiveDays[0] != "Mon" {
		t.Fatalf("unexpected active day names: %v", got.ActiveDays)
	}
	if got.CompletionRate <= 0 {
		t.Fatalf("expected positive completion rate, got %v", got.CompletionRate)
	}
}

func TestStatsEndpoint(t *testing.T) {
	s, tr := newTestServer(t)
	ctx := context.Background()

	done, err := tr.AddGoal(ctx, "done", 30)
	if err != nil {
		t.Fatalf("adding goal: %v", err)
	}
	if _, err := tr.AddGoal(ctx, "open", 30); err != nil {
		t.Fatalf("adding goal: %v", err)
	}
	if _, err := tr.CompleteGoal(ctx, done.ID); err != nil {
		t.Fatalf("completing goal: %v", err)
	}

	rec := doRequest(t, s, http.MethodGet, "/api/stats")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var stats tracker.GoalStats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if stats.Total != 2 || stats.Completed != 1 || stats.InProgress != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.CompletionRate != 50 {
		t.Fatalf("expected 50%% completion rate, got %v", stats.CompletionRate)
	}
}

func TestIndexPage(t *testing.T) {
	s, tr := newTestServer(t)
	ctx := context.Background()

	if _, err := tr.AddGoal(ctx, "ship release", 30); err != nil {
		t.Fatalf("adding goal: %v", err)
	}
	if _, err := tr.AddDailyTask(ctx, "stretch", []int{0}); err != nil {
		t.Fatalf("adding task: %v", err)
	}

	rec := doRequest(t, s, http.MethodGet, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected HTML content type, got %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "ship release") {
		t.Fatalf("expected goal name on the status page")
	}
	if !strings.Contains(body, "stretch") {
		t.Fatalf("expected task name on the status page")
	}
}

func TestIndexUnknownPath(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/nope")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestMutationsRejected(t *testing.T) {
	s, _ := newTestServer(t)

	for _, path := range []string{"/", "/api/goals", "/api/tasks", "/api/stats"} {
		rec := doRequest(t, s, http.MethodPost, path)
		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("POST %s: expected 405, got %d", path, rec.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("POST %s: decoding error body: %v", path, err)
		}
		if body["error"] != "method not allowed" {
			t.Fatalf("POST %s: unexpected error body %v", path, body)
		}
	}
}

func TestCORSHeaders(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/goals")
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected permissive CORS origin, got %q", got)
	}

	rec = doRequest(t, s, http.MethodOptions, "/api/goals")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", rec.Code)
	}
}

func TestReadsSweepPassedDeadlines(t *testing.T) {
	s, tr := newTestServer(t)

	// A zero day deadline expires the moment the goal is created, so
	// the sweep on the next read must report it failed.
	if _, err := tr.AddGoal(context.Background(), "instant", 0); err != nil {
		t.Fatalf("adding goal: %v", err)
	}

	rec := doRequest(t, s, http.MethodGet, "/api/goals")
	var goals []goalView
	if err := json.Unmarshal(rec.Body.Bytes(), &goals); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(goals) != 1 {
		t.Fatalf("expected one goal, got %d", len(goals))
	}
	if !goals[0].Failed || goals[0].Status != "failed" {
		t.Fatalf("expected the sweep to fail the expired goal, got %+v", goals[0])
	}
}
