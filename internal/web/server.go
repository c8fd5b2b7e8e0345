package web

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"goaltrack/internal/model"
	"goaltrack/internal/tracker"
)

// Server exposes the tracker as a read-only status page with a small
// JSON API. Every endpoint is GET-only; mutations happen in the
// terminal UI.
type Server struct {
	tr        *tracker.Tracker
	port      int
	rateWeeks int
	httpSrv   *http.Server
}

// New builds a status server on the given port. rateWeeks is the
// observation window used when reporting task completion rates.
func New(tr *tracker.Tracker, port, rateWeeks int) *Server {
	s := &Server{tr: tr, port: port, rateWeeks: rateWeeks}
	s.httpSrv = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
	}
	return s
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/goals", s.handleGoals)
	mux.HandleFunc("/api/tasks", s.handleTasks)
	mux.HandleFunc("/api/stats", s.handleStats)
	return chainMiddlewares(mux, withCORS, withLogging)
}

// Start begins serving and blocks until the listener closes.
func (s *Server) Start() error {
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("status server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

// URL returns the address remote viewers should open.
func (s *Server) URL() string {
	return fmt.Sprintf("http://%s:%d", LocalIP(), s.port)
}

// goalView is a goal plus its derived display fields.
type goalView struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	DeadlineDays int       `json:"deadline_days"`
	CreatedAt    time.Time `json:"created_at"`
	Completed    bool      `json:"completed"`
	Failed       bool      `json:"failed"`
	DeadlineDate string    `json:"deadline_date"`
	DaysLeft     int       `json:"days_left"`
	Status       string    `json:"status"`
}

// taskView is a daily task plus its derived display fields.
type taskView struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	DaysOfWeek     []int    `json:"days_of_week"`
	CompletedDates []string `json:"completed_dates"`
	ActiveDays     []string `json:"active_days"`
	ActiveToday    bool     `json:"active_today"`
	CompletedToday bool     `json:"completed_today"`
	CompletionRate float64  `json:"completion_rate"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	s.sweep(r.Context())

	data := indexData{
		Stats:     s.tr.Stats(),
		Goals:     s.goalViews(),
		Tasks:     s.taskViews(),
		RateWeeks: s.rateWeeks,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		slog.Error("rendering status page", "error", err)
	}
}

func (s *Server) handleGoals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	s.sweep(r.Context())
	writeJSON(w, http.StatusOK, s.goalViews())
}

func (s *Server) handleTasks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	s.sweep(r.Context())
	writeJSON(w, http.StatusOK, s.taskViews())
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	s.sweep(r.Context())
	writeJSON(w, http.StatusOK, s.tr.Stats())
}

// sweep lazily reconciles goal deadlines before a read so remote
// viewers never see a pending goal whose deadline already passed. A
// failed persist is logged and the current state served as-is.
func (s *Server) sweep(ctx context.Context) {
	if _, err := s.tr.CheckFailedGoals(ctx); err != nil {
		slog.Error("deadline sweep failed", "error", err)
	}
}

func (s *Server) goalViews() []goalView {
	goals := s.tr.Goals()
	out := make([]goalView, 0, len(goals))
	for _, g := range goals {
		out = append(out, goalView{
			ID:           g.ID,
			Name:         g.Name,
			DeadlineDays: g.DeadlineDays,
			CreatedAt:    g.CreatedAt,
			Completed:    g.Completed,
			Failed:       g.Failed,
			DeadlineDate: g.DeadlineDate().Format(model.DateLayout),
			DaysLeft:     g.DaysLeft(),
			Status:       g.Status(),
		})
	}
	return out
}

func (s *Server) taskViews() []taskView {
	tasks := s.tr.DailyTasks()
	out := make([]taskView, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskView{
			ID:             t.ID,
			Name:           t.Name,
			DaysOfWeek:     t.DaysOfWeek,
			CompletedDates: t.CompletedDates,
			ActiveDays:     t.ActiveDayNames(),
			ActiveToday:    t.IsActiveToday(),
			CompletedToday: t.IsCompletedToday(),
			CompletionRate: t.CompletionRate(s.rateWeeks),
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
		"error": "method not allowed",
	})
}
