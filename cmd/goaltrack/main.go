package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"goaltrack/internal/app"
	"goaltrack/internal/logging"
	"goaltrack/internal/model"
	"goaltrack/internal/store"
	"goaltrack/internal/tracker"
	"goaltrack/internal/web"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	configPath := getEnv("GOALTRACK_CONFIG", model.DefaultConfigPath())
	_, statErr := os.Stat(configPath)
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}
	if os.IsNotExist(statErr) {
		// First run: write the defaults out so they are discoverable.
		if err := model.SaveConfig(configPath, cfg); err != nil {
			log.Printf("could not write default config: %v", err)
		}
	}

	if dir := os.Getenv("GOALTRACK_DATA_DIR"); dir != "" {
		cfg.Storage.DataDir = dir
	}

	// Logs go to a file: stdout belongs to the terminal UI.
	logFile, err := logging.Setup(cfg.Storage.DataDir)
	if err != nil {
		log.Fatalf("error setting up logging: %v", err)
	}
	defer logFile.Close()

	st, err := openStore(cfg)
	if err != nil {
		log.Fatalf("error opening store: %v", err)
	}
	defer st.Close()

	tr := tracker.New(st, tracker.WithLogger(slog.With("component", "tracker")))
	if err := tr.Initialize(context.Background()); err != nil {
		if store.IsCorruptData(err) {
			log.Fatalf("stored data is corrupt and was left untouched: %v", err)
		}
		log.Fatalf("error initializing tracker: %v", err)
	}

	webURL := ""
	var webSrv *web.Server
	if cfg.Web.Enabled {
		webSrv = web.New(tr, cfg.Web.Port, cfg.Display.RateWindowWeeks)
		webURL = webSrv.URL()
		go func() {
			if err := webSrv.Start(); err != nil {
				slog.Error("web server stopped", "error", err)
			}
		}()
		slog.Info("web dashboard started", "url", webURL)
	}

	p := tea.NewProgram(app.New(tr, *cfg, webURL), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("error running program: %v", err)
	}

	if webSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := webSrv.Shutdown(ctx); err != nil {
			slog.Error("web server shutdown", "error", err)
		}
	}
}

// openStore builds the persistence backend selected by the config.
func openStore(cfg *model.AppConfig) (store.Store, error) {
	if err := os.MkdirAll(cfg.Storage.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory %s: %w", cfg.Storage.DataDir, err)
	}

	switch cfg.Storage.Backend {
	case model.BackendSQLite:
		return store.NewSQLiteStore(filepath.Join(cfg.Storage.DataDir, cfg.Storage.DatabaseFile))
	case model.BackendFile:
		return store.NewFileStore(filepath.Join(cfg.Storage.DataDir, cfg.Storage.SnapshotFile)), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
