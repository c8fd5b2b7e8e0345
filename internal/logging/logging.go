package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// LogFileName is the application log inside the data directory.
const LogFileName = "goaltrack.log"

// Setup opens the application log file inside dataDir and installs a
// JSON handler writing to it as the default slog logger. The terminal
// belongs to the UI, so logs never go to stdout. The returned closer
// releases the file.
func Setup(dataDir string) (io.Closer, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory %s: %w", dataDir, err)
	}

	path := filepath.Join(dataDir, LogFileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(f, nil)))
	return f, nil
}
