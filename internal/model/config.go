package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Storage backend identifiers.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// StorageConfig selects and locates the persistence backend.
type StorageConfig struct {
	// Backend is "file" for the JSON snapshot store or "sqlite".
	Backend string `mapstructure:"backend" yaml:"backend"`

	// DataDir is where the snapshot, the database and the log live.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`

	// SnapshotFile is the JSON snapshot file name inside DataDir.
	SnapshotFile string `mapstructure:"snapshot_file" yaml:"snapshot_file"`

	// DatabaseFile is the SQLite file name inside DataDir.
	DatabaseFile string `mapstructure:"database_file" yaml:"database_file"`
}

// WebConfig controls the read-only status server.
type WebConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	Port    int  `mapstructure:"port" yaml:"port"`
}

// DisplayConfig holds UI behavior preferences.
type DisplayConfig struct {
	// SweepIntervalSec is how often the UI re-checks goal deadlines.
	SweepIntervalSec int `mapstructure:"sweep_interval_sec" yaml:"sweep_interval_sec"`

	// RateWindowWeeks is the observation window used when showing
	// task completion rates.
	RateWindowWeeks int `mapstructure:"rate_window_weeks" yaml:"rate_window_weeks"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Web     WebConfig     `mapstructure:"web" yaml:"web"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/goaltrack/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "goaltrack", "config.yaml")
}

// DefaultDataDir returns where application data is kept when the
// configuration does not say otherwise, ~/.local/share/goaltrack.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "goaltrack")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Storage: StorageConfig{
			Backend:      BackendFile,
			DataDir:      DefaultDataDir(),
			SnapshotFile: "goals_data.json",
			DatabaseFile: "goaltrack.db",
		},
		Web: WebConfig{
			Enabled: true,
			Port:    8000,
		},
		Display: DisplayConfig{
			SweepIntervalSec: 60,
			RateWindowWeeks:  4,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("storage.backend", BackendFile)
	v.SetDefault("storage.data_dir", DefaultDataDir())
	v.SetDefault("storage.snapshot_file", "goals_data.json")
	v.SetDefault("storage.database_file", "goaltrack.db")
	v.SetDefault("web.enabled", true)
	v.SetDefault("web.port", 8000)
	v.SetDefault("display.sweep_interval_sec", 60)
	v.SetDefault("display.rate_window_weeks", 4)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("storage", cfg.Storage)
	v.Set("web", cfg.Web)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
