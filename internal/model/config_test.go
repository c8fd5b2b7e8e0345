package model

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("expected defaults for a missing file, got error: %v", err)
	}

	if cfg.Storage.Backend != BackendFile {
		t.Fatalf("expected file backend by default, got %q", cfg.Storage.Backend)
	}
	if cfg.Storage.SnapshotFile != "goals_data.json" {
		t.Fatalf("expected default snapshot file, got %q", cfg.Storage.SnapshotFile)
	}
	if !cfg.Web.Enabled {
		t.Fatalf("expected web enabled by default")
	}
	if cfg.Web.Port != 8000 {
		t.Fatalf("expected default port 8000, got %d", cfg.Web.Port)
	}
	if cfg.Display.SweepIntervalSec != 60 {
		t.Fatalf("expected default sweep interval 60, got %d", cfg.Display.SweepIntervalSec)
	}
	if cfg.Display.RateWindowWeeks != 4 {
		t.Fatalf("expected default rate window 4, got %d", cfg.Display.RateWindowWeeks)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	in := &AppConfig{
		Storage: StorageConfig{
			Backend:      BackendSQLite,
			DataDir:      "/tmp/goaltrack-test",
			SnapshotFile: "snap.json",
			DatabaseFile: "goals.db",
		},
		Web:     WebConfig{Enabled: false, Port: 9100},
		Display: DisplayConfig{SweepIntervalSec: 15, RateWindowWeeks: 8},
	}

	if err := SaveConfig(path, in); err != nil {
		t.Fatalf("saving config: %v", err)
	}

	out, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	if out.Storage.Backend != BackendSQLite {
		t.Fatalf("expected sqlite backend, got %q", out.Storage.Backend)
	}
	if out.Storage.DataDir != "/tmp/goaltrack-test" {
		t.Fatalf("expected data dir preserved, got %q", out.Storage.DataDir)
	}
	if out.Web.Enabled {
		t.Fatalf("expected web disabled")
	}
	if out.Web.Port != 9100 {
		t.Fatalf("expected port 9100, got %d", out.Web.Port)
	}
	if out.Display.SweepIntervalSec != 15 || out.Display.RateWindowWeeks != 8 {
		t.Fatalf("expected display settings preserved, got %+v", out.Display)
	}
}

func TestLoadConfigPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	partial := "web:\n  port: 9000\n"
	if err := os.WriteFile(path, []byte(partial), 0o644); err != nil {
		t.Fatalf("writing partial config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("loading partial config: %v", err)
	}

	if cfg.Web.Port != 9000 {
		t.Fatalf("expected explicit port 9000, got %d", cfg.Web.Port)
	}
	if cfg.Storage.Backend != BackendFile {
		t.Fatalf("expected default backend for missing key, got %q", cfg.Storage.Backend)
	}
	if cfg.Display.RateWindowWeeks != 4 {
		t.Fatalf("expected default rate window for missing key, got %d", cfg.Display.RateWindowWeeks)
	}
}
