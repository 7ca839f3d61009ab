package config

import (
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv("DATA_DIR", dataDir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.ListenAddr != ":8888" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.DBPath != filepath.Join(dataDir, "garmin.db") {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.SyncSchedule != "@hourly" || cfg.SyncPageSize != 100 || cfg.DownloadFormat != "fit" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATA_DIR", t.TempDir())
	t.Setenv("DB_PATH", "/tmp/other.db")
	t.Setenv("SYNC_PAGE_SIZE", "25")
	t.Setenv("DOWNLOAD_FORMAT", "gpx")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.DBPath != "/tmp/other.db" || cfg.SyncPageSize != 25 || cfg.DownloadFormat != "gpx" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("DATA_DIR", t.TempDir())
	t.Setenv("SYNC_PAGE_SIZE", "zero")
	if _, err := Load(); err == nil {
		t.Error("expected an error for a non-numeric page size")
	}

	t.Setenv("SYNC_PAGE_SIZE", "10")
	t.Setenv("DOWNLOAD_FORMAT", "tcx")
	if _, err := Load(); err == nil {
		t.Error("expected an error for an unsupported download format")
	}

	t.Setenv("DOWNLOAD_FORMAT", "fit")
	t.Setenv("SYNC_SCHEDULE", "whenever")
	if _, err := Load(); err == nil {
		t.Error("expected an error for a malformed sync schedule")
	}
}
