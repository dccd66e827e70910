package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"PORT", "DATA_DIR", "TRIP_FILE", "ZONE_FILE", "LOG_LEVEL", "ENGINE_THREADS"} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != ":8080" {
		t.Errorf("port = %q", cfg.Server.Port)
	}
	if got := cfg.Dataset.TripPath(); got != filepath.Join(DefaultDataDir, DefaultTripFile) {
		t.Errorf("trip path = %q", got)
	}
	if cfg.Dataset.TripURL != DefaultTripURL || cfg.Dataset.ZoneURL != DefaultZoneURL || !cfg.Dataset.Download {
		t.Errorf("dataset = %+v", cfg.Dataset)
	}
	if cfg.Engine.MaxConns != 1 {
		t.Errorf("max conns = %d", cfg.Engine.MaxConns)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `server:
  port: ":9000"
  mode: debug
dataset:
  dir: /srv/taxi
  trip_file: trips.parquet
  zone_file: zones.csv
  download: false
engine:
  threads: 4
  memory_limit: 2GB
log:
  level: DEBUG
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	clearEnv(t)
	t.Setenv("PORT", "7000")
	t.Setenv("ZONE_FILE", "lookup.csv")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != ":7000" || cfg.Server.Mode != "debug" {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Dataset.TripPath() != filepath.Join("/srv/taxi", "trips.parquet") {
		t.Errorf("trip path = %q", cfg.Dataset.TripPath())
	}
	if cfg.Dataset.ZonePath() != filepath.Join("/srv/taxi", "lookup.csv") {
		t.Errorf("zone path = %q", cfg.Dataset.ZonePath())
	}
	if cfg.Dataset.Download {
		t.Error("download should be disabled")
	}
	// URLs not in the file keep their defaults
	if cfg.Dataset.TripURL != DefaultTripURL {
		t.Errorf("trip url = %q", cfg.Dataset.TripURL)
	}
	if cfg.Engine.Threads != 4 || cfg.Engine.MemoryLimit != "2GB" || cfg.Log.Level != "DEBUG" {
		t.Errorf("engine %+v, log %+v", cfg.Engine, cfg.Log)
	}
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "server: [unclosed"},
		{"bad log level", "log:\n  level: LOUD\n"},
		{"bad url", "dataset:\n  trip_url: not a url\n"},
		{"negative threads", "engine:\n  threads: -1\n"},
		{"bad mode", "server:\n  mode: turbo\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load succeeded, want error")
			}
		})
	}

	if _, err := Load(filepath.Join(dir, "missing.yml")); err == nil {
		t.Error("Load of missing file succeeded")
	}
}

func TestLoad_BadEnv(t *testing.T) {
	t.Setenv("ENGINE_THREADS", "many")
	if _, err := Load(""); err == nil {
		t.Error("Load succeeded with invalid ENGINE_THREADS")
	}
}
