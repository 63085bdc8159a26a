package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if got := len(cfg.Survival.Levels); got != 3 {
		t.Errorf("survival levels = %d, want 3", got)
	}
	if got := len(cfg.Feeding.Levels); got != 3 {
		t.Errorf("feeding levels = %d, want 3", got)
	}
	if cfg.Derived.IntroDisplay != 10*time.Second {
		t.Errorf("intro display = %v, want 10s", cfg.Derived.IntroDisplay)
	}
	if cfg.Derived.CollectibleAge != 10*time.Second {
		t.Errorf("collectible age = %v, want 10s", cfg.Derived.CollectibleAge)
	}
	if cfg.Feeding.Levels[1].SpawnInterval != 3.5 {
		t.Errorf("feeding level 2 interval = %v, want 3.5", cfg.Feeding.Levels[1].SpawnInterval)
	}
	// Zero ROI expands to the sensor frame
	if cfg.Sensor.ROI.Width != float64(cfg.Sensor.Width) || cfg.Sensor.ROI.Height != float64(cfg.Sensor.Height) {
		t.Errorf("roi = %+v, want whole sensor frame", cfg.Sensor.ROI)
	}
}

func TestLoadOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	data := `
timing:
  intro_display: 2
survival:
  levels:
    - {number: 1, initial_population: 3, max_threats: 2, spawn_interval: 1, duration: 4, name: "Only"}
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Derived.IntroDisplay != 2*time.Second {
		t.Errorf("intro display = %v, want 2s", cfg.Derived.IntroDisplay)
	}
	// Untouched fields keep their defaults
	if cfg.Derived.ResultsDisplay != 5*time.Second {
		t.Errorf("results display = %v, want 5s", cfg.Derived.ResultsDisplay)
	}
	if len(cfg.Survival.Levels) != 1 || cfg.Survival.Levels[0].Name != "Only" {
		t.Errorf("survival levels = %+v, want the single override level", cfg.Survival.Levels)
	}
	if len(cfg.Feeding.Levels) != 3 {
		t.Errorf("feeding levels = %d, want defaults", len(cfg.Feeding.Levels))
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error %v does not wrap os.ErrNotExist", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"zero duration", func(c *Config) { c.Survival.Levels[0].Duration = 0 }, "duration must be positive"},
		{"misnumbered", func(c *Config) { c.Feeding.Levels[2].Number = 7 }, "number 7, want 3"},
		{"empty table", func(c *Config) { c.Feeding.Levels = nil }, "table is empty"},
		{"inset too large", func(c *Config) { c.Spawn.AgentInset = 0.5 }, "agent_inset"},
		{"no attempts", func(c *Config) { c.Spawn.MaxAttempts = 0 }, "max_attempts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			if err != nil {
				t.Fatal(err)
			}
			tt.mutate(cfg)
			err = cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Survival.Levels[0].Duration = -1
	cfg.Feeding.Levels[0].Duration = -1

	err = cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "survival.levels[0]") || !strings.Contains(msg, "feeding.levels[0]") {
		t.Errorf("joined error missing a field: %q", msg)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load written config: %v", err)
	}
	if back.Survival.Levels[2].Name != cfg.Survival.Levels[2].Name {
		t.Errorf("level name = %q, want %q", back.Survival.Levels[2].Name, cfg.Survival.Levels[2].Name)
	}
}
