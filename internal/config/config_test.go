package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chess.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if cfg.Clock() != 0 {
		t.Errorf("expected untimed games by default, got %s", cfg.Clock())
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
addr: ":8080"
computer: white
log_level: debug
seed: 99
clock_seconds: 300
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":8080" || cfg.Computer != "white" || cfg.LogLevel != "debug" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.AllowOrigins != Default().AllowOrigins {
		t.Errorf("unset keys should keep their defaults, got %q", cfg.AllowOrigins)
	}
	if cfg.ResolvedSeed() != 99 {
		t.Errorf("expected seed 99, got %d", cfg.ResolvedSeed())
	}
	if cfg.Clock() != 5*time.Minute {
		t.Errorf("expected a five minute clock, got %s", cfg.Clock())
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "addr: \":8080\"\ncomputer: white\n")
	t.Setenv("CHESS_ADDR", ":9090")
	t.Setenv("CHESS_COMPUTER", "black")
	t.Setenv("CHESS_SEED", "7")
	t.Setenv("CHESS_CLOCK_SECONDS", "60")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":9090" || cfg.Computer != "black" || cfg.Seed != 7 || cfg.ClockSeconds != 60 {
		t.Fatalf("environment not applied: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
	}{
		{name: "bad computer side", body: "computer: purple\n"},
		{name: "negative clock", body: "clock_seconds: -1\n"},
		{name: "bad log level", body: "log_level: loud\n"},
		{name: "malformed yaml", body: "addr: [\n"},
		{name: "bad seed env", env: map[string]string{"CHESS_SEED": "abc"}},
		{name: "bad clock env", env: map[string]string{"CHESS_CLOCK_SECONDS": "soon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.body != "" {
				path = writeConfig(t, tt.body)
			}
			if _, err := Load(path); err == nil {
				t.Fatal("expected an error")
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]log.Level{
		"trace":   log.LevelTrace,
		"DEBUG":   log.LevelDebug,
		"":        log.LevelInfo,
		" info ":  log.LevelInfo,
		"warning": log.LevelWarn,
		"error":   log.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
}
