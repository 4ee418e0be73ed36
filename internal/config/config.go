// Package config loads server settings from defaults, an optional YAML file
// and CHESS_* environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr         string `yaml:"addr"`
	AllowOrigins string `yaml:"allow_origins"`
	Computer     string `yaml:"computer"`      // default engine side for new games: "white", "black" or ""
	LogLevel     string `yaml:"log_level"`     // trace, debug, info, warn, error
	Seed         int64  `yaml:"seed"`          // 0 picks one from the clock
	ClockSeconds int    `yaml:"clock_seconds"` // 0 leaves games untimed
}

func Default() Config {
	return Config{
		Addr:         ":3000",
		AllowOrigins: "http://localhost:5173",
		Computer:     "black",
		LogLevel:     "info",
	}
}

// Load starts from Default, overlays the YAML file at path when path is not
// empty, then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %q: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %q: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Addr = getenv("CHESS_ADDR", c.Addr)
	c.AllowOrigins = getenv("CHESS_ALLOW_ORIGINS", c.AllowOrigins)
	c.Computer = getenv("CHESS_COMPUTER", c.Computer)
	c.LogLevel = getenv("CHESS_LOG_LEVEL", c.LogLevel)
	if v := os.Getenv("CHESS_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("CHESS_SEED: %w", err)
		}
		c.Seed = seed
	}
	if v := os.Getenv("CHESS_CLOCK_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CHESS_CLOCK_SECONDS: %w", err)
		}
		c.ClockSeconds = secs
	}
	return nil
}

func (c Config) Validate() error {
	switch c.Computer {
	case "", "white", "black":
	default:
		return fmt.Errorf("computer side %q: want white, black or empty", c.Computer)
	}
	if c.ClockSeconds < 0 {
		return fmt.Errorf("clock_seconds %d: must not be negative", c.ClockSeconds)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Clock returns the per-side time control.
func (c Config) Clock() time.Duration {
	return time.Duration(c.ClockSeconds) * time.Second
}

// ResolvedSeed returns Seed, or a clock-derived seed when Seed is 0.
func (c Config) ResolvedSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

func ParseLevel(s string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return log.LevelTrace, nil
	case "debug":
		return log.LevelDebug, nil
	case "", "info":
		return log.LevelInfo, nil
	case "warn", "warning":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	}
	return log.LevelInfo, fmt.Errorf("log level %q: unknown", s)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
