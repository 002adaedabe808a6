// Package config provides configuration for the srlproj commands.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the command configuration.
type Config struct {
	// DataDir is the data root with the parsed, srl and alignment directories.
	DataDir string `yaml:"data"`
	// DB is the annotation store. A path ending in .json is a JSON lines
	// file, anything else a sqlite database.
	DB string `yaml:"db"`
	// Listen is the address of the annotation server (e.g., ":8080").
	Listen string `yaml:"listen"`
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
}

func defaults() *Config {
	return &Config{
		DataDir:  "./data",
		DB:       "annotations.db",
		Listen:   ":8080",
		LogLevel: "info",
	}
}

// FromEnv creates a Config from environment variables.
func FromEnv() *Config {
	return overlayEnv(defaults())
}

// Load creates a Config from the YAML file named in SRLPROJ_CONFIG, if any,
// with environment variables taking precedence over the file.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("SRLPROJ_CONFIG"); path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}

	return overlayEnv(cfg), nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if file.DataDir != "" {
		c.DataDir = file.DataDir
	}
	if file.DB != "" {
		c.DB = file.DB
	}
	if file.Listen != "" {
		c.Listen = file.Listen
	}
	if file.LogLevel != "" {
		c.LogLevel = file.LogLevel
	}
	return nil
}

func overlayEnv(cfg *Config) *Config {
	cfg.DataDir = getEnv("SRLPROJ_DATA", cfg.DataDir)
	cfg.DB = getEnv("SRLPROJ_DB", cfg.DB)
	cfg.Listen = getEnv("SRLPROJ_LISTEN", cfg.Listen)
	cfg.LogLevel = getEnv("SRLPROJ_LOG_LEVEL", cfg.LogLevel)
	return cfg
}

// Level returns the slog level of LogLevel.
func (c *Config) Level() (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", c.LogLevel)
}

// Logger returns a text logger writing to stderr at the configured level.
func (c *Config) Logger() (*slog.Logger, error) {
	level, err := c.Level()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})), nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
