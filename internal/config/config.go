// Package config loads crackdb settings from YAML.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/leengari/crackdb/internal/crack"
)

// Config is the top-level configuration.
type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// EngineConfig selects the cracking behaviour.
type EngineConfig struct {
	// Strategy is "underswap" or "overswap".
	Strategy string `yaml:"strategy"`
}

// LoggingConfig controls the slog handlers.
type LoggingConfig struct {
	Level     string `yaml:"level"`
	AddSource bool   `yaml:"add_source"`
	// SeqURL enables the Seq handler when non-empty.
	SeqURL string `yaml:"seq_url"`
}

// MetricsConfig controls the prometheus observer.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Engine:  EngineConfig{Strategy: crack.UnderswapName},
		Logging: LoggingConfig{Level: "info"},
		Metrics: MetricsConfig{Enabled: true, Namespace: "crackdb"},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated fields.
func (c Config) Validate() error {
	if _, err := crack.StrategyByName(c.Engine.Strategy); err != nil {
		return err
	}
	if _, err := c.Logging.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// Strategy resolves the configured run-merge strategy.
func (c Config) Strategy() crack.RunMergeStrategy {
	s, err := crack.StrategyByName(c.Engine.Strategy)
	if err != nil {
		return crack.Underswap{}
	}
	return s
}

// SlogLevel parses Level; empty means info.
func (l LoggingConfig) SlogLevel() (slog.Level, error) {
	if strings.TrimSpace(l.Level) == "" {
		return slog.LevelInfo, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", l.Level)
	}
	return lvl, nil
}
