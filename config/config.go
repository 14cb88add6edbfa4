package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/GaiusCaesarBC/Nexus-Signal-Frontend-sub002/indicators"
)

// Config represents a complete indicator run: where bars come from, which
// indicators to compute and where the report goes.
type Config struct {
	Input      InputConfig       `json:"input" yaml:"input"`
	Indicators []indicators.Spec `json:"indicators" yaml:"indicators"`
	Output     OutputConfig      `json:"output" yaml:"output"`
	Server     ServerConfig      `json:"server" yaml:"server"`
	Log        LogConfig         `json:"log" yaml:"log"`
}

// InputConfig describes the bar source.
type InputConfig struct {
	Format string `json:"format" yaml:"format"` // "csv", "json" or "sqlite"
	Path   string `json:"path" yaml:"path"`
	Symbol string `json:"symbol,omitempty" yaml:"symbol,omitempty"` // required for sqlite
	From   int64  `json:"from,omitempty" yaml:"from,omitempty"`
	To     int64  `json:"to,omitempty" yaml:"to,omitempty"`
}

// OutputConfig describes where the report is written. An empty path means
// stdout.
type OutputConfig struct {
	Format string `json:"format" yaml:"format"` // "json" or "csv"
	Path   string `json:"path,omitempty" yaml:"path,omitempty"`
}

// ServerConfig contains HTTP API parameters.
type ServerConfig struct {
	Addr    string `json:"addr" yaml:"addr"`
	MaxBars int    `json:"max_bars" yaml:"max_bars"`
	Workers int    `json:"workers,omitempty" yaml:"workers,omitempty"`
}

// LogConfig contains logging parameters.
type LogConfig struct {
	Level string `json:"level" yaml:"level"` // debug|info|warn|error
}

// LoadFromFile loads configuration from a file (YAML, falling back to JSON)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	cfg.Indicators = nil

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (YAML for .yaml/.yml, JSON otherwise)
func (c *Config) SaveToFile(path string) error {
	var (
		data []byte
		err  error
	)

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Input.Format {
	case "csv", "json":
	case "sqlite":
		if c.Input.Symbol == "" {
			return fmt.Errorf("input.symbol is required for sqlite input")
		}
		if c.Input.Path == "" {
			return fmt.Errorf("input.path is required for sqlite input")
		}
	default:
		return fmt.Errorf("input.format must be 'csv', 'json' or 'sqlite'")
	}
	if c.Input.From != 0 && c.Input.To != 0 && c.Input.From >= c.Input.To {
		return fmt.Errorf("input.from must be before input.to")
	}

	if len(c.Indicators) == 0 {
		return fmt.Errorf("at least one indicator is required")
	}
	for i, spec := range c.Indicators {
		if err := spec.Validate(); err != nil {
			return fmt.Errorf("indicators[%d]: %w", i, err)
		}
	}

	if c.Output.Format != "json" && c.Output.Format != "csv" {
		return fmt.Errorf("output.format must be 'json' or 'csv'")
	}

	if c.Server.MaxBars < 0 {
		return fmt.Errorf("server.max_bars must not be negative")
	}
	if c.Server.Workers < 0 {
		return fmt.Errorf("server.workers must not be negative")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Format: "csv",
			Path:   "./bars.csv",
		},
		Indicators: []indicators.Spec{
			{Name: indicators.NameSMA, Period: 20},
			{Name: indicators.NameEMA, Period: 20},
			{Name: indicators.NameRSI, Period: indicators.DefaultRSIPeriod},
			{Name: indicators.NameMACD, Fast: 12, Slow: 26, Signal: 9},
			{Name: indicators.NameBollinger, Period: 20, Multiplier: 2},
			{Name: indicators.NameATR, Period: 14, Smoothing: indicators.SmoothingSimple},
			{Name: indicators.NameVWAP},
		},
		Output: OutputConfig{
			Format: "json",
		},
		Server: ServerConfig{
			Addr:    ":8080",
			MaxBars: 50000,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
