// Package config loads the pageblocks command configuration from YAML with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	EnvLogLevel     = "PAGEBLOCKS_LOG_LEVEL"
	EnvTemplatesDir = "PAGEBLOCKS_TEMPLATES_DIR"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the root configuration document.
type Config struct {
	Render Render `yaml:"render"`
	Log    Log    `yaml:"log"`
}

// Render configures the HTML renderer.
type Render struct {
	Sanitize     bool              `yaml:"sanitize"`
	SpacerHeight string            `yaml:"spacer_height"`
	TemplatesDir string            `yaml:"templates_dir"`
	Padding      map[string]string `yaml:"padding"`
	Stylesheet   bool              `yaml:"stylesheet"`
	EmptyMessage string            `yaml:"empty_message"`
}

// Log configures the process logger.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Render: Render{
			Sanitize:     true,
			SpacerHeight: "2rem",
			Padding: map[string]string{
				"none":   "0",
				"small":  "1rem",
				"medium": "2rem",
				"large":  "4rem",
			},
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path loads the defaults only.
func Load(path string) (Config, error) {
	cfg := Default()
	if path = strings.TrimSpace(path); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := Parse(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	cfg.ApplyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes a YAML document into cfg. Keys absent from data keep the
// values already present in cfg; padding entries are merged.
func Parse(data []byte, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil destination")
	}
	base := cfg.Render.Padding
	cfg.Render.Padding = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg.Render.Padding = base
		return fmt.Errorf("decode yaml: %w", err)
	}
	merged := make(map[string]string, len(base)+len(cfg.Render.Padding))
	for key, value := range base {
		merged[key] = value
	}
	for key, value := range cfg.Render.Padding {
		merged[strings.ToLower(strings.TrimSpace(key))] = value
	}
	cfg.Render.Padding = merged
	return nil
}

// ApplyEnv overrides fields from the environment through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if lookup == nil {
		return
	}
	if value, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(value) != "" {
		c.Log.Level = strings.TrimSpace(value)
	}
	if value, ok := lookup(EnvTemplatesDir); ok {
		c.Render.TemplatesDir = strings.TrimSpace(value)
	}
}

// Validate reports unknown log levels and formats.
func (c Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: log level %q", ErrInvalid, c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalid, c.Log.Format)
	}
	return nil
}
