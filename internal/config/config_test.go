package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvTemplatesDir, "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Default()
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_FileMergesDefaults(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvTemplatesDir, "")

	path := filepath.Join(t.TempDir(), "pageblocks.yaml")
	doc := []byte(`
render:
  sanitize: false
  padding:
    Large: 6rem
log:
  format: json
`)
	if err := os.WriteFile(path, doc, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Render.Sanitize {
		t.Fatalf("expected sanitize to be disabled")
	}
	if cfg.Render.SpacerHeight != "2rem" {
		t.Fatalf("expected default spacer height, got %q", cfg.Render.SpacerHeight)
	}
	wantPadding := map[string]string{"none": "0", "small": "1rem", "medium": "2rem", "large": "6rem"}
	if diff := cmp.Diff(wantPadding, cfg.Render.Padding); diff != "" {
		t.Fatalf("padding mismatch (-want +got):\n%s", diff)
	}
	if cfg.Log.Format != "json" || cfg.Log.Level != "info" {
		t.Fatalf("unexpected log config %+v", cfg.Log)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvTemplatesDir, "/srv/templates")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("expected debug level, got %q", cfg.Log.Level)
	}
	if cfg.Render.TemplatesDir != "/srv/templates" {
		t.Fatalf("expected templates dir override, got %q", cfg.Render.TemplatesDir)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvTemplatesDir, "")

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("render: [unclosed"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for malformed yaml")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults"},
		{name: "warning level", mutate: func(c *Config) { c.Log.Level = "WARNING" }},
		{name: "unknown level", mutate: func(c *Config) { c.Log.Level = "verbose" }, wantErr: true},
		{name: "unknown format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}
			err := cfg.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalid) {
					t.Fatalf("expected ErrInvalid, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestApplyEnv_IgnoresBlankLevel(t *testing.T) {
	cfg := Default()
	cfg.ApplyEnv(func(key string) (string, bool) {
		if key == EnvLogLevel {
			return "  ", true
		}
		return "", false
	})
	if cfg.Log.Level != "info" {
		t.Fatalf("expected level to stay info, got %q", cfg.Log.Level)
	}
}
