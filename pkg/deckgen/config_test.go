package deckgen

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ukaji3/deckgen-go/pkg/deckgen/render"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Theme != render.DefaultTheme() {
		t.Errorf("Expected default theme, got %+v", cfg.Theme)
	}
	if cfg.Icons.DefaultPrefix != "mdi" || cfg.Icons.Parallelism != DefaultParallelism {
		t.Errorf("Unexpected icon defaults %+v", cfg.Icons)
	}
	if cfg.Charts.DPI != render.DefaultDPI {
		t.Errorf("Expected DPI %v, got %v", render.DefaultDPI, cfg.Charts.DPI)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deckgen.yaml")
	content := `
theme:
  accent: "#ff6600"
  title: "112233"
icons:
  base_url: http://icons.local
  timeout: 2s
  parallelism: 0
charts:
  dpi: 96
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	tests := []struct {
		name     string
		got      any
		expected any
	}{
		{"theme.accent", string(cfg.Theme.Accent), "FF6600"},
		{"theme.title", string(cfg.Theme.Title), "112233"},
		{"theme.text", cfg.Theme.Text, render.DefaultTheme().Text},
		{"icons.base_url", cfg.Icons.BaseURL, "http://icons.local"},
		{"icons.default_prefix", cfg.Icons.DefaultPrefix, "mdi"},
		{"icons.timeout", cfg.Icons.Timeout, 2 * time.Second},
		{"icons.parallelism", cfg.Icons.Parallelism, DefaultParallelism},
		{"charts.dpi", cfg.Charts.DPI, 96.0},
	}
	for _, tt := range tests {
		if tt.got != tt.expected {
			t.Errorf("%s = %v, expected %v", tt.name, tt.got, tt.expected)
		}
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown key", "themes:\n  accent: 000000\n"},
		{"bad duration", "icons:\n  timeout: soon\n"},
		{"bad type", "icons:\n  size_px: [1, 2]\n"},
	}
	for _, tt := range tests {
		if _, err := ParseConfig([]byte(tt.input)); err == nil {
			t.Errorf("%s: expected an error", tt.name)
		}
	}

	cfg, err := ParseConfig(nil)
	if err != nil {
		t.Fatalf("empty config: %v", err)
	}
	if cfg.Theme != DefaultConfig().Theme {
		t.Errorf("empty config changed the theme: %+v", cfg.Theme)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Expected error for a missing config file")
	}
}
