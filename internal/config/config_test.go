package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Width != 0 {
		t.Errorf("expected intrinsic width (0), got %f", cfg.Width)
	}
	if cfg.Stretch != 1 {
		t.Errorf("expected stretch 1, got %f", cfg.Stretch)
	}
	if cfg.Glyph != "x" || cfg.Blank != " " {
		t.Errorf("expected default glyphs, got %q %q", cfg.Glyph, cfg.Blank)
	}
	if cfg.Async {
		t.Error("async should default to false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pixtext.yaml")
	data := "width: 40\nstretch: 0.5\ntext: hello\nasync: true\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Width != 40 || cfg.Stretch != 0.5 {
		t.Errorf("expected 40 / 0.5, got %f / %f", cfg.Width, cfg.Stretch)
	}
	if cfg.Text != "hello" || !cfg.Async {
		t.Errorf("expected text and async from file, got %q %v", cfg.Text, cfg.Async)
	}
	if cfg.Interpolator != DefaultInterpolator {
		t.Errorf("omitted key should keep default, got %q", cfg.Interpolator)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("stretch: -1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for negative stretch")
	}

	if err := os.WriteFile(path, []byte("width: [1, 2]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := GetPreset("banner")

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("expected %+v, got %+v", cfg, loaded)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative width", func(c *Config) { c.Width = -3 }},
		{"nan width", func(c *Config) { c.Width = math.NaN() }},
		{"inf stretch", func(c *Config) { c.Stretch = math.Inf(1) }},
		{"negative workers", func(c *Config) { c.Workers = -1 }},
		{"threshold too high", func(c *Config) { c.Threshold = 300 }},
		{"empty glyph", func(c *Config) { c.Glyph = "" }},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("terminal")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Stretch != 0.5 {
		t.Errorf("expected stretch 0.5, got %f", cfg.Stretch)
	}

	cfg.Width = 1
	if Presets["terminal"].Width == 1 {
		t.Error("GetPreset must return a copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Errorf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}
	for _, name := range presets {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}
