package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Engine != "perfusion" {
		t.Errorf("expected engine perfusion, got %s", cfg.Engine)
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if cfg.NCP <= 0 {
		t.Error("ncp should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fmex.yaml")

	cfg := DefaultConfig()
	cfg.Duration = 250
	cfg.Plot = "comprehensive"
	cfg.Parameters = map[string]float64{"Vcc": 0.050}
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Duration != 250 || loaded.Plot != "comprehensive" {
		t.Errorf("loaded = %+v", loaded)
	}
	if loaded.Parameters["Vcc"] != 0.050 {
		t.Errorf("parameters = %v", loaded.Parameters)
	}
	// Fields absent from the file keep their defaults.
	if loaded.NCP != DefaultNCP {
		t.Errorf("ncp = %d, want default %d", loaded.NCP, DefaultNCP)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fmex.yaml")
	if err := os.WriteFile(path, []byte("plot: sideways\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected validation error for unknown plot layout")
	}
}
