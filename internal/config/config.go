// Package config loads the session configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDuration = 1000.0
	DefaultNCP      = 500
	DefaultPlot     = "basic"
	DefaultDataDir  = ".fmex"
)

type Config struct {
	Engine        string             `yaml:"engine"`
	Duration      float64            `yaml:"duration"`
	NCP           int                `yaml:"ncp"`
	Plot          string             `yaml:"plot"`
	DataDir       string             `yaml:"data_dir"`
	Parameters    map[string]float64 `yaml:"parameters"`
	InitialValues map[string]float64 `yaml:"initial_values"`
}

func DefaultConfig() *Config {
	return &Config{
		Engine:   "perfusion",
		Duration: DefaultDuration,
		NCP:      DefaultNCP,
		Plot:     DefaultPlot,
		DataDir:  DefaultDataDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Duration <= 0 {
		return fmt.Errorf("config: duration must be positive, got %v", c.Duration)
	}
	if c.NCP <= 0 {
		return fmt.Errorf("config: ncp must be positive, got %d", c.NCP)
	}
	switch c.Plot {
	case "basic", "comprehensive", "none":
	default:
		return fmt.Errorf("config: unknown plot layout %q", c.Plot)
	}
	return nil
}
