// Package config loads and saves simulation scenarios: node and object
// descriptors plus solver settings, in yaml.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arvo-sim/mbd/internal/model"
	"github.com/arvo-sim/mbd/internal/solver"
	"github.com/arvo-sim/mbd/internal/system"
)

// Config describes a full scenario. Nodes and Objects hold descriptor
// mappings with nodeType/objectType discriminators; see the model package.
type Config struct {
	Name    string           `yaml:"name"`
	Nodes   []map[string]any `yaml:"nodes"`
	Objects []map[string]any `yaml:"objects"`
	Solver  SolverConfig     `yaml:"solver"`
}

// SolverConfig mirrors solver.Settings in yaml form.
type SolverConfig struct {
	NumberOfSteps         int     `yaml:"numberOfSteps"`
	StartTime             float64 `yaml:"startTime"`
	EndTime               float64 `yaml:"endTime"`
	SpectralRadius        float64 `yaml:"spectralRadius"`
	NewtonTolerance       float64 `yaml:"newtonTolerance"`
	MaxNewtonIterations   int     `yaml:"maxNewtonIterations"`
	NormalizeOrientations bool    `yaml:"normalizeOrientations"`
	Verbose               bool    `yaml:"verbose"`
}

// DefaultConfig returns an empty scenario with the documented solver
// defaults.
func DefaultConfig() *Config {
	d := solver.DefaultSettings()
	return &Config{
		Solver: SolverConfig{
			NumberOfSteps:       d.NumberOfSteps,
			StartTime:           d.StartTime,
			EndTime:             d.EndTime,
			SpectralRadius:      d.SpectralRadius,
			NewtonTolerance:     d.NewtonTolerance,
			MaxNewtonIterations: d.MaxNewtonIterations,
		},
	}
}

// Load reads a scenario file, overlaying it on the defaults so absent
// solver options keep their documented values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the scenario as yaml.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Settings converts the solver section to solver.Settings.
func (c *Config) Settings() solver.Settings {
	return solver.Settings{
		NumberOfSteps:         c.Solver.NumberOfSteps,
		StartTime:             c.Solver.StartTime,
		EndTime:               c.Solver.EndTime,
		SpectralRadius:        c.Solver.SpectralRadius,
		NewtonTolerance:       c.Solver.NewtonTolerance,
		MaxNewtonIterations:   c.Solver.MaxNewtonIterations,
		NormalizeOrientations: c.Solver.NormalizeOrientations,
		Verbose:               c.Solver.Verbose,
	}
}

// BuildSystem constructs the assembler from the scenario's descriptors.
func (c *Config) BuildSystem() (*system.System, error) {
	sys := system.New()
	for _, d := range c.Nodes {
		if _, err := sys.AddNodeDescriptor(model.Descriptor(d)); err != nil {
			return nil, err
		}
	}
	for _, d := range c.Objects {
		if _, err := sys.AddObjectDescriptor(model.Descriptor(d)); err != nil {
			return nil, err
		}
	}
	return sys, nil
}
