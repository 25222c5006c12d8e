// Package config loads and saves simulation scenarios. A scenario names
// the component chain (innermost first), the initial contaminant
// inventory, and the host-material coefficient table.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/repoworks/nucsim/internal/geometry"
	"github.com/repoworks/nucsim/internal/mattable"
	"github.com/repoworks/nucsim/internal/nuclide"
)

const (
	DefaultDuration = 10
	DefaultIsotope  = 92235
	DefaultMassKg   = 10.0
)

type GeometryConfig struct {
	InnerRadius float64 `yaml:"inner_radius"`
	OuterRadius float64 `yaml:"outer_radius"`
	Length      float64 `yaml:"length"`
}

func (g GeometryConfig) Build() (*geometry.Geometry, error) {
	return geometry.New(g.InnerRadius, g.OuterRadius, geometry.Point{}, g.Length)
}

type ComponentConfig struct {
	Name              string         `yaml:"name"`
	Model             string         `yaml:"model"`
	AdvectiveVelocity float64        `yaml:"advective_velocity"`
	Porosity          float64        `yaml:"porosity"`
	BulkDensity       float64        `yaml:"bulk_density"`
	DegradationRate   float64        `yaml:"degradation_rate"`
	Geometry          GeometryConfig `yaml:"geometry"`
}

// Params maps the scenario fields onto the model parameter set.
func (c ComponentConfig) Params() nuclide.Params {
	return nuclide.Params{
		AdvectiveVelocity: c.AdvectiveVelocity,
		Porosity:          c.Porosity,
		BulkDensity:       c.BulkDensity,
		DegradationRate:   c.DegradationRate,
	}
}

type InventoryItem struct {
	Isotope int     `yaml:"isotope"`
	Kg      float64 `yaml:"kg"`
}

type Config struct {
	Name         string                        `yaml:"name"`
	Duration     int                           `yaml:"duration"`
	Material     string                        `yaml:"material"`
	Coefficients map[int]mattable.Coefficients `yaml:"coefficients"`
	Inventory    []InventoryItem               `yaml:"inventory"`
	Components   []ComponentConfig             `yaml:"components"`
}

// Table builds the coefficient table for the scenario, falling back to the
// builtin clay table when the scenario supplies none.
func (c *Config) Table() *mattable.Table {
	if len(c.Coefficients) == 0 {
		return mattable.Builtin()
	}
	return mattable.New(c.Material, c.Coefficients)
}

func DefaultConfig() *Config {
	return &Config{
		Name:     "bench",
		Duration: DefaultDuration,
		Material: "clay",
		Inventory: []InventoryItem{
			{Isotope: DefaultIsotope, Kg: DefaultMassKg},
		},
		Components: []ComponentConfig{
			{
				Name:            "waste_form",
				Model:           "degrate",
				DegradationRate: 0.5,
				Porosity:        0.3,
				Geometry:        GeometryConfig{InnerRadius: 4, OuterRadius: 5, Length: 5},
			},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
