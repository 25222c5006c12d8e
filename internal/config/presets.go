package config

// Named scenarios covering the two ends of the model family: a single
// degradation-limited cell, and a full chain through a porous buffer.
var presets = map[string]*Config{
	"bench": DefaultConfig(),
	"clay-column": {
		Name:     "clay-column",
		Duration: 120,
		Material: "clay",
		Inventory: []InventoryItem{
			{Isotope: 92235, Kg: 10},
			{Isotope: 94239, Kg: 2},
		},
		Components: []ComponentConfig{
			{
				Name:            "waste_form",
				Model:           "degrate",
				DegradationRate: 0.05,
				Porosity:        0.1,
				Geometry:        GeometryConfig{InnerRadius: 0, OuterRadius: 0.5, Length: 5},
			},
			{
				Name:              "buffer",
				Model:             "onedimppm",
				AdvectiveVelocity: 0.001,
				Porosity:          0.4,
				BulkDensity:       2700,
				Geometry:          GeometryConfig{InnerRadius: 0.5, OuterRadius: 2, Length: 5},
			},
			{
				Name:     "far_field",
				Model:    "mixedcell",
				Porosity: 0.25,
				Geometry: GeometryConfig{InnerRadius: 2, OuterRadius: 10, Length: 5},
			},
		},
	},
}

// GetPreset returns a copy of a named scenario, or nil if unknown.
func GetPreset(name string) *Config {
	p, ok := presets[name]
	if !ok {
		return nil
	}
	cp := *p
	cp.Inventory = append([]InventoryItem(nil), p.Inventory...)
	cp.Components = append([]ComponentConfig(nil), p.Components...)
	return &cp
}

// ListPresets names the available scenarios.
func ListPresets() []string {
	return []string{"bench", "clay-column"}
}
