package sim

import (
	"fmt"

	"github.com/repoworks/nucsim/internal/config"
	"github.com/repoworks/nucsim/internal/material"
	"github.com/repoworks/nucsim/internal/nuclide"
)

// FromConfig assembles a component chain from a scenario: one model per
// component, the shared coefficient table, and the initial inventory
// loaded into the innermost component.
func FromConfig(cfg *config.Config) (*Simulator, error) {
	if len(cfg.Components) == 0 {
		return nil, fmt.Errorf("scenario %q has no components", cfg.Name)
	}
	table := cfg.Table()

	comps := make([]*Component, 0, len(cfg.Components))
	for _, cc := range cfg.Components {
		model, err := nuclide.New(cc.Model)
		if err != nil {
			return nil, err
		}
		geom, err := cc.Geometry.Build()
		if err != nil {
			return nil, fmt.Errorf("component %q: %w", cc.Name, err)
		}
		model.SetGeometry(geom)
		model.SetTable(table)
		if err := model.Init(cc.Params()); err != nil {
			return nil, fmt.Errorf("component %q: %w", cc.Name, err)
		}
		comps = append(comps, &Component{Name: cc.Name, Model: model})
	}

	inner := comps[0].Model
	for _, item := range cfg.Inventory {
		inner.Absorb(material.New(material.Composition{item.Isotope: 1}, item.Kg))
	}
	for _, c := range comps {
		if err := c.Model.TransportNuclides(0); err != nil {
			return nil, &SimError{Step: 0, Component: c.Name, Wrapped: err}
		}
	}
	return New(comps...), nil
}
