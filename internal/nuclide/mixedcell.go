package nuclide

import (
	"github.com/repoworks/nucsim/internal/material"
)

// MixedCell treats the component volume as instantaneously and
// homogeneously mixed: absorbed material is immediately diluted over the
// pore volume and the resulting uniform concentration is what every
// boundary sees. There is no internal spatial gradient.
type MixedCell struct {
	cell
}

func NewMixedCell() *MixedCell {
	return &MixedCell{cell: newCell("mixedcell")}
}

func (m *MixedCell) Type() ModelType { return MixedCellModel }

func (m *MixedCell) Init(p Params) error {
	if p.Porosity != 0 {
		if err := m.setPorosity(p.Porosity); err != nil {
			return err
		}
	}
	if p.AdvectiveVelocity != 0 {
		if err := m.setV(p.AdvectiveVelocity); err != nil {
			return err
		}
	}
	return nil
}

func (m *MixedCell) Copy(now int) Model {
	out := NewMixedCell()
	m.copyInto(&out.cell, now)
	return out
}

// mixCell dilutes the full contained inventory over the pore volume.
func (m *MixedCell) mixCell() (IsoConcMap, error) {
	comp, kg := material.Sum(m.wastes)
	if kg == 0 {
		return IsoConcMap{}, nil
	}
	return CompToConc(comp, kg, m.poreVolume())
}

// TransportNuclides advances to step t and re-mixes the cell. The whole
// inventory is boundary-available each step.
func (m *MixedCell) TransportNuclides(t int) error {
	m.checkTime(t)
	m.updateVecHist(t)

	conc, err := m.mixCell()
	if err != nil {
		return err
	}
	m.setConcHist(t, conc)
	return nil
}
