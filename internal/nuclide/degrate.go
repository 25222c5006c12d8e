package nuclide

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/repoworks/nucsim/internal/material"
)

// DegRate is a degradation-rate-limited release model: each time step a
// fixed fraction of the currently contained inventory becomes available at
// the outer boundary. Rate 0 never releases, rate 1 releases everything in
// a single step, intermediate rates deplete the reservoir geometrically.
type DegRate struct {
	cell
	rate float64 // fraction of inventory released per step, [0,1]
}

func NewDegRate() *DegRate {
	return &DegRate{cell: newCell("degrate")}
}

func (d *DegRate) Type() ModelType { return DegRateModel }

func (d *DegRate) Init(p Params) error {
	if err := d.SetDegRate(p.DegradationRate); err != nil {
		return err
	}
	if p.Porosity != 0 {
		if err := d.setPorosity(p.Porosity); err != nil {
			return err
		}
	}
	if p.AdvectiveVelocity != 0 {
		if err := d.setV(p.AdvectiveVelocity); err != nil {
			return err
		}
	}
	return nil
}

// SetDegRate validates and stores the degradation rate. An out-of-range
// value is rejected and the prior rate kept.
func (d *DegRate) SetDegRate(rate float64) error {
	if err := material.ValidatePercent(rate); err != nil {
		log.WithField("model", d.name).Errorf("degradation rate must be in [0,1], got %g", rate)
		return fmt.Errorf("%w: degradation rate %g not in [0,1]", ErrRangeViolation, rate)
	}
	d.rate = rate
	return nil
}

func (d *DegRate) DegRate() float64 { return d.rate }

func (d *DegRate) Copy(now int) Model {
	out := NewDegRate()
	out.rate = d.rate
	d.copyInto(&out.cell, now)
	return out
}

// TransportNuclides advances to step t. The degraded fraction of the
// contained inventory becomes the boundary concentration for the step.
func (d *DegRate) TransportNuclides(t int) error {
	d.checkTime(t)
	d.updateVecHist(t)

	comp, kg := material.Sum(d.wastes)
	released := d.rate * kg
	conc := IsoConcMap{}
	if released > 0 {
		var err error
		conc, err = CompToConc(comp, released, d.poreVolume())
		if err != nil {
			return err
		}
	}
	d.setConcHist(t, conc)
	return nil
}
