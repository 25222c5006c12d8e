package nuclide

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/repoworks/nucsim/internal/geometry"
	"github.com/repoworks/nucsim/internal/material"
	"github.com/repoworks/nucsim/internal/mattable"
)

// cell is the state shared by every transport strategy: the contained
// waste queue, the per-step histories, and borrowed references to the
// component geometry and the coefficient table. It owns the bookkeeping
// every Model must honor; strategies layer their transport math on top.
type cell struct {
	name string

	geom  *geometry.Geometry
	table *mattable.Table

	wastes      []*material.Material
	vecHist     VecHist
	concHist    ConcHist
	lastUpdated int

	porosity float64 // [0,1]
	v        float64 // advective velocity
}

func newCell(name string) cell {
	return cell{
		name:     name,
		table:    mattable.Builtin(),
		vecHist:  VecHist{},
		concHist: ConcHist{},
		porosity: 1,
	}
}

func (c *cell) SetGeometry(g *geometry.Geometry) { c.geom = g }
func (c *cell) Geometry() *geometry.Geometry     { return c.geom }
func (c *cell) SetTable(t *mattable.Table)       { c.table = t }
func (c *cell) LastUpdated() int                 { return c.lastUpdated }
func (c *cell) Name() string                     { return c.name }

// totalVolume is V_T, taken from the component geometry.
func (c *cell) totalVolume() float64 {
	if c.geom == nil {
		return 0
	}
	return c.geom.Volume()
}

// poreVolume is V_f = V_T * porosity, the volume available to contaminant.
func (c *cell) poreVolume() float64 {
	return material.PoreVolume(c.totalVolume(), c.porosity)
}

func (c *cell) setPorosity(porosity float64) error {
	if err := material.ValidatePercent(porosity); err != nil {
		log.WithField("model", c.name).Errorf("porosity must be in [0,1], got %g", porosity)
		return fmt.Errorf("%w: porosity %g not in [0,1]", ErrRangeViolation, porosity)
	}
	c.porosity = porosity
	return nil
}

func (c *cell) setV(v float64) error {
	if err := material.ValidateFinitePos(v); err != nil {
		log.WithField("model", c.name).Errorf("advective velocity must be finite and positive, got %g", v)
		return fmt.Errorf("%w: advective velocity %g", ErrRangeViolation, v)
	}
	c.v = v
	return nil
}

// checkTime enforces the monotonic-time contract. A driver that steps a
// model backwards has violated the simulation protocol; the failure is not
// recoverable.
func (c *cell) checkTime(t int) {
	if t < c.lastUpdated {
		panic(fmt.Sprintf("nuclide: %s stepped backwards from %d to %d", c.name, c.lastUpdated, t))
	}
}

func (c *cell) Absorb(m *material.Material) {
	log.WithFields(log.Fields{
		"model": c.name,
		"kg":    m.Mass,
	}).Debug("absorbing material")
	c.wastes = append(c.wastes, m)
}

func (c *cell) Extract(comp material.Composition, kg float64) (*material.Material, error) {
	contained := 0.0
	for _, p := range c.wastes {
		for iso := range comp {
			contained += p.MassOf(iso)
		}
	}
	if contained == 0 {
		return nil, fmt.Errorf("%w: %s", ErrInsufficientMass, c.name)
	}
	log.WithFields(log.Fields{
		"model": c.name,
		"kg":    kg,
	}).Debug("extracting material")
	removed, kept := material.ExtractFrom(comp, kg, c.wastes)
	c.wastes = kept
	c.updateVecHist(c.lastUpdated)
	return removed, nil
}

// ContainedMass sums the waste queue.
func (c *cell) ContainedMass() float64 {
	_, kg := material.Sum(c.wastes)
	return kg
}

// updateVecHist snapshots the summed contained mass at time t.
// Re-snapshotting the current step after an extraction is permitted.
func (c *cell) updateVecHist(t int) {
	comp, kg := material.Sum(c.wastes)
	c.vecHist[t] = MassRecord{Comp: comp, Mass: kg}
}

// MassAt returns the contained-mass snapshot recorded for step t.
func (c *cell) MassAt(t int) MassRecord {
	return c.vecHist[t]
}

// setConcHist stores the boundary concentration for step t and advances
// the clock. This is the only mutation path for lastUpdated.
func (c *cell) setConcHist(t int, conc IsoConcMap) {
	c.concHist[t] = conc
	c.lastUpdated = t
}

// concAt returns the stored concentration at step t, or an empty map when
// the step has not been computed.
func (c *cell) concAt(t int) IsoConcMap {
	if conc, ok := c.concHist[t]; ok {
		return conc
	}
	return IsoConcMap{}
}

// SourceTermBC converts the current boundary concentration back to the
// (composition, mass) pair available for release over the pore volume.
func (c *cell) SourceTermBC() (material.Composition, float64) {
	return ConcToComp(c.concAt(c.lastUpdated), c.poreVolume())
}

// DirichletBC returns the boundary concentration for the last computed
// step.
func (c *cell) DirichletBC() IsoConcMap {
	return c.concAt(c.lastUpdated).Clone()
}

// NeumannBC computes the boundary gradient by finite difference between
// the internal concentration at the radial midpoint and cExt at rExt.
// Isotopes present on only one side are taken as zero on the other.
func (c *cell) NeumannBC(cExt IsoConcMap, rExt float64) (ConcGradMap, error) {
	cInt := c.concAt(c.lastUpdated)
	rInt := c.geom.RadialMidpoint()
	if rExt <= rInt {
		return nil, fmt.Errorf("%w: external radius %g inside midpoint %g", ErrRangeViolation, rExt, rInt)
	}

	grad := ConcGradMap{}
	for iso, ci := range cInt {
		grad[iso] = (cExt[iso] - ci) / (rExt - rInt)
	}
	for iso, ce := range cExt {
		if _, ok := cInt[iso]; !ok {
			grad[iso] = ce / (rExt - rInt)
		}
	}
	return grad, nil
}

// CauchyBC combines the diffusive flux -D*grad with the advective flux
// v*conc per isotope. D comes from the coefficient table keyed by element;
// a missing element is fatal for the computation.
func (c *cell) CauchyBC(cExt IsoConcMap, rExt float64) (IsoFluxMap, error) {
	grad, err := c.NeumannBC(cExt, rExt)
	if err != nil {
		return nil, err
	}
	dirichlet := c.concAt(c.lastUpdated)

	flux := IsoFluxMap{}
	for iso, g := range grad {
		d, err := c.table.D(ElemOf(iso))
		if err != nil {
			return nil, err
		}
		flux[iso] = -d*g + dirichlet[iso]*c.v
	}
	return flux, nil
}

// copyInto seeds dst with this cell's parameters and borrowed references,
// a cloned geometry, and a fresh history starting at now.
func (c *cell) copyInto(dst *cell, now int) {
	dst.table = c.table
	dst.porosity = c.porosity
	dst.v = c.v
	if c.geom != nil {
		dst.geom = geometry.Copy(c.geom, c.geom.Centroid())
	}
	dst.wastes = nil
	dst.vecHist = VecHist{}
	dst.concHist = ConcHist{}
	dst.lastUpdated = now
	dst.updateVecHist(now)
}
