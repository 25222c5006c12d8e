package nuclide

import (
	"fmt"

	"github.com/repoworks/nucsim/internal/material"
)

// Iso identifies an isotope as element*1000 + mass number (92235 = U-235).
type Iso = int

// Elem identifies a chemical element (Iso / 1000).
type Elem = int

// ElemOf returns the element identifier of an isotope.
func ElemOf(iso Iso) Elem { return iso / 1000 }

// IsoConcMap maps an isotope to a concentration [kg/m^3].
type IsoConcMap map[Iso]float64

// ConcGradMap maps an isotope to a signed concentration gradient [kg/m^4].
// The sign encodes the direction of diffusive flux.
type ConcGradMap map[Iso]float64

// IsoFluxMap maps an isotope to a net boundary flux. Positive is outward.
type IsoFluxMap map[Iso]float64

func (c IsoConcMap) Clone() IsoConcMap {
	out := make(IsoConcMap, len(c))
	for iso, v := range c {
		out[iso] = v
	}
	return out
}

// Scale returns a copy of c with every concentration multiplied by factor.
func (c IsoConcMap) Scale(factor float64) IsoConcMap {
	out := make(IsoConcMap, len(c))
	for iso, v := range c {
		out[iso] = v * factor
	}
	return out
}

// Add returns the isotope-wise sum of c and other.
func (c IsoConcMap) Add(other IsoConcMap) IsoConcMap {
	out := c.Clone()
	for iso, v := range other {
		out[iso] += v
	}
	return out
}

// Sub returns the isotope-wise difference c - other.
func (c IsoConcMap) Sub(other IsoConcMap) IsoConcMap {
	out := c.Clone()
	for iso, v := range other {
		out[iso] -= v
	}
	return out
}

// MassRecord is one vector-history snapshot: the summed composition and
// total mass of the contained waste queue at a time step.
type MassRecord struct {
	Comp material.Composition
	Mass float64
}

// VecHist records the contained (composition, mass) pair per time step.
type VecHist map[int]MassRecord

// ConcHist records the boundary concentration map per time step.
type ConcHist map[int]IsoConcMap

// CompToConc converts a (composition, mass) pair into a concentration map
// over the given volume.
func CompToConc(comp material.Composition, kg, vol float64) (IsoConcMap, error) {
	if vol <= 0 {
		return nil, fmt.Errorf("%w: volume %g", ErrZeroVolume, vol)
	}
	conc := make(IsoConcMap, len(comp))
	for iso, frac := range comp {
		conc[iso] = frac * kg / vol
	}
	return conc, nil
}

// ConcToComp converts a concentration map over the given volume back into
// a (composition, total mass) pair.
func ConcToComp(conc IsoConcMap, vol float64) (material.Composition, float64) {
	comp := material.Composition{}
	total := 0.0
	for iso, c := range conc {
		mass := c * vol
		comp[iso] = mass
		total += mass
	}
	comp.Normalize()
	return comp, total
}
