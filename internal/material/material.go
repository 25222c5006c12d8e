// Package material provides mass-parcel and composition bookkeeping for
// repository components. A Composition maps isotope identifiers to mass
// fractions; a Material is a discrete parcel carrying a composition and a
// total mass in kg.
package material

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"
)

// Composition maps an isotope identifier (element*1000 + mass number) to
// its mass fraction. Fractions are kept normalized so they sum to 1 for a
// non-empty composition.
type Composition map[int]float64

func (c Composition) Clone() Composition {
	out := make(Composition, len(c))
	for iso, f := range c {
		out[iso] = f
	}
	return out
}

// Normalize rescales the fractions in place so they sum to 1. An empty or
// zero-sum composition is left untouched.
func (c Composition) Normalize() {
	total := 0.0
	for _, f := range c {
		total += f
	}
	if total == 0 {
		return
	}
	for iso := range c {
		c[iso] /= total
	}
}

// Material is a parcel of contaminant mass resident in a component.
type Material struct {
	Comp Composition
	Mass float64
}

func New(comp Composition, kg float64) *Material {
	normalized := comp.Clone()
	normalized.Normalize()
	return &Material{Comp: normalized, Mass: kg}
}

// MassOf returns the mass in kg of a single isotope within the parcel.
func (m *Material) MassOf(iso int) float64 {
	return m.Comp[iso] * m.Mass
}

// Sum collapses a queue of parcels into a single (composition, total mass)
// pair. The returned composition is normalized.
func Sum(parcels []*Material) (Composition, float64) {
	comp := Composition{}
	total := 0.0
	for _, p := range parcels {
		for iso, f := range p.Comp {
			comp[iso] += f * p.Mass
		}
		total += p.Mass
	}
	comp.Normalize()
	return comp, total
}

// ExtractFrom removes up to kg of the given composition from the queue,
// oldest parcel first, and returns the removed material. When the queue
// holds less than kg of the requested composition the extraction is capped
// at what is available; a component never goes mass-negative.
func ExtractFrom(comp Composition, kg float64, queue []*Material) (*Material, []*Material) {
	available := 0.0
	for _, p := range queue {
		for iso := range comp {
			available += p.MassOf(iso)
		}
	}
	if kg > available {
		log.WithFields(log.Fields{
			"requested_kg": kg,
			"available_kg": available,
		}).Warn("material: extraction capped at available mass")
		kg = available
	}

	removed := Composition{}
	remaining := kg
	var kept []*Material
	for _, p := range queue {
		if remaining <= 0 {
			kept = append(kept, p)
			continue
		}
		match := 0.0
		for iso := range comp {
			match += p.MassOf(iso)
		}
		if match == 0 {
			kept = append(kept, p)
			continue
		}
		take := math.Min(match, remaining)
		frac := take / match
		for iso := range comp {
			removed[iso] += p.MassOf(iso) * frac
		}
		p.Mass -= take
		remaining -= take
		if p.Mass > 1e-12 {
			kept = append(kept, p)
		}
	}
	removed.Normalize()
	return &Material{Comp: removed, Mass: kg - remaining}, kept
}

// ValidatePercent checks that x lies in [0,1].
func ValidatePercent(x float64) error {
	if math.IsNaN(x) || x < 0 || x > 1 {
		return fmt.Errorf("value %g outside [0,1]", x)
	}
	return nil
}

// ValidateFinitePos checks that x is finite and strictly positive.
func ValidateFinitePos(x float64) error {
	if math.IsNaN(x) || math.IsInf(x, 0) || x <= 0 {
		return fmt.Errorf("value %g is not finite and positive", x)
	}
	return nil
}

// PoreVolume returns the effective pore volume V_f = V_T * theta.
func PoreVolume(vT, theta float64) float64 {
	return vT * theta
}
