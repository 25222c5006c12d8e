package nuclide

import (
	"fmt"

	"github.com/repoworks/nucsim/internal/geometry"
	"github.com/repoworks/nucsim/internal/material"
	"github.com/repoworks/nucsim/internal/mattable"
)

// ModelType tags a concrete transport strategy.
type ModelType int

const (
	DegRateModel ModelType = iota
	MixedCellModel
	OneDimPPMModel
)

func (t ModelType) String() string {
	switch t {
	case DegRateModel:
		return "degrate"
	case MixedCellModel:
		return "mixedcell"
	case OneDimPPMModel:
		return "onedimppm"
	default:
		return "unknown"
	}
}

// Params carries the strategy scalars a model validates at Init. A model
// reads only the fields its strategy defines.
type Params struct {
	AdvectiveVelocity float64
	Porosity          float64
	BulkDensity       float64
	DegradationRate   float64
}

// Model is the polymorphic contract every nuclide transport strategy
// implements. See the package documentation for the calling protocol.
type Model interface {
	// Init validates and stores the strategy parameters. A parameter
	// outside its legal range yields ErrRangeViolation and leaves the
	// model unchanged.
	Init(p Params) error

	// Copy produces an independent model with the same parameters, a
	// cloned geometry, and a fresh mass history starting at now.
	Copy(now int) Model

	// Absorb appends a mass parcel to the contained queue. Histories are
	// untouched until the next TransportNuclides call.
	Absorb(m *material.Material)

	// Extract removes up to kg of the given composition, capping at what
	// is contained, and returns the removed parcel. It fails with
	// ErrInsufficientMass only when none of the composition is present.
	Extract(comp material.Composition, kg float64) (*material.Material, error)

	// TransportNuclides advances the model clock to t and recomputes the
	// histories for that step. t must not precede the last update; a
	// regression is a driver bug and panics.
	TransportNuclides(t int) error

	// SourceTermBC returns the (composition, mass) available for release
	// at the outer boundary for the last computed step.
	SourceTermBC() (material.Composition, float64)

	// DirichletBC returns the boundary concentration at the last
	// computed step.
	DirichletBC() IsoConcMap

	// NeumannBC returns the concentration gradient at the boundary by
	// finite difference against an external concentration measured at
	// rExt. Isotopes missing on either side count as zero there.
	NeumannBC(cExt IsoConcMap, rExt float64) (ConcGradMap, error)

	// CauchyBC returns the total boundary flux per isotope: the
	// diffusive part -D*grad plus the advective part v*conc.
	CauchyBC(cExt IsoConcMap, rExt float64) (IsoFluxMap, error)

	ContainedMass() float64
	SetGeometry(g *geometry.Geometry)
	Geometry() *geometry.Geometry
	SetTable(t *mattable.Table)
	LastUpdated() int
	Type() ModelType
	Name() string
}

// New constructs a transport model by strategy name.
func New(kind string) (Model, error) {
	switch kind {
	case "degrate":
		return NewDegRate(), nil
	case "mixedcell":
		return NewMixedCell(), nil
	case "onedimppm":
		return NewOneDimPPM(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, kind)
	}
}

// ModelNames lists the registered strategy names.
func ModelNames() []string {
	return []string{"degrate", "mixedcell", "onedimppm"}
}
