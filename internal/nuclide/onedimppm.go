package nuclide

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"

	"github.com/repoworks/nucsim/internal/material"
)

// sampleRadii is the number of evenly spaced radii sampled across the
// shell when reconciling mass exchange with daughter components.
const sampleRadii = 10

// OneDimPPM models the component as a one-dimensional semi-infinite
// permeable porous medium with unidirectional advective-dispersive flow
// and a Cauchy condition at the inner boundary. The concentration field is
// the closed-form solution of Leij, Skaggs and van Genuchten (1991);
// no numerical time integration is performed.
//
// Sorption is not modeled (retardation factor fixed at 1) and radioactive
// decay is deliberately not folded into the closed form.
type OneDimPPM struct {
	cell
	rho float64 // bulk density of the porous matrix

	co IsoConcMap // source concentration at the inner boundary
	ci IsoConcMap // initial concentration of the medium
}

func NewOneDimPPM() *OneDimPPM {
	return &OneDimPPM{
		cell: newCell("onedimppm"),
		co:   IsoConcMap{},
		ci:   IsoConcMap{},
	}
}

func (o *OneDimPPM) Type() ModelType { return OneDimPPMModel }

func (o *OneDimPPM) Init(p Params) error {
	if err := o.setV(p.AdvectiveVelocity); err != nil {
		return err
	}
	if err := o.setPorosity(p.Porosity); err != nil {
		return err
	}
	if err := o.SetRho(p.BulkDensity); err != nil {
		return err
	}
	return nil
}

// SetRho validates and stores the bulk density.
func (o *OneDimPPM) SetRho(rho float64) error {
	if err := material.ValidateFinitePos(rho); err != nil {
		log.WithField("model", o.name).Errorf("bulk density must be finite and positive, got %g", rho)
		return fmt.Errorf("%w: bulk density %g", ErrRangeViolation, rho)
	}
	o.rho = rho
	return nil
}

func (o *OneDimPPM) Rho() float64 { return o.rho }

func (o *OneDimPPM) SetCo(co IsoConcMap) { o.co = co.Clone() }
func (o *OneDimPPM) Co() IsoConcMap      { return o.co }
func (o *OneDimPPM) SetCi(ci IsoConcMap) { o.ci = ci.Clone() }
func (o *OneDimPPM) Ci() IsoConcMap      { return o.ci }

func (o *OneDimPPM) Copy(now int) Model {
	out := NewOneDimPPM()
	out.rho = o.rho
	out.co = o.co.Clone()
	out.ci = o.ci.Clone()
	o.copyInto(&out.cell, now)
	return out
}

// TransportNuclides advances to step t, taking the contained inventory as
// the source concentration and evaluating the closed form at the radial
// midpoint for the elapsed interval.
func (o *OneDimPPM) TransportNuclides(t int) error {
	o.checkTime(t)
	o.updateVecHist(t)
	return o.updateConcHist(t)
}

func (o *OneDimPPM) updateConcHist(t int) error {
	if t == o.lastUpdated {
		if _, ok := o.concHist[t]; ok {
			// re-running the current step with unchanged inputs
			return nil
		}
	}

	comp, kg := material.Sum(o.wastes)
	c0 := IsoConcMap{}
	if kg > 0 {
		var err error
		c0, err = CompToConc(comp, kg, o.poreVolume())
		if err != nil {
			return err
		}
	}

	// C(r,0) = Ci: no transport has happened at the initial instant, and
	// the closed form is undefined there.
	if t == 0 {
		o.co = c0.Clone()
		o.ci = c0.Clone()
		o.setConcHist(t, c0)
		return nil
	}

	prev := o.concAt(o.lastUpdated)
	conc, err := o.ConcProfile(c0, prev, o.geom.RadialMidpoint(), o.lastUpdated, t)
	if err != nil {
		return err
	}
	o.co = c0.Clone()
	o.ci = prev.Clone()
	o.setConcHist(t, conc)
	return nil
}

// ConcProfile evaluates the closed-form solution for every isotope in c0
// at radius r, for a source pulse lasting until t0 observed at time t.
func (o *OneDimPPM) ConcProfile(c0, ci IsoConcMap, r float64, t0, t int) (IsoConcMap, error) {
	out := make(IsoConcMap, len(c0))
	for iso := range c0 {
		c, err := o.CalculateConc(c0, ci, r, iso, t0, t)
		if err != nil {
			return nil, err
		}
		out[iso] = c
	}
	return out, nil
}

// erfcTerm is F(r,tau) = 1/2 erfc[(R*r - v*tau) / (2*sqrt(D*R*tau))].
func (o *OneDimPPM) erfcTerm(d, rf, r, tau float64) float64 {
	return 0.5 * math.Erfc((rf*r-o.v*tau)/(2*math.Sqrt(d*rf*tau)))
}

// CalculateConc returns the concentration of one isotope at radius r and
// time t, for a source of concentration c0 applied over [0, t0] into a
// medium with initial concentration ci:
//
//	A      = F(r,t) - F(r,t-t0)
//	B      = ci * (B1 + B2 + B3)
//	C(r,t) = c0*A + B
//
// where F is the erfc pulse term and B1..B3 are the semi-infinite-medium
// Green's function terms. Both elapsed times must be strictly positive;
// evaluating at zero elapsed time divides by zero and is rejected with
// ErrZeroElapsed rather than masked. Radioactive decay is not applied.
func (o *OneDimPPM) CalculateConc(c0, ci IsoConcMap, r float64, iso Iso, t0, t int) (float64, error) {
	if t <= 0 || t <= t0 || t0 < 0 {
		return 0, fmt.Errorf("%w: t0=%d t=%d", ErrZeroElapsed, t0, t)
	}
	d, err := o.table.D(ElemOf(iso))
	if err != nil {
		return 0, err
	}

	// retardation factor, fixed: sorption is not modeled
	const rf = 1.0
	tf := float64(t)

	a := o.erfcTerm(d, rf, r, tf)
	if t0 > 0 {
		a -= o.erfcTerm(d, rf, r, tf-float64(t0))
	} else {
		// a pulse of zero duration contributes nothing
		a = 0
	}

	b1 := o.erfcTerm(d, rf, r, tf)
	b2 := math.Sqrt(o.v*o.v*tf/(math.Pi*rf*d)) *
		math.Exp(-math.Pow(rf*r-o.v*tf, 2)/(4*d*rf*tf))
	b3 := -0.5 * (1 + o.v*r/d + o.v*o.v*tf/(d*rf)) *
		expErfc(o.v*r/d, (rf*r+o.v*tf)/(2*math.Sqrt(d*rf*tf)))
	b := ci[iso] * (b1 + b2 + b3)

	return c0[iso]*a + b, nil
}

// expErfc computes exp(x)*erfc(y). For the closed form's arguments the
// identity x - y^2 = -(r - v*t)^2/(4*D*R*t) <= 0 bounds the product by 1,
// but the naked factors overflow and underflow at repository scales
// (x = v*r/D can exceed 1e6). Past erfc's underflow region the asymptotic
// expansion erfc(y) ~ exp(-y^2)/(y*sqrt(pi)) is used.
func expErfc(x, y float64) float64 {
	if y < 26 {
		return math.Exp(x) * math.Erfc(y)
	}
	return math.Exp(x-y*y) / (y * math.Sqrt(math.Pi))
}

// UpdateInnerBC reconciles mass exchange with the daughter components
// inside this shell. For each daughter the closed form is sampled at
// evenly spaced radii across the shell, integrated by the trapezoidal rule
// into the mass now held over the shell, and the increment over the
// previously contained mass is realized by extracting from the daughter
// and absorbing here.
func (o *OneDimPPM) UpdateInnerBC(t int, daughters []Model) error {
	if t < 1 {
		return fmt.Errorf("%w: inner boundary update needs one elapsed step", ErrZeroElapsed)
	}
	a := o.geom.InnerRadius()
	b := o.geom.OuterRadius()
	radii := make([]float64, sampleRadii)
	floats.Span(radii, a, b)

	for _, daughter := range daughters {
		_, prevMass := material.Sum(o.wastes)

		profiles := make([]IsoConcMap, len(radii))
		for i, r := range radii {
			prof, err := o.ConcProfile(o.co, o.ci, r, t-1, t)
			if err != nil {
				return err
			}
			profiles[i] = prof
		}

		avg := o.shellAverage(radii, profiles, a, b)
		comp, shellMass := ConcToComp(avg, o.poreVolume())
		transfer := shellMass - prevMass
		if transfer <= 0 {
			continue
		}

		parcel, err := daughter.Extract(comp, transfer)
		if err != nil {
			return err
		}
		o.Absorb(parcel)
	}
	return nil
}

// shellAverage integrates per-radius concentration maps over [a,b] with
// the composite trapezoidal rule and divides by the shell thickness.
func (o *OneDimPPM) shellAverage(radii []float64, profiles []IsoConcMap, a, b float64) IsoConcMap {
	isos := map[Iso]struct{}{}
	for _, p := range profiles {
		for iso := range p {
			isos[iso] = struct{}{}
		}
	}

	avg := IsoConcMap{}
	ys := make([]float64, len(radii))
	for iso := range isos {
		for i, p := range profiles {
			ys[i] = p[iso]
		}
		avg[iso] = integrate.Trapezoidal(radii, ys) / (b - a)
	}
	return avg
}
