package nuclide

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repoworks/nucsim/internal/material"
	"github.com/repoworks/nucsim/internal/mattable"
)

func testPPM(t *testing.T, v, d float64) *OneDimPPM {
	t.Helper()
	o := NewOneDimPPM()
	o.SetGeometry(testGeom(t))
	o.SetTable(mattable.New("test", map[int]mattable.Coefficients{
		92: {D: d, KD: 0.1, Sol: 1},
	}))
	require.NoError(t, o.Init(Params{AdvectiveVelocity: v, Porosity: 0.3, BulkDensity: 2000}))
	return o
}

func TestOneDimPPMInitValidates(t *testing.T) {
	o := NewOneDimPPM()

	err := o.Init(Params{AdvectiveVelocity: 0, Porosity: 0.3, BulkDensity: 2000})
	assert.ErrorIs(t, err, ErrRangeViolation, "zero velocity")

	err = o.Init(Params{AdvectiveVelocity: 1, Porosity: 1.5, BulkDensity: 2000})
	assert.ErrorIs(t, err, ErrRangeViolation, "porosity above 1")

	err = o.Init(Params{AdvectiveVelocity: 1, Porosity: 0.3, BulkDensity: math.Inf(1)})
	assert.ErrorIs(t, err, ErrRangeViolation, "infinite density")

	require.NoError(t, o.Init(Params{AdvectiveVelocity: 1, Porosity: 0.3, BulkDensity: 2000}))
	assert.Equal(t, 2000.0, o.Rho())
}

func TestCalculateConcRejectsZeroElapsed(t *testing.T) {
	o := testPPM(t, 0.5, 0.1)
	c := IsoConcMap{u235: 1}

	_, err := o.CalculateConc(c, c, 1, u235, 0, 0)
	assert.ErrorIs(t, err, ErrZeroElapsed, "t=0")

	_, err = o.CalculateConc(c, c, 1, u235, 3, 3)
	assert.ErrorIs(t, err, ErrZeroElapsed, "t=t0")

	_, err = o.CalculateConc(c, c, 1, u235, -1, 2)
	assert.ErrorIs(t, err, ErrZeroElapsed, "negative t0")
}

func TestCalculateConcMissingCoefficient(t *testing.T) {
	o := testPPM(t, 0.5, 0.1)
	c := IsoConcMap{am241: 1}

	_, err := o.CalculateConc(c, c, 1, am241, 1, 2)
	assert.ErrorIs(t, err, mattable.ErrMissingCoefficient)
}

// pins the closed form against the governing solution written out
// longhand: C = c0*(F(t)-F(t-t0)) + ci*(B1+B2+B3), R=1.
func TestCalculateConcMatchesClosedForm(t *testing.T) {
	const (
		v, d   = 0.5, 0.1
		r      = 1.0
		t0, tt = 1, 2
		c0, ci = 1.0, 0.5
	)
	o := testPPM(t, v, d)

	got, err := o.CalculateConc(IsoConcMap{u235: c0}, IsoConcMap{u235: ci}, r, u235, t0, tt)
	require.NoError(t, err)

	f := func(tau float64) float64 {
		return 0.5 * math.Erfc((r-v*tau)/(2*math.Sqrt(d*tau)))
	}
	tf := float64(tt)
	a := f(tf) - f(tf-float64(t0))
	b1 := f(tf)
	b2 := math.Sqrt(v*v*tf/(math.Pi*d)) * math.Exp(-(r-v*tf)*(r-v*tf)/(4*d*tf))
	b3 := -0.5 * (1 + v*r/d + v*v*tf/d) * math.Exp(v*r/d) *
		math.Erfc((r+v*tf)/(2*math.Sqrt(d*tf)))
	want := c0*a + ci*(b1+b2+b3)

	assert.InDelta(t, want, got, 1e-12)
}

// no radioactive decay: a zero-velocity-free check that the pulse term
// alone drives release when the medium starts clean
func TestCalculateConcCleanMedium(t *testing.T) {
	o := testPPM(t, 0.5, 0.1)

	got, err := o.CalculateConc(IsoConcMap{u235: 2}, IsoConcMap{}, 4.5, u235, 1, 2)
	require.NoError(t, err)

	assert.Greater(t, got, 0.0)
	f := func(tau float64) float64 {
		return 0.5 * math.Erfc((4.5-0.5*tau)/(2*math.Sqrt(0.1*tau)))
	}
	assert.InDelta(t, 2*(f(2)-f(1)), got, 1e-12)
}

// the stabilized exp*erfc product must stay finite at repository scales,
// where v*r/D alone overflows exp
func TestCalculateConcFiniteAtRepositoryScale(t *testing.T) {
	o := NewOneDimPPM()
	o.SetGeometry(testGeom(t))
	o.SetTable(mattable.Builtin()) // D for uranium: 4.9e-10
	require.NoError(t, o.Init(Params{AdvectiveVelocity: 0.001, Porosity: 0.3, BulkDensity: 2700}))

	got, err := o.CalculateConc(IsoConcMap{u235: 1}, IsoConcMap{u235: 1}, 4.5, u235, 50, 100)
	require.NoError(t, err)
	assert.False(t, math.IsNaN(got), "closed form produced NaN")
	assert.False(t, math.IsInf(got, 0), "closed form produced Inf")
}

func TestConcProfileCoversAllIsotopes(t *testing.T) {
	o := NewOneDimPPM()
	o.SetGeometry(testGeom(t))
	o.SetTable(benchTable())
	require.NoError(t, o.Init(Params{AdvectiveVelocity: 0.5, Porosity: 0.3, BulkDensity: 2000}))

	c0 := IsoConcMap{u235: 1, am241: 2}
	prof, err := o.ConcProfile(c0, c0, 4.5, 1, 2)
	require.NoError(t, err)

	assert.Len(t, prof, 2)
	assert.Contains(t, prof, u235)
	assert.Contains(t, prof, am241)
}

func TestTransportInitialInstantStoresRawConcentration(t *testing.T) {
	o := testPPM(t, 0.5, 0.1)
	o.Absorb(testParcel(10))

	require.NoError(t, o.TransportNuclides(0))

	vp := material.PoreVolume(o.Geometry().Volume(), 0.3)
	assert.InDelta(t, 10/vp, o.DirichletBC()[u235], 1e-9)
	assert.Equal(t, 0, o.LastUpdated())
}

func TestTransportRerunSameStepIsIdempotent(t *testing.T) {
	o := testPPM(t, 0.5, 0.1)
	o.Absorb(testParcel(10))

	require.NoError(t, o.TransportNuclides(0))
	require.NoError(t, o.TransportNuclides(2))
	first := o.DirichletBC()

	require.NoError(t, o.TransportNuclides(2))
	assert.Equal(t, first, o.DirichletBC())
}

func TestUpdateInnerBCNeedsElapsedStep(t *testing.T) {
	o := testPPM(t, 0.5, 0.1)
	err := o.UpdateInnerBC(0, nil)
	assert.ErrorIs(t, err, ErrZeroElapsed)
}

func TestUpdateInnerBCConservesMass(t *testing.T) {
	parent := testPPM(t, 2, 0.5)
	parent.SetCo(IsoConcMap{u235: 1})
	parent.SetCi(IsoConcMap{u235: 1})

	daughter := NewDegRate()
	daughter.SetGeometry(testGeom(t))
	require.NoError(t, daughter.Init(Params{DegradationRate: 0.5, Porosity: 0.3}))
	daughter.Absorb(testParcel(10))

	require.NoError(t, parent.UpdateInnerBC(2, []Model{daughter}))

	gained := parent.ContainedMass()
	assert.Greater(t, gained, 0.0, "parent should take up mass from the daughter")
	assert.InDelta(t, 10, gained+daughter.ContainedMass(), 1e-9, "mass must be conserved")
}
