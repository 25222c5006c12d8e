package nuclide

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repoworks/nucsim/internal/geometry"
	"github.com/repoworks/nucsim/internal/material"
)

const (
	u235  = 92235
	am241 = 95241
)

func testGeom(t *testing.T) *geometry.Geometry {
	t.Helper()
	g, err := geometry.New(4, 5, geometry.Point{}, 5)
	require.NoError(t, err)
	return g
}

func testParcel(kg float64) *material.Material {
	return material.New(material.Composition{u235: 1}, kg)
}

func TestDegRateDefaults(t *testing.T) {
	d := NewDegRate()

	assert.Equal(t, DegRateModel, d.Type())
	assert.Equal(t, "degrate", d.Name())
	assert.Zero(t, d.DegRate())
	assert.Zero(t, d.LastUpdated())
}

func TestSetDegRateRoundTrip(t *testing.T) {
	d := NewDegRate()
	for _, rate := range []float64{0, 0.1, 0.5, 1} {
		require.NoError(t, d.SetDegRate(rate))
		assert.Equal(t, rate, d.DegRate())
	}
}

func TestSetDegRateRejectsOutOfRange(t *testing.T) {
	d := NewDegRate()
	require.NoError(t, d.SetDegRate(0.1))

	for _, bad := range []float64{-1, 2} {
		err := d.SetDegRate(bad)
		require.ErrorIs(t, err, ErrRangeViolation)
		// the prior value is retained
		assert.Equal(t, 0.1, d.DegRate())
	}
}

func TestDegRateInitValidates(t *testing.T) {
	d := NewDegRate()
	err := d.Init(Params{DegradationRate: 2})
	require.ErrorIs(t, err, ErrRangeViolation)

	require.NoError(t, d.Init(Params{DegradationRate: 0.5, Porosity: 0.3}))
	assert.Equal(t, 0.5, d.DegRate())
}

func TestDegRateZeroNeverReleases(t *testing.T) {
	d := NewDegRate()
	d.SetGeometry(testGeom(t))
	require.NoError(t, d.Init(Params{DegradationRate: 0, Porosity: 0.3}))
	d.Absorb(testParcel(10))

	for step := 1; step <= 5; step++ {
		require.NoError(t, d.TransportNuclides(step))
		_, kg := d.SourceTermBC()
		assert.Zero(t, kg, "step %d", step)
	}
	assert.InDelta(t, 10, d.ContainedMass(), 1e-12)
}

func TestDegRateHalfDepletesGeometrically(t *testing.T) {
	d := NewDegRate()
	d.SetGeometry(testGeom(t))
	require.NoError(t, d.Init(Params{DegradationRate: 0.5, Porosity: 0.3}))
	d.Absorb(testParcel(10))

	vp := material.PoreVolume(d.Geometry().Volume(), 0.3)

	expected := []float64{5.0, 2.5, 1.25}
	for step, want := range expected {
		require.NoError(t, d.TransportNuclides(step+1))

		comp, kg := d.SourceTermBC()
		assert.InDelta(t, want, kg, 0.005, "step %d source term", step+1)
		assert.InDelta(t, want/vp, d.DirichletBC()[u235], 1e-9, "step %d dirichlet", step+1)

		_, err := d.Extract(comp, kg)
		require.NoError(t, err)
	}
	assert.InDelta(t, 1.25, d.ContainedMass(), 0.005)
}

func TestDegRateFullReleaseInOneStep(t *testing.T) {
	d := NewDegRate()
	d.SetGeometry(testGeom(t))
	require.NoError(t, d.Init(Params{DegradationRate: 1, Porosity: 0.3}))
	d.Absorb(testParcel(10))

	require.NoError(t, d.TransportNuclides(1))
	comp, kg := d.SourceTermBC()
	assert.InDelta(t, 10, kg, 1e-9)

	_, err := d.Extract(comp, kg)
	require.NoError(t, err)
	assert.InDelta(t, 0, d.ContainedMass(), 1e-9)

	require.NoError(t, d.TransportNuclides(2))
	_, kg = d.SourceTermBC()
	assert.Zero(t, kg)
}

func TestTransportNuclidesPanicsOnTimeRegression(t *testing.T) {
	d := NewDegRate()
	d.SetGeometry(testGeom(t))
	require.NoError(t, d.TransportNuclides(3))

	assert.Panics(t, func() { _ = d.TransportNuclides(2) })
	assert.Equal(t, 3, d.LastUpdated())
}

func TestMassHistorySnapshots(t *testing.T) {
	d := NewDegRate()
	d.SetGeometry(testGeom(t))
	require.NoError(t, d.Init(Params{DegradationRate: 0.5, Porosity: 0.3}))
	d.Absorb(testParcel(10))

	require.NoError(t, d.TransportNuclides(1))
	assert.InDelta(t, 10, d.MassAt(1).Mass, 1e-12)

	comp, kg := d.SourceTermBC()
	_, err := d.Extract(comp, kg)
	require.NoError(t, err)

	// extraction re-snapshots the current step
	assert.InDelta(t, 5, d.MassAt(1).Mass, 1e-9)

	require.NoError(t, d.TransportNuclides(2))
	assert.InDelta(t, 5, d.MassAt(2).Mass, 1e-9)
}

func TestLastUpdatedNeverRegresses(t *testing.T) {
	d := NewDegRate()
	d.SetGeometry(testGeom(t))

	for _, step := range []int{1, 2, 2, 5} {
		require.NoError(t, d.TransportNuclides(step))
		assert.Equal(t, step, d.LastUpdated())
	}
}

func TestDegRateCopy(t *testing.T) {
	d := NewDegRate()
	d.SetGeometry(testGeom(t))
	require.NoError(t, d.Init(Params{DegradationRate: 0.5, Porosity: 0.3}))
	d.Absorb(testParcel(10))
	require.NoError(t, d.TransportNuclides(4))

	cp := d.Copy(7).(*DegRate)

	assert.Equal(t, 0.5, cp.DegRate())
	assert.Equal(t, 7, cp.LastUpdated())
	assert.Zero(t, cp.ContainedMass(), "copy must not share the mass history")

	// geometry is cloned, not shared
	assert.NotSame(t, d.Geometry(), cp.Geometry())
	assert.Equal(t, d.Geometry().Volume(), cp.Geometry().Volume())
}

func TestExtractInsufficientComposition(t *testing.T) {
	d := NewDegRate()
	d.SetGeometry(testGeom(t))
	d.Absorb(testParcel(10))

	_, err := d.Extract(material.Composition{am241: 1}, 1)
	assert.ErrorIs(t, err, ErrInsufficientMass)
	assert.InDelta(t, 10, d.ContainedMass(), 1e-12)
}

func TestExtractCapsAtContained(t *testing.T) {
	d := NewDegRate()
	d.SetGeometry(testGeom(t))
	d.Absorb(testParcel(10))

	parcel, err := d.Extract(material.Composition{u235: 1}, 25)
	require.NoError(t, err)
	assert.InDelta(t, 10, parcel.Mass, 1e-12)
	assert.Zero(t, d.ContainedMass())
}
