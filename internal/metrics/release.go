// Package metrics provides run-level reductions over a simulation:
// cumulative and peak environment release, and a mass-balance check.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

type CumulativeRelease struct {
	total float64
}

func NewCumulativeRelease() *CumulativeRelease { return &CumulativeRelease{} }

func (c *CumulativeRelease) Name() string { return "cumulative_release" }

func (c *CumulativeRelease) Observe(step int, contained []float64, released float64) {
	c.total += released
}

func (c *CumulativeRelease) Value() float64 { return c.total }
func (c *CumulativeRelease) Reset()         { c.total = 0 }

// PeakRelease tracks the largest single-step environment release.
type PeakRelease struct {
	peak float64
	step int
}

func NewPeakRelease() *PeakRelease { return &PeakRelease{} }

func (p *PeakRelease) Name() string { return "peak_release" }

func (p *PeakRelease) Observe(step int, contained []float64, released float64) {
	if released > p.peak {
		p.peak = released
		p.step = step
	}
}

func (p *PeakRelease) Value() float64 { return p.peak }
func (p *PeakRelease) PeakStep() int  { return p.step }
func (p *PeakRelease) Reset() {
	p.peak = 0
	p.step = 0
}

// MassBalance tracks the drift between the initial system inventory and
// the contained-plus-released total, which should stay near zero.
type MassBalance struct {
	initial  float64
	haveInit bool
	released float64
	drift    float64
}

func NewMassBalance() *MassBalance { return &MassBalance{} }

func (m *MassBalance) Name() string { return "mass_balance_drift" }

func (m *MassBalance) Observe(step int, contained []float64, released float64) {
	m.released += released
	total := floats.Sum(contained) + m.released
	if !m.haveInit {
		m.initial = total
		m.haveInit = true
		return
	}
	if d := math.Abs(total - m.initial); d > m.drift {
		m.drift = d
	}
}

func (m *MassBalance) Value() float64 { return m.drift }

func (m *MassBalance) Reset() {
	m.initial = 0
	m.haveInit = false
	m.released = 0
	m.drift = 0
}
