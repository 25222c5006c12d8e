package sim

import (
	"fmt"

	"github.com/repoworks/nucsim/internal/nuclide"
)

// Component pairs a named repository component with its transport model.
// Components are ordered innermost first; mass released by one is absorbed
// by the next, and the outermost releases to the environment.
type Component struct {
	Name  string
	Model nuclide.Model
}

type Config struct {
	Duration int // number of time steps
}

// StepResult reports one advanced step.
type StepResult struct {
	Step      int
	Contained []float64 // per component, kg
	Released  float64   // released to the environment this step, kg
}

// Result accumulates a full run.
type Result struct {
	Names     []string
	Times     []int
	Contained [][]float64 // [step][component] kg
	Released  []float64   // cumulative environment release per step, kg
	Metrics   map[string]float64
}

// Metric observes each step of a run and reduces it to a single value.
type Metric interface {
	Name() string
	Observe(step int, contained []float64, released float64)
	Value() float64
	Reset()
}

// Observer is notified after every advanced step.
type Observer interface {
	OnStep(r StepResult)
}

// SimError wraps a failure with the step it occurred on.
type SimError struct {
	Step      int
	Component string
	Wrapped   error
}

func (e *SimError) Error() string {
	return fmt.Sprintf("step %d, component %s: %v", e.Step, e.Component, e.Wrapped)
}

func (e *SimError) Unwrap() error { return e.Wrapped }
