package solver

import (
	"errors"
	"fmt"
	"math"
)

// State is a point in the ODE phase space.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Func is a derivative function dy/dt = f(t, y). It may fail with a
// domain error, which aborts the integration at that step.
type Func func(t float64, y State) (State, error)

// Options tunes the adaptive stepper. Zero values select defaults
// derived from the integration span.
type Options struct {
	RelTol   float64
	AbsTol   float64
	InitStep float64
	MinStep  float64
	MaxStep  float64
	MaxSteps int
}

func DefaultOptions() Options {
	return Options{
		RelTol:   1e-6,
		AbsTol:   1e-9,
		MaxSteps: 1_000_000,
	}
}

// Solution holds the trajectory sampled on the caller's grid plus
// stepper statistics.
type Solution struct {
	Times  []float64
	States []State
	Steps  int
	Evals  int
}

var (
	// ErrStepUnderflow indicates the adaptive step collapsed below the
	// minimum before reaching the end of the span.
	ErrStepUnderflow = errors.New("solver: adaptive step below minimum")

	// ErrStepBudget indicates the stepper exceeded its step budget.
	ErrStepBudget = errors.New("solver: step budget exhausted")

	// ErrInvalidState indicates the derivative produced NaN or Inf.
	ErrInvalidState = errors.New("solver: invalid state (NaN or Inf)")
)

// IntegrationError wraps a failure with the time and step at which it
// occurred.
type IntegrationError struct {
	T       float64
	Dt      float64
	Step    int
	Wrapped error
}

func (e *IntegrationError) Error() string {
	return fmt.Sprintf("step %d (t=%.6g, dt=%.3g): %v", e.Step, e.T, e.Dt, e.Wrapped)
}

func (e *IntegrationError) Unwrap() error { return e.Wrapped }

// Linspace returns n points linearly spaced over [t0, t1] with exact
// endpoints. Degenerate counts collapse to at most the single point t0.
func Linspace(t0, t1 float64, n int) []float64 {
	if n < 1 {
		return nil
	}
	if n == 1 {
		return []float64{t0}
	}
	grid := make([]float64, n)
	for i := range grid {
		grid[i] = t0 + (t1-t0)*float64(i)/float64(n-1)
	}
	grid[0] = t0
	grid[n-1] = t1
	return grid
}
