package sim

import (
	"fmt"
	"math"
)

// Config is the immutable bundle describing one batch-digestion run.
// Params carries the scalar parameters of the selected kinetics law;
// yields follow the split convention, with the gas yield derived as
// 1 - Yb.
type Config struct {
	Kinetics string
	Params   map[string]float64

	Yb float64

	S0 float64
	B0 float64
	G0 float64

	T0      float64
	T1      float64
	Samples int

	// Zero tolerances select the solver defaults.
	RelTol float64
	AbsTol float64
}

// ConfigError reports an invalid run-level field, detected before any
// integration step.
type ConfigError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("sim: %s=%g %s", e.Field, e.Value, e.Reason)
}

// Validate checks the run-level fields. Kinetics parameters are checked
// separately when the law is built.
func (c Config) Validate() error {
	for field, v := range map[string]float64{
		"yb": c.Yb, "s0": c.S0, "b0": c.B0, "g0": c.G0,
		"t0": c.T0, "t1": c.T1, "rel_tol": c.RelTol, "abs_tol": c.AbsTol,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &ConfigError{Field: field, Value: v, Reason: "must be finite"}
		}
	}
	if c.Yb <= 0 || c.Yb > 1 {
		return &ConfigError{Field: "yb", Value: c.Yb, Reason: "must be in (0, 1]"}
	}
	if c.S0 < 0 {
		return &ConfigError{Field: "s0", Value: c.S0, Reason: "must be >= 0"}
	}
	if c.B0 <= 0 {
		return &ConfigError{Field: "b0", Value: c.B0, Reason: "must be > 0"}
	}
	if c.G0 < 0 {
		return &ConfigError{Field: "g0", Value: c.G0, Reason: "must be >= 0"}
	}
	if c.T1 <= c.T0 {
		return &ConfigError{Field: "t1", Value: c.T1, Reason: fmt.Sprintf("must be > t0 (%g)", c.T0)}
	}
	if c.Samples < 2 {
		return &ConfigError{Field: "samples", Value: float64(c.Samples), Reason: "must be >= 2"}
	}
	return nil
}

// Trajectory is the sampled result of a run: four equal-length series
// with exact endpoints t[0]=t0 and t[len-1]=t1. It is owned by the
// caller and never mutated after Run returns.
type Trajectory struct {
	T []float64
	S []float64
	B []float64
	G []float64
}

func (tr *Trajectory) Len() int { return len(tr.T) }

// Final returns the last sampled (S, B, G).
func (tr *Trajectory) Final() (float64, float64, float64) {
	n := len(tr.T) - 1
	return tr.S[n], tr.B[n], tr.G[n]
}
