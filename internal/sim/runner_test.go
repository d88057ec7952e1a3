package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/bioproc/adsim/internal/kinetics"
	"github.com/bioproc/adsim/internal/solver"
)

func monodConfig() Config {
	return Config{
		Kinetics: "monod",
		Params:   map[string]float64{"mu_max": 0.4, "k_s": 20.0},
		Yb:       0.3,
		S0:       100,
		B0:       1,
		T0:       0,
		T1:       50,
		Samples:  300,
	}
}

func allParams() map[string]float64 {
	return map[string]float64{
		"mu_max": 0.4, "k_s": 20.0, "k_i": 250.0, "k_c": 5.0, "k_t": 15.0,
		"n": 2.0, "s_ref": 100.0, "k_ch": 0.5, "k_p": 150.0, "k": 0.05,
	}
}

func TestRunMonodBatch(t *testing.T) {
	tr, err := NewRunner().Run(monodConfig())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if tr.Len() != 300 {
		t.Fatalf("expected 300 samples, got %d", tr.Len())
	}
	if tr.T[0] != 0 || tr.T[299] != 50 {
		t.Errorf("time endpoints not exact: [%g, %g]", tr.T[0], tr.T[299])
	}
	if tr.S[0] != 100.0 || tr.B[0] != 1.0 || tr.G[0] != 0.0 {
		t.Errorf("initial sample not exact: S=%g B=%g G=%g", tr.S[0], tr.B[0], tr.G[0])
	}

	s, b, g := tr.Final()
	if s >= 100 {
		t.Errorf("substrate did not decrease: S(50)=%g", s)
	}
	if b <= 1 {
		t.Errorf("biomass did not grow: B(50)=%g", b)
	}
	if g <= 0 {
		t.Errorf("no biogas produced: G(50)=%g", g)
	}
}

func TestRunMonotonicityAndConservation(t *testing.T) {
	tr, err := NewRunner().Run(monodConfig())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	total0 := tr.S[0] + tr.B[0] + tr.G[0]
	for i := 1; i < tr.Len(); i++ {
		if tr.T[i] <= tr.T[i-1] {
			t.Fatalf("time not strictly increasing at %d", i)
		}
		if tr.S[i] > tr.S[i-1]+1e-6 {
			t.Errorf("substrate increased at t=%g", tr.T[i])
		}
		if tr.G[i] < tr.G[i-1]-1e-6 {
			t.Errorf("biogas decreased at t=%g", tr.T[i])
		}
		total := tr.S[i] + tr.B[i] + tr.G[i]
		if math.Abs(total-total0) > 1e-5*total0 {
			t.Errorf("mass not conserved at t=%g: %g vs %g", tr.T[i], total, total0)
		}
	}
}

func TestRunAllVariants(t *testing.T) {
	for _, name := range kinetics.Names() {
		cfg := monodConfig()
		cfg.Kinetics = name
		cfg.Params = allParams()

		tr, err := NewRunner().Run(cfg)
		if err != nil {
			t.Errorf("%s: Run failed: %v", name, err)
			continue
		}
		s, _, g := tr.Final()
		if s > cfg.S0 {
			t.Errorf("%s: substrate grew: %g", name, s)
		}
		if g < 0 {
			t.Errorf("%s: negative biogas: %g", name, g)
		}
	}
}

func TestRunZeroRateFixedPoint(t *testing.T) {
	cfg := monodConfig()
	cfg.Kinetics = "linear"
	cfg.Params = map[string]float64{"k": 0}

	tr, err := NewRunner().Run(cfg)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	for i := 0; i < tr.Len(); i++ {
		if tr.S[i] != 100 || tr.B[i] != 1 || tr.G[i] != 0 {
			t.Fatalf("state moved off fixed point at t=%g: S=%g B=%g G=%g",
				tr.T[i], tr.S[i], tr.B[i], tr.G[i])
		}
	}
}

func TestRunReproducible(t *testing.T) {
	r := NewRunner()
	first, err := r.Run(monodConfig())
	if err != nil {
		t.Fatalf("first Run failed: %v", err)
	}
	second, err := r.Run(monodConfig())
	if err != nil {
		t.Fatalf("second Run failed: %v", err)
	}
	for i := range first.T {
		if first.S[i] != second.S[i] || first.B[i] != second.B[i] || first.G[i] != second.G[i] {
			t.Fatalf("trajectories differ at sample %d", i)
		}
	}
}

func TestRunRejectsZeroBiomass(t *testing.T) {
	cfg := monodConfig()
	cfg.Kinetics = "contois"
	cfg.Params = map[string]float64{"mu_max": 0.4, "k_c": 5.0}
	cfg.B0 = 0

	_, err := NewRunner().Run(cfg)
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	if cfgErr.Field != "b0" {
		t.Errorf("expected b0 rejection, got %s", cfgErr.Field)
	}
}

func TestRunRejectsUnknownVariant(t *testing.T) {
	cfg := monodConfig()
	cfg.Kinetics = "unknown"

	_, err := NewRunner().Run(cfg)
	if !errors.Is(err, kinetics.ErrUnknownKinetics) {
		t.Fatalf("expected ErrUnknownKinetics, got %v", err)
	}
}

func TestConfigValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"yield above one", func(c *Config) { c.Yb = 1.5 }, "yb"},
		{"yield zero", func(c *Config) { c.Yb = 0 }, "yb"},
		{"negative substrate", func(c *Config) { c.S0 = -1 }, "s0"},
		{"negative gas", func(c *Config) { c.G0 = -1 }, "g0"},
		{"empty span", func(c *Config) { c.T1 = c.T0 }, "t1"},
		{"single sample", func(c *Config) { c.Samples = 1 }, "samples"},
		{"nan yield", func(c *Config) { c.Yb = math.NaN() }, "yb"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := monodConfig()
			tc.mutate(&cfg)
			_, err := NewRunner().Run(cfg)
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
			if cfgErr.Field != tc.field {
				t.Errorf("expected %s rejection, got %s", tc.field, cfgErr.Field)
			}
		})
	}
}

type stubIntegrator struct {
	called bool
}

func (s *stubIntegrator) Solve(f solver.Func, y0 solver.State, t0, t1 float64, grid []float64) (*solver.Solution, error) {
	s.called = true
	states := make([]solver.State, len(grid))
	for i := range states {
		states[i] = y0.Clone()
	}
	return &solver.Solution{Times: grid, States: states}, nil
}

func TestRunnerUsesInjectedIntegrator(t *testing.T) {
	stub := &stubIntegrator{}
	r := &Runner{Integrator: stub}

	tr, err := r.Run(monodConfig())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !stub.called {
		t.Error("injected integrator was not used")
	}
	if tr.S[tr.Len()-1] != 100 {
		t.Error("stub trajectory not passed through")
	}
}
