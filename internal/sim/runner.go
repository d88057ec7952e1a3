package sim

import (
	"fmt"

	"github.com/bioproc/adsim/internal/kinetics"
	"github.com/bioproc/adsim/internal/reactor"
	"github.com/bioproc/adsim/internal/solver"
)

// Integrator is the pluggable solving capability the runner depends on.
type Integrator interface {
	Solve(f solver.Func, y0 solver.State, t0, t1 float64, grid []float64) (*solver.Solution, error)
}

// Runner turns a Config into a Trajectory. A nil Integrator selects an
// adaptive RK45 built from the config's tolerances. Runs share no state;
// a single Runner may be used from many goroutines.
type Runner struct {
	Integrator Integrator
}

func NewRunner() *Runner {
	return &Runner{}
}

// Run validates cfg, assembles the digester ODE system, and integrates
// it over [t0, t1]. Configuration errors surface before any step is
// taken; domain and integration errors abort the run and are annotated
// with the kinetics variant.
func (r *Runner) Run(cfg Config) (*Trajectory, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	law, err := kinetics.New(cfg.Kinetics, cfg.Params)
	if err != nil {
		return nil, err
	}

	digester := reactor.New(law, cfg.Yb)

	integ := r.Integrator
	if integ == nil {
		integ = solver.NewRK45(solver.Options{RelTol: cfg.RelTol, AbsTol: cfg.AbsTol})
	}

	grid := solver.Linspace(cfg.T0, cfg.T1, cfg.Samples)
	y0 := solver.State{cfg.S0, cfg.B0, cfg.G0}

	sol, err := integ.Solve(digester.Derive, y0, cfg.T0, cfg.T1, grid)
	if err != nil {
		return nil, fmt.Errorf("%s (S0=%g, B0=%g, Yb=%g): %w",
			cfg.Kinetics, cfg.S0, cfg.B0, cfg.Yb, err)
	}

	tr := &Trajectory{
		T: sol.Times,
		S: make([]float64, len(sol.States)),
		B: make([]float64, len(sol.States)),
		G: make([]float64, len(sol.States)),
	}
	for i, y := range sol.States {
		tr.S[i] = y[reactor.IdxS]
		tr.B[i] = y[reactor.IdxB]
		tr.G[i] = y[reactor.IdxG]
	}
	return tr, nil
}
