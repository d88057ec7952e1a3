// Package reactor models a batch anaerobic digester: a degradable
// substrate S consumed by biomass B, producing cumulative biogas G.
package reactor

import (
	"github.com/bioproc/adsim/internal/kinetics"
	"github.com/bioproc/adsim/internal/solver"
)

// State vector indices.
const (
	IdxS = 0 // substrate concentration
	IdxB = 1 // biomass concentration
	IdxG = 2 // cumulative biogas
)

// Dim is the reactor state dimension.
const Dim = 3

// Digester binds a kinetics law to the split-yield mass balance. Of the
// substrate consumed per unit time, fraction Yb becomes biomass and the
// remainder leaves as biogas, so S+B+G is conserved along a trajectory.
type Digester struct {
	Law kinetics.Law
	Yb  float64
}

func New(law kinetics.Law, yb float64) *Digester {
	return &Digester{Law: law, Yb: yb}
}

// Yg is the gas yield complement of the biomass yield.
func (d *Digester) Yg() float64 { return 1 - d.Yb }

// Derive computes (dS, dB, dG) at the given state. The biomass-formation
// rate R from the law is scaled to substrate consumption R/Yb, which
// splits into biomass gain R and gas production Yg*R/Yb.
func (d *Digester) Derive(t float64, y solver.State) (solver.State, error) {
	r, err := d.Law.Rate(y[IdxS], y[IdxB])
	if err != nil {
		return nil, err
	}

	rSub := r / d.Yb
	rGas := d.Yg() * rSub

	return solver.State{-rSub, r, rGas}, nil
}
