package kinetics

import "math"

// Teissier is the exponential-saturation law mu = mu_max * (1 - exp(-S/K_T)).
type Teissier struct {
	MuMax float64
	KT    float64
}

func NewTeissier() *Teissier {
	return &Teissier{MuMax: 0.4, KT: 15.0}
}

func (t *Teissier) Name() string { return "teissier" }

func (t *Teissier) Validate() error {
	if err := nonNegative(t.Name(), "mu_max", t.MuMax); err != nil {
		return err
	}
	return positive(t.Name(), "k_t", t.KT)
}

func (t *Teissier) Rate(s, b float64) (float64, error) {
	mu := t.MuMax * (1 - math.Exp(-s/t.KT))
	return mu * b, nil
}

func (t *Teissier) GetParams() map[string]float64 {
	return map[string]float64{"mu_max": t.MuMax, "k_t": t.KT}
}

func (t *Teissier) SetParam(name string, v float64) error {
	switch name {
	case "mu_max":
		t.MuMax = v
	case "k_t":
		t.KT = v
	}
	return nil
}
