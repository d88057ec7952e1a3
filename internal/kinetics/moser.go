package kinetics

import "math"

// Moser generalizes Monod with an exponent: mu = mu_max * S^n / (K_S + S^n).
type Moser struct {
	MuMax float64
	KS    float64
	N     float64
}

func NewMoser() *Moser {
	return &Moser{MuMax: 0.4, KS: 20.0, N: 2.0}
}

func (m *Moser) Name() string { return "moser" }

func (m *Moser) Validate() error {
	if err := nonNegative(m.Name(), "mu_max", m.MuMax); err != nil {
		return err
	}
	if err := positive(m.Name(), "k_s", m.KS); err != nil {
		return err
	}
	return positive(m.Name(), "n", m.N)
}

func (m *Moser) Rate(s, b float64) (float64, error) {
	if s < 0 && m.N != math.Trunc(m.N) {
		return 0, &DomainError{Law: m.Name(), S: s, B: b,
			Reason: "negative substrate with non-integer exponent"}
	}
	sn := math.Pow(s, m.N)
	mu := m.MuMax * sn / (m.KS + sn)
	return mu * b, nil
}

func (m *Moser) GetParams() map[string]float64 {
	return map[string]float64{"mu_max": m.MuMax, "k_s": m.KS, "n": m.N}
}

func (m *Moser) SetParam(name string, v float64) error {
	switch name {
	case "mu_max":
		m.MuMax = v
	case "k_s":
		m.KS = v
	case "n":
		m.N = v
	}
	return nil
}
