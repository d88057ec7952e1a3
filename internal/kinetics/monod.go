package kinetics

// Monod is the classic saturating growth law mu = mu_max * S / (K_S + S).
type Monod struct {
	MuMax float64
	KS    float64
}

func NewMonod() *Monod {
	return &Monod{MuMax: 0.4, KS: 20.0}
}

func (m *Monod) Name() string { return "monod" }

func (m *Monod) Validate() error {
	if err := nonNegative(m.Name(), "mu_max", m.MuMax); err != nil {
		return err
	}
	return positive(m.Name(), "k_s", m.KS)
}

func (m *Monod) Rate(s, b float64) (float64, error) {
	mu := m.MuMax * s / (m.KS + s)
	return mu * b, nil
}

func (m *Monod) GetParams() map[string]float64 {
	return map[string]float64{"mu_max": m.MuMax, "k_s": m.KS}
}

func (m *Monod) SetParam(name string, v float64) error {
	switch name {
	case "mu_max":
		m.MuMax = v
	case "k_s":
		m.KS = v
	}
	return nil
}
