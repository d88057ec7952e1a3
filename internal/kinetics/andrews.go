package kinetics

// Andrews is the substrate-inhibition form mu = mu_max * S / (K_S + S + S^2/K_I).
type Andrews struct {
	MuMax float64
	KS    float64
	KI    float64
}

func NewAndrews() *Andrews {
	return &Andrews{MuMax: 0.4, KS: 20.0, KI: 250.0}
}

func (a *Andrews) Name() string { return "andrews" }

func (a *Andrews) Validate() error {
	if err := nonNegative(a.Name(), "mu_max", a.MuMax); err != nil {
		return err
	}
	if err := positive(a.Name(), "k_s", a.KS); err != nil {
		return err
	}
	return positive(a.Name(), "k_i", a.KI)
}

func (a *Andrews) Rate(s, b float64) (float64, error) {
	mu := a.MuMax * s / (a.KS + s + s*s/a.KI)
	return mu * b, nil
}

func (a *Andrews) GetParams() map[string]float64 {
	return map[string]float64{"mu_max": a.MuMax, "k_s": a.KS, "k_i": a.KI}
}

func (a *Andrews) SetParam(name string, v float64) error {
	switch name {
	case "mu_max":
		a.MuMax = v
	case "k_s":
		a.KS = v
	case "k_i":
		a.KI = v
	}
	return nil
}
