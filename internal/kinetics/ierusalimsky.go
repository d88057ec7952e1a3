package kinetics

// Ierusalimsky couples Monod saturation with product inhibition:
// mu = mu_max * (S / (K_S + S)) * (K_P / (K_P + S)).
type Ierusalimsky struct {
	MuMax float64
	KS    float64
	KP    float64
}

func NewIerusalimsky() *Ierusalimsky {
	return &Ierusalimsky{MuMax: 0.4, KS: 20.0, KP: 150.0}
}

func (i *Ierusalimsky) Name() string { return "ierusalimsky" }

func (i *Ierusalimsky) Validate() error {
	if err := nonNegative(i.Name(), "mu_max", i.MuMax); err != nil {
		return err
	}
	if err := positive(i.Name(), "k_s", i.KS); err != nil {
		return err
	}
	return positive(i.Name(), "k_p", i.KP)
}

func (i *Ierusalimsky) Rate(s, b float64) (float64, error) {
	mu := i.MuMax * (s / (i.KS + s)) * (i.KP / (i.KP + s))
	return mu * b, nil
}

func (i *Ierusalimsky) GetParams() map[string]float64 {
	return map[string]float64{"mu_max": i.MuMax, "k_s": i.KS, "k_p": i.KP}
}

func (i *Ierusalimsky) SetParam(name string, v float64) error {
	switch name {
	case "mu_max":
		i.MuMax = v
	case "k_s":
		i.KS = v
	case "k_p":
		i.KP = v
	}
	return nil
}
