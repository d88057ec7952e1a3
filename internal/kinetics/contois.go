package kinetics

// Contois makes saturation density-dependent through the ratio S/B:
// mu = mu_max * (S/B) / (K_C + S/B). Requires B > 0.
type Contois struct {
	MuMax float64
	KC    float64
}

func NewContois() *Contois {
	return &Contois{MuMax: 0.4, KC: 5.0}
}

func (c *Contois) Name() string { return "contois" }

func (c *Contois) Validate() error {
	if err := nonNegative(c.Name(), "mu_max", c.MuMax); err != nil {
		return err
	}
	return positive(c.Name(), "k_c", c.KC)
}

func (c *Contois) Rate(s, b float64) (float64, error) {
	if b <= 0 {
		return 0, &DomainError{Law: c.Name(), S: s, B: b, Reason: "biomass must be positive"}
	}
	ratio := s / b
	mu := c.MuMax * ratio / (c.KC + ratio)
	return mu * b, nil
}

func (c *Contois) GetParams() map[string]float64 {
	return map[string]float64{"mu_max": c.MuMax, "k_c": c.KC}
}

func (c *Contois) SetParam(name string, v float64) error {
	switch name {
	case "mu_max":
		c.MuMax = v
	case "k_c":
		c.KC = v
	}
	return nil
}
