package kinetics

// ChenHashimoto normalizes substrate against a reference concentration:
// with r = S/S_ref, mu = mu_max * r / (k_ch + r*(1-r)).
type ChenHashimoto struct {
	MuMax float64
	SRef  float64
	KCH   float64
}

func NewChenHashimoto() *ChenHashimoto {
	return &ChenHashimoto{MuMax: 0.4, SRef: 100.0, KCH: 0.5}
}

func (c *ChenHashimoto) Name() string { return "chen-hashimoto" }

func (c *ChenHashimoto) Validate() error {
	if err := nonNegative(c.Name(), "mu_max", c.MuMax); err != nil {
		return err
	}
	if err := positive(c.Name(), "s_ref", c.SRef); err != nil {
		return err
	}
	return positive(c.Name(), "k_ch", c.KCH)
}

func (c *ChenHashimoto) Rate(s, b float64) (float64, error) {
	r := s / c.SRef
	denom := c.KCH + r*(1-r)
	if denom <= 0 {
		return 0, &DomainError{Law: c.Name(), S: s, B: b,
			Reason: "substrate beyond the valid normalized range"}
	}
	mu := c.MuMax * r / denom
	return mu * b, nil
}

func (c *ChenHashimoto) GetParams() map[string]float64 {
	return map[string]float64{"mu_max": c.MuMax, "s_ref": c.SRef, "k_ch": c.KCH}
}

func (c *ChenHashimoto) SetParam(name string, v float64) error {
	switch name {
	case "mu_max":
		c.MuMax = v
	case "s_ref":
		c.SRef = v
	case "k_ch":
		c.KCH = v
	}
	return nil
}
