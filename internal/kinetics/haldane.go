package kinetics

// Haldane adds high-substrate inhibition to Monod growth:
// mu = mu_max * (S / (K_S + S)) * (K_I / (K_I + S)).
type Haldane struct {
	MuMax float64
	KS    float64
	KI    float64
}

func NewHaldane() *Haldane {
	return &Haldane{MuMax: 0.4, KS: 20.0, KI: 250.0}
}

func (h *Haldane) Name() string { return "haldane" }

func (h *Haldane) Validate() error {
	if err := nonNegative(h.Name(), "mu_max", h.MuMax); err != nil {
		return err
	}
	if err := positive(h.Name(), "k_s", h.KS); err != nil {
		return err
	}
	return positive(h.Name(), "k_i", h.KI)
}

func (h *Haldane) Rate(s, b float64) (float64, error) {
	mu := h.MuMax * (s / (h.KS + s)) * (h.KI / (h.KI + s))
	return mu * b, nil
}

func (h *Haldane) GetParams() map[string]float64 {
	return map[string]float64{"mu_max": h.MuMax, "k_s": h.KS, "k_i": h.KI}
}

func (h *Haldane) SetParam(name string, v float64) error {
	switch name {
	case "mu_max":
		h.MuMax = v
	case "k_s":
		h.KS = v
	case "k_i":
		h.KI = v
	}
	return nil
}
