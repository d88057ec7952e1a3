package kinetics

// Linear is the first-order law R = k * S. Unlike the other laws the rate
// is not coupled to biomass.
type Linear struct {
	K float64
}

func NewLinear() *Linear {
	return &Linear{K: 0.05}
}

func (l *Linear) Name() string { return "linear" }

func (l *Linear) Validate() error {
	return nonNegative(l.Name(), "k", l.K)
}

func (l *Linear) Rate(s, _ float64) (float64, error) {
	return l.K * s, nil
}

func (l *Linear) GetParams() map[string]float64 {
	return map[string]float64{"k": l.K}
}

func (l *Linear) SetParam(name string, v float64) error {
	if name == "k" {
		l.K = v
	}
	return nil
}
