package kinetics

import (
	"errors"
	"fmt"
)

// Law is a microbial rate law. Rate returns the biomass-formation rate R
// for substrate concentration s and biomass concentration b. Every law
// except Linear has the shape R = mu(s, b) * b.
type Law interface {
	Name() string
	Validate() error
	Rate(s, b float64) (float64, error)
}

// Tunable is implemented by laws that expose their parameters for live
// adjustment.
type Tunable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// ErrUnknownKinetics indicates a law tag outside the closed set.
var ErrUnknownKinetics = errors.New("kinetics: unknown law")

// ConfigError reports a parameter outside its formula's valid domain.
type ConfigError struct {
	Law    string
	Param  string
	Value  float64
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("kinetics: %s: %s=%g %s", e.Law, e.Param, e.Value, e.Reason)
}

// DomainError reports an undefined operation during rate evaluation.
type DomainError struct {
	Law    string
	S, B   float64
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("kinetics: %s: %s (S=%g, B=%g)", e.Law, e.Reason, e.S, e.B)
}

// New builds a validated law from its tag and a parameter map. Keys not
// used by the selected law are ignored; keys it needs default to zero and
// fail validation.
func New(name string, p map[string]float64) (Law, error) {
	var law Law
	switch name {
	case "monod":
		law = &Monod{MuMax: p["mu_max"], KS: p["k_s"]}
	case "linear":
		law = &Linear{K: p["k"]}
	case "haldane":
		law = &Haldane{MuMax: p["mu_max"], KS: p["k_s"], KI: p["k_i"]}
	case "contois":
		law = &Contois{MuMax: p["mu_max"], KC: p["k_c"]}
	case "teissier":
		law = &Teissier{MuMax: p["mu_max"], KT: p["k_t"]}
	case "moser":
		law = &Moser{MuMax: p["mu_max"], KS: p["k_s"], N: p["n"]}
	case "chen-hashimoto":
		law = &ChenHashimoto{MuMax: p["mu_max"], SRef: p["s_ref"], KCH: p["k_ch"]}
	case "andrews":
		law = &Andrews{MuMax: p["mu_max"], KS: p["k_s"], KI: p["k_i"]}
	case "ierusalimsky":
		law = &Ierusalimsky{MuMax: p["mu_max"], KS: p["k_s"], KP: p["k_p"]}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKinetics, name)
	}
	if err := law.Validate(); err != nil {
		return nil, err
	}
	return law, nil
}

// Names lists the supported law tags.
func Names() []string {
	return []string{
		"monod", "linear", "haldane", "contois", "teissier",
		"moser", "chen-hashimoto", "andrews", "ierusalimsky",
	}
}

func positive(law, param string, v float64) error {
	if v <= 0 {
		return &ConfigError{Law: law, Param: param, Value: v, Reason: "must be > 0"}
	}
	return nil
}

func nonNegative(law, param string, v float64) error {
	if v < 0 {
		return &ConfigError{Law: law, Param: param, Value: v, Reason: "must be >= 0"}
	}
	return nil
}
