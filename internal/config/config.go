package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bioproc/adsim/internal/sim"
)

// Stock parameterisation of the digestion model.
const (
	DefaultS0      = 100.0
	DefaultB0      = 1.0
	DefaultT1      = 50.0
	DefaultSamples = 300
	DefaultYb      = 0.3
	DefaultMuMax   = 0.4
	DefaultKS      = 20.0
	DefaultKI      = 250.0
	DefaultKC      = 5.0
	DefaultKT      = 15.0
	DefaultK       = 0.05
	DefaultKP      = 150.0
	DefaultKCH     = 0.5
	DefaultN       = 2.0
)

// Config is the on-disk run description.
type Config struct {
	Kinetics string             `yaml:"kinetics"`
	Params   map[string]float64 `yaml:"params"`
	Yb       float64            `yaml:"yb"`
	S0       float64            `yaml:"s0"`
	B0       float64            `yaml:"b0"`
	G0       float64            `yaml:"g0"`
	T0       float64            `yaml:"t0"`
	T1       float64            `yaml:"t1"`
	Samples  int                `yaml:"samples"`
	RelTol   float64            `yaml:"rel_tol"`
	AbsTol   float64            `yaml:"abs_tol"`
}

func DefaultConfig() *Config {
	return &Config{
		Kinetics: "monod",
		Params:   map[string]float64{"mu_max": DefaultMuMax, "k_s": DefaultKS},
		Yb:       DefaultYb,
		S0:       DefaultS0,
		B0:       DefaultB0,
		T1:       DefaultT1,
		Samples:  DefaultSamples,
	}
}

// DefaultFor returns the stock parameterisation for a kinetics law.
// Unknown tags get the default config unchanged; the runner rejects them.
func DefaultFor(law string) *Config {
	cfg := DefaultConfig()
	cfg.Kinetics = law
	switch law {
	case "linear":
		cfg.Params = map[string]float64{"k": DefaultK}
	case "haldane", "andrews":
		cfg.Params = map[string]float64{"mu_max": DefaultMuMax, "k_s": DefaultKS, "k_i": DefaultKI}
	case "contois":
		cfg.Params = map[string]float64{"mu_max": DefaultMuMax, "k_c": DefaultKC}
	case "teissier":
		cfg.Params = map[string]float64{"mu_max": DefaultMuMax, "k_t": DefaultKT}
	case "moser":
		cfg.Params = map[string]float64{"mu_max": DefaultMuMax, "k_s": DefaultKS, "n": DefaultN}
	case "chen-hashimoto":
		cfg.Params = map[string]float64{"mu_max": DefaultMuMax, "s_ref": DefaultS0, "k_ch": DefaultKCH}
	case "ierusalimsky":
		cfg.Params = map[string]float64{"mu_max": DefaultMuMax, "k_s": DefaultKS, "k_p": DefaultKP}
	}
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ToSim converts the file form into the runner's config.
func (c *Config) ToSim() sim.Config {
	return sim.Config{
		Kinetics: c.Kinetics,
		Params:   c.Params,
		Yb:       c.Yb,
		S0:       c.S0,
		B0:       c.B0,
		G0:       c.G0,
		T0:       c.T0,
		T1:       c.T1,
		Samples:  c.Samples,
		RelTol:   c.RelTol,
		AbsTol:   c.AbsTol,
	}
}
