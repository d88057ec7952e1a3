package config

var Presets = map[string]map[string]*Config{
	"monod": {
		"standard": {
			Kinetics: "monod", Params: map[string]float64{"mu_max": 0.4, "k_s": 20.0},
			Yb: 0.3, S0: 100, B0: 1, T1: 50, Samples: 300,
		},
		"slow-growth": {
			Kinetics: "monod", Params: map[string]float64{"mu_max": 0.1, "k_s": 40.0},
			Yb: 0.3, S0: 100, B0: 1, T1: 100, Samples: 300,
		},
	},
	"linear": {
		"first-order": {
			Kinetics: "linear", Params: map[string]float64{"k": 0.05},
			Yb: 0.3, S0: 100, B0: 1, T1: 50, Samples: 300,
		},
	},
	"haldane": {
		"inhibited": {
			Kinetics: "haldane", Params: map[string]float64{"mu_max": 0.4, "k_s": 20.0, "k_i": 250.0},
			Yb: 0.3, S0: 100, B0: 1, T1: 50, Samples: 300,
		},
		"overloaded": {
			Kinetics: "haldane", Params: map[string]float64{"mu_max": 0.4, "k_s": 20.0, "k_i": 50.0},
			Yb: 0.3, S0: 300, B0: 1, T1: 100, Samples: 300,
		},
	},
	"contois": {
		"dense-seed": {
			Kinetics: "contois", Params: map[string]float64{"mu_max": 0.4, "k_c": 5.0},
			Yb: 0.3, S0: 100, B0: 5, T1: 50, Samples: 300,
		},
	},
	"teissier": {
		"standard": {
			Kinetics: "teissier", Params: map[string]float64{"mu_max": 0.4, "k_t": 15.0},
			Yb: 0.3, S0: 100, B0: 1, T1: 50, Samples: 300,
		},
	},
	"moser": {
		"cooperative": {
			Kinetics: "moser", Params: map[string]float64{"mu_max": 0.4, "k_s": 20.0, "n": 2.0},
			Yb: 0.3, S0: 100, B0: 1, T1: 50, Samples: 300,
		},
	},
	"chen-hashimoto": {
		"normalized": {
			Kinetics: "chen-hashimoto", Params: map[string]float64{"mu_max": 0.4, "s_ref": 100.0, "k_ch": 0.5},
			Yb: 0.3, S0: 100, B0: 1, T1: 50, Samples: 300,
		},
	},
	"andrews": {
		"inhibited": {
			Kinetics: "andrews", Params: map[string]float64{"mu_max": 0.4, "k_s": 20.0, "k_i": 250.0},
			Yb: 0.3, S0: 100, B0: 1, T1: 50, Samples: 300,
		},
	},
	"ierusalimsky": {
		"product-limited": {
			Kinetics: "ierusalimsky", Params: map[string]float64{"mu_max": 0.4, "k_s": 20.0, "k_p": 150.0},
			Yb: 0.3, S0: 100, B0: 1, T1: 50, Samples: 300,
		},
	},
}

func GetPreset(law, preset string) *Config {
	lawPresets, ok := Presets[law]
	if !ok {
		return nil
	}
	cfg, ok := lawPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(law string) []string {
	lawPresets, ok := Presets[law]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(lawPresets))
	for name := range lawPresets {
		names = append(names, name)
	}
	return names
}
