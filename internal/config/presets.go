package config

var Presets = map[string]map[string]*Config{
	"decay": {
		"benchmark": {
			Model: "decay", Scheme: "explicit", Dt: 0.5, T0: 0, TF: 5,
			InitState: []float64{100}, CheckFinite: true,
			Params: ParamsConfig{Alpha: 0.25},
		},
		"fine": {
			Model: "decay", Scheme: "explicit", Dt: 0.03125, T0: 0, TF: 5,
			InitState: []float64{100}, CheckFinite: true,
			Params: ParamsConfig{Alpha: 0.25},
		},
		"stiff": {
			Model: "decay", Scheme: "implicit", Dt: 0.5, T0: 0, TF: 5,
			InitState: []float64{100}, CheckFinite: true,
			Params: ParamsConfig{Alpha: 10},
		},
	},
	"forced_decay": {
		"warmup": {
			Model: "forced_decay", Scheme: "implicit", Dt: 0.1, T0: 0, TF: 20,
			InitState: []float64{0}, CheckFinite: true,
			Params: ParamsConfig{Alpha: 1, Source: 3},
		},
	},
	"oscillator": {
		"blowup": {
			Model: "oscillator", Scheme: "explicit", Dt: 0.15, T0: 0, TF: 40,
			InitState: []float64{0.75, 0}, CheckFinite: true,
			Params: ParamsConfig{Gamma: 1.4142135623730951},
		},
		"damped": {
			Model: "oscillator", Scheme: "implicit", Dt: 0.15, T0: 0, TF: 40,
			InitState: []float64{0.75, 0}, CheckFinite: true,
			Params: ParamsConfig{Gamma: 1.4142135623730951},
		},
	},
	"logistic": {
		"sigmoid": {
			Model: "logistic", Scheme: "explicit", Dt: 0.01, T0: 0, TF: 20,
			InitState: []float64{0.1}, CheckFinite: true,
			Params: ParamsConfig{Rate: 1.5, Limit: 10},
		},
	},
}

func GetPreset(model, name string) *Config {
	group, ok := Presets[model]
	if !ok {
		return nil
	}
	return group[name]
}

func ListPresets(model string) []string {
	group, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	return names
}
