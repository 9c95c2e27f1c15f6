package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt    = 0.01
	DefaultT0    = 0.0
	DefaultTF    = 10.0
	DefaultAlpha = 0.25
	DefaultGamma = 1.0
	DefaultRate  = 1.5
	DefaultLimit = 10.0
)

// Config is a fully specified integration scenario. Loading validates
// it, so the engine downstream only ever sees checked numeric
// parameters.
type Config struct {
	Model       string       `yaml:"model"`
	Scheme      string       `yaml:"scheme"`
	Dt          float64      `yaml:"dt"`
	T0          float64      `yaml:"t0"`
	TF          float64      `yaml:"tf"`
	InitState   []float64    `yaml:"init_state"`
	Params      ParamsConfig `yaml:"params"`
	CheckFinite bool         `yaml:"check_finite"`
}

// ParamsConfig carries per-model coefficients; each model reads the
// fields it needs.
type ParamsConfig struct {
	Alpha  float64 `yaml:"alpha"`  // decay rate
	Source float64 `yaml:"source"` // constant forcing (forced_decay)
	Gamma  float64 `yaml:"gamma"`  // oscillator frequency
	Rate   float64 `yaml:"rate"`   // logistic growth rate
	Limit  float64 `yaml:"limit"`  // logistic carrying capacity
}

func DefaultConfig() *Config {
	return &Config{
		Model:       "decay",
		Scheme:      "explicit",
		Dt:          DefaultDt,
		T0:          DefaultT0,
		TF:          DefaultTF,
		InitState:   []float64{100},
		CheckFinite: true,
		Params: ParamsConfig{
			Alpha: DefaultAlpha,
			Gamma: DefaultGamma,
			Rate:  DefaultRate,
			Limit: DefaultLimit,
		},
	}
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
	if err := cfg.Validate(); err != nil {
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

// Validate checks the scenario before any numeric work happens.
func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("config: dt must be positive, got %g", c.Dt)
	}
	if c.TF < c.T0 {
		return fmt.Errorf("config: tf=%g before t0=%g", c.TF, c.T0)
	}
	if len(c.InitState) == 0 {
		return fmt.Errorf("config: init_state is empty")
	}
	switch c.Scheme {
	case "explicit", "implicit":
	default:
		return fmt.Errorf("config: unknown scheme %q (want explicit or implicit)", c.Scheme)
	}
	return nil
}
