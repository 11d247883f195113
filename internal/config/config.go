package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/soham-b/orbitlab/internal/orbit"
)

const (
	DefaultDt    = 0.01
	DefaultSteps = 1000
	DefaultAtol  = 1e-10
	DefaultRtol  = 1e-10

	DefaultD0             = 1e-5
	DefaultStepsPerRenorm = 10
	DefaultRenorms        = 100
)

type Config struct {
	Potential string             `yaml:"potential"`
	Params    map[string]float64 `yaml:"params"`
	W0        []float64          `yaml:"w0"`
	T0        float64            `yaml:"t0"`
	Dt        float64            `yaml:"dt"`
	Steps     int                `yaml:"steps"`
	T1        float64            `yaml:"t1"`
	T2        float64            `yaml:"t2"`
	Samples   int                `yaml:"samples"`
	Atol      float64            `yaml:"atol"`
	Rtol      float64            `yaml:"rtol"`
	Lyapunov  LyapunovConfig     `yaml:"lyapunov"`
}

type LyapunovConfig struct {
	D0             float64 `yaml:"d0"`
	StepsPerRenorm int     `yaml:"steps_per_renorm"`
	Renorms        int     `yaml:"renorms"`
}

func DefaultConfig() *Config {
	return &Config{
		Potential: "kepler",
		W0:        []float64{1, 0, 0, 0, 1, 0},
		Dt:        DefaultDt,
		Steps:     DefaultSteps,
		Atol:      DefaultAtol,
		Rtol:      DefaultRtol,
		Lyapunov: LyapunovConfig{
			D0:             DefaultD0,
			StepsPerRenorm: DefaultStepsPerRenorm,
			Renorms:        DefaultRenorms,
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
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Tolerances() orbit.Tolerances {
	return orbit.Tolerances{Abs: c.Atol, Rel: c.Rtol}
}

// RangeMode reports whether the request is the "t1 to t2 with N samples"
// shape rather than "N steps of dt".
func (c *Config) RangeMode() bool {
	return c.T2 != c.T1
}
