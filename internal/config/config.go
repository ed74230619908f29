package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt       = 0.01
	DefaultDuration = 10.0
	DefaultAlpha    = 1.0
	DefaultBeta     = 0.1
	DefaultDelta    = 0.075
	DefaultGamma    = 1.5
	DefaultPrey     = 10.0
	DefaultPredator = 5.0
)

type Config struct {
	Model      string          `yaml:"model"`
	Integrator string          `yaml:"integrator"`
	Dt         float64         `yaml:"dt"`
	Duration   float64         `yaml:"duration"`
	Rates      RatesConfig     `yaml:"rates"`
	InitState  InitStateConfig `yaml:"init_state"`
	Economy    EconomyConfig   `yaml:"economy"`
}

type RatesConfig struct {
	Alpha float64 `yaml:"alpha"`
	Beta  float64 `yaml:"beta"`
	Delta float64 `yaml:"delta"`
	Gamma float64 `yaml:"gamma"`
}

type InitStateConfig struct {
	Prey     float64 `yaml:"prey"`
	Predator float64 `yaml:"predator"`
}

type EconomyConfig struct {
	Sectors      []SectorConfig `yaml:"sectors"`
	Coefficients [][]float64    `yaml:"coefficients"`
}

type SectorConfig struct {
	Name   string  `yaml:"name"`
	Demand float64 `yaml:"demand"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:      "predprey",
		Integrator: "rk4",
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Rates: RatesConfig{
			Alpha: DefaultAlpha,
			Beta:  DefaultBeta,
			Delta: DefaultDelta,
			Gamma: DefaultGamma,
		},
		InitState: InitStateConfig{
			Prey:     DefaultPrey,
			Predator: DefaultPredator,
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

func (c *Config) GetInitState() []float64 {
	return []float64{c.InitState.Prey, c.InitState.Predator}
}
