package config

// Presets index ready-made scenarios by model then name. The predprey
// "owls" entry and the three economies reproduce the demo this tool grew out
// of: spotted owls preying on flying squirrels, and a three-sector
// mining/lumber/energy economy with consumer demand of 10 per sector.
var Presets = map[string]map[string]*Config{
	"predprey": {
		"classic": {
			Model: "predprey", Integrator: "rk4", Dt: 0.01, Duration: 10.0,
			Rates:     RatesConfig{Alpha: 1.0, Beta: 0.1, Delta: 0.075, Gamma: 1.5},
			InitState: InitStateConfig{Prey: 10.0, Predator: 5.0},
		},
		"owls": {
			Model: "predprey", Integrator: "rk4", Dt: 0.001, Duration: 30.0,
			Rates:     RatesConfig{Alpha: 2.5, Beta: 1.3333, Delta: 1.0, Gamma: 1.0},
			InitState: InitStateConfig{Prey: 3.0, Predator: 5.0},
		},
		"slow": {
			Model: "predprey", Integrator: "rk4", Dt: 0.01, Duration: 50.0,
			Rates:     RatesConfig{Alpha: 0.5, Beta: 0.02, Delta: 0.01, Gamma: 0.4},
			InitState: InitStateConfig{Prey: 40.0, Predator: 9.0},
		},
	},
	"leontief": {
		"economy-a": {
			Model: "leontief",
			Economy: EconomyConfig{
				Sectors: defaultSectors(),
				Coefficients: [][]float64{
					{0.45, 0.35, 0.15},
					{0.15, 0.25, 0.05},
					{0.05, 0.05, 0.25},
				},
			},
		},
		"economy-b": {
			Model: "leontief",
			Economy: EconomyConfig{
				Sectors: defaultSectors(),
				Coefficients: [][]float64{
					{0.40, 0.30, 0.10},
					{0.05, 0.05, 0.65},
					{0.05, 0.20, 0.05},
				},
			},
		},
		"economy-c": {
			Model: "leontief",
			Economy: EconomyConfig{
				Sectors: defaultSectors(),
				Coefficients: [][]float64{
					{0.10, 0.10, 0.02},
					{0.60, 0.65, 0.95},
					{0.15, 0.10, 0.02},
				},
			},
		},
	},
}

func defaultSectors() []SectorConfig {
	return []SectorConfig{
		{Name: "Mining", Demand: 10},
		{Name: "Lumber", Demand: 10},
		{Name: "Energy", Demand: 10},
	}
}

func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	return names
}
