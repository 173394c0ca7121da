package config

var Presets = map[string]map[string]*Config{
	"diffusion": {
		"scarp": {
			Model: "diffusion", Stepper: "euler", Rows: 32, Cols: 64,
			Dx: 10, Dy: 10, Init: "scarp", Amplitude: 10,
			Dt: 50, Duration: 100000, SaveEvery: 20,
			Params: map[string]float64{"D": 0.01},
		},
		"hilltop": {
			Model: "diffusion", Stepper: "euler", Rows: 32, Cols: 32,
			Dx: 10, Dy: 10, Init: "bump", Amplitude: 25,
			Dt: 50, Duration: 200000, SaveEvery: 40,
			Params: map[string]float64{"D": 0.01},
		},
		"plateau": {
			Model: "diffusion", Stepper: "heun", Rows: 24, Cols: 48,
			Dx: 10, Dy: 10, Init: "ramp", Amplitude: 50,
			Dt: 100, Duration: 500000, SaveEvery: 50,
			Params:     map[string]float64{"D": 0.005, "uplift": 0.0001},
			Boundaries: BoundaryConfig{Top: "closed", Bottom: "closed"},
		},
	},
	"heat": {
		"hotplate": {
			Model: "heat", Stepper: "euler", Rows: 20, Cols: 20,
			Dx: 1, Dy: 1, Init: "hot", Amplitude: 100,
			Dt: 0.05, Duration: 100, SaveEvery: 20,
			Params: map[string]float64{"kappa": 1.0},
		},
		"quench": {
			Model: "heat", Stepper: "heun", Rows: 20, Cols: 40,
			Dx: 1, Dy: 1, Init: "noise", Amplitude: 100, Seed: 42,
			Dt: 0.05, Duration: 50, SaveEvery: 10,
			Params:     map[string]float64{"kappa": 2.0},
			Boundaries: BoundaryConfig{Right: "closed", Left: "closed"},
		},
	},
	"nonlinear": {
		"steep": {
			Model: "nonlinear", Stepper: "heun", Rows: 24, Cols: 24,
			Dx: 5, Dy: 5, Init: "scarp", Amplitude: 30,
			Dt: 10, Duration: 50000, SaveEvery: 25,
			Params: map[string]float64{"D": 0.005, "Sc": 0.7},
		},
	},
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
