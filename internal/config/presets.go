package config

// Presets are canonical run setups keyed by potential, then name.
var Presets = map[string]map[string]*Config{
	"kepler": {
		// Circular unit orbit; 1000 steps cover one full period.
		"circular": {
			Potential: "kepler",
			W0:        []float64{1, 0, 0, 0, 1, 0},
			Dt:        6.283185307179586 / 1000.0, Steps: 1000,
			Atol: 1e-10, Rtol: 1e-10,
		},
		"eccentric": {
			Potential: "kepler",
			W0:        []float64{1, 0, 0, 0, 0.5, 0},
			Dt:        0.005, Steps: 2000,
			Atol: 1e-10, Rtol: 1e-10,
		},
	},
	"harmonic": {
		"ground": {
			Potential: "harmonic",
			W0:        []float64{1, 0, 0, 0, 1, 0},
			Dt:        0.01, Steps: 2000,
			Atol: 1e-10, Rtol: 1e-10,
			Lyapunov: LyapunovConfig{D0: 1e-5, StepsPerRenorm: 10, Renorms: 200},
		},
	},
	"hernquist": {
		"box": {
			Potential: "hernquist",
			Params:    map[string]float64{"m": 1.0, "c": 0.5},
			W0:        []float64{1.0, 2.1, 0.0, 0.0, 0.5, 0.0},
			Dt:        0.02, Steps: 5000,
			Atol: 1e-8, Rtol: 1e-8,
		},
	},
	"henonheiles": {
		// Chaotic orbit at the escape energy 1/6 (lambda ~ 0.13).
		// vx is fixed by the energy; not every orbit at this energy
		// is chaotic, so the initial condition matters.
		"chaotic": {
			Potential: "henonheiles",
			W0:        []float64{0.0, -0.25, 0.510310, 0.0},
			Dt:        0.1, Steps: 2000,
			Atol: 1e-9, Rtol: 1e-9,
			Lyapunov: LyapunovConfig{D0: 1e-6, StepsPerRenorm: 20, Renorms: 500},
		},
		"regular": {
			Potential: "henonheiles",
			W0:        []float64{0.0, 0.1, 0.35, 0.0},
			Dt:        0.1, Steps: 2000,
			Atol: 1e-9, Rtol: 1e-9,
			Lyapunov: LyapunovConfig{D0: 1e-6, StepsPerRenorm: 20, Renorms: 500},
		},
	},
}

// GetPreset returns a copy of the named preset, so callers may overlay
// their own params and initial conditions without touching the table.
func GetPreset(potential, preset string) *Config {
	presets, ok := Presets[potential]
	if !ok {
		return nil
	}
	cfg, ok := presets[preset]
	if !ok {
		return nil
	}

	out := *cfg
	out.W0 = append([]float64(nil), cfg.W0...)
	if cfg.Params != nil {
		out.Params = make(map[string]float64, len(cfg.Params))
		for k, v := range cfg.Params {
			out.Params[k] = v
		}
	}
	return &out
}

func ListPresets(potential string) []string {
	presets, ok := Presets[potential]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}
