package solver

// Settings configure a Generalized-alpha run. The zero value is not
// usable; start from DefaultSettings.
type Settings struct {
	NumberOfSteps int
	StartTime     float64
	EndTime       float64

	// SpectralRadius is rho_inf in [0, 1]: 1 means no numerical damping,
	// 0 maximum damping of the highest-frequency modes.
	SpectralRadius float64

	NewtonTolerance     float64
	MaxNewtonIterations int

	// NormalizeOrientations renormalizes rigid-node Euler parameters after
	// each committed step. Off by default: the orientation norm is allowed
	// to drift, keeping default output unchanged for comparison runs.
	NormalizeOrientations bool

	// StrictSingular and StrictNewton turn the recovered numerical
	// conditions into fatal errors.
	StrictSingular bool
	StrictNewton   bool

	Verbose bool
}

// DefaultSettings returns the documented defaults.
func DefaultSettings() Settings {
	return Settings{
		NumberOfSteps:       100,
		StartTime:           0.0,
		EndTime:             1.0,
		SpectralRadius:      0.8,
		NewtonTolerance:     1e-6,
		MaxNewtonIterations: 5,
	}
}

// SettingsFromMap overlays recognized options from a flat configuration
// mapping onto the defaults. Unrecognized keys are ignored.
func SettingsFromMap(opts map[string]any) Settings {
	s := DefaultSettings()
	if v, ok := mapInt(opts, "numberOfSteps"); ok {
		s.NumberOfSteps = v
	}
	if v, ok := mapFloat(opts, "startTime"); ok {
		s.StartTime = v
	}
	if v, ok := mapFloat(opts, "endTime"); ok {
		s.EndTime = v
	}
	if v, ok := mapFloat(opts, "spectralRadius"); ok {
		s.SpectralRadius = v
	}
	if v, ok := mapFloat(opts, "newtonTolerance"); ok {
		s.NewtonTolerance = v
	}
	if v, ok := mapInt(opts, "maxNewtonIterations"); ok {
		s.MaxNewtonIterations = v
	}
	if v, ok := opts["normalizeOrientations"].(bool); ok {
		s.NormalizeOrientations = v
	}
	if v, ok := opts["strictSingular"].(bool); ok {
		s.StrictSingular = v
	}
	if v, ok := opts["strictNewton"].(bool); ok {
		s.StrictNewton = v
	}
	if v, ok := opts["verbose"].(bool); ok {
		s.Verbose = v
	}
	return s
}

func mapFloat(opts map[string]any, key string) (float64, bool) {
	switch v := opts[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func mapInt(opts map[string]any, key string) (int, bool) {
	f, ok := mapFloat(opts, key)
	return int(f), ok
}
