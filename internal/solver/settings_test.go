package solver

import "testing"

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.NumberOfSteps != 100 || s.EndTime != 1.0 || s.SpectralRadius != 0.8 {
		t.Errorf("unexpected defaults: %+v", s)
	}
	if s.NewtonTolerance != 1e-6 || s.MaxNewtonIterations != 5 {
		t.Errorf("unexpected Newton defaults: %+v", s)
	}
	if s.NormalizeOrientations || s.StrictSingular || s.StrictNewton || s.Verbose {
		t.Errorf("flags must default off: %+v", s)
	}
}

func TestSettingsFromMap(t *testing.T) {
	s := SettingsFromMap(map[string]any{
		"numberOfSteps":         250,
		"endTime":               2.5,
		"spectralRadius":        0.5,
		"normalizeOrientations": true,
		"unknownOption":         "ignored",
	})
	if s.NumberOfSteps != 250 {
		t.Errorf("numberOfSteps = %d, want 250", s.NumberOfSteps)
	}
	if s.EndTime != 2.5 {
		t.Errorf("endTime = %g, want 2.5", s.EndTime)
	}
	if s.SpectralRadius != 0.5 {
		t.Errorf("spectralRadius = %g, want 0.5", s.SpectralRadius)
	}
	if !s.NormalizeOrientations {
		t.Error("normalizeOrientations not applied")
	}
	// Untouched keys keep their defaults.
	if s.NewtonTolerance != 1e-6 {
		t.Errorf("newtonTolerance = %g, want default", s.NewtonTolerance)
	}
}

func TestSettingsFromMapNumericKinds(t *testing.T) {
	// YAML decoders hand back int, int64 or float64 depending on source.
	s := SettingsFromMap(map[string]any{
		"numberOfSteps": int64(40),
		"endTime":       3, // plain int
	})
	if s.NumberOfSteps != 40 {
		t.Errorf("numberOfSteps from int64 = %d, want 40", s.NumberOfSteps)
	}
	if s.EndTime != 3.0 {
		t.Errorf("endTime from int = %g, want 3.0", s.EndTime)
	}
}
