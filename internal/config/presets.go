package config

import "sort"

// presets are the built-in example scenarios.
var presets = map[string]func() *Config{
	"mass_spring": massSpring,
	"rigid_spin":  rigidSpin,
}

// GetPreset returns a named built-in scenario, or nil if unknown.
func GetPreset(name string) *Config {
	f, ok := presets[name]
	if !ok {
		return nil
	}
	return f()
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// massSpring is a damped mass on a spring, grounded through a very large
// mass: singular-free, oscillatory, good for damping comparisons.
func massSpring() *Config {
	cfg := DefaultConfig()
	cfg.Name = "mass_spring"
	cfg.Nodes = []map[string]any{
		{"nodeType": "NodePoint", "name": "ground", "referenceCoordinates": []any{0.0, 0.0, 0.0}},
		{"nodeType": "NodePoint", "name": "mass", "referenceCoordinates": []any{1.0, 0.0, 0.0}},
	}
	cfg.Objects = []map[string]any{
		{"objectType": "ObjectMassPoint", "name": "groundMass", "physicsMass": 1e10, "nodeNumber": 0},
		{"objectType": "ObjectMassPoint", "name": "movingMass", "physicsMass": 1.0, "nodeNumber": 1},
		{"objectType": "ObjectConnectorSpringDamper", "name": "spring",
			"stiffness": 10.0, "damping": 0.5, "nodeNumbers": []any{0, 1}},
	}
	cfg.Solver.NumberOfSteps = 50
	cfg.Solver.EndTime = 1.0
	return cfg
}

// rigidSpin is a torque-free rigid body spinning about its third principal
// axis; the angular-velocity norm stays constant.
func rigidSpin() *Config {
	cfg := DefaultConfig()
	cfg.Name = "rigid_spin"
	cfg.Nodes = []map[string]any{
		{"nodeType": "NodeRigidBody", "name": "brick",
			"referenceCoordinates":     []any{0.0, 0.0, 0.0},
			"referenceRotations":       []any{1.0, 0.0, 0.0, 0.0},
			"initialAngularVelocities": []any{0.0, 0.0, 5.0}},
	}
	cfg.Objects = []map[string]any{
		{"objectType": "ObjectRigidBody", "name": "brickBody",
			"physicsMass":    1.0,
			"physicsInertia": []any{1.0, 2.0, 3.0, 0.0, 0.0, 0.0},
			"nodeNumber":     0},
	}
	cfg.Solver.NumberOfSteps = 200
	cfg.Solver.EndTime = 2.0
	return cfg
}
