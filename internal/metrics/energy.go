// Package metrics provides solver observers that accumulate run
// diagnostics: mechanical-energy drift and coordinate traces.
package metrics

import "math"

// EnergySource reports the current mechanical energy of a system.
type EnergySource interface {
	Energy() float64
}

// EnergyDrift tracks the maximum relative drift of mechanical energy from
// its value at construction time.
type EnergyDrift struct {
	src      EnergySource
	initial  float64
	maxDrift float64
	samples  int
}

// NewEnergyDrift captures the source's current energy as the baseline.
func NewEnergyDrift(src EnergySource) *EnergyDrift {
	return &EnergyDrift{src: src, initial: src.Energy()}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

// OnStep samples the source energy and updates the maximum drift.
func (e *EnergyDrift) OnStep(t float64, q, qDot []float64) {
	energy := e.src.Energy()
	e.samples++
	if e.initial == 0 {
		return
	}
	drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
	if drift > e.maxDrift {
		e.maxDrift = drift
	}
}

// Value returns the maximum relative drift seen so far.
func (e *EnergyDrift) Value() float64 { return e.maxDrift }

// Reset rebaselines on the source's current energy.
func (e *EnergyDrift) Reset() {
	e.initial = e.src.Energy()
	e.maxDrift = 0
	e.samples = 0
}
