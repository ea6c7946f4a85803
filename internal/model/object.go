package model

import "gonum.org/v1/gonum/mat"

// Object contributes mass and generalized forces into the global system
// through the coordinate blocks of its referenced nodes. Objects read node
// reference data and global state; they never mutate either.
//
// Contributions against a node that has not been assigned a global index
// are skipped rather than treated as errors. The assembler makes this
// unreachable in normal use.
type Object interface {
	// ContributeMass adds the object's mass/inertia into m. The rotational
	// block of a rigid body depends on the current orientation in q and is
	// recomputed on every call.
	ContributeMass(m *mat.Dense, nodes []Node, q []float64)

	// ContributeForce adds the object's generalized force into rhs.
	ContributeForce(rhs []float64, nodes []Node, q, qDot []float64)
}

// EnergyContributor is implemented by objects with a mechanical energy.
type EnergyContributor interface {
	Energy(nodes []Node, q, qDot []float64) float64
}

// GraphicsProvider is implemented by objects that can describe themselves
// as visual primitives. Snapshots are derived purely from current state.
type GraphicsProvider interface {
	GraphicsSnapshot(nodes []Node, q []float64) []Primitive
}
