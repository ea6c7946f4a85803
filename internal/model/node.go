// Package model defines the entities a multibody system is built from:
// nodes carrying generalized coordinates and objects contributing mass,
// force and graphics through those coordinates.
//
// All global-state access goes through the q/qDot vectors owned by the
// assembler; nodes are immutable after construction except for the global
// index assigned during assembly.
package model

import "github.com/arvo-sim/mbd/internal/rotation"

// UnassignedIndex marks a node that has not been assembled yet.
const UnassignedIndex = -1

// Node is one kinematic point of the system owning a contiguous block of
// generalized coordinates starting at GlobalIndex.
type Node interface {
	NumCoordinates() int
	GlobalIndex() int
	SetGlobalIndex(idx int)
	ReferencePosition() [3]float64

	// SeedState writes the node's initial conditions into its block of the
	// freshly zeroed global state vectors.
	SeedState(q, qDot []float64)
}

// PointNode is a translational 3-DOF node.
type PointNode struct {
	refPos [3]float64
	index  int
}

// NewPointNode creates a point node at the given reference position.
func NewPointNode(refPos [3]float64) *PointNode {
	return &PointNode{refPos: refPos, index: UnassignedIndex}
}

func (n *PointNode) NumCoordinates() int              { return 3 }
func (n *PointNode) GlobalIndex() int                 { return n.index }
func (n *PointNode) SetGlobalIndex(idx int)           { n.index = idx }
func (n *PointNode) ReferencePosition() [3]float64    { return n.refPos }
func (n *PointNode) SeedState(q, qDot []float64)      {}

// RigidBodyNode is a 7-coordinate node: 3 translation plus 4 Euler
// parameters (scalar first). The orientation block of q holds the offset
// from the reference rotation.
type RigidBodyNode struct {
	refPos  [3]float64
	refRot  [4]float64
	initVel [3]float64
	initOmg [3]float64
	index   int
}

// NewRigidBodyNode creates a rigid-body node. refRot must be scalar-first
// Euler parameters; initOmega is the initial body-frame angular velocity.
func NewRigidBodyNode(refPos [3]float64, refRot [4]float64, initVel, initOmega [3]float64) *RigidBodyNode {
	return &RigidBodyNode{
		refPos:  refPos,
		refRot:  refRot,
		initVel: initVel,
		initOmg: initOmega,
		index:   UnassignedIndex,
	}
}

func (n *RigidBodyNode) NumCoordinates() int           { return 7 }
func (n *RigidBodyNode) GlobalIndex() int              { return n.index }
func (n *RigidBodyNode) SetGlobalIndex(idx int)        { n.index = idx }
func (n *RigidBodyNode) ReferencePosition() [3]float64 { return n.refPos }

// ReferenceOrientation returns the reference Euler parameters.
func (n *RigidBodyNode) ReferenceOrientation() [4]float64 { return n.refRot }

// SeedState writes the initial linear velocity and the Euler-parameter
// rate epDot = 0.5*G^T*omega, evaluated at the reference orientation.
func (n *RigidBodyNode) SeedState(q, qDot []float64) {
	if n.index < 0 || n.index+7 > len(qDot) {
		return
	}
	for i := 0; i < 3; i++ {
		qDot[n.index+i] = n.initVel[i]
	}
	g, err := rotation.GMatrix(n.refRot[:])
	if err != nil {
		return
	}
	for c := 0; c < 4; c++ {
		sum := 0.0
		for r := 0; r < 3; r++ {
			sum += g.At(r, c) * n.initOmg[r]
		}
		qDot[n.index+3+c] = 0.5 * sum
	}
}

// CurrentPosition returns the node's reference position plus its
// translational displacement block of q. Before assembly it returns the
// reference position.
func CurrentPosition(n Node, q []float64) [3]float64 {
	pos := n.ReferencePosition()
	idx := n.GlobalIndex()
	if idx < 0 || idx+3 > len(q) {
		return pos
	}
	for i := 0; i < 3; i++ {
		pos[i] += q[idx+i]
	}
	return pos
}

// CurrentOrientation returns the rigid node's reference Euler parameters
// plus its orientation displacement block of q.
func CurrentOrientation(n *RigidBodyNode, q []float64) [4]float64 {
	ep := n.refRot
	idx := n.GlobalIndex()
	if idx < 0 || idx+7 > len(q) {
		return ep
	}
	for i := 0; i < 4; i++ {
		ep[i] += q[idx+3+i]
	}
	return ep
}
