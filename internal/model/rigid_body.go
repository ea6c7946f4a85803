package model

import (
	"gonum.org/v1/gonum/mat"

	"github.com/arvo-sim/mbd/internal/rotation"
)

// RigidBody attaches mass and a symmetric inertia tensor to a rigid-body
// node. The inertia is stored as the 6 independent components
// [Jxx, Jyy, Jzz, Jyz, Jxz, Jxy].
type RigidBody struct {
	Name    string
	mass    float64
	inertia [6]float64
	node    int
	vis     Visual
}

// NewRigidBody creates a rigid body on the node with the given index.
func NewRigidBody(mass float64, inertia [6]float64, node int) *RigidBody {
	return &RigidBody{mass: mass, inertia: inertia, node: node, vis: defaultVisual(0.25)}
}

// Mass returns the body mass.
func (b *RigidBody) Mass() float64 { return b.mass }

// NodeIndex returns the index of the referenced node.
func (b *RigidBody) NodeIndex() int { return b.node }

// SetVisual overrides the rendering hints used by GraphicsSnapshot.
func (b *RigidBody) SetVisual(v Visual) { b.vis = v }

// InertiaTensor reconstructs the full symmetric 3x3 inertia matrix.
func (b *RigidBody) InertiaTensor() *mat.SymDense {
	jxx, jyy, jzz := b.inertia[0], b.inertia[1], b.inertia[2]
	jyz, jxz, jxy := b.inertia[3], b.inertia[4], b.inertia[5]
	return mat.NewSymDense(3, []float64{
		jxx, jxy, jxz,
		jxy, jyy, jyz,
		jxz, jyz, jzz,
	})
}

// ContributeMass adds m on the translational diagonal and the
// state-dependent 4*G^T*J*G block on the orientation coordinates. G is
// evaluated at the node's current orientation, so the rotational block
// must be recomputed whenever q changes.
func (b *RigidBody) ContributeMass(m *mat.Dense, nodes []Node, q []float64) {
	rb, ok := nodes[b.node].(*RigidBodyNode)
	if !ok {
		return
	}
	idx := rb.GlobalIndex()
	if idx < 0 {
		return
	}
	for i := 0; i < 3; i++ {
		m.Set(idx+i, idx+i, m.At(idx+i, idx+i)+b.mass)
	}

	ep := CurrentOrientation(rb, q)
	g, err := rotation.GMatrix(ep[:])
	if err != nil {
		return
	}
	var gtj, block mat.Dense
	gtj.Mul(g.T(), b.InertiaTensor())
	block.Mul(&gtj, g)
	block.Scale(4, &block)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			m.Set(idx+3+r, idx+3+c, m.At(idx+3+r, idx+3+c)+block.At(r, c))
		}
	}
}

// ContributeForce adds the gyroscopic generalized force 2*G^T*tau with
// tau = -w x (J*w) and w = 2*G*epDot. The term from the time derivative
// of G itself is omitted; this is a documented approximation, not exact
// symbolic dynamics.
func (b *RigidBody) ContributeForce(rhs []float64, nodes []Node, q, qDot []float64) {
	rb, ok := nodes[b.node].(*RigidBodyNode)
	if !ok {
		return
	}
	idx := rb.GlobalIndex()
	if idx < 0 || idx+7 > len(qDot) {
		return
	}
	ep := CurrentOrientation(rb, q)
	g, err := rotation.GMatrix(ep[:])
	if err != nil {
		return
	}
	w, err := rotation.AngularVelocity(ep[:], qDot[idx+3:idx+7])
	if err != nil {
		return
	}
	tau := gyroscopicTorque(w, b.InertiaTensor())
	for c := 0; c < 4; c++ {
		sum := 0.0
		for r := 0; r < 3; r++ {
			sum += g.At(r, c) * tau[r]
		}
		rhs[idx+3+c] += 2 * sum
	}
}

// gyroscopicTorque computes -w x (J*w).
func gyroscopicTorque(w [3]float64, j *mat.SymDense) [3]float64 {
	var jw [3]float64
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			jw[r] += j.At(r, c) * w[c]
		}
	}
	return [3]float64{
		-(w[1]*jw[2] - w[2]*jw[1]),
		-(w[2]*jw[0] - w[0]*jw[2]),
		-(w[0]*jw[1] - w[1]*jw[0]),
	}
}

func (b *RigidBody) Energy(nodes []Node, q, qDot []float64) float64 {
	rb, ok := nodes[b.node].(*RigidBodyNode)
	if !ok {
		return 0
	}
	idx := rb.GlobalIndex()
	if idx < 0 || idx+7 > len(qDot) {
		return 0
	}
	v2 := 0.0
	for i := 0; i < 3; i++ {
		v2 += qDot[idx+i] * qDot[idx+i]
	}
	ep := CurrentOrientation(rb, q)
	w, err := rotation.AngularVelocity(ep[:], qDot[idx+3:idx+7])
	if err != nil {
		return 0.5 * b.mass * v2
	}
	j := b.InertiaTensor()
	rot := 0.0
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			rot += w[r] * j.At(r, c) * w[c]
		}
	}
	return 0.5*b.mass*v2 + 0.5*rot
}

func (b *RigidBody) GraphicsSnapshot(nodes []Node, q []float64) []Primitive {
	pos := CurrentPosition(nodes[b.node], q)
	return []Primitive{Sphere{Center: pos, Radius: b.vis.Radius, Color: b.vis.Color}}
}
