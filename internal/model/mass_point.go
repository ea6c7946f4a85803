package model

import "gonum.org/v1/gonum/mat"

// MassPoint attaches a scalar mass to the translational block of one node.
type MassPoint struct {
	Name string
	mass float64
	node int
	vis  Visual
}

// NewMassPoint creates a point mass on the node with the given index.
func NewMassPoint(mass float64, node int) *MassPoint {
	return &MassPoint{mass: mass, node: node, vis: defaultVisual(0.1)}
}

// Mass returns the point mass.
func (p *MassPoint) Mass() float64 { return p.mass }

// NodeIndex returns the index of the referenced node.
func (p *MassPoint) NodeIndex() int { return p.node }

// SetVisual overrides the rendering hints used by GraphicsSnapshot.
func (p *MassPoint) SetVisual(v Visual) { p.vis = v }

func (p *MassPoint) ContributeMass(m *mat.Dense, nodes []Node, q []float64) {
	idx := nodes[p.node].GlobalIndex()
	if idx < 0 {
		return
	}
	for i := 0; i < 3; i++ {
		m.Set(idx+i, idx+i, m.At(idx+i, idx+i)+p.mass)
	}
}

// ContributeForce is a no-op: a free mass point carries no internal force.
func (p *MassPoint) ContributeForce(rhs []float64, nodes []Node, q, qDot []float64) {}

func (p *MassPoint) Energy(nodes []Node, q, qDot []float64) float64 {
	idx := nodes[p.node].GlobalIndex()
	if idx < 0 || idx+3 > len(qDot) {
		return 0
	}
	v2 := 0.0
	for i := 0; i < 3; i++ {
		v2 += qDot[idx+i] * qDot[idx+i]
	}
	return 0.5 * p.mass * v2
}

func (p *MassPoint) GraphicsSnapshot(nodes []Node, q []float64) []Primitive {
	pos := CurrentPosition(nodes[p.node], q)
	return []Primitive{Sphere{Center: pos, Radius: p.vis.Radius, Color: p.vis.Color}}
}
