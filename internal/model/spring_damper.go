package model

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// SpringDamper is a linear spring-damper connector acting along the line
// between the translational blocks of two nodes. It is stateless beyond
// its parameters.
type SpringDamper struct {
	Name       string
	stiffness  float64
	damping    float64
	restLength float64
	nodes      [2]int
	vis        Visual
}

// NewSpringDamper creates a connector between the two node indices.
func NewSpringDamper(stiffness, damping, restLength float64, nodes [2]int) *SpringDamper {
	return &SpringDamper{
		stiffness:  stiffness,
		damping:    damping,
		restLength: restLength,
		nodes:      nodes,
		vis:        defaultVisual(0.05),
	}
}

// NodeIndices returns the two referenced node indices.
func (s *SpringDamper) NodeIndices() [2]int { return s.nodes }

// SetVisual overrides the rendering hints used by GraphicsSnapshot.
func (s *SpringDamper) SetVisual(v Visual) { s.vis = v }

// ContributeMass is a no-op: connectors carry no mass.
func (s *SpringDamper) ContributeMass(m *mat.Dense, nodes []Node, q []float64) {}

// ContributeForce applies F = k*(L - L0) + d*vProj along the line of
// action, with opposite signs at the two ends.
func (s *SpringDamper) ContributeForce(rhs []float64, nodes []Node, q, qDot []float64) {
	n0, n1 := nodes[s.nodes[0]], nodes[s.nodes[1]]
	idx0, idx1 := n0.GlobalIndex(), n1.GlobalIndex()
	if idx0 < 0 || idx1 < 0 {
		return
	}
	pos0 := CurrentPosition(n0, q)
	pos1 := CurrentPosition(n1, q)

	var diff [3]float64
	length := 0.0
	for i := 0; i < 3; i++ {
		diff[i] = pos1[i] - pos0[i]
		length += diff[i] * diff[i]
	}
	length = math.Sqrt(length)
	if length == 0 {
		return
	}

	velProj := 0.0
	for i := 0; i < 3; i++ {
		velProj += (qDot[idx1+i] - qDot[idx0+i]) * diff[i] / length
	}

	force := s.stiffness*(length-s.restLength) + s.damping*velProj
	for i := 0; i < 3; i++ {
		f := force * diff[i] / length
		rhs[idx0+i] += f
		rhs[idx1+i] -= f
	}
}

func (s *SpringDamper) Energy(nodes []Node, q, qDot []float64) float64 {
	pos0 := CurrentPosition(nodes[s.nodes[0]], q)
	pos1 := CurrentPosition(nodes[s.nodes[1]], q)
	length := 0.0
	for i := 0; i < 3; i++ {
		d := pos1[i] - pos0[i]
		length += d * d
	}
	stretch := math.Sqrt(length) - s.restLength
	return 0.5 * s.stiffness * stretch * stretch
}

func (s *SpringDamper) GraphicsSnapshot(nodes []Node, q []float64) []Primitive {
	pos0 := CurrentPosition(nodes[s.nodes[0]], q)
	pos1 := CurrentPosition(nodes[s.nodes[1]], q)
	return []Primitive{Cylinder{Start: pos0, End: pos1, Radius: s.vis.Radius, Color: s.vis.Color}}
}
