// Package system assembles nodes and objects into global generalized
// coordinates and evaluates the mass matrix and force vector of the
// resulting second-order ODE M*qDdot = F(q, qDot).
package system

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/arvo-sim/mbd/internal/model"
)

// ErrNotAssembled indicates state was queried before assembly.
var ErrNotAssembled = errors.New("system: not assembled")

// System owns the node and object collections and the global state
// vectors. Insertion order defines global index order. Not safe for
// concurrent use; a single caller per instance is assumed.
type System struct {
	nodes   []model.Node
	objects []model.Object

	q      []float64
	qDot   []float64
	coords int

	assembled bool
}

// New creates an empty system.
func New() *System {
	return &System{}
}

// AddNode appends a node and returns its 0-based index. Any previous
// assembly is invalidated.
func (s *System) AddNode(n model.Node) int {
	s.nodes = append(s.nodes, n)
	s.assembled = false
	return len(s.nodes) - 1
}

// AddObject appends an object and returns its 0-based index. Any previous
// assembly is invalidated.
func (s *System) AddObject(o model.Object) int {
	s.objects = append(s.objects, o)
	s.assembled = false
	return len(s.objects) - 1
}

// AddNodeDescriptor constructs a node from its serialized form and adds it.
func (s *System) AddNodeDescriptor(d model.Descriptor) (int, error) {
	n, err := model.NodeFromDescriptor(d)
	if err != nil {
		return 0, err
	}
	return s.AddNode(n), nil
}

// AddObjectDescriptor constructs an object from its serialized form and
// adds it.
func (s *System) AddObjectDescriptor(d model.Descriptor) (int, error) {
	o, err := model.ObjectFromDescriptor(d)
	if err != nil {
		return 0, err
	}
	return s.AddObject(o), nil
}

// Assemble assigns each node a contiguous block of global coordinate
// indices in insertion order, allocates zeroed state vectors of the total
// size and seeds node initial velocities. It is a no-op when the system is
// already assembled.
func (s *System) Assemble() {
	if s.assembled {
		return
	}
	idx := 0
	for _, n := range s.nodes {
		n.SetGlobalIndex(idx)
		idx += n.NumCoordinates()
	}
	s.coords = idx
	s.q = make([]float64, idx)
	s.qDot = make([]float64, idx)
	for _, n := range s.nodes {
		n.SeedState(s.q, s.qDot)
	}
	s.assembled = true
}

// IsAssembled reports whether global indices and state are current.
func (s *System) IsAssembled() bool { return s.assembled }

// NumCoordinates returns the total generalized-coordinate count, forcing
// assembly if needed.
func (s *System) NumCoordinates() int {
	s.Assemble()
	return s.coords
}

// NumNodes returns the number of nodes.
func (s *System) NumNodes() int { return len(s.nodes) }

// NumObjects returns the number of objects.
func (s *System) NumObjects() int { return len(s.objects) }

// Nodes returns the node collection in insertion order.
func (s *System) Nodes() []model.Node { return s.nodes }

// ComputeMassMatrix assembles if needed, then accumulates every object's
// mass contribution into a fresh n x n matrix. Rigid-body rotational
// blocks depend on the current orientation in q, so the matrix is rebuilt
// from scratch on every call.
func (s *System) ComputeMassMatrix() *mat.Dense {
	s.Assemble()
	m := mat.NewDense(s.coords, s.coords, nil)
	for _, o := range s.objects {
		o.ContributeMass(m, s.nodes, s.q)
	}
	return m
}

// ComputeODE2RHS assembles if needed, then accumulates every object's
// generalized force into a fresh length-n vector.
func (s *System) ComputeODE2RHS() []float64 {
	s.Assemble()
	rhs := make([]float64, s.coords)
	for _, o := range s.objects {
		o.ContributeForce(rhs, s.nodes, s.q, s.qDot)
	}
	return rhs
}

// State returns the global position and velocity vectors. The returned
// slices are the system's own backing storage: the integrator writes trial
// states through them and no other caller may mutate them concurrently.
func (s *System) State() ([]float64, []float64, error) {
	if !s.assembled {
		return nil, nil, ErrNotAssembled
	}
	return s.q, s.qDot, nil
}

// Energy sums the mechanical energy of every object that reports one.
func (s *System) Energy() float64 {
	s.Assemble()
	total := 0.0
	for _, o := range s.objects {
		if ec, ok := o.(model.EnergyContributor); ok {
			total += ec.Energy(s.nodes, s.q, s.qDot)
		}
	}
	return total
}

// GraphicsData collects the visual primitives of every object that
// provides them, derived purely from current state.
func (s *System) GraphicsData() []model.Primitive {
	s.Assemble()
	var prims []model.Primitive
	for _, o := range s.objects {
		if gp, ok := o.(model.GraphicsProvider); ok {
			prims = append(prims, gp.GraphicsSnapshot(s.nodes, s.q)...)
		}
	}
	return prims
}

// NormalizeOrientations rescales each rigid node's current Euler
// parameters to unit norm, storing the adjustment back into the
// orientation block of q. Degenerate (near-zero) parameters are left
// untouched.
func (s *System) NormalizeOrientations() {
	if !s.assembled {
		return
	}
	for _, n := range s.nodes {
		rb, ok := n.(*model.RigidBodyNode)
		if !ok {
			continue
		}
		idx := rb.GlobalIndex()
		if idx < 0 || idx+7 > len(s.q) {
			continue
		}
		ep := model.CurrentOrientation(rb, s.q)
		norm := 0.0
		for _, v := range ep {
			norm += v * v
		}
		norm = math.Sqrt(norm)
		if norm < 1e-12 {
			continue
		}
		ref := rb.ReferenceOrientation()
		for i := 0; i < 4; i++ {
			s.q[idx+3+i] = ep[i]/norm - ref[i]
		}
	}
}
