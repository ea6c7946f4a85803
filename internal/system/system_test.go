package system

import (
	"errors"
	"math"
	"testing"

	"github.com/arvo-sim/mbd/internal/model"
)

func TestAssembleIndexContiguity(t *testing.T) {
	s := New()
	nodes := []model.Node{
		model.NewPointNode([3]float64{0, 0, 0}),
		model.NewRigidBodyNode([3]float64{1, 0, 0}, [4]float64{1, 0, 0, 0}, [3]float64{}, [3]float64{}),
		model.NewPointNode([3]float64{2, 0, 0}),
		model.NewRigidBodyNode([3]float64{3, 0, 0}, [4]float64{1, 0, 0, 0}, [3]float64{}, [3]float64{}),
	}
	for _, n := range nodes {
		s.AddNode(n)
	}
	s.Assemble()

	expected := 0
	for i, n := range nodes {
		if n.GlobalIndex() != expected {
			t.Errorf("node %d index = %d, want %d", i, n.GlobalIndex(), expected)
		}
		expected += n.NumCoordinates()
	}
	if s.NumCoordinates() != expected {
		t.Errorf("total coordinates = %d, want %d", s.NumCoordinates(), expected)
	}
	q, qDot, err := s.State()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(q) != expected || len(qDot) != expected {
		t.Errorf("state lengths %d/%d, want %d", len(q), len(qDot), expected)
	}
}

func TestAssembleIdempotent(t *testing.T) {
	s := New()
	s.AddNode(model.NewPointNode([3]float64{0, 0, 0}))
	s.Assemble()
	q, _, _ := s.State()
	q[0] = 42
	s.Assemble() // no-op: state must survive
	q2, _, _ := s.State()
	if q2[0] != 42 {
		t.Error("re-assembly of an assembled system reset state")
	}
}

func TestAddInvalidatesAssembly(t *testing.T) {
	s := New()
	s.AddNode(model.NewPointNode([3]float64{0, 0, 0}))
	s.Assemble()
	if !s.IsAssembled() {
		t.Fatal("expected assembled system")
	}
	s.AddNode(model.NewPointNode([3]float64{1, 0, 0}))
	if s.IsAssembled() {
		t.Fatal("adding a node must invalidate assembly")
	}
	// Any global query forces re-assembly.
	m := s.ComputeMassMatrix()
	if r, c := m.Dims(); r != 6 || c != 6 {
		t.Errorf("mass matrix dims %dx%d, want 6x6", r, c)
	}
	if !s.IsAssembled() {
		t.Error("ComputeMassMatrix did not re-assemble")
	}
}

func TestStateBeforeAssembly(t *testing.T) {
	s := New()
	s.AddNode(model.NewPointNode([3]float64{0, 0, 0}))
	if _, _, err := s.State(); !errors.Is(err, ErrNotAssembled) {
		t.Errorf("expected ErrNotAssembled, got %v", err)
	}
}

func TestMassMatrixSymmetry(t *testing.T) {
	s := New()
	s.AddNode(model.NewPointNode([3]float64{0, 0, 0}))
	s.AddNode(model.NewRigidBodyNode([3]float64{1, 0, 0}, [4]float64{1, 0, 0, 0}, [3]float64{}, [3]float64{0.5, -1, 2}))
	s.AddObject(model.NewMassPoint(2.0, 0))
	s.AddObject(model.NewRigidBody(1.5, [6]float64{1, 2, 3, 0.1, -0.2, 0.3}, 1))
	s.AddObject(model.NewSpringDamper(10, 0.5, 0, [2]int{0, 1}))

	m := s.ComputeMassMatrix()
	n, _ := m.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if math.Abs(m.At(i, j)-m.At(j, i)) > 1e-12 {
				t.Errorf("mass matrix asymmetric at [%d][%d]", i, j)
			}
		}
	}
}

func TestMasslessNodeLeavesZeroBlock(t *testing.T) {
	s := New()
	s.AddNode(model.NewPointNode([3]float64{0, 0, 0}))
	s.AddNode(model.NewPointNode([3]float64{1, 0, 0}))
	s.AddObject(model.NewMassPoint(1.0, 1))

	m := s.ComputeMassMatrix()
	for i := 0; i < 3; i++ {
		if m.At(i, i) != 0 {
			t.Errorf("massless node block nonzero at [%d][%d]", i, i)
		}
	}
}

func TestComputeODE2RHSAccumulates(t *testing.T) {
	s := New()
	s.AddNode(model.NewPointNode([3]float64{0, 0, 0}))
	s.AddNode(model.NewPointNode([3]float64{1, 0, 0}))
	s.AddObject(model.NewMassPoint(1e10, 0))
	s.AddObject(model.NewMassPoint(1.0, 1))
	s.AddObject(model.NewSpringDamper(10, 0, 0, [2]int{0, 1}))

	rhs := s.ComputeODE2RHS()
	if math.Abs(rhs[0]-10) > 1e-12 {
		t.Errorf("rhs[0] = %g, want 10", rhs[0])
	}
	if math.Abs(rhs[3]+10) > 1e-12 {
		t.Errorf("rhs[3] = %g, want -10", rhs[3])
	}
}

func TestAssembleSeedsInitialVelocities(t *testing.T) {
	s := New()
	s.AddNode(model.NewRigidBodyNode([3]float64{0, 0, 0}, [4]float64{1, 0, 0, 0}, [3]float64{1, 0, 0}, [3]float64{0, 0, 4}))
	s.Assemble()
	_, qDot, err := s.State()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if qDot[0] != 1 {
		t.Errorf("linear velocity not seeded: qDot[0] = %g", qDot[0])
	}
	// epDot = 0.5*G^T*omega at identity: spin about z maps to qDot[6].
	if math.Abs(qDot[6]-2) > 1e-12 {
		t.Errorf("qDot[6] = %g, want 2", qDot[6])
	}
}

func TestNormalizeOrientations(t *testing.T) {
	s := New()
	s.AddNode(model.NewRigidBodyNode([3]float64{0, 0, 0}, [4]float64{1, 0, 0, 0}, [3]float64{}, [3]float64{}))
	s.Assemble()
	q, _, _ := s.State()
	q[3], q[4] = 0.5, 0.5 // current ep = (1.5, 0.5, 0, 0), norm > 1

	s.NormalizeOrientations()
	norm := 0.0
	ep := []float64{1 + q[3], q[4], q[5], q[6]}
	for _, v := range ep {
		norm += v * v
	}
	if math.Abs(math.Sqrt(norm)-1) > 1e-12 {
		t.Errorf("orientation norm after normalize = %g, want 1", math.Sqrt(norm))
	}
}

func TestGraphicsData(t *testing.T) {
	s := New()
	s.AddNode(model.NewPointNode([3]float64{0, 0, 0}))
	s.AddNode(model.NewPointNode([3]float64{1, 0, 0}))
	s.AddObject(model.NewMassPoint(1.0, 0))
	s.AddObject(model.NewMassPoint(1.0, 1))
	s.AddObject(model.NewSpringDamper(10, 0, 0, [2]int{0, 1}))

	prims := s.GraphicsData()
	if len(prims) != 3 {
		t.Fatalf("got %d primitives, want 3", len(prims))
	}
	kinds := map[string]int{}
	for _, p := range prims {
		kinds[p.Kind()]++
	}
	if kinds["sphere"] != 2 || kinds["cylinder"] != 1 {
		t.Errorf("primitive kinds = %v", kinds)
	}
}

func TestDescriptorRoundTrip(t *testing.T) {
	s := New()
	if _, err := s.AddNodeDescriptor(model.Descriptor{
		"nodeType":             model.NodeTypePoint,
		"referenceCoordinates": []any{0, 0, 0},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.AddObjectDescriptor(model.Descriptor{
		"objectType":  model.ObjectTypeMassPoint,
		"physicsMass": 1.0,
		"nodeNumber":  0,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.AddNodeDescriptor(model.Descriptor{"nodeType": "bogus"}); !errors.Is(err, model.ErrUnknownType) {
		t.Errorf("expected ErrUnknownType, got %v", err)
	}
}
