package model

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/arvo-sim/mbd/internal/rotation"
)

func assembledRigidNode(t *testing.T) (*RigidBodyNode, []float64, []float64) {
	t.Helper()
	n := NewRigidBodyNode([3]float64{0, 0, 0}, [4]float64{1, 0, 0, 0}, [3]float64{}, [3]float64{})
	n.SetGlobalIndex(0)
	return n, make([]float64, 7), make([]float64, 7)
}

func TestRigidBodyMassMatrixBlock(t *testing.T) {
	n, q, _ := assembledRigidNode(t)
	body := NewRigidBody(2.5, [6]float64{1, 2, 3, 0, 0, 0}, 0)

	m := mat.NewDense(7, 7, nil)
	body.ContributeMass(m, []Node{n}, q)

	for i := 0; i < 3; i++ {
		if math.Abs(m.At(i, i)-2.5) > 1e-14 {
			t.Errorf("translational mass at [%d][%d] = %g, want 2.5", i, i, m.At(i, i))
		}
	}

	// Rotational block must equal 4*G^T*J*G at the current orientation.
	g, _ := rotation.GMatrix([]float64{1, 0, 0, 0})
	var gtj, want mat.Dense
	gtj.Mul(g.T(), body.InertiaTensor())
	want.Mul(&gtj, g)
	want.Scale(4, &want)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			if math.Abs(m.At(3+r, 3+c)-want.At(r, c)) > 1e-12 {
				t.Errorf("rotational block [%d][%d] = %g, want %g", r, c, m.At(3+r, 3+c), want.At(r, c))
			}
		}
	}

	// The block follows the orientation stored in q.
	q[4] = 0.3
	m2 := mat.NewDense(7, 7, nil)
	body.ContributeMass(m2, []Node{n}, q)
	same := true
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			if math.Abs(m2.At(3+r, 3+c)-m.At(3+r, 3+c)) > 1e-12 {
				same = false
			}
		}
	}
	if same {
		t.Error("rotational mass block did not change with orientation")
	}
}

func TestRigidBodyMassMatrixSymmetric(t *testing.T) {
	n, q, _ := assembledRigidNode(t)
	q[3], q[4], q[5], q[6] = -0.1, 0.4, 0.05, -0.3
	body := NewRigidBody(1.0, [6]float64{1, 2, 3, 0.2, -0.1, 0.3}, 0)

	m := mat.NewDense(7, 7, nil)
	body.ContributeMass(m, []Node{n}, q)
	for i := 0; i < 7; i++ {
		for j := 0; j < 7; j++ {
			if math.Abs(m.At(i, j)-m.At(j, i)) > 1e-12 {
				t.Errorf("mass matrix asymmetric at [%d][%d]", i, j)
			}
		}
	}
}

func TestGyroscopicTorqueOrthogonalToOmega(t *testing.T) {
	inertias := [][6]float64{
		{1, 2, 3, 0, 0, 0},
		{2, 2, 2, 0, 0, 0},
		{5, 1, 3, 0.5, -0.2, 0.1},
	}
	omegas := [][3]float64{
		{1, 0, 0},
		{0.3, -2, 1.5},
		{4, 4, -1},
	}
	for _, in := range inertias {
		body := NewRigidBody(1, in, 0)
		j := body.InertiaTensor()
		for _, w := range omegas {
			tau := gyroscopicTorque(w, j)
			dot := tau[0]*w[0] + tau[1]*w[1] + tau[2]*w[2]
			if math.Abs(dot) > 1e-10 {
				t.Errorf("inertia %v omega %v: tau.omega = %g, want 0", in, w, dot)
			}
		}
	}
}

func TestRigidBodyForceMapsTorqueToOrientationBlock(t *testing.T) {
	n, q, qDot := assembledRigidNode(t)
	// Spin about y with some nutation rate.
	qDot[3], qDot[4], qDot[5], qDot[6] = 0, 0.2, 1.0, -0.1
	body := NewRigidBody(1.0, [6]float64{1, 2, 3, 0, 0, 0}, 0)

	rhs := make([]float64, 7)
	body.ContributeForce(rhs, []Node{n}, q, qDot)

	for i := 0; i < 3; i++ {
		if rhs[i] != 0 {
			t.Errorf("translational rhs[%d] = %g, want 0", i, rhs[i])
		}
	}

	// Recover tau = 0.5*G*rhs_rot (G*G^T = I for unit ep) and check it
	// matches the gyroscopic torque of the current angular velocity.
	ep := CurrentOrientation(n, q)
	g, _ := rotation.GMatrix(ep[:])
	w, _ := rotation.AngularVelocity(ep[:], qDot[3:7])
	want := gyroscopicTorque(w, body.InertiaTensor())
	for r := 0; r < 3; r++ {
		got := 0.0
		for c := 0; c < 4; c++ {
			got += 0.5 * g.At(r, c) * rhs[3+c]
		}
		if math.Abs(got-want[r]) > 1e-10 {
			t.Errorf("recovered torque[%d] = %g, want %g", r, got, want[r])
		}
	}
}

func TestRigidBodySkipsUnassembledNode(t *testing.T) {
	n := NewRigidBodyNode([3]float64{}, [4]float64{1, 0, 0, 0}, [3]float64{}, [3]float64{})
	body := NewRigidBody(1.0, [6]float64{1, 1, 1, 0, 0, 0}, 0)
	m := mat.NewDense(7, 7, nil)
	body.ContributeMass(m, []Node{n}, make([]float64, 7))
	for i := 0; i < 7; i++ {
		if m.At(i, i) != 0 {
			t.Fatal("contribution not skipped for unassembled node")
		}
	}
}

func TestRigidBodyNodeSeedState(t *testing.T) {
	n := NewRigidBodyNode([3]float64{0, 0, 0}, [4]float64{1, 0, 0, 0}, [3]float64{1, -2, 0.5}, [3]float64{0, 0, 5})
	n.SetGlobalIndex(0)
	q := make([]float64, 7)
	qDot := make([]float64, 7)
	n.SeedState(q, qDot)

	for i, want := range []float64{1, -2, 0.5} {
		if math.Abs(qDot[i]-want) > 1e-14 {
			t.Errorf("qDot[%d] = %g, want %g", i, qDot[i], want)
		}
	}
	// The seeded epDot must reproduce the requested angular velocity.
	w, err := rotation.AngularVelocity([]float64{1, 0, 0, 0}, qDot[3:7])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, want := range []float64{0, 0, 5} {
		if math.Abs(w[i]-want) > 1e-12 {
			t.Errorf("seeded omega[%d] = %g, want %g", i, w[i], want)
		}
	}
}
