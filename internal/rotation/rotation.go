// Package rotation provides Euler-parameter rotation kinematics.
//
// An orientation is a 4-vector ep = (q0, q1, q2, q3) with q0 the scalar
// part; it equals a unit quaternion when |ep| = 1. All functions here are
// pure and validate input lengths only; normalization is the caller's
// responsibility.
package rotation

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// ErrDimension indicates a kinematic input of the wrong length.
var ErrDimension = errors.New("rotation: input has wrong dimension")

// RotationMatrix converts Euler parameters to a 3x3 rotation matrix.
// The result is orthonormal exactly when |ep| = 1.
func RotationMatrix(ep []float64) (*mat.Dense, error) {
	if len(ep) != 4 {
		return nil, ErrDimension
	}
	q0, q1, q2, q3 := ep[0], ep[1], ep[2], ep[3]
	return mat.NewDense(3, 3, []float64{
		1 - 2*(q2*q2+q3*q3), 2 * (q1*q2 - q0*q3), 2 * (q1*q3 + q0*q2),
		2 * (q1*q2 + q0*q3), 1 - 2*(q1*q1+q3*q3), 2 * (q2*q3 - q0*q1),
		2 * (q1*q3 - q0*q2), 2 * (q2*q3 + q0*q1), 1 - 2*(q1*q1+q2*q2),
	}), nil
}

// GMatrix returns the 3x4 map G with w_local = 2*G*epDot and
// epDot = 0.5*G^T*w_local for unit ep.
func GMatrix(ep []float64) (*mat.Dense, error) {
	if len(ep) != 4 {
		return nil, ErrDimension
	}
	q0, q1, q2, q3 := ep[0], ep[1], ep[2], ep[3]
	return mat.NewDense(3, 4, []float64{
		-q1, q0, -q3, q2,
		-q2, q3, q0, -q1,
		-q3, -q2, q1, q0,
	}), nil
}

// LMatrix returns the 3x4 map for the global-frame angular velocity,
// w_global = 2*L*epDot. For unit ep the two maps satisfy G = R*L.
func LMatrix(ep []float64) (*mat.Dense, error) {
	if len(ep) != 4 {
		return nil, ErrDimension
	}
	q0, q1, q2, q3 := ep[0], ep[1], ep[2], ep[3]
	return mat.NewDense(3, 4, []float64{
		-q1, q0, q3, -q2,
		-q2, -q3, q0, q1,
		-q3, q2, -q1, q0,
	}), nil
}

// Skew returns the 3x3 cross-product matrix of v, so Skew(v)*u = v x u.
func Skew(v []float64) (*mat.Dense, error) {
	if len(v) != 3 {
		return nil, ErrDimension
	}
	return mat.NewDense(3, 3, []float64{
		0, -v[2], v[1],
		v[2], 0, -v[0],
		-v[1], v[0], 0,
	}), nil
}

// AngularVelocity computes the body-frame angular velocity 2*G(ep)*epDot.
func AngularVelocity(ep, epDot []float64) ([3]float64, error) {
	if len(ep) != 4 || len(epDot) != 4 {
		return [3]float64{}, ErrDimension
	}
	g, _ := GMatrix(ep)
	var w [3]float64
	for r := 0; r < 3; r++ {
		sum := 0.0
		for c := 0; c < 4; c++ {
			sum += g.At(r, c) * epDot[c]
		}
		w[r] = 2 * sum
	}
	return w, nil
}
