package solver

import "gonum.org/v1/gonum/mat"

// pinvRCond is the singular-value cutoff for the least-squares fallback.
const pinvRCond = 1e-12

// solveLinear solves a*x = b by LU decomposition and falls back to a
// pseudo-inverse least-squares solution when a is singular or too badly
// conditioned. The second return reports whether the fallback was taken.
func solveLinear(a *mat.Dense, b []float64) ([]float64, bool) {
	n := len(b)
	bv := mat.NewVecDense(n, b)

	var x mat.VecDense
	if err := x.SolveVec(a, bv); err == nil {
		return vecData(&x, n), false
	}

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return make([]float64, n), true
	}
	rank := svd.Rank(pinvRCond)
	if rank == 0 {
		return make([]float64, n), true
	}
	var ls mat.VecDense
	svd.SolveVecTo(&ls, bv, rank)
	return vecData(&ls, n), true
}

func vecData(v *mat.VecDense, n int) []float64 {
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = v.AtVec(i)
	}
	return out
}
