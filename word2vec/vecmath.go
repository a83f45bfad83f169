package word2vec

import "gonum.org/v1/gonum/blas/blas32"

func dot(x, y []float32) float32 {
	return blas32.Dot(blasVec(x), blasVec(y))
}

// axpy computes y += a*x.
func axpy(a float32, x, y []float32) {
	blas32.Axpy(a, blasVec(x), blasVec(y))
}

func scal(a float32, x []float32) {
	blas32.Scal(a, blasVec(x))
}

func zero(x []float32) {
	for i := range x {
		x[i] = 0
	}
}

func blasVec(x []float32) blas32.Vector {
	return blas32.Vector{N: len(x), Inc: 1, Data: x}
}
