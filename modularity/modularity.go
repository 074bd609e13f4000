// Package modularity builds the bipartite modularity matrix of a contingency
// matrix and evaluates the trace objective maximized by the co-clustering
// optimizer.
//
// For an n×d matrix X with row sums r, column sums c and total mass
// N = Σ X[i][j], the modularity matrix is
//
//	B = X − (r ⊗ c)/N
//
// i.e. X minus its expected value under the independence (no-structure)
// model. Every row and every column of B sums to zero by construction.
//
// Time complexity: O(n·d) for Build, O(n·k²) for Score.
package modularity

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Sentinel errors.
var (
	// ErrNilMatrix indicates a nil input matrix.
	ErrNilMatrix = errors.New("modularity: nil matrix")

	// ErrZeroMass indicates a matrix whose entries sum to zero, which makes
	// the independence model (and therefore modularity) undefined.
	ErrZeroMass = errors.New("modularity: total mass is zero, modularity undefined")

	// ErrNonFiniteMass indicates NaN or ±Inf total mass; the matrix still
	// contains unfilled or non-finite entries.
	ErrNonFiniteMass = errors.New("modularity: total mass is not finite")
)

// Build computes the modularity matrix B = X − outer(r,c)/N and the total
// mass N of X. X must contain no missing (NaN) entries — fill them first.
//
// Degenerate inputs are surfaced, never absorbed: a zero-mass matrix returns
// ErrZeroMass and a NaN/Inf mass returns ErrNonFiniteMass.
func Build(X mat.Matrix) (*mat.Dense, float64, error) {
	if X == nil {
		return nil, 0, ErrNilMatrix
	}
	n, d := X.Dims()

	// One pass over X accumulates row sums, column sums and the total mass.
	r := make([]float64, n)
	c := make([]float64, d)
	var total float64
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			v := X.At(i, j)
			r[i] += v
			c[j] += v
			total += v
		}
	}
	if math.IsNaN(total) || math.IsInf(total, 0) {
		return nil, 0, ErrNonFiniteMass
	}
	if total == 0 {
		return nil, 0, ErrZeroMass
	}

	// B = X − (r ⊗ c)/N, assembled as a scaled outer product then subtracted
	// from X in place.
	B := mat.NewDense(n, d, nil)
	B.Outer(1/total, mat.NewVecDense(n, r), mat.NewVecDense(d, c))
	B.Sub(X, B)

	return B, total, nil
}

// Score returns trace(Zᵀ·BW), the raw (unnormalized) modularity attributable
// to the row assignment Z against the pre-update product BW = B·W.
// Divide by the mass N of the matrix B was built from to normalize.
func Score(Z, BW mat.Matrix) float64 {
	var p mat.Dense
	p.Mul(Z.T(), BW)

	return mat.Trace(&p)
}
