package modularity_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/cocluster/modularity"
)

const eps = 1e-12

// TestBuild_HandChecked verifies B = X − outer(r,c)/N on a worked 2×2 case.
//
//	X = | 1 2 |   r = (3,7)  c = (4,6)  N = 10
//	    | 3 4 |
//
//	B = | 1−12/10  2−18/10 | = | −0.2  0.2 |
//	    | 3−28/10  4−42/10 |   |  0.2 −0.2 |
func TestBuild_HandChecked(t *testing.T) {
	X := mat.NewDense(2, 2, []float64{1, 2, 3, 4})

	B, N, err := modularity.Build(X)
	require.NoError(t, err)

	assert.InDelta(t, 10, N, eps)
	assert.InDelta(t, -0.2, B.At(0, 0), eps)
	assert.InDelta(t, 0.2, B.At(0, 1), eps)
	assert.InDelta(t, 0.2, B.At(1, 0), eps)
	assert.InDelta(t, -0.2, B.At(1, 1), eps)
}

// TestBuild_RowsAndColumnsSumToZero checks the structural property of the
// modularity matrix on a larger random-ish input.
func TestBuild_RowsAndColumnsSumToZero(t *testing.T) {
	X := mat.NewDense(3, 4, []float64{
		2, 0, 1, 5,
		7, 3, 0, 1,
		4, 4, 2, 2,
	})

	B, _, err := modularity.Build(X)
	require.NoError(t, err)

	n, d := B.Dims()
	for i := 0; i < n; i++ {
		sum := 0.0
		for j := 0; j < d; j++ {
			sum += B.At(i, j)
		}
		assert.InDelta(t, 0, sum, 1e-9, "row %d", i)
	}
	for j := 0; j < d; j++ {
		sum := 0.0
		for i := 0; i < n; i++ {
			sum += B.At(i, j)
		}
		assert.InDelta(t, 0, sum, 1e-9, "column %d", j)
	}
}

// TestBuild_ZeroMass verifies that a zero-mass matrix surfaces the numerical
// degeneracy instead of silently dividing by zero.
func TestBuild_ZeroMass(t *testing.T) {
	X := mat.NewDense(2, 3, nil)

	_, _, err := modularity.Build(X)
	assert.ErrorIs(t, err, modularity.ErrZeroMass)
}

// TestBuild_NonFiniteMass rejects matrices with unfilled or infinite cells.
func TestBuild_NonFiniteMass(t *testing.T) {
	X := mat.NewDense(2, 2, []float64{1, math.NaN(), 2, 3})
	_, _, err := modularity.Build(X)
	assert.ErrorIs(t, err, modularity.ErrNonFiniteMass)

	X = mat.NewDense(2, 2, []float64{1, math.Inf(1), 2, 3})
	_, _, err = modularity.Build(X)
	assert.ErrorIs(t, err, modularity.ErrNonFiniteMass)
}

// TestBuild_NilMatrix covers the nil guard.
func TestBuild_NilMatrix(t *testing.T) {
	_, _, err := modularity.Build(nil)
	assert.ErrorIs(t, err, modularity.ErrNilMatrix)
}

// TestScore_TraceAgainstIdentity checks tr(Zᵀ·BW) on the hand-checked B:
// with Z = I the score is the trace of B itself.
func TestScore_TraceAgainstIdentity(t *testing.T) {
	X := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	B, _, err := modularity.Build(X)
	require.NoError(t, err)

	Z := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	assert.InDelta(t, -0.4, modularity.Score(Z, B), eps)
}

// TestScore_SelectsAssignedMass checks that the score sums exactly the BW
// entries picked out by the one-hot rows of Z.
func TestScore_SelectsAssignedMass(t *testing.T) {
	BW := mat.NewDense(3, 2, []float64{
		5, 1,
		2, 7,
		-3, 4,
	})
	Z := mat.NewDense(3, 2, []float64{
		1, 0,
		0, 1,
		0, 1,
	})

	// 5 (row 0 -> cluster 0) + 7 + 4 (rows 1,2 -> cluster 1) = 16.
	assert.InDelta(t, 16, modularity.Score(Z, BW), eps)
}
