package cocluster_test

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/cocluster"
)

// benchMatrix builds an n×d matrix with k planted blocks plus noise, turning
// the requested share of cells into NaN holes. Deterministic via seed.
func benchMatrix(n, d, k int, missingShare float64, seed int64) *mat.Dense {
	rng := rand.New(rand.NewSource(seed))
	X := mat.NewDense(n, d, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			v := rng.Float64()
			if i*k/n == j*k/d {
				v += 5 // planted block signal
			}
			if rng.Float64() < missingShare {
				v = math.NaN()
			}
			X.Set(i, j, v)
		}
	}

	return X
}

// benchmarkFit runs one Fit configuration under the timer.
func benchmarkFit(b *testing.B, X *mat.Dense, k int, opts ...cocluster.Option) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := cocluster.Fit(X, k, opts...); err != nil {
			b.Fatalf("Fit failed: %v", err)
		}
	}
}

func BenchmarkFit_Dense60x40(b *testing.B) {
	X := benchMatrix(60, 40, 3, 0, 1)
	benchmarkFit(b, X, 3, cocluster.WithSeed(1))
}

func BenchmarkFit_Missing60x40(b *testing.B) {
	X := benchMatrix(60, 40, 3, 0.1, 1)
	benchmarkFit(b, X, 3, cocluster.WithSeed(1))
}

func BenchmarkFit_Restarts(b *testing.B) {
	X := benchMatrix(60, 40, 3, 0.1, 1)
	benchmarkFit(b, X, 3, cocluster.WithSeed(1), cocluster.WithRestarts(8))
}

func BenchmarkFit_RestartsParallel(b *testing.B) {
	X := benchMatrix(60, 40, 3, 0.1, 1)
	benchmarkFit(b, X, 3, cocluster.WithSeed(1), cocluster.WithRestarts(8), cocluster.WithParallel())
}
