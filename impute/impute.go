// Package impute fills the missing cells of a contingency matrix from its
// current co-cluster (block) structure.
//
// The missing-cell coordinate set is located exactly once, up front, with
// FindMissing — before any values are written into the holes, since filling
// removes the NaN marker. Strategies then own that fixed set and rewrite only
// those coordinates, iteration after iteration.
//
// Block statistics:
//
//	S = Zᵀ·X·W   — per-block sums of the current matrix (k×k)
//	C = zc ⊗ wc  — per-block cell capacity, outer product of cluster sizes
//
// The default BlockMean strategy writes S[a][b]/C[a][b] — the mean of all
// cells currently assigned to block (a,b) — into every missing cell of that
// block. Blocks with zero capacity substitute C=1 for that cell only, which
// deliberately yields a representative value of 0 for genuinely empty blocks
// instead of propagating an undefined value. Downstream consumers rely on
// this exact fallback; do not change it without revisiting their assumptions.
//
// Time complexity: Summarize O(n·d·k), Counts O(n+d+k²), one Impute call
// O(n·d·k + |missing|).
package impute

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/cocluster/partition"
)

// Sentinel errors.
var (
	// ErrNilMatrix indicates a nil matrix argument.
	ErrNilMatrix = errors.New("impute: nil matrix")

	// ErrNilPartition indicates a nil row or column partition.
	ErrNilPartition = errors.New("impute: nil partition")

	// ErrShapeMismatch indicates partitions whose lengths or cluster counts
	// do not agree with the matrix being imputed.
	ErrShapeMismatch = errors.New("impute: partition shape does not match matrix")

	// ErrCoordOutOfRange indicates a missing-cell coordinate outside the
	// matrix bounds.
	ErrCoordOutOfRange = errors.New("impute: coordinate outside matrix bounds")
)

// Coord addresses one missing cell of the matrix.
type Coord struct {
	Row, Col int
}

// Imputer rewrites the values at a fixed set of missing coordinates of X,
// using the current row and column partitions. All other entries of X must
// be left untouched. Implementations are free to ignore the partitions
// (e.g. a constant fill) but must honor the coordinate contract.
type Imputer interface {
	Impute(X *mat.Dense, rows, cols *partition.Partition) error
}

// FindMissing scans X in row-major order and returns the coordinates of all
// NaN entries. Returns nil when X has no missing cells.
func FindMissing(X mat.Matrix) []Coord {
	if X == nil {
		return nil
	}
	n, d := X.Dims()
	var coords []Coord
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			if math.IsNaN(X.At(i, j)) {
				coords = append(coords, Coord{Row: i, Col: j})
			}
		}
	}

	return coords
}

// Summarize returns the k×k per-block sums S = Zᵀ·X·W, where Z and W are the
// one-hot indicators of the row and column partitions. S[a][b] is the sum of
// every X[i][j] with rows.Label(i)=a and cols.Label(j)=b.
func Summarize(X mat.Matrix, rows, cols *partition.Partition) *mat.Dense {
	var zx, s mat.Dense
	zx.Mul(rows.Indicator().T(), X)
	s.Mul(&zx, cols.Indicator())

	return &s
}

// Counts returns the k×k per-block cell capacities C[a][b] = |rows in a| ×
// |columns in b|, the outer product of the per-cluster item counts.
func Counts(rows, cols *partition.Partition) *mat.Dense {
	kr, kc := rows.Clusters(), cols.Clusters()
	c := mat.NewDense(kr, kc, nil)
	c.Outer(1, mat.NewVecDense(kr, rows.Counts()), mat.NewVecDense(kc, cols.Counts()))

	return c
}

// validate checks the common preconditions shared by every strategy.
func validate(X *mat.Dense, rows, cols *partition.Partition, coords []Coord) error {
	if X == nil {
		return ErrNilMatrix
	}
	if rows == nil || cols == nil {
		return ErrNilPartition
	}
	n, d := X.Dims()
	if rows.Len() != n || cols.Len() != d {
		return fmt.Errorf("%w: %dx%d matrix, %d row labels, %d column labels",
			ErrShapeMismatch, n, d, rows.Len(), cols.Len())
	}
	if rows.Clusters() != cols.Clusters() {
		return fmt.Errorf("%w: %d row clusters vs %d column clusters",
			ErrShapeMismatch, rows.Clusters(), cols.Clusters())
	}
	for _, c := range coords {
		if c.Row < 0 || c.Row >= n || c.Col < 0 || c.Col >= d {
			return fmt.Errorf("%w: (%d,%d) in %dx%d matrix", ErrCoordOutOfRange, c.Row, c.Col, n, d)
		}
	}

	return nil
}

// cloneCoords copies a coordinate slice so strategies own their set.
func cloneCoords(coords []Coord) []Coord {
	if len(coords) == 0 {
		return nil
	}
	owned := make([]Coord, len(coords))
	copy(owned, coords)

	return owned
}

// BlockMeanImputer fills each missing cell with the mean of its co-cluster.
// This is the default strategy.
type BlockMeanImputer struct {
	coords []Coord
}

// BlockMean returns a block-mean strategy bound to the given missing set.
func BlockMean(coords []Coord) *BlockMeanImputer {
	return &BlockMeanImputer{coords: cloneCoords(coords)}
}

// Impute writes rep[z[i]][w[j]] into every missing (i,j), where
// rep = S/C elementwise with zero capacities clamped to 1.
// With an empty missing set X is returned bit-identical.
func (im *BlockMeanImputer) Impute(X *mat.Dense, rows, cols *partition.Partition) error {
	if err := validate(X, rows, cols, im.coords); err != nil {
		return err
	}
	if len(im.coords) == 0 {
		return nil
	}

	s := Summarize(X, rows, cols)
	c := Counts(rows, cols)

	// rep = S / max(C,1). The clamp applies per cell: an empty block divides
	// by 1 and, having a zero sum, yields a representative value of 0.
	capacity := c.RawMatrix().Data
	for i, v := range capacity {
		if v == 0 {
			capacity[i] = 1
		}
	}
	rep := s.RawMatrix().Data
	floats.Div(rep, capacity)

	for _, cd := range im.coords {
		X.Set(cd.Row, cd.Col, s.At(rows.Label(cd.Row), cols.Label(cd.Col)))
	}

	return nil
}

// ZeroImputer resets every missing cell to 0, leaving the seeded structure
// untouched between iterations.
type ZeroImputer struct {
	coords []Coord
}

// Zero returns a constant-zero strategy bound to the given missing set.
func Zero(coords []Coord) *ZeroImputer {
	return &ZeroImputer{coords: cloneCoords(coords)}
}

// Impute writes 0 into every missing coordinate.
func (im *ZeroImputer) Impute(X *mat.Dense, rows, cols *partition.Partition) error {
	if err := validate(X, rows, cols, im.coords); err != nil {
		return err
	}
	for _, cd := range im.coords {
		X.Set(cd.Row, cd.Col, 0)
	}

	return nil
}

// UniformImputer redraws every missing cell uniformly from [0, max) on each
// call, using its own rng stream.
type UniformImputer struct {
	coords []Coord
	max    float64
	rng    *rand.Rand
}

// Uniform returns a random-fill strategy drawing from [0, max) via rng.
func Uniform(coords []Coord, max float64, rng *rand.Rand) *UniformImputer {
	return &UniformImputer{coords: cloneCoords(coords), max: max, rng: rng}
}

// Impute writes a fresh uniform draw into every missing coordinate.
func (im *UniformImputer) Impute(X *mat.Dense, rows, cols *partition.Partition) error {
	if err := validate(X, rows, cols, im.coords); err != nil {
		return err
	}
	for _, cd := range im.coords {
		X.Set(cd.Row, cd.Col, im.rng.Float64()*im.max)
	}

	return nil
}

// FuncImputer adapts a plain function into an Imputer, for callers supplying
// their own per-cell rule without defining a type.
type FuncImputer struct {
	coords []Coord
	fn     func(X *mat.Dense, rows, cols *partition.Partition, c Coord) float64
}

// Func returns a strategy that asks fn for the value of each missing cell.
func Func(coords []Coord, fn func(X *mat.Dense, rows, cols *partition.Partition, c Coord) float64) *FuncImputer {
	return &FuncImputer{coords: cloneCoords(coords), fn: fn}
}

// Impute writes fn's value into every missing coordinate. Values are computed
// against the pre-rewrite X, then applied in one batch.
func (im *FuncImputer) Impute(X *mat.Dense, rows, cols *partition.Partition) error {
	if err := validate(X, rows, cols, im.coords); err != nil {
		return err
	}
	vals := make([]float64, len(im.coords))
	for i, cd := range im.coords {
		vals[i] = im.fn(X, rows, cols, cd)
	}
	for i, cd := range im.coords {
		X.Set(cd.Row, cd.Col, vals[i])
	}

	return nil
}
