// Package cocluster: configuration, sentinel errors, and the fitted result.
//
// Options follow the functional-option pattern: start from DefaultOptions,
// apply Option values, pass the rest to Fit. Option constructors panic on
// values that can never be valid (programmer errors); data-dependent problems
// (shape, mass, initialization) surface as sentinel errors from Fit.
//
// Defaults:
//   - MaxIter:   20    — hard cap on alternating iterations per restart.
//   - NRestarts: 1     — independent random initializations.
//   - Tol:       1e-9  — absolute modularity-change convergence threshold.
//   - Seed:      42    — deterministic by default; override with WithSeed.
//   - Fill:      FillZero
//   - Imputer:   block-mean
package cocluster

import (
	"errors"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/cocluster/impute"
)

// Sentinel errors returned by Fit. Match with errors.Is.
var (
	// ErrNilMatrix indicates a nil input matrix.
	ErrNilMatrix = errors.New("cocluster: nil input matrix")

	// ErrBadClusterCount indicates a requested cluster count below 1.
	ErrBadClusterCount = errors.New("cocluster: cluster count must be >= 1")

	// ErrInvalidShape indicates a matrix with fewer rows or columns than the
	// requested cluster count. Detected before any optimization runs.
	ErrInvalidShape = errors.New("cocluster: matrix smaller than cluster count")

	// ErrInvalidInit indicates a caller-supplied initial column partition
	// that is not a valid d×k one-hot matrix. Surfaced before any iteration.
	ErrInvalidInit = errors.New("cocluster: invalid initial column partition")

	// ErrBadFill indicates explicit fill values whose count does not match
	// the number of missing cells, or an unknown fill strategy.
	ErrBadFill = errors.New("cocluster: invalid missing-value fill")

	// ErrAllMissing indicates a matrix with no observed (finite) entries, so
	// no fill value can be derived from the data.
	ErrAllMissing = errors.New("cocluster: matrix has no observed entries")

	// ErrNonFinite indicates NaN or ±Inf entries remaining after the initial
	// fill was applied.
	ErrNonFinite = errors.New("cocluster: non-finite entries after fill")

	// ErrDegenerate indicates an undefined (NaN) modularity — typically a
	// collapsed cluster or zero-mass matrix. Any restart hitting this aborts
	// the whole fit; there is no silent skip-and-retry.
	ErrDegenerate = errors.New("cocluster: modularity is undefined (numerical degeneracy)")
)

// Default option values.
const (
	DefaultMaxIter   = 20
	DefaultNRestarts = 1
	DefaultTol       = 1e-9
	DefaultSeed      = 42
)

// FillStrategy selects how missing cells are seeded before the first
// iteration. The missing set is located before the fill is applied, since
// filling removes the NaN marker.
type FillStrategy int

const (
	// FillZero seeds every missing cell with 0 (default).
	FillZero FillStrategy = iota

	// FillUniform seeds every missing cell with a uniform draw from
	// [0, max(observed X)).
	FillUniform

	// FillValues seeds missing cells from caller-supplied values, matched to
	// the missing coordinates in row-major order.
	FillValues
)

// ImputerFactory builds the per-restart imputation strategy. It receives the
// fixed missing-coordinate set and the restart's private rng, so randomized
// strategies stay deterministic per restart.
type ImputerFactory func(coords []impute.Coord, rng *rand.Rand) impute.Imputer

// Options configures Fit.
//
// NClusters  – shared row/column cluster count k (diagonal co-clustering).
// Init       – optional d×k one-hot initial column partition; when set, every
// restart starts from it (restarts then differ only through
// randomized fills or imputation).
// MaxIter    – hard iteration cap per restart.
// NRestarts  – number of independent restarts; the best modularity wins,
// earlier restarts winning ties.
// Tol        – convergence threshold on the absolute modularity change.
// Seed       – base seed; restart sub-seeds derive from it.
// Fill       – initial missing-value seeding policy.
// FillValues – explicit seeds for FillValues, in row-major coordinate order.
// Parallel   – run restarts concurrently (collect-then-reduce; results are
// identical to the sequential order).
// Imputer    – per-restart imputation strategy factory; nil means block-mean.
type Options struct {
	NClusters  int
	Init       mat.Matrix
	MaxIter    int
	NRestarts  int
	Tol        float64
	Seed       int64
	Fill       FillStrategy
	FillValues []float64
	Parallel   bool
	Imputer    ImputerFactory
}

// Option mutates Options before a fit.
type Option func(*Options)

// DefaultOptions returns Options for k clusters with the documented defaults.
func DefaultOptions(k int) Options {
	return Options{
		NClusters: k,
		MaxIter:   DefaultMaxIter,
		NRestarts: DefaultNRestarts,
		Tol:       DefaultTol,
		Seed:      DefaultSeed,
		Fill:      FillZero,
	}
}

// WithInit supplies the initial column partition as a d×k one-hot matrix.
// Validated in Fit (ErrInvalidInit) before any iteration runs.
func WithInit(ind mat.Matrix) Option {
	return func(o *Options) { o.Init = ind }
}

// WithMaxIter caps the number of alternating iterations per restart.
// Panics if n < 1.
func WithMaxIter(n int) Option {
	if n < 1 {
		panic("cocluster: WithMaxIter requires n >= 1")
	}

	return func(o *Options) { o.MaxIter = n }
}

// WithRestarts sets the number of independent restarts. Panics if n < 1.
func WithRestarts(n int) Option {
	if n < 1 {
		panic("cocluster: WithRestarts requires n >= 1")
	}

	return func(o *Options) { o.NRestarts = n }
}

// WithTol sets the absolute modularity-change convergence threshold.
// Panics if tol < 0.
func WithTol(tol float64) Option {
	if tol < 0 {
		panic("cocluster: WithTol requires tol >= 0")
	}

	return func(o *Options) { o.Tol = tol }
}

// WithSeed fixes the base random seed. Fits with equal seeds, options and
// input produce identical results.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithUniformFill seeds missing cells uniformly from [0, max observed value).
func WithUniformFill() Option {
	return func(o *Options) { o.Fill = FillUniform }
}

// WithFillValues seeds missing cells from vals, matched to the missing
// coordinates in row-major order. The count must equal the number of missing
// cells (checked in Fit, ErrBadFill).
func WithFillValues(vals []float64) Option {
	return func(o *Options) {
		o.Fill = FillValues
		o.FillValues = vals
	}
}

// WithParallel runs restarts on separate goroutines. Each restart owns its
// matrix copy and rng; only the final reduction is shared, so results equal
// the sequential ones.
func WithParallel() Option {
	return func(o *Options) { o.Parallel = true }
}

// WithImputer replaces the block-mean strategy. The factory runs once per
// restart, binding the shared missing set and the restart's rng.
func WithImputer(f ImputerFactory) Option {
	return func(o *Options) { o.Imputer = f }
}

// Result is one fitted co-clustering. It is immutable once returned; the
// restart selector keeps at most the best one alive.
type Result struct {
	// RowLabels and ColumnLabels hold cluster indices in [0, k).
	RowLabels    []int
	ColumnLabels []int

	// Modularity is the final normalized objective m/N of the winning run.
	Modularity float64

	// Modularities traces m/N across the improving iterations of the winning
	// run, in iteration order.
	Modularities []float64

	// Iterations counts completed row+column iterations of the winning run.
	Iterations int

	// Imputed is the final matrix with every missing cell filled by the
	// winning run's last imputation.
	Imputed *mat.Dense

	k int
}

// Clusters returns k, the shared row/column cluster count.
func (r *Result) Clusters() int { return r.k }

// Shape returns the dimensions of the fitted matrix.
func (r *Result) Shape() (rows, cols int) { return r.Imputed.Dims() }

// RowIndices returns the (ascending) row indices assigned to cluster c.
func (r *Result) RowIndices(c int) []int { return indicesOf(r.RowLabels, c) }

// ColumnIndices returns the (ascending) column indices assigned to cluster c.
func (r *Result) ColumnIndices(c int) []int { return indicesOf(r.ColumnLabels, c) }

func indicesOf(labels []int, c int) []int {
	var idx []int
	for i, l := range labels {
		if l == c {
			idx = append(idx, i)
		}
	}

	return idx
}
