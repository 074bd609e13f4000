// Package cocluster: the Fit entry point, the per-restart alternating
// optimizer, and the best-of-restarts reduction.
//
// Fit pipeline:
//  1. Copy X, locate missing (NaN) cells — before any fill erases the marker.
//  2. Seed the holes per the fill strategy (zero / uniform / explicit).
//  3. Validate shape and, when supplied, the initial column partition.
//  4. Derive one sub-seed per restart from the base seed.
//  5. Run fitSingle per restart on a private deep copy of the filled matrix,
//     sequentially or fanned out across goroutines.
//  6. Fold the collected results by strictly greater modularity, in restart
//     order, so earlier restarts win ties. Any restart error aborts the fit.
//
// One fitSingle iteration (a full row+column update):
//
//	BW = B·W            → rows    = argmax per row of BW
//	impute(X, Z, W_old) → rebuild B, N
//	BᵀZ                 → columns = argmax per row of BᵀZ
//	impute(X, Z, W_new) → rebuild B, N
//	m = tr(Zᵀ·BW)         (the BW from the row step, before the rebuilds)
//	continue while |m − m_prev| > tol and iteration < MaxIter
//
// Complexity per iteration: O(n·d·k) time, O(n·d) memory. No concurrency
// inside a run — each step consumes the previous step's matrices.
package cocluster

import (
	"fmt"
	"math"
	"math/rand"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/cocluster/impute"
	"github.com/katalvlaran/cocluster/modularity"
	"github.com/katalvlaran/cocluster/partition"
)

// Fit co-clusters the n×d matrix X into k row clusters and k column clusters
// by direct maximization of graph modularity, imputing missing (NaN) cells
// from the evolving block structure. It returns the best result across
// Options.NRestarts independent runs.
//
// Preconditions (validated here, in order):
//  1. X non-nil (ErrNilMatrix), k ≥ 1 (ErrBadClusterCount).
//  2. n ≥ k and d ≥ k (ErrInvalidShape).
//  3. The fill strategy leaves no non-finite entries (ErrBadFill,
//     ErrAllMissing, ErrNonFinite).
//  4. Options.Init, when set, is a valid d×k one-hot matrix (ErrInvalidInit).
//
// A NaN modularity in any restart — e.g. a zero-mass matrix — aborts the
// whole fit with ErrDegenerate; no partial clustering is returned.
func Fit(X mat.Matrix, k int, opts ...Option) (*Result, error) {
	if X == nil {
		return nil, ErrNilMatrix
	}
	cfg := DefaultOptions(k)
	var opt Option
	for _, opt = range opts {
		opt(&cfg)
	}
	if cfg.NClusters < 1 {
		return nil, ErrBadClusterCount
	}
	if cfg.Imputer == nil {
		cfg.Imputer = func(coords []impute.Coord, _ *rand.Rand) impute.Imputer {
			return impute.BlockMean(coords)
		}
	}

	n, d := X.Dims()
	if n < cfg.NClusters || d < cfg.NClusters {
		return nil, fmt.Errorf("%w: %dx%d matrix, %d clusters", ErrInvalidShape, n, d, cfg.NClusters)
	}

	// The working copy. Missing cells are located first: the fill below
	// overwrites the NaN marker.
	work := mat.DenseCopyOf(X)
	coords := impute.FindMissing(work)

	rng := rand.New(rand.NewSource(cfg.Seed))
	if err := fill(work, coords, &cfg, rng); err != nil {
		return nil, err
	}
	if err := checkFinite(work); err != nil {
		return nil, err
	}

	// A caller-supplied init is validated once and shared read-only by every
	// restart; partitions are immutable after construction.
	var init *partition.Partition
	if cfg.Init != nil {
		p, err := partition.FromIndicator(cfg.Init, cfg.NClusters)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInit, err)
		}
		if p.Len() != d {
			return nil, fmt.Errorf("%w: %d rows, want %d", ErrInvalidInit, p.Len(), d)
		}
		init = p
	}

	// One sub-seed per restart, all derived from the base seed so that
	// growing NRestarts only appends runs.
	seeds := make([]int64, cfg.NRestarts)
	for i := range seeds {
		seeds[i] = rng.Int63()
	}

	results := make([]*Result, cfg.NRestarts)
	errs := make([]error, cfg.NRestarts)
	run := func(i int) {
		local := rand.New(rand.NewSource(seeds[i]))
		results[i], errs[i] = fitSingle(mat.DenseCopyOf(work), init, &cfg, coords, local)
	}

	if cfg.Parallel && cfg.NRestarts > 1 {
		var wg sync.WaitGroup
		for i := 0; i < cfg.NRestarts; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				run(i)
			}(i)
		}
		wg.Wait()
	} else {
		for i := 0; i < cfg.NRestarts; i++ {
			run(i)
		}
	}

	// Collect-then-reduce: strictly greater modularity replaces the best, so
	// the earliest of equally good restarts is kept.
	var best *Result
	for i := 0; i < cfg.NRestarts; i++ {
		if errs[i] != nil {
			return nil, errs[i]
		}
		if best == nil || results[i].Modularity > best.Modularity {
			best = results[i]
		}
	}

	return best, nil
}

// fill seeds the missing cells of X in place according to cfg.Fill.
func fill(X *mat.Dense, coords []impute.Coord, cfg *Options, rng *rand.Rand) error {
	switch cfg.Fill {
	case FillZero:
		for _, c := range coords {
			X.Set(c.Row, c.Col, 0)
		}
	case FillUniform:
		max, err := observedMax(X)
		if err != nil {
			return err
		}
		for _, c := range coords {
			X.Set(c.Row, c.Col, rng.Float64()*max)
		}
	case FillValues:
		if len(cfg.FillValues) != len(coords) {
			return fmt.Errorf("%w: %d values for %d missing cells",
				ErrBadFill, len(cfg.FillValues), len(coords))
		}
		for i, c := range coords {
			X.Set(c.Row, c.Col, cfg.FillValues[i])
		}
	default:
		return fmt.Errorf("%w: unknown fill strategy %d", ErrBadFill, cfg.Fill)
	}

	return nil
}

// observedMax returns the maximum over the finite entries of X, i.e. the
// nanmax of the original input while the NaN markers are still in place.
func observedMax(X *mat.Dense) (float64, error) {
	n, d := X.Dims()
	max, found := math.Inf(-1), false
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			v := X.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			if !found || v > max {
				max, found = v, true
			}
		}
	}
	if !found {
		return 0, ErrAllMissing
	}

	return max, nil
}

// checkFinite rejects any NaN/Inf entry left after the fill.
func checkFinite(X *mat.Dense) error {
	n, d := X.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			if v := X.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: X[%d,%d]=%v", ErrNonFinite, i, j, v)
			}
		}
	}

	return nil
}

// fitSingle runs the alternating row/column fixed point to convergence for
// one initialization. X is owned by this run and mutated in place by the
// imputation strategy.
func fitSingle(X *mat.Dense, init *partition.Partition, cfg *Options, coords []impute.Coord, rng *rand.Rand) (*Result, error) {
	_, d := X.Dims()
	k := cfg.NClusters

	cols := init
	if cols == nil {
		var err error
		if cols, err = partition.Random(k, d, rng); err != nil {
			return nil, err
		}
	}
	imp := cfg.Imputer(coords, rng)

	B, N, err := modularity.Build(X)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDegenerate, err)
	}

	var (
		rows  *partition.Partition
		m     float64
		mPrev = math.Inf(-1)
		trace []float64
		iter  int
	)
	for improved := true; improved; {
		improved = false

		// Row step: score rows against the current column partition and
		// reassign by argmax (first index on ties).
		var bw mat.Dense
		bw.Mul(B, cols.Indicator())
		if rows, err = partition.AssignRows(&bw); err != nil {
			return nil, err
		}

		// Refresh the holes under the new row assignment, then rebuild the
		// modularity matrix from the rewritten X.
		if err = imp.Impute(X, rows, cols); err != nil {
			return nil, err
		}
		if B, N, err = modularity.Build(X); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDegenerate, err)
		}

		// Column step: the mirrored reassignment through BᵀZ.
		var btz mat.Dense
		btz.Mul(B.T(), rows.Indicator())
		if cols, err = partition.AssignRows(&btz); err != nil {
			return nil, err
		}

		if err = imp.Impute(X, rows, cols); err != nil {
			return nil, err
		}
		if B, N, err = modularity.Build(X); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDegenerate, err)
		}

		// The gain attributable to this iteration's row reassignment:
		// deliberately the pre-update BW from the row step, not the rebuilt B.
		m = modularity.Score(rows.Indicator(), &bw)
		iter++
		if math.Abs(m-mPrev) > cfg.Tol && iter < cfg.MaxIter {
			trace = append(trace, m/N)
			mPrev = m
			improved = true
		}
	}

	final := m / N
	if math.IsNaN(final) {
		return nil, fmt.Errorf("%w: NaN modularity after %d iterations", ErrDegenerate, iter)
	}

	return &Result{
		RowLabels:    rows.Labels(),
		ColumnLabels: cols.Labels(),
		Modularity:   final,
		Modularities: trace,
		Iterations:   iter,
		Imputed:      X,
		k:            k,
	}, nil
}
