// Package partition represents one-hot cluster assignments for one axis of a
// matrix (rows or columns) of a diagonal co-clustering.
//
// A Partition is a tagged array of cluster indices: item i carries exactly one
// label in [0,k). The dense n×k one-hot indicator matrix is never stored; it
// is derived fresh on demand via Indicator and discarded by the caller after
// use, so the label array remains the single source of truth.
//
// Construction paths:
//   - Random        — uniform random labels, for restart initialization
//   - FromLabels    — adopt an existing label array (bounds-checked)
//   - FromIndicator — validate and decode a caller-supplied one-hot matrix
//   - AssignRows    — argmax of a score matrix, the reassignment step of the
//     alternating optimizer (first index wins ties)
//
// Complexity: all constructors and accessors are O(n) or O(n·k); nothing here
// allocates beyond its returned value.
package partition

import (
	"errors"
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Sentinel errors returned by partition constructors.
var (
	// ErrBadClusterCount indicates a requested cluster count below 1.
	ErrBadClusterCount = errors.New("partition: cluster count must be >= 1")

	// ErrBadLength indicates a requested item count below 1.
	ErrBadLength = errors.New("partition: item count must be >= 1")

	// ErrLabelOutOfRange indicates a label outside [0, k).
	ErrLabelOutOfRange = errors.New("partition: label outside [0, clusters)")

	// ErrNotOneHot indicates a supplied indicator matrix whose rows do not
	// contain exactly one 1 with all other entries 0.
	ErrNotOneHot = errors.New("partition: matrix is not a valid one-hot partition")

	// ErrNilMatrix indicates a nil indicator or score matrix argument.
	ErrNilMatrix = errors.New("partition: nil matrix")
)

// Partition assigns each of n items to exactly one of k clusters.
// The zero value is not usable; obtain instances through the constructors.
type Partition struct {
	labels []int
	k      int
}

// Random returns a partition of n items with labels drawn uniformly from
// [0,k) using rng. Clusters may come out empty — the alternating optimizer
// tolerates (and typically repairs) that, so no rejection is performed.
func Random(k, n int, rng *rand.Rand) (*Partition, error) {
	if k < 1 {
		return nil, ErrBadClusterCount
	}
	if n < 1 {
		return nil, ErrBadLength
	}
	labels := make([]int, n)
	for i := range labels {
		labels[i] = rng.Intn(k)
	}

	return &Partition{labels: labels, k: k}, nil
}

// FromLabels adopts a copy of labels as a partition into k clusters.
// Every label must lie in [0,k).
func FromLabels(labels []int, k int) (*Partition, error) {
	if k < 1 {
		return nil, ErrBadClusterCount
	}
	if len(labels) < 1 {
		return nil, ErrBadLength
	}
	owned := make([]int, len(labels))
	for i, l := range labels {
		if l < 0 || l >= k {
			return nil, fmt.Errorf("%w: labels[%d]=%d, clusters=%d", ErrLabelOutOfRange, i, l, k)
		}
		owned[i] = l
	}

	return &Partition{labels: owned, k: k}, nil
}

// FromIndicator decodes an n×k one-hot matrix into a partition.
// Each row must contain exactly one entry equal to 1 and zeros elsewhere;
// anything else returns ErrNotOneHot. The column count must equal k.
func FromIndicator(ind mat.Matrix, k int) (*Partition, error) {
	if ind == nil {
		return nil, ErrNilMatrix
	}
	if k < 1 {
		return nil, ErrBadClusterCount
	}
	n, c := ind.Dims()
	if n < 1 {
		return nil, ErrBadLength
	}
	if c != k {
		return nil, fmt.Errorf("%w: indicator has %d columns, want %d", ErrNotOneHot, c, k)
	}

	labels := make([]int, n)
	for i := 0; i < n; i++ {
		hot := -1
		for j := 0; j < k; j++ {
			switch v := ind.At(i, j); v {
			case 0:
				// cold entry, nothing to do
			case 1:
				if hot >= 0 {
					return nil, fmt.Errorf("%w: row %d has more than one hot entry", ErrNotOneHot, i)
				}
				hot = j
			default:
				return nil, fmt.Errorf("%w: row %d contains %v", ErrNotOneHot, i, v)
			}
		}
		if hot < 0 {
			return nil, fmt.Errorf("%w: row %d has no hot entry", ErrNotOneHot, i)
		}
		labels[i] = hot
	}

	return &Partition{labels: labels, k: k}, nil
}

// AssignRows builds a partition by taking, for every row of the n×k score
// matrix, the index of the maximum entry. Ties resolve to the first (lowest)
// index, matching argmax semantics, which keeps reassignment deterministic.
func AssignRows(scores mat.Matrix) (*Partition, error) {
	if scores == nil {
		return nil, ErrNilMatrix
	}
	n, k := scores.Dims()
	if k < 1 {
		return nil, ErrBadClusterCount
	}
	if n < 1 {
		return nil, ErrBadLength
	}

	labels := make([]int, n)
	for i := 0; i < n; i++ {
		best, bestVal := 0, scores.At(i, 0)
		for j := 1; j < k; j++ {
			if v := scores.At(i, j); v > bestVal {
				best, bestVal = j, v
			}
		}
		labels[i] = best
	}

	return &Partition{labels: labels, k: k}, nil
}

// Len returns the number of items in the partition.
func (p *Partition) Len() int { return len(p.labels) }

// Clusters returns k, the number of clusters the labels index into.
func (p *Partition) Clusters() int { return p.k }

// Label returns the cluster index of item i.
func (p *Partition) Label(i int) int { return p.labels[i] }

// Labels returns a copy of the label array; mutating it does not affect p.
func (p *Partition) Labels() []int {
	out := make([]int, len(p.labels))
	copy(out, p.labels)

	return out
}

// Indicator materializes the n×k one-hot matrix of the partition.
// Each call allocates a fresh matrix; every row sums to exactly 1.
func (p *Partition) Indicator() *mat.Dense {
	ind := mat.NewDense(len(p.labels), p.k, nil)
	for i, l := range p.labels {
		ind.Set(i, l, 1)
	}

	return ind
}

// Counts returns the per-cluster item counts as floats (length k), the form
// consumed by block-capacity outer products.
func (p *Partition) Counts() []float64 {
	counts := make([]float64, p.k)
	for _, l := range p.labels {
		counts[l]++
	}

	return counts
}

// Members returns the (ascending) indices of the items assigned to cluster c.
// An out-of-range c yields an empty slice.
func (p *Partition) Members(c int) []int {
	var members []int
	for i, l := range p.labels {
		if l == c {
			members = append(members, i)
		}
	}

	return members
}
