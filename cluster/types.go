package cluster

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/fronthaul/matrix"
)

var (
	// ErrBadK indicates a non-positive cluster count.
	ErrBadK = errors.New("cluster: k must be >= 1")

	// ErrBadDistance indicates a nil, non-square or non-finite distance matrix.
	ErrBadDistance = errors.New("cluster: invalid distance matrix")
)

// Clusterer assigns each of the n points of a square distance matrix to one of
// at most k clusters and returns one label per point.
type Clusterer interface {
	Cluster(dist *matrix.Dense, k int) ([]int, error)
}

// Method names accepted by ByName.
const (
	MethodAverage = "average"
	MethodSingle  = "single"
)

// ByName returns the Clusterer registered under name.
func ByName(name string) (Clusterer, error) {
	switch name {
	case MethodAverage, "":
		return AverageLinkage{}, nil
	case MethodSingle:
		return SingleLinkage{}, nil
	default:
		return nil, fmt.Errorf("cluster: unknown method %q", name)
	}
}

// validate checks the shared Clusterer preconditions.
func validate(dist *matrix.Dense, k int) error {
	if k < 1 {
		return ErrBadK
	}
	if err := matrix.ValidateSquare(dist); err != nil {
		return fmt.Errorf("%w: %w", ErrBadDistance, err)
	}
	if err := matrix.ValidateNaNInf(dist); err != nil {
		return fmt.Errorf("%w: %w", ErrBadDistance, err)
	}

	return nil
}

// Groups converts labels into point-index groups ordered by label.
func Groups(labels []int) [][]int {
	maxLabel := -1
	for _, l := range labels {
		if l > maxLabel {
			maxLabel = l
		}
	}
	groups := make([][]int, maxLabel+1)
	for i, l := range labels {
		groups[l] = append(groups[l], i)
	}

	return groups
}

// canonical renumbers arbitrary cluster representatives to 0..k'−1 in order
// of first appearance by point index.
func canonical(rep []int) []int {
	next := 0
	seen := make(map[int]int, len(rep))
	labels := make([]int, len(rep))
	for i, r := range rep {
		l, ok := seen[r]
		if !ok {
			l = next
			seen[r] = l
			next++
		}
		labels[i] = l
	}

	return labels
}
