package mtree

import (
	"errors"
	"fmt"
)

var (
	// ErrNilDistanceFunc is returned by New when no metric is supplied.
	ErrNilDistanceFunc = errors.New("distance function must not be nil")

	// ErrInvalidSplit is the panic value (wrapped) raised when a split policy
	// returns pivots or sets that do not partition the overflowing node.
	ErrInvalidSplit = errors.New("split policy returned an invalid partition")
)

// ErrInvalidCapacity indicates node capacity bounds that cannot hold a
// balanced tree.
type ErrInvalidCapacity struct {
	Max int
	Min int
}

func (e *ErrInvalidCapacity) Error() string {
	return fmt.Sprintf("invalid node capacity: max %d, min %d (need max >= 2 and 1 <= min <= (max+1)/2)", e.Max, e.Min)
}

func validateCapacity(maxCap, minCap int) error {
	if maxCap < 2 || minCap < 1 || 2*minCap > maxCap+1 {
		return &ErrInvalidCapacity{Max: maxCap, Min: minCap}
	}
	return nil
}
