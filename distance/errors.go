package distance

import "fmt"

// DimensionMismatchError is the panic value of the vector metrics when the
// two operands have different lengths.
type DimensionMismatchError struct {
	Left  int
	Right int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("distance: dimension mismatch: %d vs %d", e.Left, e.Right)
}

// InvalidDistanceError is the panic value of Cache.Distance when the wrapped
// metric returns a negative or NaN distance. Such a metric breaks the
// invariants every pruning decision relies on, so the operation is aborted.
type InvalidDistanceError struct {
	Distance float64
}

func (e *InvalidDistanceError) Error() string {
	return fmt.Sprintf("distance: metric returned invalid distance %v", e.Distance)
}
