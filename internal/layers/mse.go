package layers

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/simpleconv/simpleconv/internal/tensor"
)

// MeanSquaredError flattens a and b and returns the mean of their squared
// element-wise differences. Shapes may differ; element counts may not.
func MeanSquaredError[T tensor.Float](a, b *tensor.Tensor[T]) (float64, error) {
	if a.NumElements() != b.NumElements() {
		return 0, fmt.Errorf("mean squared error: %w: %d vs %d elements (shapes %v and %v)",
			ErrSizeMismatch, a.NumElements(), b.NumElements(), a.Shape(), b.Shape())
	}

	diff := a.Raw().Float64s()
	floats.Sub(diff, b.Raw().Float64s())
	return floats.Dot(diff, diff) / float64(len(diff)), nil
}
