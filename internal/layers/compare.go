package layers

import (
	"fmt"
	"time"

	"github.com/simpleconv/simpleconv/internal/tensor"
)

// Comparison reports how a vectorized layer agrees with its scalar reference.
type Comparison struct {
	Layer      string
	MSE        float64
	Vectorized time.Duration
	Scalar     time.Duration
}

// Speedup is the scalar wall time divided by the vectorized wall time.
func (c Comparison) Speedup() float64 {
	if c.Vectorized <= 0 {
		return 0
	}
	return float64(c.Scalar) / float64(c.Vectorized)
}

func (c Comparison) String() string {
	return fmt.Sprintf("%-16s mse=%.3e vectorized=%v scalar=%v (x%.1f)",
		c.Layer, c.MSE, c.Vectorized, c.Scalar, c.Speedup())
}

// Compare runs vectorized and scalar once each, timing both, and measures the
// mean squared error between their outputs.
func Compare[T tensor.Float](layer string, vectorized, scalar func() (*tensor.Tensor[T], error)) (Comparison, error) {
	start := time.Now()
	got, err := vectorized()
	if err != nil {
		return Comparison{}, fmt.Errorf("compare %s: vectorized: %w", layer, err)
	}
	vecTime := time.Since(start)

	start = time.Now()
	want, err := scalar()
	if err != nil {
		return Comparison{}, fmt.Errorf("compare %s: scalar: %w", layer, err)
	}
	scalarTime := time.Since(start)

	if !got.Shape().Equal(want.Shape()) {
		return Comparison{}, fmt.Errorf("compare %s: %w: vectorized %v vs scalar %v",
			layer, ErrShapeMismatch, got.Shape(), want.Shape())
	}
	mse, err := MeanSquaredError(got, want)
	if err != nil {
		return Comparison{}, fmt.Errorf("compare %s: %w", layer, err)
	}

	return Comparison{
		Layer:      layer,
		MSE:        mse,
		Vectorized: vecTime,
		Scalar:     scalarTime,
	}, nil
}
