package layers

import "github.com/simpleconv/simpleconv/internal/tensor"

// FullyConnected computes the affine map x·wᵀ + b.
//
// Input:  [N, C_in]
// Weight: [C_out, C_in]
// Bias:   [C_out]
// Output: [N, C_out]
func FullyConnected[T tensor.Float](x, w, b *tensor.Tensor[T], dev tensor.Device) (*tensor.Tensor[T], error) {
	const op = "fully connected"

	if err := validateLinear(op, x.Shape(), w.Shape(), b.Shape()); err != nil {
		return nil, err
	}

	be, placed, err := place(op, dev, x.Raw(), w.Raw(), b.Raw())
	if err != nil {
		return nil, err
	}

	wT, err := be.Transpose(placed[1])
	if err != nil {
		return nil, opError(op, err)
	}
	prod, err := be.MatMul(placed[0], wT)
	if err != nil {
		return nil, opError(op, err)
	}
	out, err := be.Add(prod, placed[2])
	return wrap[T](op, out, err)
}
