package layers

import "github.com/simpleconv/simpleconv/internal/tensor"

// Pool2D computes 2×2 max pooling with stride 2.
//
// Input:  [N, C, S, S], S even
// Output: [N, C, S/2, S/2]
//
// Strided patch extraction lays each window out along its own axis, which a
// single max reduction then collapses.
func Pool2D[T tensor.Float](x *tensor.Tensor[T], dev tensor.Device) (*tensor.Tensor[T], error) {
	const op = "pool2d"

	shape := x.Shape()
	if err := validatePool(op, shape); err != nil {
		return nil, err
	}
	n, c, sOut := shape[0], shape[1], shape[2]/2

	be, placed, err := place(op, dev, x.Raw())
	if err != nil {
		return nil, err
	}

	// [N, C*4, P]
	cols, err := be.Im2Col(placed[0], 2, 2)
	if err != nil {
		return nil, opError(op, err)
	}
	windows, err := be.Reshape(cols, tensor.Shape{n, c, 4, sOut * sOut})
	if err != nil {
		return nil, opError(op, err)
	}
	maxima, err := be.MaxDim(windows, 2)
	if err != nil {
		return nil, opError(op, err)
	}
	out, err := be.Reshape(maxima, tensor.Shape{n, c, sOut, sOut})
	return wrap[T](op, out, err)
}
