package layers

import "github.com/simpleconv/simpleconv/internal/tensor"

// Im2Col extracts every K×K window of x into a column.
//
// Input:  [N, C_in, S_in, S_in]
// Output: [N, C_in*K*K, S_out*S_out], S_out = S_in - K + 1
//
// Column i*S_out + j holds x[:, :, i:i+K, j:j+K] flattened in
// (C_in, K_row, K_col) order.
func Im2Col[T tensor.Float](x *tensor.Tensor[T], k int, dev tensor.Device) (*tensor.Tensor[T], error) {
	shape := x.Shape()
	if len(shape) != 4 {
		return nil, shapeError("im2col", "input must be 4D [N,C,S,S], got %v", shape)
	}
	if k <= 0 || k > shape[2] || k > shape[3] {
		return nil, shapeError("im2col", "kernel size %d invalid for input %dx%d", k, shape[2], shape[3])
	}

	be, placed, err := place("im2col", dev, x.Raw())
	if err != nil {
		return nil, err
	}
	out, err := be.Im2Col(placed[0], k, 1)
	return wrap[T]("im2col", out, err)
}

// WeightRows flattens convolution filters [C_out, C_in, K, K] into
// [C_out, C_in*K*K], matching the window order of Im2Col.
func WeightRows[T tensor.Float](w *tensor.Tensor[T], dev tensor.Device) (*tensor.Tensor[T], error) {
	shape := w.Shape()
	if len(shape) != 4 {
		return nil, shapeError("weight rows", "weight must be 4D [C_out,C_in,K,K], got %v", shape)
	}

	be, placed, err := place("weight rows", dev, w.Raw())
	if err != nil {
		return nil, err
	}
	out, err := be.Reshape(placed[0], tensor.Shape{shape[0], shape[1] * shape[2] * shape[3]})
	return wrap[T]("weight rows", out, err)
}
