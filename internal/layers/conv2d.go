package layers

import "github.com/simpleconv/simpleconv/internal/tensor"

// Conv2D computes a "valid" stride-1 convolution with bias.
//
// Input:  [N, C_in, S_in, S_in]
// Weight: [C_out, C_in, K, K]
// Bias:   [C_out]
// Output: [N, C_out, S_out, S_out], S_out = S_in - K + 1
//
// The work is one batched product of the flattened filters with the patch
// matrix of every batch element, plus the bias broadcast over positions.
func Conv2D[T tensor.Float](x, w, b *tensor.Tensor[T], dev tensor.Device) (*tensor.Tensor[T], error) {
	const op = "conv2d"

	g, err := validateConv(op, x.Shape(), w.Shape(), b.Shape())
	if err != nil {
		return nil, err
	}

	be, placed, err := place(op, dev, x.Raw(), w.Raw(), b.Raw())
	if err != nil {
		return nil, err
	}
	xr, wr, br := placed[0], placed[1], placed[2]

	// [N, C_in*K*K, S_out*S_out]
	cols, err := be.Im2Col(xr, g.K, 1)
	if err != nil {
		return nil, opError(op, err)
	}
	// [C_out, C_in*K*K]
	rows, err := be.Reshape(wr, tensor.Shape{g.COut, g.CIn * g.K * g.K})
	if err != nil {
		return nil, opError(op, err)
	}
	// [N, C_out, S_out*S_out]
	prod, err := be.BatchMatMul(rows, cols)
	if err != nil {
		return nil, opError(op, err)
	}
	bias, err := be.Reshape(br, tensor.Shape{1, g.COut, 1})
	if err != nil {
		return nil, opError(op, err)
	}
	sum, err := be.Add(prod, bias)
	if err != nil {
		return nil, opError(op, err)
	}
	out, err := be.Reshape(sum, tensor.Shape{g.N, g.COut, g.SOut, g.SOut})
	return wrap[T](op, out, err)
}
