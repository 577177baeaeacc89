package layers

import "github.com/simpleconv/simpleconv/internal/tensor"

// Flatten collapses [N, C, S, S] into [N, C*S*S], keeping row-major order.
func Flatten[T tensor.Float](x *tensor.Tensor[T], dev tensor.Device) (*tensor.Tensor[T], error) {
	const op = "flatten"

	shape := x.Shape()
	if err := validateFlatten(op, shape); err != nil {
		return nil, err
	}

	be, placed, err := place(op, dev, x.Raw())
	if err != nil {
		return nil, err
	}
	out, err := be.Reshape(placed[0], tensor.Shape{shape[0], shape[1] * shape[2] * shape[3]})
	return wrap[T](op, out, err)
}
