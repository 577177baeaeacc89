package layers

import "github.com/simpleconv/simpleconv/internal/tensor"

// ReLU computes max(x, 0) element-wise for a tensor of any rank.
func ReLU[T tensor.Float](x *tensor.Tensor[T], dev tensor.Device) (*tensor.Tensor[T], error) {
	be, placed, err := place("relu", dev, x.Raw())
	if err != nil {
		return nil, err
	}
	out, err := be.ReLU(placed[0])
	return wrap[T]("relu", out, err)
}
