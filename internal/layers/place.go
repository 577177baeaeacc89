package layers

import (
	"fmt"

	"github.com/simpleconv/simpleconv/internal/device"
	"github.com/simpleconv/simpleconv/internal/tensor"
)

// place resolves dev to its backend and places every operand on it.
func place(op string, dev tensor.Device, xs ...*tensor.RawTensor) (tensor.Backend, []*tensor.RawTensor, error) {
	be, err := device.Backend(dev)
	if err != nil {
		return nil, nil, opError(op, err)
	}
	placed := make([]*tensor.RawTensor, len(xs))
	for i, x := range xs {
		if placed[i], err = device.Place(x, dev); err != nil {
			return nil, nil, opError(op, err)
		}
	}
	return be, placed, nil
}

// wrap converts a backend result back into a typed tensor.
func wrap[T tensor.Float](op string, raw *tensor.RawTensor, err error) (*tensor.Tensor[T], error) {
	if err != nil {
		return nil, opError(op, err)
	}
	return tensor.FromRaw[T](raw)
}

func opError(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
