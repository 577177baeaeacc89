package cpu

import (
	"fmt"

	"github.com/simpleconv/simpleconv/internal/tensor"
)

// Reshape returns a tensor with the same data but different shape.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) (*tensor.RawTensor, error) {
	reshaped, err := t.WithShape(newShape)
	if err != nil {
		return nil, fmt.Errorf("reshape: %w", err)
	}
	return reshaped.OnDevice(cpu.device), nil
}

// Transpose transposes the tensor by permuting its dimensions.
func (cpu *CPUBackend) Transpose(t *tensor.RawTensor, axes ...int) (*tensor.RawTensor, error) {
	shape := t.Shape()
	axes, err := tensor.NormalizeAxes(shape.Rank(), axes)
	if err != nil {
		return nil, fmt.Errorf("transpose: %w", err)
	}

	newShape := make(tensor.Shape, len(axes))
	for i, ax := range axes {
		newShape[i] = shape[ax]
	}

	result, err := cpu.newResult("transpose", newShape, t.DType())
	if err != nil {
		return nil, err
	}

	// srcStrides[i] is how far the source advances when output dim i advances.
	inStrides := t.Strides()
	srcStrides := make([]int, len(axes))
	for i, ax := range axes {
		srcStrides[i] = inStrides[ax]
	}

	switch t.DType() {
	case tensor.Float32:
		permute(result.AsFloat32(), t.AsFloat32(), newShape, srcStrides)
	case tensor.Float64:
		permute(result.AsFloat64(), t.AsFloat64(), newShape, srcStrides)
	default:
		return nil, unsupported("transpose", t.DType())
	}
	return result, nil
}

func permute[T tensor.Float](dst, src []T, outShape tensor.Shape, srcStrides []int) {
	rank := len(outShape)
	coords := make([]int, rank)
	srcIdx := 0
	for i := range dst {
		dst[i] = src[srcIdx]
		for d := rank - 1; d >= 0; d-- {
			coords[d]++
			srcIdx += srcStrides[d]
			if coords[d] < outShape[d] {
				break
			}
			srcIdx -= srcStrides[d] * outShape[d]
			coords[d] = 0
		}
	}
}
