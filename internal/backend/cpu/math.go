package cpu

import (
	"fmt"

	"github.com/simpleconv/simpleconv/internal/tensor"
)

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	if err := sameDType("add", a, b); err != nil {
		return nil, err
	}
	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		return nil, fmt.Errorf("add: %w", err)
	}

	result, err := cpu.newResult("add", outShape, a.DType())
	if err != nil {
		return nil, err
	}

	switch a.DType() {
	case tensor.Float32:
		if needsBroadcast {
			addWithBroadcast(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), a.Shape(), b.Shape(), outShape)
		} else {
			addVectorized(result.AsFloat32(), a.AsFloat32(), b.AsFloat32())
		}
	case tensor.Float64:
		if needsBroadcast {
			addWithBroadcast(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), a.Shape(), b.Shape(), outShape)
		} else {
			addVectorized(result.AsFloat64(), a.AsFloat64(), b.AsFloat64())
		}
	default:
		return nil, unsupported("add", a.DType())
	}
	return result, nil
}

func addVectorized[T tensor.Float](dst, a, b []T) {
	for i := range dst {
		dst[i] = a[i] + b[i]
	}
}

// addWithBroadcast walks the output in row-major order, advancing each
// operand by its broadcast stride (0 on broadcast dimensions).
func addWithBroadcast[T tensor.Float](dst, a, b []T, aShape, bShape, outShape tensor.Shape) {
	aStrides := tensor.BroadcastStrides(aShape, outShape)
	bStrides := tensor.BroadcastStrides(bShape, outShape)
	rank := len(outShape)
	coords := make([]int, rank)
	aIdx, bIdx := 0, 0

	for i := range dst {
		dst[i] = a[aIdx] + b[bIdx]

		// Odometer increment of coords, keeping operand offsets in sync.
		for d := rank - 1; d >= 0; d-- {
			coords[d]++
			aIdx += aStrides[d]
			bIdx += bStrides[d]
			if coords[d] < outShape[d] {
				break
			}
			aIdx -= aStrides[d] * outShape[d]
			bIdx -= bStrides[d] * outShape[d]
			coords[d] = 0
		}
	}
}

// ReLU computes max(x, 0) element-wise.
func (cpu *CPUBackend) ReLU(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	result, err := cpu.newResult("relu", x.Shape(), x.DType())
	if err != nil {
		return nil, err
	}

	switch x.DType() {
	case tensor.Float32:
		reluInto(result.AsFloat32(), x.AsFloat32())
	case tensor.Float64:
		reluInto(result.AsFloat64(), x.AsFloat64())
	default:
		return nil, unsupported("relu", x.DType())
	}
	return result, nil
}

func reluInto[T tensor.Float](dst, src []T) {
	for i, v := range src {
		if v > 0 {
			dst[i] = v
		} else {
			dst[i] = 0
		}
	}
}
