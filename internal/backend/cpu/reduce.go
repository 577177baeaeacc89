package cpu

import (
	"fmt"

	"github.com/simpleconv/simpleconv/internal/tensor"
)

// MaxDim computes the maximum along dim and removes that dimension.
//
// Example: [N, C, 4, P] with dim=2 -> [N, C, P].
func (cpu *CPUBackend) MaxDim(x *tensor.RawTensor, dim int) (*tensor.RawTensor, error) {
	shape := x.Shape()
	ndim := len(shape)

	if dim < 0 {
		dim += ndim
	}
	if dim < 0 || dim >= ndim {
		return nil, fmt.Errorf("maxdim: dimension %d out of range for tensor of rank %d", dim, ndim)
	}

	outShape := make(tensor.Shape, 0, ndim-1)
	outShape = append(outShape, shape[:dim]...)
	outShape = append(outShape, shape[dim+1:]...)

	result, err := cpu.newResult("maxdim", outShape, x.DType())
	if err != nil {
		return nil, err
	}

	outer := tensor.Shape(shape[:dim]).NumElements()
	inner := tensor.Shape(shape[dim+1:]).NumElements()
	switch x.DType() {
	case tensor.Float32:
		maxAlong(result.AsFloat32(), x.AsFloat32(), outer, shape[dim], inner)
	case tensor.Float64:
		maxAlong(result.AsFloat64(), x.AsFloat64(), outer, shape[dim], inner)
	default:
		return nil, unsupported("maxdim", x.DType())
	}
	return result, nil
}

// maxAlong reduces src viewed as [outer, size, inner] into dst [outer, inner].
func maxAlong[T tensor.Float](dst, src []T, outer, size, inner int) {
	for o := 0; o < outer; o++ {
		block := src[o*size*inner : (o+1)*size*inner]
		out := dst[o*inner : (o+1)*inner]
		copy(out, block[:inner])
		for s := 1; s < size; s++ {
			row := block[s*inner : (s+1)*inner]
			for i, v := range row {
				if v > out[i] {
					out[i] = v
				}
			}
		}
	}
}
