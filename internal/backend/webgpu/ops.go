package webgpu

import (
	"fmt"

	"github.com/simpleconv/simpleconv/internal/tensor"
)

// Add performs element-wise addition with NumPy-style broadcasting.
func (b *Backend) Add(a, other *tensor.RawTensor) (*tensor.RawTensor, error) {
	outShape, _, err := tensor.BroadcastShapes(a.Shape(), other.Shape())
	if err != nil {
		return nil, fmt.Errorf("webgpu: add: %w", err)
	}
	d := gridFor(outShape.NumElements())
	return b.run(kernel{
		label:  "add",
		code:   addShader(d, outShape, tensor.BroadcastStrides(a.Shape(), outShape), tensor.BroadcastStrides(other.Shape(), outShape)),
		inputs: []*tensor.RawTensor{a, other},
		shape:  outShape,
		groups: d,
	})
}

// ReLU computes max(x, 0) element-wise.
func (b *Backend) ReLU(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	d := gridFor(x.NumElements())
	return b.run(kernel{
		label:  "relu",
		code:   reluShader(d),
		inputs: []*tensor.RawTensor{x},
		shape:  x.Shape(),
		groups: d,
	})
}

// MatMul performs matrix multiplication: [M, K] @ [K, N] -> [M, N].
func (b *Backend) MatMul(a, other *tensor.RawTensor) (*tensor.RawTensor, error) {
	if a.Rank() != 2 || other.Rank() != 2 {
		return nil, fmt.Errorf("webgpu: matmul requires 2D tensors, got %v and %v", a.Shape(), other.Shape())
	}
	m, k := a.Shape()[0], a.Shape()[1]
	kAlt, n := other.Shape()[0], other.Shape()[1]
	if k != kAlt {
		return nil, fmt.Errorf("webgpu: matmul shape mismatch [%d,%d] @ [%d,%d]", m, k, kAlt, n)
	}
	d := gridFor(m * n)
	return b.run(kernel{
		label:  "matmul",
		code:   matmulShader(d, m, k, n, 0),
		inputs: []*tensor.RawTensor{a, other},
		shape:  tensor.Shape{m, n},
		groups: d,
	})
}

// BatchMatMul performs batched matrix multiplication over the leading
// dimensions of the right operand. A 2D left operand is shared by every batch.
func (b *Backend) BatchMatMul(a, other *tensor.RawTensor) (*tensor.RawTensor, error) {
	aShape, bShape := a.Shape(), other.Shape()
	ndim := len(bShape)
	if ndim < 3 {
		return nil, fmt.Errorf("webgpu: BatchMatMul: right operand must be at least 3D, got %dD", ndim)
	}
	shared := len(aShape) == 2
	if !shared {
		if len(aShape) != ndim {
			return nil, fmt.Errorf("webgpu: BatchMatMul: dimension mismatch, got %dD and %dD", len(aShape), ndim)
		}
		for i := 0; i < ndim-2; i++ {
			if aShape[i] != bShape[i] {
				return nil, fmt.Errorf("webgpu: BatchMatMul: batch dimension mismatch at dim %d: %d vs %d", i, aShape[i], bShape[i])
			}
		}
	}

	m, k := aShape[len(aShape)-2], aShape[len(aShape)-1]
	if k != bShape[ndim-2] {
		return nil, fmt.Errorf("webgpu: BatchMatMul: inner dimension mismatch: %d vs %d", k, bShape[ndim-2])
	}
	n := bShape[ndim-1]

	outShape := make(tensor.Shape, ndim)
	copy(outShape, bShape[:ndim-2])
	outShape[ndim-2] = m
	outShape[ndim-1] = n

	aStep := m * k
	if shared {
		aStep = 0
	}
	d := gridFor(outShape.NumElements())
	return b.run(kernel{
		label:  "batch_matmul",
		code:   matmulShader(d, m, k, n, aStep),
		inputs: []*tensor.RawTensor{a, other},
		shape:  outShape,
		groups: d,
	})
}

// Im2Col extracts sliding windows of a [N, C, H, W] input into columns.
func (b *Backend) Im2Col(x *tensor.RawTensor, kernelSize, stride int) (*tensor.RawTensor, error) {
	shape := x.Shape()
	if len(shape) != 4 {
		return nil, fmt.Errorf("webgpu: im2col: input must be 4D [N,C,H,W], got %dD", len(shape))
	}
	if kernelSize <= 0 || stride <= 0 {
		return nil, fmt.Errorf("webgpu: im2col: invalid kernel size %d / stride %d", kernelSize, stride)
	}
	n, c, h, w := shape[0], shape[1], shape[2], shape[3]
	if kernelSize > h || kernelSize > w {
		return nil, fmt.Errorf("webgpu: im2col: kernel size %d too large for input %dx%d", kernelSize, h, w)
	}
	hOut := (h-kernelSize)/stride + 1
	wOut := (w-kernelSize)/stride + 1

	outShape := tensor.Shape{n, c * kernelSize * kernelSize, hOut * wOut}
	d := gridFor(outShape.NumElements())
	return b.run(kernel{
		label:  "im2col",
		code:   im2colShader(d, c, h, w, kernelSize, stride, hOut, wOut),
		inputs: []*tensor.RawTensor{x},
		shape:  outShape,
		groups: d,
	})
}

// MaxDim computes the maximum along dim and removes that dimension.
func (b *Backend) MaxDim(x *tensor.RawTensor, dim int) (*tensor.RawTensor, error) {
	shape := x.Shape()
	ndim := len(shape)
	if dim < 0 {
		dim += ndim
	}
	if dim < 0 || dim >= ndim {
		return nil, fmt.Errorf("webgpu: maxdim: dimension %d out of range for tensor of rank %d", dim, ndim)
	}

	outShape := make(tensor.Shape, 0, ndim-1)
	outShape = append(outShape, shape[:dim]...)
	outShape = append(outShape, shape[dim+1:]...)

	inner := tensor.Shape(shape[dim+1:]).NumElements()
	d := gridFor(outShape.NumElements())
	return b.run(kernel{
		label:  "maxdim",
		code:   maxDimShader(d, shape[dim], inner),
		inputs: []*tensor.RawTensor{x},
		shape:  outShape,
		groups: d,
	})
}

// Reshape relabels the row-major data with a new shape. No kernel runs.
func (b *Backend) Reshape(x *tensor.RawTensor, newShape tensor.Shape) (*tensor.RawTensor, error) {
	if x.DType() != tensor.Float32 {
		return nil, fmt.Errorf("webgpu: reshape: only float32 is supported, got %s", x.DType())
	}
	reshaped, err := x.WithShape(newShape)
	if err != nil {
		return nil, fmt.Errorf("webgpu: reshape: %w", err)
	}
	return reshaped.OnDevice(tensor.WebGPU), nil
}

// Transpose permutes dimensions. With no axes the order is reversed.
func (b *Backend) Transpose(x *tensor.RawTensor, axes ...int) (*tensor.RawTensor, error) {
	shape := x.Shape()
	axes, err := tensor.NormalizeAxes(shape.Rank(), axes)
	if err != nil {
		return nil, fmt.Errorf("webgpu: transpose: %w", err)
	}

	outShape := make(tensor.Shape, len(axes))
	srcStrides := make([]int, len(axes))
	inStrides := x.Strides()
	for i, ax := range axes {
		outShape[i] = shape[ax]
		srcStrides[i] = inStrides[ax]
	}

	d := gridFor(outShape.NumElements())
	return b.run(kernel{
		label:  "transpose",
		code:   transposeShader(d, outShape, srcStrides),
		inputs: []*tensor.RawTensor{x},
		shape:  outShape,
		groups: d,
	})
}
