package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/blas/blas64"

	"github.com/simpleconv/simpleconv/internal/parallel"
	"github.com/simpleconv/simpleconv/internal/tensor"
)

// MatMul performs matrix multiplication.
// For 2D tensors: (M, K) @ (K, N) -> (M, N)
// Delegates to gonum's SGEMM/DGEMM.
func (cpu *CPUBackend) MatMul(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	if err := sameDType("matmul", a, b); err != nil {
		return nil, err
	}
	aShape := a.Shape()
	bShape := b.Shape()

	if len(aShape) != 2 || len(bShape) != 2 {
		return nil, fmt.Errorf("matmul: only 2D tensors supported, got %dD and %dD", len(aShape), len(bShape))
	}

	m, k := aShape[0], aShape[1]
	kAlt, n := bShape[0], bShape[1]
	if k != kAlt {
		return nil, fmt.Errorf("matmul: shape mismatch [%d,%d] @ [%d,%d]", m, k, kAlt, n)
	}

	result, err := cpu.newResult("matmul", tensor.Shape{m, n}, a.DType())
	if err != nil {
		return nil, err
	}

	switch a.DType() {
	case tensor.Float32:
		gemmFloat32(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), m, k, n)
	case tensor.Float64:
		gemmFloat64(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), m, k, n)
	default:
		return nil, unsupported("matmul", a.DType())
	}
	return result, nil
}

// BatchMatMul performs batched matrix multiplication.
//
// For 3D: [B, M, K] @ [B, K, N] -> [B, M, N]
// For 4D: [B, H, M, K] @ [B, H, K, N] -> [B, H, M, N]
//
// A 2D left operand [M, K] is shared by every matrix of the right operand,
// which is how a flattened convolution kernel meets a batch of patch matrices.
func (cpu *CPUBackend) BatchMatMul(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	if err := sameDType("BatchMatMul", a, b); err != nil {
		return nil, err
	}
	aShape := a.Shape()
	bShape := b.Shape()
	ndim := len(bShape)

	if ndim < 3 {
		return nil, fmt.Errorf("BatchMatMul: right operand must be at least 3D, got %dD", ndim)
	}
	shared := len(aShape) == 2
	if !shared && len(aShape) != ndim {
		return nil, fmt.Errorf("BatchMatMul: dimension mismatch, got %dD and %dD", len(aShape), ndim)
	}
	if !shared {
		for i := 0; i < ndim-2; i++ {
			if aShape[i] != bShape[i] {
				return nil, fmt.Errorf("BatchMatMul: batch dimension mismatch at dim %d: %d vs %d", i, aShape[i], bShape[i])
			}
		}
	}

	m := aShape[len(aShape)-2]
	k1 := aShape[len(aShape)-1]
	k2 := bShape[ndim-2]
	n := bShape[ndim-1]
	if k1 != k2 {
		return nil, fmt.Errorf("BatchMatMul: inner dimension mismatch: %d vs %d", k1, k2)
	}

	batchSize := 1
	for i := 0; i < ndim-2; i++ {
		batchSize *= bShape[i]
	}

	// Output shape = batch dims + [M, N]
	outShape := make(tensor.Shape, ndim)
	copy(outShape, bShape[:ndim-2])
	outShape[ndim-2] = m
	outShape[ndim-1] = n

	result, err := cpu.newResult("BatchMatMul", outShape, a.DType())
	if err != nil {
		return nil, err
	}

	aStep := m * k1
	if shared {
		aStep = 0
	}

	switch a.DType() {
	case tensor.Float32:
		batchGemm(cpu.pool, gemmFloat32, result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), batchSize, aStep, m, k1, n)
	case tensor.Float64:
		batchGemm(cpu.pool, gemmFloat64, result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), batchSize, aStep, m, k1, n)
	default:
		return nil, unsupported("BatchMatMul", a.DType())
	}
	return result, nil
}

// batchGemm runs one gemm per batch, spreading batches over the worker pool.
// Each batch writes a disjoint slice of c.
func batchGemm[T tensor.Float](pool parallel.Config, gemm func(c, a, b []T, m, k, n int), c, a, b []T, batches, aStep, m, k, n int) {
	pool.For(batches, parallel.ChunkFor(m*k*n), func(start, end int) {
		for batch := start; batch < end; batch++ {
			gemm(c[batch*m*n:(batch+1)*m*n], a[batch*aStep:batch*aStep+m*k], b[batch*k*n:(batch+1)*k*n], m, k, n)
		}
	})
}

// gemmFloat32 computes c = a @ b for row-major a [m, k] and b [k, n].
func gemmFloat32(c, a, b []float32, m, k, n int) {
	blas32.Gemm(blas.NoTrans, blas.NoTrans, 1,
		blas32.General{Rows: m, Cols: k, Stride: k, Data: a},
		blas32.General{Rows: k, Cols: n, Stride: n, Data: b},
		0,
		blas32.General{Rows: m, Cols: n, Stride: n, Data: c},
	)
}

// gemmFloat64 computes c = a @ b for row-major a [m, k] and b [k, n].
func gemmFloat64(c, a, b []float64, m, k, n int) {
	blas64.Gemm(blas.NoTrans, blas.NoTrans, 1,
		blas64.General{Rows: m, Cols: k, Stride: k, Data: a},
		blas64.General{Rows: k, Cols: n, Stride: n, Data: b},
		0,
		blas64.General{Rows: m, Cols: n, Stride: n, Data: c},
	)
}
