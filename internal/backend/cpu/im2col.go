package cpu

import (
	"fmt"

	"github.com/simpleconv/simpleconv/internal/parallel"
	"github.com/simpleconv/simpleconv/internal/tensor"
)

// Im2Col transforms sliding windows of the input into columns.
//
// Input:  [N, C, H, W]
// Output: [N, C*K*K, H_out*W_out] with H_out = (H-K)/stride + 1
//
// Column i*W_out + j of batch n holds the window whose top-left corner is
// (i*stride, j*stride), flattened in (C, K_row, K_col) order. That ordering
// matches a row-major [C_out, C, K, K] kernel viewed as [C_out, C*K*K], so a
// plain matrix product of the two yields the convolution.
//
// Reference: "High Performance Convolutional Neural Networks for Document Processing"
// (Chellapilla et al., 2006).
func (cpu *CPUBackend) Im2Col(x *tensor.RawTensor, kernelSize, stride int) (*tensor.RawTensor, error) {
	shape := x.Shape()
	if len(shape) != 4 {
		return nil, fmt.Errorf("im2col: input must be 4D [N,C,H,W], got %dD", len(shape))
	}
	if kernelSize <= 0 || stride <= 0 {
		return nil, fmt.Errorf("im2col: invalid kernel size %d / stride %d", kernelSize, stride)
	}

	N, C, H, W := shape[0], shape[1], shape[2], shape[3]
	if kernelSize > H || kernelSize > W {
		return nil, fmt.Errorf("im2col: kernel size %d too large for input %dx%d", kernelSize, H, W)
	}
	HOut := (H-kernelSize)/stride + 1
	WOut := (W-kernelSize)/stride + 1

	result, err := cpu.newResult("im2col", tensor.Shape{N, C * kernelSize * kernelSize, HOut * WOut}, x.DType())
	if err != nil {
		return nil, err
	}

	g := patchGeometry{N: N, C: C, H: H, W: W, K: kernelSize, Stride: stride, HOut: HOut, WOut: WOut}
	switch x.DType() {
	case tensor.Float32:
		im2col(result.AsFloat32(), x.AsFloat32(), g, cpu.pool)
	case tensor.Float64:
		im2col(result.AsFloat64(), x.AsFloat64(), g, cpu.pool)
	default:
		return nil, unsupported("im2col", x.DType())
	}
	return result, nil
}

// patchGeometry carries the dimensions shared by the im2col loops.
type patchGeometry struct {
	N, C, H, W int
	K, Stride  int
	HOut, WOut int
}

// im2col fills cols one (batch, channel) plane at a time. Plane p owns rows
// [p*K*K, (p+1)*K*K) of the flattened [N*C*K*K, numCols] output.
func im2col[T tensor.Float](cols, input []T, g patchGeometry, pool parallel.Config) {
	numCols := g.HOut * g.WOut
	kk := g.K * g.K
	planeSize := g.H * g.W

	pool.For(g.N*g.C, parallel.ChunkFor(kk*numCols), func(start, end int) {
		for p := start; p < end; p++ {
			plane := input[p*planeSize : (p+1)*planeSize]
			dst := cols[p*kk*numCols : (p+1)*kk*numCols]
			row := 0
			for kh := 0; kh < g.K; kh++ {
				for kw := 0; kw < g.K; kw++ {
					out := dst[row*numCols : (row+1)*numCols]
					for i := 0; i < g.HOut; i++ {
						rowData := plane[(i*g.Stride+kh)*g.W:]
						for j := 0; j < g.WOut; j++ {
							// Linear column index over the output grid.
							out[i*g.WOut+j] = rowData[j*g.Stride+kw]
						}
					}
					row++
				}
			}
		}
	})
}
