package tensor

// Backend defines the operations a compute device must provide to run the
// layers. Every method returns a freshly allocated tensor on the backend's
// device and never mutates its inputs.
//
// Implementations:
//   - internal/backend/cpu: pure Go, gonum BLAS for matrix products
//   - internal/backend/webgpu: WGSL compute shaders (float32 only)
type Backend interface {
	// Add performs element-wise addition with NumPy-style broadcasting.
	Add(a, b *RawTensor) (*RawTensor, error)

	// MatMul multiplies two matrices: [M, K] @ [K, N] -> [M, N].
	MatMul(a, b *RawTensor) (*RawTensor, error)

	// BatchMatMul performs batched matrix multiplication.
	// For 3D: [B, M, K] @ [B, K, N] -> [B, M, N]
	// A 2D left operand [M, K] is broadcast over the batch of a 3D right operand.
	BatchMatMul(a, b *RawTensor) (*RawTensor, error)

	// Im2Col extracts sliding square windows of a [N, C, H, W] input into
	// columns: [N, C*K*K, H_out*W_out]. Column i*W_out+j holds the window whose
	// top-left corner is (i*stride, j*stride), flattened in (C, K_row, K_col) order.
	Im2Col(x *RawTensor, kernelSize, stride int) (*RawTensor, error)

	// MaxDim reduces along dim with max, dropping that dimension.
	MaxDim(x *RawTensor, dim int) (*RawTensor, error)

	// ReLU computes max(x, 0) element-wise.
	ReLU(x *RawTensor) (*RawTensor, error)

	// Reshape returns a copy with the same row-major data and a new shape.
	Reshape(x *RawTensor, newShape Shape) (*RawTensor, error)

	// Transpose permutes dimensions. With no axes the order is reversed.
	Transpose(x *RawTensor, axes ...int) (*RawTensor, error)

	// Metadata
	Name() string
	Device() Device
}
