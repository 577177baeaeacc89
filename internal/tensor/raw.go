package tensor

import (
	"fmt"
	"strings"
	"unsafe"
)

// Device identifies where a tensor's bulk numeric work is dispatched.
type Device int

// Supported compute devices.
const (
	// CPU is local compute on the host.
	CPU Device = iota
	// WebGPU is accelerated compute through a WebGPU adapter.
	WebGPU
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	case WebGPU:
		return "WebGPU"
	default:
		return "Unknown"
	}
}

// ParseDevice maps a user-supplied name onto a Device.
// "cpu" and "local" select CPU; "webgpu", "gpu" and "accelerated" select WebGPU.
func ParseDevice(name string) (Device, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "cpu", "local":
		return CPU, nil
	case "webgpu", "gpu", "accelerated":
		return WebGPU, nil
	default:
		return CPU, fmt.Errorf("unknown device %q (want cpu or webgpu)", name)
	}
}

// RawTensor is the low-level tensor representation: a contiguous row-major
// host buffer plus shape, type and device metadata.
//
// Backends never write into their inputs; every operation returns a freshly
// allocated RawTensor.
type RawTensor struct {
	data   []byte
	shape  Shape
	stride []int
	dtype  DataType
	device Device
}

// NewRaw creates a new zero-filled RawTensor with the given shape and type.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	return &RawTensor{
		data:   make([]byte, shape.NumElements()*dtype.Size()),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
		device: device,
	}, nil
}

// FromBytes wraps an existing byte buffer. The buffer length must match the
// shape and dtype exactly; ownership passes to the returned tensor.
func FromBytes(data []byte, shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if want := shape.NumElements() * dtype.Size(); len(data) != want {
		return nil, fmt.Errorf("shape %v of %s requires %d bytes, got %d", shape, dtype, want, len(data))
	}
	return &RawTensor{
		data:   data,
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
		device: device,
	}, nil
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// Rank returns the number of dimensions.
func (r *RawTensor) Rank() int {
	return len(r.shape)
}

// Strides returns the tensor's memory strides.
func (r *RawTensor) Strides() []int {
	return r.stride
}

// DType returns the tensor's data type.
func (r *RawTensor) DType() DataType {
	return r.dtype
}

// Device returns the tensor's compute device.
func (r *RawTensor) Device() Device {
	return r.device
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// ByteSize returns the total memory size in bytes.
func (r *RawTensor) ByteSize() int {
	return len(r.data)
}

// Data returns the raw byte slice.
// WARNING: Direct access to underlying memory. Use with caution.
func (r *RawTensor) Data() []byte {
	return r.data
}

// AsFloat32 interprets the data as []float32.
// Panics if the tensor's dtype is not Float32.
func (r *RawTensor) AsFloat32() []float32 {
	if r.dtype != Float32 {
		panic(fmt.Sprintf("tensor dtype is %s, not float32", r.dtype))
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, length fixed by NumElements()
	return unsafe.Slice((*float32)(unsafe.Pointer(&r.data[0])), r.NumElements())
}

// AsFloat64 interprets the data as []float64.
// Panics if the tensor's dtype is not Float64.
func (r *RawTensor) AsFloat64() []float64 {
	if r.dtype != Float64 {
		panic(fmt.Sprintf("tensor dtype is %s, not float64", r.dtype))
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, length fixed by NumElements()
	return unsafe.Slice((*float64)(unsafe.Pointer(&r.data[0])), r.NumElements())
}

// Float64s returns a freshly allocated float64 copy of the elements,
// whatever the tensor's dtype.
func (r *RawTensor) Float64s() []float64 {
	out := make([]float64, r.NumElements())
	switch r.dtype {
	case Float32:
		for i, v := range r.AsFloat32() {
			out[i] = float64(v)
		}
	case Float64:
		copy(out, r.AsFloat64())
	default:
		panic(fmt.Sprintf("unsupported dtype %s", r.dtype))
	}
	return out
}

// Clone creates a deep copy of the RawTensor.
func (r *RawTensor) Clone() *RawTensor {
	data := make([]byte, len(r.data))
	copy(data, r.data)
	return &RawTensor{
		data:   data,
		shape:  r.shape.Clone(),
		stride: append([]int(nil), r.stride...),
		dtype:  r.dtype,
		device: r.device,
	}
}

// OnDevice returns a copy of the tensor tagged with the given device.
// When the tensor already lives there it is returned unchanged.
func (r *RawTensor) OnDevice(device Device) *RawTensor {
	if r.device == device {
		return r
	}
	moved := r.Clone()
	moved.device = device
	return moved
}

// WithShape returns a copy holding the same elements under a new shape.
// The element counts must match.
func (r *RawTensor) WithShape(shape Shape) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if shape.NumElements() != r.NumElements() {
		return nil, fmt.Errorf("incompatible shapes: %v -> %v (different number of elements)", r.shape, shape)
	}
	out := r.Clone()
	out.shape = shape.Clone()
	out.stride = shape.ComputeStrides()
	return out, nil
}

// String returns a short description of the tensor.
func (r *RawTensor) String() string {
	return fmt.Sprintf("RawTensor[%s]%v on %s", r.dtype, r.shape, r.device)
}
