package tensor

import (
	"fmt"
	"unsafe"
)

// Tensor is a typed view over a RawTensor.
//
// The device a tensor lives on travels with it; layers move operands to the
// device they are asked to compute on.
//
// Example:
//
//	x, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(x.At(1, 0)) // 3
type Tensor[T Float] struct {
	raw *RawTensor
}

// New wraps a RawTensor. Panics if the raw dtype does not match T.
func New[T Float](raw *RawTensor) *Tensor[T] {
	if want := dataTypeOf[T](); raw.DType() != want {
		panic(fmt.Sprintf("tensor dtype is %s, not %s", raw.DType(), want))
	}
	return &Tensor[T]{raw: raw}
}

// FromRaw wraps a RawTensor, reporting a dtype mismatch as an error.
func FromRaw[T Float](raw *RawTensor) (*Tensor[T], error) {
	if want := dataTypeOf[T](); raw.DType() != want {
		return nil, fmt.Errorf("tensor dtype is %s, not %s", raw.DType(), want)
	}
	return &Tensor[T]{raw: raw}, nil
}

// FromSlice creates a CPU tensor from a Go slice.
// The slice is copied into the tensor's memory.
func FromSlice[T Float](data []T, shape Shape) (*Tensor[T], error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}

	raw, err := NewRaw(shape, dataTypeOf[T](), CPU)
	if err != nil {
		return nil, err
	}

	t := &Tensor[T]{raw: raw}
	copy(t.Data(), data)
	return t, nil
}

// Shape returns the tensor's shape.
func (t *Tensor[T]) Shape() Shape {
	return t.raw.Shape()
}

// Rank returns the number of dimensions.
func (t *Tensor[T]) Rank() int {
	return t.raw.Rank()
}

// DType returns the tensor's data type.
func (t *Tensor[T]) DType() DataType {
	return t.raw.DType()
}

// Device returns the tensor's compute device.
func (t *Tensor[T]) Device() Device {
	return t.raw.Device()
}

// NumElements returns the total number of elements.
func (t *Tensor[T]) NumElements() int {
	return t.raw.NumElements()
}

// Raw returns the underlying RawTensor.
func (t *Tensor[T]) Raw() *RawTensor {
	return t.raw
}

// Data returns a typed slice view of the tensor's data.
// The slice directly accesses the underlying memory (zero-copy).
//
// WARNING: Modifications to the returned slice will modify the tensor.
func (t *Tensor[T]) Data() []T {
	data := t.raw.Data()
	//nolint:gosec // unsafe.Slice for zero-copy access, dtype checked at construction
	return unsafe.Slice((*T)(unsafe.Pointer(&data[0])), t.raw.NumElements())
}

// At returns the element at the given indices.
// Panics if indices are out of bounds.
func (t *Tensor[T]) At(indices ...int) T {
	return t.Data()[t.offset(indices)]
}

// Set sets the element at the given indices.
// Panics if indices are out of bounds.
func (t *Tensor[T]) Set(value T, indices ...int) {
	t.Data()[t.offset(indices)] = value
}

func (t *Tensor[T]) offset(indices []int) int {
	shape := t.Shape()
	if len(indices) != len(shape) {
		panic(fmt.Sprintf("expected %d indices, got %d", len(shape), len(indices)))
	}

	offset := 0
	strides := t.raw.Strides()
	for i, idx := range indices {
		if idx < 0 || idx >= shape[i] {
			panic(fmt.Sprintf("index %d out of bounds for dimension %d (size %d)", idx, i, shape[i]))
		}
		offset += idx * strides[i]
	}
	return offset
}

// String returns a human-readable representation of the tensor.
func (t *Tensor[T]) String() string {
	return fmt.Sprintf("Tensor[%s]%v on %s", t.raw.DType(), t.raw.Shape(), t.raw.Device())
}

// Clone creates a deep copy of the tensor.
func (t *Tensor[T]) Clone() *Tensor[T] {
	return &Tensor[T]{raw: t.raw.Clone()}
}
