package tensor

import "fmt"

// Shape represents the dimensions of a tensor.
type Shape []int

// NumElements returns the total number of elements in the tensor.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 1 // Scalar has 1 element
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Rank returns the number of dimensions.
func (s Shape) Rank() int {
	return len(s)
}

// Validate checks if the shape is valid (all dimensions > 0).
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates row-major strides for the shape.
// stride[i] is the product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// BroadcastShapes implements NumPy-style broadcasting rules.
//
// Shapes are compared right to left; two dimensions are compatible when they
// are equal or one of them is 1, and missing leading dimensions count as 1.
//
// Returns the broadcast shape, whether broadcasting is needed, and an error
// if the shapes are incompatible.
//
//	(3, 1) + (3, 5) → (3, 5), true, nil
//	(2, 4, 9) + (1, 4, 1) → (2, 4, 9), true, nil
//	(3, 4) + (3, 5) → nil, false, error
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	maxLen := max(len(a), len(b))
	result := make(Shape, maxLen)
	needsBroadcast := len(a) != len(b)

	for i := 0; i < maxLen; i++ {
		aDim := dimFromRight(a, i)
		bDim := dimFromRight(b, i)

		switch {
		case aDim == bDim:
			result[maxLen-1-i] = aDim
		case aDim == 1:
			result[maxLen-1-i] = bDim
			needsBroadcast = true
		case bDim == 1:
			result[maxLen-1-i] = aDim
			needsBroadcast = true
		default:
			return nil, false, fmt.Errorf("shapes not compatible for broadcasting: %v vs %v (dimension %d: %d vs %d)",
				a, b, maxLen-1-i, aDim, bDim)
		}
	}

	return result, needsBroadcast, nil
}

// BroadcastStrides returns strides that address a tensor of shape src as if it
// had shape dst. Broadcast dimensions get stride 0. dst must be a valid
// broadcast target of src.
func BroadcastStrides(src, dst Shape) []int {
	srcStrides := src.ComputeStrides()
	out := make([]int, len(dst))
	offset := len(dst) - len(src)
	for i := range dst {
		j := i - offset
		if j < 0 || src[j] == 1 {
			continue
		}
		out[i] = srcStrides[j]
	}
	return out
}

// dimFromRight returns the i-th dimension counted from the end, or 1 when the
// shape has fewer dimensions.
func dimFromRight(s Shape, i int) int {
	idx := len(s) - 1 - i
	if idx < 0 {
		return 1
	}
	return s[idx]
}

// NormalizeAxes validates a permutation of ndim axes. An empty permutation
// means reversed order.
func NormalizeAxes(ndim int, axes []int) ([]int, error) {
	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
		return axes, nil
	}

	if len(axes) != ndim {
		return nil, fmt.Errorf("axes length %d != ndim %d", len(axes), ndim)
	}
	seen := make([]bool, ndim)
	for _, ax := range axes {
		if ax < 0 || ax >= ndim {
			return nil, fmt.Errorf("invalid axis %d for %dD tensor", ax, ndim)
		}
		if seen[ax] {
			return nil, fmt.Errorf("duplicate axis %d", ax)
		}
		seen[ax] = true
	}
	return axes, nil
}
