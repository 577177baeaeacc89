package tensor

import "math/rand"

// Zeros creates a CPU tensor filled with zeros.
//
// Example:
//
//	t := tensor.Zeros[float32](tensor.Shape{3, 4})
func Zeros[T Float](shape Shape) *Tensor[T] {
	raw, err := NewRaw(shape, dataTypeOf[T](), CPU)
	if err != nil {
		panic(err) // Shape validation should prevent this
	}
	return &Tensor[T]{raw: raw}
}

// Full creates a CPU tensor filled with a specific value.
func Full[T Float](shape Shape, value T) *Tensor[T] {
	t := Zeros[T](shape)
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t
}

// Arange creates a CPU tensor of the given shape holding start, start+1, ...
// in row-major order. Handy for inputs whose elements must all be distinct.
//
// Example:
//
//	t := tensor.Arange[float64](tensor.Shape{1, 1, 4, 4}, 1) // 1..16
func Arange[T Float](shape Shape, start T) *Tensor[T] {
	t := Zeros[T](shape)
	data := t.Data()
	for i := range data {
		data[i] = start + T(i)
	}
	return t
}

// Randn creates a CPU tensor with values drawn from a standard normal
// distribution using the supplied source.
// Note: Uses math/rand (not crypto/rand) - appropriate for ML/statistical purposes.
//
// Example:
//
//	rng := rand.New(rand.NewSource(42))
//	t := tensor.Randn[float32](tensor.Shape{2, 3, 5, 5}, rng)
func Randn[T Float](shape Shape, rng *rand.Rand) *Tensor[T] {
	t := Zeros[T](shape)
	data := t.Data()
	for i := range data {
		data[i] = T(rng.NormFloat64())
	}
	return t
}

// Rand creates a CPU tensor with values uniformly distributed in [lo, hi).
func Rand[T Float](shape Shape, lo, hi T, rng *rand.Rand) *Tensor[T] {
	t := Zeros[T](shape)
	data := t.Data()
	span := float64(hi - lo)
	for i := range data {
		data[i] = lo + T(rng.Float64()*span)
	}
	return t
}
