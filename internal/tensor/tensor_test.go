package tensor

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataType(t *testing.T) {
	assert.Equal(t, 4, Float32.Size())
	assert.Equal(t, 8, Float64.Size())
	assert.Equal(t, "float32", Float32.String())
	assert.Equal(t, "float64", Float64.String())
	assert.Equal(t, Float32, dataTypeOf[float32]())
	assert.Equal(t, Float64, dataTypeOf[float64]())
}

func TestShapeNumElements(t *testing.T) {
	tests := []struct {
		shape Shape
		want  int
	}{
		{Shape{}, 1},
		{Shape{5}, 5},
		{Shape{2, 3}, 6},
		{Shape{2, 3, 5, 5}, 150},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.shape.NumElements(), "shape %v", tt.shape)
	}
}

func TestShapeValidate(t *testing.T) {
	require.NoError(t, Shape{1, 2, 3}.Validate())
	require.Error(t, Shape{1, 0, 3}.Validate())
	require.Error(t, Shape{-1}.Validate())
}

func TestComputeStrides(t *testing.T) {
	assert.Equal(t, []int{60, 20, 5, 1}, Shape{2, 3, 4, 5}.ComputeStrides())
	assert.Equal(t, []int{1}, Shape{7}.ComputeStrides())
	assert.Empty(t, Shape{}.ComputeStrides())
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		name      string
		a, b      Shape
		want      Shape
		broadcast bool
		wantErr   bool
	}{
		{"same", Shape{3, 5}, Shape{3, 5}, Shape{3, 5}, false, false},
		{"column", Shape{3, 1}, Shape{3, 5}, Shape{3, 5}, true, false},
		{"bias", Shape{2, 4, 9}, Shape{1, 4, 1}, Shape{2, 4, 9}, true, false},
		{"rank", Shape{2, 4}, Shape{4}, Shape{2, 4}, true, false},
		{"incompatible", Shape{3, 4}, Shape{3, 5}, nil, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, broadcast, err := BroadcastShapes(tt.a, tt.b)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
			assert.Equal(t, tt.broadcast, broadcast)
		})
	}
}

func TestBroadcastStrides(t *testing.T) {
	assert.Equal(t, []int{0, 1, 0}, BroadcastStrides(Shape{1, 4, 1}, Shape{2, 4, 9}))
	assert.Equal(t, []int{0, 1}, BroadcastStrides(Shape{4}, Shape{2, 4}))
	assert.Equal(t, []int{4, 1}, BroadcastStrides(Shape{2, 4}, Shape{2, 4}))
}

func TestNormalizeAxes(t *testing.T) {
	axes, err := NormalizeAxes(3, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1, 0}, axes)

	axes, err = NormalizeAxes(3, []int{1, 0, 2})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 2}, axes)

	_, err = NormalizeAxes(3, []int{0, 1})
	require.Error(t, err)
	_, err = NormalizeAxes(2, []int{0, 0})
	require.Error(t, err)
	_, err = NormalizeAxes(2, []int{0, -1})
	require.Error(t, err)
}

func TestParseDevice(t *testing.T) {
	for _, name := range []string{"cpu", "CPU", " local "} {
		d, err := ParseDevice(name)
		require.NoError(t, err)
		assert.Equal(t, CPU, d)
	}
	for _, name := range []string{"webgpu", "gpu", "Accelerated"} {
		d, err := ParseDevice(name)
		require.NoError(t, err)
		assert.Equal(t, WebGPU, d)
	}
	_, err := ParseDevice("cuda")
	require.Error(t, err)
}

func TestNewRaw(t *testing.T) {
	raw, err := NewRaw(Shape{2, 3}, Float32, CPU)
	require.NoError(t, err)
	assert.Equal(t, 6, raw.NumElements())
	assert.Equal(t, 24, raw.ByteSize())
	assert.Equal(t, []int{3, 1}, raw.Strides())
	for _, v := range raw.AsFloat32() {
		assert.Zero(t, v)
	}

	_, err = NewRaw(Shape{2, 0}, Float32, CPU)
	require.Error(t, err)
}

func TestFromBytes(t *testing.T) {
	_, err := FromBytes(make([]byte, 12), Shape{2, 2}, Float32, CPU)
	require.Error(t, err)

	raw, err := FromBytes(make([]byte, 16), Shape{2, 2}, Float32, WebGPU)
	require.NoError(t, err)
	assert.Equal(t, WebGPU, raw.Device())
}

func TestRawTensorCloneIsDeep(t *testing.T) {
	raw, err := NewRaw(Shape{4}, Float64, CPU)
	require.NoError(t, err)
	raw.AsFloat64()[0] = 7

	clone := raw.Clone()
	clone.AsFloat64()[0] = 9

	assert.InDelta(t, 7.0, raw.AsFloat64()[0], 0)
	assert.InDelta(t, 9.0, clone.AsFloat64()[0], 0)
}

func TestRawTensorOnDevice(t *testing.T) {
	raw, err := NewRaw(Shape{2}, Float32, CPU)
	require.NoError(t, err)

	assert.Same(t, raw, raw.OnDevice(CPU))

	moved := raw.OnDevice(WebGPU)
	assert.NotSame(t, raw, moved)
	assert.Equal(t, WebGPU, moved.Device())
	assert.Equal(t, CPU, raw.Device())
}

func TestRawTensorWithShape(t *testing.T) {
	x := Arange[float32](Shape{2, 3}, 0)
	r, err := x.Raw().WithShape(Shape{3, 2})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, r.Strides())
	assert.Equal(t, x.Data(), r.AsFloat32())

	_, err = x.Raw().WithShape(Shape{4, 2})
	require.Error(t, err)
}

func TestFloat64s(t *testing.T) {
	x, err := FromSlice([]float32{1.5, -2}, Shape{2})
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, -2}, x.Raw().Float64s())
}

func TestFromSlice(t *testing.T) {
	x, err := FromSlice([]float64{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	require.NoError(t, err)
	assert.Equal(t, CPU, x.Device())
	assert.Equal(t, Float64, x.DType())
	assert.InDelta(t, 6.0, x.At(1, 2), 0)

	_, err = FromSlice([]float64{1, 2, 3}, Shape{2, 2})
	require.Error(t, err)
}

func TestFromRaw(t *testing.T) {
	raw, err := NewRaw(Shape{2}, Float32, CPU)
	require.NoError(t, err)

	_, err = FromRaw[float64](raw)
	require.Error(t, err)

	x, err := FromRaw[float32](raw)
	require.NoError(t, err)
	assert.Len(t, x.Data(), 2)

	assert.Panics(t, func() { New[float64](raw) })
}

func TestTensorAtSet(t *testing.T) {
	x := Zeros[float32](Shape{2, 2, 2})
	x.Set(5, 1, 0, 1)
	assert.InDelta(t, float32(5), x.At(1, 0, 1), 0)
	assert.InDelta(t, float32(5), x.Data()[5], 0)

	assert.Panics(t, func() { x.At(2, 0, 0) })
	assert.Panics(t, func() { x.At(0, 0) })
}

func TestCreation(t *testing.T) {
	full := Full[float64](Shape{3}, 2.5)
	assert.Equal(t, []float64{2.5, 2.5, 2.5}, full.Data())

	seq := Arange[float32](Shape{2, 2}, 1)
	assert.Equal(t, []float32{1, 2, 3, 4}, seq.Data())

	rng := rand.New(rand.NewSource(1))
	u := Rand[float64](Shape{100}, -1, 1, rng)
	for _, v := range u.Data() {
		assert.GreaterOrEqual(t, v, -1.0)
		assert.Less(t, v, 1.0)
	}

	a := Randn[float32](Shape{8}, rand.New(rand.NewSource(7)))
	b := Randn[float32](Shape{8}, rand.New(rand.NewSource(7)))
	assert.Equal(t, a.Data(), b.Data())
}

func TestTensorString(t *testing.T) {
	x := Zeros[float32](Shape{2, 3})
	assert.Equal(t, "Tensor[float32][2 3] on CPU", x.String())
}
