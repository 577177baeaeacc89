package layers

import (
	"github.com/simpleconv/simpleconv/internal/device"
	"github.com/simpleconv/simpleconv/internal/tensor"
)

// The scalar references evaluate each layer's definition with nested loops
// over host memory. They share validation with the vectorized forms; dev only
// selects where the result is placed.

// Conv2DScalar is the direct-definition reference for Conv2D.
func Conv2DScalar[T tensor.Float](x, w, b *tensor.Tensor[T], dev tensor.Device) (*tensor.Tensor[T], error) {
	const op = "conv2d scalar"

	g, err := validateConv(op, x.Shape(), w.Shape(), b.Shape())
	if err != nil {
		return nil, err
	}

	xd, wd, bd := x.Data(), w.Data(), b.Data()
	out := make([]T, g.N*g.COut*g.SOut*g.SOut)
	idx := 0
	for n := 0; n < g.N; n++ {
		for co := 0; co < g.COut; co++ {
			for i := 0; i < g.SOut; i++ {
				for j := 0; j < g.SOut; j++ {
					sum := bd[co]
					for ci := 0; ci < g.CIn; ci++ {
						for kh := 0; kh < g.K; kh++ {
							for kw := 0; kw < g.K; kw++ {
								xv := xd[((n*g.CIn+ci)*g.SIn+i+kh)*g.SIn+j+kw]
								wv := wd[((co*g.CIn+ci)*g.K+kh)*g.K+kw]
								sum += xv * wv
							}
						}
					}
					out[idx] = sum
					idx++
				}
			}
		}
	}
	return placeResult(op, out, tensor.Shape{g.N, g.COut, g.SOut, g.SOut}, dev)
}

// Pool2DScalar is the direct-definition reference for Pool2D.
func Pool2DScalar[T tensor.Float](x *tensor.Tensor[T], dev tensor.Device) (*tensor.Tensor[T], error) {
	const op = "pool2d scalar"

	shape := x.Shape()
	if err := validatePool(op, shape); err != nil {
		return nil, err
	}
	n, c, s := shape[0], shape[1], shape[2]
	sOut := s / 2

	xd := x.Data()
	out := make([]T, n*c*sOut*sOut)
	idx := 0
	for plane := 0; plane < n*c; plane++ {
		base := plane * s * s
		for i := 0; i < sOut; i++ {
			for j := 0; j < sOut; j++ {
				top := base + 2*i*s + 2*j
				m := xd[top]
				for _, v := range [3]T{xd[top+1], xd[top+s], xd[top+s+1]} {
					if v > m {
						m = v
					}
				}
				out[idx] = m
				idx++
			}
		}
	}
	return placeResult(op, out, tensor.Shape{n, c, sOut, sOut}, dev)
}

// ReLUScalar is the direct-definition reference for ReLU.
func ReLUScalar[T tensor.Float](x *tensor.Tensor[T], dev tensor.Device) (*tensor.Tensor[T], error) {
	xd := x.Data()
	out := make([]T, len(xd))
	for i, v := range xd {
		if v > 0 {
			out[i] = v
		}
	}
	return placeResult("relu scalar", out, x.Shape().Clone(), dev)
}

// FlattenScalar is the direct-definition reference for Flatten.
func FlattenScalar[T tensor.Float](x *tensor.Tensor[T], dev tensor.Device) (*tensor.Tensor[T], error) {
	const op = "flatten scalar"

	shape := x.Shape()
	if err := validateFlatten(op, shape); err != nil {
		return nil, err
	}
	n, c, h, w := shape[0], shape[1], shape[2], shape[3]

	out := make([]T, n*c*h*w)
	for b := 0; b < n; b++ {
		for ch := 0; ch < c; ch++ {
			for i := 0; i < h; i++ {
				for j := 0; j < w; j++ {
					out[b*c*h*w+(ch*h+i)*w+j] = x.At(b, ch, i, j)
				}
			}
		}
	}
	return placeResult(op, out, tensor.Shape{n, c * h * w}, dev)
}

// FullyConnectedScalar is the direct-definition reference for FullyConnected.
func FullyConnectedScalar[T tensor.Float](x, w, b *tensor.Tensor[T], dev tensor.Device) (*tensor.Tensor[T], error) {
	const op = "fully connected scalar"

	if err := validateLinear(op, x.Shape(), w.Shape(), b.Shape()); err != nil {
		return nil, err
	}
	n, cIn, cOut := x.Shape()[0], x.Shape()[1], w.Shape()[0]

	xd, wd, bd := x.Data(), w.Data(), b.Data()
	out := make([]T, n*cOut)
	for row := 0; row < n; row++ {
		for co := 0; co < cOut; co++ {
			sum := bd[co]
			for ci := 0; ci < cIn; ci++ {
				sum += xd[row*cIn+ci] * wd[co*cIn+ci]
			}
			out[row*cOut+co] = sum
		}
	}
	return placeResult(op, out, tensor.Shape{n, cOut}, dev)
}

func placeResult[T tensor.Float](op string, data []T, shape tensor.Shape, dev tensor.Device) (*tensor.Tensor[T], error) {
	host, err := tensor.FromSlice(data, shape)
	if err != nil {
		return nil, opError(op, err)
	}
	placed, err := device.Place(host.Raw(), dev)
	return wrap[T](op, placed, err)
}
