package layers

import "github.com/simpleconv/simpleconv/internal/tensor"

// convGeometry holds the dimensions of a validated convolution.
type convGeometry struct {
	N, CIn, SIn int
	COut, K     int
	SOut        int
}

func validateConv(op string, x, w, b tensor.Shape) (convGeometry, error) {
	if len(x) != 4 {
		return convGeometry{}, shapeError(op, "input must be 4D [N,C_in,S,S], got %v", x)
	}
	if len(w) != 4 {
		return convGeometry{}, shapeError(op, "weight must be 4D [C_out,C_in,K,K], got %v", w)
	}
	if len(b) != 1 {
		return convGeometry{}, shapeError(op, "bias must be 1D [C_out], got %v", b)
	}
	if x[2] != x[3] {
		return convGeometry{}, shapeError(op, "input must be spatially square, got %dx%d", x[2], x[3])
	}
	if w[2] != w[3] {
		return convGeometry{}, shapeError(op, "kernel must be square, got %dx%d", w[2], w[3])
	}
	if x[1] != w[1] {
		return convGeometry{}, shapeError(op, "input has %d channels, weight expects %d", x[1], w[1])
	}
	if b[0] != w[0] {
		return convGeometry{}, shapeError(op, "bias length %d != output channels %d", b[0], w[0])
	}
	if w[2] > x[2] {
		return convGeometry{}, shapeError(op, "kernel %d larger than input %d", w[2], x[2])
	}
	return convGeometry{
		N: x[0], CIn: x[1], SIn: x[2],
		COut: w[0], K: w[2],
		SOut: x[2] - w[2] + 1,
	}, nil
}

func validatePool(op string, x tensor.Shape) error {
	if len(x) != 4 {
		return shapeError(op, "input must be 4D [N,C,S,S], got %v", x)
	}
	if x[2] != x[3] {
		return shapeError(op, "input must be spatially square, got %dx%d", x[2], x[3])
	}
	if x[2]%2 != 0 {
		return shapeError(op, "spatial size %d is not even", x[2])
	}
	return nil
}

func validateFlatten(op string, x tensor.Shape) error {
	if len(x) != 4 {
		return shapeError(op, "input must be 4D [N,C,S,S], got %v", x)
	}
	return nil
}

func validateLinear(op string, x, w, b tensor.Shape) error {
	if len(x) != 2 {
		return shapeError(op, "input must be 2D [N,C_in], got %v", x)
	}
	if len(w) != 2 {
		return shapeError(op, "weight must be 2D [C_out,C_in], got %v", w)
	}
	if len(b) != 1 {
		return shapeError(op, "bias must be 1D [C_out], got %v", b)
	}
	if x[1] != w[1] {
		return shapeError(op, "input has %d features, weight expects %d", x[1], w[1])
	}
	if b[0] != w[0] {
		return shapeError(op, "bias length %d != output features %d", b[0], w[0])
	}
	return nil
}
