package main

import (
	"fmt"
	"math/rand"

	"github.com/simpleconv/simpleconv/internal/layers"
	"github.com/simpleconv/simpleconv/internal/tensor"
)

// runComparisons drives a conv -> relu -> pool -> flatten -> fc pipeline,
// comparing each stage on its own inputs so that one disagreeing layer does
// not contaminate the next.
func runComparisons[T tensor.Float](cfg compareConfig) ([]layers.Comparison, error) {
	rng := rand.New(rand.NewSource(cfg.seed))
	dev := cfg.device

	x := tensor.Randn[T](tensor.Shape{cfg.batch, cfg.channels, cfg.size, cfg.size}, rng)
	cw := tensor.Randn[T](tensor.Shape{cfg.filters, cfg.channels, cfg.kernel, cfg.kernel}, rng)
	cb := tensor.Randn[T](tensor.Shape{cfg.filters}, rng)

	var results []layers.Comparison
	add := func(name string, vec, ref func() (*tensor.Tensor[T], error)) (*tensor.Tensor[T], error) {
		var refOut *tensor.Tensor[T]
		cmp, err := layers.Compare(name, vec, func() (*tensor.Tensor[T], error) {
			out, err := ref()
			refOut = out
			return out, err
		})
		if err != nil {
			return nil, err
		}
		results = append(results, cmp)
		// The reference output feeds the next stage.
		return refOut, nil
	}

	conv, err := add("conv2d",
		func() (*tensor.Tensor[T], error) { return layers.Conv2D(x, cw, cb, dev) },
		func() (*tensor.Tensor[T], error) { return layers.Conv2DScalar(x, cw, cb, dev) })
	if err != nil {
		return nil, err
	}

	act, err := add("relu",
		func() (*tensor.Tensor[T], error) { return layers.ReLU(conv, dev) },
		func() (*tensor.Tensor[T], error) { return layers.ReLUScalar(conv, dev) })
	if err != nil {
		return nil, err
	}

	if act.Shape()[2]%2 != 0 {
		return results, fmt.Errorf("convolution output size %d is odd, pick -s and -k so s-k+1 is even", act.Shape()[2])
	}
	pooled, err := add("pool2d",
		func() (*tensor.Tensor[T], error) { return layers.Pool2D(act, dev) },
		func() (*tensor.Tensor[T], error) { return layers.Pool2DScalar(act, dev) })
	if err != nil {
		return nil, err
	}

	flat, err := add("flatten",
		func() (*tensor.Tensor[T], error) { return layers.Flatten(pooled, dev) },
		func() (*tensor.Tensor[T], error) { return layers.FlattenScalar(pooled, dev) })
	if err != nil {
		return nil, err
	}

	fw := tensor.Randn[T](tensor.Shape{cfg.classes, flat.Shape()[1]}, rng)
	fb := tensor.Randn[T](tensor.Shape{cfg.classes}, rng)
	if _, err := add("fully connected",
		func() (*tensor.Tensor[T], error) { return layers.FullyConnected(flat, fw, fb, dev) },
		func() (*tensor.Tensor[T], error) { return layers.FullyConnectedScalar(flat, fw, fb, dev) }); err != nil {
		return nil, err
	}

	return results, nil
}
