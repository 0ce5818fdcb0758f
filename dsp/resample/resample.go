package resample

import (
	"fmt"

	"github.com/cwbudde/algo-aliasfree/dsp/tensor"
)

// Upsample2x is a convenience wrapper for 2:1 upsampling.
func Upsample2x(x *tensor.Tensor, opts ...Option) (*tensor.Tensor, error) {
	up, err := NewUpsampler(2, opts...)
	if err != nil {
		return nil, err
	}

	return up.Process(x)
}

// Downsample2x is a convenience wrapper for 1:2 downsampling.
func Downsample2x(x *tensor.Tensor, opts ...Option) (*tensor.Tensor, error) {
	down, err := NewDownsampler(2, opts...)
	if err != nil {
		return nil, err
	}

	return down.Process(x)
}

// Resample converts x by the ratio up/down as a one-shot helper: an
// Upsampler by up followed by a Downsampler by down, each with its default
// kernel. A stage with ratio 1 is skipped. The output has
// ceil(n*up/down) samples.
func Resample(x *tensor.Tensor, up, down int) (*tensor.Tensor, error) {
	if up < 1 || down < 1 {
		return nil, fmt.Errorf("%w: %d/%d", ErrInvalidRatio, up, down)
	}

	y := x

	if up > 1 {
		u, err := NewUpsampler(up)
		if err != nil {
			return nil, err
		}

		if y, err = u.Process(y); err != nil {
			return nil, err
		}
	}

	if down > 1 {
		d, err := NewDownsampler(down)
		if err != nil {
			return nil, err
		}

		if y, err = d.Process(y); err != nil {
			return nil, err
		}
	}

	if y == x {
		return x.Clone(), nil
	}

	return y, nil
}
