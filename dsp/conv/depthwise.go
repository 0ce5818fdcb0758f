package conv

import (
	"fmt"

	"github.com/cwbudde/algo-aliasfree/dsp/tensor"
)

// Depthwise applies kernel to every (batch, channel) row of x independently
// with [Decimate]. This is a grouped conv1d with groups equal to the channel
// count and the same single-channel kernel broadcast to every group, no bias
// and no implicit padding.
func Depthwise(x *tensor.Tensor, kernel []float64, stride int) (*tensor.Tensor, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}

	if stride < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStride, stride)
	}

	batch, channels, n := x.Shape()

	outLen := DecimateLen(n, len(kernel), stride)
	if outLen <= 0 {
		return nil, fmt.Errorf("%w: %d < %d", ErrTooShort, n, len(kernel))
	}

	out, err := tensor.New(batch, channels, outLen)
	if err != nil {
		return nil, err
	}

	for b := range batch {
		for c := range channels {
			DecimateTo(out.Row(b, c), x.Row(b, c), kernel, stride)
		}
	}

	return out, nil
}

// DepthwiseTranspose applies the transposed (fractionally strided)
// convolution of kernel to every row of x with [Interpolate]. It is the
// grouped conv_transpose1d counterpart of [Depthwise].
func DepthwiseTranspose(x *tensor.Tensor, kernel []float64, stride int) (*tensor.Tensor, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}

	if stride < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStride, stride)
	}

	batch, channels, n := x.Shape()

	out, err := tensor.New(batch, channels, InterpolateLen(n, len(kernel), stride))
	if err != nil {
		return nil, err
	}

	for b := range batch {
		for c := range channels {
			InterpolateTo(out.Row(b, c), x.Row(b, c), kernel, stride)
		}
	}

	return out, nil
}
