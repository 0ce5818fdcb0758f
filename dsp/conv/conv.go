package conv

import (
	"errors"
	"fmt"
)

// Errors returned by convolution functions.
var (
	ErrEmptyInput     = errors.New("conv: empty input")
	ErrEmptyKernel    = errors.New("conv: empty kernel")
	ErrLengthMismatch = errors.New("conv: buffer length mismatch")
	ErrInvalidStride  = errors.New("conv: stride must be >= 1")
	ErrInvalidPadding = errors.New("conv: padding must be >= 0")
	ErrTooShort       = errors.New("conv: input shorter than kernel")
)

// Interpolate performs strided transposed convolution (zero-stuffing
// interpolation) of a with kernel b:
//
//	y[i*stride + k] += a[i] * b[k]
//
// The result has length (len(a)-1)*stride + len(b). With stride 1 this is
// plain linear convolution.
func Interpolate(a, b []float64, stride int) ([]float64, error) {
	if err := checkArgs(a, b, stride); err != nil {
		return nil, err
	}

	result := make([]float64, InterpolateLen(len(a), len(b), stride))
	InterpolateTo(result, a, b, stride)

	return result, nil
}

// InterpolateLen returns the output length of [Interpolate].
func InterpolateLen(n, kernelLen, stride int) int {
	if n <= 0 || kernelLen <= 0 {
		return 0
	}

	return (n-1)*stride + kernelLen
}

// InterpolateTo performs strided transposed convolution into dst, which must
// have length InterpolateLen(len(a), len(b), stride). dst is overwritten.
func InterpolateTo(dst, a, b []float64, stride int) {
	m := len(b)

	for i := range dst {
		dst[i] = 0
	}

	for i, x := range a {
		seg := dst[i*stride : i*stride+m]
		for k, h := range b {
			seg[k] += x * h
		}
	}
}

// Decimate computes the strided valid cross-correlation of a with kernel b:
//
//	y[o] = sum_k a[o*stride + k] * b[k]
//
// The result has length (len(a)-len(b))/stride + 1. This is the sliding
// dot product used by neural-network "conv1d" layers, so b is not reversed.
func Decimate(a, b []float64, stride int) ([]float64, error) {
	if err := checkArgs(a, b, stride); err != nil {
		return nil, err
	}

	if len(a) < len(b) {
		return nil, fmt.Errorf("%w: %d < %d", ErrTooShort, len(a), len(b))
	}

	result := make([]float64, DecimateLen(len(a), len(b), stride))
	DecimateTo(result, a, b, stride)

	return result, nil
}

// DecimateLen returns the output length of [Decimate], or 0 when n < kernelLen.
func DecimateLen(n, kernelLen, stride int) int {
	if kernelLen <= 0 || n < kernelLen {
		return 0
	}

	return (n-kernelLen)/stride + 1
}

// DecimateTo computes the strided valid cross-correlation into dst, which
// must have length DecimateLen(len(a), len(b), stride).
func DecimateTo(dst, a, b []float64, stride int) {
	m := len(b)

	for o := range dst {
		seg := a[o*stride : o*stride+m]

		var sum float64
		for k, h := range b {
			sum += seg[k] * h
		}

		dst[o] = sum
	}
}

func checkArgs(a, b []float64, stride int) error {
	if len(a) == 0 {
		return ErrEmptyInput
	}

	if len(b) == 0 {
		return ErrEmptyKernel
	}

	if stride < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidStride, stride)
	}

	return nil
}
