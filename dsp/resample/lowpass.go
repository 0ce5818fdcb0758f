package resample

import (
	"fmt"

	"github.com/cwbudde/algo-aliasfree/dsp/conv"
	"github.com/cwbudde/algo-aliasfree/dsp/filter/sinc"
	"github.com/cwbudde/algo-aliasfree/dsp/tensor"
)

// LowPass filters every channel with a Kaiser-windowed sinc kernel and
// optionally decimates by its stride.
//
// The time axis is replicate-padded by (k/2 - 1, k/2) for even kernel sizes
// and (k/2, k/2) for odd ones, so with stride 1 the output has the input
// length and with stride s it has ceil(n/s) samples.
type LowPass struct {
	cutoff    float64
	halfWidth float64
	stride    int
	padLeft   int
	padRight  int
	kernel    []float64
}

// NewLowPass creates a low-pass filter. Defaults: cutoff 0.5, half-width 0.6,
// stride 1, 12 taps. A cutoff outside [0, 0.5] returns ErrInvalidCutoff.
func NewLowPass(opts ...Option) (*LowPass, error) {
	cfg := lowPassConfig(opts)

	return newLowPass(cfg.cutoff, cfg.halfWidth, cfg.stride, cfg.kernelSize)
}

func newLowPass(cutoff, halfWidth float64, stride, kernelSize int) (*LowPass, error) {
	if err := validateCutoff(cutoff); err != nil {
		return nil, err
	}

	if stride < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStride, stride)
	}

	kernel, err := sinc.KaiserSinc(cutoff, halfWidth, kernelSize)
	if err != nil {
		return nil, fmt.Errorf("resample: low-pass design: %w", err)
	}

	padLeft := kernelSize / 2
	if kernelSize%2 == 0 {
		padLeft--
	}

	return &LowPass{
		cutoff:    cutoff,
		halfWidth: halfWidth,
		stride:    stride,
		padLeft:   padLeft,
		padRight:  kernelSize / 2,
		kernel:    kernel,
	}, nil
}

// Process filters x and returns a new (batch, channels, OutputLen(n)) tensor.
func (f *LowPass) Process(x *tensor.Tensor) (*tensor.Tensor, error) {
	batch, channels, n := x.Shape()

	paddedLen := f.padLeft + n + f.padRight

	outLen := conv.DecimateLen(paddedLen, len(f.kernel), f.stride)
	if outLen <= 0 {
		return nil, fmt.Errorf("%w: %d samples for %d taps", conv.ErrTooShort, n, len(f.kernel))
	}

	out, err := tensor.New(batch, channels, outLen)
	if err != nil {
		return nil, err
	}

	scratch := scratchPool.Get()
	defer scratchPool.Put(scratch)

	padded := scratch.Slice(0, paddedLen)

	for b := range batch {
		for c := range channels {
			conv.ReplicatePadTo(padded, x.Row(b, c), f.padLeft, f.padRight)
			conv.DecimateTo(out.Row(b, c), padded, f.kernel, f.stride)
		}
	}

	return out, nil
}

// OutputLen returns the output length for an input of n samples:
// floor((n + padLeft + padRight - k) / stride) + 1.
func (f *LowPass) OutputLen(n int) int {
	if n <= 0 {
		return 0
	}

	return conv.DecimateLen(f.padLeft+n+f.padRight, len(f.kernel), f.stride)
}

// Kernel returns a copy of the filter taps.
func (f *LowPass) Kernel() []float64 {
	out := make([]float64, len(f.kernel))
	copy(out, f.kernel)

	return out
}

// KernelSize returns the number of taps.
func (f *LowPass) KernelSize() int { return len(f.kernel) }

// Cutoff returns the normalized cutoff frequency.
func (f *LowPass) Cutoff() float64 { return f.cutoff }

// HalfWidth returns the normalized transition half-width.
func (f *LowPass) HalfWidth() float64 { return f.halfWidth }

// Stride returns the decimation stride.
func (f *LowPass) Stride() int { return f.stride }

// Padding returns the replicate padding applied before filtering.
func (f *LowPass) Padding() (left, right int) { return f.padLeft, f.padRight }
