package resample

import (
	"fmt"

	"github.com/cwbudde/algo-aliasfree/dsp/conv"
	"github.com/cwbudde/algo-aliasfree/dsp/filter/sinc"
	"github.com/cwbudde/algo-aliasfree/dsp/tensor"
)

// Upsampler interpolates every channel by an integer ratio using a
// transposed convolution with a Kaiser-windowed sinc kernel.
//
// Each row is first replicate-padded by k/ratio - 1 samples on both sides,
// zero-stuffed and filtered at stride ratio, scaled by ratio to restore the
// amplitude lost to zero-stuffing, and finally cropped so the output holds
// exactly n*ratio samples.
type Upsampler struct {
	ratio     int
	cutoff    float64
	halfWidth float64
	pad       int
	padLeft   int
	padRight  int
	kernel    []float64
}

// NewUpsampler creates an upsampler. The kernel defaults to
// KernelSizeForRatio(ratio) taps with cutoff 0.5/ratio and half-width
// 0.6/ratio; WithKernelSize, WithCutoff and WithHalfWidth override them.
func NewUpsampler(ratio int, opts ...Option) (*Upsampler, error) {
	if ratio < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRatio, ratio)
	}

	cfg := ratioConfig(ratio, opts)

	if err := validateCutoff(cfg.cutoff); err != nil {
		return nil, err
	}

	k := cfg.kernelSize
	if k < ratio {
		return nil, fmt.Errorf("%w: %d taps for ratio %d", ErrInvalidKernelSize, k, ratio)
	}

	kernel, err := sinc.KaiserSinc(cfg.cutoff, cfg.halfWidth, k)
	if err != nil {
		return nil, fmt.Errorf("resample: upsampler design: %w", err)
	}

	pad := k/ratio - 1

	return &Upsampler{
		ratio:     ratio,
		cutoff:    cfg.cutoff,
		halfWidth: cfg.halfWidth,
		pad:       pad,
		padLeft:   pad*ratio + (k-ratio)/2,
		padRight:  pad*ratio + (k-ratio+1)/2,
		kernel:    kernel,
	}, nil
}

// Process upsamples x and returns a new (batch, channels, n*ratio) tensor.
func (u *Upsampler) Process(x *tensor.Tensor) (*tensor.Tensor, error) {
	batch, channels, n := x.Shape()

	paddedLen := n + 2*u.pad
	fullLen := conv.InterpolateLen(paddedLen, len(u.kernel), u.ratio)

	outLen := fullLen - u.padLeft - u.padRight
	if outLen <= 0 {
		return nil, fmt.Errorf("%w: %d samples for %d taps", conv.ErrTooShort, n, len(u.kernel))
	}

	out, err := tensor.New(batch, channels, outLen)
	if err != nil {
		return nil, err
	}

	scratch := scratchPool.Get()
	defer scratchPool.Put(scratch)

	padded := scratch.Slice(0, paddedLen)
	full := scratch.Slice(1, fullLen)
	gain := float64(u.ratio)

	for b := range batch {
		for c := range channels {
			conv.ReplicatePadTo(padded, x.Row(b, c), u.pad, u.pad)
			conv.InterpolateTo(full, padded, u.kernel, u.ratio)

			row := out.Row(b, c)
			for i, v := range full[u.padLeft : u.padLeft+outLen] {
				row[i] = gain * v
			}
		}
	}

	return out, nil
}

// OutputLen returns the output length for an input of n samples.
func (u *Upsampler) OutputLen(n int) int {
	if n <= 0 {
		return 0
	}

	return conv.InterpolateLen(n+2*u.pad, len(u.kernel), u.ratio) - u.padLeft - u.padRight
}

// Ratio returns the upsampling ratio.
func (u *Upsampler) Ratio() int { return u.ratio }

// Kernel returns a copy of the interpolation filter taps (before the ratio gain).
func (u *Upsampler) Kernel() []float64 {
	out := make([]float64, len(u.kernel))
	copy(out, u.kernel)

	return out
}

// KernelSize returns the number of taps.
func (u *Upsampler) KernelSize() int { return len(u.kernel) }

// Cutoff returns the normalized cutoff frequency of the interpolation filter.
func (u *Upsampler) Cutoff() float64 { return u.cutoff }

// HalfWidth returns the normalized transition half-width.
func (u *Upsampler) HalfWidth() float64 { return u.halfWidth }

// Padding returns the replicate guard applied to the input and the crop
// removed from the start and end of the interpolated signal.
func (u *Upsampler) Padding() (pad, cropLeft, cropRight int) {
	return u.pad, u.padLeft, u.padRight
}
