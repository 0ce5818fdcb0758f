package resample

import (
	"fmt"

	"github.com/cwbudde/algo-aliasfree/dsp/tensor"
)

// Downsampler decimates every channel by an integer ratio. It is a LowPass
// with cutoff 0.5/ratio, half-width 0.6/ratio and stride ratio.
type Downsampler struct {
	ratio   int
	lowpass *LowPass
}

// NewDownsampler creates a downsampler. The kernel defaults to
// KernelSizeForRatio(ratio) taps; WithKernelSize, WithCutoff and
// WithHalfWidth override the derived parameters.
func NewDownsampler(ratio int, opts ...Option) (*Downsampler, error) {
	if ratio < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRatio, ratio)
	}

	cfg := ratioConfig(ratio, opts)

	lp, err := newLowPass(cfg.cutoff, cfg.halfWidth, ratio, cfg.kernelSize)
	if err != nil {
		return nil, err
	}

	return &Downsampler{ratio: ratio, lowpass: lp}, nil
}

// Process decimates x and returns a new (batch, channels, OutputLen(n)) tensor.
func (d *Downsampler) Process(x *tensor.Tensor) (*tensor.Tensor, error) {
	return d.lowpass.Process(x)
}

// OutputLen returns the output length for an input of n samples.
func (d *Downsampler) OutputLen(n int) int { return d.lowpass.OutputLen(n) }

// Ratio returns the decimation ratio.
func (d *Downsampler) Ratio() int { return d.ratio }

// LowPass returns the underlying anti-aliasing filter.
func (d *Downsampler) LowPass() *LowPass { return d.lowpass }

// Kernel returns a copy of the anti-aliasing filter taps.
func (d *Downsampler) Kernel() []float64 { return d.lowpass.Kernel() }

// KernelSize returns the number of taps.
func (d *Downsampler) KernelSize() int { return d.lowpass.KernelSize() }
