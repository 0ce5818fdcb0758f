package resample

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-aliasfree/dsp/buffer"
)

var (
	// ErrInvalidRatio indicates a resampling ratio below 1.
	ErrInvalidRatio = errors.New("resample: invalid ratio")
	// ErrInvalidCutoff indicates a normalized cutoff outside [0, 0.5].
	ErrInvalidCutoff = errors.New("resample: cutoff must be in [0, 0.5]")
	// ErrInvalidStride indicates a decimation stride below 1.
	ErrInvalidStride = errors.New("resample: stride must be >= 1")
	// ErrInvalidKernelSize indicates a kernel too short for the configuration.
	ErrInvalidKernelSize = errors.New("resample: invalid kernel size")
)

// scratchPool holds the padded and interpolated rows of Process calls.
var scratchPool = buffer.NewPool()

// Default LowPass parameters.
const (
	DefaultCutoff     = 0.5
	DefaultHalfWidth  = 0.6
	DefaultStride     = 1
	DefaultKernelSize = 12
)

type config struct {
	kernelSize int
	cutoff     float64
	halfWidth  float64
	stride     int

	cutoffSet    bool
	halfWidthSet bool
}

// Option configures a LowPass, Upsampler or Downsampler.
type Option func(*config)

// WithKernelSize overrides the number of filter taps.
func WithKernelSize(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.kernelSize = n
		}
	}
}

// WithCutoff overrides the normalized cutoff frequency (cycles/sample).
// Values outside [0, 0.5] make the constructor fail.
func WithCutoff(v float64) Option {
	return func(cfg *config) {
		cfg.cutoff = v
		cfg.cutoffSet = true
	}
}

// WithHalfWidth overrides the normalized transition-band half-width.
func WithHalfWidth(v float64) Option {
	return func(cfg *config) {
		if v >= 0 {
			cfg.halfWidth = v
			cfg.halfWidthSet = true
		}
	}
}

// WithStride sets the LowPass decimation stride. Values below 1 make
// NewLowPass fail. Upsampler and Downsampler always use their ratio as the
// stride and ignore this option.
func WithStride(n int) Option {
	return func(cfg *config) {
		cfg.stride = n
	}
}

// KernelSizeForRatio returns the default kernel size for a resampling ratio:
// six taps per output phase, rounded to an even count.
func KernelSizeForRatio(ratio int) int {
	return 6 * ratio / 2 * 2
}

func lowPassConfig(opts []Option) config {
	cfg := config{
		kernelSize: DefaultKernelSize,
		cutoff:     DefaultCutoff,
		halfWidth:  DefaultHalfWidth,
		stride:     DefaultStride,
	}

	applyOptions(&cfg, opts)

	return cfg
}

// ratioConfig derives the kernel size, cutoff and half-width defaults from
// the ratio; explicit options take precedence.
func ratioConfig(ratio int, opts []Option) config {
	var cfg config

	applyOptions(&cfg, opts)

	if cfg.kernelSize <= 0 {
		cfg.kernelSize = KernelSizeForRatio(ratio)
	}

	if !cfg.cutoffSet {
		cfg.cutoff = 0.5 / float64(ratio)
	}

	if !cfg.halfWidthSet {
		cfg.halfWidth = 0.6 / float64(ratio)
	}

	cfg.stride = ratio

	return cfg
}

func applyOptions(cfg *config, opts []Option) {
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
}

func validateCutoff(cutoff float64) error {
	if math.IsNaN(cutoff) || cutoff < 0 || cutoff > 0.5 {
		return fmt.Errorf("%w: got %g", ErrInvalidCutoff, cutoff)
	}

	return nil
}
