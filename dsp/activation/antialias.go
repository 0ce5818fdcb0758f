package activation

import (
	"fmt"

	"github.com/cwbudde/algo-aliasfree/dsp/resample"
	"github.com/cwbudde/algo-aliasfree/dsp/tensor"
)

// Default AntiAlias configuration.
const (
	DefaultUpRatio        = 2
	DefaultDownRatio      = 2
	DefaultUpKernelSize   = 12
	DefaultDownKernelSize = 12
)

type config struct {
	upRatio        int
	downRatio      int
	upKernelSize   int
	downKernelSize int
}

func defaultConfig() config {
	return config{
		upRatio:        DefaultUpRatio,
		downRatio:      DefaultDownRatio,
		upKernelSize:   DefaultUpKernelSize,
		downKernelSize: DefaultDownKernelSize,
	}
}

// Option configures an AntiAlias activation.
type Option func(*config)

// WithUpRatio sets the upsampling ratio. Values below 1 are ignored.
func WithUpRatio(r int) Option {
	return func(cfg *config) {
		if r >= 1 {
			cfg.upRatio = r
		}
	}
}

// WithDownRatio sets the downsampling ratio. Values below 1 are ignored.
func WithDownRatio(r int) Option {
	return func(cfg *config) {
		if r >= 1 {
			cfg.downRatio = r
		}
	}
}

// WithUpKernelSize sets the interpolation filter length. Values below 1 are
// ignored.
func WithUpKernelSize(k int) Option {
	return func(cfg *config) {
		if k >= 1 {
			cfg.upKernelSize = k
		}
	}
}

// WithDownKernelSize sets the decimation filter length. Values below 1 are
// ignored.
func WithDownKernelSize(k int) Option {
	return func(cfg *config) {
		if k >= 1 {
			cfg.downKernelSize = k
		}
	}
}

// AntiAlias runs SnakeBeta at an increased sample rate: the input is
// upsampled, passed through the activation and low-pass filtered back down,
// which keeps the harmonics generated by the nonlinearity below the output
// Nyquist frequency.
type AntiAlias struct {
	up   *resample.Upsampler
	act  *SnakeBeta
	down *resample.Downsampler
}

// NewAntiAlias creates an anti-aliased SnakeBeta for the given number of
// channels. Defaults: up and down ratio 2, 12-tap kernels.
func NewAntiAlias(channels int, opts ...Option) (*AntiAlias, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	act, err := NewSnakeBeta(channels)
	if err != nil {
		return nil, err
	}

	up, err := resample.NewUpsampler(cfg.upRatio, resample.WithKernelSize(cfg.upKernelSize))
	if err != nil {
		return nil, fmt.Errorf("activation: upsampler: %w", err)
	}

	down, err := resample.NewDownsampler(cfg.downRatio, resample.WithKernelSize(cfg.downKernelSize))
	if err != nil {
		return nil, fmt.Errorf("activation: downsampler: %w", err)
	}

	return &AntiAlias{up: up, act: act, down: down}, nil
}

// Process returns down(act(up(x))). With equal ratios the output has the
// shape of x.
func (a *AntiAlias) Process(x *tensor.Tensor) (*tensor.Tensor, error) {
	if c := x.Channels(); c != a.act.Channels() {
		return nil, fmt.Errorf("%w: input has %d channels, activation %d", ErrChannelMismatch, c, a.act.Channels())
	}

	y, err := a.up.Process(x)
	if err != nil {
		return nil, err
	}

	if err := a.act.ProcessInPlace(y); err != nil {
		return nil, err
	}

	return a.down.Process(y)
}

// OutputLen returns the output length for an input of n samples.
func (a *AntiAlias) OutputLen(n int) int {
	return a.down.OutputLen(a.up.OutputLen(n))
}

// Channels returns the channel count.
func (a *AntiAlias) Channels() int { return a.act.Channels() }

// Up returns the upsampling stage.
func (a *AntiAlias) Up() *resample.Upsampler { return a.up }

// Activation returns the SnakeBeta stage and its trainable parameters.
func (a *AntiAlias) Activation() *SnakeBeta { return a.act }

// Down returns the downsampling stage.
func (a *AntiAlias) Down() *resample.Downsampler { return a.down }
