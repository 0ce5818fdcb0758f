package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-aliasfree/dsp/activation"
)

var errInvalidConfig = errors.New("invalid config")

// Stage configures one resampling stage.
type Stage struct {
	Ratio      int `yaml:"ratio"`
	KernelSize int `yaml:"kernel_size"`
}

// Config holds the aainfo configuration.
type Config struct {
	Channels int   `yaml:"channels"`
	Up       Stage `yaml:"up"`
	Down     Stage `yaml:"down"`

	// Alpha and Beta hold initial SnakeBeta parameters: either empty, a
	// single value for all channels, or one value per channel.
	Alpha []float64 `yaml:"alpha"`
	Beta  []float64 `yaml:"beta"`

	Analysis struct {
		FFTSize   int     `yaml:"fft_size"`
		Length    int     `yaml:"length"`
		Frequency float64 `yaml:"frequency"`
		Amplitude float64 `yaml:"amplitude"`
	} `yaml:"analysis"`
}

// Default returns the default configuration.
func Default() *Config {
	cfg := &Config{
		Channels: 1,
		Up:       Stage{Ratio: activation.DefaultUpRatio, KernelSize: activation.DefaultUpKernelSize},
		Down:     Stage{Ratio: activation.DefaultDownRatio, KernelSize: activation.DefaultDownKernelSize},
	}
	cfg.Analysis.FFTSize = 1024
	cfg.Analysis.Length = 256
	cfg.Analysis.Frequency = 0.02
	cfg.Analysis.Amplitude = 0.5

	return cfg
}

// Load reads a YAML configuration file. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the ranges the CLI depends on.
func (c *Config) Validate() error {
	switch {
	case c.Channels < 1:
		return fmt.Errorf("%w: channels=%d", errInvalidConfig, c.Channels)
	case c.Up.Ratio < 1 || c.Down.Ratio < 1:
		return fmt.Errorf("%w: ratios=(%d, %d)", errInvalidConfig, c.Up.Ratio, c.Down.Ratio)
	case c.Up.KernelSize < 1 || c.Down.KernelSize < 1:
		return fmt.Errorf("%w: kernel sizes=(%d, %d)", errInvalidConfig, c.Up.KernelSize, c.Down.KernelSize)
	case c.Analysis.Length < 1:
		return fmt.Errorf("%w: length=%d", errInvalidConfig, c.Analysis.Length)
	case c.Analysis.Frequency < 0 || c.Analysis.Frequency > 0.5:
		return fmt.Errorf("%w: frequency=%g", errInvalidConfig, c.Analysis.Frequency)
	}

	if _, err := expand(c.Alpha, c.Channels); err != nil {
		return fmt.Errorf("%w: alpha: %w", errInvalidConfig, err)
	}

	if _, err := expand(c.Beta, c.Channels); err != nil {
		return fmt.Errorf("%w: beta: %w", errInvalidConfig, err)
	}

	return nil
}

// Options returns the AntiAlias options described by c.
func (c *Config) Options() []activation.Option {
	return []activation.Option{
		activation.WithUpRatio(c.Up.Ratio),
		activation.WithDownRatio(c.Down.Ratio),
		activation.WithUpKernelSize(c.Up.KernelSize),
		activation.WithDownKernelSize(c.Down.KernelSize),
	}
}

// expand broadcasts values to one entry per channel. An empty slice yields
// nil.
func expand(values []float64, channels int) ([]float64, error) {
	switch len(values) {
	case 0:
		return nil, nil
	case 1:
		out := make([]float64, channels)
		for i := range out {
			out[i] = values[0]
		}

		return out, nil
	case channels:
		return values, nil
	default:
		return nil, fmt.Errorf("got %d values for %d channels", len(values), channels)
	}
}
