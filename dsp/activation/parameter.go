package activation

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidChannels indicates a channel count below 1.
	ErrInvalidChannels = errors.New("activation: channels must be >= 1")
	// ErrChannelMismatch indicates an input whose channel count differs from
	// the parameter width.
	ErrChannelMismatch = errors.New("activation: channel mismatch")
	// ErrStateMismatch indicates a state that does not fit the module.
	ErrStateMismatch = errors.New("activation: state mismatch")
)

// Parameter is a trainable per-channel vector, logically shaped (1, C, 1).
// It starts at zero and is only changed by external code through Set or Data.
type Parameter struct {
	values []float64
}

// NewParameter returns a zero-initialized parameter with one value per channel.
func NewParameter(channels int) (*Parameter, error) {
	if channels < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}

	return &Parameter{values: make([]float64, channels)}, nil
}

// Len returns the number of channels.
func (p *Parameter) Len() int { return len(p.values) }

// Shape returns the logical tensor shape (1, C, 1).
func (p *Parameter) Shape() []int { return []int{1, len(p.values), 1} }

// Values returns a copy of the per-channel values.
func (p *Parameter) Values() []float64 {
	out := make([]float64, len(p.values))
	copy(out, p.values)

	return out
}

// Set replaces all values. values must hold one entry per channel.
func (p *Parameter) Set(values []float64) error {
	if len(values) != len(p.values) {
		return fmt.Errorf("%w: got %d values for %d channels", ErrChannelMismatch, len(values), len(p.values))
	}

	copy(p.values, values)

	return nil
}

// Data exposes the underlying storage for in-place updates by an optimizer.
func (p *Parameter) Data() []float64 { return p.values }
