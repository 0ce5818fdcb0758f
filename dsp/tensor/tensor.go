// Package tensor provides the dense (batch, channels, time) container that
// flows through the resampling and activation stages.
//
// Data is stored row-major: all samples of channel 0 of batch 0 first, then
// channel 1, and so on. [Tensor.Row] returns a view of one (batch, channel)
// time series, which is the unit every stage in this module operates on.
package tensor

import (
	"errors"
	"fmt"
)

// Errors returned by tensor constructors and shape checks.
var (
	ErrInvalidShape  = errors.New("tensor: invalid shape")
	ErrDataLength    = errors.New("tensor: data length does not match shape")
	ErrShapeMismatch = errors.New("tensor: shape mismatch")
)

// Tensor is a rank-3 float64 tensor with shape (batch, channels, time).
type Tensor struct {
	batch    int
	channels int
	length   int
	data     []float64
}

// New returns a zero-filled tensor of the given shape.
func New(batch, channels, length int) (*Tensor, error) {
	if err := validateShape(batch, channels, length); err != nil {
		return nil, err
	}

	return &Tensor{
		batch:    batch,
		channels: channels,
		length:   length,
		data:     make([]float64, batch*channels*length),
	}, nil
}

// Full returns a tensor of the given shape with every element set to v.
func Full(batch, channels, length int, v float64) (*Tensor, error) {
	t, err := New(batch, channels, length)
	if err != nil {
		return nil, err
	}

	for i := range t.data {
		t.data[i] = v
	}

	return t, nil
}

// FromData returns a tensor holding a copy of data, which must be laid out
// row-major and contain exactly batch*channels*length values.
func FromData(batch, channels, length int, data []float64) (*Tensor, error) {
	if err := validateShape(batch, channels, length); err != nil {
		return nil, err
	}

	if len(data) != batch*channels*length {
		return nil, fmt.Errorf("%w: got %d values for shape (%d, %d, %d)",
			ErrDataLength, len(data), batch, channels, length)
	}

	out := make([]float64, len(data))
	copy(out, data)

	return &Tensor{batch: batch, channels: channels, length: length, data: out}, nil
}

// FromRows builds a single-batch tensor from one slice per channel.
// All rows must have the same non-zero length.
func FromRows(rows ...[]float64) (*Tensor, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidShape)
	}

	length := len(rows[0])

	t, err := New(1, len(rows), length)
	if err != nil {
		return nil, err
	}

	for c, row := range rows {
		if len(row) != length {
			return nil, fmt.Errorf("%w: row %d has length %d, want %d",
				ErrDataLength, c, len(row), length)
		}

		copy(t.Row(0, c), row)
	}

	return t, nil
}

func validateShape(batch, channels, length int) error {
	if batch <= 0 || channels <= 0 || length <= 0 {
		return fmt.Errorf("%w: (%d, %d, %d)", ErrInvalidShape, batch, channels, length)
	}

	return nil
}

// Shape returns (batch, channels, time).
func (t *Tensor) Shape() (batch, channels, length int) {
	return t.batch, t.channels, t.length
}

// Batch returns the batch dimension.
func (t *Tensor) Batch() int { return t.batch }

// Channels returns the channel dimension.
func (t *Tensor) Channels() int { return t.channels }

// Len returns the time dimension.
func (t *Tensor) Len() int { return t.length }

// Data returns the underlying row-major storage. Mutations are visible
// through the tensor.
func (t *Tensor) Data() []float64 { return t.data }

// Row returns a view of the time series at (b, c).
func (t *Tensor) Row(b, c int) []float64 {
	start := (b*t.channels + c) * t.length
	return t.data[start : start+t.length : start+t.length]
}

// At returns the element at (b, c, i).
func (t *Tensor) At(b, c, i int) float64 {
	return t.data[(b*t.channels+c)*t.length+i]
}

// Set stores v at (b, c, i).
func (t *Tensor) Set(b, c, i int, v float64) {
	t.data[(b*t.channels+c)*t.length+i] = v
}

// Clone returns a deep copy of t.
func (t *Tensor) Clone() *Tensor {
	out := make([]float64, len(t.data))
	copy(out, t.data)

	return &Tensor{batch: t.batch, channels: t.channels, length: t.length, data: out}
}

// SameShape reports whether t and o have identical shapes.
func (t *Tensor) SameShape(o *Tensor) bool {
	return t.batch == o.batch && t.channels == o.channels && t.length == o.length
}

// String formats the tensor shape, e.g. "Tensor(2, 4, 128)".
func (t *Tensor) String() string {
	return fmt.Sprintf("Tensor(%d, %d, %d)", t.batch, t.channels, t.length)
}
