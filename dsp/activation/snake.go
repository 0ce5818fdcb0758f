package activation

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-aliasfree/dsp/buffer"
	"github.com/cwbudde/algo-aliasfree/dsp/tensor"
)

var scratchPool = buffer.NewPool()

// guard keeps 1/(exp(p)+guard) finite as p goes to -Inf.
const guard = 1e-9

// Snake applies y = x + sin(x*exp(alpha))^2 / (exp(alpha)+1e-9) with one
// alpha per channel.
type Snake struct {
	alpha *Parameter
}

// NewSnake returns a Snake activation with alpha initialized to zero.
func NewSnake(channels int) (*Snake, error) {
	alpha, err := NewParameter(channels)
	if err != nil {
		return nil, err
	}

	return &Snake{alpha: alpha}, nil
}

// Alpha returns the frequency parameter.
func (s *Snake) Alpha() *Parameter { return s.alpha }

// Channels returns the parameter width.
func (s *Snake) Channels() int { return s.alpha.Len() }

// ProcessSample applies the activation to one sample of channel c.
func (s *Snake) ProcessSample(c int, x float64) float64 {
	a := math.Exp(s.alpha.values[c])
	v := math.Sin(x * a)

	return x + v*v/(a+guard)
}

// Process returns the activation of x as a new tensor.
func (s *Snake) Process(x *tensor.Tensor) (*tensor.Tensor, error) {
	out := x.Clone()
	if err := s.ProcessInPlace(out); err != nil {
		return nil, err
	}

	return out, nil
}

// ProcessInPlace overwrites x with its activation.
func (s *Snake) ProcessInPlace(x *tensor.Tensor) error {
	return periodicInPlace(x, s.alpha.values, s.alpha.values)
}

// SnakeBeta applies y = x + sin(x*exp(alpha))^2 / (exp(beta)+1e-9), so the
// frequency (alpha) and magnitude (beta) of the periodic term are
// independent per channel.
type SnakeBeta struct {
	alpha *Parameter
	beta  *Parameter
}

// NewSnakeBeta returns a SnakeBeta activation with alpha and beta
// initialized to zero, where it computes x + sin(x)^2 up to the guard term.
func NewSnakeBeta(channels int) (*SnakeBeta, error) {
	alpha, err := NewParameter(channels)
	if err != nil {
		return nil, err
	}

	beta, err := NewParameter(channels)
	if err != nil {
		return nil, err
	}

	return &SnakeBeta{alpha: alpha, beta: beta}, nil
}

// Alpha returns the frequency parameter.
func (s *SnakeBeta) Alpha() *Parameter { return s.alpha }

// Beta returns the magnitude parameter.
func (s *SnakeBeta) Beta() *Parameter { return s.beta }

// Channels returns the parameter width.
func (s *SnakeBeta) Channels() int { return s.alpha.Len() }

// ProcessSample applies the activation to one sample of channel c.
func (s *SnakeBeta) ProcessSample(c int, x float64) float64 {
	v := math.Sin(x * math.Exp(s.alpha.values[c]))

	return x + v*v/(math.Exp(s.beta.values[c])+guard)
}

// Process returns the activation of x as a new tensor.
func (s *SnakeBeta) Process(x *tensor.Tensor) (*tensor.Tensor, error) {
	out := x.Clone()
	if err := s.ProcessInPlace(out); err != nil {
		return nil, err
	}

	return out, nil
}

// ProcessInPlace overwrites x with its activation.
func (s *SnakeBeta) ProcessInPlace(x *tensor.Tensor) error {
	return periodicInPlace(x, s.alpha.values, s.beta.values)
}

// periodicInPlace computes x + sin(x*exp(alpha[c]))^2 / (exp(beta[c])+guard)
// row by row.
func periodicInPlace(x *tensor.Tensor, alpha, beta []float64) error {
	batch, channels, n := x.Shape()
	if channels != len(alpha) {
		return fmt.Errorf("%w: input has %d channels, parameters %d", ErrChannelMismatch, channels, len(alpha))
	}

	scratch := scratchPool.Get()
	defer scratchPool.Put(scratch)

	sines := scratch.Slice(0, n)
	squares := scratch.Slice(1, n)

	for c := range channels {
		freq := math.Exp(alpha[c])
		gain := 1 / (math.Exp(beta[c]) + guard)

		for b := range batch {
			row := x.Row(b, c)
			for i, v := range row {
				sines[i] = math.Sin(v * freq)
			}

			vecmath.MulBlock(squares, sines, sines)

			for i, sq := range squares {
				row[i] += gain * sq
			}
		}
	}

	return nil
}
