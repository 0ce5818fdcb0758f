package testutil

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-aliasfree/dsp/tensor"
)

// DeterministicSine generates a sine of normalized frequency freq
// (cycles/sample) and the given amplitude.
func DeterministicSine(freq, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freq
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// SineTensor returns a (batch, channels, length) tensor whose row (b, c) is a
// sine at frequency freq*(1+c) with amplitude 1/(1+b), so rows are distinct.
func SineTensor(batch, channels, length int, freq float64) *tensor.Tensor {
	x, err := tensor.New(batch, channels, length)
	if err != nil {
		panic(err)
	}
	for b := range batch {
		for c := range channels {
			copy(x.Row(b, c), DeterministicSine(freq*float64(1+c), 1/float64(1+b), length))
		}
	}
	return x
}

// NoiseTensor returns a tensor of deterministic white noise in [-amplitude, amplitude].
func NoiseTensor(seed int64, batch, channels, length int, amplitude float64) *tensor.Tensor {
	x, err := tensor.FromData(batch, channels, length, DeterministicNoise(seed, amplitude, batch*channels*length))
	if err != nil {
		panic(err)
	}
	return x
}

// ConstTensor returns a tensor filled with v.
func ConstTensor(batch, channels, length int, v float64) *tensor.Tensor {
	x, err := tensor.Full(batch, channels, length, v)
	if err != nil {
		panic(err)
	}
	return x
}
