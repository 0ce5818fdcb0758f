package sinc

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// minLevelDB is reported for bins whose magnitude is exactly zero.
const minLevelDB = -400.0

// Response is the sampled magnitude response of a kernel on [0, 0.5]
// cycles/sample.
type Response struct {
	// Frequency holds the normalized frequency of each bin.
	Frequency []float64
	// Magnitude holds |H(f)| for each bin.
	Magnitude []float64
}

// FrequencyResponse evaluates the magnitude response of kernel with an FFT.
// The kernel is zero-padded to the next power of two that is at least
// max(fftSize, len(kernel)); bins 0..N/2 are returned.
func FrequencyResponse(kernel []float64, fftSize int) (Response, error) {
	if len(kernel) == 0 {
		return Response{}, ErrEmptyKernel
	}

	n := nextPowerOf2(max(fftSize, len(kernel), 2))

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return Response{}, fmt.Errorf("sinc: failed to create FFT plan: %w", err)
	}

	in := make([]complex128, n)
	for i, v := range kernel {
		in[i] = complex(v, 0)
	}

	spectrum := make([]complex128, n)
	if err := plan.Forward(spectrum, in); err != nil {
		return Response{}, fmt.Errorf("sinc: forward FFT failed: %w", err)
	}

	bins := n/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	freq := make([]float64, bins)

	for k := range bins {
		re[k] = real(spectrum[k])
		im[k] = imag(spectrum[k])
		freq[k] = float64(k) / float64(n)
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	return Response{Frequency: freq, Magnitude: mag}, nil
}

// At returns the magnitude at normalized frequency f, linearly interpolated
// between bins. f is clamped to [0, 0.5].
func (r Response) At(f float64) float64 {
	n := len(r.Magnitude)
	if n == 0 {
		return 0
	}

	if n == 1 || f <= 0 {
		return r.Magnitude[0]
	}

	step := r.Frequency[1]

	pos := f / step
	if pos >= float64(n-1) {
		return r.Magnitude[n-1]
	}

	i := int(pos)
	frac := pos - float64(i)

	return r.Magnitude[i]*(1-frac) + r.Magnitude[i+1]*frac
}

// MagnitudeDB returns the level of bin i in dB.
func (r Response) MagnitudeDB(i int) float64 {
	return levelDB(r.Magnitude[i])
}

// CutoffFrequency returns the first frequency at which the response falls
// below levelDB relative to DC (e.g. -3 or -6). It returns 0.5 if the
// response never drops that far and 0 if the DC gain is zero.
func (r Response) CutoffFrequency(levelDB float64) float64 {
	if len(r.Magnitude) == 0 || r.Magnitude[0] == 0 {
		return 0
	}

	threshold := r.Magnitude[0] * math.Pow(10, levelDB/20)

	for k := 1; k < len(r.Magnitude); k++ {
		if r.Magnitude[k] >= threshold {
			continue
		}

		prev := r.Magnitude[k-1]
		frac := (prev - threshold) / (prev - r.Magnitude[k])

		return r.Frequency[k-1] + frac*(r.Frequency[k]-r.Frequency[k-1])
	}

	return 0.5
}

func levelDB(mag float64) float64 {
	if mag <= 0 {
		return minLevelDB
	}

	return math.Max(minLevelDB, 20*math.Log10(mag))
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
