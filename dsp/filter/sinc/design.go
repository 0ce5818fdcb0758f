package sinc

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-aliasfree/dsp/window"
)

// Errors returned by the designer and the response analysis.
var (
	ErrInvalidKernelSize = errors.New("sinc: kernel size must be >= 1")
	ErrZeroSum           = errors.New("sinc: designed kernel sums to zero")
	ErrEmptyKernel       = errors.New("sinc: empty kernel")
)

// KaiserSinc designs a linear-phase low-pass FIR kernel of kernelSize taps.
//
// cutoff is the normalized cutoff frequency in cycles/sample (0.5 is Nyquist)
// and halfWidth the normalized half-width of the transition band. The Kaiser
// beta is derived from the attenuation estimate for kernelSize/2 taps over a
// transition width of 4*halfWidth.
//
// Even sizes place taps on half-sample times with no center tap; odd sizes
// are centered on tap kernelSize/2. The result is normalized to unit sum so
// the DC gain is exactly 1. A zero cutoff returns an all-zero kernel.
//
// The returned slice is the flattened (1, 1, kernelSize) kernel.
func KaiserSinc(cutoff, halfWidth float64, kernelSize int) ([]float64, error) {
	if kernelSize < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidKernelSize, kernelSize)
	}

	halfSize := kernelSize / 2

	beta := window.KaiserBeta(window.KaiserAttenuation(halfSize, 4*halfWidth))

	w, err := window.Kaiser(kernelSize, beta)
	if err != nil {
		return nil, fmt.Errorf("sinc: kaiser window: %w", err)
	}

	taps := make([]float64, kernelSize)
	if cutoff == 0 {
		return taps, nil
	}

	for i := range taps {
		taps[i] = 2 * cutoff * Sinc(2*cutoff*TimeAt(i, kernelSize))
	}

	vecmath.MulBlockInPlace(taps, w)

	var sum float64
	for _, v := range taps {
		sum += v
	}

	if sum == 0 {
		return nil, ErrZeroSum
	}

	for i := range taps {
		taps[i] /= sum
	}

	return taps, nil
}

// TimeAt returns the sample time of tap i in a kernel of kernelSize taps.
//
//	even: i - kernelSize/2 + 0.5
//	odd:  i - kernelSize/2
func TimeAt(i, kernelSize int) float64 {
	t := float64(i - kernelSize/2)
	if kernelSize%2 == 0 {
		t += 0.5
	}

	return t
}

// Sinc is the normalized sinc function sin(pi*x)/(pi*x), with Sinc(0) = 1.
func Sinc(x float64) float64 {
	if x == 0 {
		return 1
	}

	px := math.Pi * x

	return math.Sin(px) / px
}
