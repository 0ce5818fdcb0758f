// Package window generates the Kaiser window and the Kaiser design formulas
// used by the windowed-sinc filter designer.
package window

import "math"

// Kaiser returns Kaiser window coefficients of the given length.
//
//	w[n] = I0(beta * sqrt(1 - (2n/(N-1) - 1)^2)) / I0(beta)
//
// A single-sample window is [1]. beta == 0 yields a rectangular window.
func Kaiser(size int, beta float64) ([]float64, error) {
	if size <= 0 || beta < 0 || math.IsNaN(beta) {
		return nil, validateKaiser(size, beta)
	}

	out := make([]float64, size)
	if size == 1 {
		out[0] = 1
		return out, nil
	}

	norm := besselI0(beta)
	den := float64(size - 1)

	for i := range out {
		out[i] = kaiserAt(float64(i)/den, beta, norm)
	}

	return out, nil
}

// KaiserAttenuation estimates the stopband attenuation in dB reached by a
// Kaiser-windowed FIR with numTaps taps and a normalized transition width
// (cycles/sample) using Kaiser's empirical order formula:
//
//	A = 2.285 * (numTaps - 1) * pi * transitionWidth + 7.95
func KaiserAttenuation(numTaps int, transitionWidth float64) float64 {
	return 2.285*float64(numTaps-1)*math.Pi*transitionWidth + 7.95
}

// KaiserBeta returns the Kaiser shape parameter for a stopband attenuation
// of attenuationDB.
func KaiserBeta(attenuationDB float64) float64 {
	a := attenuationDB

	switch {
	case a > 50:
		return 0.1102 * (a - 8.7)
	case a >= 21:
		return 0.5842*math.Pow(a-21, 0.4) + 0.07886*(a-21)
	default:
		return 0
	}
}

func kaiserAt(x, beta, norm float64) float64 {
	if beta <= 0 {
		return 1
	}

	r := 2*x - 1
	term := math.Sqrt(math.Max(0, 1-r*r))

	return besselI0(beta*term) / norm
}

// besselI0 evaluates the modified Bessel function of the first kind, order 0,
// by its power series. It converges to full float64 precision for the beta
// range used in filter design.
func besselI0(x float64) float64 {
	sum := 1.0
	term := 1.0

	x2 := (x * x) / 4
	for k := 1; k < 500; k++ {
		term *= x2 / float64(k*k)

		sum += term
		if term < 1e-17*sum {
			break
		}
	}

	return sum
}
