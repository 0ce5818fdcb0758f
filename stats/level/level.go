// Package level measures signal levels and the deviation between signals,
// for rows of a tensor as well as plain slices.
package level

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-aliasfree/dsp/tensor"
)

// ErrLengthMismatch is returned when compared signals differ in length.
var ErrLengthMismatch = errors.New("level: length mismatch")

// Stats holds the level of a signal.
//
//nolint:revive
type Stats struct {
	Length         int
	DC             float64
	RMS            float64
	RMS_dB         float64
	Peak           float64
	Peak_dB        float64
	CrestFactor    float64 // peak / RMS
	CrestFactor_dB float64
}

// Diff describes how far a signal deviates from a reference.
//
//nolint:revive
type Diff struct {
	MaxAbs float64
	RMS    float64
	// SNR_dB is the reference RMS over the error RMS. It is +Inf for
	// identical signals.
	SNR_dB float64
}

// ampTodB returns 20*log10(|v|), or -Inf for zero.
func ampTodB(v float64) float64 {
	a := math.Abs(v)
	if a == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(a)
}

// Calculate returns the level statistics of signal.
func Calculate(signal []float64) Stats {
	if len(signal) == 0 {
		return Stats{
			RMS_dB:         math.Inf(-1),
			Peak_dB:        math.Inf(-1),
			CrestFactor_dB: math.Inf(-1),
		}
	}

	// Kahan-compensated mean.
	var sum, c, sumSq, peak float64
	for _, x := range signal {
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t

		sumSq += x * x
		peak = math.Max(peak, math.Abs(x))
	}

	n := float64(len(signal))
	rms := math.Sqrt(sumSq / n)

	st := Stats{
		Length:         len(signal),
		DC:             sum / n,
		RMS:            rms,
		RMS_dB:         ampTodB(rms),
		Peak:           peak,
		Peak_dB:        ampTodB(peak),
		CrestFactor_dB: math.Inf(-1),
	}

	if rms > 0 {
		st.CrestFactor = peak / rms
		st.CrestFactor_dB = ampTodB(st.CrestFactor)
	}

	return st
}

// Compare returns the deviation of got from want.
func Compare(got, want []float64) (Diff, error) {
	if len(got) != len(want) {
		return Diff{}, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(got), len(want))
	}

	var acc accumulator
	acc.add(got, want)

	return acc.result(), nil
}

// CompareTensors compares every row of got with the matching row of want,
// ignoring guard samples at both ends of each row where edge padding
// dominates.
func CompareTensors(got, want *tensor.Tensor, guard int) (Diff, error) {
	if !got.SameShape(want) {
		return Diff{}, fmt.Errorf("%w: %v vs %v", ErrLengthMismatch, got, want)
	}

	batch, channels, n := got.Shape()
	guard = max(0, min(guard, (n-1)/2))

	var acc accumulator

	for b := range batch {
		for c := range channels {
			acc.add(got.Row(b, c)[guard:n-guard], want.Row(b, c)[guard:n-guard])
		}
	}

	return acc.result(), nil
}

type accumulator struct {
	count    int
	maxAbs   float64
	errSq    float64
	signalSq float64
}

func (a *accumulator) add(got, want []float64) {
	for i, w := range want {
		d := got[i] - w
		a.maxAbs = math.Max(a.maxAbs, math.Abs(d))
		a.errSq += d * d
		a.signalSq += w * w
	}

	a.count += len(want)
}

func (a *accumulator) result() Diff {
	if a.count == 0 {
		return Diff{SNR_dB: math.Inf(1)}
	}

	n := float64(a.count)
	d := Diff{MaxAbs: a.maxAbs, RMS: math.Sqrt(a.errSq / n)}

	switch {
	case a.errSq == 0:
		d.SNR_dB = math.Inf(1)
	default:
		d.SNR_dB = 10 * math.Log10(a.signalSq/a.errSq)
	}

	return d
}
