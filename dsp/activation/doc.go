// Package activation provides the Snake family of periodic activations and
// an anti-aliased wrapper that evaluates them at an increased sample rate.
//
// Snake and SnakeBeta carry trainable per-channel parameters (alpha, and for
// SnakeBeta also beta) that start at zero. This package never updates them;
// an external optimizer does so through Parameter.Set or Parameter.Data
// between calls.
//
// AntiAlias composes resample.Upsampler, SnakeBeta and resample.Downsampler:
//
//	act, _ := activation.NewAntiAlias(channels)
//	y, _ := act.Process(x) // same shape as x
//
// Its State method exposes the parameters and filter kernels under the names
// up.filter, act.alpha, act.beta and down.lowpass.filter.
package activation
