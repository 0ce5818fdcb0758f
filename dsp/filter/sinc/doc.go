// Package sinc designs Kaiser-windowed sinc low-pass kernels for the
// alias-free resamplers and analyzes their frequency response.
//
// [KaiserSinc] is the designer used by dsp/resample. Kernels are deterministic
// functions of (cutoff, halfWidth, kernelSize), so a resampler computes its
// kernel once at construction and never changes it.
//
// [FrequencyResponse] samples |H(f)| on [0, 0.5] with an FFT and is used by
// tests and by cmd/aainfo to report DC gain, -3 dB point and Nyquist level.
package sinc
