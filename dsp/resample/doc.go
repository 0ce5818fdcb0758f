// Package resample provides integer-ratio up- and downsamplers built from
// Kaiser-windowed sinc kernels, as used around alias-free activations.
//
// Components:
//   - LowPass: replicate-padded depthwise FIR with an optional stride
//   - Upsampler: zero-stuffing interpolation by a transposed convolution
//   - Downsampler: a LowPass at cutoff 0.5/ratio and stride ratio
//   - Upsample2x, Downsample2x, Resample: one-shot helpers over the above
//
// Default kernel sizes are KernelSizeForRatio(ratio) = 6*ratio taps, with
// cutoff 0.5/ratio and transition half-width 0.6/ratio. For equal ratios an
// Upsampler followed by a Downsampler preserves the input length:
//
//	up, _ := resample.NewUpsampler(2, resample.WithKernelSize(12))
//	down, _ := resample.NewDownsampler(2, resample.WithKernelSize(12))
//	y, _ := up.Process(x)   // (B, C, 2T)
//	z, _ := down.Process(y) // (B, C, T)
//
// Kernels are designed once in the constructor and never modified, so a
// resampler can be shared by concurrent Process calls.
package resample
