// Package conv provides the short-kernel convolution primitives used by the
// alias-free resamplers.
//
// Two strided kernels operate on plain slices:
//
//   - [Decimate]: valid cross-correlation with a stride, the sliding dot
//     product of a neural-network conv1d layer. Output length is
//     (n-k)/stride + 1.
//   - [Interpolate]: transposed convolution with a stride, equivalent to
//     zero-stuffing the input by stride and convolving. Output length is
//     (n-1)*stride + k.
//
// [Depthwise] and [DepthwiseTranspose] lift these to (batch, channels, time)
// tensors, applying one shared kernel to every channel (groups == channels).
// [ReplicatePad] extends rows with copies of their edge samples.
//
// The slice-level functions have To variants writing into a caller-provided
// buffer so the resamplers can reuse scratch space across rows.
//
// Kernels here are a handful of taps, so only direct time-domain evaluation
// is provided.
package conv
