// Package buffer pools the scratch slices used inside Process calls, so
// processors that are shared between goroutines can reuse work memory
// without holding per-instance state.
package buffer
