package testutil

import (
	"fmt"
	"math"
	"testing"

	"github.com/cwbudde/algo-aliasfree/dsp/tensor"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireShape fails t unless x has shape (batch, channels, length).
func RequireShape(t *testing.T, x *tensor.Tensor, batch, channels, length int) {
	t.Helper()
	if x == nil {
		t.Fatalf("nil tensor, want shape (%d, %d, %d)", batch, channels, length)
	}
	b, c, n := x.Shape()
	if b != batch || c != channels || n != length {
		t.Fatalf("shape = (%d, %d, %d), want (%d, %d, %d)", b, c, n, batch, channels, length)
	}
}

// RequireTensorNearlyEqual fails t if the tensors differ in shape or any
// element differs by more than eps.
func RequireTensorNearlyEqual(t *testing.T, got, want *tensor.Tensor, eps float64) {
	t.Helper()
	if !got.SameShape(want) {
		t.Fatalf("shape mismatch: got %v, want %v", got, want)
	}
	RequireSliceNearlyEqual(t, got.Data(), want.Data(), eps)
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// MaxAbsDiff returns the maximum absolute difference between two slices.
// Returns an error if the slices differ in length.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	maxDiff := 0.0
	for i := range a {
		d := math.Abs(a[i] - b[i])
		if d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff, nil
}
