package conv

import (
	"fmt"

	"github.com/cwbudde/algo-aliasfree/dsp/tensor"
)

// ReplicatePadTo copies src into dst with left copies of src[0] before it and
// right copies of src[len(src)-1] after it. dst must have length
// left+len(src)+right and src must not be empty.
func ReplicatePadTo(dst, src []float64, left, right int) {
	first, last := src[0], src[len(src)-1]

	for i := range left {
		dst[i] = first
	}

	copy(dst[left:], src)

	tail := dst[left+len(src):]
	for i := range right {
		tail[i] = last
	}
}

// ReplicatePad extends the time axis of every row of x by repeating its edge
// samples: left samples before the first and right samples after the last.
func ReplicatePad(x *tensor.Tensor, left, right int) (*tensor.Tensor, error) {
	if left < 0 || right < 0 {
		return nil, fmt.Errorf("%w: (%d, %d)", ErrInvalidPadding, left, right)
	}

	batch, channels, n := x.Shape()

	out, err := tensor.New(batch, channels, left+n+right)
	if err != nil {
		return nil, err
	}

	for b := range batch {
		for c := range channels {
			ReplicatePadTo(out.Row(b, c), x.Row(b, c), left, right)
		}
	}

	return out, nil
}
