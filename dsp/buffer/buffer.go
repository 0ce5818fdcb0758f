package buffer

// Scratch holds the work slices of a single Process call. Slice contents are
// left over from earlier use and must be overwritten by the caller.
type Scratch struct {
	slices [][]float64
}

// Slice returns work slice i resized to n samples. Distinct indices never
// share memory.
func (s *Scratch) Slice(i, n int) []float64 {
	for len(s.slices) <= i {
		s.slices = append(s.slices, nil)
	}

	if cap(s.slices[i]) < n {
		s.slices[i] = make([]float64, n)
	}

	s.slices[i] = s.slices[i][:n]

	return s.slices[i]
}

// Len returns the number of slices handed out so far.
func (s *Scratch) Len() int {
	return len(s.slices)
}
