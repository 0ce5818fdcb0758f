package activation

import (
	"fmt"
	"math"
	"slices"
)

// State keys of an AntiAlias module.
const (
	KeyUpFilter   = "up.filter"
	KeyAlpha      = "act.alpha"
	KeyBeta       = "act.beta"
	KeyDownFilter = "down.lowpass.filter"
)

// filterTolerance bounds the difference between a stored filter and the
// designed kernel on load.
const filterTolerance = 1e-6

// Entry is one named array of a State.
type Entry struct {
	Shape     []int     `yaml:"shape,flow"`
	Trainable bool      `yaml:"trainable"`
	Values    []float64 `yaml:"values,flow"`
}

// State maps dotted names to arrays, as a checkpoint layer stores them.
type State map[string]Entry

// Keys returns the entry names in sorted order.
func (s State) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}

// State returns a copy of the module state: the two filter kernels, shaped
// (1, 1, k), and the SnakeBeta parameters, shaped (1, C, 1).
func (a *AntiAlias) State() State {
	return State{
		KeyUpFilter:   filterEntry(a.up.Kernel()),
		KeyAlpha:      paramEntry(a.act.alpha),
		KeyBeta:       paramEntry(a.act.beta),
		KeyDownFilter: filterEntry(a.down.Kernel()),
	}
}

// LoadState sets alpha and beta from s. Filter entries are checked against
// the designed kernels instead of being loaded. The module is unchanged
// when an error is returned.
func (a *AntiAlias) LoadState(s State) error {
	for _, k := range s.Keys() {
		switch k {
		case KeyUpFilter, KeyAlpha, KeyBeta, KeyDownFilter:
		default:
			return fmt.Errorf("%w: unexpected key %q", ErrStateMismatch, k)
		}
	}

	if err := checkFilter(s, KeyUpFilter, a.up.Kernel()); err != nil {
		return err
	}

	if err := checkFilter(s, KeyDownFilter, a.down.Kernel()); err != nil {
		return err
	}

	alpha, err := paramValues(s, KeyAlpha, a.act.Channels())
	if err != nil {
		return err
	}

	beta, err := paramValues(s, KeyBeta, a.act.Channels())
	if err != nil {
		return err
	}

	copy(a.act.alpha.values, alpha)
	copy(a.act.beta.values, beta)

	return nil
}

func filterEntry(kernel []float64) Entry {
	return Entry{Shape: []int{1, 1, len(kernel)}, Values: kernel}
}

func paramEntry(p *Parameter) Entry {
	return Entry{Shape: p.Shape(), Trainable: true, Values: p.Values()}
}

func lookup(s State, key string, shape []int) (Entry, error) {
	e, ok := s[key]
	if !ok {
		return Entry{}, fmt.Errorf("%w: missing key %q", ErrStateMismatch, key)
	}

	if !slices.Equal(e.Shape, shape) || len(e.Values) != shape[0]*shape[1]*shape[2] {
		return Entry{}, fmt.Errorf("%w: %q has shape %v with %d values, want %v",
			ErrStateMismatch, key, e.Shape, len(e.Values), shape)
	}

	return e, nil
}

func checkFilter(s State, key string, kernel []float64) error {
	e, err := lookup(s, key, []int{1, 1, len(kernel)})
	if err != nil {
		return err
	}

	for i, v := range e.Values {
		if !(math.Abs(v-kernel[i]) <= filterTolerance) {
			return fmt.Errorf("%w: %q tap %d is %g, designed %g", ErrStateMismatch, key, i, v, kernel[i])
		}
	}

	return nil
}

func paramValues(s State, key string, channels int) ([]float64, error) {
	e, err := lookup(s, key, []int{1, channels, 1})
	if err != nil {
		return nil, err
	}

	return e.Values, nil
}
