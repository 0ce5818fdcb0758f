package window

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameter is wrapped by every validation error in this package.
var ErrInvalidParameter = errors.New("window: invalid parameter")

func validateLength(size int) error {
	if size <= 0 {
		return fmt.Errorf("%w: window size must be > 0: %d", ErrInvalidParameter, size)
	}
	return nil
}

func validateKaiser(size int, beta float64) error {
	if size <= 0 {
		return validateLength(size)
	}
	if beta < 0 || math.IsNaN(beta) {
		return fmt.Errorf("%w: kaiser beta must be >= 0: %f", ErrInvalidParameter, beta)
	}
	return nil
}
