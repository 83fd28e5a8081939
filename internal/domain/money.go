package domain

import (
	"fmt"
	"math"
)

// ToMinorUnits converts a major-unit amount (dollars, euros) to integer minor
// units (cents) using round-half-up on decimal cents. Conversion happens
// exactly once, at the gateway boundary; everything past it speaks minor units.
func ToMinorUnits(major float64) (int64, error) {
	if math.IsNaN(major) || math.IsInf(major, 0) {
		return 0, fmt.Errorf("%w: %v is not a finite number", ErrInvalidAmount, major)
	}
	if major < 0 {
		return 0, fmt.Errorf("%w: %v is negative", ErrInvalidAmount, major)
	}
	return int64(math.Round(major * 100)), nil
}
