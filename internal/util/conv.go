package util

import (
	"strconv"
)

// MustParseUint converts a string to an unsigned integer, returning 0 on failure.
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}

// ParsePercent parses a progress percentage, rejecting non-numeric values and
// anything outside [0,100]. ParseFloat accepts "NaN", which compares false
// against any bound, so the range check is written to fail it too.
func ParsePercent(s string) (float64, error) {
	p, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidProgress
	}
	if !(p >= 0 && p <= 100) {
		return 0, ErrInvalidProgress
	}
	return p, nil
}
