package utils

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Prices travel as decimal currency strings on the wire but are stored and
// compared as int64 minor units (cents), so equal-or-lower bids can never
// slip through a float rounding step.

// ParseAmount converts a decimal currency string ("150.00") to minor units.
// The value must be positive and carry at most two fraction digits.
func ParseAmount(value string) (int64, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", value, err)
	}
	if !d.IsPositive() {
		return 0, fmt.Errorf("parse amount %q: amount must be positive", value)
	}
	cents := d.Shift(2)
	if !cents.IsInteger() {
		return 0, fmt.Errorf("parse amount %q: more than two fraction digits", value)
	}
	if !cents.BigInt().IsInt64() {
		return 0, fmt.Errorf("parse amount %q: amount out of range", value)
	}
	return cents.IntPart(), nil
}

// FormatAmount converts minor units back to a decimal currency string.
func FormatAmount(minorUnits int64) string {
	return decimal.NewFromInt(minorUnits).Shift(-2).StringFixed(2)
}
