// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/financing-sim/pkg/constants"
	"github.com/shopspring/decimal"
)

// RoundMoney rounds half away from zero to two places using decimal
// arithmetic, so values like 1.005 are not misrounded by binary error.
// NaN and infinities have no decimal form and round to zero.
func RoundMoney(val float64) decimal.Decimal {
	if !IsFinite(val) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(val).Round(constants.CurrencyPlaces)
}

// ToCents converts an amount to integer cents, rounding half away from zero.
func ToCents(val float64) int64 {
	return RoundMoney(val).Shift(constants.CurrencyPlaces).IntPart()
}

// FromCents converts integer cents back to an amount.
func FromCents(cents int64) float64 {
	return decimal.New(cents, -constants.CurrencyPlaces).InexactFloat64()
}

// IsFinite reports whether val is neither NaN nor infinite.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Max returns the maximum of two float64 values
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * percentage / constants.PercentageMultiplier
}
