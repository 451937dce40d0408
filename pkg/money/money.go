// Package money converts between decimal amounts and the integer cents the
// ledger stores.
package money

import (
	"errors"

	"github.com/shopspring/decimal"
)

const (
	// MaxCents bounds every amount the ledger accepts.
	MaxCents int64 = 100_000_000_000
	// MaxQuantity bounds a line quantity. MaxCents times MaxQuantity
	// leaves room in int64 for summing lines across orders.
	MaxQuantity = 10_000
)

var (
	// ErrNegative is returned when a money amount is below zero.
	ErrNegative = errors.New("amount must not be negative")
	// ErrOutOfRange is returned when an amount exceeds MaxCents.
	ErrOutOfRange = errors.New("amount is out of range")

	maxCents = decimal.NewFromInt(MaxCents)
	minCents = decimal.NewFromInt(-MaxCents)
)

// FromDecimal converts a decimal amount to cents, rounding half away from
// zero. Amounts beyond MaxCents saturate; use Parse to reject them.
func FromDecimal(d decimal.Decimal) int64 {
	c := d.Shift(2).Round(0)
	switch {
	case c.GreaterThan(maxCents):
		return MaxCents
	case c.LessThan(minCents):
		return -MaxCents
	}
	return c.IntPart()
}

// Parse converts d to cents and rejects amounts beyond MaxCents.
func Parse(d decimal.Decimal) (int64, error) {
	c := d.Shift(2).Round(0)
	if c.GreaterThan(maxCents) || c.LessThan(minCents) {
		return 0, ErrOutOfRange
	}
	return c.IntPart(), nil
}

// FromFloat converts a float amount to cents.
func FromFloat(f float64) int64 {
	return FromDecimal(decimal.NewFromFloat(f))
}

// ParseNonNegative is Parse that also rejects negative amounts.
func ParseNonNegative(d decimal.Decimal) (int64, error) {
	if d.IsNegative() {
		return 0, ErrNegative
	}
	return Parse(d)
}

// ToDecimal converts cents to a decimal amount.
func ToDecimal(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// ToFloat converts cents to a float for JSON output.
func ToFloat(cents int64) float64 {
	return ToDecimal(cents).InexactFloat64()
}

// Format renders cents with exactly two decimals, e.g. 1250 -> "12.50".
func Format(cents int64) string {
	return ToDecimal(cents).StringFixed(2)
}

// Percent returns pct percent of cents, rounded to the nearest cent.
func Percent(cents int64, pct decimal.Decimal) int64 {
	return ToDecimal(cents).Mul(pct).Div(decimal.NewFromInt(100)).Shift(2).Round(0).IntPart()
}

// Times multiplies a unit price by a quantity.
func Times(cents int64, qty int) int64 {
	return cents * int64(qty)
}
