// Package money normalizes monetary amounts for persistence.
//
// The backend compares order totals as exact decimals, so amounts must never
// round-trip through binary floating point. Fixtures carry
// shopspring/decimal values; the persisted form is primitive.Decimal128 with
// exactly two fractional digits.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Normalize rounds an amount to two decimals, half away from zero.
func Normalize(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ToDecimal128 converts an amount to its persisted Decimal128 form,
// normalized to two decimals.
func ToDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	v, err := primitive.ParseDecimal128(Normalize(d).StringFixed(2))
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("money: parse %s: %w", d.String(), err)
	}
	return v, nil
}

// MustDecimal128 is ToDecimal128 for fixture literals that are known valid.
func MustDecimal128(d decimal.Decimal) primitive.Decimal128 {
	v, err := ToDecimal128(d)
	if err != nil {
		panic(err)
	}
	return v
}

// FromDecimal128 parses a persisted amount back into a decimal.
func FromDecimal128(v primitive.Decimal128) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("money: parse %s: %w", v.String(), err)
	}
	return d, nil
}
