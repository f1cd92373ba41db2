// Package money converts between shopspring decimals and Postgres NUMERIC.
// Amounts never pass through float64.
package money

import (
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// Scale is the number of fraction digits stored for every amount.
const Scale = 2

// FromNumeric converts a pgtype.Numeric to a decimal. NULL and malformed
// values become zero.
func FromNumeric(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	val, err := n.Value()
	if err != nil || val == nil {
		return decimal.Zero
	}
	s, ok := val.(string)
	if !ok {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ToNumeric converts a decimal to a pgtype.Numeric rounded to Scale digits.
func ToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric
	_ = n.Scan(d.StringFixed(Scale))
	return n
}

// String formats a NUMERIC for JSON responses, "0.00" when NULL.
func String(n pgtype.Numeric) string {
	return FromNumeric(n).StringFixed(Scale)
}

// Parse parses a client-supplied amount.
func Parse(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
