// Package core defines the estimate domain model: categories, work items,
// measured surfaces, settings, payment records, and the result shapes the
// engine produces from them.
package core

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a user-entered monetary string to a decimal.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and
// rejects signs, blank input, and anything non-numeric. Zero is allowed;
// negative values are not representable.
//
// Examples:
//
//	ParseAmount("12.34")  -> 12.34, nil
//	ParseAmount("12,34")  -> 12.34, nil
//	ParseAmount("-1")     -> 0, ErrInvalidAmount
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return decimal.Zero, ErrInvalidAmount
	}
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '.' {
			return decimal.Zero, ErrInvalidAmount
		}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// FormatAmount renders a monetary value with fixed two-decimal precision.
// Every amount the engine exposes goes through this so results are
// reproducible as strings.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
