package util

import (
	"fmt"
	"strconv"
)

// ParseAmountCents converts a decimal money string ("150", "150.50") into
// integer cents. Empty input is zero, matching the optional money fields on
// the booking form. Negative values are accepted here; business rules on
// sign belong to the billing engine.
func ParseAmountCents(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if f >= 0 {
		return int64(f*100 + 0.5), nil
	}
	return int64(f*100 - 0.5), nil
}

// FormatCents renders integer cents as a two-decimal string.
func FormatCents(cents int64) string {
	return strconv.FormatFloat(float64(cents)/100.0, 'f', 2, 64)
}

// ValidateBillingDay checks the day-of-month range before it reaches the
// due-date calculator. The calculator still rejects days that fall outside
// the target month.
func ValidateBillingDay(day int) error {
	if day < 1 || day > 31 {
		return fmt.Errorf("billing day must be between 1 and 31, got %d", day)
	}
	return nil
}
