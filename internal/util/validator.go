package util

import (
	"fmt"
	"math"
)

// ValidateAmount validates a monetary amount (positive, below the hard cap).
func ValidateAmount(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive, got %f", amount)
	}
	if amount >= 10000000 { // cap single amounts at 10 million
		return fmt.Errorf("amount too large, got %f", amount)
	}
	return nil
}

// ValidateDescription validates a transaction description (non-empty, bounded).
func ValidateDescription(description string) error {
	if description == "" {
		return fmt.Errorf("description is empty")
	}
	if len(description) > 255 {
		return fmt.Errorf("description too long, max 255 characters")
	}
	return nil
}

// ToCent converts a float amount to integer cents, rounding to two decimals.
func ToCent(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FromCent converts integer cents back to a float amount.
func FromCent(cent int64) float64 {
	return float64(cent) / 100.0
}
