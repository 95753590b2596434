package utils

import (
	"fmt"
	"math"
)

// RoundCurrency rounds an amount to two decimal places, half-up at the
// cent (0.005 rounds to 0.01). The epsilon absorbs float artefacts like
// 1.005 being stored as 1.00499999....
func RoundCurrency(amount float64) float64 {
	return math.Floor(amount*100+0.5+1e-9) / 100
}

// FormatGBP formats an amount the way the stall's tills display it.
// Example: 12.5 -> "£12.50"
func FormatGBP(amount float64) string {
	return fmt.Sprintf("£%.2f", RoundCurrency(amount))
}
