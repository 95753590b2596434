package services

import (
	"math"

	"github.com/JKLegendary/enterprise/models"
	"github.com/JKLegendary/enterprise/utils"
)

// LineTotal returns the price of one order line.
func LineTotal(line models.OrderLine) float64 {
	return utils.RoundCurrency(line.Price * float64(line.Quantity))
}

// OrderTotal sums price x quantity over the lines and rounds to the cent.
// Pure arithmetic: same lines in, same total out.
func OrderTotal(lines []models.OrderLine) float64 {
	total := 0.0
	for _, line := range lines {
		total += line.Price * float64(line.Quantity)
	}
	return utils.RoundCurrency(total)
}

// ComputeChange returns tendered minus total. It fails with
// ErrInsufficientPayment when tendered is not a finite amount covering the
// total; a negative tender falls under the same check.
func ComputeChange(total, tendered float64) (float64, error) {
	if math.IsNaN(tendered) || math.IsInf(tendered, 0) {
		return 0, ErrInsufficientPayment
	}
	if tendered < total {
		return 0, ErrInsufficientPayment
	}
	return utils.RoundCurrency(tendered - total), nil
}
