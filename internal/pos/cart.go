package pos

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"qahwaan-system/internal/database/models"
)

// ValidateCart checks and normalizes candidate cart lines: names must be
// non-empty, quantities positive and finite, prices non-negative and finite.
// Prices are rounded to 2 decimal places. The input is not modified.
func ValidateCart(lines []models.CartLine) (models.CartLines, error) {
	if len(lines) == 0 {
		return nil, &ValidationError{Reason: "cart is empty"}
	}

	cart := make(models.CartLines, 0, len(lines))
	for i, line := range lines {
		name := strings.TrimSpace(line.Name)
		if name == "" {
			return nil, validationf("cart line %d: name is required", i+1)
		}
		if math.IsNaN(line.Qty) || math.IsInf(line.Qty, 0) || line.Qty <= 0 {
			return nil, validationf("cart line %d (%s): qty must be a positive number", i+1, name)
		}
		if math.IsNaN(line.Price) || math.IsInf(line.Price, 0) || line.Price < 0 {
			return nil, validationf("cart line %d (%s): price must be a non-negative number", i+1, name)
		}

		cart = append(cart, models.CartLine{
			Name:  name,
			Qty:   line.Qty,
			Price: roundCurrency(line.Price),
		})
	}

	return cart, nil
}

// ValidatePayment checks the fields common to every finalize request.
func ValidatePayment(method, staff string, amountReceived float64) error {
	switch method {
	case models.PaymentCash, models.PaymentCard, models.PaymentOnline:
	default:
		return validationf("invalid payment_method %q", method)
	}
	if strings.TrimSpace(staff) == "" {
		return &ValidationError{Reason: "staff is required"}
	}
	if math.IsNaN(amountReceived) || math.IsInf(amountReceived, 0) || amountReceived < 0 {
		return &ValidationError{Reason: "amount_received must be a non-negative number"}
	}
	return nil
}

// CartTotals returns the subtotal (rounded to currency precision) and the
// total item count of a cart.
func CartTotals(cart models.CartLines) (subtotal, itemCount float64) {
	sum := decimal.Zero
	count := decimal.Zero
	for _, line := range cart {
		qty := decimal.NewFromFloat(line.Qty)
		sum = sum.Add(decimal.NewFromFloat(line.Price).Mul(qty))
		count = count.Add(qty)
	}
	return sum.Round(2).InexactFloat64(), count.InexactFloat64()
}

func roundCurrency(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
