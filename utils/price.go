package utils

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Catalog money format: fixed-point, 9 significant digits, 2 of them
// fractional.
var maxPrice = decimal.RequireFromString("9999999.99")

func ValidatePrice(p decimal.Decimal) error {
	if p.IsNegative() {
		return errors.New("price must not be negative")
	}
	if p.Exponent() < -2 {
		return errors.New("price allows at most 2 decimal places")
	}
	if p.GreaterThan(maxPrice) {
		return errors.New("price exceeds the maximum of 9999999.99")
	}
	return nil
}
