package util

import (
	"errors"

	"github.com/shopspring/decimal"
)

var maxCost = decimal.NewFromInt(10000000)

// ValidateCost checks a maintenance cost (zero is fine, negative is not).
func ValidateCost(cost decimal.Decimal) error {
	if cost.IsNegative() {
		return errors.New("el costo no puede ser negativo")
	}
	if cost.GreaterThanOrEqual(maxCost) {
		return errors.New("el costo supera el máximo permitido")
	}
	return nil
}

// ValidateInventoryCode checks the normalized inventory code (non-empty,
// reasonable length).
func ValidateInventoryCode(code string) error {
	if code == "" {
		return errors.New("el código de inventario es obligatorio")
	}
	if len(code) > 50 {
		return errors.New("el código de inventario no puede exceder 50 caracteres")
	}
	return nil
}
