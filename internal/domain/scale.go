package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Escalas persistidas: dinero NUMERIC(14,2), cantidades de material NUMERIC(18,4).
const (
	MoneyScale    int32 = 2
	QuantityScale int32 = 4
)

// CheckScale rechaza valores con más decimales significativos que scale. "1.50" y "1.500"
// pasan con escala 2; "0.001" no.
func CheckScale(field string, v decimal.Decimal, scale int32) error {
	if !v.Equal(v.Truncate(scale)) {
		return Invalid(field, fmt.Sprintf("admite como máximo %d decimales", scale))
	}
	return nil
}
