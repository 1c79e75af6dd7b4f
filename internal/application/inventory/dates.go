package inventory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/peakers-pos-api/internal/domain"
)

const dateLayout = "2006-01-02"

// parseSupplyDate interpreta YYYY-MM-DD en UTC; vacío devuelve fallback.
func parseSupplyDate(field, s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return fallback, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, domain.Invalid(field, "formato de fecha esperado YYYY-MM-DD")
	}
	return t, nil
}

// requireMoney importe >= 0 con a lo sumo dos decimales.
func requireMoney(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return domain.Invalid(field, "no puede ser negativo")
	}
	return domain.CheckScale(field, v, domain.MoneyScale)
}

// requireQuantity cantidad de material > 0 con a lo sumo cuatro decimales.
func requireQuantity(field string, v decimal.Decimal) error {
	if !v.IsPositive() {
		return domain.Invalid(field, "debe ser mayor que 0")
	}
	return domain.CheckScale(field, v, domain.QuantityScale)
}
