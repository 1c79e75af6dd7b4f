package ledger

import "github.com/shopspring/decimal"

// SaleTotal Σ subtotales + vat − discount.
func SaleTotal(subtotals []decimal.Decimal, vat, discount decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range subtotals {
		sum = sum.Add(s)
	}
	return sum.Add(vat).Sub(discount)
}

// Balance saldo derivado de una entidad pagable: owed − Σ pagos. Puede quedar negativo
// (sobrepago aceptado).
func Balance(owed decimal.Decimal, payments []decimal.Decimal) (totalPaid, balance decimal.Decimal) {
	totalPaid = decimal.Zero
	for _, p := range payments {
		totalPaid = totalPaid.Add(p)
	}
	return totalPaid, owed.Sub(totalPaid)
}
