package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/peakers-pos-api/internal/domain/entity"
)

// costScale decimales del costo promedio informado.
const costScale = 4

// WeightedCost costo promedio ponderado tras sumar una entrada al existente:
// ((qty * cost) + (inQty * inCost)) / (qty + inQty). Sin cantidad devuelve 0.
func WeightedCost(qty, cost, inQty, inCost decimal.Decimal) decimal.Decimal {
	sum := qty.Add(inQty)
	if !sum.IsPositive() {
		return decimal.Zero
	}
	return qty.Mul(cost).Add(inQty.Mul(inCost)).Div(sum)
}

// AverageUnitCost valoriza el remanente de los lotes: promedio ponderado del precio unitario
// por la cantidad que aún queda en cada lote. Los lotes agotados no cuentan.
func AverageUnitCost(lots []entity.MaterialLot) decimal.Decimal {
	qty, cost := decimal.Zero, decimal.Zero
	for _, l := range lots {
		if !l.Quantity.IsPositive() {
			continue
		}
		cost = WeightedCost(qty, cost, l.Quantity, l.UnitPrice)
		qty = qty.Add(l.Quantity)
	}
	return cost.Round(costScale)
}
