package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/peakers-pos-api/internal/domain/entity"
)

// LotDraw cantidad a descontar de un lote concreto.
type LotDraw struct {
	LotID    string
	Quantity decimal.Decimal
}

// FIFOPlan resultado de planificar un consumo sobre los lotes de un material.
type FIFOPlan struct {
	Draws     []LotDraw
	Allocated decimal.Decimal
	Shortfall decimal.Decimal
}

// Satisfied indica si los lotes cubren toda la necesidad.
func (p FIFOPlan) Satisfied() bool { return !p.Shortfall.IsPositive() }

// SortLotsFIFO ordena por fecha de suministro ascendente; empates por creación y luego ID
// para que el orden sea determinista.
func SortLotsFIFO(lots []entity.MaterialLot) {
	sort.SliceStable(lots, func(i, j int) bool {
		a, b := lots[i], lots[j]
		if !a.SupplyDate.Equal(b.SupplyDate) {
			return a.SupplyDate.Before(b.SupplyDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

// PlanFIFO reparte needed sobre los lotes empezando por el más antiguo. Un lote solo se toca
// cuando todos los anteriores quedaron en cero. No modifica lots.
func PlanFIFO(lots []entity.MaterialLot, needed decimal.Decimal) FIFOPlan {
	ordered := make([]entity.MaterialLot, len(lots))
	copy(ordered, lots)
	SortLotsFIFO(ordered)

	remaining := needed
	plan := FIFOPlan{Allocated: decimal.Zero}
	for _, lot := range ordered {
		if !remaining.IsPositive() {
			break
		}
		if !lot.Quantity.IsPositive() {
			continue
		}
		take := decimal.Min(remaining, lot.Quantity)
		plan.Draws = append(plan.Draws, LotDraw{LotID: lot.ID, Quantity: take})
		plan.Allocated = plan.Allocated.Add(take)
		remaining = remaining.Sub(take)
	}
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	plan.Shortfall = remaining
	return plan
}

// LatestLot devuelve el lote con fecha de suministro más reciente (destino de las devoluciones),
// o nil si no hay lotes.
func LatestLot(lots []entity.MaterialLot) *entity.MaterialLot {
	if len(lots) == 0 {
		return nil
	}
	ordered := make([]entity.MaterialLot, len(lots))
	copy(ordered, lots)
	SortLotsFIFO(ordered)
	latest := ordered[len(ordered)-1]
	return &latest
}
