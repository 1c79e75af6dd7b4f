package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/peakers-pos-api/internal/domain/entity"
)

// MaterialNeeds acumula cantidad de material por materialID para una operación completa.
type MaterialNeeds map[string]decimal.Decimal

// AddRecipe suma quantityPerUnit * units por cada línea de la receta.
func (n MaterialNeeds) AddRecipe(bom []entity.RecipeEntry, units int64) {
	if units <= 0 {
		return
	}
	u := decimal.NewFromInt(units)
	for _, e := range bom {
		cur, ok := n[e.MaterialID]
		if !ok {
			cur = decimal.Zero
		}
		n[e.MaterialID] = cur.Add(e.QuantityPerUnit.Mul(u))
	}
}

// MaterialIDs devuelve las claves ordenadas; es el orden de bloqueo de lotes.
func (n MaterialNeeds) MaterialIDs() []string {
	ids := make([]string, 0, len(n))
	for id, q := range n {
		if q.IsPositive() {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
