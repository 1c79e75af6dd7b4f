package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/peakers-pos-api/internal/domain"
	"github.com/jhoicas/peakers-pos-api/internal/domain/entity"
	"github.com/jhoicas/peakers-pos-api/internal/domain/ledger"
	"github.com/jhoicas/peakers-pos-api/internal/domain/repository"
)

// Movement cantidades movidas por una operación del asignador, para métricas y logs.
type Movement struct {
	Consumed decimal.Decimal
	Returned decimal.Decimal
}

// MaterialAllocator mantiene los lotes de materia prima consistentes con los movimientos de
// stock de productos con receta. Consume en orden FIFO por fecha de suministro y devuelve al
// lote más reciente.
type MaterialAllocator struct {
	materials repository.MaterialRepository
	now       func() time.Time
	moved     Movement
}

// NewMaterialAllocator construye el asignador sobre los repositorios de la tx en curso.
func NewMaterialAllocator(materials repository.MaterialRepository, now func() time.Time) *MaterialAllocator {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &MaterialAllocator{
		materials: materials,
		now:       now,
		moved:     Movement{Consumed: decimal.Zero, Returned: decimal.Zero},
	}
}

// Moved totales acumulados por este asignador.
func (a *MaterialAllocator) Moved() Movement { return a.moved }

// Apply contrato base: unitsDelta < 0 consume quantityPerUnit*|unitsDelta| por material,
// unitsDelta > 0 lo devuelve.
func (a *MaterialAllocator) Apply(ctx context.Context, bom []entity.RecipeEntry, unitsDelta int64) error {
	switch {
	case unitsDelta < 0:
		needs := ledger.MaterialNeeds{}
		needs.AddRecipe(bom, -unitsDelta)
		return a.Consume(ctx, needs)
	case unitsDelta > 0:
		needs := ledger.MaterialNeeds{}
		needs.AddRecipe(bom, unitsDelta)
		return a.Return(ctx, needs)
	}
	return nil
}

// Lock bloquea los lotes de los materiales en orden de ID. Se usa cuando una misma tx va a
// devolver y consumir sobre conjuntos distintos de materiales.
func (a *MaterialAllocator) Lock(ctx context.Context, materialIDs []string) error {
	for _, id := range materialIDs {
		if _, err := a.materials.ListLotsForUpdate(ctx, id); err != nil {
			return fmt.Errorf("bloquear lotes de %s: %w", id, err)
		}
	}
	return nil
}

// Consume descuenta cada necesidad de los lotes más antiguos primero. Si la suma de lotes no
// alcanza, InsufficientMaterialError; el llamador hace Rollback de toda la operación.
func (a *MaterialAllocator) Consume(ctx context.Context, needs ledger.MaterialNeeds) error {
	for _, materialID := range needs.MaterialIDs() {
		needed := needs[materialID]
		lots, err := a.materials.ListLotsForUpdate(ctx, materialID)
		if err != nil {
			return fmt.Errorf("leer lotes de %s: %w", materialID, err)
		}
		plan := ledger.PlanFIFO(lots, needed)
		if !plan.Satisfied() {
			return &domain.InsufficientMaterialError{MaterialID: materialID, Shortfall: plan.Shortfall}
		}
		remaining := make(map[string]decimal.Decimal, len(lots))
		for _, lot := range lots {
			remaining[lot.ID] = lot.Quantity
		}
		for _, d := range plan.Draws {
			if err := a.materials.UpdateLotQuantity(ctx, d.LotID, remaining[d.LotID].Sub(d.Quantity)); err != nil {
				return fmt.Errorf("actualizar lote %s: %w", d.LotID, err)
			}
		}
		a.moved.Consumed = a.moved.Consumed.Add(plan.Allocated)
	}
	return nil
}

// Return suma cada cantidad al lote con fecha más reciente del material; sin lotes, crea uno
// fechado ahora con la cantidad devuelta. No reconstruye de qué lote salió el material.
func (a *MaterialAllocator) Return(ctx context.Context, needs ledger.MaterialNeeds) error {
	for _, materialID := range needs.MaterialIDs() {
		qty := needs[materialID]
		lots, err := a.materials.ListLotsForUpdate(ctx, materialID)
		if err != nil {
			return fmt.Errorf("leer lotes de %s: %w", materialID, err)
		}
		if latest := ledger.LatestLot(lots); latest != nil {
			if err := a.materials.UpdateLotQuantity(ctx, latest.ID, latest.Quantity.Add(qty)); err != nil {
				return fmt.Errorf("actualizar lote %s: %w", latest.ID, err)
			}
		} else {
			now := a.now()
			lot := &entity.MaterialLot{
				ID:               uuid.New().String(),
				MaterialID:       materialID,
				SuppliedQuantity: decimal.Zero,
				Quantity:         qty,
				UnitPrice:        decimal.Zero,
				SupplyDate:       now,
				CreatedAt:        now,
			}
			if err := a.materials.CreateLot(ctx, lot); err != nil {
				return fmt.Errorf("crear lote de devolución para %s: %w", materialID, err)
			}
		}
		a.moved.Returned = a.moved.Returned.Add(qty)
	}
	return nil
}
