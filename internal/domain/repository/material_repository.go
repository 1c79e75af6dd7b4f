package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/peakers-pos-api/internal/domain/entity"
)

// MaterialRepository puerto para materias primas y sus lotes.
type MaterialRepository interface {
	Create(ctx context.Context, material *entity.RawMaterial) error
	GetByID(ctx context.Context, id string) (*entity.RawMaterial, error)

	CreateLot(ctx context.Context, lot *entity.MaterialLot) error
	GetLot(ctx context.Context, lotID string) (*entity.MaterialLot, error)
	// ListLots lectura sin bloqueo, ordenada por fecha de suministro ascendente.
	ListLots(ctx context.Context, materialID string) ([]entity.MaterialLot, error)
	// ListLotsForUpdate igual que ListLots pero bloquea las filas de los lotes.
	ListLotsForUpdate(ctx context.Context, materialID string) ([]entity.MaterialLot, error)
	UpdateLotQuantity(ctx context.Context, lotID string, quantity decimal.Decimal) error
}

// RecipeRepository puerto para la receta (BOM) de cada producto.
type RecipeRepository interface {
	ListByProduct(ctx context.Context, productID string) ([]entity.RecipeEntry, error)
	// Replace sustituye todas las líneas de la receta del producto.
	Replace(ctx context.Context, productID string, entries []entity.RecipeEntry) error
}
