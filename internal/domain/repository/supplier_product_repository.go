package repository

import (
	"context"

	"github.com/jhoicas/peakers-pos-api/internal/domain/entity"
)

// SupplierProductRepository puerto para registros de reabastecimiento de producto.
type SupplierProductRepository interface {
	Create(ctx context.Context, sp *entity.SupplierProduct) error
	GetByID(ctx context.Context, id string) (*entity.SupplierProduct, error)
	GetForUpdate(ctx context.Context, id string) (*entity.SupplierProduct, error)
	Update(ctx context.Context, sp *entity.SupplierProduct) error
}
