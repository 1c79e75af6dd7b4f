package repository

import (
	"context"

	"github.com/jhoicas/peakers-pos-api/internal/domain/entity"
)

// SupplierRepository puerto de datos maestros de proveedores. Nombre duplicado -> ConflictError.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
}
