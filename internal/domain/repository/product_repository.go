package repository

import (
	"context"

	"github.com/jhoicas/peakers-pos-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve (nil, nil) si no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate lee el producto bloqueando la fila (SELECT ... FOR UPDATE) hasta el fin de la tx.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// UpdateStock escribe el nuevo nivel; solo debe llamarse con la fila bloqueada.
	UpdateStock(ctx context.Context, id string, stock int64) error
}
