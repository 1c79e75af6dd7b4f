package repository

import (
	"context"
	"time"

	"github.com/jhoicas/peakers-pos-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas y sus líneas.
type SaleRepository interface {
	// Create inserta la cabecera; un número de orden repetido devuelve domain.ConflictError.
	Create(ctx context.Context, sale *entity.Sale) error
	CreateLine(ctx context.Context, line *entity.SaleLine) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Sale, error)
	ExistsOrderNumber(ctx context.Context, orderNumber string) (bool, error)
	ListLines(ctx context.Context, saleID string) ([]*entity.SaleLine, error)
	UpdateStatus(ctx context.Context, id string, status entity.SaleStatus, at time.Time) error
}
