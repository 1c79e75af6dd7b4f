package repository

import (
	"context"

	"github.com/jhoicas/peakers-pos-api/internal/domain/entity"
)

// PaymentRepository pagos de solo inserción. ListByEntity devuelve del más reciente al más antiguo.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	ListByEntity(ctx context.Context, kind entity.PayableKind, entityID string) ([]*entity.Payment, error)
}
