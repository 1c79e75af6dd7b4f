package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto del catálogo POS. Stock es la única fuente de verdad de unidades disponibles
// y nunca queda negativo al confirmar una transacción.
type Product struct {
	ID         string
	Name       string
	CategoryID *string // opcional
	Price      decimal.Decimal
	Stock      int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
