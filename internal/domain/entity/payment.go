package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayableKind tipo de entidad pagable.
type PayableKind string

const (
	PayableSupplierProduct PayableKind = "supplier_product"
	PayableMaterialSupply  PayableKind = "material_supply"
)

// Payment pago registrado contra una entidad pagable. Solo inserción; nunca se modifica.
type Payment struct {
	ID          string
	Kind        PayableKind
	EntityID    string // supplier_product_id o lot id
	Amount      decimal.Decimal
	Method      string
	Reference   *string
	PaymentDate time.Time
}
