package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawMaterial materia prima (ej. tela, tinta) con su unidad de medida.
type RawMaterial struct {
	ID        string
	Name      string
	Unit      string
	CreatedAt time.Time
}

// RecipeEntry línea de la receta (BOM): cantidad de material por unidad de producto.
type RecipeEntry struct {
	ProductID       string
	MaterialID      string
	QuantityPerUnit decimal.Decimal
}

// MaterialLot lote de material recibido en SupplyDate. Quantity es el remanente (lo mueve la
// asignación FIFO); SuppliedQuantity es lo recibido y no cambia (base de lo adeudado).
// Los lotes nunca se borran; se drenan a cero.
type MaterialLot struct {
	ID               string
	MaterialID       string
	SupplierName     string
	SuppliedQuantity decimal.Decimal
	Quantity         decimal.Decimal
	UnitPrice        decimal.Decimal
	SupplyDate       time.Time
	CreatedAt        time.Time
}

// Owed monto adeudado al proveedor por el lote.
func (l *MaterialLot) Owed() decimal.Decimal {
	return l.SuppliedQuantity.Mul(l.UnitPrice)
}
