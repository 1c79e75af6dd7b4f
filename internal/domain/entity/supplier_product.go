package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SupplierProduct registro de reabastecimiento de un producto por un proveedor.
// Price es el valor total del suministro (lo adeudado al proveedor).
type SupplierProduct struct {
	ID            string
	SupplierID    string
	ProductID     string
	StockSupplied int64
	Price         decimal.Decimal
	SupplyDate    time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
