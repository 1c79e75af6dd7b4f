package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RestockRequest reabastecimiento de un producto por un proveedor. Price es el total adeudado.
// SupplyDate en formato YYYY-MM-DD; vacío = hoy.
type RestockRequest struct {
	SupplierID    string          `json:"supplierId" validate:"required"`
	ProductID     string          `json:"productId" validate:"required"`
	StockSupplied int64           `json:"stockSupplied" validate:"gt=0"`
	Price         decimal.Decimal `json:"price"`
	SupplyDate    string          `json:"supplyDate" validate:"omitempty,datetime=2006-01-02"`
}

// AdjustRestockRequest nuevo valor de un registro de reabastecimiento; el delta se calcula
// contra el valor anterior. Un campo nil conserva el valor actual; al menos uno es requerido.
type AdjustRestockRequest struct {
	StockSupplied *int64           `json:"stockSupplied" validate:"omitempty,gte=0"`
	Price         *decimal.Decimal `json:"price"`
	SupplyDate    *string          `json:"supplyDate" validate:"omitempty,datetime=2006-01-02"`
}

// SupplierProductResponse registro de reabastecimiento y el stock resultante del producto.
type SupplierProductResponse struct {
	ID            string          `json:"id"`
	SupplierID    string          `json:"supplierId"`
	ProductID     string          `json:"productId"`
	StockSupplied int64           `json:"stockSupplied"`
	Price         decimal.Decimal `json:"price"`
	SupplyDate    time.Time       `json:"supplyDate"`
	ProductStock  int64           `json:"productStock"`
	StockDelta    int64           `json:"stockDelta"`
}

// RecipeMaterialRequest línea de receta.
type RecipeMaterialRequest struct {
	MaterialID      string          `json:"materialId" validate:"required"`
	QuantityPerUnit decimal.Decimal `json:"quantityPerUnit"`
}

// EditRecipeRequest reemplaza la receta completa; lista vacía elimina la receta.
type EditRecipeRequest struct {
	Materials []RecipeMaterialRequest `json:"materials" validate:"dive"`
}

// RecipeResponse receta vigente de un producto.
type RecipeResponse struct {
	ProductID string                  `json:"productId"`
	Materials []RecipeMaterialRequest `json:"materials"`
}

// MaterialSupplyRequest ingreso de un lote de material. SupplyDate vacío = hoy.
type MaterialSupplyRequest struct {
	MaterialID   string          `json:"materialId" validate:"required"`
	SupplierName string          `json:"supplierName" validate:"required,max=200"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	SupplyDate   string          `json:"supplyDate" validate:"omitempty,datetime=2006-01-02"`
}

// MaterialLotResponse lote de material; Quantity es el remanente.
type MaterialLotResponse struct {
	ID               string          `json:"id"`
	MaterialID       string          `json:"materialId"`
	SupplierName     string          `json:"supplierName"`
	SuppliedQuantity decimal.Decimal `json:"suppliedQuantity"`
	Quantity         decimal.Decimal `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unitPrice"`
	Owed             decimal.Decimal `json:"owed"`
	SupplyDate       time.Time       `json:"supplyDate"`
}

// MaterialLotListResponse lotes de un material en orden FIFO. AverageUnitCost valoriza el
// remanente con el promedio ponderado de los lotes no agotados.
type MaterialLotListResponse struct {
	MaterialID      string                `json:"materialId"`
	Remaining       decimal.Decimal       `json:"remaining"`
	AverageUnitCost decimal.Decimal       `json:"averageUnitCost"`
	Items           []MaterialLotResponse `json:"items"`
}
