package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItemRequest línea del carrito. Subtotal lo calcula la caja; se registra tal cual.
type CartItemRequest struct {
	ProductID string          `json:"productId" validate:"required"`
	Quantity  int64           `json:"quantity" validate:"gt=0"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// ProcessSaleRequest entrada para procesar una venta. CustomerID nil = venta invitado.
type ProcessSaleRequest struct {
	CustomerID  *string           `json:"customerId"`
	PaymentType string            `json:"paymentType" validate:"required,oneof=Mpesa Cash"`
	CartItems   []CartItemRequest `json:"cartItems" validate:"required,min=1,dive"`
	VAT         *decimal.Decimal  `json:"vat"`
	Discount    *decimal.Decimal  `json:"discount"`
}

// ProcessSaleResponse salida de una venta confirmada.
type ProcessSaleResponse struct {
	SaleID      string          `json:"saleId"`
	OrderNumber string          `json:"orderNumber"`
	Total       decimal.Decimal `json:"total"`
}

// UpdateOrderStatusRequest cambio de estado de una venta.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=completed voided refunded"`
}

// OrderStatusResponse resultado de la transición; StockEffect: none | restock | deduct.
type OrderStatusResponse struct {
	SaleID      string `json:"saleId"`
	OrderNumber string `json:"orderNumber"`
	From        string `json:"from"`
	Status      string `json:"status"`
	StockEffect string `json:"stockEffect"`
}

// SaleLineResponse línea de venta.
type SaleLineResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Quantity  int64           `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse venta con sus líneas.
type SaleResponse struct {
	ID          string             `json:"id"`
	OrderNumber string             `json:"orderNumber"`
	CustomerID  *string            `json:"customerId"`
	PaymentType string             `json:"paymentType"`
	VAT         decimal.Decimal    `json:"vat"`
	Discount    decimal.Decimal    `json:"discount"`
	Total       decimal.Decimal    `json:"total"`
	Status      string             `json:"status"`
	Lines       []SaleLineResponse `json:"lines"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}
