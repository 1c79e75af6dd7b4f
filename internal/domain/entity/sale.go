package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus estado de una venta (enumeración cerrada).
type SaleStatus string

const (
	SaleStatusCompleted SaleStatus = "completed"
	SaleStatusVoided    SaleStatus = "voided"
	SaleStatusRefunded  SaleStatus = "refunded"
)

// ParseSaleStatus convierte el valor del contrato JSON en la enumeración.
func ParseSaleStatus(s string) (SaleStatus, bool) {
	switch SaleStatus(s) {
	case SaleStatusCompleted, SaleStatusVoided, SaleStatusRefunded:
		return SaleStatus(s), true
	}
	return "", false
}

// PaymentType medio de pago aceptado en caja.
type PaymentType string

const (
	PaymentTypeCash  PaymentType = "Cash"
	PaymentTypeMpesa PaymentType = "Mpesa"
)

// ParsePaymentType valida el medio de pago contra el conjunto fijo.
func ParsePaymentType(s string) (PaymentType, bool) {
	switch PaymentType(s) {
	case PaymentTypeCash, PaymentTypeMpesa:
		return PaymentType(s), true
	}
	return "", false
}

// Sale cabecera de venta. Solo Status se modifica después de la creación.
type Sale struct {
	ID          string
	OrderNumber string
	CustomerID  *string // nil = venta invitado
	PaymentType PaymentType
	VAT         decimal.Decimal
	Discount    decimal.Decimal
	Total       decimal.Decimal // Σ subtotales + VAT − Discount
	Status      SaleStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SaleLine línea de venta; inmutable.
type SaleLine struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int64
	Subtotal  decimal.Decimal
}
