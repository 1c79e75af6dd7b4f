package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRequest pago contra un registro pagable. EntityID lo fija la ruta; Method vacío = Cash.
type PaymentRequest struct {
	EntityID  string          `json:"entityId"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method" validate:"omitempty,max=50"`
	Reference *string         `json:"reference" validate:"omitempty,max=100"`
}

// PaymentResponse pago registrado.
type PaymentResponse struct {
	ID          string          `json:"id"`
	EntityID    string          `json:"entityId"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	Reference   *string         `json:"reference,omitempty"`
	PaymentDate time.Time       `json:"paymentDate"`
}

// RecordPaymentResponse pago y saldo recalculado.
type RecordPaymentResponse struct {
	Payment          PaymentResponse `json:"payment"`
	TotalPaid        decimal.Decimal `json:"totalPaid"`
	BalanceRemaining decimal.Decimal `json:"balanceRemaining"`
}

// PaymentHistoryResponse historial (más reciente primero) con saldo derivado.
type PaymentHistoryResponse struct {
	EntityID         string            `json:"entityId"`
	Owed             decimal.Decimal   `json:"owed"`
	TotalPaid        decimal.Decimal   `json:"totalPaid"`
	BalanceRemaining decimal.Decimal   `json:"balanceRemaining"`
	Payments         []PaymentResponse `json:"payments"`
}
