package dto_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/peakers-pos-api/internal/application/dto"
	"github.com/jhoicas/peakers-pos-api/internal/domain"
)

func validSale() dto.ProcessSaleRequest {
	return dto.ProcessSaleRequest{
		PaymentType: "Cash",
		CartItems: []dto.CartItemRequest{
			{ProductID: "a", Quantity: 1, Subtotal: decimal.NewFromInt(10)},
			{ProductID: "b", Quantity: 2, Subtotal: decimal.NewFromInt(20)},
		},
	}
}

func TestValidate_RutaDeCampoYMotivo(t *testing.T) {
	badEmail := "no-es-email"
	tests := []struct {
		name   string
		in     any
		field  string
		reason string
	}{
		{
			name:   "medio de pago vacío",
			in:     func() dto.ProcessSaleRequest { r := validSale(); r.PaymentType = ""; return r }(),
			field:  "paymentType",
			reason: "es requerido",
		},
		{
			name:   "medio de pago fuera del conjunto",
			in:     func() dto.ProcessSaleRequest { r := validSale(); r.PaymentType = "Card"; return r }(),
			field:  "paymentType",
			reason: "debe ser uno de: Mpesa Cash",
		},
		{
			name:   "carrito vacío",
			in:     func() dto.ProcessSaleRequest { r := validSale(); r.CartItems = []dto.CartItemRequest{}; return r }(),
			field:  "cartItems",
			reason: "debe tener al menos 1 elemento(s)",
		},
		{
			name:   "cantidad en segunda línea",
			in:     func() dto.ProcessSaleRequest { r := validSale(); r.CartItems[1].Quantity = 0; return r }(),
			field:  "cartItems[1].quantity",
			reason: "debe ser mayor que 0",
		},
		{
			name:   "estado desconocido",
			in:     dto.UpdateOrderStatusRequest{Status: "shipped"},
			field:  "status",
			reason: "debe ser uno de: completed voided refunded",
		},
		{
			name:   "email inválido",
			in:     dto.CreatePartyRequest{Name: "Ana", Email: &badEmail},
			field:  "email",
			reason: "email inválido",
		},
		{
			name:   "fecha de suministro",
			in:     dto.RestockRequest{SupplierID: "s", ProductID: "p", StockSupplied: 1, SupplyDate: "2024-13-01"},
			field:  "supplyDate",
			reason: "formato de fecha esperado 2006-01-02",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := dto.Validate(tt.in)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, tt.reason, verr.Reason)
		})
	}
}

func TestValidate_Validos(t *testing.T) {
	assert.NoError(t, dto.Validate(validSale()))
	assert.NoError(t, dto.Validate(dto.UpdateOrderStatusRequest{Status: "refunded"}))
	assert.NoError(t, dto.Validate(dto.CreatePartyRequest{Name: "Ana"}))
	assert.NoError(t, dto.Validate(dto.EditRecipeRequest{}))
}

func TestValidate_NoStruct(t *testing.T) {
	err := dto.Validate(42)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, verr.Field)
}
