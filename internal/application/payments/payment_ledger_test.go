package payments_test

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/peakers-pos-api/internal/application/dto"
	"github.com/jhoicas/peakers-pos-api/internal/application/payments"
	"github.com/jhoicas/peakers-pos-api/internal/domain"
	"github.com/jhoicas/peakers-pos-api/internal/domain/entity"
	"github.com/jhoicas/peakers-pos-api/internal/domain/repository"
	"github.com/jhoicas/peakers-pos-api/internal/infrastructure/memory"
)

type fixture struct {
	ctx   context.Context
	repos repository.Repos
	uc    *payments.PaymentLedgerUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	return &fixture{
		ctx:   context.Background(),
		repos: store.Repos(),
		uc:    payments.NewPaymentLedgerUseCase(store, store.Repos(), zerolog.Nop()),
	}
}

// supplierProduct registra un reabastecimiento con el precio dado directamente en el repositorio.
func (f *fixture) supplierProduct(t *testing.T, price string) string {
	t.Helper()
	now := time.Now().UTC()
	s := &entity.Supplier{ID: uuid.NewString(), Name: gofakeit.Company() + " " + gofakeit.UUID(), CreatedAt: now}
	require.NoError(t, f.repos.Suppliers.Create(f.ctx, s))
	p := &entity.Product{ID: uuid.NewString(), Name: gofakeit.ProductName(), Price: decimal.NewFromInt(1), CreatedAt: now, UpdatedAt: now}
	require.NoError(t, f.repos.Products.Create(f.ctx, p))
	sp := &entity.SupplierProduct{
		ID: uuid.NewString(), SupplierID: s.ID, ProductID: p.ID, StockSupplied: 10,
		Price: decimal.RequireFromString(price), SupplyDate: now, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, f.repos.SupplierProducts.Create(f.ctx, sp))
	return sp.ID
}

func (f *fixture) lot(t *testing.T, supplied, unitPrice string) string {
	t.Helper()
	now := time.Now().UTC()
	m := &entity.RawMaterial{ID: uuid.NewString(), Name: gofakeit.UUID(), Unit: "l", CreatedAt: now}
	require.NoError(t, f.repos.Materials.Create(f.ctx, m))
	q := decimal.RequireFromString(supplied)
	l := &entity.MaterialLot{
		ID: uuid.NewString(), MaterialID: m.ID, SupplierName: gofakeit.Company(),
		SuppliedQuantity: q, Quantity: decimal.Zero, UnitPrice: decimal.RequireFromString(unitPrice),
		SupplyDate: now, CreatedAt: now,
	}
	require.NoError(t, f.repos.Materials.CreateLot(f.ctx, l))
	return l.ID
}

func pay(amount string) dto.PaymentRequest {
	return dto.PaymentRequest{Amount: decimal.RequireFromString(amount)}
}

func TestSupplierProductPayment_SaldoYSobrepago(t *testing.T) {
	f := newFixture(t)
	id := f.supplierProduct(t, "1000")

	_, err := f.uc.RecordSupplierProductPayment(f.ctx, id, pay("300"))
	require.NoError(t, err)
	out, err := f.uc.RecordSupplierProductPayment(f.ctx, id, pay("300"))
	require.NoError(t, err)
	assert.Equal(t, "600", out.TotalPaid.String())
	assert.Equal(t, "400", out.BalanceRemaining.String())

	// sin tope: el sobrepago deja saldo negativo
	out, err = f.uc.RecordSupplierProductPayment(f.ctx, id, pay("500"))
	require.NoError(t, err)
	assert.Equal(t, "-100", out.BalanceRemaining.String())
	assert.Equal(t, "Cash", out.Payment.Method)
	assert.Equal(t, id, out.Payment.EntityID)
}

func TestSupplierProductHistory_MasRecientePrimero(t *testing.T) {
	f := newFixture(t)
	id := f.supplierProduct(t, "50")
	ref := "TRX-991"

	_, err := f.uc.RecordSupplierProductPayment(f.ctx, id, pay("10"))
	require.NoError(t, err)
	_, err = f.uc.RecordSupplierProductPayment(f.ctx, id, dto.PaymentRequest{
		EntityID: id, Amount: decimal.RequireFromString("15.5"), Method: "Mpesa", Reference: &ref,
	})
	require.NoError(t, err)

	hist, err := f.uc.SupplierProductHistory(f.ctx, id)
	require.NoError(t, err)
	require.Len(t, hist.Payments, 2)
	assert.Equal(t, "15.5", hist.Payments[0].Amount.String())
	assert.Equal(t, "Mpesa", hist.Payments[0].Method)
	require.NotNil(t, hist.Payments[0].Reference)
	assert.Equal(t, ref, *hist.Payments[0].Reference)
	assert.Equal(t, "10", hist.Payments[1].Amount.String())
	assert.Equal(t, "50", hist.Owed.String())
	assert.Equal(t, "25.5", hist.TotalPaid.String())
	assert.Equal(t, "24.5", hist.BalanceRemaining.String())
}

func TestSupplierProductHistory_SinPagos(t *testing.T) {
	f := newFixture(t)
	id := f.supplierProduct(t, "80")

	hist, err := f.uc.SupplierProductHistory(f.ctx, id)
	require.NoError(t, err)
	assert.Empty(t, hist.Payments)
	assert.True(t, hist.TotalPaid.IsZero())
	assert.Equal(t, "80", hist.BalanceRemaining.String())
}

func TestMaterialSupplyPayment_AdeudadoPorLote(t *testing.T) {
	f := newFixture(t)
	// el remanente del lote no afecta lo adeudado
	id := f.lot(t, "12.5", "4")

	out, err := f.uc.RecordMaterialSupplyPayment(f.ctx, id, pay("20"))
	require.NoError(t, err)
	assert.Equal(t, "30", out.BalanceRemaining.String())

	hist, err := f.uc.MaterialSupplyHistory(f.ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "50", hist.Owed.String())
	require.Len(t, hist.Payments, 1)

	// los pagos de un tipo no cuentan para el otro
	spID := f.supplierProduct(t, "100")
	spHist, err := f.uc.SupplierProductHistory(f.ctx, spID)
	require.NoError(t, err)
	assert.Empty(t, spHist.Payments)
}

func TestRecordPayment_Errores(t *testing.T) {
	f := newFixture(t)
	spID := f.supplierProduct(t, "100")
	lotID := f.lot(t, "1", "1")

	tests := []struct {
		name   string
		record func() error
		want   error
		field  string
	}{
		{
			name: "monto cero",
			record: func() error {
				_, err := f.uc.RecordSupplierProductPayment(f.ctx, spID, pay("0"))
				return err
			},
			want: domain.ErrInvalidInput, field: "amount",
		},
		{
			name: "monto negativo",
			record: func() error {
				_, err := f.uc.RecordMaterialSupplyPayment(f.ctx, lotID, pay("-5"))
				return err
			},
			want: domain.ErrInvalidInput, field: "amount",
		},
		{
			name: "monto con más de dos decimales",
			record: func() error {
				_, err := f.uc.RecordSupplierProductPayment(f.ctx, spID, pay("0.001"))
				return err
			},
			want: domain.ErrInvalidInput, field: "amount",
		},
		{
			name: "entityId distinto a la ruta",
			record: func() error {
				in := pay("5")
				in.EntityID = lotID
				_, err := f.uc.RecordSupplierProductPayment(f.ctx, spID, in)
				return err
			},
			want: domain.ErrInvalidInput, field: "entityId",
		},
		{
			name: "reabastecimiento inexistente",
			record: func() error {
				_, err := f.uc.RecordSupplierProductPayment(f.ctx, uuid.NewString(), pay("5"))
				return err
			},
			want: domain.ErrNotFound,
		},
		{
			name: "id de lote usado como reabastecimiento",
			record: func() error {
				_, err := f.uc.RecordSupplierProductPayment(f.ctx, lotID, pay("5"))
				return err
			},
			want: domain.ErrNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record()
			require.ErrorIs(t, err, tt.want)
			if tt.field != "" {
				var verr *domain.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.field, verr.Field)
			}
		})
	}

	hist, err := f.uc.SupplierProductHistory(f.ctx, spID)
	require.NoError(t, err)
	assert.Empty(t, hist.Payments, "ningún rechazo deja pagos registrados")

	_, err = f.uc.MaterialSupplyHistory(f.ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
