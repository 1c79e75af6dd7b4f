package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/peakers-pos-api/internal/application/dto"
	"github.com/jhoicas/peakers-pos-api/internal/application/ports"
	"github.com/jhoicas/peakers-pos-api/internal/application/sales"
	"github.com/jhoicas/peakers-pos-api/internal/domain/entity"
	"github.com/jhoicas/peakers-pos-api/internal/domain/repository"
	"github.com/jhoicas/peakers-pos-api/internal/infrastructure/memory"
)

type env struct {
	ctx     context.Context
	store   *memory.Store
	repos   repository.Repos
	process *sales.ProcessSaleUseCase
	status  *sales.OrderStatusUseCase
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	log := zerolog.Nop()
	return &env{
		ctx:     context.Background(),
		store:   store,
		repos:   repos,
		process: sales.NewProcessSaleUseCase(store, repos, sales.Options{OrderNumberPrefix: "ORD", OrderNumberDigits: 8}, ports.NopMetrics{}, log),
		status:  sales.NewOrderStatusUseCase(store, ports.NopMetrics{}, log),
	}
}

func (e *env) product(t *testing.T, stock int64) string {
	t.Helper()
	now := time.Now().UTC()
	p := &entity.Product{
		ID:        uuid.NewString(),
		Name:      gofakeit.ProductName(),
		Price:     decimal.NewFromInt(int64(gofakeit.Number(100, 5000))),
		Stock:     stock,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, e.repos.Products.Create(e.ctx, p))
	return p.ID
}

func (e *env) stock(t *testing.T, productID string) int64 {
	t.Helper()
	p, err := e.repos.Products.GetByID(e.ctx, productID)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func (e *env) material(t *testing.T) string {
	t.Helper()
	m := &entity.RawMaterial{ID: uuid.NewString(), Name: gofakeit.UUID(), Unit: "kg", CreatedAt: time.Now().UTC()}
	require.NoError(t, e.repos.Materials.Create(e.ctx, m))
	return m.ID
}

// lot crea un lote con fecha base + daysAgo días atrás.
func (e *env) lot(t *testing.T, materialID string, qty int64, daysAgo int) string {
	t.Helper()
	now := time.Now().UTC()
	l := &entity.MaterialLot{
		ID:               uuid.NewString(),
		MaterialID:       materialID,
		SupplierName:     gofakeit.Company(),
		SuppliedQuantity: decimal.NewFromInt(qty),
		Quantity:         decimal.NewFromInt(qty),
		UnitPrice:        decimal.NewFromInt(1),
		SupplyDate:       now.AddDate(0, 0, -daysAgo),
		CreatedAt:        now,
	}
	require.NoError(t, e.repos.Materials.CreateLot(e.ctx, l))
	return l.ID
}

func (e *env) lotQty(t *testing.T, lotID string) string {
	t.Helper()
	l, err := e.repos.Materials.GetLot(e.ctx, lotID)
	require.NoError(t, err)
	require.NotNil(t, l)
	return l.Quantity.String()
}

func (e *env) recipe(t *testing.T, productID, materialID string, perUnit int64) {
	t.Helper()
	require.NoError(t, e.repos.Recipes.Replace(e.ctx, productID, []entity.RecipeEntry{
		{ProductID: productID, MaterialID: materialID, QuantityPerUnit: decimal.NewFromInt(perUnit)},
	}))
}

func item(productID string, qty int64, subtotal string) dto.CartItemRequest {
	return dto.CartItemRequest{ProductID: productID, Quantity: qty, Subtotal: decimal.RequireFromString(subtotal)}
}

func cashSale(items ...dto.CartItemRequest) dto.ProcessSaleRequest {
	return dto.ProcessSaleRequest{PaymentType: "Cash", CartItems: items}
}
