package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/peakers-pos-api/internal/domain/entity"
	"github.com/jhoicas/peakers-pos-api/internal/domain/repository"
	"github.com/jhoicas/peakers-pos-api/internal/infrastructure/memory"
)

type env struct {
	ctx   context.Context
	store *memory.Store
	repos repository.Repos
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.NewStore()
	return &env{ctx: context.Background(), store: store, repos: store.Repos()}
}

func (e *env) product(t *testing.T, stock int64) string {
	t.Helper()
	now := time.Now().UTC()
	p := &entity.Product{ID: uuid.NewString(), Name: gofakeit.ProductName(), Price: decimal.NewFromInt(10), Stock: stock, CreatedAt: now, UpdatedAt: now}
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

func (e *env) supplier(t *testing.T) string {
	t.Helper()
	s := &entity.Supplier{ID: uuid.NewString(), Name: gofakeit.Company() + " " + gofakeit.UUID(), CreatedAt: time.Now().UTC()}
	require.NoError(t, e.repos.Suppliers.Create(e.ctx, s))
	return s.ID
}

func (e *env) material(t *testing.T) string {
	t.Helper()
	m := &entity.RawMaterial{ID: uuid.NewString(), Name: gofakeit.UUID(), Unit: "kg", CreatedAt: time.Now().UTC()}
	require.NoError(t, e.repos.Materials.Create(e.ctx, m))
	return m.ID
}

func (e *env) lot(t *testing.T, materialID, qty string, daysAgo int) string {
	t.Helper()
	now := time.Now().UTC()
	q := decimal.RequireFromString(qty)
	l := &entity.MaterialLot{
		ID: uuid.NewString(), MaterialID: materialID, SupplierName: gofakeit.Company(),
		SuppliedQuantity: q, Quantity: q, UnitPrice: decimal.NewFromInt(1),
		SupplyDate: now.AddDate(0, 0, -daysAgo), CreatedAt: now,
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

func (e *env) remaining(t *testing.T, materialID string) decimal.Decimal {
	t.Helper()
	lots, err := e.repos.Materials.ListLots(e.ctx, materialID)
	require.NoError(t, err)
	sum := decimal.Zero
	for _, l := range lots {
		require.False(t, l.Quantity.IsNegative())
		sum = sum.Add(l.Quantity)
	}
	return sum
}

func (e *env) recipe(t *testing.T, productID string, perUnit map[string]string) {
	t.Helper()
	entries := make([]entity.RecipeEntry, 0, len(perUnit))
	for m, q := range perUnit {
		entries = append(entries, entity.RecipeEntry{ProductID: productID, MaterialID: m, QuantityPerUnit: decimal.RequireFromString(q)})
	}
	require.NoError(t, e.repos.Recipes.Replace(e.ctx, productID, entries))
}
