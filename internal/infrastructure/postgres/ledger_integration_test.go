//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/peakers-pos-api/internal/application/dto"
	"github.com/jhoicas/peakers-pos-api/internal/application/inventory"
	"github.com/jhoicas/peakers-pos-api/internal/application/ports"
	"github.com/jhoicas/peakers-pos-api/internal/application/sales"
	"github.com/jhoicas/peakers-pos-api/internal/domain"
	"github.com/jhoicas/peakers-pos-api/internal/domain/entity"
	"github.com/jhoicas/peakers-pos-api/internal/domain/repository"
	"github.com/jhoicas/peakers-pos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/peakers-pos-api/pkg/config"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("pos_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "iniciar contenedor postgres: %v\n", err)
		os.Exit(1)
	}
	dsn, err = container.ConnectionString(ctx, "sslmode=disable")
	if err == nil {
		var mg *postgres.Migrator
		if mg, err = postgres.NewMigrator(dsn, zerolog.Nop()); err == nil {
			err = mg.Up()
			_ = mg.Close()
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "preparar base de datos: %v\n", err)
		_ = container.Terminate(ctx)
		os.Exit(1)
	}

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

type pgEnv struct {
	ctx   context.Context
	pool  *pgxpool.Pool
	tx    *postgres.TxRunner
	repos repository.Repos
}

func newPgEnv(t *testing.T) *pgEnv {
	t.Helper()
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{
		DatabaseURL:    dsn,
		MaxConns:       8,
		MinConns:       1,
		AcquireTimeout: 5 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return &pgEnv{
		ctx:   ctx,
		pool:  pool,
		tx:    postgres.NewTxRunner(pool, 5*time.Second, 0, zerolog.Nop()),
		repos: postgres.NewRepos(pool),
	}
}

func (e *pgEnv) product(t *testing.T, stock int64) string {
	t.Helper()
	now := time.Now().UTC()
	p := &entity.Product{ID: uuid.NewString(), Name: gofakeit.ProductName() + " " + gofakeit.UUID(), Price: decimal.NewFromInt(15), Stock: stock, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, e.repos.Products.Create(e.ctx, p))
	return p.ID
}

func (e *pgEnv) stock(t *testing.T, id string) int64 {
	t.Helper()
	p, err := e.repos.Products.GetByID(e.ctx, id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func item(productID string, qty int64) dto.CartItemRequest {
	return dto.CartItemRequest{ProductID: productID, Quantity: qty, Subtotal: decimal.NewFromInt(15 * qty)}
}

func TestPostgres_FlujoCompletoConReceta(t *testing.T) {
	e := newPgEnv(t)
	log := zerolog.Nop()
	now := time.Now().UTC()

	supplier := &entity.Supplier{ID: uuid.NewString(), Name: gofakeit.Company() + " " + gofakeit.UUID(), CreatedAt: now}
	require.NoError(t, e.repos.Suppliers.Create(e.ctx, supplier))
	productID := e.product(t, 0)
	material := &entity.RawMaterial{ID: uuid.NewString(), Name: gofakeit.UUID(), Unit: "kg", CreatedAt: now}
	require.NoError(t, e.repos.Materials.Create(e.ctx, material))

	supply := inventory.NewMaterialSupplyUseCase(e.repos, log)
	older, err := supply.RecordSupply(e.ctx, dto.MaterialSupplyRequest{
		MaterialID: material.ID, SupplierName: "Molino Norte", Quantity: decimal.NewFromInt(8),
		UnitPrice: decimal.NewFromInt(2), SupplyDate: "2024-01-01",
	})
	require.NoError(t, err)
	newer, err := supply.RecordSupply(e.ctx, dto.MaterialSupplyRequest{
		MaterialID: material.ID, SupplierName: "Molino Sur", Quantity: decimal.NewFromInt(10),
		UnitPrice: decimal.NewFromInt(2), SupplyDate: "2024-02-01",
	})
	require.NoError(t, err)

	recipe := inventory.NewRecipeUseCase(e.tx, e.repos, ports.NopMetrics{}, log)
	_, err = recipe.EditRecipe(e.ctx, productID, dto.EditRecipeRequest{Materials: []dto.RecipeMaterialRequest{
		{MaterialID: material.ID, QuantityPerUnit: decimal.RequireFromString("0.5")},
	}})
	require.NoError(t, err)

	restock := inventory.NewRestockUseCase(e.tx, ports.NopMetrics{}, log)
	_, err = restock.RestockProduct(e.ctx, dto.RestockRequest{
		SupplierID: supplier.ID, ProductID: productID, StockSupplied: 20, Price: decimal.NewFromInt(300),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(20), e.stock(t, productID))

	lotQty := func(id string) string {
		l, err := e.repos.Materials.GetLot(e.ctx, id)
		require.NoError(t, err)
		require.NotNil(t, l)
		return l.Quantity.String()
	}
	// 20 * 0.5 = 10: agota el lote antiguo (8) y toma 2 del nuevo
	assert.Equal(t, "0", lotQty(older.ID))
	assert.Equal(t, "8", lotQty(newer.ID))

	process := sales.NewProcessSaleUseCase(e.tx, e.repos, sales.Options{OrderNumberPrefix: "ORD", OrderNumberDigits: 8}, ports.NopMetrics{}, log)
	sale, err := process.ProcessSale(e.ctx, dto.ProcessSaleRequest{PaymentType: "Cash", CartItems: []dto.CartItemRequest{item(productID, 4)}})
	require.NoError(t, err)
	assert.Equal(t, int64(16), e.stock(t, productID))
	assert.Equal(t, "6", lotQty(newer.ID))

	status := sales.NewOrderStatusUseCase(e.tx, ports.NopMetrics{}, log)
	_, err = status.UpdateStatus(e.ctx, sale.SaleID, dto.UpdateOrderStatusRequest{Status: "voided"})
	require.NoError(t, err)
	assert.Equal(t, int64(20), e.stock(t, productID))
	assert.Equal(t, "8", lotQty(newer.ID), "la devolución va al lote más reciente")

	got, err := e.repos.Sales.GetByID(e.ctx, sale.SaleID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity.SaleStatusVoided, got.Status)
}

func TestPostgres_VentasConcurrentesSinDeadlock(t *testing.T) {
	e := newPgEnv(t)
	a := e.product(t, 10)
	b := e.product(t, 100)
	process := sales.NewProcessSaleUseCase(e.tx, e.repos, sales.Options{OrderNumberPrefix: "ORD", OrderNumberDigits: 8}, ports.NopMetrics{}, zerolog.Nop())

	const workers = 24
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		ok      int
		numbers = map[string]struct{}{}
		other   []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cart := []dto.CartItemRequest{item(a, 1), item(b, 1)}
			if i%2 == 1 {
				cart = []dto.CartItemRequest{item(b, 1), item(a, 1)}
			}
			res, err := process.ProcessSale(e.ctx, dto.ProcessSaleRequest{PaymentType: "Mpesa", CartItems: cart})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
				numbers[res.OrderNumber] = struct{}{}
			case domain.Code(err) != domain.CodeInsufficientStock:
				other = append(other, err)
			}
		}(i)
	}
	wg.Wait()

	assert.Empty(t, other, "solo se esperan rechazos por stock")
	assert.Equal(t, 10, ok)
	assert.Len(t, numbers, 10)
	assert.Equal(t, int64(0), e.stock(t, a))
	assert.Equal(t, int64(90), e.stock(t, b))
}

func TestPostgres_NumeroDeOrdenUnico(t *testing.T) {
	e := newPgEnv(t)
	now := time.Now().UTC()
	number := "DUP" + fmt.Sprint(now.UnixNano())
	newSale := func() *entity.Sale {
		return &entity.Sale{
			ID: uuid.NewString(), OrderNumber: number, PaymentType: entity.PaymentTypeCash,
			VAT: decimal.Zero, Discount: decimal.Zero, Total: decimal.Zero,
			Status: entity.SaleStatusCompleted, CreatedAt: now, UpdatedAt: now,
		}
	}
	require.NoError(t, e.repos.Sales.Create(e.ctx, newSale()))

	err := e.repos.Sales.Create(e.ctx, newSale())
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "orderNumber", conflict.Field)

	exists, err := e.repos.Sales.ExistsOrderNumber(e.ctx, number)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestPostgres_RollbackAnteFaltaDeStock(t *testing.T) {
	e := newPgEnv(t)
	a := e.product(t, 2)
	b := e.product(t, 5)
	process := sales.NewProcessSaleUseCase(e.tx, e.repos, sales.Options{OrderNumberPrefix: "ORD", OrderNumberDigits: 8}, ports.NopMetrics{}, zerolog.Nop())

	_, err := process.ProcessSale(e.ctx, dto.ProcessSaleRequest{PaymentType: "Cash", CartItems: []dto.CartItemRequest{item(b, 5), item(a, 3)}})
	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, a, insufficient.ProductID)
	assert.Equal(t, int64(2), e.stock(t, a))
	assert.Equal(t, int64(5), e.stock(t, b))
}

func TestPostgres_IDMalFormadoNoExiste(t *testing.T) {
	e := newPgEnv(t)
	p, err := e.repos.Products.GetByID(e.ctx, "no-es-uuid")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestPostgres_CheckVioladoEsEntradaInvalida(t *testing.T) {
	e := newPgEnv(t)
	// 0.001 se redondea a 0.00 en NUMERIC(14,2) y viola amount > 0
	err := e.tx.Run(e.ctx, func(repos repository.Repos) error {
		return repos.Payments.Create(e.ctx, &entity.Payment{
			ID: uuid.NewString(), Kind: entity.PayableSupplierProduct, EntityID: uuid.NewString(),
			Amount: decimal.RequireFromString("0.001"), Method: "Cash", PaymentDate: time.Now().UTC(),
		})
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, domain.CodeValidation, domain.Code(err))
}
