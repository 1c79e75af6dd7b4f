package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	_ "github.com/jhoicas/peakers-pos-api/docs"
	"github.com/jhoicas/peakers-pos-api/internal/application/inventory"
	"github.com/jhoicas/peakers-pos-api/internal/application/payments"
	"github.com/jhoicas/peakers-pos-api/internal/application/sales"
	"github.com/jhoicas/peakers-pos-api/internal/application/usecase"
	"github.com/jhoicas/peakers-pos-api/internal/domain/repository"
	"github.com/jhoicas/peakers-pos-api/internal/infrastructure/memory"
	"github.com/jhoicas/peakers-pos-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/peakers-pos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/peakers-pos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/peakers-pos-api/internal/interfaces/http"
	"github.com/jhoicas/peakers-pos-api/pkg/config"
	"github.com/jhoicas/peakers-pos-api/pkg/logger"
)

// @title        Peakers POS API
// @version      1.0
// @description  Libro de inventario: ventas, reabastecimiento, materias primas por receta y pagos a proveedores.
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		txRunner inventory.TxRunner
		repos    repository.Repos
	)
	switch cfg.Store.Driver {
	case "memory":
		store := memory.NewStore()
		txRunner, repos = store, store.Repos()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		if cfg.DB.AutoMigrate {
			if err := migrateUp(cfg.DB, log); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		txRunner = postgres.NewTxRunner(pool, cfg.DB.AcquireTimeout, cfg.DB.LockTimeout, log.Component("tx"))
		repos = postgres.NewRepos(pool)
	}

	ledgerMetrics := metrics.NewLedger()
	salesLog := log.Component("sales")
	inventoryLog := log.Component("inventory")

	processSaleUC := sales.NewProcessSaleUseCase(txRunner, repos, sales.Options{
		OrderNumberPrefix:  cfg.Sales.OrderNumberPrefix,
		OrderNumberDigits:  cfg.Sales.OrderNumberDigits,
		OrderNumberRetries: cfg.Sales.OrderNumberRetries,
	}, ledgerMetrics, salesLog)
	orderStatusUC := sales.NewOrderStatusUseCase(txRunner, ledgerMetrics, salesLog)

	// PDF: recibo de venta
	receipts := infrapdf.NewReceiptGenerator(cfg.App.Name)
	saleQueryUC := sales.NewSaleQueryUseCase(repos, receipts)

	restockUC := inventory.NewRestockUseCase(txRunner, ledgerMetrics, inventoryLog)
	recipeUC := inventory.NewRecipeUseCase(txRunner, repos, ledgerMetrics, inventoryLog)
	materialSupplyUC := inventory.NewMaterialSupplyUseCase(repos, inventoryLog)
	paymentsUC := payments.NewPaymentLedgerUseCase(txRunner, repos, log.Component("payments"))

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:     cfg.App.Name,
		Observer: ledgerMetrics,
		Log:      log.Component("http"),
	})

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.Docs.SwaggerPath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Docs.SwaggerPath,
			Path:     "docs",
			Title:    "Peakers POS API",
		}))
	} else {
		log.Warn().Str("path", cfg.Docs.SwaggerPath).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProcessSale:    processSaleUC,
		OrderStatus:    orderStatusUC,
		SaleQuery:      saleQueryUC,
		Restock:        restockUC,
		Recipe:         recipeUC,
		MaterialSupply: materialSupplyUC,
		Payments:       paymentsUC,
		ProductUC:      usecase.NewProductUseCase(repos.Products),
		MaterialUC:     usecase.NewMaterialUseCase(repos.Materials),
		PartyUC:        usecase.NewPartyUseCase(repos.Suppliers, repos.Customers),
		Metrics:        ledgerMetrics.Handler(),
		Log:            log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func migrateUp(db config.DBConfig, log *logger.Logger) error {
	m, err := postgres.NewMigrator(db.ConnectionString(), log.Component("migrate"))
	if err != nil {
		return err
	}
	defer m.Close()
	return m.Up()
}
