package http

import (
	nethttp "net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/jhoicas/peakers-pos-api/internal/application/inventory"
	"github.com/jhoicas/peakers-pos-api/internal/application/payments"
	"github.com/jhoicas/peakers-pos-api/internal/application/sales"
	"github.com/jhoicas/peakers-pos-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProcessSale    *sales.ProcessSaleUseCase
	OrderStatus    *sales.OrderStatusUseCase
	SaleQuery      *sales.SaleQueryUseCase
	Restock        *inventory.RestockUseCase
	Recipe         *inventory.RecipeUseCase
	MaterialSupply *inventory.MaterialSupplyUseCase
	Payments       *payments.PaymentLedgerUseCase
	ProductUC      *usecase.ProductUseCase
	MaterialUC     *usecase.MaterialUseCase
	PartyUC        *usecase.PartyUseCase

	// Metrics expone /metrics si no es nil.
	Metrics nethttp.Handler
	Log     zerolog.Logger
}

// AppConfig opciones del servidor fiber.
type AppConfig struct {
	Name     string
	Observer HTTPObserver
	Log      zerolog.Logger
}

// NewApp crea la aplicación fiber con recover, log de peticiones y manejo de errores comunes.
func NewApp(cfg AppConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler(cfg.Log),
	})
	app.Use(RequestLogger(cfg.Log, cfg.Observer))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.Name})
	})
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api")

	// Ventas
	saleRoutes := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.ProcessSale, deps.OrderStatus, deps.SaleQuery, deps.Log)
	saleRoutes.Post("/", saleHandler.ProcessSale)
	saleRoutes.Get("/:id", saleHandler.GetByID)
	saleRoutes.Get("/:id/receipt", saleHandler.Receipt)
	saleRoutes.Put("/:id/status", saleHandler.UpdateStatus)

	// Productos y recetas
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Recipe, deps.Log)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/recipe", productHandler.GetRecipe)
	products.Put("/:id/recipe", productHandler.EditRecipe)

	// Materias primas
	materialHandler := NewMaterialHandler(deps.MaterialUC, deps.MaterialSupply, deps.Log)
	materials := api.Group("/materials")
	materials.Post("/", materialHandler.Create)
	materials.Get("/:id/lots", materialHandler.ListLots)

	supplies := api.Group("/material-supplies")
	materialPayments := NewMaterialPaymentHandler(deps.Payments, deps.Log)
	supplies.Post("/", materialHandler.RecordSupply)
	supplies.Post("/:id/payments", materialPayments.RecordPayment)
	supplies.Get("/:id/payments", materialPayments.PaymentHistory)

	// Proveedores y clientes
	partyHandler := NewPartyHandler(deps.PartyUC, deps.Log)
	api.Post("/suppliers", partyHandler.CreateSupplier)
	api.Post("/customers", partyHandler.CreateCustomer)

	// Reabastecimiento
	supplierProducts := api.Group("/supplier-products")
	spHandler := NewSupplierProductHandler(deps.Restock, deps.Payments, deps.Log)
	supplierProducts.Post("/", spHandler.Restock)
	supplierProducts.Put("/:id", spHandler.Adjust)
	supplierProducts.Post("/:id/payments", spHandler.RecordPayment)
	supplierProducts.Get("/:id/payments", spHandler.PaymentHistory)
}
