package sales

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/peakers-pos-api/internal/application/dto"
	"github.com/jhoicas/peakers-pos-api/internal/application/inventory"
	"github.com/jhoicas/peakers-pos-api/internal/application/ports"
	"github.com/jhoicas/peakers-pos-api/internal/domain"
	"github.com/jhoicas/peakers-pos-api/internal/domain/entity"
	"github.com/jhoicas/peakers-pos-api/internal/domain/ledger"
	"github.com/jhoicas/peakers-pos-api/internal/domain/repository"
)

const orderNumberField = "orderNumber"

// Options parámetros de emisión de números de orden.
type Options struct {
	OrderNumberPrefix  string
	OrderNumberDigits  int
	OrderNumberRetries int
}

// ProcessSaleUseCase registra ventas de varias líneas de forma atómica: número de orden,
// descuento de stock por línea, líneas y consumo de material de los productos con receta.
type ProcessSaleUseCase struct {
	txRunner inventory.TxRunner
	repos    repository.Repos
	orders   *ledger.OrderNumberGenerator
	retries  int
	metrics  ports.LedgerMetrics
	log      zerolog.Logger
	now      func() time.Time
}

// NewProcessSaleUseCase construye el caso de uso. repos se usa para la verificación previa de
// colisión de número de orden (fuera de la tx).
func NewProcessSaleUseCase(
	txRunner inventory.TxRunner,
	repos repository.Repos,
	opts Options,
	metrics ports.LedgerMetrics,
	log zerolog.Logger,
) *ProcessSaleUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if opts.OrderNumberRetries <= 0 {
		opts.OrderNumberRetries = 10
	}
	return &ProcessSaleUseCase{
		txRunner: txRunner,
		repos:    repos,
		orders:   ledger.NewOrderNumberGenerator(opts.OrderNumberPrefix, opts.OrderNumberDigits),
		retries:  opts.OrderNumberRetries,
		metrics:  metrics,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithOrderNumbers reemplaza el generador (tests de colisión).
func (uc *ProcessSaleUseCase) WithOrderNumbers(g *ledger.OrderNumberGenerator) *ProcessSaleUseCase {
	uc.orders = g
	return uc
}

// ProcessSale valida la venta, emite un número de orden único y la registra en una sola tx.
// Cualquier línea sin stock anula toda la venta y la respuesta nombra el producto.
func (uc *ProcessSaleUseCase) ProcessSale(ctx context.Context, in dto.ProcessSaleRequest) (res *dto.ProcessSaleResponse, err error) {
	defer func() { uc.metrics.SaleProcessed(ports.Outcome(err)) }()

	// ── 1. Validación (sin tocar estado) ─────────────────────────────────────
	sale, lines, err := uc.buildSale(in)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() { uc.metrics.ObserveTx("sale", ports.Outcome(err), time.Since(start)) }()

	// ── 2. Número de orden con verificación de colisión y reintento acotado ──
	for attempt := 0; attempt < uc.retries; attempt++ {
		number, err := uc.orders.Next()
		if err != nil {
			return nil, fmt.Errorf("generar número de orden: %w", err)
		}
		exists, err := uc.repos.Sales.ExistsOrderNumber(ctx, number)
		if err != nil {
			return nil, err
		}
		if exists {
			uc.log.Debug().Str("order_number", number).Msg("colisión de número de orden, se genera otro")
			continue
		}
		sale.OrderNumber = number

		// ── 3. Transacción: cabecera, stock y líneas en orden de producto, material ──
		consumed := decimal.Zero
		err = uc.txRunner.Run(ctx, func(repos repository.Repos) error {
			var err error
			consumed, err = uc.record(ctx, repos, sale, lines)
			return err
		})
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) && conflict.Field == orderNumberField {
			uc.log.Debug().Str("order_number", number).Msg("número de orden tomado por otra venta, se reintenta")
			continue
		}
		if err != nil {
			uc.log.Warn().Err(err).Str("order_number", number).Msg("venta rechazada")
			return nil, err
		}
		if consumed.IsPositive() {
			uc.metrics.MaterialMoved("consume", consumed.InexactFloat64())
		}
		uc.log.Info().Str("sale_id", sale.ID).Str("order_number", number).
			Int("lines", len(lines)).Str("total", sale.Total.String()).Msg("venta registrada")
		return &dto.ProcessSaleResponse{SaleID: sale.ID, OrderNumber: number, Total: sale.Total}, nil
	}
	return nil, &domain.ConflictError{Field: orderNumberField, Value: "reintentos agotados"}
}

func (uc *ProcessSaleUseCase) buildSale(in dto.ProcessSaleRequest) (*entity.Sale, []*entity.SaleLine, error) {
	if err := dto.Validate(in); err != nil {
		return nil, nil, err
	}
	paymentType, ok := entity.ParsePaymentType(in.PaymentType)
	if !ok {
		return nil, nil, domain.Invalid("paymentType", "medio de pago no reconocido")
	}
	vat, discount := decimal.Zero, decimal.Zero
	if in.VAT != nil {
		vat = *in.VAT
	}
	if in.Discount != nil {
		discount = *in.Discount
	}
	if vat.IsNegative() {
		return nil, nil, domain.Invalid("vat", "no puede ser negativo")
	}
	if discount.IsNegative() {
		return nil, nil, domain.Invalid("discount", "no puede ser negativo")
	}
	if err := domain.CheckScale("vat", vat, domain.MoneyScale); err != nil {
		return nil, nil, err
	}
	if err := domain.CheckScale("discount", discount, domain.MoneyScale); err != nil {
		return nil, nil, err
	}

	now := uc.now()
	sale := &entity.Sale{
		ID:          uuid.New().String(),
		PaymentType: paymentType,
		VAT:         vat,
		Discount:    discount,
		Status:      entity.SaleStatusCompleted,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.CustomerID != nil && *in.CustomerID != "" {
		id := *in.CustomerID
		sale.CustomerID = &id
	}

	subtotals := make([]decimal.Decimal, 0, len(in.CartItems))
	lines := make([]*entity.SaleLine, 0, len(in.CartItems))
	for i, item := range in.CartItems {
		if item.Subtotal.IsNegative() {
			return nil, nil, domain.Invalid(fmt.Sprintf("cartItems[%d].subtotal", i), "no puede ser negativo")
		}
		if err := domain.CheckScale(fmt.Sprintf("cartItems[%d].subtotal", i), item.Subtotal, domain.MoneyScale); err != nil {
			return nil, nil, err
		}
		subtotals = append(subtotals, item.Subtotal)
		lines = append(lines, &entity.SaleLine{
			ID:        uuid.New().String(),
			SaleID:    sale.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal,
		})
	}
	sale.Total = ledger.SaleTotal(subtotals, vat, discount)
	sortLines(lines)
	return sale, lines, nil
}

// record devuelve el material consumido; solo es definitivo si la tx confirma.
func (uc *ProcessSaleUseCase) record(ctx context.Context, repos repository.Repos, sale *entity.Sale, lines []*entity.SaleLine) (decimal.Decimal, error) {
	if sale.CustomerID != nil {
		c, err := repos.Customers.GetByID(ctx, *sale.CustomerID)
		if err != nil {
			return decimal.Zero, err
		}
		if c == nil {
			return decimal.Zero, domain.NotFound("customer", *sale.CustomerID)
		}
	}
	if err := repos.Sales.Create(ctx, sale); err != nil {
		return decimal.Zero, err
	}

	stockLedger := inventory.NewStockLedger(repos.Products)
	units := make(map[string]int64, len(lines))
	for _, line := range lines {
		if _, err := stockLedger.TryDeduct(ctx, line.ProductID, line.Quantity); err != nil {
			return decimal.Zero, err
		}
		if err := repos.Sales.CreateLine(ctx, line); err != nil {
			return decimal.Zero, err
		}
		units[line.ProductID] += line.Quantity
	}

	// Material después de todos los productos; los lotes se bloquean en orden de material.
	needs := ledger.MaterialNeeds{}
	for _, productID := range sortedKeys(units) {
		bom, err := repos.Recipes.ListByProduct(ctx, productID)
		if err != nil {
			return decimal.Zero, err
		}
		needs.AddRecipe(bom, units[productID])
	}
	if len(needs) == 0 {
		return decimal.Zero, nil
	}
	allocator := inventory.NewMaterialAllocator(repos.Materials, uc.now)
	if err := allocator.Consume(ctx, needs); err != nil {
		return decimal.Zero, err
	}
	return allocator.Moved().Consumed, nil
}

// sortLines orden determinista de bloqueo: por producto; estable para líneas del mismo producto.
func sortLines(lines []*entity.SaleLine) {
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
