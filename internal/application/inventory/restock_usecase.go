package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/peakers-pos-api/internal/application/dto"
	"github.com/jhoicas/peakers-pos-api/internal/application/ports"
	"github.com/jhoicas/peakers-pos-api/internal/domain"
	"github.com/jhoicas/peakers-pos-api/internal/domain/entity"
	"github.com/jhoicas/peakers-pos-api/internal/domain/repository"
)

// RestockUseCase reabastecimiento de productos por proveedor. Todo ocurre en una sola tx:
// bloqueo del producto, consumo de material según receta, stock y registro del suministro.
type RestockUseCase struct {
	txRunner TxRunner
	metrics  ports.LedgerMetrics
	log      zerolog.Logger
	now      func() time.Time
}

// NewRestockUseCase construye el caso de uso.
func NewRestockUseCase(txRunner TxRunner, metrics ports.LedgerMetrics, log zerolog.Logger) *RestockUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &RestockUseCase{
		txRunner: txRunner,
		metrics:  metrics,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// RestockProduct registra un suministro de stockSupplied unidades. Si el producto tiene
// receta, el material se consume FIFO; sin material suficiente no cambia nada.
func (uc *RestockUseCase) RestockProduct(ctx context.Context, in dto.RestockRequest) (res *dto.SupplierProductResponse, err error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if err := requireMoney("price", in.Price); err != nil {
		return nil, err
	}
	now := uc.now()
	supplyDate, err := parseSupplyDate("supplyDate", in.SupplyDate, now)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() { uc.metrics.ObserveTx("restock", ports.Outcome(err), time.Since(start)) }()

	sp := &entity.SupplierProduct{
		ID:            uuid.New().String(),
		SupplierID:    in.SupplierID,
		ProductID:     in.ProductID,
		StockSupplied: in.StockSupplied,
		Price:         in.Price,
		SupplyDate:    supplyDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	var stock int64
	var moved Movement
	err = uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		supplier, err := repos.Suppliers.GetByID(ctx, in.SupplierID)
		if err != nil {
			return err
		}
		if supplier == nil {
			return domain.NotFound("supplier", in.SupplierID)
		}
		stockLedger := NewStockLedger(repos.Products)
		if _, err := stockLedger.Lock(ctx, in.ProductID); err != nil {
			return err
		}
		bom, err := repos.Recipes.ListByProduct(ctx, in.ProductID)
		if err != nil {
			return err
		}
		allocator := NewMaterialAllocator(repos.Materials, uc.now)
		if err := allocator.Apply(ctx, bom, -in.StockSupplied); err != nil {
			return err
		}
		moved = allocator.Moved()
		if stock, err = stockLedger.Adjust(ctx, in.ProductID, in.StockSupplied); err != nil {
			return err
		}
		return repos.SupplierProducts.Create(ctx, sp)
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("product_id", in.ProductID).Int64("stock_supplied", in.StockSupplied).
			Msg("reabastecimiento rechazado")
		return nil, err
	}
	uc.observeMoved(moved)
	uc.log.Info().Str("supplier_product_id", sp.ID).Str("product_id", sp.ProductID).
		Int64("stock", stock).Msg("reabastecimiento registrado")
	return toSupplierProductResponse(sp, stock, in.StockSupplied), nil
}

// AdjustRestock cambia la cantidad de un suministro existente. El delta contra el valor anterior
// se aplica al stock; un aumento consume material y una reducción lo devuelve.
func (uc *RestockUseCase) AdjustRestock(ctx context.Context, id string, in dto.AdjustRestockRequest) (res *dto.SupplierProductResponse, err error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.StockSupplied == nil && in.Price == nil && in.SupplyDate == nil {
		return nil, domain.Invalid("stockSupplied", "se requiere stockSupplied, price o supplyDate")
	}
	if in.Price != nil {
		if err := requireMoney("price", *in.Price); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	defer func() { uc.metrics.ObserveTx("restock_adjust", ports.Outcome(err), time.Since(start)) }()

	var (
		sp    *entity.SupplierProduct
		stock int64
		delta int64
		moved Movement
	)
	err = uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		var err error
		sp, err = repos.SupplierProducts.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if sp == nil {
			return domain.NotFound("supplier_product", id)
		}
		if in.SupplyDate != nil {
			if sp.SupplyDate, err = parseSupplyDate("supplyDate", *in.SupplyDate, sp.SupplyDate); err != nil {
				return err
			}
		}
		supplied := sp.StockSupplied
		if in.StockSupplied != nil {
			supplied = *in.StockSupplied
		}
		delta = supplied - sp.StockSupplied

		stockLedger := NewStockLedger(repos.Products)
		if _, err := stockLedger.Lock(ctx, sp.ProductID); err != nil {
			return err
		}
		bom, err := repos.Recipes.ListByProduct(ctx, sp.ProductID)
		if err != nil {
			return err
		}
		// La reducción valida el stock antes de devolver material.
		if stock, err = stockLedger.Adjust(ctx, sp.ProductID, delta); err != nil {
			return err
		}
		allocator := NewMaterialAllocator(repos.Materials, uc.now)
		if err := allocator.Apply(ctx, bom, -delta); err != nil {
			return err
		}
		moved = allocator.Moved()

		sp.StockSupplied = supplied
		if in.Price != nil {
			sp.Price = *in.Price
		}
		sp.UpdatedAt = uc.now()
		return repos.SupplierProducts.Update(ctx, sp)
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("supplier_product_id", id).Msg("ajuste de reabastecimiento rechazado")
		return nil, err
	}
	uc.observeMoved(moved)
	uc.log.Info().Str("supplier_product_id", id).Int64("delta", delta).Int64("stock", stock).
		Msg("reabastecimiento ajustado")
	return toSupplierProductResponse(sp, stock, delta), nil
}

func (uc *RestockUseCase) observeMoved(m Movement) {
	if m.Consumed.IsPositive() {
		uc.metrics.MaterialMoved("consume", m.Consumed.InexactFloat64())
	}
	if m.Returned.IsPositive() {
		uc.metrics.MaterialMoved("return", m.Returned.InexactFloat64())
	}
}

func toSupplierProductResponse(sp *entity.SupplierProduct, stock, delta int64) *dto.SupplierProductResponse {
	return &dto.SupplierProductResponse{
		ID:            sp.ID,
		SupplierID:    sp.SupplierID,
		ProductID:     sp.ProductID,
		StockSupplied: sp.StockSupplied,
		Price:         sp.Price,
		SupplyDate:    sp.SupplyDate,
		ProductStock:  stock,
		StockDelta:    delta,
	}
}
