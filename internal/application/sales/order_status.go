package sales

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/peakers-pos-api/internal/application/dto"
	"github.com/jhoicas/peakers-pos-api/internal/application/inventory"
	"github.com/jhoicas/peakers-pos-api/internal/application/ports"
	"github.com/jhoicas/peakers-pos-api/internal/domain"
	"github.com/jhoicas/peakers-pos-api/internal/domain/entity"
	"github.com/jhoicas/peakers-pos-api/internal/domain/ledger"
	"github.com/jhoicas/peakers-pos-api/internal/domain/repository"
)

// OrderStatusUseCase aplica transiciones de estado de venta con su efecto sobre el stock,
// según la tabla de ledger.Transition, atómicamente con la escritura del estado.
type OrderStatusUseCase struct {
	txRunner inventory.TxRunner
	metrics  ports.LedgerMetrics
	log      zerolog.Logger
	now      func() time.Time
}

// NewOrderStatusUseCase construye el caso de uso.
func NewOrderStatusUseCase(txRunner inventory.TxRunner, metrics ports.LedgerMetrics, log zerolog.Logger) *OrderStatusUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &OrderStatusUseCase{
		txRunner: txRunner,
		metrics:  metrics,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// UpdateStatus lee el estado actual con bloqueo y decide el efecto: reponer, volver a descontar
// o nada. Si al volver a completed falta stock, la transición se rechaza y el estado no cambia.
func (uc *OrderStatusUseCase) UpdateStatus(ctx context.Context, saleID string, in dto.UpdateOrderStatusRequest) (res *dto.OrderStatusResponse, err error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	to, ok := entity.ParseSaleStatus(in.Status)
	if !ok {
		return nil, domain.Invalid("status", "estado no reconocido")
	}

	start := time.Now()
	defer func() { uc.metrics.ObserveTx("status_transition", ports.Outcome(err), time.Since(start)) }()

	var (
		sale   *entity.Sale
		from   entity.SaleStatus
		effect ledger.StockEffect
	)
	err = uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		var err error
		sale, err = repos.Sales.GetForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.NotFound("sale", saleID)
		}
		from = sale.Status
		if effect, err = ledger.Transition(from, to); err != nil {
			return err
		}
		if from == to {
			return nil
		}

		if effect != ledger.EffectNone {
			lines, err := repos.Sales.ListLines(ctx, saleID)
			if err != nil {
				return err
			}
			sortLines(lines)
			stockLedger := inventory.NewStockLedger(repos.Products)
			for _, line := range lines {
				switch effect {
				case ledger.EffectRestock:
					_, err = stockLedger.Adjust(ctx, line.ProductID, line.Quantity)
				case ledger.EffectDeduct:
					_, err = stockLedger.TryDeduct(ctx, line.ProductID, line.Quantity)
				}
				if err != nil {
					return err
				}
			}
		}

		now := uc.now()
		if err := repos.Sales.UpdateStatus(ctx, saleID, to, now); err != nil {
			return err
		}
		sale.Status = to
		sale.UpdatedAt = now
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("sale_id", saleID).Str("to", string(to)).Msg("transición de estado rechazada")
		return nil, err
	}
	uc.metrics.StatusTransition(string(from), string(to), effect.String())
	uc.log.Info().Str("sale_id", saleID).Str("from", string(from)).Str("to", string(to)).
		Str("stock_effect", effect.String()).Msg("estado de venta actualizado")
	return &dto.OrderStatusResponse{
		SaleID:      sale.ID,
		OrderNumber: sale.OrderNumber,
		From:        string(from),
		Status:      string(to),
		StockEffect: effect.String(),
	}, nil
}
