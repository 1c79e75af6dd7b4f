package payments

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/peakers-pos-api/internal/application/dto"
	"github.com/jhoicas/peakers-pos-api/internal/application/inventory"
	"github.com/jhoicas/peakers-pos-api/internal/domain"
	"github.com/jhoicas/peakers-pos-api/internal/domain/entity"
	"github.com/jhoicas/peakers-pos-api/internal/domain/ledger"
	"github.com/jhoicas/peakers-pos-api/internal/domain/repository"
)

const defaultMethod = "Cash"

// PaymentLedgerUseCase pagos a proveedores (reabastecimientos y lotes de material).
// El saldo no se guarda: owed − Σ(pagos) se recalcula en cada lectura. No hay tope; un
// sobrepago deja el saldo negativo.
type PaymentLedgerUseCase struct {
	txRunner inventory.TxRunner
	repos    repository.Repos
	log      zerolog.Logger
	now      func() time.Time
}

// NewPaymentLedgerUseCase construye el caso de uso.
func NewPaymentLedgerUseCase(txRunner inventory.TxRunner, repos repository.Repos, log zerolog.Logger) *PaymentLedgerUseCase {
	return &PaymentLedgerUseCase{
		txRunner: txRunner,
		repos:    repos,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// RecordSupplierProductPayment registra un pago contra un reabastecimiento (owed = price).
func (uc *PaymentLedgerUseCase) RecordSupplierProductPayment(ctx context.Context, id string, in dto.PaymentRequest) (*dto.RecordPaymentResponse, error) {
	return uc.record(ctx, entity.PayableSupplierProduct, id, in)
}

// RecordMaterialSupplyPayment registra un pago contra un lote (owed = suppliedQuantity*unitPrice).
func (uc *PaymentLedgerUseCase) RecordMaterialSupplyPayment(ctx context.Context, id string, in dto.PaymentRequest) (*dto.RecordPaymentResponse, error) {
	return uc.record(ctx, entity.PayableMaterialSupply, id, in)
}

// SupplierProductHistory historial de pagos de un reabastecimiento con su saldo.
func (uc *PaymentLedgerUseCase) SupplierProductHistory(ctx context.Context, id string) (*dto.PaymentHistoryResponse, error) {
	return uc.history(ctx, uc.repos, entity.PayableSupplierProduct, id)
}

// MaterialSupplyHistory historial de pagos de un lote de material con su saldo.
func (uc *PaymentLedgerUseCase) MaterialSupplyHistory(ctx context.Context, id string) (*dto.PaymentHistoryResponse, error) {
	return uc.history(ctx, uc.repos, entity.PayableMaterialSupply, id)
}

func (uc *PaymentLedgerUseCase) record(ctx context.Context, kind entity.PayableKind, id string, in dto.PaymentRequest) (*dto.RecordPaymentResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.EntityID != "" && in.EntityID != id {
		return nil, domain.Invalid("entityId", "no coincide con el registro de la ruta")
	}
	if !in.Amount.IsPositive() {
		return nil, domain.Invalid("amount", "debe ser mayor que 0")
	}
	if err := domain.CheckScale("amount", in.Amount, domain.MoneyScale); err != nil {
		return nil, err
	}
	method := in.Method
	if method == "" {
		method = defaultMethod
	}
	payment := &entity.Payment{
		ID:          uuid.New().String(),
		Kind:        kind,
		EntityID:    id,
		Amount:      in.Amount,
		Method:      method,
		Reference:   in.Reference,
		PaymentDate: uc.now(),
	}

	var hist *dto.PaymentHistoryResponse
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		if _, err := owed(ctx, repos, kind, id); err != nil {
			return err
		}
		if err := repos.Payments.Create(ctx, payment); err != nil {
			return err
		}
		var err error
		hist, err = uc.history(ctx, repos, kind, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("kind", string(kind)).Str("entity_id", id).Str("amount", payment.Amount.String()).
		Str("balance", hist.BalanceRemaining.String()).Msg("pago registrado")
	return &dto.RecordPaymentResponse{
		Payment:          toPaymentResponse(payment),
		TotalPaid:        hist.TotalPaid,
		BalanceRemaining: hist.BalanceRemaining,
	}, nil
}

func (uc *PaymentLedgerUseCase) history(ctx context.Context, repos repository.Repos, kind entity.PayableKind, id string) (*dto.PaymentHistoryResponse, error) {
	amountOwed, err := owed(ctx, repos, kind, id)
	if err != nil {
		return nil, err
	}
	list, err := repos.Payments.ListByEntity(ctx, kind, id)
	if err != nil {
		return nil, fmt.Errorf("listar pagos: %w", err)
	}
	amounts := make([]decimal.Decimal, 0, len(list))
	out := &dto.PaymentHistoryResponse{EntityID: id, Owed: amountOwed, Payments: make([]dto.PaymentResponse, 0, len(list))}
	for _, p := range list {
		amounts = append(amounts, p.Amount)
		out.Payments = append(out.Payments, toPaymentResponse(p))
	}
	out.TotalPaid, out.BalanceRemaining = ledger.Balance(amountOwed, amounts)
	return out, nil
}

// owed lo adeudado por la entidad pagable; NotFound si no existe.
func owed(ctx context.Context, repos repository.Repos, kind entity.PayableKind, id string) (decimal.Decimal, error) {
	switch kind {
	case entity.PayableSupplierProduct:
		sp, err := repos.SupplierProducts.GetByID(ctx, id)
		if err != nil {
			return decimal.Zero, err
		}
		if sp == nil {
			return decimal.Zero, domain.NotFound("supplier_product", id)
		}
		return sp.Price, nil
	case entity.PayableMaterialSupply:
		lot, err := repos.Materials.GetLot(ctx, id)
		if err != nil {
			return decimal.Zero, err
		}
		if lot == nil {
			return decimal.Zero, domain.NotFound("material_supply", id)
		}
		return lot.Owed(), nil
	}
	return decimal.Zero, domain.Invalid("kind", "entidad pagable desconocida")
}

func toPaymentResponse(p *entity.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:          p.ID,
		EntityID:    p.EntityID,
		Amount:      p.Amount,
		Method:      p.Method,
		Reference:   p.Reference,
		PaymentDate: p.PaymentDate,
	}
}
