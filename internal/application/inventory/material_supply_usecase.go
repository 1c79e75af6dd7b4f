package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/peakers-pos-api/internal/application/dto"
	"github.com/jhoicas/peakers-pos-api/internal/domain"
	"github.com/jhoicas/peakers-pos-api/internal/domain/entity"
	"github.com/jhoicas/peakers-pos-api/internal/domain/ledger"
	"github.com/jhoicas/peakers-pos-api/internal/domain/repository"
)

// MaterialSupplyUseCase ingreso de lotes de materia prima y su consulta.
type MaterialSupplyUseCase struct {
	repos repository.Repos
	log   zerolog.Logger
	now   func() time.Time
}

// NewMaterialSupplyUseCase construye el caso de uso.
func NewMaterialSupplyUseCase(repos repository.Repos, log zerolog.Logger) *MaterialSupplyUseCase {
	return &MaterialSupplyUseCase{repos: repos, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// RecordSupply crea un lote nuevo; lo adeudado queda fijo en quantity*unitPrice.
func (uc *MaterialSupplyUseCase) RecordSupply(ctx context.Context, in dto.MaterialSupplyRequest) (*dto.MaterialLotResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if err := requireQuantity("quantity", in.Quantity); err != nil {
		return nil, err
	}
	if err := requireMoney("unitPrice", in.UnitPrice); err != nil {
		return nil, err
	}
	now := uc.now()
	supplyDate, err := parseSupplyDate("supplyDate", in.SupplyDate, now)
	if err != nil {
		return nil, err
	}
	m, err := uc.repos.Materials.GetByID(ctx, in.MaterialID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.NotFound("material", in.MaterialID)
	}
	lot := &entity.MaterialLot{
		ID:               uuid.New().String(),
		MaterialID:       in.MaterialID,
		SupplierName:     in.SupplierName,
		SuppliedQuantity: in.Quantity,
		Quantity:         in.Quantity,
		UnitPrice:        in.UnitPrice,
		SupplyDate:       supplyDate,
		CreatedAt:        now,
	}
	if err := uc.repos.Materials.CreateLot(ctx, lot); err != nil {
		return nil, err
	}
	uc.log.Info().Str("lot_id", lot.ID).Str("material_id", lot.MaterialID).
		Str("quantity", lot.Quantity.String()).Msg("lote de material registrado")
	return toLotResponse(lot), nil
}

// ListLots lotes del material en orden FIFO con el remanente total y su costo promedio.
func (uc *MaterialSupplyUseCase) ListLots(ctx context.Context, materialID string) (*dto.MaterialLotListResponse, error) {
	m, err := uc.repos.Materials.GetByID(ctx, materialID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.NotFound("material", materialID)
	}
	lots, err := uc.repos.Materials.ListLots(ctx, materialID)
	if err != nil {
		return nil, err
	}
	ledger.SortLotsFIFO(lots)
	out := &dto.MaterialLotListResponse{
		MaterialID: materialID,
		Remaining:  decimal.Zero,
		Items:      make([]dto.MaterialLotResponse, 0, len(lots)),
	}
	for i := range lots {
		out.Remaining = out.Remaining.Add(lots[i].Quantity)
		out.Items = append(out.Items, *toLotResponse(&lots[i]))
	}
	out.AverageUnitCost = ledger.AverageUnitCost(lots)
	return out, nil
}

func toLotResponse(l *entity.MaterialLot) *dto.MaterialLotResponse {
	return &dto.MaterialLotResponse{
		ID:               l.ID,
		MaterialID:       l.MaterialID,
		SupplierName:     l.SupplierName,
		SuppliedQuantity: l.SuppliedQuantity,
		Quantity:         l.Quantity,
		UnitPrice:        l.UnitPrice,
		Owed:             l.Owed(),
		SupplyDate:       l.SupplyDate,
	}
}
