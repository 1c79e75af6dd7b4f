package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/peakers-pos-api/internal/application/dto"
	"github.com/jhoicas/peakers-pos-api/internal/domain/entity"
	"github.com/jhoicas/peakers-pos-api/internal/domain/repository"
)

// MaterialUseCase alta de materias primas. El nombre es único (ConflictError).
type MaterialUseCase struct {
	repo repository.MaterialRepository
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(repo repository.MaterialRepository) *MaterialUseCase {
	return &MaterialUseCase{repo: repo}
}

// Create registra la materia prima sin lotes.
func (uc *MaterialUseCase) Create(ctx context.Context, in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	m := &entity.RawMaterial{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Unit:      in.Unit,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return &dto.MaterialResponse{ID: m.ID, Name: m.Name, Unit: m.Unit, CreatedAt: m.CreatedAt}, nil
}
