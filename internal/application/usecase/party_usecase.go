package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/peakers-pos-api/internal/application/dto"
	"github.com/jhoicas/peakers-pos-api/internal/domain/entity"
	"github.com/jhoicas/peakers-pos-api/internal/domain/repository"
)

// PartyUseCase alta de proveedores (nombre único) y clientes.
type PartyUseCase struct {
	suppliers repository.SupplierRepository
	customers repository.CustomerRepository
}

// NewPartyUseCase construye el caso de uso.
func NewPartyUseCase(suppliers repository.SupplierRepository, customers repository.CustomerRepository) *PartyUseCase {
	return &PartyUseCase{suppliers: suppliers, customers: customers}
}

// CreateSupplier registra un proveedor.
func (uc *PartyUseCase) CreateSupplier(ctx context.Context, in dto.CreatePartyRequest) (*dto.PartyResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	s := &entity.Supplier{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Phone:     in.Phone,
		Email:     in.Email,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.suppliers.Create(ctx, s); err != nil {
		return nil, err
	}
	return &dto.PartyResponse{ID: s.ID, Name: s.Name, Phone: s.Phone, Email: s.Email, CreatedAt: s.CreatedAt}, nil
}

// CreateCustomer registra un cliente.
func (uc *PartyUseCase) CreateCustomer(ctx context.Context, in dto.CreatePartyRequest) (*dto.PartyResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	c := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Phone:     in.Phone,
		Email:     in.Email,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.customers.Create(ctx, c); err != nil {
		return nil, err
	}
	return &dto.PartyResponse{ID: c.ID, Name: c.Name, Phone: c.Phone, Email: c.Email, CreatedAt: c.CreatedAt}, nil
}
