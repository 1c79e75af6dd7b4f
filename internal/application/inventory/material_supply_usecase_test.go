package inventory_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/peakers-pos-api/internal/application/dto"
	"github.com/jhoicas/peakers-pos-api/internal/application/inventory"
	"github.com/jhoicas/peakers-pos-api/internal/domain"
)

func TestRecordSupply_CreaLoteYListaFIFO(t *testing.T) {
	e := newEnv(t)
	uc := inventory.NewMaterialSupplyUseCase(e.repos, zerolog.Nop())
	m := e.material(t)

	newer, err := uc.RecordSupply(e.ctx, dto.MaterialSupplyRequest{
		MaterialID: m, SupplierName: "Molinos SA",
		Quantity: decimal.NewFromInt(10), UnitPrice: decimal.RequireFromString("2.5"), SupplyDate: "2024-02-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "25", newer.Owed.String())

	older, err := uc.RecordSupply(e.ctx, dto.MaterialSupplyRequest{
		MaterialID: m, SupplierName: "Harinas del Sur",
		Quantity: decimal.RequireFromString("4.5"), UnitPrice: decimal.NewFromInt(3), SupplyDate: "2024-01-01",
	})
	require.NoError(t, err)

	list, err := uc.ListLots(e.ctx, m)
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, older.ID, list.Items[0].ID)
	assert.Equal(t, newer.ID, list.Items[1].ID)
	assert.Equal(t, "14.5", list.Remaining.String())
	// (4.5*3 + 10*2.5) / 14.5
	assert.Equal(t, "2.6552", list.AverageUnitCost.String())
}

func TestRecordSupply_Errores(t *testing.T) {
	e := newEnv(t)
	uc := inventory.NewMaterialSupplyUseCase(e.repos, zerolog.Nop())
	m := e.material(t)
	base := dto.MaterialSupplyRequest{MaterialID: m, SupplierName: "X", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)}

	tests := []struct {
		name  string
		mod   func(r *dto.MaterialSupplyRequest)
		field string
	}{
		{"cantidad cero", func(r *dto.MaterialSupplyRequest) { r.Quantity = decimal.Zero }, "quantity"},
		{"precio negativo", func(r *dto.MaterialSupplyRequest) { r.UnitPrice = decimal.NewFromInt(-1) }, "unitPrice"},
		{"cantidad con cinco decimales", func(r *dto.MaterialSupplyRequest) { r.Quantity = decimal.RequireFromString("0.00004") }, "quantity"},
		{"precio con tres decimales", func(r *dto.MaterialSupplyRequest) { r.UnitPrice = decimal.RequireFromString("1.005") }, "unitPrice"},
		{"sin proveedor", func(r *dto.MaterialSupplyRequest) { r.SupplierName = "" }, "supplierName"},
		{"fecha inválida", func(r *dto.MaterialSupplyRequest) { r.SupplyDate = "ayer" }, "supplyDate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.mod(&in)
			_, err := uc.RecordSupply(e.ctx, in)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	in := base
	in.MaterialID = uuid.NewString()
	_, err := uc.RecordSupply(e.ctx, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.ListLots(e.ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
