package inventory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/peakers-pos-api/internal/application/inventory"
	"github.com/jhoicas/peakers-pos-api/internal/domain"
	"github.com/jhoicas/peakers-pos-api/internal/domain/entity"
	"github.com/jhoicas/peakers-pos-api/internal/domain/ledger"
	"github.com/jhoicas/peakers-pos-api/internal/domain/repository"
)

func bom(productID, materialID, perUnit string) []entity.RecipeEntry {
	return []entity.RecipeEntry{{ProductID: productID, MaterialID: materialID, QuantityPerUnit: decimal.RequireFromString(perUnit)}}
}

func TestMaterialAllocator_ConsumoFIFOConservaCantidad(t *testing.T) {
	e := newEnv(t)
	m := e.material(t)
	l1 := e.lot(t, m, "4", 30)
	l2 := e.lot(t, m, "5", 20)
	l3 := e.lot(t, m, "6", 10)
	before := e.remaining(t, m)

	var moved inventory.Movement
	err := e.store.Run(e.ctx, func(repos repository.Repos) error {
		a := inventory.NewMaterialAllocator(repos.Materials, nil)
		if err := a.Apply(e.ctx, bom("p", m, "1.5"), -4); err != nil {
			return err
		}
		moved = a.Moved()
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, "0", e.lotQty(t, l1))
	assert.Equal(t, "3", e.lotQty(t, l2))
	assert.Equal(t, "6", e.lotQty(t, l3))
	assert.True(t, before.Sub(e.remaining(t, m)).Equal(decimal.NewFromInt(6)))
	assert.True(t, moved.Consumed.Equal(decimal.NewFromInt(6)))
}

func TestMaterialAllocator_FaltanteNoConsumeNada(t *testing.T) {
	e := newEnv(t)
	m := e.material(t)
	l1 := e.lot(t, m, "2", 2)
	l2 := e.lot(t, m, "1", 1)

	err := e.store.Run(e.ctx, func(repos repository.Repos) error {
		return inventory.NewMaterialAllocator(repos.Materials, nil).Apply(e.ctx, bom("p", m, "1"), -5)
	})
	var shortage *domain.InsufficientMaterialError
	require.ErrorAs(t, err, &shortage)
	assert.Equal(t, m, shortage.MaterialID)
	assert.Equal(t, "2", shortage.Shortfall.String())

	assert.Equal(t, "2", e.lotQty(t, l1))
	assert.Equal(t, "1", e.lotQty(t, l2))
}

func TestMaterialAllocator_DevolucionAlLoteMasReciente(t *testing.T) {
	e := newEnv(t)
	m := e.material(t)
	older := e.lot(t, m, "1", 5)
	newer := e.lot(t, m, "0", 1)

	err := e.store.Run(e.ctx, func(repos repository.Repos) error {
		return inventory.NewMaterialAllocator(repos.Materials, nil).Apply(e.ctx, bom("p", m, "2"), 3)
	})
	require.NoError(t, err)
	assert.Equal(t, "1", e.lotQty(t, older))
	assert.Equal(t, "6", e.lotQty(t, newer))
}

func TestMaterialAllocator_DevolucionSinLotesCreaUno(t *testing.T) {
	e := newEnv(t)
	m := e.material(t)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	err := e.store.Run(e.ctx, func(repos repository.Repos) error {
		a := inventory.NewMaterialAllocator(repos.Materials, func() time.Time { return now })
		return a.Return(e.ctx, ledger.MaterialNeeds{m: decimal.RequireFromString("2.5")})
	})
	require.NoError(t, err)

	lots, err := e.repos.Materials.ListLots(e.ctx, m)
	require.NoError(t, err)
	require.Len(t, lots, 1)
	assert.Equal(t, "2.5", lots[0].Quantity.String())
	assert.True(t, lots[0].SuppliedQuantity.IsZero())
	assert.Equal(t, now, lots[0].SupplyDate)
}

func TestMaterialAllocator_DeltaCeroNoHaceNada(t *testing.T) {
	e := newEnv(t)
	m := e.material(t)
	l := e.lot(t, m, "3", 1)

	err := e.store.Run(e.ctx, func(repos repository.Repos) error {
		return inventory.NewMaterialAllocator(repos.Materials, nil).Apply(e.ctx, bom("p", m, "1"), 0)
	})
	require.NoError(t, err)
	assert.Equal(t, "3", e.lotQty(t, l))
}
