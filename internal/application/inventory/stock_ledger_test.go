package inventory_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/peakers-pos-api/internal/application/inventory"
	"github.com/jhoicas/peakers-pos-api/internal/domain"
	"github.com/jhoicas/peakers-pos-api/internal/domain/repository"
)

func TestStockLedger_TryDeduct(t *testing.T) {
	e := newEnv(t)
	p := e.product(t, 5)

	err := e.store.Run(e.ctx, func(repos repository.Repos) error {
		l := inventory.NewStockLedger(repos.Products)
		n, err := l.TryDeduct(e.ctx, p, 3)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		n, err = l.TryDeduct(e.ctx, p, 3)
		var insufficient *domain.InsufficientStockError
		require.ErrorAs(t, err, &insufficient)
		assert.Equal(t, int64(2), n, "el fallo no modifica el stock")
		assert.Equal(t, int64(3), insufficient.Required)
		assert.Equal(t, int64(2), insufficient.Available)

		_, err = l.TryDeduct(e.ctx, p, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), e.stock(t, p))
}

func TestStockLedger_AdjustNuncaNegativo(t *testing.T) {
	e := newEnv(t)
	p := e.product(t, 2)

	err := e.store.Run(e.ctx, func(repos repository.Repos) error {
		l := inventory.NewStockLedger(repos.Products)
		n, err := l.Adjust(e.ctx, p, 4)
		require.NoError(t, err)
		assert.Equal(t, int64(6), n)

		_, err = l.Adjust(e.ctx, p, -7)
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)

		n, err = l.Adjust(e.ctx, p, -6)
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), e.stock(t, p))
}

func TestStockLedger_ProductoInexistente(t *testing.T) {
	e := newEnv(t)
	l := inventory.NewStockLedger(e.repos.Products)
	_, err := l.Lock(e.ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
