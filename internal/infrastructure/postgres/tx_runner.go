package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/jhoicas/peakers-pos-api/internal/application/inventory"
	"github.com/jhoicas/peakers-pos-api/internal/domain"
	"github.com/jhoicas/peakers-pos-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL con repos atados a la tx.
// La conexión se toma del pool con espera acotada y se libera en todo camino de salida.
type TxRunner struct {
	pool           *pgxpool.Pool
	acquireTimeout time.Duration
	lockTimeout    time.Duration
	log            zerolog.Logger
}

// NewTxRunner construye el runner. lockTimeout 0 deja la espera de locks sin límite.
func NewTxRunner(pool *pgxpool.Pool, acquireTimeout, lockTimeout time.Duration, log zerolog.Logger) *TxRunner {
	return &TxRunner{pool: pool, acquireTimeout: acquireTimeout, lockTimeout: lockTimeout, log: log}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	conn, err := r.acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", classify(err))
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	if r.lockTimeout > 0 {
		// SET no admite parámetros; el valor sale de la configuración, no del request.
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("lock_timeout: %w", classify(err))
		}
	}

	if err := fn(NewRepos(tx)); err != nil {
		return classify(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", classify(err))
	}
	return nil
}

// acquire toma una conexión esperando como máximo acquireTimeout; pool agotado -> ResourceUnavailable.
func (r *TxRunner) acquire(ctx context.Context) (*pgxpool.Conn, error) {
	actx := ctx
	if r.acquireTimeout > 0 {
		var cancel context.CancelFunc
		actx, cancel = context.WithTimeout(ctx, r.acquireTimeout)
		defer cancel()
	}
	conn, err := r.pool.Acquire(actx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			stat := r.pool.Stat()
			r.log.Warn().Int32("acquired", stat.AcquiredConns()).Int32("max", stat.MaxConns()).
				Dur("timeout", r.acquireTimeout).Msg("pool de conexiones agotado")
		}
		return nil, fmt.Errorf("acquire connection: %w: %v", domain.ErrResourceUnavailable, err)
	}
	return conn, nil
}

// NewRepos repositorios PostgreSQL sobre q (pool para lecturas, tx dentro de Run).
func NewRepos(q Querier) repository.Repos {
	return repository.Repos{
		Products:         NewProductRepository(q),
		Sales:            NewSaleRepository(q),
		Materials:        NewMaterialRepository(q),
		Recipes:          NewRecipeRepository(q),
		SupplierProducts: NewSupplierProductRepository(q),
		Suppliers:        NewSupplierRepository(q),
		Customers:        NewCustomerRepository(q),
		Payments:         NewPaymentRepository(q),
	}
}
