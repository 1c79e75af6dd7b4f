package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/peakers-pos-api/internal/domain"
	"github.com/jhoicas/peakers-pos-api/internal/domain/entity"
	"github.com/jhoicas/peakers-pos-api/internal/domain/repository"
)

var (
	_ repository.SupplierProductRepository = (*SupplierProductRepo)(nil)
	_ repository.PaymentRepository         = (*PaymentRepo)(nil)
)

// SupplierProductRepo registros de reabastecimiento sobre PostgreSQL.
type SupplierProductRepo struct {
	q Querier
}

// NewSupplierProductRepository construye el repositorio.
func NewSupplierProductRepository(q Querier) *SupplierProductRepo {
	return &SupplierProductRepo{q: q}
}

const supplierProductColumns = `id, supplier_id, product_id, stock_supplied, price, supply_date, created_at, updated_at`

// Create inserta el registro.
func (r *SupplierProductRepo) Create(ctx context.Context, sp *entity.SupplierProduct) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO supplier_products (`+supplierProductColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		sp.ID, sp.SupplierID, sp.ProductID, sp.StockSupplied, sp.Price, sp.SupplyDate, sp.CreatedAt, sp.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			if constraintName(err) == "supplier_products_product_id_fkey" {
				return domain.NotFound("product", sp.ProductID)
			}
			return domain.NotFound("supplier", sp.SupplierID)
		}
		return fmt.Errorf("insert supplier product: %w", err)
	}
	return nil
}

// GetByID obtiene el registro; (nil, nil) si no existe.
func (r *SupplierProductRepo) GetByID(ctx context.Context, id string) (*entity.SupplierProduct, error) {
	return r.get(ctx, `SELECT `+supplierProductColumns+` FROM supplier_products WHERE id = $1`, id)
}

// GetForUpdate obtiene el registro bloqueando la fila: dos ajustes concurrentes se serializan.
func (r *SupplierProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.SupplierProduct, error) {
	return r.get(ctx, `SELECT `+supplierProductColumns+` FROM supplier_products WHERE id = $1 FOR UPDATE`, id)
}

// Update reescribe cantidad, precio y fecha.
func (r *SupplierProductRepo) Update(ctx context.Context, sp *entity.SupplierProduct) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE supplier_products
		SET stock_supplied = $2, price = $3, supply_date = $4, updated_at = $5
		WHERE id = $1`,
		sp.ID, sp.StockSupplied, sp.Price, sp.SupplyDate, sp.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update supplier product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("supplier_product", sp.ID)
	}
	return nil
}

func (r *SupplierProductRepo) get(ctx context.Context, query, id string) (*entity.SupplierProduct, error) {
	if !isUUID(id) {
		return nil, nil
	}
	var sp entity.SupplierProduct
	err := r.q.QueryRow(ctx, query, id).Scan(
		&sp.ID, &sp.SupplierID, &sp.ProductID, &sp.StockSupplied, &sp.Price, &sp.SupplyDate, &sp.CreatedAt, &sp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier product: %w", err)
	}
	return &sp, nil
}

// PaymentRepo pagos de solo inserción sobre PostgreSQL.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el repositorio.
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create inserta el pago.
func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO payments (id, kind, entity_id, amount, method, reference, payment_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, string(p.Kind), p.EntityID, p.Amount, p.Method, p.Reference, p.PaymentDate,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// ListByEntity pagos de la entidad, más reciente primero.
func (r *PaymentRepo) ListByEntity(ctx context.Context, kind entity.PayableKind, entityID string) ([]*entity.Payment, error) {
	if !isUUID(entityID) {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, kind, entity_id, amount, method, reference, payment_date
		FROM payments
		WHERE kind = $1 AND entity_id = $2
		ORDER BY payment_date DESC, seq DESC`, string(kind), entityID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var out []*entity.Payment
	for rows.Next() {
		var (
			p entity.Payment
			k string
		)
		if err := rows.Scan(&p.ID, &k, &p.EntityID, &p.Amount, &p.Method, &p.Reference, &p.PaymentDate); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		p.Kind = entity.PayableKind(k)
		out = append(out, &p)
	}
	return out, rows.Err()
}
