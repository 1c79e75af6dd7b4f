package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/peakers-pos-api/internal/domain"
	"github.com/jhoicas/peakers-pos-api/internal/domain/entity"
	"github.com/jhoicas/peakers-pos-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas y líneas sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el repositorio.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, order_number, customer_id, payment_type, vat, discount, total, status, created_at, updated_at`

// Create inserta la cabecera. La restricción sales_order_number_key garantiza la unicidad
// del número de orden aunque dos ventas pasen la verificación previa a la vez.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales (`+saleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		s.ID, s.OrderNumber, s.CustomerID, string(s.PaymentType), s.VAT, s.Discount, s.Total,
		string(s.Status), s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) && constraintName(err) == "sales_order_number_key" {
			return &domain.ConflictError{Field: "orderNumber", Value: s.OrderNumber}
		}
		if isForeignKeyViolation(err) {
			return domain.NotFound("customer", deref(s.CustomerID))
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateLine inserta una línea de venta.
func (r *SaleRepo) CreateLine(ctx context.Context, l *entity.SaleLine) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sale_lines (id, sale_id, product_id, quantity, subtotal)
		VALUES ($1, $2, $3, $4, $5)`,
		l.ID, l.SaleID, l.ProductID, l.Quantity, l.Subtotal,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NotFound("product", l.ProductID)
		}
		return fmt.Errorf("insert sale line: %w", err)
	}
	return nil
}

// GetByID obtiene una venta; (nil, nil) si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	return r.get(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id)
}

// GetForUpdate obtiene la venta bloqueando la fila: serializa transiciones concurrentes.
func (r *SaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.get(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1 FOR UPDATE`, id)
}

// ExistsOrderNumber verificación de colisión previa a la tx.
func (r *SaleRepo) ExistsOrderNumber(ctx context.Context, orderNumber string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM sales WHERE order_number = $1)`, orderNumber,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists order number: %w", err)
	}
	return exists, nil
}

// ListLines líneas de una venta.
func (r *SaleRepo) ListLines(ctx context.Context, saleID string) ([]*entity.SaleLine, error) {
	if !isUUID(saleID) {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, sale_id, product_id, quantity, subtotal
		FROM sale_lines WHERE sale_id = $1 ORDER BY product_id, id`, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale lines: %w", err)
	}
	defer rows.Close()
	var out []*entity.SaleLine
	for rows.Next() {
		var l entity.SaleLine
		if err := rows.Scan(&l.ID, &l.SaleID, &l.ProductID, &l.Quantity, &l.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

// UpdateStatus único campo de la venta que cambia tras su creación.
func (r *SaleRepo) UpdateStatus(ctx context.Context, id string, status entity.SaleStatus, at time.Time) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE sales SET status = $2, updated_at = $3 WHERE id = $1`,
		id, string(status), at,
	)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("sale", id)
	}
	return nil
}

func (r *SaleRepo) get(ctx context.Context, query, id string) (*entity.Sale, error) {
	if !isUUID(id) {
		return nil, nil
	}
	var (
		s           entity.Sale
		paymentType string
		status      string
	)
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.OrderNumber, &s.CustomerID, &paymentType, &s.VAT, &s.Discount, &s.Total,
		&status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	s.PaymentType = entity.PaymentType(paymentType)
	s.Status = entity.SaleStatus(status)
	return &s, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
