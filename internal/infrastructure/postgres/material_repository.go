package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/peakers-pos-api/internal/domain"
	"github.com/jhoicas/peakers-pos-api/internal/domain/entity"
	"github.com/jhoicas/peakers-pos-api/internal/domain/repository"
)

var (
	_ repository.MaterialRepository = (*MaterialRepo)(nil)
	_ repository.RecipeRepository   = (*RecipeRepo)(nil)
)

// MaterialRepo materias primas y lotes sobre PostgreSQL.
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el repositorio.
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

const lotColumns = `id, material_id, supplier_name, supplied_quantity, quantity, unit_price, supply_date, created_at`

// Create persiste la materia prima; nombre repetido -> ConflictError.
func (r *MaterialRepo) Create(ctx context.Context, m *entity.RawMaterial) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO raw_materials (id, name, unit, created_at) VALUES ($1, $2, $3, $4)`,
		m.ID, m.Name, m.Unit, m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{Field: "name", Value: m.Name}
		}
		return fmt.Errorf("insert raw material: %w", err)
	}
	return nil
}

// GetByID obtiene la materia prima; (nil, nil) si no existe.
func (r *MaterialRepo) GetByID(ctx context.Context, id string) (*entity.RawMaterial, error) {
	if !isUUID(id) {
		return nil, nil
	}
	var m entity.RawMaterial
	err := r.q.QueryRow(ctx,
		`SELECT id, name, unit, created_at FROM raw_materials WHERE id = $1`, id,
	).Scan(&m.ID, &m.Name, &m.Unit, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get raw material: %w", err)
	}
	return &m, nil
}

// CreateLot inserta un lote.
func (r *MaterialRepo) CreateLot(ctx context.Context, l *entity.MaterialLot) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO material_lots (`+lotColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		l.ID, l.MaterialID, l.SupplierName, l.SuppliedQuantity, l.Quantity, l.UnitPrice, l.SupplyDate, l.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NotFound("material", l.MaterialID)
		}
		return fmt.Errorf("insert material lot: %w", err)
	}
	return nil
}

// GetLot obtiene un lote; (nil, nil) si no existe.
func (r *MaterialRepo) GetLot(ctx context.Context, lotID string) (*entity.MaterialLot, error) {
	if !isUUID(lotID) {
		return nil, nil
	}
	var l entity.MaterialLot
	err := r.q.QueryRow(ctx, `SELECT `+lotColumns+` FROM material_lots WHERE id = $1`, lotID).Scan(
		&l.ID, &l.MaterialID, &l.SupplierName, &l.SuppliedQuantity, &l.Quantity, &l.UnitPrice, &l.SupplyDate, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material lot: %w", err)
	}
	return &l, nil
}

// ListLots lotes del material en orden FIFO, sin bloqueo.
func (r *MaterialRepo) ListLots(ctx context.Context, materialID string) ([]entity.MaterialLot, error) {
	return r.list(ctx, `
		SELECT `+lotColumns+` FROM material_lots
		WHERE material_id = $1
		ORDER BY supply_date, created_at, id`, materialID)
}

// ListLotsForUpdate igual que ListLots bloqueando las filas. El ORDER BY fija el orden de
// adquisición de los locks entre transacciones.
func (r *MaterialRepo) ListLotsForUpdate(ctx context.Context, materialID string) ([]entity.MaterialLot, error) {
	return r.list(ctx, `
		SELECT `+lotColumns+` FROM material_lots
		WHERE material_id = $1
		ORDER BY supply_date, created_at, id
		FOR UPDATE`, materialID)
}

// UpdateLotQuantity escribe el remanente; el CHECK de la tabla rechaza negativos.
func (r *MaterialRepo) UpdateLotQuantity(ctx context.Context, lotID string, quantity decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx, `UPDATE material_lots SET quantity = $2 WHERE id = $1`, lotID, quantity)
	if err != nil {
		return fmt.Errorf("update material lot: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("material_lot", lotID)
	}
	return nil
}

func (r *MaterialRepo) list(ctx context.Context, query, materialID string) ([]entity.MaterialLot, error) {
	if !isUUID(materialID) {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, query, materialID)
	if err != nil {
		return nil, fmt.Errorf("list material lots: %w", err)
	}
	defer rows.Close()
	var out []entity.MaterialLot
	for rows.Next() {
		var l entity.MaterialLot
		if err := rows.Scan(
			&l.ID, &l.MaterialID, &l.SupplierName, &l.SuppliedQuantity, &l.Quantity, &l.UnitPrice, &l.SupplyDate, &l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan material lot: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// RecipeRepo receta (BOM) sobre PostgreSQL.
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el repositorio.
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// ListByProduct líneas de receta ordenadas por material.
func (r *RecipeRepo) ListByProduct(ctx context.Context, productID string) ([]entity.RecipeEntry, error) {
	if !isUUID(productID) {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT product_id, material_id, quantity_per_unit
		FROM recipe_entries WHERE product_id = $1 ORDER BY material_id`, productID)
	if err != nil {
		return nil, fmt.Errorf("list recipe: %w", err)
	}
	defer rows.Close()
	var out []entity.RecipeEntry
	for rows.Next() {
		var e entity.RecipeEntry
		if err := rows.Scan(&e.ProductID, &e.MaterialID, &e.QuantityPerUnit); err != nil {
			return nil, fmt.Errorf("scan recipe entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Replace borra y vuelve a insertar la receta; debe ejecutarse dentro de la tx de reconciliación.
func (r *RecipeRepo) Replace(ctx context.Context, productID string, entries []entity.RecipeEntry) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM recipe_entries WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	for _, e := range entries {
		_, err := r.q.Exec(ctx,
			`INSERT INTO recipe_entries (product_id, material_id, quantity_per_unit) VALUES ($1, $2, $3)`,
			productID, e.MaterialID, e.QuantityPerUnit,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.NotFound("material", e.MaterialID)
			}
			return fmt.Errorf("insert recipe entry: %w", err)
		}
	}
	return nil
}
