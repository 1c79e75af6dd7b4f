package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/peakers-pos-api/internal/domain"
	"github.com/jhoicas/peakers-pos-api/internal/domain/entity"
	"github.com/jhoicas/peakers-pos-api/internal/domain/repository"
)

// StockLedger primitivas de lectura-modificación-escritura del stock de producto.
// Cada operación bloquea la fila (SELECT FOR UPDATE) y el bloqueo dura lo que dure la tx.
type StockLedger struct {
	products repository.ProductRepository
}

// NewStockLedger construye el libro sobre los repositorios de la tx en curso.
func NewStockLedger(products repository.ProductRepository) *StockLedger {
	return &StockLedger{products: products}
}

// Lock bloquea la fila del producto y la devuelve; NotFound si no existe.
func (l *StockLedger) Lock(ctx context.Context, productID string) (*entity.Product, error) {
	p, err := l.products.GetForUpdate(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("bloquear producto %s: %w", productID, err)
	}
	if p == nil {
		return nil, domain.NotFound("product", productID)
	}
	return p, nil
}

// TryDeduct descuenta qty si hay existencias; si no, InsufficientStockError sin efecto alguno.
func (l *StockLedger) TryDeduct(ctx context.Context, productID string, qty int64) (int64, error) {
	if qty <= 0 {
		return 0, domain.Invalid("quantity", "debe ser mayor que 0")
	}
	p, err := l.Lock(ctx, productID)
	if err != nil {
		return 0, err
	}
	if p.Stock < qty {
		return p.Stock, &domain.InsufficientStockError{ProductID: productID, Required: qty, Available: p.Stock}
	}
	return l.write(ctx, p, p.Stock-qty)
}

// Adjust suma delta (puede ser negativo). Un resultado negativo se rechaza con
// InsufficientStockError; el stock nunca se recorta en silencio.
func (l *StockLedger) Adjust(ctx context.Context, productID string, delta int64) (int64, error) {
	p, err := l.Lock(ctx, productID)
	if err != nil {
		return 0, err
	}
	if delta == 0 {
		return p.Stock, nil
	}
	next := p.Stock + delta
	if next < 0 {
		return p.Stock, &domain.InsufficientStockError{ProductID: productID, Required: -delta, Available: p.Stock}
	}
	return l.write(ctx, p, next)
}

func (l *StockLedger) write(ctx context.Context, p *entity.Product, stock int64) (int64, error) {
	if err := l.products.UpdateStock(ctx, p.ID, stock); err != nil {
		return p.Stock, fmt.Errorf("actualizar stock de %s: %w", p.ID, err)
	}
	p.Stock = stock
	p.UpdatedAt = time.Now().UTC()
	return stock, nil
}
