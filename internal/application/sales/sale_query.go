package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/peakers-pos-api/internal/application/dto"
	"github.com/jhoicas/peakers-pos-api/internal/application/ports"
	"github.com/jhoicas/peakers-pos-api/internal/domain"
	"github.com/jhoicas/peakers-pos-api/internal/domain/entity"
	"github.com/jhoicas/peakers-pos-api/internal/domain/repository"
)

// SaleQueryUseCase lecturas de ventas (fuera del protocolo de bloqueo) y recibo PDF.
type SaleQueryUseCase struct {
	repos    repository.Repos
	renderer ports.ReceiptRenderer
}

// NewSaleQueryUseCase construye el caso de uso; renderer puede ser nil si no se sirven recibos.
func NewSaleQueryUseCase(repos repository.Repos, renderer ports.ReceiptRenderer) *SaleQueryUseCase {
	return &SaleQueryUseCase{repos: repos, renderer: renderer}
}

// GetSale devuelve la venta con sus líneas en orden de producto.
func (uc *SaleQueryUseCase) GetSale(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, lines, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	out := &dto.SaleResponse{
		ID:          sale.ID,
		OrderNumber: sale.OrderNumber,
		CustomerID:  sale.CustomerID,
		PaymentType: string(sale.PaymentType),
		VAT:         sale.VAT,
		Discount:    sale.Discount,
		Total:       sale.Total,
		Status:      string(sale.Status),
		Lines:       make([]dto.SaleLineResponse, 0, len(lines)),
		CreatedAt:   sale.CreatedAt,
		UpdatedAt:   sale.UpdatedAt,
	}
	for _, l := range lines {
		out.Lines = append(out.Lines, dto.SaleLineResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Subtotal:  l.Subtotal,
		})
	}
	return out, nil
}

// Receipt genera el PDF del recibo. Retorna (pdfBytes, filename, nil).
func (uc *SaleQueryUseCase) Receipt(ctx context.Context, id string) ([]byte, string, error) {
	if uc.renderer == nil {
		return nil, "", fmt.Errorf("recibo: %w: generador PDF no configurado", domain.ErrInternal)
	}
	sale, lines, err := uc.load(ctx, id)
	if err != nil {
		return nil, "", err
	}
	data := ports.ReceiptData{Sale: sale, Lines: make([]ports.ReceiptLine, 0, len(lines))}
	if sale.CustomerID != nil {
		c, err := uc.repos.Customers.GetByID(ctx, *sale.CustomerID)
		if err != nil {
			return nil, "", fmt.Errorf("recibo: obtener cliente: %w", err)
		}
		if c != nil {
			data.CustomerName = c.Name
		}
	}
	for _, l := range lines {
		name := l.ProductID
		p, err := uc.repos.Products.GetByID(ctx, l.ProductID)
		if err != nil {
			return nil, "", fmt.Errorf("recibo: obtener producto: %w", err)
		}
		if p != nil {
			name = p.Name
		}
		data.Lines = append(data.Lines, ports.ReceiptLine{ProductName: name, Line: l})
	}
	pdf, err := uc.renderer.Render(data)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: generar PDF: %w", err)
	}
	return pdf, "recibo-" + sale.OrderNumber + ".pdf", nil
}

func (uc *SaleQueryUseCase) load(ctx context.Context, id string) (*entity.Sale, []*entity.SaleLine, error) {
	sale, err := uc.repos.Sales.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if sale == nil {
		return nil, nil, domain.NotFound("sale", id)
	}
	lines, err := uc.repos.Sales.ListLines(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	sortLines(lines)
	return sale, lines, nil
}
