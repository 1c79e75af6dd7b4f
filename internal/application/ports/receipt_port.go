package ports

import (
	"github.com/jhoicas/peakers-pos-api/internal/domain/entity"
)

// ReceiptLine línea del recibo con el nombre del producto ya resuelto.
type ReceiptLine struct {
	ProductName string
	Line        *entity.SaleLine
}

// ReceiptData datos necesarios para imprimir el recibo de una venta.
type ReceiptData struct {
	Sale         *entity.Sale
	CustomerName string // vacío = venta invitado
	Lines        []ReceiptLine
}

// ReceiptRenderer genera el recibo en PDF. La implementación (maroto) vive en infrastructure/pdf.
type ReceiptRenderer interface {
	Render(data ReceiptData) ([]byte, error)
}
