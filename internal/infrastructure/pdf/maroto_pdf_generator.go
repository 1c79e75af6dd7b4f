// Package pdf genera el recibo de venta en PDF con Maroto v2.
//
// Layout (ancho A5):
//
//	┌─────────────────────────────────────────┐
//	│  Comercio                │ N° de orden   │
//	│  Cliente / medio de pago / estado        │
//	│  Cant | Producto | Subtotal              │
//	│  Subtotal / IVA / Descuento / TOTAL      │
//	│  QR con el número de orden               │
//	└─────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/peakers-pos-api/internal/application/ports"
	"github.com/jhoicas/peakers-pos-api/internal/domain/entity"
)

var _ ports.ReceiptRenderer = (*ReceiptGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorVoid    = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ReceiptGenerator implementa ports.ReceiptRenderer.
type ReceiptGenerator struct {
	storeName string
}

// NewReceiptGenerator construye el generador; storeName encabeza el recibo.
func NewReceiptGenerator(storeName string) *ReceiptGenerator {
	return &ReceiptGenerator{storeName: storeName}
}

// Render genera el PDF y devuelve sus bytes.
func (g *ReceiptGenerator) Render(data ports.ReceiptData) ([]byte, error) {
	if data.Sale == nil {
		return nil, fmt.Errorf("pdf: venta vacía")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Recibo "+data.Sale.OrderNumber, true).
		WithAuthor(g.storeName, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(g.headerRow(data.Sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(infoRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(tableHeaderRow())
	m.AddRows(lineRows(data.Lines)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(data))
	m.AddRows(row.New(30).Add(
		col.New(4).Add(code.NewQr(data.Sale.OrderNumber, props.Rect{Percent: 90, Center: true})),
		col.New(8).Add(text.New("Conserve este recibo para cambios y devoluciones.", props.Text{
			Size: 8, Top: 10, Left: 3, Color: colorGray,
		})),
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *ReceiptGenerator) headerRow(sale *entity.Sale) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(g.storeName, props.Text{Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1}),
			text.New(sale.CreatedAt.Format("02/01/2006 15:04"), props.Text{Size: 8, Top: 8, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("RECIBO DE VENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(sale.OrderNumber, props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7}),
		),
	)
}

func infoRow(data ports.ReceiptData) core.Row {
	customer := data.CustomerName
	if customer == "" {
		customer = "Cliente de mostrador"
	}
	status := props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1}
	if data.Sale.Status != entity.SaleStatusCompleted {
		status.Color = colorVoid
	}
	return row.New(10).Add(
		col.New(8).Add(
			text.New("Cliente: "+customer, props.Text{Size: 8, Top: 1}),
			text.New("Pago: "+string(data.Sale.PaymentType), props.Text{Size: 8, Top: 5, Color: colorGray}),
		),
		col.New(4).Add(text.New(strings.ToUpper(string(data.Sale.Status)), status)),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorWhite, Top: 1.5, Left: 1, Right: 1,
		})).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
	}
	return row.New(7).Add(
		h("Cant.", 2, align.Center),
		h("Producto", 6, align.Left),
		h("Subtotal", 4, align.Right),
	)
}

func lineRows(lines []ports.ReceiptLine) []core.Row {
	out := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		out = append(out, row.New(6).Add(
			col.New(2).Add(text.New(fmt.Sprintf("%d", l.Line.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(l.ProductName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(formatMoney(l.Line.Subtotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return out
}

func totalsRow(data ports.ReceiptData) core.Row {
	subtotal := decimal.Zero
	for _, l := range data.Lines {
		subtotal = subtotal.Add(l.Line.Subtotal)
	}
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 8, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(24).Add(
		col.New(4),
		col.New(4).Add(
			label("Subtotal:", 1),
			label("IVA:", 6),
			label("Descuento:", 11),
			text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 16}),
		),
		col.New(4).Add(
			value(formatMoney(subtotal), 1),
			value(formatMoney(data.Sale.VAT), 6),
			value("-"+formatMoney(data.Sale.Discount), 11),
			text.New(formatMoney(data.Sale.Total), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 16}),
		),
	)
}

// formatMoney dos decimales con separador de miles: 1234567.5 -> "1,234,567.50".
func formatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-3:]
	n := len(intPart)
	var b strings.Builder
	if d.IsNegative() {
		b.WriteByte('-')
	}
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(c)
	}
	b.WriteString(frac)
	return b.String()
}
