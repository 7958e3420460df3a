// Package pdf implementa la generación del comprobante de cierre de comanda.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Comprobante de cierre  │  N° Comanda + Fecha       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | P.Unit | Subtotal              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CARGOS: desglose por cliente (splits)                      │
//	│  PAGOS: método + monto (solo comandas de crédito)           │
//	│  TOTAL                                                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
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

	apptab "github.com/venuehub/comanda-api/internal/application/tab"
	"github.com/venuehub/comanda-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ apptab.ReceiptPDFGenerator = (*MarotoReceiptGenerator)(nil)

// MarotoReceiptGenerator implementa tab.ReceiptPDFGenerator usando Maroto v2.
type MarotoReceiptGenerator struct{}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// GenerateReceiptPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(_ context.Context, data *apptab.ReceiptData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de cierre de comanda", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data.Tab))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	// Tabla de consumos
	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(data.Items) {
		m.AddRows(r)
	}

	// Cargos por cliente (solo relevante cuando hubo split)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, r := range chargeRows(data.Charges) {
		m.AddRows(r)
	}

	// Pagos registrados en caja
	if len(data.Payments) > 0 {
		for _, r := range paymentRows(data.Payments) {
			m.AddRows(r)
		}
	}

	// Total
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(data))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y N° de comanda + fechas (der).
func headerRow(t *entity.Tab) core.Row {
	fechaCierre := ""
	if t.ClosedAt != nil {
		fechaCierre = t.ClosedAt.Format("02/01/2006 15:04")
	}
	tipo := "PREPAGO"
	if t.Type == entity.TabTypeCredit {
		tipo = "CRÉDITO"
	}

	return row.New(18).Add(
		col.New(7).Add(
			text.New("COMPROBANTE DE CIERRE", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Comanda "+tipo, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("COMANDA N°", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(t.ID), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New("Cierre: "+fechaCierre, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de consumos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Descripción", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// tableItemRows: una fila por consumo. Los ítems de ubicación muestran la franja.
func tableItemRows(items []*entity.TabItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		desc := it.Description
		if it.HasTimeWindow() {
			desc = fmt.Sprintf("%s (%s - %s)", desc,
				it.StartAt.Format("15:04"), it.EndAt.Format("15:04"))
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				it.Quantity.StringFixed(0),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				desc,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"$"+it.UnitPrice.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				"$"+it.Total.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// chargeRows: desglose de cargos por cliente.
func chargeRows(charges []apptab.ReceiptCharge) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("CARGOS POR CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	for _, c := range charges {
		rows = append(rows, row.New(6).Add(
			col.New(8).Add(text.New(c.CustomerName, props.Text{
				Size: 8, Top: 1, Left: 2,
			})),
			col.New(4).Add(text.New("$"+c.Amount.StringFixed(2), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return rows
}

// paymentRows: pagos registrados contra la caja.
func paymentRows(payments []*entity.TabPayment) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("PAGOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	for _, p := range payments {
		rows = append(rows, row.New(6).Add(
			col.New(8).Add(text.New(methodLabel(p.Method), props.Text{
				Size: 8, Top: 1, Left: 2,
			})),
			col.New(4).Add(text.New("$"+p.Amount.StringFixed(2), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return rows
}

// totalRow: total de la comanda alineado a la derecha.
func totalRow(data *apptab.ReceiptData) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(3).Add(text.New("$"+data.Total.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func methodLabel(method string) string {
	switch method {
	case entity.PaymentMethodCash:
		return "Efectivo"
	case entity.PaymentMethodDebit:
		return "Débito"
	case entity.PaymentMethodCredit:
		return "Crédito"
	case entity.PaymentMethodPix:
		return "Pix"
	}
	return method
}

// shortID devuelve los primeros 8 caracteres de un UUID para impresión.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
