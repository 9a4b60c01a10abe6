// Package pdf implementa la generación de la remisión (nota de despacho) de
// un traslado de stock usando Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Remisión de traslado  │  N° Traslado + Estado       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ORIGEN: tipo + nombre    |    DESTINO: tipo + nombre        │
//	│  FECHAS: solicitud / envío / recepción  |  Solicitado por    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Solicitada | Enviada | Recibida     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  NOTAS + QR con el número de traslado                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	apptransfer "github.com/jhoicas/pos-backoffice/internal/application/transfer"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// statusLabels etiquetas legibles por estado del traslado.
var statusLabels = map[string]string{
	entity.TransferStatusPending:           "PENDIENTE",
	entity.TransferStatusInTransit:         "EN TRÁNSITO",
	entity.TransferStatusPartiallyReceived: "RECIBIDO PARCIAL",
	entity.TransferStatusReceived:          "RECIBIDO",
	entity.TransferStatusCancelled:         "CANCELADO",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa transfer.DispatchNotePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

var _ apptransfer.DispatchNotePDFGenerator = (*MarotoPDFGenerator)(nil)

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateDispatchNote genera el PDF de la remisión y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateDispatchNote(
	_ context.Context,
	data *apptransfer.DispatchNoteData,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Remisión de Traslado "+data.Transfer.TransferNumber, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data.Transfer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(locationsRow(data))
	m.AddRows(datesRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabla de líneas
	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(data.Lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, r := range footerRows(data.Transfer) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y N° de traslado + estado (der).
func headerRow(t *entity.StockTransfer) core.Row {
	status := statusLabels[t.Status]
	if status == "" {
		status = t.Status
	}

	return row.New(18).Add(
		col.New(7).Add(
			text.New("REMISIÓN DE TRASLADO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Documento de despacho entre ubicaciones", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(t.TransferNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 2,
			}),
			text.New("Estado: "+status, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right,
				Top: 10, Color: colorPrimary,
			}),
		),
	)
}

// locationsRow: origen y destino lado a lado.
func locationsRow(data *apptransfer.DispatchNoteData) core.Row {
	return row.New(14).Add(
		col.New(6).Add(
			text.New("ORIGEN ("+kindLabel(data.SourceKind)+")", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(data.SourceName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 7,
			}),
		),
		col.New(6).Add(
			text.New("DESTINO ("+kindLabel(data.DestinationKind)+")", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(data.DestinationName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 7,
			}),
		),
	)
}

// datesRow: fechas del ciclo y solicitante.
func datesRow(data *apptransfer.DispatchNoteData) core.Row {
	t := data.Transfer
	fechas := "Solicitud: " + t.RequestDate.Format("02/01/2006")
	if t.ShipDate != nil {
		fechas += "   |   Envío: " + t.ShipDate.Format("02/01/2006")
	}
	if t.ReceiveDate != nil {
		fechas += "   |   Recepción: " + t.ReceiveDate.Format("02/01/2006")
	}

	return row.New(10).Add(
		col.New(8).Add(
			text.New(fechas, props.Text{Size: 8, Top: 2, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Solicitado por: "+nonEmpty(data.RequestedByName, "—"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Producto", 4, align.Left),
		h("Solicitada", 2, align.Right),
		h("Enviada", 2, align.Right),
		h("Recibida", 2, align.Right),
	)
}

// tableLineRows: una fila por línea del traslado.
func tableLineRows(lines []apptransfer.DispatchNoteLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		name := l.ProductName
		if l.VariantName != "" {
			name += " / " + l.VariantName
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				nonEmpty(l.SKU, "—"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				l.QuantityRequested.String(),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				l.QuantityShipped.String(),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				l.QuantityReceived.String(),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// footerRows: notas + QR con el número de traslado para escanear en destino.
func footerRows(t *entity.StockTransfer) []core.Row {
	rows := []core.Row{}

	if t.Notes != "" {
		rows = append(rows,
			row.New(5).Add(col.New(12).Add(
				text.New("Notas:", props.Text{
					Style: fontstyle.Bold, Size: 8, Top: 1,
				}),
			)),
			row.New(8).Add(col.New(12).Add(
				text.New(t.Notes, props.Text{Size: 8, Color: colorGray, Top: 1, Left: 2}),
			)),
		)
	}

	rows = append(rows, row.New(3))
	rows = append(rows, row.New(40).Add(
		col.New(4).Add(code.NewQr(t.TransferNumber, props.Rect{
			Percent: 90,
			Center:  true,
		})),
		col.New(8).Add(
			text.New("Escanea el código QR en el punto de\nrecepción para registrar la llegada.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Las cantidades recibidas se confirman\ncontra este documento.", props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 20,
				Left: 3, Color: colorPrimary,
			}),
		),
	))

	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func kindLabel(kind string) string {
	switch kind {
	case entity.LocationKindWarehouse:
		return "Bodega"
	case entity.LocationKindShop:
		return "Tienda"
	}
	return kind
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
