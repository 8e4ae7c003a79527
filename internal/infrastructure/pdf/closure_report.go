// Package pdf implementa el comprobante de cierre de caja diario.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Cierre de caja + fecha (izq) │ kiosco (der)        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: ventas / unidades / total / costo / ganancia      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Hora | Venta | Unidades | Total                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
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

	"github.com/stockfacil/kiosco-pos/internal/application/cash"
	"github.com/stockfacil/kiosco-pos/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ cash.ReportGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa cash.ReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// ClosureReport genera el comprobante del cierre y devuelve sus bytes.
func (g *MarotoReportGenerator) ClosureReport(c *entity.CashClosure, sales []*entity.Sale) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Cierre de caja "+c.DateKey, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(c))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRows(c)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(tableHeaderRow())
	for _, s := range sales {
		m.AddRows(saleRow(s))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título + fecha (izq) y kiosco (der).
func headerRow(c *entity.CashClosure) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("CIERRE DE CAJA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(c.DateKey, props.Text{Size: 10, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("Kiosco "+c.TenantID, props.Text{
				Size: 8, Align: align.Right, Color: colorGray, Top: 1,
			}),
			text.New(c.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Color: colorGray, Top: 6,
			}),
		),
	)
}

// summaryRows: agregados del día.
func summaryRows(c *entity.CashClosure) []core.Row {
	label := func(s string) core.Col {
		return col.New(6).Add(text.New(s, props.Text{Size: 9, Color: colorGray}))
	}
	value := func(s string, bold bool) core.Col {
		style := fontstyle.Normal
		if bold {
			style = fontstyle.Bold
		}
		return col.New(6).Add(text.New(s, props.Text{Size: 9, Align: align.Right, Style: style}))
	}
	return []core.Row{
		row.New(6).Add(label("Ventas"), value(fmt.Sprintf("%d", c.SalesCount), false)),
		row.New(6).Add(label("Unidades vendidas"), value(fmt.Sprintf("%d", c.ItemsCount), false)),
		row.New(6).Add(label("Total vendido"), value("$ "+c.TotalAmount.StringFixed(2), false)),
		row.New(6).Add(label("Costo proveedor"), value("$ "+c.TotalCost.StringFixed(2), false)),
		row.New(7).Add(label("GANANCIA"), value("$ "+c.ProfitAmount.StringFixed(2), true)),
	}
}

// tableHeaderRow: encabezado de la tabla de ventas.
func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary}
	return row.New(7).Add(
		col.New(3).Add(text.New("Hora", header)),
		col.New(4).Add(text.New("Venta", header)),
		col.New(2).Add(text.New("Unidades", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Align: align.Right,
		})),
		col.New(3).Add(text.New("Total", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Align: align.Right,
		})),
	)
}

func saleRow(s *entity.Sale) core.Row {
	return row.New(5).Add(
		col.New(3).Add(text.New(s.CreatedAt.Format("15:04"), props.Text{Size: 8})),
		col.New(4).Add(text.New(s.ID[:8], props.Text{Size: 8, Color: colorGray})),
		col.New(2).Add(text.New(fmt.Sprintf("%d", s.ItemsCount), props.Text{Size: 8, Align: align.Right})),
		col.New(3).Add(text.New("$ "+s.Total.StringFixed(2), props.Text{Size: 8, Align: align.Right})),
	)
}
