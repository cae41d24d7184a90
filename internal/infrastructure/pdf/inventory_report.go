// Package pdf genera el reporte de valorización de inventario de una tienda con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la tienda │ Fecha de generación          │
//	│  Dueño (email)                                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Categoría | Productos | Unidades | Valor            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Productos / Unidades / VALOR TOTAL                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/storekeeper-api/internal/application/ports"
	"github.com/jhoicas/storekeeper-api/internal/domain/inventory"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ ports.InventoryReportRenderer = (*MarotoReportRenderer)(nil)

// MarotoReportRenderer implementa ports.InventoryReportRenderer usando Maroto v2.
type MarotoReportRenderer struct {
	printer *message.Printer
}

// NewMarotoReportRenderer construye el generador. Los montos se formatean con separadores en español.
func NewMarotoReportRenderer() *MarotoReportRenderer {
	return &MarotoReportRenderer{printer: message.NewPrinter(language.Spanish)}
}

// RenderInventoryReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportRenderer) RenderInventoryReport(_ context.Context, report ports.InventoryReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Valorización de inventario", true).
		WithAuthor(report.StoreName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(g.categoryRows(report.Valuation)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(report.Valuation))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(report ports.InventoryReport) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(report.StoreName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Dueño: "+nonEmpty(report.OwnerEmail, "-"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("VALORIZACIÓN DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Categoría", 5, align.Left),
		h("Productos", 2, align.Center),
		h("Unidades", 2, align.Center),
		h("Valor", 3, align.Right),
	)
}

func (g *MarotoReportRenderer) categoryRows(v inventory.Valuation) []core.Row {
	if len(v.Breakdown) == 0 {
		return []core.Row{row.New(8).Add(col.New(12).Add(
			text.New("La tienda no tiene productos.", props.Text{Size: 8, Top: 2, Color: colorGray}),
		))}
	}
	rows := make([]core.Row, 0, len(v.Breakdown))
	for _, c := range v.Breakdown {
		rows = append(rows, row.New(7).Add(
			col.New(5).Add(text.New(c.Category, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(g.printer.Sprintf("%d", c.ProductCount), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(g.printer.Sprintf("%d", c.TotalQuantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(g.formatMoney(c.TotalValue), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func (g *MarotoReportRenderer) totalsRow(v inventory.Valuation) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Productos:"),
			label("Unidades:"),
			text.New("VALOR TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2}),
		),
		col.New(3).Add(
			value(g.printer.Sprintf("%d", v.TotalProducts)),
			value(g.printer.Sprintf("%d", v.TotalQuantity)),
			text.New(g.formatMoney(v.TotalValue), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney redondea a 2 decimales y agrupa miles según el idioma del printer.
// Ej (es): 81299.5 → "$81.299,50".
func (g *MarotoReportRenderer) formatMoney(d decimal.Decimal) string {
	fixed := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")
	n, _ := decimal.NewFromString(intPart)
	return "$" + g.printer.Sprintf("%d", n.IntPart()) + decimalSeparator(g.printer) + frac
}

// decimalSeparator deduce el separador decimal formateando un float conocido.
func decimalSeparator(p *message.Printer) string {
	s := p.Sprintf("%.1f", 0.5)
	if strings.Contains(s, ",") {
		return ","
	}
	return "."
}
