// Package pdf genera la versión imprimible del informe de ventas con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + periodo del informe                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: ingresos / beneficio / costo / IVA / descuento     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: top productos (cant | nombre | beneficio | ingreso)  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: beneficio por categoría / método de pago             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Tpv-api/internal/application/dto"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ReportGenerator implementa usecase.ReportPDFGenerator usando Maroto v2.
type ReportGenerator struct{}

// NewReportGenerator construye el generador.
func NewReportGenerator() *ReportGenerator { return &ReportGenerator{} }

// Generate genera el PDF del informe y devuelve sus bytes.
func (g *ReportGenerator) Generate(rep *dto.SalesReportDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Informe de ventas", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRows(rep)...)

	if len(rep.TopProducts) > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(sectionTitle("Productos más vendidos"))
		m.AddRows(topProductsHeaderRow())
		for _, p := range rep.TopProducts {
			m.AddRows(topProductRow(p))
		}
	}

	if len(rep.ChartSeries) > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		m.AddRows(sectionTitle("Beneficio por grupo"))
		for _, p := range rep.ChartSeries {
			m.AddRows(row.New(5).Add(
				text.NewCol(8, p.Label, props.Text{Size: 8}),
				text.NewCol(4, p.Profit.StringFixed(2)+" €", props.Text{Size: 8, Align: align.Right}),
			))
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar informe: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(rep *dto.SalesReportDTO) core.Row {
	periodo := fmt.Sprintf("%s — %s",
		rep.Period.From.Format("02/01/2006"), rep.Period.To.Format("02/01/2006"))
	return row.New(12).Add(
		text.NewCol(8, "Informe de ventas", props.Text{
			Size: 14, Style: fontstyle.Bold, Color: colorPrimary,
		}),
		text.NewCol(4, periodo, props.Text{
			Size: 9, Align: align.Right, Color: colorGray, Top: 3,
		}),
	)
}

func summaryRows(rep *dto.SalesReportDTO) []core.Row {
	entry := func(label, value string) core.Row {
		return row.New(6).Add(
			text.NewCol(6, label, props.Text{Size: 9}),
			text.NewCol(6, value, props.Text{Size: 9, Align: align.Right, Style: fontstyle.Bold}),
		)
	}
	return []core.Row{
		entry("Ingresos", rep.TotalRevenue.StringFixed(2)+" €"),
		entry("Beneficio", rep.TotalProfit.StringFixed(2)+" €"),
		entry("Costo", rep.TotalCostBasis.StringFixed(2)+" €"),
		entry("IVA repercutido", rep.TotalTax.StringFixed(2)+" €"),
		entry("Descuentos", rep.TotalDiscount.StringFixed(2)+" €"),
		entry("Margen medio", rep.AverageMarginPct.StringFixed(2)+" %"),
		entry("Tickets", fmt.Sprintf("%d", rep.OrderCount)),
	}
}

func sectionTitle(title string) core.Row {
	return row.New(8).Add(
		text.NewCol(12, title, props.Text{Size: 11, Style: fontstyle.Bold, Color: colorPrimary, Top: 2}),
	)
}

func topProductsHeaderRow() core.Row {
	h := func(size int, label string) core.Col {
		return text.NewCol(size, label, props.Text{Size: 8, Style: fontstyle.Bold, Color: colorGray})
	}
	return row.New(6).Add(
		h(2, "Cant."), h(5, "Producto"), h(2, "Margen"), h(3, "Beneficio"),
	)
}

func topProductRow(p dto.ProductStatsDTO) core.Row {
	return row.New(5).Add(
		text.NewCol(2, fmt.Sprintf("%d", p.Quantity), props.Text{Size: 8}),
		text.NewCol(5, p.Name, props.Text{Size: 8}),
		text.NewCol(2, p.MarginPct.StringFixed(1)+" %", props.Text{Size: 8}),
		text.NewCol(3, p.Profit.StringFixed(2)+" €", props.Text{Size: 8, Align: align.Right}),
	)
}
