// Package pdf genera el resumen imprimible del reporte de ventas con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título del reporte  │  período + vendedor          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Métrica | Valor                                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOP-3 artículos                                             │
//	│  FOOTER: artículos sin costo (si los hay)                    │
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

	"github.com/DenisZev/wildberries-bot/internal/application/report"
	"github.com/DenisZev/wildberries-bot/internal/i18n"
)

const contentType = "application/pdf"

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 110, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWarn    = &props.Color{Red: 170, Green: 60, Blue: 0}
)

var _ report.ArtifactRenderer = (*SummaryRenderer)(nil)

// SummaryRenderer resumen de una página. Las fuentes base del PDF son
// Latin-1, por eso se construye con el catálogo en inglés.
type SummaryRenderer struct {
	p *i18n.Printer
}

// NewSummaryRenderer construye el generador.
func NewSummaryRenderer(p *i18n.Printer) *SummaryRenderer { return &SummaryRenderer{p: p} }

func (g *SummaryRenderer) Kind() report.ArtifactKind { return report.ArtifactPDF }

// FileName nombre del PDF para el período.
func FileName(period report.Period) string {
	return fmt.Sprintf("sales_summary_%s_%s.pdf", period.From, period.To)
}

// Render devuelve (nil, nil) si no hubo ventas concretadas.
func (g *SummaryRenderer) Render(_ context.Context, m *report.ReportMetrics) (*report.Artifact, error) {
	if m.TotalSales == 0 {
		return nil, nil
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle(g.p.T(i18n.ReportTitle), true).
		Build()

	doc := maroto.New(cfg)
	doc.AddRows(g.headerRow(m))
	doc.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.5}))
	doc.AddRows(g.metricRows(m)...)
	doc.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.3}))
	doc.AddRows(g.topRows(m)...)
	if len(m.MissingCost) > 0 {
		doc.AddRows(line.NewRow(4))
		doc.AddRows(g.missingCostRow(m))
	}

	out, err := doc.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return &report.Artifact{
		Kind:        report.ArtifactPDF,
		Name:        FileName(m.Period),
		ContentType: contentType,
		Data:        out.GetBytes(),
	}, nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *SummaryRenderer) headerRow(m *report.ReportMetrics) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(g.p.T(i18n.ReportTitle), props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(5).Add(
			text.New(m.Period.From+" - "+m.Period.To, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2,
			}),
			text.New(fmt.Sprintf("ID %d", m.SellerID), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func (g *SummaryRenderer) metricRows(m *report.ReportMetrics) []core.Row {
	pairs := []struct {
		key   i18n.Key
		value string
	}{
		{i18n.MetricTotalSales, fmt.Sprint(m.TotalSales)},
		{i18n.MetricRevenue, m.TotalRevenue.String()},
		{i18n.MetricAvgSale, m.AvgSale.String()},
		{i18n.MetricItemsSold, fmt.Sprint(m.ItemsSold)},
		{i18n.MetricReturns, fmt.Sprint(m.TotalReturns)},
		{i18n.MetricCost, m.TotalCost.String()},
		{i18n.ColCommission, m.TotalCommission.String()},
		{i18n.MetricDelivery, m.TotalDelivery.String()},
		{i18n.MetricProfit, m.TotalProfit.String()},
	}
	rows := make([]core.Row, 0, len(pairs))
	for i, p := range pairs {
		style := fontstyle.Normal
		if i == len(pairs)-1 {
			style = fontstyle.Bold
		}
		rows = append(rows, row.New(7).Add(
			col.New(8).Add(text.New(g.p.T(p.key), props.Text{Size: 10, Top: 1, Style: style})),
			col.New(4).Add(text.New(p.value, props.Text{Size: 10, Top: 1, Align: align.Right, Style: style})),
		))
	}
	return rows
}

func (g *SummaryRenderer) topRows(m *report.ReportMetrics) []core.Row {
	block := report.TopProductsBlock(g.p, m)
	if block == "" {
		return nil
	}
	lines := strings.Split(block, "\n")
	rows := make([]core.Row, 0, len(lines))
	for i, l := range lines {
		prop := props.Text{Size: 9, Top: 1}
		if i == 0 {
			prop = props.Text{Size: 10, Top: 1, Style: fontstyle.Bold, Color: colorPrimary}
		}
		rows = append(rows, row.New(6).Add(col.New(12).Add(text.New(l, prop))))
	}
	return rows
}

func (g *SummaryRenderer) missingCostRow(m *report.ReportMetrics) core.Row {
	msg := g.p.T(i18n.ReportMissingCost, strings.Join(m.MissingCost, ", "))
	// el emoji no existe en las fuentes base
	msg = strings.TrimSpace(strings.TrimPrefix(msg, "⚠️"))
	return row.New(12).Add(
		col.New(12).Add(text.New(msg, props.Text{Size: 8, Color: colorWarn, Top: 1})),
	)
}
