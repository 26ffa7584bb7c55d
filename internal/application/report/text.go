package report

import (
	"strings"

	"github.com/DenisZev/wildberries-bot/internal/i18n"
)

// RenderText arma el resumen de texto del reporte. Es determinista: el mismo
// ReportMetrics produce siempre el mismo texto.
func RenderText(p *i18n.Printer, m *ReportMetrics) string {
	if len(m.Sales) == 0 {
		return p.T(i18n.ReportNoSales)
	}

	lines := []string{
		p.T(i18n.ReportTitle),
		p.T(i18n.ReportTotalSales, m.TotalSales),
		p.T(i18n.ReportRevenue, m.TotalRevenue.String()),
		p.T(i18n.ReportAvgSale, m.AvgSale.String()),
		p.T(i18n.ReportItemsSold, m.ItemsSold),
		p.T(i18n.ReportReturns, m.TotalReturns),
		p.T(i18n.ReportCost, m.TotalCost.String()),
		p.T(i18n.ReportCommission, m.TotalCommission.String()),
		p.T(i18n.ReportDelivery, m.TotalDelivery.String()),
		p.T(i18n.ReportProfit, m.TotalProfit.String()),
	}

	if top := TopProductsBlock(p, m); top != "" {
		lines = append(lines, "", top)
	}

	if len(m.MissingCost) > 0 {
		articles := make([]string, 0, len(m.MissingCost))
		for _, a := range m.MissingCost {
			articles = append(articles, orUnknown(p, a))
		}
		lines = append(lines, "", p.T(i18n.ReportMissingCost, strings.Join(articles, ", ")))
	}

	return strings.Join(lines, "\n")
}

// TopProductsBlock encabezado + una línea por artículo; vacío si no hubo ventas.
func TopProductsBlock(p *i18n.Printer, m *ReportMetrics) string {
	if len(m.TopProducts) == 0 {
		return ""
	}
	lines := []string{p.T(i18n.ReportTopTitle)}
	for _, tp := range m.TopProducts {
		lines = append(lines, p.T(i18n.ReportTopLine, orUnknown(p, tp.Article), tp.Count))
	}
	return strings.Join(lines, "\n")
}

func orUnknown(p *i18n.Printer, s string) string {
	if s == "" {
		return p.T(i18n.Unknown)
	}
	return s
}
