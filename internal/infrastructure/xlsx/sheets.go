package xlsx

import (
	"time"

	"github.com/DenisZev/wildberries-bot/internal/application/report"
	"github.com/DenisZev/wildberries-bot/internal/domain/entity"
	"github.com/DenisZev/wildberries-bot/internal/domain/money"
	"github.com/DenisZev/wildberries-bot/internal/i18n"
)

func (r *Renderer) detailSheet(m *report.ReportMetrics, sales []entity.SaleRecord) sheet {
	rows := make([][]any, 0, len(sales))
	for _, s := range sales {
		unitCost, _ := m.UnitCost(s.Article).Float64()
		rows = append(rows, []any{
			formatTime(s.SoldAt),
			r.orUnknown(s.Article),
			r.orUnknown(s.Subject),
			s.Quantity,
			money.FromMajor(s.ForPay).Float64(),
			money.FromMajor(s.RetailPrice).Float64(),
			money.FromMajor(s.Commission).Float64(),
			unitCost,
			s.Office,
		})
	}
	return sheet{
		name: r.p.T(i18n.SheetDetail),
		headers: []string{
			r.p.T(i18n.ColSaleDate),
			r.p.T(i18n.ColSellerArticle),
			r.p.T(i18n.ColProductName),
			r.p.T(i18n.ColQuantity),
			r.p.T(i18n.ColForPay),
			r.p.T(i18n.ColRetailPrice),
			r.p.T(i18n.ColCommission),
			r.p.T(i18n.ColPurchaseCost),
			r.p.T(i18n.ColWarehouse),
		},
		rows:      rows,
		moneyCols: []int{4, 5, 6, 7},
		widths:    []float64{20, 20, 28, 12, 22, 22, 20, 26, 24},
	}
}

func (r *Renderer) summarySheet(m *report.ReportMetrics) sheet {
	metric := func(k i18n.Key, v any) []any { return []any{r.p.T(k), v} }
	return sheet{
		name:    r.p.T(i18n.SheetSummary),
		headers: []string{r.p.T(i18n.ColMetric), r.p.T(i18n.ColValue)},
		rows: [][]any{
			metric(i18n.MetricTotalSales, m.TotalSales),
			metric(i18n.MetricRevenue, m.TotalRevenue.String()),
			metric(i18n.MetricAvgSale, m.AvgSale.String()),
			metric(i18n.MetricItemsSold, m.ItemsSold),
			metric(i18n.MetricReturns, m.TotalReturns),
			metric(i18n.MetricCost, m.TotalCost.String()),
			metric(i18n.ColCommission, m.TotalCommission.String()),
			metric(i18n.MetricDelivery, m.TotalDelivery.String()),
			metric(i18n.MetricProfit, m.TotalProfit.String()),
			metric(i18n.MetricTopProducts, report.TopProductsBlock(r.p, m)),
		},
		widths: []float64{36, 40},
	}
}

func (r *Renderer) stockSheet(m *report.ReportMetrics) sheet {
	rows := make([][]any, 0, len(m.Stock))
	for _, s := range m.Stock {
		rows = append(rows, []any{r.orUnknown(s.Article), r.orUnknown(s.Subject), s.Quantity, s.Warehouse})
	}
	return sheet{
		name: r.p.T(i18n.SheetStock),
		headers: []string{
			r.p.T(i18n.ColArticle),
			r.p.T(i18n.ColName),
			r.p.T(i18n.ColQuantity),
			r.p.T(i18n.ColWarehouse),
		},
		rows:   rows,
		widths: []float64{20, 28, 12, 24},
	}
}

func (r *Renderer) transitSheet(m *report.ReportMetrics) sheet {
	rows := make([][]any, 0, len(m.Transit))
	for _, t := range m.Transit {
		rows = append(rows, []any{t.OrderID, r.orUnknown(t.Article), formatTime(t.CreatedAt), t.Office})
	}
	return sheet{
		name: r.p.T(i18n.SheetInTransit),
		headers: []string{
			r.p.T(i18n.ColOrderID),
			r.p.T(i18n.ColArticle),
			r.p.T(i18n.ColCreated),
			r.p.T(i18n.ColWarehouse),
		},
		rows:   rows,
		widths: []float64{16, 20, 20, 24},
	}
}

func (r *Renderer) orUnknown(s string) string {
	if s == "" {
		return r.p.T(i18n.Unknown)
	}
	return s
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timeLayout)
}
