package report_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/DenisZev/wildberries-bot/internal/application/report"
	"github.com/DenisZev/wildberries-bot/internal/domain/entity"
	"github.com/DenisZev/wildberries-bot/internal/i18n"
)

func metricsFor(t *testing.T, costs map[string]decimal.Decimal, sales ...entity.SaleRecord) *report.ReportMetrics {
	t.Helper()
	m, err := report.NewAggregator(&mapResolver{costs: costs}).Aggregate(context.Background(), input(sales...))
	require.NoError(t, err)
	return m
}

func TestRenderText_Escenario220(t *testing.T) {
	m := metricsFor(t, map[string]decimal.Decimal{"abc": decimal.NewFromInt(100)}, sale("ABC", 2, 500, 50, 30))
	text := report.RenderText(i18n.NewPrinter(language.English), m)

	want := strings.Join([]string{
		"Sales report:",
		"Total sales: 1",
		"Total revenue: 500,00 RUB",
		"Average revenue per sale: 500,00 RUB",
		"Units sold: 2",
		"Returns: 0 pcs",
		"Cost of goods: 200,00 RUB",
		"WB commission: 50,00 RUB",
		"Delivery costs: 30,00 RUB",
		"Net profit: 220,00 RUB",
		"",
		"Top 3 best-selling products:",
		"- ABC: 1 pcs",
	}, "\n")
	assert.Equal(t, want, text)
}

func TestRenderText_Ruso(t *testing.T) {
	m := metricsFor(t, map[string]decimal.Decimal{"abc": decimal.NewFromInt(100)}, sale("ABC", 2, 500, 50, 30))
	text := report.RenderText(i18n.NewPrinter(language.Russian), m)

	assert.Contains(t, text, "Чистая прибыль: 220,00 руб.")
	assert.True(t, strings.HasPrefix(text, "Отчёт по продажам:"))
}

func TestRenderText_AvisoDeCostoFaltante(t *testing.T) {
	m := metricsFor(t, nil, sale("A-1", 1, 10, 0, 0), sale("", 1, 10, 0, 0))
	text := report.RenderText(i18n.NewPrinter(language.English), m)

	lines := strings.Split(text, "\n")
	assert.Equal(t, "⚠️ Products without purchase cost: A-1, unknown. Set them via /add_product.", lines[len(lines)-1])
}

func TestRenderText_SinVentas(t *testing.T) {
	in := input()
	in.Stock = []entity.StockRecord{{Article: "A", Quantity: 1}}
	m, err := report.NewAggregator(&mapResolver{}).Aggregate(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, "No sales data for the selected period.", report.RenderText(i18n.NewPrinter(language.English), m))
}

func TestRenderText_SoloDevoluciones_SinBloqueTop(t *testing.T) {
	ret := sale("A", 1, 0, 0, 0)
	ret.Operation = entity.OperationReturn
	m := metricsFor(t, nil, ret)
	text := report.RenderText(i18n.NewPrinter(language.English), m)

	assert.NotContains(t, text, "Top 3")
	assert.Contains(t, text, "Total sales: 0")
}

func TestRenderText_Determinista(t *testing.T) {
	m := metricsFor(t, nil, sale("A", 1, 1, 0, 0), sale("B", 1, 1, 0, 0))
	p := i18n.NewPrinter(language.Russian)
	assert.Equal(t, report.RenderText(p, m), report.RenderText(p, m))
}
