package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DenisZev/wildberries-bot/internal/application/report"
	"github.com/DenisZev/wildberries-bot/internal/domain"
	"github.com/DenisZev/wildberries-bot/internal/domain/entity"
	"github.com/DenisZev/wildberries-bot/internal/domain/money"
)

// mapResolver costos fijos por artículo normalizado; cuenta las consultas.
type mapResolver struct {
	costs map[string]decimal.Decimal
	calls int
	err   error
}

func (r *mapResolver) Resolve(_ context.Context, sellerID int64, article string) (entity.ProductCostEntry, error) {
	r.calls++
	if r.err != nil {
		return entity.ProductCostEntry{}, r.err
	}
	e := entity.PlaceholderCost(sellerID, article)
	if c, ok := r.costs[e.Article]; ok {
		e.PurchaseCost = c
	}
	return e, nil
}

func sale(article string, qty int, forPay, commission, delivery float64) entity.SaleRecord {
	return entity.SaleRecord{
		Operation:  entity.OperationSale,
		SoldAt:     time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC),
		Article:    article,
		Quantity:   qty,
		ForPay:     forPay,
		Commission: commission,
		Delivery:   delivery,
	}
}

func input(sales ...entity.SaleRecord) report.Input {
	return report.Input{SellerID: 1, Period: report.Period{From: "2024-03-01", To: "2024-03-07"}, Sales: sales}
}

func TestAggregate_Escenario220(t *testing.T) {
	res := &mapResolver{costs: map[string]decimal.Decimal{"abc": decimal.RequireFromString("100.00")}}
	m, err := report.NewAggregator(res).Aggregate(context.Background(), input(sale("ABC", 2, 500, 50, 30)))
	require.NoError(t, err)

	assert.Equal(t, 1, m.TotalSales)
	assert.Equal(t, 2, m.ItemsSold)
	assert.Equal(t, money.Cents(50000), m.TotalRevenue)
	assert.Equal(t, money.Cents(20000), m.TotalCost)
	assert.Equal(t, money.Cents(22000), m.TotalProfit)
	assert.Equal(t, "220,00", m.TotalProfit.String())
	assert.Equal(t, money.Cents(50000), m.AvgSale)
	assert.Empty(t, m.MissingCost)
}

func TestAggregate_SinDatos(t *testing.T) {
	_, err := report.NewAggregator(&mapResolver{}).Aggregate(context.Background(), input())
	assert.ErrorIs(t, err, domain.ErrNoData)
}

func TestAggregate_SoloSaldos_NoEsSinDatos(t *testing.T) {
	in := input()
	in.Stock = []entity.StockRecord{{Article: "a", Quantity: 3}}
	m, err := report.NewAggregator(&mapResolver{}).Aggregate(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 0, m.TotalSales)
	assert.Equal(t, money.Cents(0), m.AvgSale)
}

func TestAggregate_SinVentasConcretadas_NoDivide(t *testing.T) {
	ret := sale("A", 1, 100, 5, 40)
	ret.Operation = entity.OperationReturn
	ret.ReturnAmount = 1

	m, err := report.NewAggregator(&mapResolver{}).Aggregate(context.Background(), input(ret))
	require.NoError(t, err)
	assert.Equal(t, 0, m.TotalSales)
	assert.Equal(t, money.Cents(0), m.AvgSale)
	assert.Equal(t, money.Cents(0), m.TotalRevenue)
	assert.Empty(t, m.TopProducts)
}

func TestAggregate_DevolucionesYEntregaSobreTodasLasLineas(t *testing.T) {
	logistics := entity.SaleRecord{Operation: entity.OperationLogistics, Article: "A", Delivery: 12.5}
	ret := entity.SaleRecord{Operation: entity.OperationReturn, Article: "A", ReturnAmount: 2, Commission: 99}
	res := &mapResolver{costs: map[string]decimal.Decimal{"a": decimal.NewFromInt(10)}}

	m, err := report.NewAggregator(res).Aggregate(context.Background(), input(sale("A", 1, 100, 10, 5), logistics, ret))
	require.NoError(t, err)
	assert.Equal(t, 2, m.TotalReturns)
	assert.Equal(t, money.Cents(1750), m.TotalDelivery)
	assert.Equal(t, money.Cents(1000), m.TotalCommission, "la comisión solo cuenta ventas concretadas")
	assert.Equal(t, money.Cents(10000-1000-1000-1750), m.TotalProfit)
}

func TestAggregate_CostoFaltante(t *testing.T) {
	res := &mapResolver{costs: map[string]decimal.Decimal{"b": decimal.NewFromInt(5)}}
	m, err := report.NewAggregator(res).Aggregate(context.Background(),
		input(sale("Z", 1, 10, 0, 0), sale("B", 1, 10, 0, 0), sale("A", 1, 10, 0, 0), sale("Z", 1, 10, 0, 0)))
	require.NoError(t, err)

	assert.Equal(t, []string{"Z", "A"}, m.MissingCost)
	assert.Equal(t, money.Cents(4000), m.TotalRevenue, "el ingreso sin costo también cuenta")
	assert.Equal(t, money.Cents(500), m.TotalCost)
}

func TestAggregate_ResuelveUnaVezPorArticulo(t *testing.T) {
	res := &mapResolver{}
	_, err := report.NewAggregator(res).Aggregate(context.Background(),
		input(sale("SKU", 1, 1, 0, 0), sale("sku ", 1, 1, 0, 0), sale("Other", 1, 1, 0, 0)))
	require.NoError(t, err)
	assert.Equal(t, 2, res.calls)
}

func TestAggregate_ErrorDelResolver(t *testing.T) {
	boom := errors.New("db caída")
	_, err := report.NewAggregator(&mapResolver{err: boom}).Aggregate(context.Background(), input(sale("A", 1, 1, 0, 0)))
	assert.ErrorIs(t, err, boom)
}

func TestAggregate_Top3EmpatesEnOrdenDeAparicion(t *testing.T) {
	sales := []entity.SaleRecord{
		sale("C", 1, 1, 0, 0), sale("A", 1, 1, 0, 0), sale("B", 1, 1, 0, 0),
		sale("D", 1, 1, 0, 0), sale("D", 1, 1, 0, 0), sale("A", 1, 1, 0, 0),
	}
	m, err := report.NewAggregator(&mapResolver{}).Aggregate(context.Background(), input(sales...))
	require.NoError(t, err)

	assert.Equal(t, []report.TopProduct{{Article: "A", Count: 2}, {Article: "D", Count: 2}, {Article: "C", Count: 1}}, m.TopProducts)
}

func TestAggregate_UtilidadNegativa(t *testing.T) {
	res := &mapResolver{costs: map[string]decimal.Decimal{"a": decimal.NewFromInt(300)}}
	m, err := report.NewAggregator(res).Aggregate(context.Background(), input(sale("A", 1, 100, 1.5, 0)))
	require.NoError(t, err)
	assert.Equal(t, "-201,50", m.TotalProfit.String())
}

// randomSales lote reproducible de líneas mezcladas.
func randomSales(f *gofakeit.Faker, n int) []entity.SaleRecord {
	ops := []string{"Продажа", "Продажа", "Продажа", "Возврат", "Логистика", "Корректировка"}
	articles := []string{"ABC-1", "abc-1", "XYZ", "Q-77", "", "Shirt"}
	out := make([]entity.SaleRecord, 0, n)
	for i := 0; i < n; i++ {
		op := f.RandomString(ops)
		art := f.RandomString(articles)
		qty := f.IntRange(-1, 5)
		forPay := f.Float64Range(0, 5000)
		commission := f.Float64Range(0, 500)
		delivery := f.Float64Range(0, 300)
		ret := f.IntRange(0, 2)
		date := f.DateRange(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)).Format(time.RFC3339)
		out = append(out, entity.NewSaleRecord(entity.RawSale{
			OperationName: &op,
			SaleDate:      &date,
			Article:       &art,
			Quantity:      &qty,
			ForPay:        &forPay,
			Commission:    &commission,
			Delivery:      &delivery,
			ReturnAmount:  &ret,
		}))
	}
	return out
}

func randomResolver() *mapResolver {
	return &mapResolver{costs: map[string]decimal.Decimal{
		"abc-1": decimal.RequireFromString("120.35"),
		"q-77":  decimal.RequireFromString("0.01"),
		"shirt": decimal.RequireFromString("999.99"),
	}}
}

func TestAggregate_Propiedades(t *testing.T) {
	for seed := uint64(1); seed <= 25; seed++ {
		f := gofakeit.New(seed)
		in := input(randomSales(f, f.IntRange(1, 60))...)
		res := randomResolver()
		agg := report.NewAggregator(res)

		m, err := agg.Aggregate(context.Background(), in)
		require.NoError(t, err)

		// Identidad de la utilidad.
		assert.Equal(t, m.TotalRevenue-m.TotalCost-m.TotalCommission-m.TotalDelivery, m.TotalProfit, "seed %d", seed)

		// Suma de costos y pertenencia al conjunto de faltantes.
		var cost money.Cents
		missing := map[string]bool{}
		for _, a := range m.MissingCost {
			missing[a] = true
		}
		for _, s := range m.CompletedSales() {
			unit := m.UnitCost(s.Article)
			cost += money.CostOf(unit, s.Quantity)
			assert.Equal(t, unit.IsZero(), missing[s.Article], "seed %d artículo %q", seed, s.Article)
		}
		assert.Equal(t, cost, m.TotalCost, "seed %d", seed)
		assert.Len(t, m.CompletedSales(), m.TotalSales)
		assert.LessOrEqual(t, len(m.TopProducts), 3)

		// Idempotencia: misma entrada, mismas métricas.
		again, err := agg.Aggregate(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, m, again, "seed %d", seed)
	}
}

func TestDailyProfits_AgrupaPorDia(t *testing.T) {
	res := &mapResolver{costs: map[string]decimal.Decimal{"a": decimal.NewFromInt(1)}}
	day1 := sale("A", 1, 10, 1, 1)
	day2 := sale("A", 2, 20, 0, 0)
	day2.SoldAt = day2.SoldAt.Add(24 * time.Hour)
	undated := sale("A", 1, 99, 0, 0)
	undated.SoldAt = time.Time{}

	m, err := report.NewAggregator(res).Aggregate(context.Background(), input(day2, undated, day1))
	require.NoError(t, err)

	days := m.DailyProfits()
	require.Len(t, days, 2)
	assert.True(t, days[0].Date.Before(days[1].Date))
	assert.Equal(t, money.Cents(1000-100-100-100), days[0].Profit())
	assert.Equal(t, money.Cents(2000-200), days[1].Profit())
}

func TestNewPeriod(t *testing.T) {
	p, err := report.NewPeriod("2024-01-01", "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", p.From)

	_, err = report.NewPeriod("2024-01-02", "2024-01-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = report.NewPeriod("01.01.2024", "2024-01-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
