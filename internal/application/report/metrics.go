package report

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/DenisZev/wildberries-bot/internal/domain"
	"github.com/DenisZev/wildberries-bot/internal/domain/entity"
	"github.com/DenisZev/wildberries-bot/internal/domain/money"
)

const dateLayout = "2006-01-02"

// Period rango del reporte en formato YYYY-MM-DD. Solo rotula la salida:
// los datos llegan ya acotados por quien los descargó.
type Period struct {
	From string
	To   string
}

// NewPeriod valida ambas fechas y que From no sea posterior a To.
func NewPeriod(from, to string) (Period, error) {
	f, err := time.Parse(dateLayout, from)
	if err != nil {
		return Period{}, fmt.Errorf("%w: date_from inválido: %q", domain.ErrInvalidInput, from)
	}
	t, err := time.Parse(dateLayout, to)
	if err != nil {
		return Period{}, fmt.Errorf("%w: date_to inválido: %q", domain.ErrInvalidInput, to)
	}
	if f.After(t) {
		return Period{}, fmt.Errorf("%w: date_from no puede ser posterior a date_to", domain.ErrInvalidInput)
	}
	return Period{From: from, To: to}, nil
}

// Bounds devuelve el inicio de From y el inicio de To (UTC). Las fechas ya
// vienen validadas; si no lo estuvieran se devuelven tiempos zero.
func (p Period) Bounds() (time.Time, time.Time) {
	f, _ := time.Parse(dateLayout, p.From)
	t, _ := time.Parse(dateLayout, p.To)
	return f, t
}

// TopProduct artículo con su número de líneas de venta.
type TopProduct struct {
	Article string
	Count   int
}

// ReportMetrics resultado inmutable de una agregación. Se construye una vez
// por solicitud y no se guarda entre llamadas.
type ReportMetrics struct {
	SellerID int64
	Period   Period

	TotalSales      int
	TotalRevenue    money.Cents
	ItemsSold       int
	TotalReturns    int
	TotalCommission money.Cents
	TotalDelivery   money.Cents
	TotalCost       money.Cents
	TotalProfit     money.Cents
	AvgSale         money.Cents

	// MissingCost artículos vendidos sin costo declarado, en orden de aparición.
	MissingCost []string
	TopProducts []TopProduct

	// Colecciones crudas para que los renderizadores regeneren el detalle.
	Sales   []entity.SaleRecord
	Stock   []entity.StockRecord
	Transit []entity.TransitRecord

	unitCosts map[string]decimal.Decimal
}

// UnitCost costo unitario resuelto durante la agregación (0 si el artículo no se vendió).
func (m *ReportMetrics) UnitCost(article string) decimal.Decimal {
	if c, ok := m.unitCosts[entity.NormalizeArticle(article)]; ok {
		return c
	}
	return decimal.Zero
}

// CompletedSales devuelve solo las líneas de venta concretada.
func (m *ReportMetrics) CompletedSales() []entity.SaleRecord {
	out := make([]entity.SaleRecord, 0, m.TotalSales)
	for _, s := range m.Sales {
		if s.IsCompletedSale() {
			out = append(out, s)
		}
	}
	return out
}

// DailyProfit fila diaria de la gráfica de utilidad.
type DailyProfit struct {
	Date       time.Time
	Revenue    money.Cents
	Cost       money.Cents
	Commission money.Cents
	Delivery   money.Cents
}

// Profit utilidad del día.
func (d DailyProfit) Profit() money.Cents {
	return d.Revenue - d.Cost - d.Commission - d.Delivery
}

// DailyProfits agrupa las ventas concretadas por día calendario, en orden
// cronológico. Las líneas sin fecha válida se ignoran.
func (m *ReportMetrics) DailyProfits() []DailyProfit {
	byDay := make(map[time.Time]*DailyProfit)
	var days []time.Time
	for _, s := range m.Sales {
		if !s.IsCompletedSale() || s.SoldAt.IsZero() {
			continue
		}
		day := time.Date(s.SoldAt.Year(), s.SoldAt.Month(), s.SoldAt.Day(), 0, 0, 0, 0, time.UTC)
		d, ok := byDay[day]
		if !ok {
			d = &DailyProfit{Date: day}
			byDay[day] = d
			days = append(days, day)
		}
		d.Revenue += money.FromMajor(s.ForPay)
		d.Cost += money.CostOf(m.UnitCost(s.Article), s.Quantity)
		d.Commission += money.FromMajor(s.Commission)
		d.Delivery += money.FromMajor(s.Delivery)
	}
	slices.SortFunc(days, time.Time.Compare)
	out := make([]DailyProfit, 0, len(days))
	for _, day := range days {
		out = append(out, *byDay[day])
	}
	return out
}
