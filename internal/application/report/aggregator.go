package report

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/DenisZev/wildberries-bot/internal/domain"
	"github.com/DenisZev/wildberries-bot/internal/domain/entity"
	"github.com/DenisZev/wildberries-bot/internal/domain/money"
)

const topProductsLimit = 3

// CostResolver devuelve el costo declarado de un artículo o la entrada de
// reemplazo con costo 0. Solo falla si el almacenamiento falla.
type CostResolver interface {
	Resolve(ctx context.Context, sellerID int64, article string) (entity.ProductCostEntry, error)
}

// Input colecciones crudas de un período para un vendedor.
type Input struct {
	SellerID int64
	Period   Period
	Sales    []entity.SaleRecord
	Stock    []entity.StockRecord
	Transit  []entity.TransitRecord
}

// Aggregator calcula ReportMetrics a partir de las colecciones crudas.
// No guarda estado entre llamadas; cada invocación tiene sus propios acumuladores.
type Aggregator struct {
	resolver CostResolver
}

// NewAggregator construye el agregador.
func NewAggregator(resolver CostResolver) *Aggregator {
	return &Aggregator{resolver: resolver}
}

// Aggregate devuelve domain.ErrNoData si las tres colecciones están vacías.
//
// Todas las sumas usan solo las ventas concretadas, excepto devoluciones y
// entrega, que se suman sobre todas las líneas (los cargos de logística
// vienen en líneas que no son de venta).
func (a *Aggregator) Aggregate(ctx context.Context, in Input) (*ReportMetrics, error) {
	if len(in.Sales) == 0 && len(in.Stock) == 0 && len(in.Transit) == 0 {
		return nil, domain.ErrNoData
	}

	m := &ReportMetrics{
		SellerID:  in.SellerID,
		Period:    in.Period,
		Sales:     slices.Clone(in.Sales),
		Stock:     slices.Clone(in.Stock),
		Transit:   slices.Clone(in.Transit),
		unitCosts: make(map[string]decimal.Decimal),
	}

	missing := make(map[string]struct{})
	counts := make(map[string]int)
	var order []string

	for _, s := range m.Sales {
		m.TotalReturns += s.ReturnAmount
		m.TotalDelivery += money.FromMajor(s.Delivery)

		if !s.IsCompletedSale() {
			continue
		}
		m.TotalSales++
		m.TotalRevenue += money.FromMajor(s.ForPay)
		m.ItemsSold += s.Quantity
		m.TotalCommission += money.FromMajor(s.Commission)

		unitCost, err := a.unitCost(ctx, m, s.Article)
		if err != nil {
			return nil, err
		}
		m.TotalCost += money.CostOf(unitCost, s.Quantity)
		if unitCost.IsZero() {
			if _, seen := missing[s.Article]; !seen {
				missing[s.Article] = struct{}{}
				m.MissingCost = append(m.MissingCost, s.Article)
			}
		}

		if _, seen := counts[s.Article]; !seen {
			order = append(order, s.Article)
		}
		counts[s.Article]++
	}

	m.TotalProfit = m.TotalRevenue - m.TotalCost - m.TotalCommission - m.TotalDelivery
	m.AvgSale = m.TotalRevenue.Div(m.TotalSales)
	m.TopProducts = rankTop(order, counts, topProductsLimit)
	return m, nil
}

// unitCost resuelve una sola vez por artículo dentro de la agregación.
func (a *Aggregator) unitCost(ctx context.Context, m *ReportMetrics, article string) (decimal.Decimal, error) {
	key := entity.NormalizeArticle(article)
	if c, ok := m.unitCosts[key]; ok {
		return c, nil
	}
	entry, err := a.resolver.Resolve(ctx, m.SellerID, article)
	if err != nil {
		return decimal.Zero, fmt.Errorf("report: resolver costo de %q: %w", article, err)
	}
	m.unitCosts[key] = entry.PurchaseCost
	return entry.PurchaseCost, nil
}

// rankTop ordena por conteo descendente; los empates conservan el orden de aparición.
func rankTop(order []string, counts map[string]int, limit int) []TopProduct {
	ranked := make([]TopProduct, 0, len(order))
	for _, article := range order {
		ranked = append(ranked, TopProduct{Article: article, Count: counts[article]})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Count > ranked[j].Count })
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
