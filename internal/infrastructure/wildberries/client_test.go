package wildberries_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DenisZev/wildberries-bot/internal/application/report"
	"github.com/DenisZev/wildberries-bot/internal/domain"
	"github.com/DenisZev/wildberries-bot/internal/domain/entity"
	"github.com/DenisZev/wildberries-bot/internal/domain/money"
	"github.com/DenisZev/wildberries-bot/internal/infrastructure/wildberries"
	"github.com/DenisZev/wildberries-bot/pkg/logger"
)

func newClient(t *testing.T, h http.HandlerFunc) *wildberries.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return wildberries.NewClient(wildberries.Config{
		StatisticsURL:  srv.URL,
		MarketplaceURL: srv.URL,
		ContentURL:     srv.URL,
		Timeout:        5 * time.Second,
	}, logger.Nop())
}

func TestSalesReport_ValoresTolerantes(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v5/supplier/reportDetailByPeriod", r.URL.Path)
		assert.Equal(t, "2024-03-01", r.URL.Query().Get("dateFrom"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[
			{"supplier_oper_name":"Продажа","sale_dt":"2024-03-02T10:00:00","sa_name":"ABC","quantity":"2",
			 "ppvz_for_pay":"500,5","ppvz_sales_commission":50,"delivery_rub":null,"office_name":"Коледино"},
			{"supplier_oper_name":"Логистика","sa_name":123,"quantity":{"x":1},"delivery_rub":30},
			{"supplier_oper_name":"Продажа","sa_name":"NAN","quantity":1e300,"ppvz_for_pay":"NaN",
			 "retail_price_withdisc_rub":"Inf","ppvz_sales_commission":"-Infinity","delivery_rub":1e300,"return_amount":"NaN"}
		]`))
	})

	got, err := c.SalesReport(context.Background(), "tok", "2024-03-01", "2024-03-07")
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, entity.OperationSale, got[0].Operation)
	assert.Equal(t, "ABC", got[0].Article)
	assert.Equal(t, 2, got[0].Quantity)
	assert.InDelta(t, 500.5, got[0].ForPay, 1e-9)
	assert.Zero(t, got[0].Delivery)
	assert.Equal(t, 2024, got[0].SoldAt.Year())

	assert.Equal(t, entity.OperationLogistics, got[1].Operation)
	assert.Equal(t, "123", got[1].Article)
	assert.Zero(t, got[1].Quantity)
	assert.InDelta(t, 30, got[1].Delivery, 1e-9)

	bad := got[2]
	assert.Equal(t, entity.OperationSale, bad.Operation)
	assert.Zero(t, bad.Quantity)
	assert.Zero(t, bad.ForPay)
	assert.Zero(t, bad.RetailPrice)
	assert.Zero(t, bad.Commission)
	assert.Zero(t, bad.Delivery)
	assert.Zero(t, bad.ReturnAmount)

	m, err := report.NewAggregator(zeroCost{}).Aggregate(context.Background(), report.Input{Sales: got})
	require.NoError(t, err)
	assert.Equal(t, 2, m.TotalSales)
	assert.Equal(t, money.FromMajor(500.5), m.TotalRevenue)
}

type zeroCost struct{}

func (zeroCost) Resolve(_ context.Context, sellerID int64, article string) (entity.ProductCostEntry, error) {
	return entity.PlaceholderCost(sellerID, article), nil
}

func TestSalesReport_CuerpoNull(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("null"))
	})
	got, err := c.SalesReport(context.Background(), "tok", "2024-03-01", "2024-03-07")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTokenRechazado(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})
	_, err := c.Stocks(context.Background(), "bad", "2024-03-01")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	var se *wildberries.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnauthorized, se.Status)
}

func TestErrorDelServidor_NoEsToken(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	_, err := c.OrdersInTransit(context.Background(), "tok")
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestNewOrders_PrecioEnKopeks(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/orders/new", r.URL.Path)
		_, _ = w.Write([]byte(`{"orders":[
			{"id":9001,"article":"ABC","nmId":555,"salePrice":129900,"skus":["2000000000017"],"createdAt":"2024-03-02T10:00:00Z"},
			{"id":"9002","article":"XYZ","convertedPrice":5050},
			{"id":"9003","nmId":"NaN","salePrice":1e30}
		]}`))
	})

	got, err := c.NewOrders(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "9001", got[0].ID)
	assert.Equal(t, int64(555), got[0].NmID)
	assert.Equal(t, money.Cents(129900), got[0].SalePrice)
	assert.Equal(t, "1299,00", got[0].SalePrice.String())
	assert.Equal(t, []string{"2000000000017"}, got[0].SKUs)

	assert.Equal(t, "9002", got[1].ID)
	assert.Equal(t, money.Cents(5050), got[1].SalePrice)

	assert.Zero(t, got[2].NmID)
	assert.Zero(t, got[2].SalePrice)
}

func TestOrdersInTransit_PrimeraOficina(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1000", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"orders":[{"id":1,"article":"ABC","createdAt":"2024-03-02T10:00:00Z","offices":["Казань","Москва"]}],"next":0}`))
	})

	got, err := c.OrdersInTransit(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].OrderID)
	assert.Equal(t, "Казань", got[0].Office)
}

func TestCards_Paginacion(t *testing.T) {
	var calls atomic.Int32
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body struct {
			Settings struct {
				Cursor struct {
					Limit int   `json:"limit"`
					NmID  int64 `json:"nmID"`
				} `json:"cursor"`
			} `json:"settings"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		type card struct {
			NmID       int64  `json:"nmID"`
			VendorCode string `json:"vendorCode"`
		}
		resp := struct {
			Cards  []card `json:"cards"`
			Cursor struct {
				UpdatedAt string `json:"updatedAt"`
				NmID      int64  `json:"nmID"`
			} `json:"cursor"`
		}{}

		if calls.Add(1) == 1 {
			assert.Zero(t, body.Settings.Cursor.NmID)
			for i := 0; i < body.Settings.Cursor.Limit; i++ {
				resp.Cards = append(resp.Cards, card{NmID: int64(i + 1), VendorCode: "A"})
			}
			resp.Cursor.NmID = int64(body.Settings.Cursor.Limit)
			resp.Cursor.UpdatedAt = "2024-03-01T00:00:00Z"
		} else {
			assert.Equal(t, int64(100), body.Settings.Cursor.NmID)
			resp.Cards = []card{{NmID: 101, VendorCode: "B"}}
		}
		_ = json.NewEncoder(w).Encode(resp)
	})

	got, err := c.Cards(context.Background(), "tok")
	require.NoError(t, err)
	assert.Len(t, got, 101)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, "B", got[100].VendorCode)
}

func TestCardByArticle(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"cards":[{"nmID":1,"vendorCode":"abc-1"},{"nmID":2,"vendorCode":"ABC"}]}`))
	})

	card, err := c.CardByArticle(context.Background(), "tok", "abc")
	require.NoError(t, err)
	require.NotNil(t, card)
	assert.Equal(t, int64(2), card.NmID)

	none, err := c.CardByArticle(context.Background(), "tok", "zzz")
	require.NoError(t, err)
	assert.Nil(t, none)
}
