package wildberries

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/DenisZev/wildberries-bot/internal/application/report"
	"github.com/DenisZev/wildberries-bot/internal/domain/entity"
	"github.com/DenisZev/wildberries-bot/internal/domain/money"
)

var _ report.MarketplaceSource = (*Client)(nil)

const (
	salesReportLimit = 100000
	transitLimit     = 1000
	cardsPageLimit   = 100
)

type saleDTO struct {
	OperName     flexString `json:"supplier_oper_name"`
	SaleDate     flexString `json:"sale_dt"`
	Article      flexString `json:"sa_name"`
	Subject      flexString `json:"subject_name"`
	Quantity     flexInt    `json:"quantity"`
	ForPay       flexFloat  `json:"ppvz_for_pay"`
	RetailPrice  flexFloat  `json:"retail_price_withdisc_rub"`
	Commission   flexFloat  `json:"ppvz_sales_commission"`
	Delivery     flexFloat  `json:"delivery_rub"`
	ReturnAmount flexInt    `json:"return_amount"`
	Office       flexString `json:"office_name"`
}

func (d saleDTO) toEntity() entity.SaleRecord {
	return entity.NewSaleRecord(entity.RawSale{
		OperationName: d.OperName.ptr(),
		SaleDate:      d.SaleDate.ptr(),
		Article:       d.Article.ptr(),
		Subject:       d.Subject.ptr(),
		Quantity:      d.Quantity.ptr(),
		ForPay:        d.ForPay.ptr(),
		RetailPrice:   d.RetailPrice.ptr(),
		Commission:    d.Commission.ptr(),
		Delivery:      d.Delivery.ptr(),
		ReturnAmount:  d.ReturnAmount.ptr(),
		Office:        d.Office.ptr(),
	})
}

// SalesReport reporte de realización detallado del período.
func (c *Client) SalesReport(ctx context.Context, token, dateFrom, dateTo string) ([]entity.SaleRecord, error) {
	q := url.Values{}
	q.Set("dateFrom", dateFrom)
	q.Set("dateTo", dateTo)
	q.Set("limit", strconv.Itoa(salesReportLimit))

	var rows []saleDTO
	if err := c.do(ctx, http.MethodGet, c.cfg.StatisticsURL, "/api/v5/supplier/reportDetailByPeriod", token, q, nil, &rows); err != nil {
		return nil, err
	}
	out := make([]entity.SaleRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toEntity())
	}
	return out, nil
}

type stockDTO struct {
	Article   flexString `json:"supplierArticle"`
	Subject   flexString `json:"subject"`
	Quantity  flexInt    `json:"quantity"`
	Warehouse flexString `json:"warehouseName"`
}

// Stocks saldos por bodega cambiados desde dateFrom.
func (c *Client) Stocks(ctx context.Context, token, dateFrom string) ([]entity.StockRecord, error) {
	q := url.Values{}
	q.Set("dateFrom", dateFrom)

	var rows []stockDTO
	if err := c.do(ctx, http.MethodGet, c.cfg.StatisticsURL, "/api/v1/supplier/stocks", token, q, nil, &rows); err != nil {
		return nil, err
	}
	out := make([]entity.StockRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, entity.NewStockRecord(entity.RawStock{
			Article:   r.Article.ptr(),
			Subject:   r.Subject.ptr(),
			Quantity:  r.Quantity.ptr(),
			Warehouse: r.Warehouse.ptr(),
		}))
	}
	return out, nil
}

type orderDTO struct {
	ID        flexString `json:"id"`
	Article   flexString `json:"article"`
	NmID      flexInt    `json:"nmId"`
	ChrtID    flexInt    `json:"chrtId"`
	SalePrice flexInt    `json:"salePrice"`
	Converted flexInt    `json:"convertedPrice"`
	SKUs      []string   `json:"skus"`
	CreatedAt flexString `json:"createdAt"`
	Offices   []string   `json:"offices"`
}

type ordersEnvelope struct {
	Orders []orderDTO `json:"orders"`
	Next   int64      `json:"next"`
}

// OrdersInTransit órdenes de ensamble (primera página, hasta 1000).
func (c *Client) OrdersInTransit(ctx context.Context, token string) ([]entity.TransitRecord, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(transitLimit))
	q.Set("next", "0")

	var env ordersEnvelope
	if err := c.do(ctx, http.MethodGet, c.cfg.MarketplaceURL, "/api/v3/orders", token, q, nil, &env); err != nil {
		return nil, err
	}
	out := make([]entity.TransitRecord, 0, len(env.Orders))
	for _, o := range env.Orders {
		out = append(out, entity.NewTransitRecord(o.ID.String(), o.Article.String(), o.CreatedAt.String(), o.Offices))
	}
	return out, nil
}

// NewOrders órdenes de ensamble nuevas. El precio llega en kopeks.
func (c *Client) NewOrders(ctx context.Context, token string) ([]entity.NewOrder, error) {
	var env ordersEnvelope
	if err := c.do(ctx, http.MethodGet, c.cfg.MarketplaceURL, "/api/v3/orders/new", token, nil, nil, &env); err != nil {
		return nil, err
	}
	out := make([]entity.NewOrder, 0, len(env.Orders))
	for _, o := range env.Orders {
		price, ok := o.SalePrice.int64()
		if !ok {
			price, _ = o.Converted.int64()
		}
		nmID, _ := o.NmID.int64()
		chrtID, _ := o.ChrtID.int64()
		out = append(out, entity.NewOrder{
			ID:        o.ID.String(),
			Article:   o.Article.String(),
			NmID:      nmID,
			ChrtID:    chrtID,
			SKUs:      o.SKUs,
			SalePrice: money.Cents(price),
			CreatedAt: o.CreatedAt.String(),
		})
	}
	return out, nil
}
