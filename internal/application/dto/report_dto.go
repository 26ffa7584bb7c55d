package dto

import "github.com/shopspring/decimal"

// SalesReportResponse resumen del reporte de ventas de un período.
type SalesReportResponse struct {
	RunID     string            `json:"run_id"`
	DateFrom  string            `json:"date_from"`
	DateTo    string            `json:"date_to"`
	Text      string            `json:"text"`
	Metrics   ReportMetricsDTO  `json:"metrics"`
	Artifacts []ArtifactDTO     `json:"artifacts"`
	Failures  []ArtifactFailDTO `json:"failures,omitempty"`
}

// ReportMetricsDTO totales en unidades mayores con dos decimales exactos.
type ReportMetricsDTO struct {
	TotalSales      int             `json:"total_sales"`
	ItemsSold       int             `json:"items_sold"`
	TotalReturns    int             `json:"total_returns"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	TotalCommission decimal.Decimal `json:"total_commission"`
	TotalDelivery   decimal.Decimal `json:"total_delivery"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	TotalProfit     decimal.Decimal `json:"total_profit"`
	AvgSale         decimal.Decimal `json:"avg_sale"`
	MissingCost     []string        `json:"missing_cost"`
	TopProducts     []TopProductDTO `json:"top_products"`
}

// TopProductDTO artículo más vendido.
type TopProductDTO struct {
	Article string `json:"article"`
	Count   int    `json:"count"`
}

// ArtifactDTO archivo generado; Location es ruta local o URL según el almacenamiento.
type ArtifactDTO struct {
	Kind        string `json:"kind"`
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
	Location    string `json:"location,omitempty"`
}

// ArtifactFailDTO artefacto que no se pudo generar.
type ArtifactFailDTO struct {
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

// NewOrdersResponse órdenes nuevas y su mensaje listo para enviar.
type NewOrdersResponse struct {
	Count   int           `json:"count"`
	Message string        `json:"message"`
	Orders  []NewOrderDTO `json:"orders"`
}

// NewOrderDTO orden de ensamble nueva.
type NewOrderDTO struct {
	ID        string          `json:"id"`
	Article   string          `json:"article"`
	NmID      int64           `json:"nm_id"`
	SKUs      []string        `json:"skus"`
	SalePrice decimal.Decimal `json:"sale_price"`
	CreatedAt string          `json:"created_at"`
}
