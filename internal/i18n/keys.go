package i18n

// ── Reporte de texto ──────────────────────────────────────────────────────────

const (
	ReportTitle       Key = "Sales report:"
	ReportTotalSales  Key = "Total sales: %d"
	ReportRevenue     Key = "Total revenue: %s RUB"
	ReportAvgSale     Key = "Average revenue per sale: %s RUB"
	ReportItemsSold   Key = "Units sold: %d"
	ReportReturns     Key = "Returns: %d pcs"
	ReportCost        Key = "Cost of goods: %s RUB"
	ReportCommission  Key = "WB commission: %s RUB"
	ReportDelivery    Key = "Delivery costs: %s RUB"
	ReportProfit      Key = "Net profit: %s RUB"
	ReportTopTitle    Key = "Top 3 best-selling products:"
	ReportTopLine     Key = "- %s: %d pcs"
	ReportMissingCost Key = "⚠️ Products without purchase cost: %s. Set them via /add_product."
	ReportNoSales     Key = "No sales data for the selected period."
	ReportNoData      Key = "Could not generate the report: no data for the period."
	ReportFailed      Key = "Could not generate: %s"
	Unknown           Key = "unknown"
)

// ── Hojas del libro ──────────────────────────────────────────────────────────

const (
	SheetDetail    Key = "Detail"
	SheetSummary   Key = "Summary"
	SheetStock     Key = "Stock"
	SheetInTransit Key = "In transit"

	ColSaleDate      Key = "Sale date"
	ColSellerArticle Key = "Seller article"
	ColProductName   Key = "Product name"
	ColQuantity      Key = "Quantity"
	ColForPay        Key = "Payable amount (RUB)"
	ColRetailPrice   Key = "Retail price (RUB)"
	ColCommission    Key = "WB commission (RUB)"
	ColPurchaseCost  Key = "Purchase cost (RUB)"
	ColWarehouse     Key = "Warehouse"
	ColMetric        Key = "Metric"
	ColValue         Key = "Value"
	ColArticle       Key = "Article"
	ColName          Key = "Name"
	ColOrderID       Key = "Order ID"
	ColCreated       Key = "Created"

	MetricTotalSales  Key = "Total sales"
	MetricRevenue     Key = "Total revenue (RUB)"
	MetricAvgSale     Key = "Average revenue per sale (RUB)"
	MetricItemsSold   Key = "Units sold"
	MetricReturns     Key = "Returns (pcs)"
	MetricCost        Key = "Cost of goods (RUB)"
	MetricDelivery    Key = "Delivery costs (RUB)"
	MetricProfit      Key = "Net profit (RUB)"
	MetricTopProducts Key = "Top 3 products"
)

// ── Gráfica ──────────────────────────────────────────────────────────────────

const (
	ChartTitle  Key = "Profit dynamics (%s - %s)"
	ChartXLabel Key = "Date"
	ChartYLabel Key = "Profit (RUB)"
)

// ── Órdenes y avisos ─────────────────────────────────────────────────────────

const (
	OrderNew          Key = "New order!"
	OrderID           Key = "ID: %s"
	OrderArticle      Key = "Article: %s"
	OrderName         Key = "Name: %s"
	OrderSize         Key = "Size: %s"
	OrderBarcode      Key = "Barcode: %s"
	OrderPrice        Key = "Price: %s RUB"
	OrderPhoto        Key = "Photo: %s"
	OrderNotSpecified Key = "Not specified"
	OrderNoPhoto      Key = "No photo."
	OrdersNone        Key = "No new orders."
	OrdersHeader      Key = "Here are your new orders:"
	OrdersItemID      Key = "Order ID: %s"
	OrdersItemSKUs    Key = "SKUs: %s"
	WeeklyHeader      Key = "Weekly sales report (%s - %s):"
	WeeklyNoData      Key = "Weekly report (%s - %s): could not be generated because there is no data."
)

// Nombres de los artefactos en los avisos.
const (
	ArtifactSpreadsheetName Key = "Excel report"
	ArtifactChartName       Key = "profit chart"
	ArtifactPDFName         Key = "PDF summary"
)
