package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var russian = map[Key]string{
	ReportTitle:       "Отчёт по продажам:",
	ReportTotalSales:  "Всего продаж: %d",
	ReportRevenue:     "Общая выручка: %s руб.",
	ReportAvgSale:     "Средняя выручка на продажу: %s руб.",
	ReportItemsSold:   "Продано единиц: %d",
	ReportReturns:     "Возвраты: %d шт.",
	ReportCost:        "Затраты на товары: %s руб.",
	ReportCommission:  "Комиссия WB: %s руб.",
	ReportDelivery:    "Затраты на доставку: %s руб.",
	ReportProfit:      "Чистая прибыль: %s руб.",
	ReportTopTitle:    "Топ-3 продаваемых товара:",
	ReportTopLine:     "- %s: %d шт.",
	ReportMissingCost: "⚠️ Товары без закупочной стоимости: %s. Укажите через /add_product.",
	ReportNoSales:     "Нет данных по продажам за указанный период.",
	ReportNoData:      "Не удалось сгенерировать отчёт из-за отсутствия данных.",
	ReportFailed:      "Не удалось сформировать: %s",
	Unknown:           "Неизвестно",

	SheetDetail:    "Детализация",
	SheetSummary:   "Итоги",
	SheetStock:     "Остатки",
	SheetInTransit: "В пути",

	ColSaleDate:      "Дата продажи",
	ColSellerArticle: "Артикул продавца",
	ColProductName:   "Название товара",
	ColQuantity:      "Количество",
	ColForPay:        "Сумма к выплате (руб.)",
	ColRetailPrice:   "Розничная цена (руб.)",
	ColCommission:    "Комиссия WB (руб.)",
	ColPurchaseCost:  "Закупочная стоимость (руб.)",
	ColWarehouse:     "Склад",
	ColMetric:        "Метрика",
	ColValue:         "Значение",
	ColArticle:       "Артикул",
	ColName:          "Название",
	ColOrderID:       "ID заказа",
	ColCreated:       "Создано",

	MetricTotalSales:  "Всего продаж",
	MetricRevenue:     "Общая выручка (руб.)",
	MetricAvgSale:     "Средняя выручка на продажу (руб.)",
	MetricItemsSold:   "Продано единиц",
	MetricReturns:     "Возвраты (шт.)",
	MetricCost:        "Затраты на товары (руб.)",
	MetricDelivery:    "Затраты на доставку (руб.)",
	MetricProfit:      "Чистая прибыль (руб.)",
	MetricTopProducts: "Топ-3 товара",

	ChartTitle:  "Динамика прибыли (%s - %s)",
	ChartXLabel: "Дата",
	ChartYLabel: "Прибыль (руб.)",

	OrderNew:          "Новый заказ!",
	OrderArticle:      "Артикул: %s",
	OrderName:         "Название: %s",
	OrderSize:         "Размер: %s",
	OrderBarcode:      "Баркод: %s",
	OrderPrice:        "Цена: %s руб.",
	OrderPhoto:        "Фото: %s",
	OrderNotSpecified: "Не указано",
	OrderNoPhoto:      "Фото отсутствует.",
	OrdersNone:        "Нет новых заказов.",
	OrdersHeader:      "Вот ваши новые заказы:",
	OrdersItemID:      "Заказ ID: %s",
	OrdersItemSKUs:    "SKU: %s",
	OrderID:           "ID: %s",
	WeeklyHeader:      "Еженедельный отчёт по продажам (%s - %s):",
	WeeklyNoData:      "Еженедельный отчёт (%s - %s): Не удалось сгенерировать из-за отсутствия данных.",

	ArtifactSpreadsheetName: "Excel-отчёт",
	ArtifactChartName:       "график прибыли",
	ArtifactPDFName:         "PDF-сводка",
}

func init() {
	for key, msg := range russian {
		if err := message.SetString(language.Russian, string(key), msg); err != nil {
			panic("i18n: registrar mensaje ruso: " + err.Error())
		}
	}
}
