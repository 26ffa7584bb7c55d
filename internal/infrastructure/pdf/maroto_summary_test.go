package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/DenisZev/wildberries-bot/internal/application/report"
	"github.com/DenisZev/wildberries-bot/internal/domain/entity"
	"github.com/DenisZev/wildberries-bot/internal/i18n"
	"github.com/DenisZev/wildberries-bot/internal/infrastructure/pdf"
)

type costs map[string]decimal.Decimal

func (c costs) Resolve(_ context.Context, sellerID int64, article string) (entity.ProductCostEntry, error) {
	e := entity.PlaceholderCost(sellerID, article)
	e.PurchaseCost = c[article]
	return e, nil
}

func render(t *testing.T, sales []entity.SaleRecord) *report.Artifact {
	t.Helper()
	m, err := report.NewAggregator(costs{"ABC": decimal.NewFromInt(100)}).Aggregate(context.Background(), report.Input{
		SellerID: 42,
		Period:   report.Period{From: "2024-03-01", To: "2024-03-07"},
		Sales:    sales,
	})
	require.NoError(t, err)

	a, err := pdf.NewSummaryRenderer(i18n.NewPrinter(language.English)).Render(context.Background(), m)
	require.NoError(t, err)
	return a
}

func TestRender_PDF(t *testing.T) {
	a := render(t, []entity.SaleRecord{
		{Operation: entity.OperationSale, SoldAt: time.Now(), Article: "ABC", Quantity: 2, ForPay: 500, Commission: 50, Delivery: 30},
		{Operation: entity.OperationSale, SoldAt: time.Now(), Article: "NOCOST", Quantity: 1, ForPay: 90},
	})
	require.NotNil(t, a)

	assert.Equal(t, report.ArtifactPDF, a.Kind)
	assert.Equal(t, "application/pdf", a.ContentType)
	assert.Equal(t, "sales_summary_2024-03-01_2024-03-07.pdf", a.Name)
	assert.True(t, bytes.HasPrefix(a.Data, []byte("%PDF")))
}

func TestRender_SinVentas(t *testing.T) {
	a := render(t, []entity.SaleRecord{{Operation: entity.OperationLogistics, Delivery: 40}})
	assert.Nil(t, a)
}
