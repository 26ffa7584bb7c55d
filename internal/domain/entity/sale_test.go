package entity_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DenisZev/wildberries-bot/internal/domain/entity"
)

func ptr[T any](v T) *T { return &v }

func TestNewSaleRecord_Defaults(t *testing.T) {
	s := entity.NewSaleRecord(entity.RawSale{})

	assert.Equal(t, entity.OperationOther, s.Operation)
	assert.True(t, s.SoldAt.IsZero())
	assert.Empty(t, s.Article)
	assert.Zero(t, s.Quantity)
	assert.Zero(t, s.ForPay)
	assert.Zero(t, s.ReturnAmount)
}

func TestNewSaleRecord_Normaliza(t *testing.T) {
	s := entity.NewSaleRecord(entity.RawSale{
		OperationName: ptr(" Продажа "),
		SaleDate:      ptr("2024-03-02T10:00:00"),
		Article:       ptr("  ABC "),
		Quantity:      ptr(-3),
		ForPay:        ptr(500.5),
		Delivery:      ptr(30.0),
		ReturnAmount:  ptr(1),
	})

	assert.Equal(t, entity.OperationSale, s.Operation)
	assert.Equal(t, 2024, s.SoldAt.Year())
	assert.Equal(t, "ABC", s.Article)
	assert.Zero(t, s.Quantity, "cantidad negativa queda en 0")
	assert.InDelta(t, 500.5, s.ForPay, 1e-9)
	assert.InDelta(t, 30, s.Delivery, 1e-9)
	assert.Equal(t, 1, s.ReturnAmount)
}

func TestNewSaleRecord_MontosNoFinitosOFueraDeRango(t *testing.T) {
	cases := map[string]float64{
		"NaN":      math.NaN(),
		"+Inf":     math.Inf(1),
		"-Inf":     math.Inf(-1),
		"enorme":   1e300,
		"límite":   entity.MaxAmount,
		"negativo": -entity.MaxAmount,
	}
	for name, v := range cases {
		t.Run(name, func(t *testing.T) {
			s := entity.NewSaleRecord(entity.RawSale{
				ForPay:      ptr(v),
				RetailPrice: ptr(v),
				Commission:  ptr(v),
				Delivery:    ptr(v),
			})
			assert.Zero(t, s.ForPay)
			assert.Zero(t, s.RetailPrice)
			assert.Zero(t, s.Commission)
			assert.Zero(t, s.Delivery)
		})
	}

	ok := entity.NewSaleRecord(entity.RawSale{ForPay: ptr(-1250.75)})
	assert.InDelta(t, -1250.75, ok.ForPay, 1e-9, "los montos negativos válidos se conservan")
}

func TestParseOperationKind(t *testing.T) {
	assert.Equal(t, entity.OperationSale, entity.ParseOperationKind("продажа"))
	assert.Equal(t, entity.OperationReturn, entity.ParseOperationKind("Возврат"))
	assert.Equal(t, entity.OperationLogistics, entity.ParseOperationKind("Логистика сторно"))
	assert.Equal(t, entity.OperationOther, entity.ParseOperationKind("Штраф"))
}

func TestNewStockRecord(t *testing.T) {
	s := entity.NewStockRecord(entity.RawStock{Article: ptr("A"), Quantity: ptr(-1)})
	assert.Equal(t, "A", s.Article)
	assert.Zero(t, s.Quantity)
	assert.Empty(t, s.Warehouse)
}
