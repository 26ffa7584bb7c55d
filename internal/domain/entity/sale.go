package entity

import (
	"math"
	"strings"
	"time"
)

// OperationKind tipo de operación de una línea del reporte de realización.
// La agregación trabaja con estos valores; el texto original del marketplace
// solo se interpreta en ParseOperationKind.
type OperationKind string

const (
	OperationSale      OperationKind = "SALE"
	OperationReturn    OperationKind = "RETURN"
	OperationLogistics OperationKind = "LOGISTICS"
	OperationOther     OperationKind = "OTHER"
)

// ParseOperationKind traduce la etiqueta supplier_oper_name del marketplace.
func ParseOperationKind(tag string) OperationKind {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "продажа":
		return OperationSale
	case "возврат":
		return OperationReturn
	case "логистика", "логистика сторно":
		return OperationLogistics
	default:
		return OperationOther
	}
}

// SaleRecord línea normalizada del reporte de ventas. Todos los campos
// numéricos son cero cuando el origen no los trae o trae basura.
type SaleRecord struct {
	Operation    OperationKind
	SoldAt       time.Time // zero si la fecha no se pudo interpretar
	Article      string    // sa_name, tal como lo envía el marketplace
	Subject      string
	Quantity     int
	ForPay       float64 // monto a pagar al vendedor
	RetailPrice  float64
	Commission   float64
	Delivery     float64
	ReturnAmount int
	Office       string
}

// IsCompletedSale indica si la línea participa en ingresos y costos.
func (s SaleRecord) IsCompletedSale() bool { return s.Operation == OperationSale }

// RawSale campos opcionales tal como llegan del marketplace (nil = ausente o inválido).
type RawSale struct {
	OperationName *string
	SaleDate      *string
	Article       *string
	Subject       *string
	Quantity      *int
	ForPay        *float64
	RetailPrice   *float64
	Commission    *float64
	Delivery      *float64
	ReturnAmount  *int
	Office        *string
}

// NewSaleRecord normaliza una línea cruda aplicando los valores por defecto.
func NewSaleRecord(raw RawSale) SaleRecord {
	return SaleRecord{
		Operation:    ParseOperationKind(str(raw.OperationName)),
		SoldAt:       ParseTimestamp(str(raw.SaleDate)),
		Article:      str(raw.Article),
		Subject:      str(raw.Subject),
		Quantity:     nonNegative(count(raw.Quantity)),
		ForPay:       amount(raw.ForPay),
		RetailPrice:  amount(raw.RetailPrice),
		Commission:   amount(raw.Commission),
		Delivery:     amount(raw.Delivery),
		ReturnAmount: count(raw.ReturnAmount),
		Office:       str(raw.Office),
	}
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp interpreta las fechas del marketplace; devuelve zero si ninguna
// plantilla aplica.
func ParseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

// MaxAmount mayor monto (en unidades mayores) cuyo valor en kopeks cabe en int64.
const MaxAmount = 9e16

func count(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// amount descarta NaN, ±Inf y montos fuera de rango: quedan en 0 como
// cualquier otro campo inválido.
func amount(p *float64) float64 {
	if p == nil {
		return 0
	}
	v := *p
	if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) >= MaxAmount {
		return 0
	}
	return v
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
