// Package money contiene la aritmética monetaria en unidades menores (kopeks).
// Los totales se acumulan como enteros para evitar deriva de punto flotante.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Cents es un monto en unidades menores de la moneda (1/100).
type Cents int64

// FromMajor convierte un monto fraccional (rublos con kopeks) a Cents:
// multiplica por 100 y trunca hacia cero. Se pasa por decimal para que
// valores como 0.29 no se conviertan en 28 por representación binaria.
func FromMajor(v float64) Cents {
	return Cents(decimal.NewFromFloat(v).Shift(2).Truncate(0).IntPart())
}

// FromDecimal convierte un decimal en unidades mayores a Cents (trunca).
func FromDecimal(d decimal.Decimal) Cents {
	return Cents(d.Shift(2).Truncate(0).IntPart())
}

// CostOf devuelve el costo unitario × cantidad en Cents.
func CostOf(unitCost decimal.Decimal, quantity int) Cents {
	return FromDecimal(unitCost.Mul(decimal.NewFromInt(int64(quantity))))
}

// Major devuelve la parte entera (rublos), sin signo.
func (c Cents) Major() int64 { return abs(int64(c)) / 100 }

// Minor devuelve la parte fraccional (kopeks), sin signo.
func (c Cents) Minor() int64 { return abs(int64(c)) % 100 }

// Float64 devuelve el monto en unidades mayores (solo para gráficas).
func (c Cents) Float64() float64 { return float64(c) / 100 }

// Decimal devuelve el monto exacto en unidades mayores (respuestas JSON).
func (c Cents) Decimal() decimal.Decimal { return decimal.New(int64(c), -2) }

// Div divide entre n con división entera; 0 si n es 0.
func (c Cents) Div(n int) Cents {
	if n == 0 {
		return 0
	}
	return c / Cents(n)
}

// String formatea como "220,00"; los negativos llevan el signo delante ("-1,50").
func (c Cents) String() string {
	sign := ""
	if c < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s%d,%02d", sign, c.Major(), c.Minor())
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
