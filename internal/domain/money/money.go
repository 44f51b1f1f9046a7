// Package money fija la política monetaria del dominio: decimales de punto
// fijo con 2 dígitos fraccionarios y redondeo half-up aplicado en los bordes
// de cálculo (subtotal, impuesto, total). Los pasos intermedios conservan la
// precisión completa de shopspring/decimal.
package money

import "github.com/shopspring/decimal"

// Scale dígitos fraccionarios de todo monto persistido o expuesto.
const Scale = 2

// Round aplica el redondeo del dominio (half-up, escala 2).
// decimal.Round redondea mitades alejándose de cero, que para los montos no
// negativos del dominio coincide con half-up.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Scale)
}

// ApplyRate multiplica base por una tasa (ej. impuesto 0.18) y redondea.
func ApplyRate(base, rate decimal.Decimal) decimal.Decimal {
	return Round(base.Mul(rate))
}

// ApplyPercent aplica un porcentaje 0..100 sobre base y redondea.
func ApplyPercent(base, pct decimal.Decimal) decimal.Decimal {
	return Round(base.Mul(pct).Div(decimal.NewFromInt(100)))
}
