package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo (SKU único por tenant).
// ControlStock en false exime al producto de la verificación de stock no
// negativo en el ledger (servicios, productos bajo pedido).
type Product struct {
	ID              string
	TenantID        string
	SKU             string
	Name            string
	Description     string
	Price           decimal.Decimal // precio de venta
	Cost            decimal.Decimal // costo de compra
	ControlStock    bool
	LiquidationPct  *decimal.Decimal // descuento de liquidación 0..100; nil = sin liquidación
	LiquidationFrom *time.Time
	LiquidationTo   *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// InLiquidation indica si la ventana de liquidación está activa en el instante dado.
func (p *Product) InLiquidation(at time.Time) bool {
	if p.LiquidationPct == nil || p.LiquidationFrom == nil || p.LiquidationTo == nil {
		return false
	}
	return !at.Before(*p.LiquidationFrom) && !at.After(*p.LiquidationTo)
}
