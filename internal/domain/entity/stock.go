package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa el stock actual de un producto en un almacén (agregado
// derivado). Invariante: Quantity es la suma corrida de los movimientos del
// ledger para esa llave; solo el ledger lo escribe.
type Stock struct {
	TenantID    string
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	UpdatedAt   time.Time
}
