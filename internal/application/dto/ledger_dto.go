package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustmentRequest ajuste manual de inventario.
type AdjustmentRequest struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"` // positivo entrada, negativo salida
	Reason      string          `json:"reason"`
}

// MovementResponse entrada del kardex para reportes de auditoría.
type MovementResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	WarehouseID  string          `json:"warehouse_id"`
	Type         string          `json:"type"`
	Quantity     decimal.Decimal `json:"quantity"`
	StockBefore  decimal.Decimal `json:"stock_before"`
	StockAfter   decimal.Decimal `json:"stock_after"`
	ReferenceDoc string          `json:"reference_doc,omitempty"`
	CreatedBy    string          `json:"created_by,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// StockResponse cantidad en mano de una llave (producto, almacén).
type StockResponse struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
}
