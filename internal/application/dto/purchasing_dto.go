package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineRequest renglón de orden de compra.
type OrderLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
}

// CreateOrderRequest crea una orden PENDIENTE.
type CreateOrderRequest struct {
	SupplierID  string             `json:"supplier_id"`
	WarehouseID string             `json:"warehouse_id"` // almacén destino
	Notes       string             `json:"notes"`
	Lines       []OrderLineRequest `json:"lines"`
}

// ReceiptLineRequest cantidades aceptadas/rechazadas de un renglón de la orden.
type ReceiptLineRequest struct {
	OrderLineID      string          `json:"order_line_id"`
	QuantityAccepted decimal.Decimal `json:"quantity_accepted"`
	QuantityRejected decimal.Decimal `json:"quantity_rejected"`
	RejectReason     string          `json:"reject_reason"`
}

// ReceiveRequest registra una recepción (posiblemente parcial).
type ReceiveRequest struct {
	Notes string               `json:"notes"`
	Lines []ReceiptLineRequest `json:"lines"`
}

// OrderLineResponse renglón con avance de recepción.
type OrderLineResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	QuantityOrdered  decimal.Decimal `json:"quantity_ordered"`
	QuantityReceived decimal.Decimal `json:"quantity_received"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	Discount         decimal.Decimal `json:"discount"`
	Subtotal         decimal.Decimal `json:"subtotal"`
}

// OrderResponse proyección de la orden.
type OrderResponse struct {
	ID          string              `json:"id"`
	Code        string              `json:"code"`
	SupplierID  string              `json:"supplier_id"`
	WarehouseID string              `json:"warehouse_id"`
	Status      string              `json:"status"`
	Subtotal    decimal.Decimal     `json:"subtotal"`
	Discount    decimal.Decimal     `json:"discount"`
	Tax         decimal.Decimal     `json:"tax"`
	Total       decimal.Decimal     `json:"total"`
	Lines       []OrderLineResponse `json:"lines"`
	CreatedAt   time.Time           `json:"created_at"`
}

// ReceiptResponse proyección de una recepción registrada.
type ReceiptResponse struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	Complete  bool      `json:"complete"`
	CreatedAt time.Time `json:"created_at"`
}
