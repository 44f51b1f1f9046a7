package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest renglón de venta. UnitPrice nil = precio del catálogo.
type SaleLineRequest struct {
	ProductID string           `json:"product_id"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price"` // override, requiere permiso de descuento
	Discount  decimal.Decimal  `json:"discount"`   // descuento absoluto del renglón
}

// CreateSaleRequest crea una venta PENDIENTE_PAGO (no mueve stock).
type CreateSaleRequest struct {
	WarehouseID string            `json:"warehouse_id"`
	SessionID   *string           `json:"session_id"`
	CustomerID  *string           `json:"customer_id"`
	Lines       []SaleLineRequest `json:"lines"`
}

// PaymentRequest un pago parcial de la venta.
type PaymentRequest struct {
	Method    string          `json:"method"` // EFECTIVO, TARJETA, TRANSFERENCIA, YAPE, PLIN
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference"`
}

// CapturePaymentRequest captura de pagos divididos.
type CapturePaymentRequest struct {
	Payments       []PaymentRequest `json:"payments"`
	AmountReceived decimal.Decimal  `json:"amount_received"`
}

// SaleLineResponse renglón con precio congelado.
type SaleLineResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse proyección completa de la venta.
type SaleResponse struct {
	ID             string             `json:"id"`
	Code           string             `json:"code"`
	SessionID      *string            `json:"session_id,omitempty"`
	CustomerID     *string            `json:"customer_id,omitempty"`
	WarehouseID    string             `json:"warehouse_id"`
	Status         string             `json:"status"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	Discount       decimal.Decimal    `json:"discount"`
	Tax            decimal.Decimal    `json:"tax"`
	Total          decimal.Decimal    `json:"total"`
	AmountReceived decimal.Decimal    `json:"amount_received"`
	Change         decimal.Decimal    `json:"change"`
	Lines          []SaleLineResponse `json:"lines"`
	Payments       []PaymentRequest   `json:"payments,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
}
