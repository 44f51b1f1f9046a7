package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StorefrontOrderLineRequest renglón del pedido; el precio sale del catálogo.
type StorefrontOrderLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// CreateStorefrontOrderRequest pedido de autoservicio del cliente final.
type CreateStorefrontOrderRequest struct {
	WarehouseID     string                       `json:"warehouse_id"`
	ShippingAddress string                       `json:"shipping_address"`
	Instructions    string                       `json:"instructions"`
	Lines           []StorefrontOrderLineRequest `json:"lines"`
}

// StorefrontOrderLineResponse proyección de renglón de pedido.
type StorefrontOrderLineResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// StorefrontOrderResponse proyección de pedido para el cliente.
type StorefrontOrderResponse struct {
	ID              string                        `json:"id"`
	Code            string                        `json:"code"`
	Status          string                        `json:"status"`
	Subtotal        decimal.Decimal               `json:"subtotal"`
	Tax             decimal.Decimal               `json:"tax"`
	Total           decimal.Decimal               `json:"total"`
	ShippingAddress string                        `json:"shipping_address,omitempty"`
	Instructions    string                        `json:"instructions,omitempty"`
	CreatedAt       time.Time                     `json:"created_at"`
	UpdatedAt       time.Time                     `json:"updated_at"`
	Lines           []StorefrontOrderLineResponse `json:"lines"`
}
