package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido de storefront. El cliente solo puede cancelarlo
// mientras el personal no empezó a prepararlo.
type StorefrontOrderStatus string

const (
	PedidoPendiente  StorefrontOrderStatus = "PENDIENTE"
	PedidoConfirmado StorefrontOrderStatus = "CONFIRMADO"
	PedidoProcesando StorefrontOrderStatus = "PROCESANDO"
	PedidoEnviado    StorefrontOrderStatus = "ENVIADO"
	PedidoEntregado  StorefrontOrderStatus = "ENTREGADO"
	PedidoCancelado  StorefrontOrderStatus = "CANCELADO"
)

// CancellableByCustomer indica si el cliente todavía puede cancelar el pedido.
func (s StorefrontOrderStatus) CancellableByCustomer() bool {
	return s == PedidoPendiente || s == PedidoConfirmado
}

// StorefrontOrder es un pedido de autoservicio del cliente final. Congela los
// precios del catálogo al crearse (liquidación incluida) y no toca stock: el
// despacho posterior del personal es el que mueve inventario.
type StorefrontOrder struct {
	ID              string
	TenantID        string
	Code            string
	CustomerID      string
	WarehouseID     string
	Status          StorefrontOrderStatus
	Subtotal        decimal.Decimal
	Tax             decimal.Decimal
	Total           decimal.Decimal
	ShippingAddress string
	Instructions    string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Lines []StorefrontOrderLine
}

// StorefrontOrderLine renglón del pedido con precio congelado.
type StorefrontOrderLine struct {
	ID          string
	OrderID     string
	ProductID   string
	ProductName string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}
