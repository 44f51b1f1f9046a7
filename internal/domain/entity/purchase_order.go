package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
// PENDIENTE → ENVIADA → CONFIRMADA → EN_RECEPCION → PARCIAL | COMPLETADA.
// CANCELADA es alcanzable desde cualquier estado no terminal.
type PurchaseOrderStatus string

const (
	OrderPendiente   PurchaseOrderStatus = "PENDIENTE"
	OrderEnviada     PurchaseOrderStatus = "ENVIADA"
	OrderConfirmada  PurchaseOrderStatus = "CONFIRMADA"
	OrderEnRecepcion PurchaseOrderStatus = "EN_RECEPCION"
	OrderParcial     PurchaseOrderStatus = "PARCIAL"
	OrderCompletada  PurchaseOrderStatus = "COMPLETADA"
	OrderCancelada   PurchaseOrderStatus = "CANCELADA"
)

// Terminal indica si el estado no admite más transiciones.
func (s PurchaseOrderStatus) Terminal() bool {
	return s == OrderCompletada || s == OrderCancelada
}

// Receivable indica si la orden puede recibir mercadería en este estado.
func (s PurchaseOrderStatus) Receivable() bool {
	switch s {
	case OrderConfirmada, OrderEnRecepcion, OrderParcial:
		return true
	}
	return false
}

// PurchaseOrder representa una orden de compra a un proveedor con destino a un
// almacén. Las cantidades recibidas avanzan por recepciones parciales.
type PurchaseOrder struct {
	ID          string
	TenantID    string
	Code        string
	SupplierID  string
	WarehouseID string // almacén destino
	Status      PurchaseOrderStatus
	Subtotal    decimal.Decimal
	Discount    decimal.Decimal
	Tax         decimal.Decimal
	Total       decimal.Decimal
	Notes       string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Lines []PurchaseOrderLine
}

// PurchaseOrderLine es un renglón de la orden; QuantityReceived nunca supera
// QuantityOrdered (el motor de recepción lo garantiza con OverReceipt).
type PurchaseOrderLine struct {
	ID               string
	OrderID          string
	ProductID        string
	QuantityOrdered  decimal.Decimal
	QuantityReceived decimal.Decimal
	UnitPrice        decimal.Decimal
	Discount         decimal.Decimal
	Subtotal         decimal.Decimal
}

// Pending devuelve la cantidad que falta recibir del renglón.
func (l PurchaseOrderLine) Pending() decimal.Decimal {
	return l.QuantityOrdered.Sub(l.QuantityReceived)
}

// FullyReceived indica si el renglón ya se cubrió por completo.
func (l PurchaseOrderLine) FullyReceived() bool {
	return l.QuantityReceived.GreaterThanOrEqual(l.QuantityOrdered)
}
