package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del ledger (enumeración cerrada; toda transición hace
// match exhaustivo sobre estos valores).
type MovementType string

const (
	MovementSaleOut     MovementType = "VENTA_SALIDA"
	MovementPurchaseIn  MovementType = "COMPRA_ENTRADA"
	MovementTransferOut MovementType = "TRANSFERENCIA_SALIDA"
	MovementTransferIn  MovementType = "TRANSFERENCIA_ENTRADA"
	MovementAdjustIn    MovementType = "AJUSTE_ENTRADA"
	MovementAdjustOut   MovementType = "AJUSTE_SALIDA"
	MovementRefundIn    MovementType = "DEVOLUCION_ENTRADA"
)

// Valid indica si el tipo pertenece a la enumeración.
func (t MovementType) Valid() bool {
	switch t {
	case MovementSaleOut, MovementPurchaseIn, MovementTransferOut,
		MovementTransferIn, MovementAdjustIn, MovementAdjustOut, MovementRefundIn:
		return true
	}
	return false
}

// Inbound indica si el tipo incrementa stock (delta positivo).
func (t MovementType) Inbound() bool {
	switch t {
	case MovementPurchaseIn, MovementTransferIn, MovementAdjustIn, MovementRefundIn:
		return true
	}
	return false
}

// LedgerMovement es una entrada del kardex: registro inmutable de un cambio de
// stock con cantidades antes/después. Append-only; nunca se actualiza ni borra.
type LedgerMovement struct {
	ID           string
	TenantID     string
	ProductID    string
	WarehouseID  string
	Type         MovementType
	Quantity     decimal.Decimal // delta con signo: positivo entrada, negativo salida
	StockBefore  decimal.Decimal
	StockAfter   decimal.Decimal
	ReferenceDoc string // documento que originó el movimiento (venta, orden, traslado...)
	CreatedBy    string
	CreatedAt    time.Time
}
