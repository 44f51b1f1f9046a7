package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de nota de crédito. Solo las que implican devolución física de
// mercadería (ANULACION, DEVOLUCION) mueven stock.
type CreditNoteType string

const (
	CreditNoteAnulacion  CreditNoteType = "ANULACION"
	CreditNoteDescuento  CreditNoteType = "DESCUENTO"
	CreditNoteDevolucion CreditNoteType = "DEVOLUCION"
	CreditNoteCorreccion CreditNoteType = "CORRECCION"
)

// Valid indica si el tipo pertenece a la enumeración.
func (t CreditNoteType) Valid() bool {
	switch t {
	case CreditNoteAnulacion, CreditNoteDescuento, CreditNoteDevolucion, CreditNoteCorreccion:
		return true
	}
	return false
}

// MovesStock indica si la aprobación publica movimientos DEVOLUCION_ENTRADA.
func (t CreditNoteType) MovesStock() bool {
	return t == CreditNoteAnulacion || t == CreditNoteDevolucion
}

// CreditNote revierte total o parcialmente el efecto financiero (y de stock,
// según el tipo) de una venta PAGADA. Inmutable una vez creada.
type CreditNote struct {
	ID        string
	TenantID  string
	SaleID    string
	Type      CreditNoteType
	Reason    string
	Subtotal  decimal.Decimal
	Tax       decimal.Decimal
	Total     decimal.Decimal
	CreatedBy string
	CreatedAt time.Time

	Lines []CreditNoteLine
}

// CreditNoteLine referencia un renglón de la venta original con la cantidad devuelta.
type CreditNoteLine struct {
	ID           string
	CreditNoteID string
	SaleLineID   string
	ProductID    string
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	Subtotal     decimal.Decimal
}
