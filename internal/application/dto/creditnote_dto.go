package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditNoteLineRequest renglón de la venta original a acreditar.
type CreditNoteLineRequest struct {
	SaleLineID string          `json:"sale_line_id"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// CreateCreditNoteRequest crea una nota de crédito sobre una venta PAGADA.
type CreateCreditNoteRequest struct {
	SaleID string                  `json:"sale_id"`
	Type   string                  `json:"type"` // ANULACION, DESCUENTO, DEVOLUCION, CORRECCION
	Reason string                  `json:"reason"`
	Lines  []CreditNoteLineRequest `json:"lines"`
}

// CreditNoteResponse proyección de la nota (inmutable).
type CreditNoteResponse struct {
	ID        string          `json:"id"`
	SaleID    string          `json:"sale_id"`
	Type      string          `json:"type"`
	Reason    string          `json:"reason,omitempty"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}
