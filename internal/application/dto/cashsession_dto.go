package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpenSessionRequest apertura de sesión de caja.
type OpenSessionRequest struct {
	RegisterID    string          `json:"register_id"`
	OpeningAmount decimal.Decimal `json:"opening_amount"`
}

// CashMovementRequest ingreso/egreso manual de la sesión.
type CashMovementRequest struct {
	Type   string          `json:"type"` // INGRESO | EGRESO
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason"`
}

// CloseSessionRequest cierre con monto contado.
type CloseSessionRequest struct {
	CountedAmount decimal.Decimal `json:"counted_amount"`
	Notes         string          `json:"notes"`
}

// CashSessionResponse proyección de sesión con montos calculados.
type CashSessionResponse struct {
	ID             string           `json:"id"`
	RegisterID     string           `json:"register_id"`
	Status         string           `json:"status"`
	OpeningAmount  decimal.Decimal  `json:"opening_amount"`
	ClosingAmount  *decimal.Decimal `json:"closing_amount,omitempty"`
	ExpectedAmount *decimal.Decimal `json:"expected_amount,omitempty"`
	Variance       *decimal.Decimal `json:"variance,omitempty"`
	TotalSales     decimal.Decimal  `json:"total_sales"`
	Notes          string           `json:"notes,omitempty"`
	OpenedAt       time.Time        `json:"opened_at"`
	ClosedAt       *time.Time       `json:"closed_at,omitempty"`
}

// CashSessionSummary resumen para la pantalla de cierre.
type CashSessionSummary struct {
	OpeningAmount  decimal.Decimal `json:"opening_amount"`
	TotalSales     decimal.Decimal `json:"total_sales"`
	TotalIngresos  decimal.Decimal `json:"total_ingresos"`
	TotalEgresos   decimal.Decimal `json:"total_egresos"`
	ExpectedAmount decimal.Decimal `json:"expected_amount"`
}
