package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una sesión de caja. CERRADA es terminal.
type CashSessionStatus string

const (
	SessionAbierta CashSessionStatus = "ABIERTA"
	SessionCerrada CashSessionStatus = "CERRADA"
)

// Tipos de movimiento manual de caja (no atados a una venta).
type CashMovementType string

const (
	CashIngreso CashMovementType = "INGRESO"
	CashEgreso  CashMovementType = "EGRESO"
)

// CashSession representa el ciclo apertura/cierre de una caja registradora.
// Al cerrar: esperado = apertura + Σ(ventas PAGADA de la sesión) + ΣINGRESO − ΣEGRESO;
// Variance = contado − esperado. La diferencia se reporta, nunca se corrige sola.
type CashSession struct {
	ID             string
	TenantID       string
	RegisterID     string
	OpenedBy       string
	Status         CashSessionStatus
	OpeningAmount  decimal.Decimal
	ClosingAmount  *decimal.Decimal // monto contado al cerrar
	ExpectedAmount *decimal.Decimal
	Variance       *decimal.Decimal
	TotalSales     decimal.Decimal
	Notes          string
	OpenedAt       time.Time
	ClosedAt       *time.Time
}

// CashMovement es un ingreso o egreso manual dentro de una sesión abierta.
// Inmutable una vez registrado.
type CashMovement struct {
	ID        string
	SessionID string
	Type      CashMovementType
	Amount    decimal.Decimal
	Reason    string
	CreatedBy string
	CreatedAt time.Time
}
