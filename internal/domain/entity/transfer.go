package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un traslado entre almacenes.
// PENDIENTE → APROBADA → EJECUTADA; RECHAZADA y CANCELADA son terminales.
type TransferStatus string

const (
	TransferPendiente TransferStatus = "PENDIENTE"
	TransferAprobada  TransferStatus = "APROBADA"
	TransferEjecutada TransferStatus = "EJECUTADA"
	TransferRechazada TransferStatus = "RECHAZADA"
	TransferCancelada TransferStatus = "CANCELADA"
)

// Terminal indica si el estado no admite más transiciones.
func (s TransferStatus) Terminal() bool {
	return s == TransferEjecutada || s == TransferRechazada || s == TransferCancelada
}

// Transfer mueve stock entre dos almacenes del mismo tenant con control de
// cuatro ojos: quien aprueba debe ser distinto de quien solicita. La ejecución
// publica el par salida/entrada por renglón en una sola transacción.
type Transfer struct {
	ID            string
	TenantID      string
	OriginID      string
	DestinationID string
	Status        TransferStatus
	RequestedBy   string
	ApprovedBy    *string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Lines []TransferLine
}

// TransferLine es un renglón del traslado.
type TransferLine struct {
	ID         string
	TransferID string
	ProductID  string
	Quantity   decimal.Decimal
}
