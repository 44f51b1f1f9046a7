package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un tenant en la plataforma. Un tenant SUSPENDIDA rechaza toda
// escritura de scope tenant/storefront pero permite lecturas.
type TenantStatus string

const (
	TenantActiva     TenantStatus = "ACTIVA"
	TenantSuspendida TenantStatus = "SUSPENDIDA"
)

// Tenant representa una tienda aislada dentro de la plataforma compartida.
// Es dueño de todas las entidades con TenantID; el aislamiento es un predicado
// obligatorio en cada consulta, no un default.
type Tenant struct {
	ID              string
	Name            string
	TaxID           string // RUC del comercio
	Email           string
	Status          TenantStatus
	SubscriptionRef string          // referencia externa de suscripción
	TaxRate         decimal.Decimal // tasa de impuesto aplicada por el motor de ventas (ej. 0.18)
	MaxUsers        int             // override de uso; 0 = sin límite
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
