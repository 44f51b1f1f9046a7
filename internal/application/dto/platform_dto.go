package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProvisionTenantRequest alta de tienda + su usuario admin.
type ProvisionTenantRequest struct {
	Name          string           `json:"name"`
	TaxID         string           `json:"tax_id"`
	Email         string           `json:"email"`
	AdminEmail    string           `json:"admin_email"`
	AdminPassword string           `json:"admin_password"`
	AdminName     string           `json:"admin_name"`
	TaxRate       *decimal.Decimal `json:"tax_rate"`  // nil = tasa por defecto de la plataforma
	MaxUsers      int              `json:"max_users"` // 0 = sin límite
}

// TenantResponse proyección de tenant para la consola de plataforma.
type TenantResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	TaxID           string          `json:"tax_id,omitempty"`
	Email           string          `json:"email,omitempty"`
	Status          string          `json:"status"`
	SubscriptionRef string          `json:"subscription_ref,omitempty"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	MaxUsers        int             `json:"max_users,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}
