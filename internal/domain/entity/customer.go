package entity

import "time"

// Customer representa un cliente del tenant. PasswordHash no vacío habilita
// el acceso storefront (autoservicio de catálogo y pedidos).
type Customer struct {
	ID           string
	TenantID     string
	Name         string
	TaxID        string
	Email        string
	Phone        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
