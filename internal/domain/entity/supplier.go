package entity

import "time"

// Supplier representa un proveedor del tenant (compras).
type Supplier struct {
	ID        string
	TenantID  string
	Name      string
	TaxID     string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
