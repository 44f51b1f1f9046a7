package entity

import "time"

// Warehouse representa un almacén o sucursal donde se almacena inventario.
// Capacity es solo informativa; el ledger no la valida.
type Warehouse struct {
	ID        string
	TenantID  string
	Name      string
	Address   string
	Capacity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}
