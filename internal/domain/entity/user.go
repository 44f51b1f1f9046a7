package entity

import "time"

// Roles válidos para User. Superadmin opera con scope platform (sin tenant).
const (
	RoleSuperadmin = "superadmin"
	RoleAdmin      = "admin"
	RoleBodeguero  = "bodeguero"
	RoleVendedor   = "vendedor"
)

// User representa un usuario del sistema. TenantID vacío identifica a un
// operador de plataforma.
type User struct {
	ID           string
	TenantID     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // superadmin, admin, bodeguero, vendedor
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
