package dto

import "time"

// LoginRequest credenciales de acceso (personal o storefront).
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token emitido y usuario autenticado (vacío para storefront).
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user,omitempty"`
}

// RegisterUserRequest alta de personal dentro del tenant.
type RegisterUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"` // admin, bodeguero, vendedor
}

// UserResponse proyección de usuario sin hash de contraseña.
type UserResponse struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id,omitempty"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
