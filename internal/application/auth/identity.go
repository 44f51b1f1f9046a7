package auth

import (
	"github.com/tiendix/retail-api/internal/domain"
	"github.com/tiendix/retail-api/internal/domain/entity"
)

// Scope es la clase de audiencia de una credencial: operador de plataforma,
// personal del tenant o cliente final de storefront.
type Scope string

const (
	ScopePlatform   Scope = "platform"
	ScopeTenant     Scope = "tenant"
	ScopeStorefront Scope = "storefront"
)

// Identity es el resultado de resolver una credencial. Se pasa explícitamente
// a cada operación de los motores; el dominio nunca lee un contexto global.
type Identity struct {
	UserID       string
	TenantID     string // vacío para scope platform
	Role         string
	Scope        Scope
	TenantStatus entity.TenantStatus // cargado por el resolver; vacío en platform
}

// IsPlatform indica si la identidad opera a través de tenants.
func (i Identity) IsPlatform() bool {
	return i.Scope == ScopePlatform
}

// HasRole indica si el rol de la identidad está entre los permitidos.
func (i Identity) HasRole(roles ...string) bool {
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}

// RequireTenantWrite valida que la identidad pueda ejecutar una mutación de
// scope tenant. Distingue tenant suspendido (escrituras rechazadas, lecturas
// permitidas) de un scope sin permiso.
func (i Identity) RequireTenantWrite() error {
	if i.Scope != ScopeTenant || i.TenantID == "" {
		return domain.ErrForbidden
	}
	if i.TenantStatus != entity.TenantActiva {
		return domain.ErrTenantSuspended
	}
	return nil
}

// RequireStorefrontWrite valida el autoservicio del cliente final: scope
// storefront sobre un tenant ACTIVA. Es la única escritura de ese scope.
func (i Identity) RequireStorefrontWrite() error {
	if i.Scope != ScopeStorefront || i.TenantID == "" {
		return domain.ErrForbidden
	}
	if i.TenantStatus != entity.TenantActiva {
		return domain.ErrTenantSuspended
	}
	return nil
}

// RequireTenantRead valida acceso de lectura de scope tenant o storefront.
func (i Identity) RequireTenantRead() error {
	if i.TenantID == "" {
		return domain.ErrForbidden
	}
	return nil
}
