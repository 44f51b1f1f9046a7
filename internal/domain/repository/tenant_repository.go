package repository

import "github.com/tiendix/retail-api/internal/domain/entity"

// TenantRepository define el puerto de persistencia para Tenant (scope platform).
type TenantRepository interface {
	Create(tenant *entity.Tenant) error
	GetByID(id string) (*entity.Tenant, error)
	Update(tenant *entity.Tenant) error
	List(limit, offset int) ([]*entity.Tenant, error)
}
