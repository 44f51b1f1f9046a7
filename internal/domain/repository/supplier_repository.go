package repository

import "github.com/tiendix/retail-api/internal/domain/entity"

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(tenantID, id string) (*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	ListByTenant(tenantID string, limit, offset int) ([]*entity.Supplier, error)
}
