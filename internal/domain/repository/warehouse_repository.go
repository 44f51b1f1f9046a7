package repository

import "github.com/tiendix/retail-api/internal/domain/entity"

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(tenantID, id string) (*entity.Warehouse, error)
	Update(warehouse *entity.Warehouse) error
	ListByTenant(tenantID string, limit, offset int) ([]*entity.Warehouse, error)
	Delete(tenantID, id string) error
}
