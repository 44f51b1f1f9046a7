package repository

import "github.com/tiendix/retail-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(tenantID, id string) (*entity.Product, error)
	GetBySKU(tenantID, sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	ListByTenant(tenantID string, limit, offset int) ([]*entity.Product, error)
	Delete(tenantID, id string) error
}
