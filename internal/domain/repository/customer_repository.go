package repository

import "github.com/tiendix/retail-api/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para Customer.
// Todas las consultas llevan tenantID como predicado estructural.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(tenantID, id string) (*entity.Customer, error)
	GetByEmail(tenantID, email string) (*entity.Customer, error)
	Update(customer *entity.Customer) error
	ListByTenant(tenantID string, limit, offset int) ([]*entity.Customer, error)
}
