package repository

import "github.com/tiendix/retail-api/internal/domain/entity"

// StorefrontOrderRepository define el puerto de persistencia para los pedidos
// de autoservicio. Las lecturas van siempre acotadas al cliente dueño.
type StorefrontOrderRepository interface {
	// Create persiste cabecera y renglones.
	Create(order *entity.StorefrontOrder) error
	GetByIDAndCustomer(tenantID, id, customerID string) (*entity.StorefrontOrder, error)
	Update(order *entity.StorefrontOrder) error
	ListByCustomer(tenantID, customerID string, limit, offset int) ([]*entity.StorefrontOrder, error)
}
