package repository

import "github.com/tiendix/retail-api/internal/domain/entity"

// PurchaseOrderRepository define el puerto de persistencia para órdenes de compra.
type PurchaseOrderRepository interface {
	// Create persiste cabecera y renglones.
	Create(order *entity.PurchaseOrder) error
	GetByID(tenantID, id string) (*entity.PurchaseOrder, error)
	// GetByIDForUpdate bloquea la orden para serializar recepciones concurrentes.
	GetByIDForUpdate(tenantID, id string) (*entity.PurchaseOrder, error)
	Update(order *entity.PurchaseOrder) error
	UpdateLine(line *entity.PurchaseOrderLine) error
	ListByTenant(tenantID string, status entity.PurchaseOrderStatus, limit, offset int) ([]*entity.PurchaseOrder, error)
}
