package repository

import "github.com/tiendix/retail-api/internal/domain/entity"

// GoodsReceiptRepository define el puerto de persistencia para recepciones.
type GoodsReceiptRepository interface {
	// Create persiste cabecera y renglones.
	Create(receipt *entity.GoodsReceipt) error
	GetByID(tenantID, id string) (*entity.GoodsReceipt, error)
	ListByOrder(orderID string) ([]*entity.GoodsReceipt, error)
}
