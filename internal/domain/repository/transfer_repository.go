package repository

import "github.com/tiendix/retail-api/internal/domain/entity"

// TransferRepository define el puerto de persistencia para traslados.
type TransferRepository interface {
	// Create persiste cabecera y renglones.
	Create(transfer *entity.Transfer) error
	GetByID(tenantID, id string) (*entity.Transfer, error)
	// GetByIDForUpdate bloquea el traslado para serializar la ejecución.
	GetByIDForUpdate(tenantID, id string) (*entity.Transfer, error)
	Update(transfer *entity.Transfer) error
	ListByTenant(tenantID string, status entity.TransferStatus, limit, offset int) ([]*entity.Transfer, error)
}
