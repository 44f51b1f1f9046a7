package repository

import (
	"time"

	"github.com/tiendix/retail-api/internal/domain/entity"
)

// LedgerMovementRepository define el puerto de persistencia del kardex.
// Create es la única escritura: los movimientos jamás se actualizan ni borran.
type LedgerMovementRepository interface {
	Create(movement *entity.LedgerMovement) error
	GetByID(tenantID, id string) (*entity.LedgerMovement, error)
	// ListByProductAndWarehouse pagina ascendente por fecha de creación
	// (orden estable para el kardex).
	ListByProductAndWarehouse(tenantID, productID, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.LedgerMovement, error)
	ListByWarehouse(tenantID, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.LedgerMovement, error)
}
