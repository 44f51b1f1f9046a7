package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tiendix/retail-api/internal/domain/entity"
)

// SaleFilters filtros de listado de ventas.
type SaleFilters struct {
	Status    entity.SaleStatus
	SessionID string
	Limit     int
	Offset    int
}

// SaleRepository define el puerto de persistencia para Sale con sus renglones y pagos.
type SaleRepository interface {
	// Create persiste cabecera y renglones.
	Create(sale *entity.Sale) error
	GetByID(tenantID, id string) (*entity.Sale, error)
	// GetByIDForUpdate bloquea la venta para serializar la captura de pago.
	GetByIDForUpdate(tenantID, id string) (*entity.Sale, error)
	Update(sale *entity.Sale) error
	AddPayment(payment *entity.SalePayment) error
	ListByTenant(tenantID string, f SaleFilters) ([]*entity.Sale, error)
	// SumPaidBySession suma los totales de ventas PAGADA de una sesión de caja.
	SumPaidBySession(sessionID string) (decimal.Decimal, error)
}
