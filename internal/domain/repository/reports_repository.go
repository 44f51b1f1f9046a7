package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tiendix/retail-api/internal/domain/entity"
)

// ReportsRepository expone proyecciones de solo lectura para dashboards.
// Derivadas de las entidades, nunca mutables por separado.
type ReportsRepository interface {
	SalesCountByStatus(tenantID string) (map[entity.SaleStatus]int, error)
	OrdersCountByStatus(tenantID string) (map[entity.PurchaseOrderStatus]int, error)
	TransfersCountByStatus(tenantID string) (map[entity.TransferStatus]int, error)
	SalesTotalForDay(tenantID string, day time.Time) (decimal.Decimal, error)
}
