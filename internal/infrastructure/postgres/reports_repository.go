package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tiendix/retail-api/internal/domain/entity"
	"github.com/tiendix/retail-api/internal/domain/repository"
)

var _ repository.ReportsRepository = (*ReportsRepo)(nil)

// ReportsRepo proyecciones de solo lectura para dashboards, derivadas de las
// tablas de documentos.
type ReportsRepo struct {
	q Querier
}

// NewReportsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReportsRepository(q Querier) *ReportsRepo {
	return &ReportsRepo{q: q}
}

// SalesCountByStatus cuenta ventas del tenant agrupadas por estado.
func (r *ReportsRepo) SalesCountByStatus(tenantID string) (map[entity.SaleStatus]int, error) {
	out := make(map[entity.SaleStatus]int)
	err := r.countByStatus(`SELECT status, COUNT(*) FROM sales WHERE tenant_id = $1 GROUP BY status`, tenantID,
		func(status string, n int) { out[entity.SaleStatus(status)] = n })
	if err != nil {
		return nil, fmt.Errorf("sales count by status: %w", err)
	}
	return out, nil
}

// OrdersCountByStatus cuenta órdenes de compra del tenant agrupadas por estado.
func (r *ReportsRepo) OrdersCountByStatus(tenantID string) (map[entity.PurchaseOrderStatus]int, error) {
	out := make(map[entity.PurchaseOrderStatus]int)
	err := r.countByStatus(`SELECT status, COUNT(*) FROM purchase_orders WHERE tenant_id = $1 GROUP BY status`, tenantID,
		func(status string, n int) { out[entity.PurchaseOrderStatus(status)] = n })
	if err != nil {
		return nil, fmt.Errorf("orders count by status: %w", err)
	}
	return out, nil
}

// TransfersCountByStatus cuenta traslados del tenant agrupados por estado.
func (r *ReportsRepo) TransfersCountByStatus(tenantID string) (map[entity.TransferStatus]int, error) {
	out := make(map[entity.TransferStatus]int)
	err := r.countByStatus(`SELECT status, COUNT(*) FROM transfers WHERE tenant_id = $1 GROUP BY status`, tenantID,
		func(status string, n int) { out[entity.TransferStatus(status)] = n })
	if err != nil {
		return nil, fmt.Errorf("transfers count by status: %w", err)
	}
	return out, nil
}

// SalesTotalForDay suma los totales de ventas PAGADA de un día calendario.
func (r *ReportsRepo) SalesTotalForDay(tenantID string, day time.Time) (decimal.Decimal, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)
	query := `
		SELECT COALESCE(SUM(total), 0) FROM sales
		WHERE tenant_id = $1 AND status = $2 AND created_at >= $3 AND created_at < $4`
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, tenantID, entity.SalePagada, start, end).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sales total for day: %w", err)
	}
	return total, nil
}

func (r *ReportsRepo) countByStatus(query, tenantID string, add func(status string, n int)) error {
	rows, err := r.q.Query(context.Background(), query, tenantID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return err
		}
		add(status, n)
	}
	return rows.Err()
}
