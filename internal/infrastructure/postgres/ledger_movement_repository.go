package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tiendix/retail-api/internal/domain/entity"
	"github.com/tiendix/retail-api/internal/domain/repository"
)

var _ repository.LedgerMovementRepository = (*LedgerMovementRepo)(nil)

// LedgerMovementRepo implementación del kardex sobre PostgreSQL (usable con pool o tx).
// Solo inserta: la tabla no tiene UPDATE ni DELETE desde la aplicación.
type LedgerMovementRepo struct {
	q Querier
}

// NewLedgerMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerMovementRepository(q Querier) *LedgerMovementRepo {
	return &LedgerMovementRepo{q: q}
}

// Create persiste un movimiento del kardex.
func (r *LedgerMovementRepo) Create(m *entity.LedgerMovement) error {
	query := `
		INSERT INTO ledger_movements (id, tenant_id, product_id, warehouse_id, type, quantity, stock_before, stock_after, reference_doc, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.TenantID, m.ProductID, m.WarehouseID, m.Type,
		m.Quantity, m.StockBefore, m.StockAfter, m.ReferenceDoc, m.CreatedBy, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ledger movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento del tenant por ID.
func (r *LedgerMovementRepo) GetByID(tenantID, id string) (*entity.LedgerMovement, error) {
	query := `
		SELECT id, tenant_id, product_id, warehouse_id, type, quantity, stock_before, stock_after, reference_doc, created_by, created_at
		FROM ledger_movements WHERE tenant_id = $1 AND id = $2`
	var m entity.LedgerMovement
	err := r.q.QueryRow(context.Background(), query, tenantID, id).Scan(
		&m.ID, &m.TenantID, &m.ProductID, &m.WarehouseID, &m.Type,
		&m.Quantity, &m.StockBefore, &m.StockAfter, &m.ReferenceDoc, &m.CreatedBy, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ledger movement: %w", err)
	}
	return &m, nil
}

// ListByProductAndWarehouse pagina el kardex de una llave en orden ascendente
// estable (created_at, id).
func (r *LedgerMovementRepo) ListByProductAndWarehouse(tenantID, productID, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.LedgerMovement, error) {
	query := `
		SELECT id, tenant_id, product_id, warehouse_id, type, quantity, stock_before, stock_after, reference_doc, created_by, created_at
		FROM ledger_movements
		WHERE tenant_id = $1 AND product_id = $2 AND warehouse_id = $3
		  AND ($4::timestamptz IS NULL OR created_at >= $4)
		  AND ($5::timestamptz IS NULL OR created_at <= $5)
		ORDER BY created_at ASC, id ASC LIMIT $6 OFFSET $7`
	rows, err := r.q.Query(context.Background(), query, tenantID, productID, warehouseID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ledger movements: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// ListByWarehouse pagina los movimientos de un almacén en orden ascendente.
func (r *LedgerMovementRepo) ListByWarehouse(tenantID, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.LedgerMovement, error) {
	query := `
		SELECT id, tenant_id, product_id, warehouse_id, type, quantity, stock_before, stock_after, reference_doc, created_by, created_at
		FROM ledger_movements
		WHERE tenant_id = $1 AND warehouse_id = $2
		  AND ($3::timestamptz IS NULL OR created_at >= $3)
		  AND ($4::timestamptz IS NULL OR created_at <= $4)
		ORDER BY created_at ASC, id ASC LIMIT $5 OFFSET $6`
	rows, err := r.q.Query(context.Background(), query, tenantID, warehouseID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list warehouse movements: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

func scanMovements(rows pgx.Rows) ([]*entity.LedgerMovement, error) {
	var list []*entity.LedgerMovement
	for rows.Next() {
		var m entity.LedgerMovement
		if err := rows.Scan(&m.ID, &m.TenantID, &m.ProductID, &m.WarehouseID, &m.Type,
			&m.Quantity, &m.StockBefore, &m.StockAfter, &m.ReferenceDoc, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ledger movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
