package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tiendix/retail-api/internal/domain"
	"github.com/tiendix/retail-api/internal/domain/entity"
	"github.com/tiendix/retail-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación de PurchaseOrderRepository sobre PostgreSQL (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const orderColumns = `id, tenant_id, code, supplier_id, warehouse_id, status, subtotal, discount, tax, total, COALESCE(notes, ''), created_by, created_at, updated_at`

// Create persiste cabecera y renglones de la orden.
func (r *PurchaseOrderRepo) Create(o *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (id, tenant_id, code, supplier_id, warehouse_id, status, subtotal, discount, tax, total, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.TenantID, o.Code, o.SupplierID, o.WarehouseID, o.Status,
		o.Subtotal, o.Discount, o.Tax, o.Total, o.Notes, o.CreatedBy, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	for i := range o.Lines {
		l := &o.Lines[i]
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO purchase_order_lines (id, order_id, product_id, quantity_ordered, quantity_received, unit_price, discount, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			l.ID, l.OrderID, l.ProductID, l.QuantityOrdered, l.QuantityReceived, l.UnitPrice, l.Discount, l.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert purchase order line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una orden del tenant con sus renglones.
func (r *PurchaseOrderRepo) GetByID(tenantID, id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE tenant_id = $1 AND id = $2`
	return r.getOne(query, tenantID, id)
}

// GetByIDForUpdate obtiene la orden bloqueando la fila (SELECT FOR UPDATE).
func (r *PurchaseOrderRepo) GetByIDForUpdate(tenantID, id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE tenant_id = $1 AND id = $2 FOR UPDATE`
	return r.getOne(query, tenantID, id)
}

// Update actualiza la cabecera de la orden (estado, notas).
func (r *PurchaseOrderRepo) Update(o *entity.PurchaseOrder) error {
	query := `
		UPDATE purchase_orders SET status = $3, notes = $4, updated_at = $5
		WHERE tenant_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query, o.TenantID, o.ID, o.Status, o.Notes, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	return nil
}

// UpdateLine actualiza la cantidad recibida de un renglón.
func (r *PurchaseOrderRepo) UpdateLine(l *entity.PurchaseOrderLine) error {
	query := `UPDATE purchase_order_lines SET quantity_received = $2 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, l.ID, l.QuantityReceived)
	if err != nil {
		return fmt.Errorf("update purchase order line: %w", err)
	}
	return nil
}

// ListByTenant lista órdenes del tenant, opcionalmente por estado.
func (r *PurchaseOrderRepo) ListByTenant(tenantID string, status entity.PurchaseOrderStatus, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `
		SELECT ` + orderColumns + ` FROM purchase_orders
		WHERE tenant_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, tenantID, string(status), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		var o entity.PurchaseOrder
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		list = append(list, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range list {
		if err := r.loadLines(o); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *PurchaseOrderRepo) getOne(query, tenantID, id string) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	err := scanOrder(r.q.QueryRow(context.Background(), query, tenantID, id), &o)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	if err := r.loadLines(&o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *PurchaseOrderRepo) loadLines(o *entity.PurchaseOrder) error {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, order_id, product_id, quantity_ordered, quantity_received, unit_price, discount, subtotal
		FROM purchase_order_lines WHERE order_id = $1 ORDER BY id`, o.ID)
	if err != nil {
		return fmt.Errorf("list purchase order lines: %w", err)
	}
	defer rows.Close()
	o.Lines = nil
	for rows.Next() {
		var l entity.PurchaseOrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.QuantityOrdered, &l.QuantityReceived,
			&l.UnitPrice, &l.Discount, &l.Subtotal); err != nil {
			return fmt.Errorf("scan purchase order line: %w", err)
		}
		o.Lines = append(o.Lines, l)
	}
	return rows.Err()
}

func scanOrder(row pgx.Row, o *entity.PurchaseOrder) error {
	return row.Scan(
		&o.ID, &o.TenantID, &o.Code, &o.SupplierID, &o.WarehouseID, &o.Status,
		&o.Subtotal, &o.Discount, &o.Tax, &o.Total, &o.Notes, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt,
	)
}
