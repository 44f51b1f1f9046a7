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

var _ repository.StorefrontOrderRepository = (*StorefrontOrderRepo)(nil)

// StorefrontOrderRepo implementación de StorefrontOrderRepository sobre PostgreSQL.
type StorefrontOrderRepo struct {
	q Querier
}

// NewStorefrontOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStorefrontOrderRepository(q Querier) *StorefrontOrderRepo {
	return &StorefrontOrderRepo{q: q}
}

const storefrontOrderColumns = `id, tenant_id, code, customer_id, warehouse_id, status, subtotal, tax, total, shipping_address, instructions, created_at, updated_at`

// Create persiste cabecera y renglones del pedido.
func (r *StorefrontOrderRepo) Create(o *entity.StorefrontOrder) error {
	query := `
		INSERT INTO storefront_orders (` + storefrontOrderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.TenantID, o.Code, o.CustomerID, o.WarehouseID, o.Status,
		o.Subtotal, o.Tax, o.Total, o.ShippingAddress, o.Instructions,
		o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert storefront order: %w", err)
	}
	for i := range o.Lines {
		l := &o.Lines[i]
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO storefront_order_lines (id, order_id, product_id, product_name, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			l.ID, l.OrderID, l.ProductID, l.ProductName, l.Quantity, l.UnitPrice, l.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert storefront order line: %w", err)
		}
	}
	return nil
}

// GetByIDAndCustomer obtiene un pedido acotado a su cliente dueño.
func (r *StorefrontOrderRepo) GetByIDAndCustomer(tenantID, id, customerID string) (*entity.StorefrontOrder, error) {
	query := `
		SELECT ` + storefrontOrderColumns + ` FROM storefront_orders
		WHERE tenant_id = $1 AND id = $2 AND customer_id = $3`
	var o entity.StorefrontOrder
	err := scanStorefrontOrder(r.q.QueryRow(context.Background(), query, tenantID, id, customerID), &o)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get storefront order: %w", err)
	}
	if err := r.loadLines(&o); err != nil {
		return nil, err
	}
	return &o, nil
}

// Update actualiza la cabecera del pedido (estado).
func (r *StorefrontOrderRepo) Update(o *entity.StorefrontOrder) error {
	query := `
		UPDATE storefront_orders SET status = $3, updated_at = $4
		WHERE tenant_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query, o.TenantID, o.ID, o.Status, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update storefront order: %w", err)
	}
	return nil
}

// ListByCustomer lista los pedidos del cliente, más recientes primero.
func (r *StorefrontOrderRepo) ListByCustomer(tenantID, customerID string, limit, offset int) ([]*entity.StorefrontOrder, error) {
	query := `
		SELECT ` + storefrontOrderColumns + ` FROM storefront_orders
		WHERE tenant_id = $1 AND customer_id = $2
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, tenantID, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list storefront orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.StorefrontOrder
	for rows.Next() {
		var o entity.StorefrontOrder
		if err := scanStorefrontOrder(rows, &o); err != nil {
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

func (r *StorefrontOrderRepo) loadLines(o *entity.StorefrontOrder) error {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, order_id, product_id, product_name, quantity, unit_price, subtotal
		FROM storefront_order_lines WHERE order_id = $1 ORDER BY id`, o.ID)
	if err != nil {
		return fmt.Errorf("list storefront order lines: %w", err)
	}
	defer rows.Close()
	o.Lines = nil
	for rows.Next() {
		var l entity.StorefrontOrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.ProductName, &l.Quantity, &l.UnitPrice, &l.Subtotal); err != nil {
			return fmt.Errorf("scan storefront order line: %w", err)
		}
		o.Lines = append(o.Lines, l)
	}
	return rows.Err()
}

func scanStorefrontOrder(row pgx.Row, o *entity.StorefrontOrder) error {
	return row.Scan(
		&o.ID, &o.TenantID, &o.Code, &o.CustomerID, &o.WarehouseID, &o.Status,
		&o.Subtotal, &o.Tax, &o.Total, &o.ShippingAddress, &o.Instructions,
		&o.CreatedAt, &o.UpdatedAt,
	)
}
