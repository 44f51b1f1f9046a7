package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tiendix/retail-api/internal/domain/entity"
	"github.com/tiendix/retail-api/internal/domain/repository"
)

var _ repository.GoodsReceiptRepository = (*GoodsReceiptRepo)(nil)

// GoodsReceiptRepo implementación de GoodsReceiptRepository sobre PostgreSQL (usable con pool o tx).
type GoodsReceiptRepo struct {
	q Querier
}

// NewGoodsReceiptRepository construye el adaptador. Pasar pool o tx (Querier).
func NewGoodsReceiptRepository(q Querier) *GoodsReceiptRepo {
	return &GoodsReceiptRepo{q: q}
}

// Create persiste cabecera y renglones de la recepción.
func (r *GoodsReceiptRepo) Create(gr *entity.GoodsReceipt) error {
	query := `
		INSERT INTO goods_receipts (id, tenant_id, order_id, warehouse_id, complete, notes, received_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		gr.ID, gr.TenantID, gr.OrderID, gr.WarehouseID, gr.Complete, gr.Notes, gr.ReceivedBy, gr.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert goods receipt: %w", err)
	}
	for i := range gr.Lines {
		l := &gr.Lines[i]
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO goods_receipt_lines (id, receipt_id, order_line_id, product_id, quantity_accepted, quantity_rejected, reject_reason)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			l.ID, l.ReceiptID, l.OrderLineID, l.ProductID, l.QuantityAccepted, l.QuantityRejected, l.RejectReason,
		)
		if err != nil {
			return fmt.Errorf("insert goods receipt line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una recepción del tenant con sus renglones.
func (r *GoodsReceiptRepo) GetByID(tenantID, id string) (*entity.GoodsReceipt, error) {
	query := `
		SELECT id, tenant_id, order_id, warehouse_id, complete, COALESCE(notes, ''), received_by, created_at
		FROM goods_receipts WHERE tenant_id = $1 AND id = $2`
	var gr entity.GoodsReceipt
	err := r.q.QueryRow(context.Background(), query, tenantID, id).Scan(
		&gr.ID, &gr.TenantID, &gr.OrderID, &gr.WarehouseID, &gr.Complete, &gr.Notes, &gr.ReceivedBy, &gr.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get goods receipt: %w", err)
	}
	if err := r.loadLines(&gr); err != nil {
		return nil, err
	}
	return &gr, nil
}

// ListByOrder lista las recepciones de una orden, de la más antigua a la más reciente.
func (r *GoodsReceiptRepo) ListByOrder(orderID string) ([]*entity.GoodsReceipt, error) {
	query := `
		SELECT id, tenant_id, order_id, warehouse_id, complete, COALESCE(notes, ''), received_by, created_at
		FROM goods_receipts WHERE order_id = $1 ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list goods receipts: %w", err)
	}
	defer rows.Close()
	var list []*entity.GoodsReceipt
	for rows.Next() {
		var gr entity.GoodsReceipt
		if err := rows.Scan(&gr.ID, &gr.TenantID, &gr.OrderID, &gr.WarehouseID, &gr.Complete,
			&gr.Notes, &gr.ReceivedBy, &gr.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan goods receipt: %w", err)
		}
		list = append(list, &gr)
	}
	return list, rows.Err()
}

func (r *GoodsReceiptRepo) loadLines(gr *entity.GoodsReceipt) error {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, receipt_id, order_line_id, product_id, quantity_accepted, quantity_rejected, COALESCE(reject_reason, '')
		FROM goods_receipt_lines WHERE receipt_id = $1 ORDER BY id`, gr.ID)
	if err != nil {
		return fmt.Errorf("list goods receipt lines: %w", err)
	}
	defer rows.Close()
	gr.Lines = nil
	for rows.Next() {
		var l entity.GoodsReceiptLine
		if err := rows.Scan(&l.ID, &l.ReceiptID, &l.OrderLineID, &l.ProductID,
			&l.QuantityAccepted, &l.QuantityRejected, &l.RejectReason); err != nil {
			return fmt.Errorf("scan goods receipt line: %w", err)
		}
		gr.Lines = append(gr.Lines, l)
	}
	return rows.Err()
}
