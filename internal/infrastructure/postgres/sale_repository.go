package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tiendix/retail-api/internal/domain"
	"github.com/tiendix/retail-api/internal/domain/entity"
	"github.com/tiendix/retail-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, tenant_id, code, session_id, customer_id, warehouse_id, status, subtotal, discount, tax, total, amount_received, change, created_by, created_at, updated_at`

// Create persiste cabecera y renglones de la venta.
func (r *SaleRepo) Create(s *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.TenantID, s.Code, s.SessionID, s.CustomerID, s.WarehouseID, s.Status,
		s.Subtotal, s.Discount, s.Tax, s.Total, s.AmountReceived, s.Change,
		s.CreatedBy, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	for i := range s.Lines {
		l := &s.Lines[i]
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO sale_lines (id, sale_id, product_id, quantity, unit_price, discount, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			l.ID, l.SaleID, l.ProductID, l.Quantity, l.UnitPrice, l.Discount, l.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert sale line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una venta del tenant con renglones y pagos.
func (r *SaleRepo) GetByID(tenantID, id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE tenant_id = $1 AND id = $2`
	return r.getOne(query, tenantID, id)
}

// GetByIDForUpdate obtiene la venta bloqueando la fila (SELECT FOR UPDATE).
func (r *SaleRepo) GetByIDForUpdate(tenantID, id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE tenant_id = $1 AND id = $2 FOR UPDATE`
	return r.getOne(query, tenantID, id)
}

// Update actualiza la cabecera de la venta (estado, montos de pago).
func (r *SaleRepo) Update(s *entity.Sale) error {
	query := `
		UPDATE sales SET status = $3, amount_received = $4, change = $5, updated_at = $6
		WHERE tenant_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		s.TenantID, s.ID, s.Status, s.AmountReceived, s.Change, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	return nil
}

// AddPayment persiste un pago parcial de la venta.
func (r *SaleRepo) AddPayment(p *entity.SalePayment) error {
	query := `
		INSERT INTO sale_payments (id, sale_id, method, amount, reference)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query, p.ID, p.SaleID, p.Method, p.Amount, p.Reference)
	if err != nil {
		return fmt.Errorf("insert sale payment: %w", err)
	}
	return nil
}

// ListByTenant lista ventas del tenant con filtros opcionales de estado y sesión.
func (r *SaleRepo) ListByTenant(tenantID string, f repository.SaleFilters) ([]*entity.Sale, error) {
	query := `
		SELECT ` + saleColumns + ` FROM sales
		WHERE tenant_id = $1
		  AND ($2 = '' OR status = $2)
		  AND ($3 = '' OR session_id = $3)
		ORDER BY created_at DESC LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, tenantID, string(f.Status), f.SessionID, f.Limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := scanSale(rows, &s); err != nil {
			return nil, err
		}
		list = append(list, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, s := range list {
		if err := r.loadLines(s); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// SumPaidBySession suma los totales de ventas PAGADA de una sesión de caja.
func (r *SaleRepo) SumPaidBySession(sessionID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(total), 0) FROM sales
		WHERE session_id = $1 AND status = $2`
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, sessionID, entity.SalePagada).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum paid by session: %w", err)
	}
	return total, nil
}

func (r *SaleRepo) getOne(query, tenantID, id string) (*entity.Sale, error) {
	var s entity.Sale
	err := scanSale(r.q.QueryRow(context.Background(), query, tenantID, id), &s)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if err := r.loadLines(&s); err != nil {
		return nil, err
	}
	if err := r.loadPayments(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SaleRepo) loadLines(s *entity.Sale) error {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, sale_id, product_id, quantity, unit_price, discount, subtotal
		FROM sale_lines WHERE sale_id = $1 ORDER BY id`, s.ID)
	if err != nil {
		return fmt.Errorf("list sale lines: %w", err)
	}
	defer rows.Close()
	s.Lines = nil
	for rows.Next() {
		var l entity.SaleLine
		if err := rows.Scan(&l.ID, &l.SaleID, &l.ProductID, &l.Quantity, &l.UnitPrice, &l.Discount, &l.Subtotal); err != nil {
			return fmt.Errorf("scan sale line: %w", err)
		}
		s.Lines = append(s.Lines, l)
	}
	return rows.Err()
}

func (r *SaleRepo) loadPayments(s *entity.Sale) error {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, sale_id, method, amount, COALESCE(reference, '')
		FROM sale_payments WHERE sale_id = $1 ORDER BY id`, s.ID)
	if err != nil {
		return fmt.Errorf("list sale payments: %w", err)
	}
	defer rows.Close()
	s.Payments = nil
	for rows.Next() {
		var p entity.SalePayment
		if err := rows.Scan(&p.ID, &p.SaleID, &p.Method, &p.Amount, &p.Reference); err != nil {
			return fmt.Errorf("scan sale payment: %w", err)
		}
		s.Payments = append(s.Payments, p)
	}
	return rows.Err()
}

func scanSale(row pgx.Row, s *entity.Sale) error {
	return row.Scan(
		&s.ID, &s.TenantID, &s.Code, &s.SessionID, &s.CustomerID, &s.WarehouseID, &s.Status,
		&s.Subtotal, &s.Discount, &s.Tax, &s.Total, &s.AmountReceived, &s.Change,
		&s.CreatedBy, &s.CreatedAt, &s.UpdatedAt,
	)
}
