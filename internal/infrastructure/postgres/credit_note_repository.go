package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tiendix/retail-api/internal/domain/entity"
	"github.com/tiendix/retail-api/internal/domain/repository"
)

var _ repository.CreditNoteRepository = (*CreditNoteRepo)(nil)

// CreditNoteRepo implementación de CreditNoteRepository sobre PostgreSQL (usable con pool o tx).
// Las notas son inmutables: solo INSERT y SELECT.
type CreditNoteRepo struct {
	q Querier
}

// NewCreditNoteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCreditNoteRepository(q Querier) *CreditNoteRepo {
	return &CreditNoteRepo{q: q}
}

const noteColumns = `id, tenant_id, sale_id, type, COALESCE(reason, ''), subtotal, tax, total, created_by, created_at`

// Create persiste cabecera y renglones de la nota.
func (r *CreditNoteRepo) Create(n *entity.CreditNote) error {
	query := `
		INSERT INTO credit_notes (id, tenant_id, sale_id, type, reason, subtotal, tax, total, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		n.ID, n.TenantID, n.SaleID, n.Type, n.Reason, n.Subtotal, n.Tax, n.Total, n.CreatedBy, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert credit note: %w", err)
	}
	for i := range n.Lines {
		l := &n.Lines[i]
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO credit_note_lines (id, credit_note_id, sale_line_id, product_id, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			l.ID, l.CreditNoteID, l.SaleLineID, l.ProductID, l.Quantity, l.UnitPrice, l.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert credit note line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una nota del tenant con sus renglones.
func (r *CreditNoteRepo) GetByID(tenantID, id string) (*entity.CreditNote, error) {
	query := `SELECT ` + noteColumns + ` FROM credit_notes WHERE tenant_id = $1 AND id = $2`
	var n entity.CreditNote
	err := scanNote(r.q.QueryRow(context.Background(), query, tenantID, id), &n)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get credit note: %w", err)
	}
	if err := r.loadLines(&n); err != nil {
		return nil, err
	}
	return &n, nil
}

// ListBySale lista las notas emitidas sobre una venta.
func (r *CreditNoteRepo) ListBySale(saleID string) ([]*entity.CreditNote, error) {
	query := `SELECT ` + noteColumns + ` FROM credit_notes WHERE sale_id = $1 ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list credit notes by sale: %w", err)
	}
	defer rows.Close()
	return r.collect(rows)
}

// CreditedBySale devuelve la cantidad acumulada acreditada por renglón de venta.
func (r *CreditNoteRepo) CreditedBySale(saleID string) (map[string]decimal.Decimal, error) {
	query := `
		SELECT l.sale_line_id, COALESCE(SUM(l.quantity), 0)
		FROM credit_note_lines l
		JOIN credit_notes n ON n.id = l.credit_note_id
		WHERE n.sale_id = $1
		GROUP BY l.sale_line_id`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("credited by sale: %w", err)
	}
	defer rows.Close()
	out := make(map[string]decimal.Decimal)
	for rows.Next() {
		var lineID string
		var qty decimal.Decimal
		if err := rows.Scan(&lineID, &qty); err != nil {
			return nil, fmt.Errorf("scan credited line: %w", err)
		}
		out[lineID] = qty
	}
	return out, rows.Err()
}

// ListByTenant lista notas del tenant con paginación.
func (r *CreditNoteRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.CreditNote, error) {
	query := `SELECT ` + noteColumns + ` FROM credit_notes WHERE tenant_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list credit notes: %w", err)
	}
	defer rows.Close()
	return r.collect(rows)
}

func (r *CreditNoteRepo) collect(rows pgx.Rows) ([]*entity.CreditNote, error) {
	var list []*entity.CreditNote
	for rows.Next() {
		var n entity.CreditNote
		if err := scanNote(rows, &n); err != nil {
			return nil, err
		}
		list = append(list, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, n := range list {
		if err := r.loadLines(n); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *CreditNoteRepo) loadLines(n *entity.CreditNote) error {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, credit_note_id, sale_line_id, product_id, quantity, unit_price, subtotal
		FROM credit_note_lines WHERE credit_note_id = $1 ORDER BY id`, n.ID)
	if err != nil {
		return fmt.Errorf("list credit note lines: %w", err)
	}
	defer rows.Close()
	n.Lines = nil
	for rows.Next() {
		var l entity.CreditNoteLine
		if err := rows.Scan(&l.ID, &l.CreditNoteID, &l.SaleLineID, &l.ProductID, &l.Quantity, &l.UnitPrice, &l.Subtotal); err != nil {
			return fmt.Errorf("scan credit note line: %w", err)
		}
		n.Lines = append(n.Lines, l)
	}
	return rows.Err()
}

func scanNote(row pgx.Row, n *entity.CreditNote) error {
	return row.Scan(
		&n.ID, &n.TenantID, &n.SaleID, &n.Type, &n.Reason,
		&n.Subtotal, &n.Tax, &n.Total, &n.CreatedBy, &n.CreatedAt,
	)
}
