package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tiendix/retail-api/internal/domain/entity"
	"github.com/tiendix/retail-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación de TransferRepository sobre PostgreSQL (usable con pool o tx).
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferColumns = `id, tenant_id, origin_id, destination_id, status, requested_by, approved_by, COALESCE(notes, ''), created_at, updated_at`

// Create persiste cabecera y renglones del traslado.
func (r *TransferRepo) Create(t *entity.Transfer) error {
	query := `
		INSERT INTO transfers (id, tenant_id, origin_id, destination_id, status, requested_by, approved_by, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.TenantID, t.OriginID, t.DestinationID, t.Status, t.RequestedBy, t.ApprovedBy, t.Notes, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transfer: %w", err)
	}
	for i := range t.Lines {
		l := &t.Lines[i]
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO transfer_lines (id, transfer_id, product_id, quantity)
			VALUES ($1, $2, $3, $4)`,
			l.ID, l.TransferID, l.ProductID, l.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert transfer line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un traslado del tenant con sus renglones.
func (r *TransferRepo) GetByID(tenantID, id string) (*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE tenant_id = $1 AND id = $2`
	return r.getOne(query, tenantID, id)
}

// GetByIDForUpdate obtiene el traslado bloqueando la fila (SELECT FOR UPDATE).
func (r *TransferRepo) GetByIDForUpdate(tenantID, id string) (*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE tenant_id = $1 AND id = $2 FOR UPDATE`
	return r.getOne(query, tenantID, id)
}

// Update actualiza la cabecera del traslado (estado, aprobador).
func (r *TransferRepo) Update(t *entity.Transfer) error {
	query := `
		UPDATE transfers SET status = $3, approved_by = $4, notes = $5, updated_at = $6
		WHERE tenant_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query, t.TenantID, t.ID, t.Status, t.ApprovedBy, t.Notes, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update transfer: %w", err)
	}
	return nil
}

// ListByTenant lista traslados del tenant, opcionalmente por estado.
func (r *TransferRepo) ListByTenant(tenantID string, status entity.TransferStatus, limit, offset int) ([]*entity.Transfer, error) {
	query := `
		SELECT ` + transferColumns + ` FROM transfers
		WHERE tenant_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, tenantID, string(status), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transfer
	for rows.Next() {
		var t entity.Transfer
		if err := scanTransfer(rows, &t); err != nil {
			return nil, err
		}
		list = append(list, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, t := range list {
		if err := r.loadLines(t); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *TransferRepo) getOne(query, tenantID, id string) (*entity.Transfer, error) {
	var t entity.Transfer
	err := scanTransfer(r.q.QueryRow(context.Background(), query, tenantID, id), &t)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	if err := r.loadLines(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TransferRepo) loadLines(t *entity.Transfer) error {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, transfer_id, product_id, quantity
		FROM transfer_lines WHERE transfer_id = $1 ORDER BY id`, t.ID)
	if err != nil {
		return fmt.Errorf("list transfer lines: %w", err)
	}
	defer rows.Close()
	t.Lines = nil
	for rows.Next() {
		var l entity.TransferLine
		if err := rows.Scan(&l.ID, &l.TransferID, &l.ProductID, &l.Quantity); err != nil {
			return fmt.Errorf("scan transfer line: %w", err)
		}
		t.Lines = append(t.Lines, l)
	}
	return rows.Err()
}

func scanTransfer(row pgx.Row, t *entity.Transfer) error {
	return row.Scan(
		&t.ID, &t.TenantID, &t.OriginID, &t.DestinationID, &t.Status,
		&t.RequestedBy, &t.ApprovedBy, &t.Notes, &t.CreatedAt, &t.UpdatedAt,
	)
}
