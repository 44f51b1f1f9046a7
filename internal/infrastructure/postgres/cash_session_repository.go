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

var _ repository.CashSessionRepository = (*CashSessionRepo)(nil)

// CashSessionRepo implementación de CashSessionRepository sobre PostgreSQL (usable con pool o tx).
type CashSessionRepo struct {
	q Querier
}

// NewCashSessionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCashSessionRepository(q Querier) *CashSessionRepo {
	return &CashSessionRepo{q: q}
}

const sessionColumns = `id, tenant_id, register_id, opened_by, status, opening_amount, closing_amount, expected_amount, variance, total_sales, COALESCE(notes, ''), opened_at, closed_at`

// Create persiste una nueva sesión. Un índice único parcial sobre
// (tenant_id, register_id) WHERE status = 'ABIERTA' respalda la regla de una
// sesión abierta por caja ante aperturas concurrentes.
func (r *CashSessionRepo) Create(s *entity.CashSession) error {
	query := `
		INSERT INTO cash_sessions (id, tenant_id, register_id, opened_by, status, opening_amount, total_sales, notes, opened_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.TenantID, s.RegisterID, s.OpenedBy, s.Status, s.OpeningAmount, s.TotalSales, s.Notes, s.OpenedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSessionAlreadyOpen
		}
		return fmt.Errorf("insert cash session: %w", err)
	}
	return nil
}

// GetByID obtiene una sesión del tenant por ID.
func (r *CashSessionRepo) GetByID(tenantID, id string) (*entity.CashSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM cash_sessions WHERE tenant_id = $1 AND id = $2`
	return r.getOne(query, tenantID, id)
}

// GetByIDForUpdate obtiene la sesión bloqueando la fila (SELECT FOR UPDATE).
func (r *CashSessionRepo) GetByIDForUpdate(tenantID, id string) (*entity.CashSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM cash_sessions WHERE tenant_id = $1 AND id = $2 FOR UPDATE`
	return r.getOne(query, tenantID, id)
}

// GetOpenByRegister obtiene la sesión ABIERTA de una caja, si existe.
func (r *CashSessionRepo) GetOpenByRegister(tenantID, registerID string) (*entity.CashSession, error) {
	query := `
		SELECT ` + sessionColumns + ` FROM cash_sessions
		WHERE tenant_id = $1 AND register_id = $2 AND status = $3`
	var s entity.CashSession
	err := scanSession(r.q.QueryRow(context.Background(), query, tenantID, registerID, entity.SessionAbierta), &s)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get open session: %w", err)
	}
	return &s, nil
}

// Update actualiza la sesión (cierre con montos calculados).
func (r *CashSessionRepo) Update(s *entity.CashSession) error {
	query := `
		UPDATE cash_sessions
		SET status = $3, closing_amount = $4, expected_amount = $5, variance = $6, total_sales = $7, notes = $8, closed_at = $9
		WHERE tenant_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		s.TenantID, s.ID, s.Status, s.ClosingAmount, s.ExpectedAmount, s.Variance, s.TotalSales, s.Notes, s.ClosedAt,
	)
	if err != nil {
		return fmt.Errorf("update cash session: %w", err)
	}
	return nil
}

// AddMovement persiste un ingreso/egreso manual de la sesión.
func (r *CashSessionRepo) AddMovement(m *entity.CashMovement) error {
	query := `
		INSERT INTO cash_movements (id, session_id, type, amount, reason, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query, m.ID, m.SessionID, m.Type, m.Amount, m.Reason, m.CreatedBy, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert cash movement: %w", err)
	}
	return nil
}

// ListMovements lista los movimientos manuales de una sesión en orden de registro.
func (r *CashSessionRepo) ListMovements(sessionID string) ([]*entity.CashMovement, error) {
	query := `
		SELECT id, session_id, type, amount, reason, created_by, created_at
		FROM cash_movements WHERE session_id = $1 ORDER BY created_at ASC, id ASC`
	rows, err := r.q.Query(context.Background(), query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list cash movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.CashMovement
	for rows.Next() {
		var m entity.CashMovement
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Type, &m.Amount, &m.Reason, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cash movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// ListByTenant lista sesiones del tenant, más recientes primero.
func (r *CashSessionRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.CashSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM cash_sessions WHERE tenant_id = $1 ORDER BY opened_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list cash sessions: %w", err)
	}
	defer rows.Close()
	var list []*entity.CashSession
	for rows.Next() {
		var s entity.CashSession
		if err := scanSession(rows, &s); err != nil {
			return nil, err
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *CashSessionRepo) getOne(query, tenantID, id string) (*entity.CashSession, error) {
	var s entity.CashSession
	err := scanSession(r.q.QueryRow(context.Background(), query, tenantID, id), &s)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cash session: %w", err)
	}
	return &s, nil
}

func scanSession(row pgx.Row, s *entity.CashSession) error {
	return row.Scan(
		&s.ID, &s.TenantID, &s.RegisterID, &s.OpenedBy, &s.Status,
		&s.OpeningAmount, &s.ClosingAmount, &s.ExpectedAmount, &s.Variance, &s.TotalSales,
		&s.Notes, &s.OpenedAt, &s.ClosedAt,
	)
}
