package repository

import "github.com/tiendix/retail-api/internal/domain/entity"

// CashSessionRepository define el puerto de persistencia para sesiones de caja.
type CashSessionRepository interface {
	Create(session *entity.CashSession) error
	GetByID(tenantID, id string) (*entity.CashSession, error)
	// GetByIDForUpdate bloquea la sesión para serializar el cierre.
	GetByIDForUpdate(tenantID, id string) (*entity.CashSession, error)
	GetOpenByRegister(tenantID, registerID string) (*entity.CashSession, error)
	Update(session *entity.CashSession) error
	AddMovement(movement *entity.CashMovement) error
	ListMovements(sessionID string) ([]*entity.CashMovement, error)
	ListByTenant(tenantID string, limit, offset int) ([]*entity.CashSession, error)
}
