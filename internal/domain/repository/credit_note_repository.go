package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tiendix/retail-api/internal/domain/entity"
)

// CreditNoteRepository define el puerto de persistencia para notas de crédito.
type CreditNoteRepository interface {
	// Create persiste cabecera y renglones. Las notas son inmutables: no hay Update.
	Create(note *entity.CreditNote) error
	GetByID(tenantID, id string) (*entity.CreditNote, error)
	ListBySale(saleID string) ([]*entity.CreditNote, error)
	// CreditedBySale devuelve la cantidad ya acreditada por renglón de venta,
	// insumo del chequeo OverRefund.
	CreditedBySale(saleID string) (map[string]decimal.Decimal, error)
	ListByTenant(tenantID string, limit, offset int) ([]*entity.CreditNote, error)
}
