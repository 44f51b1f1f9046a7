package ledger

import (
	"context"

	"github.com/tiendix/retail-api/internal/domain/repository"
)

// Repos agrupa los repositorios atados a una misma transacción. Los motores
// reciben este paquete dentro del callback de TxRunner y comparten así un solo
// límite transaccional (todas las escrituras se aplican o ninguna).
type Repos struct {
	Movements   repository.LedgerMovementRepository
	Stock       repository.StockRepository
	Products    repository.ProductRepository
	Sales       repository.SaleRepository
	Orders      repository.PurchaseOrderRepository
	Receipts    repository.GoodsReceiptRepository
	Transfers   repository.TransferRepository
	CreditNotes repository.CreditNoteRepository
	Sessions    repository.CashSessionRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el ledger y los
// motores que publican en él.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
