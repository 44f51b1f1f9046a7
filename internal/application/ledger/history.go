package ledger

import (
	"iter"
	"time"

	"github.com/tiendix/retail-api/internal/application/auth"
	"github.com/tiendix/retail-api/internal/domain/entity"
)

// historyPageSize tamaño de página interno del iterador de kardex.
const historyPageSize = 200

// History devuelve la secuencia de movimientos de una llave (producto,
// almacén) ordenada ascendente por fecha de creación. La secuencia es
// perezosa (pagina contra el repositorio), finita y reiniciable: volver a
// iterar la misma Seq relee desde el principio.
func (e *Engine) History(ident auth.Identity, productID, warehouseID string, from, to *time.Time) iter.Seq2[*entity.LedgerMovement, error] {
	return func(yield func(*entity.LedgerMovement, error) bool) {
		if err := ident.RequireTenantRead(); err != nil {
			yield(nil, err)
			return
		}
		offset := 0
		for {
			page, err := e.movementRepo.ListByProductAndWarehouse(ident.TenantID, productID, warehouseID, from, to, historyPageSize, offset)
			if err != nil {
				yield(nil, err)
				return
			}
			for _, mov := range page {
				if !yield(mov, nil) {
					return
				}
			}
			if len(page) < historyPageSize {
				return
			}
			offset += historyPageSize
		}
	}
}
