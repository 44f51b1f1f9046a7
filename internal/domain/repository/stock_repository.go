package repository

import "github.com/tiendix/retail-api/internal/domain/entity"

// StockRepository define el puerto para consultar/actualizar stock por
// producto+almacén. Solo el ledger lo escribe, siempre dentro de transacciones.
type StockRepository interface {
	Get(tenantID, productID, warehouseID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE) y evita el
	// lost update entre dos ventas concurrentes del mismo producto.
	GetForUpdate(tenantID, productID, warehouseID string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
}
