package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tiendix/retail-api/internal/application/auth"
	"github.com/tiendix/retail-api/internal/domain"
	"github.com/tiendix/retail-api/internal/domain/entity"
	"github.com/tiendix/retail-api/internal/domain/repository"
)

// Engine es el único componente autorizado a mutar stock. Cada cambio queda
// en el kardex con cantidades antes/después; StockLevel es siempre la suma
// corrida de los movimientos de su llave (producto, almacén).
type Engine struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	stockRepo     repository.StockRepository
	movementRepo  repository.LedgerMovementRepository
}

// NewEngine construye el ledger.
func NewEngine(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	stockRepo repository.StockRepository,
	movementRepo repository.LedgerMovementRepository,
) *Engine {
	return &Engine{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		stockRepo:     stockRepo,
		movementRepo:  movementRepo,
	}
}

// PostMovementInTx publica un movimiento usando los repositorios de la
// transacción del caller (misma tx que la venta/orden/traslado que lo origina).
// Bloquea la fila de stock (SELECT FOR UPDATE), calcula antes/después y
// rechaza con ErrInsufficientStock si el resultado sería negativo y el
// producto controla inventario; el caller hace rollback de todo.
func (e *Engine) PostMovementInTx(
	movs repository.LedgerMovementRepository,
	stocks repository.StockRepository,
	product *entity.Product,
	warehouseID string,
	movType entity.MovementType,
	quantity decimal.Decimal,
	referenceDoc, actorID string,
	now time.Time,
) (*entity.LedgerMovement, error) {
	if product == nil || warehouseID == "" || !movType.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if !quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	stock, err := stocks.GetForUpdate(product.TenantID, product.ID, warehouseID)
	if err != nil {
		return nil, err
	}

	delta := quantity
	if !movType.Inbound() {
		delta = quantity.Neg()
	}
	before := stock.Quantity
	after := before.Add(delta)
	if after.IsNegative() && product.ControlStock {
		return nil, domain.ErrInsufficientStock
	}

	stock.TenantID = product.TenantID
	stock.Quantity = after
	stock.UpdatedAt = now
	if err := stocks.Upsert(stock); err != nil {
		return nil, err
	}

	mov := &entity.LedgerMovement{
		ID:           uuid.New().String(),
		TenantID:     product.TenantID,
		ProductID:    product.ID,
		WarehouseID:  warehouseID,
		Type:         movType,
		Quantity:     delta,
		StockBefore:  before,
		StockAfter:   after,
		ReferenceDoc: referenceDoc,
		CreatedBy:    actorID,
		CreatedAt:    now,
	}
	if err := movs.Create(mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// AdjustmentInput entrada para un ajuste manual de inventario.
type AdjustmentInput struct {
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal // positivo entrada, negativo salida
	Reason      string
}

// RegisterAdjustment publica un ajuste manual (AJUSTE_ENTRADA o AJUSTE_SALIDA)
// en su propia transacción. Solo admin y bodeguero.
func (e *Engine) RegisterAdjustment(ctx context.Context, ident auth.Identity, in AdjustmentInput) error {
	if err := ident.RequireTenantWrite(); err != nil {
		return err
	}
	if !ident.HasRole(entity.RoleAdmin, entity.RoleBodeguero) {
		return domain.ErrForbidden
	}
	if in.ProductID == "" || in.WarehouseID == "" || in.Quantity.IsZero() {
		return domain.ErrInvalidInput
	}

	product, err := e.productRepo.GetByID(ident.TenantID, in.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	wh, err := e.warehouseRepo.GetByID(ident.TenantID, in.WarehouseID)
	if err != nil {
		return err
	}
	if wh == nil {
		return domain.ErrNotFound
	}

	movType := entity.MovementAdjustIn
	qty := in.Quantity
	if qty.IsNegative() {
		movType = entity.MovementAdjustOut
		qty = qty.Neg()
	}
	now := time.Now()
	return e.txRunner.Run(ctx, func(r Repos) error {
		_, err := e.PostMovementInTx(r.Movements, r.Stock, product, in.WarehouseID, movType, qty, "ajuste: "+in.Reason, ident.UserID, now)
		return err
	})
}

// CurrentStock devuelve la cantidad en mano del producto en un almacén.
func (e *Engine) CurrentStock(ident auth.Identity, productID, warehouseID string) (decimal.Decimal, error) {
	if err := ident.RequireTenantRead(); err != nil {
		return decimal.Zero, err
	}
	stock, err := e.stockRepo.Get(ident.TenantID, productID, warehouseID)
	if err != nil {
		return decimal.Zero, err
	}
	return stock.Quantity, nil
}
