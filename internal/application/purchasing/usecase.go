package purchasing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tiendix/retail-api/internal/application/auth"
	"github.com/tiendix/retail-api/internal/application/dto"
	"github.com/tiendix/retail-api/internal/application/ledger"
	"github.com/tiendix/retail-api/internal/domain"
	"github.com/tiendix/retail-api/internal/domain/entity"
	"github.com/tiendix/retail-api/internal/domain/money"
	"github.com/tiendix/retail-api/internal/domain/repository"
	"github.com/tiendix/retail-api/pkg/logger"
)

// UseCase maneja órdenes de compra y sus recepciones. La cadena de estados es
// PENDIENTE → ENVIADA → CONFIRMADA → EN_RECEPCION → PARCIAL | COMPLETADA; cada
// recepción publica COMPRA_ENTRADA por las unidades aceptadas, en la misma
// transacción que actualiza la orden.
type UseCase struct {
	txRunner      ledger.TxRunner
	engine        *ledger.Engine
	orderRepo     repository.PurchaseOrderRepository
	receiptRepo   repository.GoodsReceiptRepository
	supplierRepo  repository.SupplierRepository
	warehouseRepo repository.WarehouseRepository
	productRepo   repository.ProductRepository
	tenantRepo    repository.TenantRepository
	log           *logger.Logger
}

func NewUseCase(
	txRunner ledger.TxRunner,
	engine *ledger.Engine,
	orderRepo repository.PurchaseOrderRepository,
	receiptRepo repository.GoodsReceiptRepository,
	supplierRepo repository.SupplierRepository,
	warehouseRepo repository.WarehouseRepository,
	productRepo repository.ProductRepository,
	tenantRepo repository.TenantRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		engine:        engine,
		orderRepo:     orderRepo,
		receiptRepo:   receiptRepo,
		supplierRepo:  supplierRepo,
		warehouseRepo: warehouseRepo,
		productRepo:   productRepo,
		tenantRepo:    tenantRepo,
		log:           log,
	}
}

// CreateOrder registra una orden PENDIENTE. Solo admin y bodeguero.
func (uc *UseCase) CreateOrder(ctx context.Context, ident auth.Identity, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if err := ident.RequireTenantWrite(); err != nil {
		return nil, err
	}
	if !ident.HasRole(entity.RoleAdmin, entity.RoleBodeguero) {
		return nil, domain.ErrForbidden
	}
	if req.SupplierID == "" || req.WarehouseID == "" || len(req.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}

	supplier, err := uc.supplierRepo.GetByID(ident.TenantID, req.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	wh, err := uc.warehouseRepo.GetByID(ident.TenantID, req.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	tenant, err := uc.tenantRepo.GetByID(ident.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	orderID := uuid.New().String()
	subtotal := decimal.Zero
	discount := decimal.Zero
	lines := make([]entity.PurchaseOrderLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		if l.ProductID == "" || !l.Quantity.GreaterThan(decimal.Zero) || l.UnitPrice.IsNegative() || l.Discount.IsNegative() {
			return nil, fmt.Errorf("%w: renglón de producto %s", domain.ErrInvalidInput, l.ProductID)
		}
		product, err := uc.productRepo.GetByID(ident.TenantID, l.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, l.ProductID)
		}
		lineSubtotal := money.Round(l.Quantity.Mul(l.UnitPrice).Sub(l.Discount))
		if lineSubtotal.IsNegative() {
			return nil, fmt.Errorf("%w: descuento mayor al renglón (producto %s)", domain.ErrInvalidInput, l.ProductID)
		}
		subtotal = subtotal.Add(lineSubtotal)
		discount = discount.Add(l.Discount)
		lines = append(lines, entity.PurchaseOrderLine{
			ID:               uuid.New().String(),
			OrderID:          orderID,
			ProductID:        l.ProductID,
			QuantityOrdered:  l.Quantity,
			QuantityReceived: decimal.Zero,
			UnitPrice:        l.UnitPrice,
			Discount:         l.Discount,
			Subtotal:         lineSubtotal,
		})
	}

	subtotal = money.Round(subtotal)
	tax := money.ApplyRate(subtotal, tenant.TaxRate)
	order := &entity.PurchaseOrder{
		ID:          orderID,
		TenantID:    ident.TenantID,
		Code:        newOrderCode(),
		SupplierID:  req.SupplierID,
		WarehouseID: req.WarehouseID,
		Status:      entity.OrderPendiente,
		Subtotal:    subtotal,
		Discount:    money.Round(discount),
		Tax:         tax,
		Total:       subtotal.Add(tax),
		Notes:       req.Notes,
		CreatedBy:   ident.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
		Lines:       lines,
	}
	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", order.ID).Str("code", order.Code).Msg("orden de compra creada")
	return toOrderResponse(order), nil
}

// Send marca la orden como ENVIADA al proveedor.
func (uc *UseCase) Send(ctx context.Context, ident auth.Identity, orderID string) (*dto.OrderResponse, error) {
	return uc.transition(ctx, ident, orderID, entity.OrderPendiente, entity.OrderEnviada)
}

// Confirm marca la orden como CONFIRMADA por el proveedor; desde acá acepta recepciones.
func (uc *UseCase) Confirm(ctx context.Context, ident auth.Identity, orderID string) (*dto.OrderResponse, error) {
	return uc.transition(ctx, ident, orderID, entity.OrderEnviada, entity.OrderConfirmada)
}

// Cancel cancela una orden no terminal. No revierte recepciones ya aplicadas:
// lo recibido queda en el kardex.
func (uc *UseCase) Cancel(ctx context.Context, ident auth.Identity, orderID string) (*dto.OrderResponse, error) {
	if err := ident.RequireTenantWrite(); err != nil {
		return nil, err
	}
	if !ident.HasRole(entity.RoleAdmin, entity.RoleBodeguero) {
		return nil, domain.ErrForbidden
	}
	var out *dto.OrderResponse
	err := uc.txRunner.Run(ctx, func(r ledger.Repos) error {
		order, err := r.Orders.GetByIDForUpdate(ident.TenantID, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status.Terminal() {
			return fmt.Errorf("%w: orden %s", domain.ErrInvalidTransition, string(order.Status))
		}
		order.Status = entity.OrderCancelada
		order.UpdatedAt = time.Now()
		if err := r.Orders.Update(order); err != nil {
			return err
		}
		out = toOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Receive registra una recepción parcial o total. Por cada renglón valida que
// lo aceptado no supere lo pendiente (ErrOverReceipt), publica COMPRA_ENTRADA
// y recalcula el estado de la orden: COMPLETADA si todos los renglones quedaron
// cubiertos, PARCIAL si algo entró, EN_RECEPCION si esta recepción fue solo rechazos.
func (uc *UseCase) Receive(ctx context.Context, ident auth.Identity, orderID string, req dto.ReceiveRequest) (*dto.ReceiptResponse, error) {
	if err := ident.RequireTenantWrite(); err != nil {
		return nil, err
	}
	if !ident.HasRole(entity.RoleAdmin, entity.RoleBodeguero) {
		return nil, domain.ErrForbidden
	}
	if len(req.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}

	var out *dto.ReceiptResponse
	now := time.Now()
	err := uc.txRunner.Run(ctx, func(r ledger.Repos) error {
		order, err := r.Orders.GetByIDForUpdate(ident.TenantID, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.Status.Receivable() {
			return fmt.Errorf("%w: orden %s", domain.ErrInvalidTransition, string(order.Status))
		}

		byLineID := make(map[string]*entity.PurchaseOrderLine, len(order.Lines))
		for i := range order.Lines {
			byLineID[order.Lines[i].ID] = &order.Lines[i]
		}

		receiptID := uuid.New().String()
		receiptLines := make([]entity.GoodsReceiptLine, 0, len(req.Lines))
		for _, rl := range req.Lines {
			line, ok := byLineID[rl.OrderLineID]
			if !ok {
				return fmt.Errorf("%w: renglón %s", domain.ErrNotFound, rl.OrderLineID)
			}
			if rl.QuantityAccepted.IsNegative() || rl.QuantityRejected.IsNegative() {
				return domain.ErrInvalidInput
			}
			if rl.QuantityAccepted.IsZero() && rl.QuantityRejected.IsZero() {
				return domain.ErrInvalidInput
			}
			if rl.QuantityRejected.GreaterThan(decimal.Zero) && rl.RejectReason == "" {
				return fmt.Errorf("%w: rechazo sin motivo (renglón %s)", domain.ErrInvalidInput, rl.OrderLineID)
			}
			if rl.QuantityAccepted.GreaterThan(line.Pending()) {
				return fmt.Errorf("%w: renglón %s", domain.ErrOverReceipt, rl.OrderLineID)
			}

			if rl.QuantityAccepted.GreaterThan(decimal.Zero) {
				product, err := r.Products.GetByID(ident.TenantID, line.ProductID)
				if err != nil {
					return err
				}
				if product == nil {
					return fmt.Errorf("%w: producto %s", domain.ErrNotFound, line.ProductID)
				}
				_, err = uc.engine.PostMovementInTx(r.Movements, r.Stock, product, order.WarehouseID,
					entity.MovementPurchaseIn, rl.QuantityAccepted, "orden: "+order.Code, ident.UserID, now)
				if err != nil {
					return err
				}
				line.QuantityReceived = line.QuantityReceived.Add(rl.QuantityAccepted)
				if err := r.Orders.UpdateLine(line); err != nil {
					return err
				}
			}

			receiptLines = append(receiptLines, entity.GoodsReceiptLine{
				ID:               uuid.New().String(),
				ReceiptID:        receiptID,
				OrderLineID:      line.ID,
				ProductID:        line.ProductID,
				QuantityAccepted: rl.QuantityAccepted,
				QuantityRejected: rl.QuantityRejected,
				RejectReason:     rl.RejectReason,
			})
		}

		all, any := true, false
		for _, l := range order.Lines {
			if l.FullyReceived() {
				any = true
			} else {
				all = false
				if l.QuantityReceived.GreaterThan(decimal.Zero) {
					any = true
				}
			}
		}
		switch {
		case all:
			order.Status = entity.OrderCompletada
		case any:
			order.Status = entity.OrderParcial
		default:
			order.Status = entity.OrderEnRecepcion
		}
		order.UpdatedAt = now
		if err := r.Orders.Update(order); err != nil {
			return err
		}

		receipt := &entity.GoodsReceipt{
			ID:          receiptID,
			TenantID:    ident.TenantID,
			OrderID:     order.ID,
			WarehouseID: order.WarehouseID,
			Complete:    order.Status == entity.OrderCompletada,
			Notes:       req.Notes,
			ReceivedBy:  ident.UserID,
			CreatedAt:   now,
			Lines:       receiptLines,
		}
		if err := r.Receipts.Create(receipt); err != nil {
			return err
		}
		out = &dto.ReceiptResponse{
			ID:        receipt.ID,
			OrderID:   receipt.OrderID,
			Complete:  receipt.Complete,
			CreatedAt: receipt.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", orderID).Bool("complete", out.Complete).Msg("recepción registrada")
	return out, nil
}

// GetOrder devuelve una orden del tenant con sus renglones.
func (uc *UseCase) GetOrder(ctx context.Context, ident auth.Identity, orderID string) (*dto.OrderResponse, error) {
	if err := ident.RequireTenantRead(); err != nil {
		return nil, err
	}
	order, err := uc.orderRepo.GetByID(ident.TenantID, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return toOrderResponse(order), nil
}

// ListOrders devuelve órdenes del tenant, opcionalmente por estado.
func (uc *UseCase) ListOrders(ctx context.Context, ident auth.Identity, status string, page dto.PageRequest) ([]*dto.OrderResponse, error) {
	if err := ident.RequireTenantRead(); err != nil {
		return nil, err
	}
	page.DefaultPage()
	orders, err := uc.orderRepo.ListByTenant(ident.TenantID, entity.PurchaseOrderStatus(status), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out, nil
}

// ListReceipts devuelve las recepciones registradas de una orden.
func (uc *UseCase) ListReceipts(ctx context.Context, ident auth.Identity, orderID string) ([]*dto.ReceiptResponse, error) {
	if err := ident.RequireTenantRead(); err != nil {
		return nil, err
	}
	order, err := uc.orderRepo.GetByID(ident.TenantID, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	receipts, err := uc.receiptRepo.ListByOrder(order.ID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ReceiptResponse, 0, len(receipts))
	for _, rc := range receipts {
		out = append(out, &dto.ReceiptResponse{
			ID:        rc.ID,
			OrderID:   rc.OrderID,
			Complete:  rc.Complete,
			CreatedAt: rc.CreatedAt,
		})
	}
	return out, nil
}

func (uc *UseCase) transition(ctx context.Context, ident auth.Identity, orderID string, from, to entity.PurchaseOrderStatus) (*dto.OrderResponse, error) {
	if err := ident.RequireTenantWrite(); err != nil {
		return nil, err
	}
	if !ident.HasRole(entity.RoleAdmin, entity.RoleBodeguero) {
		return nil, domain.ErrForbidden
	}
	var out *dto.OrderResponse
	err := uc.txRunner.Run(ctx, func(r ledger.Repos) error {
		order, err := r.Orders.GetByIDForUpdate(ident.TenantID, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != from {
			return fmt.Errorf("%w: orden %s", domain.ErrInvalidTransition, string(order.Status))
		}
		order.Status = to
		order.UpdatedAt = time.Now()
		if err := r.Orders.Update(order); err != nil {
			return err
		}
		out = toOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func newOrderCode() string {
	return "OC-" + strings.ToUpper(uuid.New().String()[:8])
}

func toOrderResponse(o *entity.PurchaseOrder) *dto.OrderResponse {
	lines := make([]dto.OrderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, dto.OrderLineResponse{
			ID:               l.ID,
			ProductID:        l.ProductID,
			QuantityOrdered:  l.QuantityOrdered,
			QuantityReceived: l.QuantityReceived,
			UnitPrice:        l.UnitPrice,
			Discount:         l.Discount,
			Subtotal:         l.Subtotal,
		})
	}
	return &dto.OrderResponse{
		ID:          o.ID,
		Code:        o.Code,
		SupplierID:  o.SupplierID,
		WarehouseID: o.WarehouseID,
		Status:      string(o.Status),
		Subtotal:    o.Subtotal,
		Discount:    o.Discount,
		Tax:         o.Tax,
		Total:       o.Total,
		Lines:       lines,
		CreatedAt:   o.CreatedAt,
	}
}
