package storefront

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tiendix/retail-api/internal/application/auth"
	"github.com/tiendix/retail-api/internal/application/dto"
	"github.com/tiendix/retail-api/internal/domain"
	"github.com/tiendix/retail-api/internal/domain/entity"
	"github.com/tiendix/retail-api/internal/domain/money"
	"github.com/tiendix/retail-api/internal/domain/repository"
	"github.com/tiendix/retail-api/pkg/logger"
)

// UseCase implementa el autoservicio del cliente final: crear pedidos sobre
// el catálogo, consultarlos y cancelarlos mientras no estén en preparación.
// El pedido congela precios pero no mueve stock; el despacho posterior del
// personal es el que publica en el ledger.
type UseCase struct {
	orderRepo     repository.StorefrontOrderRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	tenantRepo    repository.TenantRepository
	log           *logger.Logger
}

func NewUseCase(
	orderRepo repository.StorefrontOrderRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	tenantRepo repository.TenantRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		tenantRepo:    tenantRepo,
		log:           log,
	}
}

// CreateOrder registra un pedido PENDIENTE del cliente autenticado. El precio
// unitario se congela del catálogo (liquidación incluida); sin overrides.
func (uc *UseCase) CreateOrder(ctx context.Context, ident auth.Identity, req dto.CreateStorefrontOrderRequest) (*dto.StorefrontOrderResponse, error) {
	if err := ident.RequireStorefrontWrite(); err != nil {
		return nil, err
	}
	if len(req.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}

	tenant, err := uc.tenantRepo.GetByID(ident.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrNotFound
	}

	warehouseID := req.WarehouseID
	if warehouseID == "" {
		// Sin almacén explícito se despacha desde el primero del tenant.
		warehouses, err := uc.warehouseRepo.ListByTenant(ident.TenantID, 1, 0)
		if err != nil {
			return nil, err
		}
		if len(warehouses) == 0 {
			return nil, fmt.Errorf("%w: el tenant no tiene almacenes", domain.ErrInvalidInput)
		}
		warehouseID = warehouses[0].ID
	} else {
		warehouse, err := uc.warehouseRepo.GetByID(ident.TenantID, warehouseID)
		if err != nil {
			return nil, err
		}
		if warehouse == nil {
			return nil, fmt.Errorf("%w: almacén %s", domain.ErrNotFound, warehouseID)
		}
	}

	now := time.Now()
	orderID := uuid.New().String()
	subtotal := decimal.Zero
	lines := make([]entity.StorefrontOrderLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		if l.ProductID == "" || !l.Quantity.GreaterThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: renglón de producto %s", domain.ErrInvalidInput, l.ProductID)
		}
		product, err := uc.productRepo.GetByID(ident.TenantID, l.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, l.ProductID)
		}

		unitPrice := product.Price
		if product.InLiquidation(now) {
			unitPrice = unitPrice.Sub(money.ApplyPercent(unitPrice, *product.LiquidationPct))
		}
		lineSubtotal := money.Round(l.Quantity.Mul(unitPrice))
		subtotal = subtotal.Add(lineSubtotal)
		lines = append(lines, entity.StorefrontOrderLine{
			ID:          uuid.New().String(),
			OrderID:     orderID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    l.Quantity,
			UnitPrice:   unitPrice,
			Subtotal:    lineSubtotal,
		})
	}

	subtotal = money.Round(subtotal)
	tax := money.ApplyRate(subtotal, tenant.TaxRate)
	order := &entity.StorefrontOrder{
		ID:              orderID,
		TenantID:        ident.TenantID,
		Code:            newOrderCode(),
		CustomerID:      ident.UserID,
		WarehouseID:     warehouseID,
		Status:          entity.PedidoPendiente,
		Subtotal:        subtotal,
		Tax:             tax,
		Total:           subtotal.Add(tax),
		ShippingAddress: req.ShippingAddress,
		Instructions:    req.Instructions,
		CreatedAt:       now,
		UpdatedAt:       now,
		Lines:           lines,
	}
	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", order.ID).Str("code", order.Code).Str("total", order.Total.String()).Msg("pedido de storefront creado")
	return toOrderResponse(order), nil
}

// GetOrder devuelve un pedido del cliente autenticado. Un pedido ajeno es
// NotFound, nunca Forbidden.
func (uc *UseCase) GetOrder(ctx context.Context, ident auth.Identity, orderID string) (*dto.StorefrontOrderResponse, error) {
	if err := ident.RequireTenantRead(); err != nil {
		return nil, err
	}
	order, err := uc.orderRepo.GetByIDAndCustomer(ident.TenantID, orderID, ident.UserID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return toOrderResponse(order), nil
}

// MyOrders lista los pedidos del cliente autenticado, más recientes primero.
func (uc *UseCase) MyOrders(ctx context.Context, ident auth.Identity, page dto.PageRequest) ([]*dto.StorefrontOrderResponse, error) {
	if err := ident.RequireTenantRead(); err != nil {
		return nil, err
	}
	page.DefaultPage()
	orders, err := uc.orderRepo.ListByCustomer(ident.TenantID, ident.UserID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.StorefrontOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out, nil
}

// CancelOrder cancela un pedido propio en PENDIENTE o CONFIRMADO.
func (uc *UseCase) CancelOrder(ctx context.Context, ident auth.Identity, orderID string) (*dto.StorefrontOrderResponse, error) {
	if err := ident.RequireStorefrontWrite(); err != nil {
		return nil, err
	}
	order, err := uc.orderRepo.GetByIDAndCustomer(ident.TenantID, orderID, ident.UserID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if !order.Status.CancellableByCustomer() {
		return nil, fmt.Errorf("%w: pedido %s", domain.ErrInvalidTransition, string(order.Status))
	}
	order.Status = entity.PedidoCancelado
	order.UpdatedAt = time.Now()
	if err := uc.orderRepo.Update(order); err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", order.ID).Msg("pedido de storefront cancelado")
	return toOrderResponse(order), nil
}

func newOrderCode() string {
	return "PED-" + strings.ToUpper(uuid.New().String()[:8])
}

func toOrderResponse(o *entity.StorefrontOrder) *dto.StorefrontOrderResponse {
	lines := make([]dto.StorefrontOrderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, dto.StorefrontOrderLineResponse{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Subtotal:    l.Subtotal,
		})
	}
	return &dto.StorefrontOrderResponse{
		ID:              o.ID,
		Code:            o.Code,
		Status:          string(o.Status),
		Subtotal:        o.Subtotal,
		Tax:             o.Tax,
		Total:           o.Total,
		ShippingAddress: o.ShippingAddress,
		Instructions:    o.Instructions,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		Lines:           lines,
	}
}
