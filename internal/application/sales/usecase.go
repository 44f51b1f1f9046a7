package sales

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

// UseCase implementa el flujo POS de dos fases: la venta nace PENDIENTE_PAGO
// con precios congelados del catálogo y recién al capturar el pago descuenta
// stock, todo dentro de una sola transacción.
type UseCase struct {
	txRunner    ledger.TxRunner
	engine      *ledger.Engine
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	sessionRepo repository.CashSessionRepository
	tenantRepo  repository.TenantRepository
	log         *logger.Logger
}

func NewUseCase(
	txRunner ledger.TxRunner,
	engine *ledger.Engine,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	sessionRepo repository.CashSessionRepository,
	tenantRepo repository.TenantRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		engine:      engine,
		saleRepo:    saleRepo,
		productRepo: productRepo,
		sessionRepo: sessionRepo,
		tenantRepo:  tenantRepo,
		log:         log,
	}
}

// Create registra una venta PENDIENTE_PAGO. Congela el precio unitario del
// catálogo al momento de la creación (liquidación incluida) y calcula los
// totales con la tasa de impuesto del tenant. No toca stock.
func (uc *UseCase) Create(ctx context.Context, ident auth.Identity, req dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if err := ident.RequireTenantWrite(); err != nil {
		return nil, err
	}
	if req.WarehouseID == "" || len(req.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}

	if req.SessionID != nil {
		session, err := uc.sessionRepo.GetByID(ident.TenantID, *req.SessionID)
		if err != nil {
			return nil, err
		}
		if session == nil {
			return nil, domain.ErrNotFound
		}
		if session.Status != entity.SessionAbierta {
			return nil, domain.ErrSessionAlreadyClosed
		}
	}

	tenant, err := uc.tenantRepo.GetByID(ident.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	saleID := uuid.New().String()
	subtotal := decimal.Zero
	discount := decimal.Zero
	lines := make([]entity.SaleLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		if l.ProductID == "" || !l.Quantity.GreaterThan(decimal.Zero) || l.Discount.IsNegative() {
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
		if l.UnitPrice != nil {
			// Override de precio: solo admin puede pisar el catálogo.
			if !ident.HasRole(entity.RoleAdmin) {
				return nil, domain.ErrForbidden
			}
			if l.UnitPrice.IsNegative() {
				return nil, domain.ErrInvalidInput
			}
			unitPrice = *l.UnitPrice
		}

		lineSubtotal := money.Round(l.Quantity.Mul(unitPrice).Sub(l.Discount))
		if lineSubtotal.IsNegative() {
			return nil, fmt.Errorf("%w: descuento mayor al renglón (producto %s)", domain.ErrInvalidInput, l.ProductID)
		}
		subtotal = subtotal.Add(lineSubtotal)
		discount = discount.Add(l.Discount)
		lines = append(lines, entity.SaleLine{
			ID:        uuid.New().String(),
			SaleID:    saleID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: unitPrice,
			Discount:  l.Discount,
			Subtotal:  lineSubtotal,
		})
	}

	subtotal = money.Round(subtotal)
	tax := money.ApplyRate(subtotal, tenant.TaxRate)
	sale := &entity.Sale{
		ID:          saleID,
		TenantID:    ident.TenantID,
		Code:        newSaleCode(),
		SessionID:   req.SessionID,
		CustomerID:  req.CustomerID,
		WarehouseID: req.WarehouseID,
		Status:      entity.SalePendientePago,
		Subtotal:    subtotal,
		Discount:    money.Round(discount),
		Tax:         tax,
		Total:       subtotal.Add(tax),
		CreatedBy:   ident.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
		Lines:       lines,
	}
	if err := uc.saleRepo.Create(sale); err != nil {
		return nil, err
	}
	uc.log.Info().Str("sale_id", sale.ID).Str("code", sale.Code).Str("total", sale.Total.String()).Msg("venta creada")
	return toSaleResponse(sale), nil
}

// CapturePayment captura los pagos de una venta PENDIENTE_PAGO y descuenta el
// stock de cada renglón en la misma transacción. Si algún renglón no tiene
// stock suficiente, nada se aplica y la venta sigue PENDIENTE_PAGO.
func (uc *UseCase) CapturePayment(ctx context.Context, ident auth.Identity, saleID string, req dto.CapturePaymentRequest) (*dto.SaleResponse, error) {
	if err := ident.RequireTenantWrite(); err != nil {
		return nil, err
	}
	if len(req.Payments) == 0 {
		return nil, domain.ErrInvalidInput
	}
	paid := decimal.Zero
	for _, p := range req.Payments {
		method := entity.PaymentMethod(p.Method)
		if !method.Valid() || !p.Amount.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		paid = paid.Add(p.Amount)
	}
	paid = money.Round(paid)
	// El efectivo entregado solo determina el vuelto; la venta queda PAGADA
	// únicamente si la suma de pagos imputados cubre el total.
	received := money.Round(req.AmountReceived)
	if received.LessThan(paid) {
		received = paid
	}

	var out *dto.SaleResponse
	now := time.Now()
	err := uc.txRunner.Run(ctx, func(r ledger.Repos) error {
		sale, err := r.Sales.GetByIDForUpdate(ident.TenantID, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if sale.Status != entity.SalePendientePago {
			return fmt.Errorf("%w: venta %s", domain.ErrInvalidTransition, string(sale.Status))
		}
		if paid.LessThan(sale.Total) {
			return domain.ErrInsufficientPayment
		}

		for _, line := range sale.Lines {
			product, err := r.Products.GetByID(ident.TenantID, line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("%w: producto %s", domain.ErrNotFound, line.ProductID)
			}
			_, err = uc.engine.PostMovementInTx(r.Movements, r.Stock, product, sale.WarehouseID,
				entity.MovementSaleOut, line.Quantity, "venta: "+sale.Code, ident.UserID, now)
			if err != nil {
				return fmt.Errorf("%w (producto %s)", err, line.ProductID)
			}
		}

		for _, p := range req.Payments {
			if err := r.Sales.AddPayment(&entity.SalePayment{
				ID:        uuid.New().String(),
				SaleID:    sale.ID,
				Method:    entity.PaymentMethod(p.Method),
				Amount:    money.Round(p.Amount),
				Reference: p.Reference,
			}); err != nil {
				return err
			}
		}

		sale.Status = entity.SalePagada
		sale.AmountReceived = received
		sale.Change = received.Sub(sale.Total)
		sale.UpdatedAt = now
		if err := r.Sales.Update(sale); err != nil {
			return err
		}
		out = toSaleResponse(sale)
		out.Payments = req.Payments
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("sale_id", saleID).Str("change", out.Change.String()).Msg("pago capturado")
	return out, nil
}

// Cancel cancela una venta que todavía no fue pagada. Una venta PAGADA no se
// cancela: se revierte con nota de crédito.
func (uc *UseCase) Cancel(ctx context.Context, ident auth.Identity, saleID string) error {
	if err := ident.RequireTenantWrite(); err != nil {
		return err
	}
	return uc.txRunner.Run(ctx, func(r ledger.Repos) error {
		sale, err := r.Sales.GetByIDForUpdate(ident.TenantID, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if sale.Status != entity.SalePendientePago {
			return fmt.Errorf("%w: venta %s", domain.ErrInvalidTransition, string(sale.Status))
		}
		sale.Status = entity.SaleCancelada
		sale.UpdatedAt = time.Now()
		return r.Sales.Update(sale)
	})
}

// Get devuelve una venta del tenant con renglones y pagos.
func (uc *UseCase) Get(ctx context.Context, ident auth.Identity, saleID string) (*dto.SaleResponse, error) {
	if err := ident.RequireTenantRead(); err != nil {
		return nil, err
	}
	sale, err := uc.saleRepo.GetByID(ident.TenantID, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return toSaleResponse(sale), nil
}

// List devuelve ventas del tenant filtradas por estado y/o sesión.
func (uc *UseCase) List(ctx context.Context, ident auth.Identity, status, sessionID string, page dto.PageRequest) ([]*dto.SaleResponse, error) {
	if err := ident.RequireTenantRead(); err != nil {
		return nil, err
	}
	page.DefaultPage()
	ventas, err := uc.saleRepo.ListByTenant(ident.TenantID, repository.SaleFilters{
		Status:    entity.SaleStatus(status),
		SessionID: sessionID,
		Limit:     page.Limit,
		Offset:    page.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SaleResponse, 0, len(ventas))
	for _, s := range ventas {
		out = append(out, toSaleResponse(s))
	}
	return out, nil
}

func newSaleCode() string {
	return "V-" + strings.ToUpper(uuid.New().String()[:8])
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	lines := make([]dto.SaleLineResponse, 0, len(s.Lines))
	for _, l := range s.Lines {
		lines = append(lines, dto.SaleLineResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Discount:  l.Discount,
			Subtotal:  l.Subtotal,
		})
	}
	payments := make([]dto.PaymentRequest, 0, len(s.Payments))
	for _, p := range s.Payments {
		payments = append(payments, dto.PaymentRequest{
			Method:    string(p.Method),
			Amount:    p.Amount,
			Reference: p.Reference,
		})
	}
	return &dto.SaleResponse{
		ID:             s.ID,
		Code:           s.Code,
		SessionID:      s.SessionID,
		CustomerID:     s.CustomerID,
		WarehouseID:    s.WarehouseID,
		Status:         string(s.Status),
		Subtotal:       s.Subtotal,
		Discount:       s.Discount,
		Tax:            s.Tax,
		Total:          s.Total,
		AmountReceived: s.AmountReceived,
		Change:         s.Change,
		Lines:          lines,
		Payments:       payments,
		CreatedAt:      s.CreatedAt,
	}
}
