package catalog

import (
	"context"
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

// UseCase administra el catálogo del tenant: productos y almacenes.
// El SKU es único por tenant; la liquidación es una ventana temporal con
// porcentaje de descuento que el motor de ventas aplica al congelar precios.
type UseCase struct {
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	log           *logger.Logger
}

func NewUseCase(
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		log:           log,
	}
}

// CreateProduct da de alta un producto. ErrDuplicate si el SKU ya existe.
func (uc *UseCase) CreateProduct(ctx context.Context, ident auth.Identity, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := ident.RequireTenantWrite(); err != nil {
		return nil, err
	}
	if !ident.HasRole(entity.RoleAdmin, entity.RoleBodeguero) {
		return nil, domain.ErrForbidden
	}
	if req.SKU == "" || req.Name == "" || req.Price.IsNegative() || req.Cost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if err := validateLiquidation(req.LiquidationPct, req.LiquidationFrom, req.LiquidationTo); err != nil {
		return nil, err
	}

	existing, err := uc.productRepo.GetBySKU(ident.TenantID, req.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	controlStock := true
	if req.ControlStock != nil {
		controlStock = *req.ControlStock
	}
	now := time.Now()
	product := &entity.Product{
		ID:              uuid.New().String(),
		TenantID:        ident.TenantID,
		SKU:             req.SKU,
		Name:            req.Name,
		Description:     req.Description,
		Price:           money.Round(req.Price),
		Cost:            money.Round(req.Cost),
		ControlStock:    controlStock,
		LiquidationPct:  req.LiquidationPct,
		LiquidationFrom: req.LiquidationFrom,
		LiquidationTo:   req.LiquidationTo,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", product.ID).Str("sku", product.SKU).Msg("producto creado")
	return toProductResponse(product), nil
}

// UpdateProduct actualiza campos del producto; el SKU no cambia.
func (uc *UseCase) UpdateProduct(ctx context.Context, ident auth.Identity, productID string, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := ident.RequireTenantWrite(); err != nil {
		return nil, err
	}
	if !ident.HasRole(entity.RoleAdmin, entity.RoleBodeguero) {
		return nil, domain.ErrForbidden
	}
	product, err := uc.productRepo.GetByID(ident.TenantID, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = money.Round(*req.Price)
	}
	if req.Cost != nil {
		if req.Cost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Cost = money.Round(*req.Cost)
	}
	if req.ControlStock != nil {
		product.ControlStock = *req.ControlStock
	}
	if req.LiquidationPct != nil || req.LiquidationFrom != nil || req.LiquidationTo != nil {
		if err := validateLiquidation(req.LiquidationPct, req.LiquidationFrom, req.LiquidationTo); err != nil {
			return nil, err
		}
		product.LiquidationPct = req.LiquidationPct
		product.LiquidationFrom = req.LiquidationFrom
		product.LiquidationTo = req.LiquidationTo
	}
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetProduct devuelve un producto del tenant.
func (uc *UseCase) GetProduct(ctx context.Context, ident auth.Identity, productID string) (*dto.ProductResponse, error) {
	if err := ident.RequireTenantRead(); err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(ident.TenantID, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// ListProducts devuelve el catálogo paginado. Accesible para storefront.
func (uc *UseCase) ListProducts(ctx context.Context, ident auth.Identity, page dto.PageRequest) ([]*dto.ProductResponse, error) {
	if err := ident.RequireTenantRead(); err != nil {
		return nil, err
	}
	page.DefaultPage()
	products, err := uc.productRepo.ListByTenant(ident.TenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// DeleteProduct elimina un producto del catálogo. El kardex conserva sus
// movimientos históricos.
func (uc *UseCase) DeleteProduct(ctx context.Context, ident auth.Identity, productID string) error {
	if err := ident.RequireTenantWrite(); err != nil {
		return err
	}
	if !ident.HasRole(entity.RoleAdmin) {
		return domain.ErrForbidden
	}
	product, err := uc.productRepo.GetByID(ident.TenantID, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.productRepo.Delete(ident.TenantID, productID)
}

// CreateWarehouse da de alta un almacén.
func (uc *UseCase) CreateWarehouse(ctx context.Context, ident auth.Identity, req dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if err := ident.RequireTenantWrite(); err != nil {
		return nil, err
	}
	if !ident.HasRole(entity.RoleAdmin) {
		return nil, domain.ErrForbidden
	}
	if req.Name == "" || req.Capacity < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	wh := &entity.Warehouse{
		ID:        uuid.New().String(),
		TenantID:  ident.TenantID,
		Name:      req.Name,
		Address:   req.Address,
		Capacity:  req.Capacity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.warehouseRepo.Create(wh); err != nil {
		return nil, err
	}
	return toWarehouseResponse(wh), nil
}

// ListWarehouses devuelve los almacenes del tenant.
func (uc *UseCase) ListWarehouses(ctx context.Context, ident auth.Identity, page dto.PageRequest) ([]*dto.WarehouseResponse, error) {
	if err := ident.RequireTenantRead(); err != nil {
		return nil, err
	}
	page.DefaultPage()
	warehouses, err := uc.warehouseRepo.ListByTenant(ident.TenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.WarehouseResponse, 0, len(warehouses))
	for _, w := range warehouses {
		out = append(out, toWarehouseResponse(w))
	}
	return out, nil
}

var hundred = decimal.NewFromInt(100)

func validateLiquidation(pct *decimal.Decimal, from, to *time.Time) error {
	if pct == nil {
		if from != nil || to != nil {
			return domain.ErrInvalidInput
		}
		return nil
	}
	if from == nil || to == nil || !from.Before(*to) {
		return domain.ErrInvalidInput
	}
	if pct.IsNegative() || pct.GreaterThan(hundred) {
		return domain.ErrInvalidInput
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:              p.ID,
		SKU:             p.SKU,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		Cost:            p.Cost,
		ControlStock:    p.ControlStock,
		LiquidationPct:  p.LiquidationPct,
		LiquidationFrom: p.LiquidationFrom,
		LiquidationTo:   p.LiquidationTo,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	return &dto.WarehouseResponse{
		ID:        w.ID,
		Name:      w.Name,
		Address:   w.Address,
		Capacity:  w.Capacity,
		CreatedAt: w.CreatedAt,
	}
}
