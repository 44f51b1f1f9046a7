package platform

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tiendix/retail-api/internal/application/auth"
	"github.com/tiendix/retail-api/internal/application/dto"
	"github.com/tiendix/retail-api/internal/domain"
	"github.com/tiendix/retail-api/internal/domain/entity"
	"github.com/tiendix/retail-api/internal/domain/repository"
	"github.com/tiendix/retail-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// UseCase implementa la consola de plataforma: aprovisionamiento, suspensión
// y reactivación de tenants. Todas las operaciones exigen scope platform.
type UseCase struct {
	tenantRepo     repository.TenantRepository
	userRepo       repository.UserRepository
	defaultTaxRate decimal.Decimal
	log            *logger.Logger
}

func NewUseCase(
	tenantRepo repository.TenantRepository,
	userRepo repository.UserRepository,
	defaultTaxRate decimal.Decimal,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		tenantRepo:     tenantRepo,
		userRepo:       userRepo,
		defaultTaxRate: defaultTaxRate,
		log:            log,
	}
}

// Provision crea un tenant ACTIVA junto con su primer usuario admin.
func (uc *UseCase) Provision(ctx context.Context, ident auth.Identity, req dto.ProvisionTenantRequest) (*dto.TenantResponse, error) {
	if err := requirePlatform(ident); err != nil {
		return nil, err
	}
	if req.Name == "" || req.AdminEmail == "" || req.AdminPassword == "" {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.userRepo.GetByEmail(req.AdminEmail)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	taxRate := uc.defaultTaxRate
	if req.TaxRate != nil {
		if req.TaxRate.IsNegative() || req.TaxRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return nil, domain.ErrInvalidInput
		}
		taxRate = *req.TaxRate
	}

	now := time.Now()
	tenant := &entity.Tenant{
		ID:        uuid.New().String(),
		Name:      req.Name,
		TaxID:     req.TaxID,
		Email:     req.Email,
		Status:    entity.TenantActiva,
		TaxRate:   taxRate,
		MaxUsers:  req.MaxUsers,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.tenantRepo.Create(tenant); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	admin := &entity.User{
		ID:           uuid.New().String(),
		TenantID:     tenant.ID,
		Email:        req.AdminEmail,
		PasswordHash: string(hash),
		Name:         req.AdminName,
		Role:         entity.RoleAdmin,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(admin); err != nil {
		return nil, err
	}

	uc.log.Info().Str("tenant_id", tenant.ID).Str("name", tenant.Name).Msg("tenant aprovisionado")
	return toTenantResponse(tenant), nil
}

// Suspend pasa el tenant a SUSPENDIDA: las escrituras de su personal quedan
// rechazadas, las lecturas siguen disponibles.
func (uc *UseCase) Suspend(ctx context.Context, ident auth.Identity, tenantID string) (*dto.TenantResponse, error) {
	return uc.setStatus(ident, tenantID, entity.TenantSuspendida)
}

// Reactivate devuelve el tenant a ACTIVA.
func (uc *UseCase) Reactivate(ctx context.Context, ident auth.Identity, tenantID string) (*dto.TenantResponse, error) {
	return uc.setStatus(ident, tenantID, entity.TenantActiva)
}

// Get devuelve un tenant por ID.
func (uc *UseCase) Get(ctx context.Context, ident auth.Identity, tenantID string) (*dto.TenantResponse, error) {
	if err := requirePlatform(ident); err != nil {
		return nil, err
	}
	tenant, err := uc.tenantRepo.GetByID(tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrNotFound
	}
	return toTenantResponse(tenant), nil
}

// List devuelve los tenants de la plataforma.
func (uc *UseCase) List(ctx context.Context, ident auth.Identity, page dto.PageRequest) ([]*dto.TenantResponse, error) {
	if err := requirePlatform(ident); err != nil {
		return nil, err
	}
	page.DefaultPage()
	tenants, err := uc.tenantRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TenantResponse, 0, len(tenants))
	for _, t := range tenants {
		out = append(out, toTenantResponse(t))
	}
	return out, nil
}

func (uc *UseCase) setStatus(ident auth.Identity, tenantID string, status entity.TenantStatus) (*dto.TenantResponse, error) {
	if err := requirePlatform(ident); err != nil {
		return nil, err
	}
	tenant, err := uc.tenantRepo.GetByID(tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrNotFound
	}
	tenant.Status = status
	tenant.UpdatedAt = time.Now()
	if err := uc.tenantRepo.Update(tenant); err != nil {
		return nil, err
	}
	uc.log.Info().Str("tenant_id", tenant.ID).Str("status", string(status)).Msg("estado de tenant actualizado")
	return toTenantResponse(tenant), nil
}

func requirePlatform(ident auth.Identity) error {
	if !ident.IsPlatform() || !ident.HasRole(entity.RoleSuperadmin) {
		return domain.ErrForbidden
	}
	return nil
}

func toTenantResponse(t *entity.Tenant) *dto.TenantResponse {
	return &dto.TenantResponse{
		ID:              t.ID,
		Name:            t.Name,
		TaxID:           t.TaxID,
		Email:           t.Email,
		Status:          string(t.Status),
		SubscriptionRef: t.SubscriptionRef,
		TaxRate:         t.TaxRate,
		MaxUsers:        t.MaxUsers,
		CreatedAt:       t.CreatedAt,
	}
}
