package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tiendix/retail-api/internal/application/dto"
	"github.com/tiendix/retail-api/internal/domain"
	"github.com/tiendix/retail-api/internal/domain/entity"
	"github.com/tiendix/retail-api/internal/domain/repository"
	pkgjwt "github.com/tiendix/retail-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// TokenBlacklist es el puerto de revocación: un jti presente en la blacklist
// invalida el token aunque su firma y expiración sean correctas.
type TokenBlacklist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// UseCase resuelve credenciales a identidades y emite/revoca tokens.
// Todo motor consulta el resultado de Resolve antes de actuar.
type UseCase struct {
	userRepo     repository.UserRepository
	customerRepo repository.CustomerRepository
	tenantRepo   repository.TenantRepository
	blacklist    TokenBlacklist
	jwtCfg       JWTConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(
	userRepo repository.UserRepository,
	customerRepo repository.CustomerRepository,
	tenantRepo repository.TenantRepository,
	blacklist TokenBlacklist,
	jwtCfg JWTConfig,
) *UseCase {
	return &UseCase{
		userRepo:     userRepo,
		customerRepo: customerRepo,
		tenantRepo:   tenantRepo,
		blacklist:    blacklist,
		jwtCfg:       jwtCfg,
	}
}

// scopeForUser deriva el scope del usuario: sin tenant = plataforma.
func scopeForUser(u *entity.User) string {
	if u.TenantID == "" {
		return pkgjwt.ScopePlatform
	}
	return pkgjwt.ScopeTenant
}

// Login verifica email/password de personal (tenant o plataforma), genera JWT
// y retorna token + usuario.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := pkgjwt.Generate(uc.jwtCfg.Secret, user.ID, user.TenantID, user.Role, scopeForUser(user), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// LoginStorefront autentica a un cliente final del tenant y emite un token de
// scope storefront (solo lectura de catálogo y autoservicio).
func (uc *UseCase) LoginStorefront(ctx context.Context, tenantID string, in dto.LoginRequest) (*dto.LoginResponse, error) {
	customer, err := uc.customerRepo.GetByEmail(tenantID, in.Email)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.PasswordHash == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := pkgjwt.Generate(uc.jwtCfg.Secret, customer.ID, tenantID, "cliente", pkgjwt.ScopeStorefront, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token}, nil
}

// Resolve valida el bearer token y devuelve la identidad con su scope, rol y
// estado del tenant. Unauthorized si el token falta, expiró o fue revocado.
func (uc *UseCase) Resolve(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, domain.ErrUnauthorized
	}
	claims, err := pkgjwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return Identity{}, domain.ErrUnauthorized
	}
	if uc.blacklist != nil && claims.ID != "" {
		revoked, err := uc.blacklist.IsRevoked(ctx, claims.ID)
		if err != nil {
			return Identity{}, err
		}
		if revoked {
			return Identity{}, domain.ErrUnauthorized
		}
	}
	ident := Identity{
		UserID:   claims.UserID,
		TenantID: claims.TenantID,
		Role:     claims.Role,
		Scope:    Scope(claims.Scope),
	}
	if ident.TenantID != "" {
		tenant, err := uc.tenantRepo.GetByID(ident.TenantID)
		if err != nil {
			return Identity{}, err
		}
		if tenant == nil {
			return Identity{}, domain.ErrUnauthorized
		}
		ident.TenantStatus = tenant.Status
	}
	return ident, nil
}

// Logout revoca el token actual agregando su jti a la blacklist por el tiempo
// de vida restante.
func (uc *UseCase) Logout(ctx context.Context, token string) error {
	claims, err := pkgjwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return domain.ErrUnauthorized
	}
	if uc.blacklist == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return uc.blacklist.Revoke(ctx, claims.ID, ttl)
}

// RegisterUser crea personal dentro del tenant de la identidad (solo admin).
// Devuelve ErrDuplicate si el email ya existe en ese tenant.
func (uc *UseCase) RegisterUser(ctx context.Context, ident Identity, in dto.RegisterUserRequest) (*dto.UserResponse, error) {
	if err := ident.RequireTenantWrite(); err != nil {
		return nil, err
	}
	if !ident.HasRole(entity.RoleAdmin) {
		return nil, domain.ErrForbidden
	}
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByEmailAndTenant(in.Email, ident.TenantID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	role := in.Role
	if role == "" {
		role = entity.RoleVendedor
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		TenantID:     ident.TenantID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		TenantID:  u.TenantID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
