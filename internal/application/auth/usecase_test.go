package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tiendix/retail-api/internal/application/auth"
	"github.com/tiendix/retail-api/internal/application/dto"
	"github.com/tiendix/retail-api/internal/domain"
	"github.com/tiendix/retail-api/internal/domain/entity"
	"github.com/tiendix/retail-api/internal/infrastructure/memory"
)

const testTenant = "tenant-1"

// fakeBlacklist blacklist en memoria para los tests de revocación.
type fakeBlacklist struct {
	revoked map[string]bool
}

func (b *fakeBlacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	b.revoked[jti] = true
	return nil
}

func (b *fakeBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return b.revoked[jti], nil
}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func newEnv(t *testing.T) (*memory.Store, *auth.UseCase) {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()
	store.Tenants[testTenant] = &entity.Tenant{
		ID: testTenant, Name: "Tienda Uno", Status: entity.TenantActiva,
		TaxRate: decimal.RequireFromString("0.18"), CreatedAt: now, UpdatedAt: now,
	}
	store.Users["u-admin"] = &entity.User{
		ID: "u-admin", TenantID: testTenant, Email: "admin@tienda.pe",
		PasswordHash: hash(t, "secreto123"), Name: "Admin", Role: entity.RoleAdmin,
		Status: "active", CreatedAt: now, UpdatedAt: now,
	}
	store.Users["u-root"] = &entity.User{
		ID: "u-root", Email: "root@plataforma.pe",
		PasswordHash: hash(t, "plataforma456"), Name: "Root", Role: entity.RoleSuperadmin,
		Status: "active", CreatedAt: now, UpdatedAt: now,
	}

	uc := auth.NewUseCase(
		&memory.UserRepo{S: store},
		&memory.CustomerRepo{S: store},
		&memory.TenantRepo{S: store},
		&fakeBlacklist{revoked: make(map[string]bool)},
		auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "retail-api-test"},
	)
	return store, uc
}

func TestLogin_EmiteTokenResoluble(t *testing.T) {
	_, uc := newEnv(t)
	ctx := context.Background()

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "admin@tienda.pe", Password: "secreto123"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, "u-admin", out.User.ID)

	ident, err := uc.Resolve(ctx, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-admin", ident.UserID)
	assert.Equal(t, testTenant, ident.TenantID)
	assert.Equal(t, entity.RoleAdmin, ident.Role)
	assert.Equal(t, auth.ScopeTenant, ident.Scope)
	assert.Equal(t, entity.TenantActiva, ident.TenantStatus, "el resolver carga el estado del tenant")
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	_, uc := newEnv(t)
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "admin@tienda.pe", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	_, uc := newEnv(t)
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@tienda.pe", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_PlataformaSinTenant(t *testing.T) {
	_, uc := newEnv(t)
	ctx := context.Background()

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "root@plataforma.pe", Password: "plataforma456"})
	require.NoError(t, err)

	ident, err := uc.Resolve(ctx, out.Token)
	require.NoError(t, err)
	assert.True(t, ident.IsPlatform())
	assert.Empty(t, ident.TenantID)
}

func TestResolve_TenantSuspendidoSigueResolviendo(t *testing.T) {
	store, uc := newEnv(t)
	ctx := context.Background()
	out, err := uc.Login(ctx, dto.LoginRequest{Email: "admin@tienda.pe", Password: "secreto123"})
	require.NoError(t, err)

	store.Tenants[testTenant].Status = entity.TenantSuspendida

	// El token sigue siendo válido; son las escrituras las que se rechazan.
	ident, err := uc.Resolve(ctx, out.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.TenantSuspendida, ident.TenantStatus)
	assert.ErrorIs(t, ident.RequireTenantWrite(), domain.ErrTenantSuspended)
	assert.NoError(t, ident.RequireTenantRead())
}

func TestLogout_RevocaElToken(t *testing.T) {
	_, uc := newEnv(t)
	ctx := context.Background()
	out, err := uc.Login(ctx, dto.LoginRequest{Email: "admin@tienda.pe", Password: "secreto123"})
	require.NoError(t, err)

	require.NoError(t, uc.Logout(ctx, out.Token))

	_, err = uc.Resolve(ctx, out.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "un token revocado no debe resolver")
}

// fallaLookupUserRepo simula una falla del store en la verificación de email.
type fallaLookupUserRepo struct {
	*memory.UserRepo
}

func (r *fallaLookupUserRepo) GetByEmailAndTenant(email, tenantID string) (*entity.User, error) {
	return nil, errors.New("store no disponible")
}

func TestRegisterUser_FallaDelStoreNoCreaUsuario(t *testing.T) {
	store, _ := newEnv(t)
	uc := auth.NewUseCase(
		&fallaLookupUserRepo{UserRepo: &memory.UserRepo{S: store}},
		&memory.CustomerRepo{S: store},
		&memory.TenantRepo{S: store},
		&fakeBlacklist{revoked: make(map[string]bool)},
		auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "retail-api-test"},
	)
	admin := auth.Identity{
		UserID: "u-admin", TenantID: testTenant, Role: entity.RoleAdmin,
		Scope: auth.ScopeTenant, TenantStatus: entity.TenantActiva,
	}

	usuarios := len(store.Users)
	_, err := uc.RegisterUser(context.Background(), admin, dto.RegisterUserRequest{
		Email: "cajero@tienda.pe", Password: "clave789",
	})
	require.Error(t, err, "una falla del store no equivale a email libre")
	assert.Len(t, store.Users, usuarios, "el registro no debe proceder")
}

func TestRegisterUser_SoloAdminYSinDuplicados(t *testing.T) {
	_, uc := newEnv(t)
	ctx := context.Background()
	admin := auth.Identity{
		UserID: "u-admin", TenantID: testTenant, Role: entity.RoleAdmin,
		Scope: auth.ScopeTenant, TenantStatus: entity.TenantActiva,
	}

	out, err := uc.RegisterUser(ctx, admin, dto.RegisterUserRequest{
		Email: "cajero@tienda.pe", Password: "clave789", Name: "Cajero", Role: entity.RoleVendedor,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleVendedor, out.Role)

	_, err = uc.RegisterUser(ctx, admin, dto.RegisterUserRequest{
		Email: "cajero@tienda.pe", Password: "clave789",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	vendedor := admin
	vendedor.Role = entity.RoleVendedor
	_, err = uc.RegisterUser(ctx, vendedor, dto.RegisterUserRequest{
		Email: "otro@tienda.pe", Password: "clave789",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
