package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiendix/retail-api/internal/application/auth"
	"github.com/tiendix/retail-api/internal/application/catalog"
	"github.com/tiendix/retail-api/internal/application/dto"
	"github.com/tiendix/retail-api/internal/domain"
	"github.com/tiendix/retail-api/internal/domain/entity"
	"github.com/tiendix/retail-api/internal/infrastructure/memory"
	"github.com/tiendix/retail-api/pkg/logger"
)

const testTenant = "tenant-1"

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newEnv(t *testing.T) (*memory.Store, *catalog.UseCase) {
	t.Helper()
	store := memory.NewStore()
	log := logger.New(logger.Config{Level: "error"})
	uc := catalog.NewUseCase(&memory.ProductRepo{S: store}, &memory.WarehouseRepo{S: store}, log)
	return store, uc
}

func admin() auth.Identity {
	return auth.Identity{
		UserID: "user-admin", TenantID: testTenant, Role: entity.RoleAdmin,
		Scope: auth.ScopeTenant, TenantStatus: entity.TenantActiva,
	}
}

func TestCrearProducto_SKUDuplicado(t *testing.T) {
	_, uc := newEnv(t)
	ctx := context.Background()
	req := dto.CreateProductRequest{SKU: "SKU-001", Name: "Polo básico", Price: dec("20.00"), Cost: dec("8.00")}

	out, err := uc.CreateProduct(ctx, admin(), req)
	require.NoError(t, err)
	assert.True(t, out.ControlStock, "control de stock activo por defecto")

	_, err = uc.CreateProduct(ctx, admin(), req)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCrearProducto_ValidaLiquidacion(t *testing.T) {
	_, uc := newEnv(t)
	ctx := context.Background()
	pct := dec("30")
	from := time.Now()
	to := from.Add(48 * time.Hour)

	// Porcentaje sin ventana.
	_, err := uc.CreateProduct(ctx, admin(), dto.CreateProductRequest{
		SKU: "SKU-A", Name: "A", Price: dec("10.00"), LiquidationPct: &pct,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Ventana invertida.
	_, err = uc.CreateProduct(ctx, admin(), dto.CreateProductRequest{
		SKU: "SKU-B", Name: "B", Price: dec("10.00"),
		LiquidationPct: &pct, LiquidationFrom: &to, LiquidationTo: &from,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Porcentaje fuera de 0..100.
	exceso := dec("120")
	_, err = uc.CreateProduct(ctx, admin(), dto.CreateProductRequest{
		SKU: "SKU-C", Name: "C", Price: dec("10.00"),
		LiquidationPct: &exceso, LiquidationFrom: &from, LiquidationTo: &to,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Ventana bien formada.
	_, err = uc.CreateProduct(ctx, admin(), dto.CreateProductRequest{
		SKU: "SKU-D", Name: "D", Price: dec("10.00"),
		LiquidationPct: &pct, LiquidationFrom: &from, LiquidationTo: &to,
	})
	assert.NoError(t, err)
}

func TestActualizarProducto_ParcialYSKUInmutable(t *testing.T) {
	store, uc := newEnv(t)
	ctx := context.Background()
	out, err := uc.CreateProduct(ctx, admin(), dto.CreateProductRequest{
		SKU: "SKU-001", Name: "Polo básico", Price: dec("20.00"), Cost: dec("8.00"),
	})
	require.NoError(t, err)

	precio := dec("22.50")
	upd, err := uc.UpdateProduct(ctx, admin(), out.ID, dto.UpdateProductRequest{Price: &precio})
	require.NoError(t, err)
	assert.True(t, upd.Price.Equal(dec("22.50")))
	assert.Equal(t, "Polo básico", upd.Name, "los campos no enviados no cambian")
	assert.Equal(t, "SKU-001", store.Products[out.ID].SKU)
}

func TestEliminarProducto_SoloAdmin(t *testing.T) {
	store, uc := newEnv(t)
	ctx := context.Background()
	out, err := uc.CreateProduct(ctx, admin(), dto.CreateProductRequest{
		SKU: "SKU-001", Name: "Polo básico", Price: dec("20.00"),
	})
	require.NoError(t, err)

	bod := admin()
	bod.Role = entity.RoleBodeguero
	assert.ErrorIs(t, uc.DeleteProduct(ctx, bod, out.ID), domain.ErrForbidden)

	require.NoError(t, uc.DeleteProduct(ctx, admin(), out.ID))
	assert.NotContains(t, store.Products, out.ID)
}

func TestListarProductos_AccesibleParaStorefront(t *testing.T) {
	_, uc := newEnv(t)
	ctx := context.Background()
	_, err := uc.CreateProduct(ctx, admin(), dto.CreateProductRequest{
		SKU: "SKU-001", Name: "Polo básico", Price: dec("20.00"),
	})
	require.NoError(t, err)

	cliente := auth.Identity{
		UserID: "cust-1", TenantID: testTenant, Role: "cliente",
		Scope: auth.ScopeStorefront, TenantStatus: entity.TenantActiva,
	}
	list, err := uc.ListProducts(ctx, cliente, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	// Pero no puede escribir.
	_, err = uc.CreateProduct(ctx, cliente, dto.CreateProductRequest{SKU: "SKU-X", Name: "X", Price: dec("1.00")})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCrearAlmacen(t *testing.T) {
	_, uc := newEnv(t)
	ctx := context.Background()

	out, err := uc.CreateWarehouse(ctx, admin(), dto.CreateWarehouseRequest{Name: "Sucursal Sur", Capacity: 500})
	require.NoError(t, err)
	assert.Equal(t, "Sucursal Sur", out.Name)

	list, err := uc.ListWarehouses(ctx, admin(), dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
