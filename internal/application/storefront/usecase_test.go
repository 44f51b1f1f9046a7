package storefront_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiendix/retail-api/internal/application/auth"
	"github.com/tiendix/retail-api/internal/application/dto"
	"github.com/tiendix/retail-api/internal/application/storefront"
	"github.com/tiendix/retail-api/internal/domain"
	"github.com/tiendix/retail-api/internal/domain/entity"
	"github.com/tiendix/retail-api/internal/infrastructure/memory"
	"github.com/tiendix/retail-api/pkg/logger"
)

const (
	testTenant    = "tenant-1"
	testWarehouse = "wh-1"
	testProduct   = "prod-1"
	testCustomer  = "cust-1"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// newEnv arma un tenant con IGV 18%, un almacén y un producto de 20.00.
func newEnv(t *testing.T) (*memory.Store, *storefront.UseCase) {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()
	store.Tenants[testTenant] = &entity.Tenant{
		ID: testTenant, Name: "Tienda Uno", Status: entity.TenantActiva,
		TaxRate: dec("0.18"), CreatedAt: now, UpdatedAt: now,
	}
	store.Warehouses[testWarehouse] = &entity.Warehouse{
		ID: testWarehouse, TenantID: testTenant, Name: "Central", CreatedAt: now, UpdatedAt: now,
	}
	store.Products[testProduct] = &entity.Product{
		ID: testProduct, TenantID: testTenant, SKU: "SKU-001", Name: "Polo básico",
		Price: dec("20.00"), ControlStock: true, CreatedAt: now, UpdatedAt: now,
	}
	store.SeedStock(testTenant, testProduct, testWarehouse, dec("10"))

	log := logger.New(logger.Config{Level: "error"})
	uc := storefront.NewUseCase(
		&memory.StorefrontOrderRepo{S: store},
		&memory.ProductRepo{S: store},
		&memory.WarehouseRepo{S: store},
		&memory.TenantRepo{S: store},
		log,
	)
	return store, uc
}

func cliente() auth.Identity {
	return auth.Identity{
		UserID: testCustomer, TenantID: testTenant, Role: "cliente",
		Scope: auth.ScopeStorefront, TenantStatus: entity.TenantActiva,
	}
}

func pedidoDe(qty string) dto.CreateStorefrontOrderRequest {
	return dto.CreateStorefrontOrderRequest{
		ShippingAddress: "Av. Arequipa 123, Lima",
		Lines:           []dto.StorefrontOrderLineRequest{{ProductID: testProduct, Quantity: dec(qty)}},
	}
}

func TestCrearPedido_CongelaPreciosSinMoverStock(t *testing.T) {
	store, uc := newEnv(t)

	out, err := uc.CreateOrder(context.Background(), cliente(), pedidoDe("3"))
	require.NoError(t, err)

	assert.Equal(t, string(entity.PedidoPendiente), out.Status)
	assert.True(t, out.Subtotal.Equal(dec("60.00")), "subtotal: %s", out.Subtotal)
	assert.True(t, out.Tax.Equal(dec("10.80")))
	assert.True(t, out.Total.Equal(dec("70.80")))
	require.Len(t, out.Lines, 1)
	assert.True(t, out.Lines[0].UnitPrice.Equal(dec("20.00")))
	assert.Equal(t, "Polo básico", out.Lines[0].ProductName)

	// El pedido no toca inventario: lo mueve el despacho posterior.
	assert.True(t, store.StockQty(testTenant, testProduct, testWarehouse).Equal(dec("10")))
	assert.Empty(t, store.Movements)
}

func TestCrearPedido_AplicaLiquidacion(t *testing.T) {
	store, uc := newEnv(t)
	pct := dec("50")
	from := time.Now().Add(-time.Hour)
	to := time.Now().Add(time.Hour)
	store.Products[testProduct].LiquidationPct = &pct
	store.Products[testProduct].LiquidationFrom = &from
	store.Products[testProduct].LiquidationTo = &to

	out, err := uc.CreateOrder(context.Background(), cliente(), pedidoDe("2"))
	require.NoError(t, err)
	assert.True(t, out.Lines[0].UnitPrice.Equal(dec("10.00")), "precio con liquidación 50%%: %s", out.Lines[0].UnitPrice)
	assert.True(t, out.Subtotal.Equal(dec("20.00")))
}

func TestCrearPedido_SoloScopeStorefront(t *testing.T) {
	_, uc := newEnv(t)

	vendedor := auth.Identity{
		UserID: "user-vend", TenantID: testTenant, Role: entity.RoleVendedor,
		Scope: auth.ScopeTenant, TenantStatus: entity.TenantActiva,
	}
	_, err := uc.CreateOrder(context.Background(), vendedor, pedidoDe("1"))
	assert.ErrorIs(t, err, domain.ErrForbidden, "el personal vende por POS, no por storefront")
}

func TestCrearPedido_TenantSuspendidoRechaza(t *testing.T) {
	_, uc := newEnv(t)
	ident := cliente()
	ident.TenantStatus = entity.TenantSuspendida

	_, err := uc.CreateOrder(context.Background(), ident, pedidoDe("1"))
	assert.ErrorIs(t, err, domain.ErrTenantSuspended)
}

func TestMisPedidos_SoloLosPropios(t *testing.T) {
	_, uc := newEnv(t)
	ctx := context.Background()

	mio, err := uc.CreateOrder(ctx, cliente(), pedidoDe("1"))
	require.NoError(t, err)

	otro := cliente()
	otro.UserID = "cust-2"
	_, err = uc.CreateOrder(ctx, otro, pedidoDe("2"))
	require.NoError(t, err)

	list, err := uc.MyOrders(ctx, cliente(), dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, mio.ID, list[0].ID)

	// Un pedido ajeno por ID es NotFound, nunca Forbidden.
	_, err = uc.GetOrder(ctx, otro, mio.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancelarPedido_SoloAntesDeProcesar(t *testing.T) {
	store, uc := newEnv(t)
	ctx := context.Background()

	out, err := uc.CreateOrder(ctx, cliente(), pedidoDe("1"))
	require.NoError(t, err)

	cancelado, err := uc.CancelOrder(ctx, cliente(), out.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.PedidoCancelado), cancelado.Status)

	// Un pedido ya en preparación no se cancela por autoservicio.
	otro, err := uc.CreateOrder(ctx, cliente(), pedidoDe("1"))
	require.NoError(t, err)
	store.StorefrontOrders[otro.ID].Status = entity.PedidoProcesando

	_, err = uc.CancelOrder(ctx, cliente(), otro.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCrearPedido_AlmacenPorDefecto(t *testing.T) {
	store, uc := newEnv(t)

	out, err := uc.CreateOrder(context.Background(), cliente(), pedidoDe("1"))
	require.NoError(t, err)
	assert.Equal(t, testWarehouse, store.StorefrontOrders[out.ID].WarehouseID,
		"sin almacén explícito se usa el primero del tenant")

	// Almacén inexistente del request se rechaza.
	req := pedidoDe("1")
	req.WarehouseID = "wh-fantasma"
	_, err = uc.CreateOrder(context.Background(), cliente(), req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
