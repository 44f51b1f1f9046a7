package purchasing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiendix/retail-api/internal/application/auth"
	"github.com/tiendix/retail-api/internal/application/dto"
	"github.com/tiendix/retail-api/internal/application/ledger"
	"github.com/tiendix/retail-api/internal/application/purchasing"
	"github.com/tiendix/retail-api/internal/domain"
	"github.com/tiendix/retail-api/internal/domain/entity"
	"github.com/tiendix/retail-api/internal/infrastructure/memory"
	"github.com/tiendix/retail-api/pkg/logger"
)

const (
	testTenant    = "tenant-1"
	testWarehouse = "wh-1"
	testSupplier  = "sup-1"
	testProduct   = "prod-1"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newEnv(t *testing.T) (*memory.Store, *purchasing.UseCase) {
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
	store.Suppliers[testSupplier] = &entity.Supplier{
		ID: testSupplier, TenantID: testTenant, Name: "Distribuidora Norte", CreatedAt: now, UpdatedAt: now,
	}
	store.Products[testProduct] = &entity.Product{
		ID: testProduct, TenantID: testTenant, SKU: "SKU-001", Name: "Polo básico",
		Price: dec("20.00"), Cost: dec("8.00"), ControlStock: true, CreatedAt: now, UpdatedAt: now,
	}

	txRunner := &memory.TxRunner{S: store}
	engine := ledger.NewEngine(txRunner,
		&memory.ProductRepo{S: store}, &memory.WarehouseRepo{S: store},
		&memory.StockRepo{S: store}, &memory.MovementRepo{S: store})
	log := logger.New(logger.Config{Level: "error"})
	uc := purchasing.NewUseCase(txRunner, engine,
		&memory.OrderRepo{S: store}, &memory.ReceiptRepo{S: store},
		&memory.SupplierRepo{S: store}, &memory.WarehouseRepo{S: store},
		&memory.ProductRepo{S: store}, &memory.TenantRepo{S: store}, log)
	return store, uc
}

func bodeguero() auth.Identity {
	return auth.Identity{
		UserID: "user-bod", TenantID: testTenant, Role: entity.RoleBodeguero,
		Scope: auth.ScopeTenant, TenantStatus: entity.TenantActiva,
	}
}

// ordenConfirmada crea una orden de 100 unidades y la lleva hasta CONFIRMADA.
func ordenConfirmada(t *testing.T, uc *purchasing.UseCase) *dto.OrderResponse {
	t.Helper()
	ctx := context.Background()
	orden, err := uc.CreateOrder(ctx, bodeguero(), dto.CreateOrderRequest{
		SupplierID:  testSupplier,
		WarehouseID: testWarehouse,
		Lines:       []dto.OrderLineRequest{{ProductID: testProduct, Quantity: dec("100"), UnitPrice: dec("8.00")}},
	})
	require.NoError(t, err)
	require.Equal(t, string(entity.OrderPendiente), orden.Status)

	orden, err = uc.Send(ctx, bodeguero(), orden.ID)
	require.NoError(t, err)
	orden, err = uc.Confirm(ctx, bodeguero(), orden.ID)
	require.NoError(t, err)
	require.Equal(t, string(entity.OrderConfirmada), orden.Status)
	return orden
}

func TestRecepcionParcialYLuegoCompleta(t *testing.T) {
	store, uc := newEnv(t)
	ctx := context.Background()
	orden := ordenConfirmada(t, uc)
	lineID := orden.Lines[0].ID

	// Primera recepción: 60 de 100 → PARCIAL.
	rec1, err := uc.Receive(ctx, bodeguero(), orden.ID, dto.ReceiveRequest{
		Lines: []dto.ReceiptLineRequest{{OrderLineID: lineID, QuantityAccepted: dec("60")}},
	})
	require.NoError(t, err)
	assert.False(t, rec1.Complete)
	assert.Equal(t, entity.OrderParcial, store.Orders[orden.ID].Status)
	assert.True(t, store.StockQty(testTenant, testProduct, testWarehouse).Equal(dec("60")))

	// Segunda recepción: 40 restantes → COMPLETADA.
	rec2, err := uc.Receive(ctx, bodeguero(), orden.ID, dto.ReceiveRequest{
		Lines: []dto.ReceiptLineRequest{{OrderLineID: lineID, QuantityAccepted: dec("40")}},
	})
	require.NoError(t, err)
	assert.True(t, rec2.Complete)
	assert.Equal(t, entity.OrderCompletada, store.Orders[orden.ID].Status)
	assert.True(t, store.StockQty(testTenant, testProduct, testWarehouse).Equal(dec("100")))

	// Cada recepción deja su movimiento COMPRA_ENTRADA en el kardex.
	require.Len(t, store.Movements, 2)
	assert.Equal(t, entity.MovementPurchaseIn, store.Movements[0].Type)
	assert.True(t, store.Movements[1].StockAfter.Equal(dec("100")))
}

func TestRecepcion_ExcedeLoOrdenado(t *testing.T) {
	store, uc := newEnv(t)
	ctx := context.Background()
	orden := ordenConfirmada(t, uc)
	lineID := orden.Lines[0].ID

	_, err := uc.Receive(ctx, bodeguero(), orden.ID, dto.ReceiveRequest{
		Lines: []dto.ReceiptLineRequest{{OrderLineID: lineID, QuantityAccepted: dec("60")}},
	})
	require.NoError(t, err)

	// Quedan 40 pendientes; recibir 50 debe fallar sin tocar stock.
	_, err = uc.Receive(ctx, bodeguero(), orden.ID, dto.ReceiveRequest{
		Lines: []dto.ReceiptLineRequest{{OrderLineID: lineID, QuantityAccepted: dec("50")}},
	})
	assert.ErrorIs(t, err, domain.ErrOverReceipt)
	assert.True(t, store.StockQty(testTenant, testProduct, testWarehouse).Equal(dec("60")))
	assert.Equal(t, entity.OrderParcial, store.Orders[orden.ID].Status)
}

func TestRecepcion_RechazoRequiereMotivo(t *testing.T) {
	_, uc := newEnv(t)
	ctx := context.Background()
	orden := ordenConfirmada(t, uc)
	lineID := orden.Lines[0].ID

	_, err := uc.Receive(ctx, bodeguero(), orden.ID, dto.ReceiveRequest{
		Lines: []dto.ReceiptLineRequest{{OrderLineID: lineID, QuantityAccepted: dec("90"), QuantityRejected: dec("10")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "rechazo sin motivo debe fallar")

	_, err = uc.Receive(ctx, bodeguero(), orden.ID, dto.ReceiveRequest{
		Lines: []dto.ReceiptLineRequest{
			{OrderLineID: lineID, QuantityAccepted: dec("90"), QuantityRejected: dec("10"), RejectReason: "cajas dañadas"},
		},
	})
	assert.NoError(t, err)
}

func TestRecepcion_OrdenNoConfirmada(t *testing.T) {
	_, uc := newEnv(t)
	ctx := context.Background()
	orden, err := uc.CreateOrder(ctx, bodeguero(), dto.CreateOrderRequest{
		SupplierID:  testSupplier,
		WarehouseID: testWarehouse,
		Lines:       []dto.OrderLineRequest{{ProductID: testProduct, Quantity: dec("10"), UnitPrice: dec("8.00")}},
	})
	require.NoError(t, err)

	_, err = uc.Receive(ctx, bodeguero(), orden.ID, dto.ReceiveRequest{
		Lines: []dto.ReceiptLineRequest{{OrderLineID: orden.Lines[0].ID, QuantityAccepted: dec("10")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "una orden PENDIENTE no puede recibir mercadería")
}

func TestCancelarOrden_ConservaStockRecibido(t *testing.T) {
	store, uc := newEnv(t)
	ctx := context.Background()
	orden := ordenConfirmada(t, uc)

	_, err := uc.Receive(ctx, bodeguero(), orden.ID, dto.ReceiveRequest{
		Lines: []dto.ReceiptLineRequest{{OrderLineID: orden.Lines[0].ID, QuantityAccepted: dec("60")}},
	})
	require.NoError(t, err)

	out, err := uc.Cancel(ctx, bodeguero(), orden.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.OrderCancelada), out.Status)
	// Cancelar no revierte lo ya ingresado.
	assert.True(t, store.StockQty(testTenant, testProduct, testWarehouse).Equal(dec("60")))
}

func TestCrearOrden_VendedorSinPermiso(t *testing.T) {
	_, uc := newEnv(t)
	ident := bodeguero()
	ident.Role = entity.RoleVendedor

	_, err := uc.CreateOrder(context.Background(), ident, dto.CreateOrderRequest{
		SupplierID:  testSupplier,
		WarehouseID: testWarehouse,
		Lines:       []dto.OrderLineRequest{{ProductID: testProduct, Quantity: dec("10"), UnitPrice: dec("8.00")}},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
