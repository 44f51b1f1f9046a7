package sales_test

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
	"github.com/tiendix/retail-api/internal/application/sales"
	"github.com/tiendix/retail-api/internal/domain"
	"github.com/tiendix/retail-api/internal/domain/entity"
	"github.com/tiendix/retail-api/internal/infrastructure/memory"
	"github.com/tiendix/retail-api/pkg/logger"
)

const (
	testTenant    = "tenant-1"
	testWarehouse = "wh-1"
	testProduct   = "prod-1"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// newEnv arma un entorno de venta: tenant con IGV 18%, un producto de 20.00
// con control de stock y 10 unidades en el almacén.
func newEnv(t *testing.T) (*memory.Store, *sales.UseCase) {
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

	txRunner := &memory.TxRunner{S: store}
	engine := ledger.NewEngine(txRunner,
		&memory.ProductRepo{S: store}, &memory.WarehouseRepo{S: store},
		&memory.StockRepo{S: store}, &memory.MovementRepo{S: store})
	log := logger.New(logger.Config{Level: "error"})
	uc := sales.NewUseCase(txRunner, engine,
		&memory.SaleRepo{S: store}, &memory.ProductRepo{S: store},
		&memory.SessionRepo{S: store}, &memory.TenantRepo{S: store}, log)
	return store, uc
}

func vendedor() auth.Identity {
	return auth.Identity{
		UserID: "user-vend", TenantID: testTenant, Role: entity.RoleVendedor,
		Scope: auth.ScopeTenant, TenantStatus: entity.TenantActiva,
	}
}

func admin() auth.Identity {
	ident := vendedor()
	ident.UserID = "user-admin"
	ident.Role = entity.RoleAdmin
	return ident
}

func crearVenta(t *testing.T, uc *sales.UseCase, qty string) *dto.SaleResponse {
	t.Helper()
	out, err := uc.Create(context.Background(), vendedor(), dto.CreateSaleRequest{
		WarehouseID: testWarehouse,
		Lines:       []dto.SaleLineRequest{{ProductID: testProduct, Quantity: dec(qty)}},
	})
	require.NoError(t, err)
	return out
}

func TestCrearVenta_CongelaPreciosYCalculaTotales(t *testing.T) {
	store, uc := newEnv(t)

	out := crearVenta(t, uc, "3")

	assert.Equal(t, string(entity.SalePendientePago), out.Status)
	assert.True(t, out.Subtotal.Equal(dec("60.00")), "subtotal: %s", out.Subtotal)
	assert.True(t, out.Tax.Equal(dec("10.80")), "impuesto: %s", out.Tax)
	assert.True(t, out.Total.Equal(dec("70.80")), "total: %s", out.Total)
	require.Len(t, out.Lines, 1)
	assert.True(t, out.Lines[0].UnitPrice.Equal(dec("20.00")), "precio congelado del catálogo")

	// Crear la venta no mueve stock.
	assert.True(t, store.StockQty(testTenant, testProduct, testWarehouse).Equal(dec("10")))
	assert.Empty(t, store.Movements)
}

func TestCapturarPago_DescuentaStockYCalculaVuelto(t *testing.T) {
	store, uc := newEnv(t)
	venta := crearVenta(t, uc, "3")

	out, err := uc.CapturePayment(context.Background(), vendedor(), venta.ID, dto.CapturePaymentRequest{
		Payments:       []dto.PaymentRequest{{Method: "EFECTIVO", Amount: dec("80.00")}},
		AmountReceived: dec("80.00"),
	})
	require.NoError(t, err)

	assert.Equal(t, string(entity.SalePagada), out.Status)
	assert.True(t, out.AmountReceived.Equal(dec("80.00")))
	assert.True(t, out.Change.Equal(dec("9.20")), "vuelto: %s", out.Change)

	assert.True(t, store.StockQty(testTenant, testProduct, testWarehouse).Equal(dec("7")), "stock 10 - 3 = 7")
	require.Len(t, store.Movements, 1)
	mov := store.Movements[0]
	assert.Equal(t, entity.MovementSaleOut, mov.Type)
	assert.True(t, mov.Quantity.Equal(dec("-3")))
	assert.True(t, mov.StockBefore.Equal(dec("10")))
	assert.True(t, mov.StockAfter.Equal(dec("7")))
	assert.Equal(t, "venta: "+venta.Code, mov.ReferenceDoc)
}

func TestCapturarPago_PagoInsuficiente(t *testing.T) {
	store, uc := newEnv(t)
	venta := crearVenta(t, uc, "3")

	_, err := uc.CapturePayment(context.Background(), vendedor(), venta.ID, dto.CapturePaymentRequest{
		Payments: []dto.PaymentRequest{{Method: "TARJETA", Amount: dec("50.00")}},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientPayment)

	// La venta sigue pendiente y el stock intacto.
	assert.Equal(t, entity.SalePendientePago, store.Sales[venta.ID].Status)
	assert.True(t, store.StockQty(testTenant, testProduct, testWarehouse).Equal(dec("10")))
}

func TestCapturarPago_EfectivoEntregadoNoSuplePagosImputados(t *testing.T) {
	store, uc := newEnv(t)
	venta := crearVenta(t, uc, "3") // total 70.80

	// El cliente entrega 100.00 en efectivo pero solo se imputan 50.00 en
	// pagos: la venta no puede quedar PAGADA, el vuelto no cubre la brecha.
	_, err := uc.CapturePayment(context.Background(), vendedor(), venta.ID, dto.CapturePaymentRequest{
		Payments:       []dto.PaymentRequest{{Method: "EFECTIVO", Amount: dec("50.00")}},
		AmountReceived: dec("100.00"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientPayment)

	assert.Equal(t, entity.SalePendientePago, store.Sales[venta.ID].Status)
	assert.Empty(t, store.Sales[venta.ID].Payments)
	assert.True(t, store.StockQty(testTenant, testProduct, testWarehouse).Equal(dec("10")))
}

func TestCapturarPago_StockInsuficiente_NadaSeAplica(t *testing.T) {
	store, uc := newEnv(t)
	// 15 unidades con 10 en mano: la venta se crea (no reserva stock) pero la
	// captura debe fallar y dejar todo como estaba.
	venta := crearVenta(t, uc, "15")

	_, err := uc.CapturePayment(context.Background(), vendedor(), venta.ID, dto.CapturePaymentRequest{
		Payments: []dto.PaymentRequest{{Method: "EFECTIVO", Amount: dec("400.00")}},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), testProduct, "el error debe identificar el producto ofensor")

	assert.Equal(t, entity.SalePendientePago, store.Sales[venta.ID].Status)
	assert.Empty(t, store.Sales[venta.ID].Payments, "ningún pago debe quedar registrado")
	assert.True(t, store.StockQty(testTenant, testProduct, testWarehouse).Equal(dec("10")))
	assert.Empty(t, store.Movements, "ningún movimiento debe quedar en el kardex")
}

func TestCapturarPago_PagosDivididos(t *testing.T) {
	_, uc := newEnv(t)
	venta := crearVenta(t, uc, "3")

	out, err := uc.CapturePayment(context.Background(), vendedor(), venta.ID, dto.CapturePaymentRequest{
		Payments: []dto.PaymentRequest{
			{Method: "EFECTIVO", Amount: dec("30.80")},
			{Method: "YAPE", Amount: dec("40.00"), Reference: "op-123"},
		},
	})
	require.NoError(t, err)
	assert.True(t, out.Change.Equal(dec("0.00")), "pago exacto, sin vuelto")
	assert.Len(t, out.Payments, 2)
}

func TestCapturarPago_VentaYaPagada(t *testing.T) {
	_, uc := newEnv(t)
	venta := crearVenta(t, uc, "1")
	pago := dto.CapturePaymentRequest{
		Payments: []dto.PaymentRequest{{Method: "EFECTIVO", Amount: dec("23.60")}},
	}
	_, err := uc.CapturePayment(context.Background(), vendedor(), venta.ID, pago)
	require.NoError(t, err)

	_, err = uc.CapturePayment(context.Background(), vendedor(), venta.ID, pago)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCrearVenta_OverridePrecioSoloAdmin(t *testing.T) {
	_, uc := newEnv(t)
	precio := dec("15.00")
	req := dto.CreateSaleRequest{
		WarehouseID: testWarehouse,
		Lines:       []dto.SaleLineRequest{{ProductID: testProduct, Quantity: dec("1"), UnitPrice: &precio}},
	}

	_, err := uc.Create(context.Background(), vendedor(), req)
	assert.ErrorIs(t, err, domain.ErrForbidden, "vendedor no puede pisar el precio del catálogo")

	out, err := uc.Create(context.Background(), admin(), req)
	require.NoError(t, err)
	assert.True(t, out.Lines[0].UnitPrice.Equal(dec("15.00")))
}

func TestCrearVenta_LiquidacionAplicaDescuento(t *testing.T) {
	store, uc := newEnv(t)
	pct := dec("50")
	from := time.Now().Add(-time.Hour)
	to := time.Now().Add(time.Hour)
	store.Products[testProduct].LiquidationPct = &pct
	store.Products[testProduct].LiquidationFrom = &from
	store.Products[testProduct].LiquidationTo = &to

	out := crearVenta(t, uc, "2")
	assert.True(t, out.Lines[0].UnitPrice.Equal(dec("10.00")), "precio con liquidación 50%%: %s", out.Lines[0].UnitPrice)
	assert.True(t, out.Subtotal.Equal(dec("20.00")))
}

func TestCancelarVenta(t *testing.T) {
	store, uc := newEnv(t)
	venta := crearVenta(t, uc, "2")

	require.NoError(t, uc.Cancel(context.Background(), vendedor(), venta.ID))
	assert.Equal(t, entity.SaleCancelada, store.Sales[venta.ID].Status)

	// Una venta pagada no se cancela: se revierte con nota de crédito.
	otra := crearVenta(t, uc, "1")
	_, err := uc.CapturePayment(context.Background(), vendedor(), otra.ID, dto.CapturePaymentRequest{
		Payments: []dto.PaymentRequest{{Method: "EFECTIVO", Amount: dec("23.60")}},
	})
	require.NoError(t, err)
	assert.ErrorIs(t, uc.Cancel(context.Background(), vendedor(), otra.ID), domain.ErrInvalidTransition)
}

func TestCrearVenta_TenantSuspendidoRechazaEscritura(t *testing.T) {
	_, uc := newEnv(t)
	ident := vendedor()
	ident.TenantStatus = entity.TenantSuspendida

	_, err := uc.Create(context.Background(), ident, dto.CreateSaleRequest{
		WarehouseID: testWarehouse,
		Lines:       []dto.SaleLineRequest{{ProductID: testProduct, Quantity: dec("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrTenantSuspended)
}

func TestCrearVenta_DescuentoMayorAlRenglon(t *testing.T) {
	_, uc := newEnv(t)
	_, err := uc.Create(context.Background(), vendedor(), dto.CreateSaleRequest{
		WarehouseID: testWarehouse,
		Lines: []dto.SaleLineRequest{
			{ProductID: testProduct, Quantity: dec("1"), Discount: dec("25.00")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCrearVenta_SesionCerradaRechaza(t *testing.T) {
	store, uc := newEnv(t)
	now := time.Now()
	store.Sessions["ses-1"] = &entity.CashSession{
		ID: "ses-1", TenantID: testTenant, RegisterID: "caja-1",
		Status: entity.SessionCerrada, OpenedAt: now,
	}
	sesID := "ses-1"
	_, err := uc.Create(context.Background(), vendedor(), dto.CreateSaleRequest{
		WarehouseID: testWarehouse,
		SessionID:   &sesID,
		Lines:       []dto.SaleLineRequest{{ProductID: testProduct, Quantity: dec("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrSessionAlreadyClosed)
}
