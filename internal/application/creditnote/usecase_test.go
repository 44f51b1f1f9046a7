package creditnote_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiendix/retail-api/internal/application/auth"
	"github.com/tiendix/retail-api/internal/application/creditnote"
	"github.com/tiendix/retail-api/internal/application/dto"
	"github.com/tiendix/retail-api/internal/application/ledger"
	"github.com/tiendix/retail-api/internal/domain"
	"github.com/tiendix/retail-api/internal/domain/entity"
	"github.com/tiendix/retail-api/internal/infrastructure/memory"
	"github.com/tiendix/retail-api/pkg/logger"
)

const (
	testTenant    = "tenant-1"
	testWarehouse = "wh-1"
	testProduct   = "prod-1"
	testSale      = "sale-1"
	testSaleLine  = "line-1"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// newEnv arma una venta PAGADA de 3 unidades a 20.00 (precio congelado) ya
// descontada del stock: quedan 7 en el almacén.
func newEnv(t *testing.T) (*memory.Store, *creditnote.UseCase) {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()
	store.Tenants[testTenant] = &entity.Tenant{
		ID: testTenant, Name: "Tienda Uno", Status: entity.TenantActiva,
		TaxRate: dec("0.18"), CreatedAt: now, UpdatedAt: now,
	}
	store.Products[testProduct] = &entity.Product{
		ID: testProduct, TenantID: testTenant, SKU: "SKU-001", Name: "Polo básico",
		Price: dec("25.00"), // el catálogo ya subió; la nota debe valorar a 20.00
		ControlStock: true, CreatedAt: now, UpdatedAt: now,
	}
	store.SeedStock(testTenant, testProduct, testWarehouse, dec("7"))
	store.Sales[testSale] = &entity.Sale{
		ID: testSale, TenantID: testTenant, Code: "V-TEST0001",
		WarehouseID: testWarehouse, Status: entity.SalePagada,
		Subtotal: dec("60.00"), Tax: dec("10.80"), Total: dec("70.80"),
		CreatedAt: now, UpdatedAt: now,
		Lines: []entity.SaleLine{{
			ID: testSaleLine, SaleID: testSale, ProductID: testProduct,
			Quantity: dec("3"), UnitPrice: dec("20.00"), Subtotal: dec("60.00"),
		}},
	}

	txRunner := &memory.TxRunner{S: store}
	engine := ledger.NewEngine(txRunner,
		&memory.ProductRepo{S: store}, &memory.WarehouseRepo{S: store},
		&memory.StockRepo{S: store}, &memory.MovementRepo{S: store})
	log := logger.New(logger.Config{Level: "error"})
	uc := creditnote.NewUseCase(txRunner, engine,
		&memory.NoteRepo{S: store}, &memory.SaleRepo{S: store},
		&memory.TenantRepo{S: store}, log)
	return store, uc
}

func vendedor() auth.Identity {
	return auth.Identity{
		UserID: "user-vend", TenantID: testTenant, Role: entity.RoleVendedor,
		Scope: auth.ScopeTenant, TenantStatus: entity.TenantActiva,
	}
}

func notaDe(tipo, qty string) dto.CreateCreditNoteRequest {
	return dto.CreateCreditNoteRequest{
		SaleID: testSale,
		Type:   tipo,
		Reason: "cliente devolvió mercadería",
		Lines:  []dto.CreditNoteLineRequest{{SaleLineID: testSaleLine, Quantity: dec(qty)}},
	}
}

func TestDevolucion_ReingresaStockAlPrecioCongelado(t *testing.T) {
	store, uc := newEnv(t)

	out, err := uc.Create(context.Background(), vendedor(), notaDe("DEVOLUCION", "2"))
	require.NoError(t, err)

	// Valorada al precio congelado de la venta (20.00), no al catálogo (25.00).
	assert.True(t, out.Subtotal.Equal(dec("40.00")), "subtotal: %s", out.Subtotal)
	assert.True(t, out.Tax.Equal(dec("7.20")))
	assert.True(t, out.Total.Equal(dec("47.20")))

	assert.True(t, store.StockQty(testTenant, testProduct, testWarehouse).Equal(dec("9")), "7 + 2 devueltas")
	require.Len(t, store.Movements, 1)
	assert.Equal(t, entity.MovementRefundIn, store.Movements[0].Type)
}

func TestDescuento_NoMueveStock(t *testing.T) {
	store, uc := newEnv(t)

	out, err := uc.Create(context.Background(), vendedor(), notaDe("DESCUENTO", "1"))
	require.NoError(t, err)
	assert.True(t, out.Total.Equal(dec("23.60")))

	assert.True(t, store.StockQty(testTenant, testProduct, testWarehouse).Equal(dec("7")))
	assert.Empty(t, store.Movements, "DESCUENTO es solo financiera")
}

func TestDevolucionAcumulada_NoSuperaLoVendido(t *testing.T) {
	store, uc := newEnv(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, vendedor(), notaDe("DEVOLUCION", "2"))
	require.NoError(t, err)

	// Ya se acreditaron 2 de 3; acreditar 2 más excede lo vendido.
	_, err = uc.Create(ctx, vendedor(), notaDe("DEVOLUCION", "2"))
	require.ErrorIs(t, err, domain.ErrOverRefund)

	// La nota rechazada no dejó rastro.
	assert.Len(t, store.Notes, 1)
	assert.True(t, store.StockQty(testTenant, testProduct, testWarehouse).Equal(dec("9")))

	// El remanente exacto sí procede.
	_, err = uc.Create(ctx, vendedor(), notaDe("DEVOLUCION", "1"))
	assert.NoError(t, err)
}

func TestDevolucion_RenglonRepetidoEnLaMismaNota(t *testing.T) {
	store, uc := newEnv(t)

	// Dos renglones de 2 sobre la misma línea de venta suman 4 de 3 vendidas:
	// el tope acumulado aplica también dentro de una sola nota.
	_, err := uc.Create(context.Background(), vendedor(), dto.CreateCreditNoteRequest{
		SaleID: testSale,
		Type:   "DEVOLUCION",
		Reason: "cliente devolvió mercadería",
		Lines: []dto.CreditNoteLineRequest{
			{SaleLineID: testSaleLine, Quantity: dec("2")},
			{SaleLineID: testSaleLine, Quantity: dec("2")},
		},
	})
	require.ErrorIs(t, err, domain.ErrOverRefund)

	assert.Empty(t, store.Notes)
	assert.True(t, store.StockQty(testTenant, testProduct, testWarehouse).Equal(dec("7")))
	assert.Empty(t, store.Movements)
}

func TestNota_SoloSobreVentaPagada(t *testing.T) {
	store, uc := newEnv(t)
	store.Sales[testSale].Status = entity.SalePendientePago

	_, err := uc.Create(context.Background(), vendedor(), notaDe("DEVOLUCION", "1"))
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestNota_TipoInvalido(t *testing.T) {
	_, uc := newEnv(t)
	_, err := uc.Create(context.Background(), vendedor(), notaDe("REEMBOLSO", "1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNota_BodegueroSinPermiso(t *testing.T) {
	_, uc := newEnv(t)
	ident := vendedor()
	ident.Role = entity.RoleBodeguero

	_, err := uc.Create(context.Background(), ident, notaDe("DEVOLUCION", "1"))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
