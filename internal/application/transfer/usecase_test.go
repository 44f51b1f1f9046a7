package transfer_test

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
	"github.com/tiendix/retail-api/internal/application/transfer"
	"github.com/tiendix/retail-api/internal/domain"
	"github.com/tiendix/retail-api/internal/domain/entity"
	"github.com/tiendix/retail-api/internal/infrastructure/memory"
	"github.com/tiendix/retail-api/pkg/logger"
)

const (
	testTenant  = "tenant-1"
	whOrigen    = "wh-origen"
	whDestino   = "wh-destino"
	testProduct = "prod-1"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// newEnv arma dos almacenes con 30 unidades del producto en el origen.
func newEnv(t *testing.T) (*memory.Store, *transfer.UseCase) {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()
	store.Tenants[testTenant] = &entity.Tenant{
		ID: testTenant, Name: "Tienda Uno", Status: entity.TenantActiva,
		TaxRate: dec("0.18"), CreatedAt: now, UpdatedAt: now,
	}
	store.Warehouses[whOrigen] = &entity.Warehouse{ID: whOrigen, TenantID: testTenant, Name: "Origen"}
	store.Warehouses[whDestino] = &entity.Warehouse{ID: whDestino, TenantID: testTenant, Name: "Destino"}
	store.Products[testProduct] = &entity.Product{
		ID: testProduct, TenantID: testTenant, SKU: "SKU-001", Name: "Polo básico",
		Price: dec("20.00"), ControlStock: true, CreatedAt: now, UpdatedAt: now,
	}
	store.SeedStock(testTenant, testProduct, whOrigen, dec("30"))

	txRunner := &memory.TxRunner{S: store}
	engine := ledger.NewEngine(txRunner,
		&memory.ProductRepo{S: store}, &memory.WarehouseRepo{S: store},
		&memory.StockRepo{S: store}, &memory.MovementRepo{S: store})
	log := logger.New(logger.Config{Level: "error"})
	uc := transfer.NewUseCase(txRunner, engine,
		&memory.TransferRepo{S: store}, &memory.WarehouseRepo{S: store},
		&memory.ProductRepo{S: store}, log)
	return store, uc
}

func ident(userID, role string) auth.Identity {
	return auth.Identity{
		UserID: userID, TenantID: testTenant, Role: role,
		Scope: auth.ScopeTenant, TenantStatus: entity.TenantActiva,
	}
}

func solicitar(t *testing.T, uc *transfer.UseCase, qty string) *dto.TransferResponse {
	t.Helper()
	out, err := uc.Request(context.Background(), ident("user-bod", entity.RoleBodeguero), dto.CreateTransferRequest{
		OriginID:      whOrigen,
		DestinationID: whDestino,
		Lines:         []dto.TransferLineRequest{{ProductID: testProduct, Quantity: dec(qty)}},
	})
	require.NoError(t, err)
	require.Equal(t, string(entity.TransferPendiente), out.Status)
	return out
}

func TestTrasladoCompleto_PublicaSalidaYEntrada(t *testing.T) {
	store, uc := newEnv(t)
	ctx := context.Background()
	tr := solicitar(t, uc, "10")

	_, err := uc.Approve(ctx, ident("user-admin", entity.RoleAdmin), tr.ID)
	require.NoError(t, err)

	out, err := uc.Execute(ctx, ident("user-bod", entity.RoleBodeguero), tr.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.TransferEjecutada), out.Status)

	assert.True(t, store.StockQty(testTenant, testProduct, whOrigen).Equal(dec("20")))
	assert.True(t, store.StockQty(testTenant, testProduct, whDestino).Equal(dec("10")))

	// Exactamente dos movimientos por renglón: salida en origen, entrada en destino.
	require.Len(t, store.Movements, 2)
	salida, entrada := store.Movements[0], store.Movements[1]
	assert.Equal(t, entity.MovementTransferOut, salida.Type)
	assert.Equal(t, whOrigen, salida.WarehouseID)
	assert.True(t, salida.Quantity.Equal(dec("-10")))
	assert.Equal(t, entity.MovementTransferIn, entrada.Type)
	assert.Equal(t, whDestino, entrada.WarehouseID)
	assert.True(t, entrada.Quantity.Equal(dec("10")))
	assert.Equal(t, salida.ReferenceDoc, entrada.ReferenceDoc, "ambos lados referencian el mismo traslado")
}

func TestAprobar_MismoSolicitanteRechazado(t *testing.T) {
	_, uc := newEnv(t)
	tr := solicitar(t, uc, "5")

	// El solicitante fue user-bod; aunque un admin con el mismo ID lo intente,
	// la regla de cuatro ojos lo bloquea.
	_, err := uc.Approve(context.Background(), ident("user-bod", entity.RoleAdmin), tr.ID)
	assert.ErrorIs(t, err, domain.ErrSelfApproval)
}

func TestAprobar_SoloAdmin(t *testing.T) {
	_, uc := newEnv(t)
	tr := solicitar(t, uc, "5")

	_, err := uc.Approve(context.Background(), ident("otro-bod", entity.RoleBodeguero), tr.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestEjecutar_SinAprobarFalla(t *testing.T) {
	_, uc := newEnv(t)
	tr := solicitar(t, uc, "5")

	_, err := uc.Execute(context.Background(), ident("user-bod", entity.RoleBodeguero), tr.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestEjecutar_StockInsuficienteEnOrigen(t *testing.T) {
	store, uc := newEnv(t)
	ctx := context.Background()
	tr := solicitar(t, uc, "50") // solo hay 30 en origen

	_, err := uc.Approve(ctx, ident("user-admin", entity.RoleAdmin), tr.ID)
	require.NoError(t, err)

	_, err = uc.Execute(ctx, ident("user-bod", entity.RoleBodeguero), tr.ID)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nada se aplicó: ni salida ni entrada, el traslado sigue APROBADA.
	assert.True(t, store.StockQty(testTenant, testProduct, whOrigen).Equal(dec("30")))
	assert.True(t, store.StockQty(testTenant, testProduct, whDestino).Equal(dec("0")))
	assert.Empty(t, store.Movements)
	assert.Equal(t, entity.TransferAprobada, store.Transfers[tr.ID].Status)
}

func TestSolicitar_OrigenIgualDestino(t *testing.T) {
	_, uc := newEnv(t)
	_, err := uc.Request(context.Background(), ident("user-bod", entity.RoleBodeguero), dto.CreateTransferRequest{
		OriginID:      whOrigen,
		DestinationID: whOrigen,
		Lines:         []dto.TransferLineRequest{{ProductID: testProduct, Quantity: dec("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRechazarYCancelar(t *testing.T) {
	store, uc := newEnv(t)
	ctx := context.Background()

	tr := solicitar(t, uc, "5")
	_, err := uc.Reject(ctx, ident("user-admin", entity.RoleAdmin), tr.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferRechazada, store.Transfers[tr.ID].Status)

	otro := solicitar(t, uc, "5")
	_, err = uc.Cancel(ctx, ident("user-bod", entity.RoleBodeguero), otro.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferCancelada, store.Transfers[otro.ID].Status)

	// Un estado terminal no admite ejecución.
	_, err = uc.Execute(ctx, ident("user-bod", entity.RoleBodeguero), otro.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}
