package cashsession_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiendix/retail-api/internal/application/auth"
	"github.com/tiendix/retail-api/internal/application/cashsession"
	"github.com/tiendix/retail-api/internal/application/dto"
	"github.com/tiendix/retail-api/internal/domain"
	"github.com/tiendix/retail-api/internal/domain/entity"
	"github.com/tiendix/retail-api/internal/infrastructure/memory"
	"github.com/tiendix/retail-api/pkg/logger"
)

const testTenant = "tenant-1"

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newEnv(t *testing.T) (*memory.Store, *cashsession.UseCase) {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()
	store.Tenants[testTenant] = &entity.Tenant{
		ID: testTenant, Name: "Tienda Uno", Status: entity.TenantActiva,
		TaxRate: dec("0.18"), CreatedAt: now, UpdatedAt: now,
	}
	txRunner := &memory.TxRunner{S: store}
	log := logger.New(logger.Config{Level: "error"})
	uc := cashsession.NewUseCase(txRunner, &memory.SessionRepo{S: store}, &memory.SaleRepo{S: store}, log)
	return store, uc
}

func cajero() auth.Identity {
	return auth.Identity{
		UserID: "user-caja", TenantID: testTenant, Role: entity.RoleVendedor,
		Scope: auth.ScopeTenant, TenantStatus: entity.TenantActiva,
	}
}

// ventaPagada registra una venta PAGADA imputada a la sesión.
func ventaPagada(store *memory.Store, sessionID, total string) {
	id := "sale-" + total
	store.Sales[id] = &entity.Sale{
		ID: id, TenantID: testTenant, Code: "V-" + total, SessionID: &sessionID,
		Status: entity.SalePagada, Total: dec(total),
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
}

func TestAbrirSesion_UnaPorCaja(t *testing.T) {
	_, uc := newEnv(t)
	ctx := context.Background()

	out, err := uc.Open(ctx, cajero(), dto.OpenSessionRequest{RegisterID: "caja-1", OpeningAmount: dec("100.00")})
	require.NoError(t, err)
	assert.Equal(t, string(entity.SessionAbierta), out.Status)

	_, err = uc.Open(ctx, cajero(), dto.OpenSessionRequest{RegisterID: "caja-1", OpeningAmount: dec("50.00")})
	assert.ErrorIs(t, err, domain.ErrSessionAlreadyOpen)

	// Otra caja sí puede abrir.
	_, err = uc.Open(ctx, cajero(), dto.OpenSessionRequest{RegisterID: "caja-2", OpeningAmount: dec("50.00")})
	assert.NoError(t, err)
}

func TestCerrarSesion_CalculaEsperadoYVariancia(t *testing.T) {
	store, uc := newEnv(t)
	ctx := context.Background()

	ses, err := uc.Open(ctx, cajero(), dto.OpenSessionRequest{RegisterID: "caja-1", OpeningAmount: dec("100.00")})
	require.NoError(t, err)

	ventaPagada(store, ses.ID, "70.80")
	ventaPagada(store, ses.ID, "29.20")
	require.NoError(t, uc.RecordMovement(ctx, cajero(), ses.ID, dto.CashMovementRequest{
		Type: "INGRESO", Amount: dec("20.00"), Reason: "sencillo para vuelto",
	}))
	require.NoError(t, uc.RecordMovement(ctx, cajero(), ses.ID, dto.CashMovementRequest{
		Type: "EGRESO", Amount: dec("15.00"), Reason: "compra de bolsas",
	}))

	// Esperado = 100 + (70.80 + 29.20) + 20 − 15 = 205.00; contado 200.00 → faltante 5.00.
	out, err := uc.Close(ctx, cajero(), ses.ID, dto.CloseSessionRequest{CountedAmount: dec("200.00")})
	require.NoError(t, err)

	assert.Equal(t, string(entity.SessionCerrada), out.Status)
	require.NotNil(t, out.ExpectedAmount)
	assert.True(t, out.ExpectedAmount.Equal(dec("205.00")), "esperado: %s", out.ExpectedAmount)
	require.NotNil(t, out.Variance)
	assert.True(t, out.Variance.Equal(dec("-5.00")), "variancia: %s", out.Variance)
	assert.True(t, out.TotalSales.Equal(dec("100.00")))
	require.NotNil(t, out.ClosedAt)
}

func TestCerrarSesion_DosVecesFalla(t *testing.T) {
	_, uc := newEnv(t)
	ctx := context.Background()

	ses, err := uc.Open(ctx, cajero(), dto.OpenSessionRequest{RegisterID: "caja-1", OpeningAmount: dec("100.00")})
	require.NoError(t, err)

	_, err = uc.Close(ctx, cajero(), ses.ID, dto.CloseSessionRequest{CountedAmount: dec("100.00")})
	require.NoError(t, err)

	_, err = uc.Close(ctx, cajero(), ses.ID, dto.CloseSessionRequest{CountedAmount: dec("100.00")})
	assert.ErrorIs(t, err, domain.ErrSessionAlreadyClosed)
}

func TestMovimiento_SesionCerradaRechaza(t *testing.T) {
	_, uc := newEnv(t)
	ctx := context.Background()

	ses, err := uc.Open(ctx, cajero(), dto.OpenSessionRequest{RegisterID: "caja-1", OpeningAmount: dec("0.00")})
	require.NoError(t, err)
	_, err = uc.Close(ctx, cajero(), ses.ID, dto.CloseSessionRequest{CountedAmount: dec("0.00")})
	require.NoError(t, err)

	err = uc.RecordMovement(ctx, cajero(), ses.ID, dto.CashMovementRequest{
		Type: "EGRESO", Amount: dec("5.00"), Reason: "taxi",
	})
	assert.ErrorIs(t, err, domain.ErrSessionAlreadyClosed)
}

func TestMovimiento_Validaciones(t *testing.T) {
	_, uc := newEnv(t)
	ctx := context.Background()
	ses, err := uc.Open(ctx, cajero(), dto.OpenSessionRequest{RegisterID: "caja-1", OpeningAmount: dec("0.00")})
	require.NoError(t, err)

	err = uc.RecordMovement(ctx, cajero(), ses.ID, dto.CashMovementRequest{Type: "RETIRO", Amount: dec("5.00"), Reason: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo desconocido")

	err = uc.RecordMovement(ctx, cajero(), ses.ID, dto.CashMovementRequest{Type: "EGRESO", Amount: dec("5.00")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "motivo requerido")

	err = uc.RecordMovement(ctx, cajero(), ses.ID, dto.CashMovementRequest{Type: "INGRESO", Amount: dec("-1.00"), Reason: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "monto debe ser positivo")
}

func TestResumen_SinCerrar(t *testing.T) {
	store, uc := newEnv(t)
	ctx := context.Background()

	ses, err := uc.Open(ctx, cajero(), dto.OpenSessionRequest{RegisterID: "caja-1", OpeningAmount: dec("50.00")})
	require.NoError(t, err)
	ventaPagada(store, ses.ID, "70.80")

	sum, err := uc.Summary(ctx, cajero(), ses.ID)
	require.NoError(t, err)
	assert.True(t, sum.TotalSales.Equal(dec("70.80")))
	assert.True(t, sum.ExpectedAmount.Equal(dec("120.80")))

	// El resumen no cierra la sesión.
	assert.Equal(t, entity.SessionAbierta, store.Sessions[ses.ID].Status)
}
