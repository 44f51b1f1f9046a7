package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiendix/retail-api/internal/application/auth"
	"github.com/tiendix/retail-api/internal/application/reports"
	"github.com/tiendix/retail-api/internal/domain"
	"github.com/tiendix/retail-api/internal/domain/entity"
	"github.com/tiendix/retail-api/internal/infrastructure/memory"
)

const testTenant = "tenant-1"

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func tenantIdent() auth.Identity {
	return auth.Identity{
		UserID: "u-admin", TenantID: testTenant, Role: entity.RoleAdmin,
		Scope: auth.ScopeTenant, TenantStatus: entity.TenantActiva,
	}
}

func seedVenta(store *memory.Store, id string, status entity.SaleStatus, total string, at time.Time) {
	store.Sales[id] = &entity.Sale{
		ID: id, TenantID: testTenant, Code: "V-" + id, WarehouseID: "wh-1",
		Status: status, Total: dec(total), CreatedAt: at, UpdatedAt: at,
	}
}

func TestDashboard_ContadoresPorEstadoYTotalDelDia(t *testing.T) {
	store := memory.NewStore()
	now := time.Now()
	ayer := now.Add(-24 * time.Hour)

	seedVenta(store, "s1", entity.SalePagada, "70.80", now)
	seedVenta(store, "s2", entity.SalePagada, "29.20", now)
	seedVenta(store, "s3", entity.SalePendientePago, "50.00", now)
	// Pagada pero de ayer: cuenta en el estado, no en el total del día.
	seedVenta(store, "s4", entity.SalePagada, "100.00", ayer)

	store.Orders["o1"] = &entity.PurchaseOrder{
		ID: "o1", TenantID: testTenant, Status: entity.OrderConfirmada, CreatedAt: now,
	}
	store.Transfers["t1"] = &entity.Transfer{
		ID: "t1", TenantID: testTenant, Status: entity.TransferPendiente, CreatedAt: now,
	}
	// Venta de otro tenant: invisible en el dashboard.
	store.Sales["ajena"] = &entity.Sale{
		ID: "ajena", TenantID: "tenant-2", Status: entity.SalePagada,
		Total: dec("999.00"), CreatedAt: now,
	}

	uc := reports.NewUseCase(&memory.ReportsRepo{S: store})
	out, err := uc.Dashboard(context.Background(), tenantIdent())
	require.NoError(t, err)

	assert.Equal(t, 3, out.SalesByStatus[string(entity.SalePagada)])
	assert.Equal(t, 1, out.SalesByStatus[string(entity.SalePendientePago)])
	assert.Equal(t, 1, out.OrdersByStatus[string(entity.OrderConfirmada)])
	assert.Equal(t, 1, out.TransfersByStatus[string(entity.TransferPendiente)])
	assert.True(t, out.SalesTotalToday.Equal(dec("100.00")), "solo las PAGADA de hoy: %s", out.SalesTotalToday)
}

func TestDashboard_DisponibleConTenantSuspendido(t *testing.T) {
	store := memory.NewStore()
	uc := reports.NewUseCase(&memory.ReportsRepo{S: store})

	ident := tenantIdent()
	ident.TenantStatus = entity.TenantSuspendida
	_, err := uc.Dashboard(context.Background(), ident)
	assert.NoError(t, err, "el dashboard es lectura, sigue disponible suspendido")
}

func TestDashboard_SinTenantRechazado(t *testing.T) {
	store := memory.NewStore()
	uc := reports.NewUseCase(&memory.ReportsRepo{S: store})

	_, err := uc.Dashboard(context.Background(), auth.Identity{
		UserID: "u-root", Role: entity.RoleSuperadmin, Scope: auth.ScopePlatform,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
