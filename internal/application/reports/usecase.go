package reports

import (
	"context"
	"time"

	"github.com/tiendix/retail-api/internal/application/auth"
	"github.com/tiendix/retail-api/internal/application/dto"
	"github.com/tiendix/retail-api/internal/domain/repository"
)

// UseCase expone proyecciones de solo lectura para el dashboard del tenant.
type UseCase struct {
	reportsRepo repository.ReportsRepository
}

func NewUseCase(reportsRepo repository.ReportsRepository) *UseCase {
	return &UseCase{reportsRepo: reportsRepo}
}

// Dashboard devuelve los contadores por estado y el total vendido del día.
// Disponible también con tenant suspendido (es lectura).
func (uc *UseCase) Dashboard(ctx context.Context, ident auth.Identity) (*dto.DashboardResponse, error) {
	if err := ident.RequireTenantRead(); err != nil {
		return nil, err
	}

	sales, err := uc.reportsRepo.SalesCountByStatus(ident.TenantID)
	if err != nil {
		return nil, err
	}
	orders, err := uc.reportsRepo.OrdersCountByStatus(ident.TenantID)
	if err != nil {
		return nil, err
	}
	transfers, err := uc.reportsRepo.TransfersCountByStatus(ident.TenantID)
	if err != nil {
		return nil, err
	}
	total, err := uc.reportsRepo.SalesTotalForDay(ident.TenantID, time.Now())
	if err != nil {
		return nil, err
	}

	out := &dto.DashboardResponse{
		SalesByStatus:     make(map[string]int, len(sales)),
		OrdersByStatus:    make(map[string]int, len(orders)),
		TransfersByStatus: make(map[string]int, len(transfers)),
		SalesTotalToday:   total,
	}
	for k, v := range sales {
		out.SalesByStatus[string(k)] = v
	}
	for k, v := range orders {
		out.OrdersByStatus[string(k)] = v
	}
	for k, v := range transfers {
		out.TransfersByStatus[string(k)] = v
	}
	return out, nil
}
