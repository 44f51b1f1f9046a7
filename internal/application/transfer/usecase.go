package transfer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tiendix/retail-api/internal/application/auth"
	"github.com/tiendix/retail-api/internal/application/dto"
	"github.com/tiendix/retail-api/internal/application/ledger"
	"github.com/tiendix/retail-api/internal/domain"
	"github.com/tiendix/retail-api/internal/domain/entity"
	"github.com/tiendix/retail-api/internal/domain/repository"
	"github.com/tiendix/retail-api/pkg/logger"
)

// UseCase maneja traslados entre almacenes con aprobación de cuatro ojos.
// La ejecución publica TRANSFERENCIA_SALIDA en origen y TRANSFERENCIA_ENTRADA
// en destino por cada renglón, en una sola transacción.
type UseCase struct {
	txRunner      ledger.TxRunner
	engine        *ledger.Engine
	transferRepo  repository.TransferRepository
	warehouseRepo repository.WarehouseRepository
	productRepo   repository.ProductRepository
	log           *logger.Logger
}

func NewUseCase(
	txRunner ledger.TxRunner,
	engine *ledger.Engine,
	transferRepo repository.TransferRepository,
	warehouseRepo repository.WarehouseRepository,
	productRepo repository.ProductRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		engine:        engine,
		transferRepo:  transferRepo,
		warehouseRepo: warehouseRepo,
		productRepo:   productRepo,
		log:           log,
	}
}

// Request crea una solicitud PENDIENTE. Origen y destino deben ser almacenes
// distintos del tenant.
func (uc *UseCase) Request(ctx context.Context, ident auth.Identity, req dto.CreateTransferRequest) (*dto.TransferResponse, error) {
	if err := ident.RequireTenantWrite(); err != nil {
		return nil, err
	}
	if !ident.HasRole(entity.RoleAdmin, entity.RoleBodeguero) {
		return nil, domain.ErrForbidden
	}
	if req.OriginID == "" || req.DestinationID == "" || len(req.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if req.OriginID == req.DestinationID {
		return nil, fmt.Errorf("%w: origen y destino deben ser distintos", domain.ErrInvalidInput)
	}

	for _, whID := range []string{req.OriginID, req.DestinationID} {
		wh, err := uc.warehouseRepo.GetByID(ident.TenantID, whID)
		if err != nil {
			return nil, err
		}
		if wh == nil {
			return nil, fmt.Errorf("%w: almacén %s", domain.ErrNotFound, whID)
		}
	}

	transferID := uuid.New().String()
	lines := make([]entity.TransferLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		if l.ProductID == "" || !l.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(ident.TenantID, l.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, l.ProductID)
		}
		lines = append(lines, entity.TransferLine{
			ID:         uuid.New().String(),
			TransferID: transferID,
			ProductID:  l.ProductID,
			Quantity:   l.Quantity,
		})
	}

	now := time.Now()
	transfer := &entity.Transfer{
		ID:            transferID,
		TenantID:      ident.TenantID,
		OriginID:      req.OriginID,
		DestinationID: req.DestinationID,
		Status:        entity.TransferPendiente,
		RequestedBy:   ident.UserID,
		Notes:         req.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
		Lines:         lines,
	}
	if err := uc.transferRepo.Create(transfer); err != nil {
		return nil, err
	}
	uc.log.Info().Str("transfer_id", transfer.ID).Msg("traslado solicitado")
	return toTransferResponse(transfer), nil
}

// Approve aprueba una solicitud PENDIENTE. Quien aprueba no puede ser quien
// solicitó (ErrSelfApproval) y debe ser admin.
func (uc *UseCase) Approve(ctx context.Context, ident auth.Identity, transferID string) (*dto.TransferResponse, error) {
	if err := ident.RequireTenantWrite(); err != nil {
		return nil, err
	}
	if !ident.HasRole(entity.RoleAdmin) {
		return nil, domain.ErrForbidden
	}
	var out *dto.TransferResponse
	err := uc.txRunner.Run(ctx, func(r ledger.Repos) error {
		transfer, err := r.Transfers.GetByIDForUpdate(ident.TenantID, transferID)
		if err != nil {
			return err
		}
		if transfer == nil {
			return domain.ErrNotFound
		}
		if transfer.Status != entity.TransferPendiente {
			return fmt.Errorf("%w: traslado %s", domain.ErrInvalidTransition, string(transfer.Status))
		}
		if transfer.RequestedBy == ident.UserID {
			return domain.ErrSelfApproval
		}
		approver := ident.UserID
		transfer.Status = entity.TransferAprobada
		transfer.ApprovedBy = &approver
		transfer.UpdatedAt = time.Now()
		if err := r.Transfers.Update(transfer); err != nil {
			return err
		}
		out = toTransferResponse(transfer)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Reject rechaza una solicitud PENDIENTE (terminal).
func (uc *UseCase) Reject(ctx context.Context, ident auth.Identity, transferID string) (*dto.TransferResponse, error) {
	if err := ident.RequireTenantWrite(); err != nil {
		return nil, err
	}
	if !ident.HasRole(entity.RoleAdmin) {
		return nil, domain.ErrForbidden
	}
	return uc.close(ctx, ident, transferID, entity.TransferPendiente, entity.TransferRechazada)
}

// Cancel cancela una solicitud PENDIENTE o APROBADA que aún no se ejecutó.
func (uc *UseCase) Cancel(ctx context.Context, ident auth.Identity, transferID string) (*dto.TransferResponse, error) {
	if err := ident.RequireTenantWrite(); err != nil {
		return nil, err
	}
	if !ident.HasRole(entity.RoleAdmin, entity.RoleBodeguero) {
		return nil, domain.ErrForbidden
	}
	var out *dto.TransferResponse
	err := uc.txRunner.Run(ctx, func(r ledger.Repos) error {
		transfer, err := r.Transfers.GetByIDForUpdate(ident.TenantID, transferID)
		if err != nil {
			return err
		}
		if transfer == nil {
			return domain.ErrNotFound
		}
		if transfer.Status.Terminal() {
			return fmt.Errorf("%w: traslado %s", domain.ErrInvalidTransition, string(transfer.Status))
		}
		transfer.Status = entity.TransferCancelada
		transfer.UpdatedAt = time.Now()
		if err := r.Transfers.Update(transfer); err != nil {
			return err
		}
		out = toTransferResponse(transfer)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Execute aplica un traslado APROBADA: por renglón publica la salida en origen
// y la entrada en destino (exactamente dos movimientos por renglón). Stock
// insuficiente en origen aborta todo; el traslado sigue APROBADA.
func (uc *UseCase) Execute(ctx context.Context, ident auth.Identity, transferID string) (*dto.TransferResponse, error) {
	if err := ident.RequireTenantWrite(); err != nil {
		return nil, err
	}
	if !ident.HasRole(entity.RoleAdmin, entity.RoleBodeguero) {
		return nil, domain.ErrForbidden
	}
	var out *dto.TransferResponse
	now := time.Now()
	err := uc.txRunner.Run(ctx, func(r ledger.Repos) error {
		transfer, err := r.Transfers.GetByIDForUpdate(ident.TenantID, transferID)
		if err != nil {
			return err
		}
		if transfer == nil {
			return domain.ErrNotFound
		}
		if transfer.Status != entity.TransferAprobada {
			return fmt.Errorf("%w: traslado %s", domain.ErrInvalidTransition, string(transfer.Status))
		}

		refDoc := "traslado: " + transfer.ID
		for _, line := range transfer.Lines {
			product, err := r.Products.GetByID(ident.TenantID, line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("%w: producto %s", domain.ErrNotFound, line.ProductID)
			}
			if _, err := uc.engine.PostMovementInTx(r.Movements, r.Stock, product, transfer.OriginID,
				entity.MovementTransferOut, line.Quantity, refDoc, ident.UserID, now); err != nil {
				return fmt.Errorf("%w (producto %s)", err, line.ProductID)
			}
			if _, err := uc.engine.PostMovementInTx(r.Movements, r.Stock, product, transfer.DestinationID,
				entity.MovementTransferIn, line.Quantity, refDoc, ident.UserID, now); err != nil {
				return err
			}
		}

		transfer.Status = entity.TransferEjecutada
		transfer.UpdatedAt = now
		if err := r.Transfers.Update(transfer); err != nil {
			return err
		}
		out = toTransferResponse(transfer)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("transfer_id", transferID).Msg("traslado ejecutado")
	return out, nil
}

// Get devuelve un traslado del tenant.
func (uc *UseCase) Get(ctx context.Context, ident auth.Identity, transferID string) (*dto.TransferResponse, error) {
	if err := ident.RequireTenantRead(); err != nil {
		return nil, err
	}
	transfer, err := uc.transferRepo.GetByID(ident.TenantID, transferID)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, domain.ErrNotFound
	}
	return toTransferResponse(transfer), nil
}

// List devuelve traslados del tenant, opcionalmente por estado.
func (uc *UseCase) List(ctx context.Context, ident auth.Identity, status string, page dto.PageRequest) ([]*dto.TransferResponse, error) {
	if err := ident.RequireTenantRead(); err != nil {
		return nil, err
	}
	page.DefaultPage()
	transfers, err := uc.transferRepo.ListByTenant(ident.TenantID, entity.TransferStatus(status), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TransferResponse, 0, len(transfers))
	for _, t := range transfers {
		out = append(out, toTransferResponse(t))
	}
	return out, nil
}

func (uc *UseCase) close(ctx context.Context, ident auth.Identity, transferID string, from, to entity.TransferStatus) (*dto.TransferResponse, error) {
	var out *dto.TransferResponse
	err := uc.txRunner.Run(ctx, func(r ledger.Repos) error {
		transfer, err := r.Transfers.GetByIDForUpdate(ident.TenantID, transferID)
		if err != nil {
			return err
		}
		if transfer == nil {
			return domain.ErrNotFound
		}
		if transfer.Status != from {
			return fmt.Errorf("%w: traslado %s", domain.ErrInvalidTransition, string(transfer.Status))
		}
		transfer.Status = to
		transfer.UpdatedAt = time.Now()
		if err := r.Transfers.Update(transfer); err != nil {
			return err
		}
		out = toTransferResponse(transfer)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func toTransferResponse(t *entity.Transfer) *dto.TransferResponse {
	lines := make([]dto.TransferLineRequest, 0, len(t.Lines))
	for _, l := range t.Lines {
		lines = append(lines, dto.TransferLineRequest{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return &dto.TransferResponse{
		ID:            t.ID,
		OriginID:      t.OriginID,
		DestinationID: t.DestinationID,
		Status:        string(t.Status),
		RequestedBy:   t.RequestedBy,
		ApprovedBy:    t.ApprovedBy,
		Lines:         lines,
		CreatedAt:     t.CreatedAt,
	}
}
