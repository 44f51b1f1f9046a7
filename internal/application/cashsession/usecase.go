package cashsession

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tiendix/retail-api/internal/application/auth"
	"github.com/tiendix/retail-api/internal/application/dto"
	"github.com/tiendix/retail-api/internal/application/ledger"
	"github.com/tiendix/retail-api/internal/domain"
	"github.com/tiendix/retail-api/internal/domain/entity"
	"github.com/tiendix/retail-api/internal/domain/money"
	"github.com/tiendix/retail-api/internal/domain/repository"
	"github.com/tiendix/retail-api/pkg/logger"
)

// UseCase maneja el ciclo de vida de sesiones de caja: apertura, movimientos
// manuales y cierre con arqueo. El esperado al cierre se deriva de las ventas
// PAGADA de la sesión más los ingresos/egresos manuales; nunca se edita a mano.
type UseCase struct {
	txRunner    ledger.TxRunner
	sessionRepo repository.CashSessionRepository
	saleRepo    repository.SaleRepository
	log         *logger.Logger
}

func NewUseCase(
	txRunner ledger.TxRunner,
	sessionRepo repository.CashSessionRepository,
	saleRepo repository.SaleRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		sessionRepo: sessionRepo,
		saleRepo:    saleRepo,
		log:         log,
	}
}

// Open abre una sesión sobre una caja registradora. A lo sumo una sesión
// ABIERTA por caja.
func (uc *UseCase) Open(ctx context.Context, ident auth.Identity, req dto.OpenSessionRequest) (*dto.CashSessionResponse, error) {
	if err := ident.RequireTenantWrite(); err != nil {
		return nil, err
	}
	if req.RegisterID == "" || req.OpeningAmount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	open, err := uc.sessionRepo.GetOpenByRegister(ident.TenantID, req.RegisterID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, domain.ErrSessionAlreadyOpen
	}

	session := &entity.CashSession{
		ID:            uuid.New().String(),
		TenantID:      ident.TenantID,
		RegisterID:    req.RegisterID,
		OpenedBy:      ident.UserID,
		Status:        entity.SessionAbierta,
		OpeningAmount: money.Round(req.OpeningAmount),
		TotalSales:    decimal.Zero,
		OpenedAt:      time.Now(),
	}
	if err := uc.sessionRepo.Create(session); err != nil {
		return nil, err
	}
	uc.log.Info().Str("session_id", session.ID).Str("register_id", session.RegisterID).Msg("sesión de caja abierta")
	return toSessionResponse(session), nil
}

// RecordMovement registra un ingreso o egreso manual en una sesión abierta.
func (uc *UseCase) RecordMovement(ctx context.Context, ident auth.Identity, sessionID string, req dto.CashMovementRequest) error {
	if err := ident.RequireTenantWrite(); err != nil {
		return err
	}
	movType := entity.CashMovementType(req.Type)
	if movType != entity.CashIngreso && movType != entity.CashEgreso {
		return domain.ErrInvalidInput
	}
	if !req.Amount.GreaterThan(decimal.Zero) || req.Reason == "" {
		return domain.ErrInvalidInput
	}

	session, err := uc.sessionRepo.GetByID(ident.TenantID, sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return domain.ErrNotFound
	}
	if session.Status != entity.SessionAbierta {
		return domain.ErrSessionAlreadyClosed
	}

	return uc.sessionRepo.AddMovement(&entity.CashMovement{
		ID:        uuid.New().String(),
		SessionID: session.ID,
		Type:      movType,
		Amount:    money.Round(req.Amount),
		Reason:    req.Reason,
		CreatedBy: ident.UserID,
		CreatedAt: time.Now(),
	})
}

// Close cierra la sesión calculando el monto esperado y la diferencia contra
// lo contado. La diferencia se registra tal cual; cerrar dos veces falla.
func (uc *UseCase) Close(ctx context.Context, ident auth.Identity, sessionID string, req dto.CloseSessionRequest) (*dto.CashSessionResponse, error) {
	if err := ident.RequireTenantWrite(); err != nil {
		return nil, err
	}
	if req.CountedAmount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	var out *dto.CashSessionResponse
	err := uc.txRunner.Run(ctx, func(r ledger.Repos) error {
		session, err := r.Sessions.GetByIDForUpdate(ident.TenantID, sessionID)
		if err != nil {
			return err
		}
		if session == nil {
			return domain.ErrNotFound
		}
		if session.Status != entity.SessionAbierta {
			return domain.ErrSessionAlreadyClosed
		}

		expected, totalSales, err := uc.expectedAmount(r.Sales, r.Sessions, session)
		if err != nil {
			return err
		}
		counted := money.Round(req.CountedAmount)
		variance := counted.Sub(expected)
		now := time.Now()

		session.Status = entity.SessionCerrada
		session.ClosingAmount = &counted
		session.ExpectedAmount = &expected
		session.Variance = &variance
		session.TotalSales = totalSales
		session.Notes = req.Notes
		session.ClosedAt = &now
		if err := r.Sessions.Update(session); err != nil {
			return err
		}
		out = toSessionResponse(session)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("session_id", sessionID).Str("variance", out.Variance.String()).Msg("sesión de caja cerrada")
	return out, nil
}

// Summary devuelve los montos acumulados de la sesión sin cerrarla, para la
// pantalla de arqueo.
func (uc *UseCase) Summary(ctx context.Context, ident auth.Identity, sessionID string) (*dto.CashSessionSummary, error) {
	if err := ident.RequireTenantRead(); err != nil {
		return nil, err
	}
	session, err := uc.sessionRepo.GetByID(ident.TenantID, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrNotFound
	}

	totalSales, err := uc.saleRepo.SumPaidBySession(session.ID)
	if err != nil {
		return nil, err
	}
	ingresos, egresos, err := sumMovements(uc.sessionRepo, session.ID)
	if err != nil {
		return nil, err
	}
	return &dto.CashSessionSummary{
		OpeningAmount:  session.OpeningAmount,
		TotalSales:     totalSales,
		TotalIngresos:  ingresos,
		TotalEgresos:   egresos,
		ExpectedAmount: session.OpeningAmount.Add(totalSales).Add(ingresos).Sub(egresos),
	}, nil
}

// Get devuelve una sesión del tenant.
func (uc *UseCase) Get(ctx context.Context, ident auth.Identity, sessionID string) (*dto.CashSessionResponse, error) {
	if err := ident.RequireTenantRead(); err != nil {
		return nil, err
	}
	session, err := uc.sessionRepo.GetByID(ident.TenantID, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrNotFound
	}
	return toSessionResponse(session), nil
}

// List devuelve las sesiones del tenant, más recientes primero.
func (uc *UseCase) List(ctx context.Context, ident auth.Identity, page dto.PageRequest) ([]*dto.CashSessionResponse, error) {
	if err := ident.RequireTenantRead(); err != nil {
		return nil, err
	}
	page.DefaultPage()
	sessions, err := uc.sessionRepo.ListByTenant(ident.TenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CashSessionResponse, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toSessionResponse(s))
	}
	return out, nil
}

func (uc *UseCase) expectedAmount(sales repository.SaleRepository, sessions repository.CashSessionRepository, session *entity.CashSession) (expected, totalSales decimal.Decimal, err error) {
	totalSales, err = sales.SumPaidBySession(session.ID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	ingresos, egresos, err := sumMovements(sessions, session.ID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	expected = session.OpeningAmount.Add(totalSales).Add(ingresos).Sub(egresos)
	return expected, totalSales, nil
}

func sumMovements(sessions repository.CashSessionRepository, sessionID string) (ingresos, egresos decimal.Decimal, err error) {
	movs, err := sessions.ListMovements(sessionID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	ingresos, egresos = decimal.Zero, decimal.Zero
	for _, m := range movs {
		if m.Type == entity.CashIngreso {
			ingresos = ingresos.Add(m.Amount)
		} else {
			egresos = egresos.Add(m.Amount)
		}
	}
	return ingresos, egresos, nil
}

func toSessionResponse(s *entity.CashSession) *dto.CashSessionResponse {
	return &dto.CashSessionResponse{
		ID:             s.ID,
		RegisterID:     s.RegisterID,
		Status:         string(s.Status),
		OpeningAmount:  s.OpeningAmount,
		ClosingAmount:  s.ClosingAmount,
		ExpectedAmount: s.ExpectedAmount,
		Variance:       s.Variance,
		TotalSales:     s.TotalSales,
		Notes:          s.Notes,
		OpenedAt:       s.OpenedAt,
		ClosedAt:       s.ClosedAt,
	}
}
