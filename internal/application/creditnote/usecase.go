package creditnote

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
	"github.com/tiendix/retail-api/internal/domain/money"
	"github.com/tiendix/retail-api/internal/domain/repository"
	"github.com/tiendix/retail-api/pkg/logger"
)

// UseCase emite notas de crédito sobre ventas PAGADA. La cantidad acumulada
// acreditada por renglón nunca supera la vendida (ErrOverRefund) y solo los
// tipos con devolución física publican DEVOLUCION_ENTRADA en el kardex.
type UseCase struct {
	txRunner   ledger.TxRunner
	engine     *ledger.Engine
	noteRepo   repository.CreditNoteRepository
	saleRepo   repository.SaleRepository
	tenantRepo repository.TenantRepository
	log        *logger.Logger
}

func NewUseCase(
	txRunner ledger.TxRunner,
	engine *ledger.Engine,
	noteRepo repository.CreditNoteRepository,
	saleRepo repository.SaleRepository,
	tenantRepo repository.TenantRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:   txRunner,
		engine:     engine,
		noteRepo:   noteRepo,
		saleRepo:   saleRepo,
		tenantRepo: tenantRepo,
		log:        log,
	}
}

// Create emite una nota de crédito. Los montos se valoran al precio unitario
// congelado de la venta, nunca al precio actual del catálogo.
func (uc *UseCase) Create(ctx context.Context, ident auth.Identity, req dto.CreateCreditNoteRequest) (*dto.CreditNoteResponse, error) {
	if err := ident.RequireTenantWrite(); err != nil {
		return nil, err
	}
	if !ident.HasRole(entity.RoleAdmin, entity.RoleVendedor) {
		return nil, domain.ErrForbidden
	}
	noteType := entity.CreditNoteType(req.Type)
	if !noteType.Valid() || req.SaleID == "" || len(req.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}

	tenant, err := uc.tenantRepo.GetByID(ident.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrNotFound
	}

	var out *dto.CreditNoteResponse
	now := time.Now()
	err = uc.txRunner.Run(ctx, func(r ledger.Repos) error {
		sale, err := r.Sales.GetByIDForUpdate(ident.TenantID, req.SaleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if sale.Status != entity.SalePagada {
			return fmt.Errorf("%w: venta %s", domain.ErrInvalidTransition, string(sale.Status))
		}

		credited, err := r.CreditNotes.CreditedBySale(sale.ID)
		if err != nil {
			return err
		}
		byLineID := make(map[string]*entity.SaleLine, len(sale.Lines))
		for i := range sale.Lines {
			byLineID[sale.Lines[i].ID] = &sale.Lines[i]
		}

		noteID := uuid.New().String()
		subtotal := decimal.Zero
		lines := make([]entity.CreditNoteLine, 0, len(req.Lines))
		for _, rl := range req.Lines {
			line, ok := byLineID[rl.SaleLineID]
			if !ok {
				return fmt.Errorf("%w: renglón %s", domain.ErrNotFound, rl.SaleLineID)
			}
			if !rl.Quantity.GreaterThan(decimal.Zero) {
				return domain.ErrInvalidInput
			}
			// credited acumula también los renglones previos de esta misma
			// nota, por si la solicitud repite un SaleLineID.
			credited[line.ID] = credited[line.ID].Add(rl.Quantity)
			if credited[line.ID].GreaterThan(line.Quantity) {
				return fmt.Errorf("%w: renglón %s", domain.ErrOverRefund, line.ID)
			}
			lineSubtotal := money.Round(rl.Quantity.Mul(line.UnitPrice))
			subtotal = subtotal.Add(lineSubtotal)
			lines = append(lines, entity.CreditNoteLine{
				ID:           uuid.New().String(),
				CreditNoteID: noteID,
				SaleLineID:   line.ID,
				ProductID:    line.ProductID,
				Quantity:     rl.Quantity,
				UnitPrice:    line.UnitPrice,
				Subtotal:     lineSubtotal,
			})
		}

		subtotal = money.Round(subtotal)
		tax := money.ApplyRate(subtotal, tenant.TaxRate)
		note := &entity.CreditNote{
			ID:        noteID,
			TenantID:  ident.TenantID,
			SaleID:    sale.ID,
			Type:      noteType,
			Reason:    req.Reason,
			Subtotal:  subtotal,
			Tax:       tax,
			Total:     subtotal.Add(tax),
			CreatedBy: ident.UserID,
			CreatedAt: now,
			Lines:     lines,
		}
		if err := r.CreditNotes.Create(note); err != nil {
			return err
		}

		if noteType.MovesStock() {
			refDoc := "nota de crédito: " + note.ID
			for _, l := range note.Lines {
				product, err := r.Products.GetByID(ident.TenantID, l.ProductID)
				if err != nil {
					return err
				}
				if product == nil {
					return fmt.Errorf("%w: producto %s", domain.ErrNotFound, l.ProductID)
				}
				if _, err := uc.engine.PostMovementInTx(r.Movements, r.Stock, product, sale.WarehouseID,
					entity.MovementRefundIn, l.Quantity, refDoc, ident.UserID, now); err != nil {
					return err
				}
			}
		}

		out = toNoteResponse(note)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("credit_note_id", out.ID).Str("sale_id", req.SaleID).Str("type", req.Type).Msg("nota de crédito emitida")
	return out, nil
}

// Get devuelve una nota de crédito del tenant.
func (uc *UseCase) Get(ctx context.Context, ident auth.Identity, noteID string) (*dto.CreditNoteResponse, error) {
	if err := ident.RequireTenantRead(); err != nil {
		return nil, err
	}
	note, err := uc.noteRepo.GetByID(ident.TenantID, noteID)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, domain.ErrNotFound
	}
	return toNoteResponse(note), nil
}

// ListBySale devuelve las notas emitidas sobre una venta.
func (uc *UseCase) ListBySale(ctx context.Context, ident auth.Identity, saleID string) ([]*dto.CreditNoteResponse, error) {
	if err := ident.RequireTenantRead(); err != nil {
		return nil, err
	}
	sale, err := uc.saleRepo.GetByID(ident.TenantID, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	notes, err := uc.noteRepo.ListBySale(sale.ID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CreditNoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, toNoteResponse(n))
	}
	return out, nil
}

// List devuelve notas de crédito del tenant, más recientes primero.
func (uc *UseCase) List(ctx context.Context, ident auth.Identity, page dto.PageRequest) ([]*dto.CreditNoteResponse, error) {
	if err := ident.RequireTenantRead(); err != nil {
		return nil, err
	}
	page.DefaultPage()
	notes, err := uc.noteRepo.ListByTenant(ident.TenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CreditNoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, toNoteResponse(n))
	}
	return out, nil
}

func toNoteResponse(n *entity.CreditNote) *dto.CreditNoteResponse {
	return &dto.CreditNoteResponse{
		ID:        n.ID,
		SaleID:    n.SaleID,
		Type:      string(n.Type),
		Reason:    n.Reason,
		Subtotal:  n.Subtotal,
		Tax:       n.Tax,
		Total:     n.Total,
		CreatedAt: n.CreatedAt,
	}
}
