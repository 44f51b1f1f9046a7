package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tiendix/retail-api/internal/application/creditnote"
	"github.com/tiendix/retail-api/internal/application/dto"
)

// CreditNoteHandler maneja notas de crédito sobre ventas pagadas.
type CreditNoteHandler struct {
	uc *creditnote.UseCase
}

// NewCreditNoteHandler construye el handler.
func NewCreditNoteHandler(uc *creditnote.UseCase) *CreditNoteHandler {
	return &CreditNoteHandler{uc: uc}
}

// Create godoc
// @Summary      Emitir nota de crédito sobre una venta PAGADA
// @Tags         credit-notes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCreditNoteRequest  true  "Tipo y renglones"
// @Success      201   {object}  dto.CreditNoteResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/credit-notes [post]
func (h *CreditNoteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCreditNoteRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Create(c.Context(), GetIdentity(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get obtiene una nota de crédito por ID.
func (h *CreditNoteHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List lista notas de crédito del tenant; filtra por sale_id.
func (h *CreditNoteHandler) List(c *fiber.Ctx) error {
	if saleID := c.Query("sale_id"); saleID != "" {
		out, err := h.uc.ListBySale(c.Context(), GetIdentity(c), saleID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "VALIDATION", "paginación inválida")
	}
	out, err := h.uc.List(c.Context(), GetIdentity(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
