package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tiendix/retail-api/internal/application/cashsession"
	"github.com/tiendix/retail-api/internal/application/dto"
)

// CashSessionHandler maneja apertura, movimientos y cierre de sesiones de caja.
type CashSessionHandler struct {
	uc *cashsession.UseCase
}

// NewCashSessionHandler construye el handler.
func NewCashSessionHandler(uc *cashsession.UseCase) *CashSessionHandler {
	return &CashSessionHandler{uc: uc}
}

// Open abre una sesión de caja; una sola sesión ABIERTA por caja.
func (h *CashSessionHandler) Open(c *fiber.Ctx) error {
	var in dto.OpenSessionRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.RegisterID == "" {
		return badRequest(c, "VALIDATION", "register_id es requerido")
	}
	out, err := h.uc.Open(c.Context(), GetIdentity(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RecordMovement registra un ingreso o egreso manual de la sesión.
func (h *CashSessionHandler) RecordMovement(c *fiber.Ctx) error {
	var in dto.CashMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := h.uc.RecordMovement(c.Context(), GetIdentity(c), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Close godoc
// @Summary      Cerrar sesión de caja (calcula esperado y variancia)
// @Tags         cash-sessions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la sesión"
// @Param        body  body  dto.CloseSessionRequest  true  "Monto contado"
// @Success      200   {object}  dto.CashSessionResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/cash-sessions/{id}/close [post]
func (h *CashSessionHandler) Close(c *fiber.Ctx) error {
	var in dto.CloseSessionRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Close(c.Context(), GetIdentity(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Summary devuelve el resumen de la sesión (ventas, ingresos, egresos).
func (h *CashSessionHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Context(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get obtiene una sesión por ID.
func (h *CashSessionHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List lista sesiones del tenant, más recientes primero.
func (h *CashSessionHandler) List(c *fiber.Ctx) error {
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
