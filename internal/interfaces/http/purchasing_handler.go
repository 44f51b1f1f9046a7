package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tiendix/retail-api/internal/application/dto"
	"github.com/tiendix/retail-api/internal/application/purchasing"
)

// PurchasingHandler maneja órdenes de compra y recepciones.
type PurchasingHandler struct {
	uc *purchasing.UseCase
}

// NewPurchasingHandler construye el handler.
func NewPurchasingHandler(uc *purchasing.UseCase) *PurchasingHandler {
	return &PurchasingHandler{uc: uc}
}

// CreateOrder crea una orden de compra en estado PENDIENTE.
func (h *PurchasingHandler) CreateOrder(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if len(in.Lines) == 0 {
		return badRequest(c, "VALIDATION", "la orden requiere al menos un renglón")
	}
	out, err := h.uc.CreateOrder(c.Context(), GetIdentity(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Send marca la orden como ENVIADA al proveedor.
func (h *PurchasingHandler) Send(c *fiber.Ctx) error {
	out, err := h.uc.Send(c.Context(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Confirm marca la orden como CONFIRMADA por el proveedor.
func (h *PurchasingHandler) Confirm(c *fiber.Ctx) error {
	out, err := h.uc.Confirm(c.Context(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Cancel cancela la orden; el stock ya recibido no se revierte.
func (h *PurchasingHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(c.Context(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Receive godoc
// @Summary      Registrar recepción parcial o total de una orden
// @Tags         purchasing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.ReceiveRequest  true  "Renglones recibidos"
// @Success      201   {object}  dto.ReceiptResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/receipts [post]
func (h *PurchasingHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if len(in.Lines) == 0 {
		return badRequest(c, "VALIDATION", "la recepción requiere al menos un renglón")
	}
	out, err := h.uc.Receive(c.Context(), GetIdentity(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetOrder obtiene una orden con sus renglones.
func (h *PurchasingHandler) GetOrder(c *fiber.Ctx) error {
	out, err := h.uc.GetOrder(c.Context(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListOrders lista órdenes del tenant; filtra por status.
func (h *PurchasingHandler) ListOrders(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "VALIDATION", "paginación inválida")
	}
	out, err := h.uc.ListOrders(c.Context(), GetIdentity(c), c.Query("status"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListReceipts lista las recepciones registradas de una orden.
func (h *PurchasingHandler) ListReceipts(c *fiber.Ctx) error {
	out, err := h.uc.ListReceipts(c.Context(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
