package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tiendix/retail-api/internal/application/dto"
	"github.com/tiendix/retail-api/internal/application/storefront"
)

// StorefrontHandler maneja el autoservicio del cliente final.
type StorefrontHandler struct {
	uc *storefront.UseCase
}

// NewStorefrontHandler construye el handler.
func NewStorefrontHandler(uc *storefront.UseCase) *StorefrontHandler {
	return &StorefrontHandler{uc: uc}
}

// CreateOrder godoc
// @Summary      Crear pedido online (precios congelados, no mueve stock)
// @Tags         storefront
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStorefrontOrderRequest  true  "Renglones del pedido"
// @Success      201   {object}  dto.StorefrontOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/storefront/orders [post]
func (h *StorefrontHandler) CreateOrder(c *fiber.Ctx) error {
	var in dto.CreateStorefrontOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if len(in.Lines) == 0 {
		return badRequest(c, "VALIDATION", "el pedido requiere al menos un renglón")
	}
	out, err := h.uc.CreateOrder(c.Context(), GetIdentity(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// MyOrders lista los pedidos del cliente autenticado.
func (h *StorefrontHandler) MyOrders(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "VALIDATION", "parámetros de página inválidos")
	}
	out, err := h.uc.MyOrders(c.Context(), GetIdentity(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetOrder obtiene un pedido propio con sus renglones.
func (h *StorefrontHandler) GetOrder(c *fiber.Ctx) error {
	out, err := h.uc.GetOrder(c.Context(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CancelOrder cancela un pedido propio en PENDIENTE o CONFIRMADO.
func (h *StorefrontHandler) CancelOrder(c *fiber.Ctx) error {
	out, err := h.uc.CancelOrder(c.Context(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
