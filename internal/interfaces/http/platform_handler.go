package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tiendix/retail-api/internal/application/dto"
	"github.com/tiendix/retail-api/internal/application/platform"
)

// PlatformHandler maneja el aprovisionamiento y ciclo de vida de tenants
// (solo superadmin de plataforma).
type PlatformHandler struct {
	uc *platform.UseCase
}

// NewPlatformHandler construye el handler.
func NewPlatformHandler(uc *platform.UseCase) *PlatformHandler {
	return &PlatformHandler{uc: uc}
}

// Provision crea un tenant ACTIVA con su usuario admin inicial.
func (h *PlatformHandler) Provision(c *fiber.Ctx) error {
	var in dto.ProvisionTenantRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Name == "" || in.AdminEmail == "" || in.AdminPassword == "" {
		return badRequest(c, "VALIDATION", "name, admin_email y admin_password son requeridos")
	}
	out, err := h.uc.Provision(c.Context(), GetIdentity(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Suspend suspende el tenant: sus escrituras quedan rechazadas.
func (h *PlatformHandler) Suspend(c *fiber.Ctx) error {
	out, err := h.uc.Suspend(c.Context(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Reactivate reactiva un tenant suspendido.
func (h *PlatformHandler) Reactivate(c *fiber.Ctx) error {
	out, err := h.uc.Reactivate(c.Context(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get obtiene un tenant por ID.
func (h *PlatformHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List lista los tenants de la plataforma.
func (h *PlatformHandler) List(c *fiber.Ctx) error {
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
