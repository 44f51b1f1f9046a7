package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tiendix/retail-api/internal/application/reports"
)

// DashboardHandler expone las proyecciones de solo lectura para el tablero.
type DashboardHandler struct {
	uc *reports.UseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *reports.UseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Dashboard devuelve conteos por estado y el total vendido del día. Disponible
// aun con el tenant suspendido (es solo lectura).
func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.Context(), GetIdentity(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
