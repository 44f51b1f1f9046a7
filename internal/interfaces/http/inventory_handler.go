package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tiendix/retail-api/internal/application/dto"
	"github.com/tiendix/retail-api/internal/application/ledger"
	"github.com/tiendix/retail-api/internal/domain/entity"
)

// InventoryHandler maneja ajustes manuales, stock en mano y kardex.
type InventoryHandler struct {
	engine *ledger.Engine
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(engine *ledger.Engine) *InventoryHandler {
	return &InventoryHandler{engine: engine}
}

// Adjust godoc
// @Summary      Registrar ajuste manual de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustmentRequest  true  "Ajuste (cantidad positiva entrada, negativa salida)"
// @Success      204
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	err := h.engine.RegisterAdjustment(c.Context(), GetIdentity(c), ledger.AdjustmentInput{
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Quantity:    in.Quantity,
		Reason:      in.Reason,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Stock devuelve la cantidad en mano de una llave (producto, almacén).
func (h *InventoryHandler) Stock(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	warehouseID := c.Query("warehouse_id")
	if productID == "" || warehouseID == "" {
		return badRequest(c, "VALIDATION", "product_id y warehouse_id son requeridos")
	}
	qty, err := h.engine.CurrentStock(GetIdentity(c), productID, warehouseID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StockResponse{ProductID: productID, WarehouseID: warehouseID, Quantity: qty})
}

// Kardex godoc
// @Summary      Historial de movimientos de una llave (producto, almacén)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  true   "ID del producto"
// @Param        warehouse_id  query  string  true   "ID del almacén"
// @Param        from          query  string  false  "Desde (RFC3339)"
// @Param        to            query  string  false  "Hasta (RFC3339)"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/inventory/kardex [get]
func (h *InventoryHandler) Kardex(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	warehouseID := c.Query("warehouse_id")
	if productID == "" || warehouseID == "" {
		return badRequest(c, "VALIDATION", "product_id y warehouse_id son requeridos")
	}
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return badRequest(c, "VALIDATION", "from debe ser RFC3339")
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return badRequest(c, "VALIDATION", "to debe ser RFC3339")
	}

	out := []*dto.MovementResponse{}
	for mov, err := range h.engine.History(GetIdentity(c), productID, warehouseID, from, to) {
		if err != nil {
			return respondError(c, err)
		}
		out = append(out, toMovementResponse(mov))
	}
	return c.JSON(out)
}

func parseTimeQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toMovementResponse(m *entity.LedgerMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:           m.ID,
		ProductID:    m.ProductID,
		WarehouseID:  m.WarehouseID,
		Type:         string(m.Type),
		Quantity:     m.Quantity,
		StockBefore:  m.StockBefore,
		StockAfter:   m.StockAfter,
		ReferenceDoc: m.ReferenceDoc,
		CreatedBy:    m.CreatedBy,
		CreatedAt:    m.CreatedAt,
	}
}
