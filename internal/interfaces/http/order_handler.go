package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Tpv-api/internal/application/usecase"
)

// OrderHandler consultas sobre pedidos cerrados (protegido).
type OrderHandler struct {
	uc *usecase.OrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// GetByID godoc
// @Summary      Obtener pedido por ID
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del pedido"
// @Success      200  {object}  entity.Order
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Archive godoc
// @Summary      Archivar pedido
// @Tags         orders
// @Security     Bearer
// @Param        id  path  string  true  "ID del pedido"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/archive [post]
func (h *OrderHandler) Archive(c *fiber.Ctx) error {
	if err := h.uc.Archive(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ExportFacturae godoc
// @Summary      Exportar pedido como XML Facturae
// @Tags         orders
// @Security     Bearer
// @Produce      application/xml
// @Param        id  path  string  true  "ID del pedido"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse  "el pedido no es factura completa"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/facturae [get]
func (h *OrderHandler) ExportFacturae(c *fiber.Ctx) error {
	xml, err := h.uc.ExportFacturae(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/xml; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="facturae.xml"`)
	return c.Send(xml)
}
