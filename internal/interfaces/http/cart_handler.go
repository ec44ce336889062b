package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Tpv-api/internal/application/dto"
	"github.com/jhoicas/Tpv-api/internal/application/usecase"
)

// CartHandler maneja las sesiones de carrito del terminal (protegido).
type CartHandler struct {
	uc *usecase.CartUseCase
}

// NewCartHandler construye el handler.
func NewCartHandler(uc *usecase.CartUseCase) *CartHandler {
	return &CartHandler{uc: uc}
}

// OpenSession godoc
// @Summary      Abrir sesión de venta
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  map[string]string
// @Router       /api/cart/sessions [post]
func (h *CartHandler) OpenSession(c *fiber.Ctx) error {
	id := h.uc.OpenSession()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"session_id": id})
}

// CloseSession godoc
// @Summary      Cerrar sesión de venta
// @Tags         cart
// @Security     Bearer
// @Param        session  path  string  true  "ID de sesión"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cart/sessions/{session} [delete]
func (h *CartHandler) CloseSession(c *fiber.Ctx) error {
	if err := h.uc.CloseSession(c.Params("session")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Get godoc
// @Summary      Estado del carrito
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Param        session  path  string  true  "ID de sesión"
// @Success      200  {object}  dto.CartDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cart/sessions/{session} [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Params("session"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddItem godoc
// @Summary      Añadir o fusionar línea
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        session  path  string  true  "ID de sesión"
// @Param        body     body  dto.AddItemRequest  true  "Línea a añadir"
// @Success      200  {object}  dto.CartDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cart/sessions/{session}/items [post]
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AddItem(c.Context(), c.Params("session"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RemoveItem godoc
// @Summary      Quitar línea
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Param        session  path  string  true  "ID de sesión"
// @Param        barcode  path  string  true  "Código de barras"
// @Success      200  {object}  dto.CartDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cart/sessions/{session}/items/{barcode} [delete]
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	out, err := h.uc.RemoveItem(c.Params("session"), c.Params("barcode"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetQuantity godoc
// @Summary      Fijar cantidad de una línea
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        session  path  string  true  "ID de sesión"
// @Param        barcode  path  string  true  "Código de barras"
// @Param        body     body  dto.SetQuantityRequest  true  "Cantidad"
// @Success      200  {object}  dto.CartDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cart/sessions/{session}/items/{barcode}/quantity [put]
func (h *CartHandler) SetQuantity(c *fiber.Ctx) error {
	var in dto.SetQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SetQuantity(c.Params("session"), c.Params("barcode"), in.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetPrice godoc
// @Summary      Override manual del precio de una línea
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        session  path  string  true  "ID de sesión"
// @Param        barcode  path  string  true  "Código de barras"
// @Param        body     body  dto.SetPriceRequest  true  "Precio"
// @Success      200  {object}  dto.CartDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cart/sessions/{session}/items/{barcode}/price [put]
func (h *CartHandler) SetPrice(c *fiber.Ctx) error {
	var in dto.SetPriceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SetPrice(c.Params("session"), c.Params("barcode"), in.Price)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Clear godoc
// @Summary      Vaciar el carrito
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Param        session  path  string  true  "ID de sesión"
// @Success      200  {object}  dto.CartDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cart/sessions/{session}/items [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	out, err := h.uc.Clear(c.Params("session"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
