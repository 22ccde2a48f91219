package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/invorya/inventra-api/internal/application/dto"
	"github.com/invorya/inventra-api/internal/application/ledger"
	"github.com/invorya/inventra-api/internal/domain"
	"github.com/invorya/inventra-api/pkg/validator"
)

// SaleHandler maneja las peticiones HTTP para Sale (protegido).
// Una venta descuenta stock previa verificación de disponibilidad; si no
// alcanza, responde 422 con el stock disponible en el mensaje.
type SaleHandler struct {
	uc *ledger.SaleUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *ledger.SaleUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// saleError traduce los errores del ledger de ventas al envelope HTTP.
func saleError(c *fiber.Ctx, err error) error {
	if stockErr, ok := domain.IsInsufficientStock(err); ok {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.FailWith(stockErr.Error(), map[string][]string{
			"quantity_sold": {stockErr.Error()},
		}))
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("venta o producto no encontrado"))
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail(err.Error()))
}

// Create godoc
// @Summary      Registrar venta (descuenta stock)
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Datos de la venta"
// @Success      201   {object}  dto.Response
// @Failure      404   {object}  dto.Response
// @Failure      422   {object}  dto.Response
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("cuerpo inválido"))
	}
	if verrs := validator.Validate(in); verrs != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.FailWith("datos inválidos", verrs))
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return saleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("venta registrada", out))
}

// GetByID godoc
// @Summary      Obtener venta por ID
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail(err.Error()))
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("venta no encontrada"))
	}
	return c.JSON(dto.OK("venta", out))
}

// List godoc
// @Summary      Listar ventas (más recientes primero)
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Response
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail(err.Error()))
	}
	return c.JSON(dto.OK("ventas", out))
}

// Update godoc
// @Summary      Actualizar venta (revierte el descuento previo y aplica el nuevo)
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la venta"
// @Param        body  body  dto.UpdateSaleRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.Response
// @Failure      404   {object}  dto.Response
// @Failure      422   {object}  dto.Response
// @Router       /api/sales/{id} [put]
func (h *SaleHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("cuerpo inválido"))
	}
	if verrs := validator.Validate(in); verrs != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.FailWith("datos inválidos", verrs))
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return saleError(c, err)
	}
	return c.JSON(dto.OK("venta actualizada", out))
}

// Delete godoc
// @Summary      Eliminar venta (devuelve el stock descontado)
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/sales/{id} [delete]
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("venta no encontrada"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail(err.Error()))
	}
	return c.JSON(dto.OKMessage("venta eliminada"))
}
