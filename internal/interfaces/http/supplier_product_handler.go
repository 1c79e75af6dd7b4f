package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/peakers-pos-api/internal/application/dto"
	"github.com/jhoicas/peakers-pos-api/internal/application/inventory"
	"github.com/jhoicas/peakers-pos-api/internal/application/payments"
)

// SupplierProductHandler reabastecimiento de productos y pagos a proveedores.
type SupplierProductHandler struct {
	restock  *inventory.RestockUseCase
	payments *payments.PaymentLedgerUseCase
	log      zerolog.Logger
}

// NewSupplierProductHandler construye el handler.
func NewSupplierProductHandler(restock *inventory.RestockUseCase, pay *payments.PaymentLedgerUseCase, log zerolog.Logger) *SupplierProductHandler {
	return &SupplierProductHandler{restock: restock, payments: pay, log: log}
}

// Restock godoc
// @Summary      Reabastecer producto desde proveedor
// @Description  Suma stockSupplied al producto y consume el material de su receta.
// @Tags         supplier-products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RestockRequest  true  "Proveedor, producto, unidades, precio y fecha"
// @Success      201   {object}  dto.SupplierProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/supplier-products [post]
func (h *SupplierProductHandler) Restock(c *fiber.Ctx) error {
	var in dto.RestockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.restock.RestockProduct(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Adjust godoc
// @Summary      Ajustar un reabastecimiento existente
// @Description  Aplica la diferencia de unidades al stock y al material; una reducción devuelve material. Los campos omitidos conservan su valor.
// @Tags         supplier-products
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del registro de reabastecimiento"
// @Param        body  body  dto.AdjustRestockRequest  true  "Nuevas unidades, precio y fecha"
// @Success      200   {object}  dto.SupplierProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/supplier-products/{id} [put]
func (h *SupplierProductHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustRestockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.restock.AdjustRestock(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// RecordPayment godoc
// @Summary      Registrar pago de un reabastecimiento
// @Tags         supplier-products
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID del registro de reabastecimiento"
// @Param        body  body  dto.PaymentRequest  true  "Monto, método y referencia"
// @Success      201   {object}  dto.RecordPaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/supplier-products/{id}/payments [post]
func (h *SupplierProductHandler) RecordPayment(c *fiber.Ctx) error {
	var in dto.PaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.payments.RecordSupplierProductPayment(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// PaymentHistory godoc
// @Summary      Historial de pagos y saldo de un reabastecimiento
// @Tags         supplier-products
// @Produce      json
// @Param        id   path  string  true  "ID del registro de reabastecimiento"
// @Success      200  {object}  dto.PaymentHistoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/supplier-products/{id}/payments [get]
func (h *SupplierProductHandler) PaymentHistory(c *fiber.Ctx) error {
	out, err := h.payments.SupplierProductHistory(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
