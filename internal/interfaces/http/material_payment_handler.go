package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/peakers-pos-api/internal/application/dto"
	"github.com/jhoicas/peakers-pos-api/internal/application/payments"
)

// MaterialPaymentHandler pagos contra entradas de material.
type MaterialPaymentHandler struct {
	payments *payments.PaymentLedgerUseCase
	log      zerolog.Logger
}

func NewMaterialPaymentHandler(pay *payments.PaymentLedgerUseCase, log zerolog.Logger) *MaterialPaymentHandler {
	return &MaterialPaymentHandler{payments: pay, log: log}
}

// RecordPayment godoc
// @Summary      Registrar pago de una entrada de material
// @Tags         materials
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID del lote"
// @Param        body  body  dto.PaymentRequest  true  "Monto, método y referencia"
// @Success      201   {object}  dto.RecordPaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/material-supplies/{id}/payments [post]
func (h *MaterialPaymentHandler) RecordPayment(c *fiber.Ctx) error {
	var in dto.PaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.payments.RecordMaterialSupplyPayment(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// PaymentHistory godoc
// @Summary      Historial de pagos y saldo de una entrada de material
// @Tags         materials
// @Produce      json
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {object}  dto.PaymentHistoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/material-supplies/{id}/payments [get]
func (h *MaterialPaymentHandler) PaymentHistory(c *fiber.Ctx) error {
	out, err := h.payments.MaterialSupplyHistory(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
