package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/peakers-pos-api/internal/application/dto"
	"github.com/jhoicas/peakers-pos-api/internal/application/inventory"
	"github.com/jhoicas/peakers-pos-api/internal/application/usecase"
)

// MaterialHandler maneja materias primas y la entrada de lotes.
type MaterialHandler struct {
	uc     *usecase.MaterialUseCase
	supply *inventory.MaterialSupplyUseCase
	log    zerolog.Logger
}

// NewMaterialHandler construye el handler.
func NewMaterialHandler(uc *usecase.MaterialUseCase, supply *inventory.MaterialSupplyUseCase, log zerolog.Logger) *MaterialHandler {
	return &MaterialHandler{uc: uc, supply: supply, log: log}
}

// Create godoc
// @Summary      Crear materia prima
// @Tags         materials
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMaterialRequest  true  "Nombre y unidad"
// @Success      201   {object}  dto.MaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/materials [post]
func (h *MaterialHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListLots godoc
// @Summary      Lotes de un material en orden FIFO
// @Tags         materials
// @Produce      json
// @Param        id   path  string  true  "ID del material"
// @Success      200  {object}  dto.MaterialLotListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/materials/{id}/lots [get]
func (h *MaterialHandler) ListLots(c *fiber.Ctx) error {
	out, err := h.supply.ListLots(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// RecordSupply godoc
// @Summary      Registrar entrada de material (nuevo lote)
// @Tags         materials
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MaterialSupplyRequest  true  "Material, proveedor, cantidad, precio unitario y fecha"
// @Success      201   {object}  dto.MaterialLotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/material-supplies [post]
func (h *MaterialHandler) RecordSupply(c *fiber.Ctx) error {
	var in dto.MaterialSupplyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.supply.RecordSupply(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
