package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/peakers-pos-api/internal/application/dto"
	"github.com/jhoicas/peakers-pos-api/internal/domain"
)

// statusByCode traduce el código estable de dominio a status HTTP.
var statusByCode = map[string]int{
	domain.CodeValidation:           fiber.StatusBadRequest,
	domain.CodeNotFound:             fiber.StatusNotFound,
	domain.CodeConflict:             fiber.StatusConflict,
	domain.CodeInsufficientStock:    fiber.StatusConflict,
	domain.CodeInsufficientMaterial: fiber.StatusConflict,
	domain.CodeResourceUnavailable:  fiber.StatusServiceUnavailable,
	domain.CodeInternal:             fiber.StatusInternalServerError,
}

// errorResponse construye el cuerpo de error con el contexto que cada tipo expone.
func errorResponse(err error) (int, dto.ErrorResponse) {
	code := domain.Code(err)
	status, ok := statusByCode[code]
	if !ok {
		status = fiber.StatusInternalServerError
	}
	out := dto.ErrorResponse{Code: code, Message: err.Error()}

	var verr *domain.ValidationError
	var nf *domain.NotFoundError
	var cf *domain.ConflictError
	var stock *domain.InsufficientStockError
	var mat *domain.InsufficientMaterialError
	switch {
	case errors.As(err, &verr):
		out.Field = verr.Field
	case errors.As(err, &nf):
		out.Details = map[string]any{"entity": nf.Entity, "id": nf.ID}
	case errors.As(err, &stock):
		out.Details = map[string]any{
			"productId": stock.ProductID,
			"required":  stock.Required,
			"available": stock.Available,
		}
	case errors.As(err, &mat):
		out.Details = map[string]any{
			"materialId": mat.MaterialID,
			"shortfall":  mat.Shortfall.String(),
		}
	case errors.As(err, &cf):
		out.Field = cf.Field
	}
	if code == domain.CodeInternal {
		// el detalle interno queda en el log
		out.Message = domain.ErrInternal.Error()
	}
	return status, out
}

func writeError(c *fiber.Ctx, log zerolog.Logger, err error) error {
	status, body := errorResponse(err)
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Str("code", body.Code).Msg("error atendiendo la petición")
	}
	return c.Status(status).JSON(body)
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code:    domain.CodeValidation,
		Message: "cuerpo inválido",
	})
}

// ErrorHandler manejador global de fiber: errores de fiber conservan su status,
// el resto se clasifica como error de dominio.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code := domain.CodeInternal
			switch fe.Code {
			case fiber.StatusNotFound, fiber.StatusMethodNotAllowed:
				code = domain.CodeNotFound
			case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity, fiber.StatusRequestEntityTooLarge:
				code = domain.CodeValidation
			}
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
		}
		return writeError(c, log, err)
	}
}
