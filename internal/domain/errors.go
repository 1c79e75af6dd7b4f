package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrConflict             = errors.New("conflicto con el estado actual")
	ErrInsufficientStock    = errors.New("stock insuficiente")
	ErrInsufficientMaterial = errors.New("material insuficiente")
	ErrResourceUnavailable  = errors.New("recurso no disponible, reintente")
	ErrInternal             = errors.New("error interno")
)

// ValidationError entrada mal formada; nunca muta estado. Field usa el nombre del contrato JSON.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("entrada inválida: %s", e.Reason)
	}
	return fmt.Sprintf("entrada inválida en %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// Invalid atajo para construir un ValidationError.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError entidad referenciada inexistente (product, sale, material, ...).
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s no encontrado", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NotFound atajo para construir un NotFoundError.
func NotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ConflictError violación de unicidad sobre un campo de datos maestros o número de orden.
type ConflictError struct {
	Field string
	Value string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q ya existe", e.Field, e.Value)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// InsufficientStockError el producto no tiene unidades suficientes para la operación.
type InsufficientStockError struct {
	ProductID string
	Required  int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto %s: requerido %d, disponible %d",
		e.ProductID, e.Required, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// InsufficientMaterialError la suma de lotes de un material no cubre lo necesario.
type InsufficientMaterialError struct {
	MaterialID string
	Shortfall  decimal.Decimal
}

func (e *InsufficientMaterialError) Error() string {
	return fmt.Sprintf("material insuficiente %s: faltan %s", e.MaterialID, e.Shortfall.String())
}

func (e *InsufficientMaterialError) Is(target error) bool { return target == ErrInsufficientMaterial }

// Códigos estables de error expuestos al llamador.
const (
	CodeValidation           = "VALIDATION"
	CodeNotFound             = "NOT_FOUND"
	CodeConflict             = "CONFLICT"
	CodeInsufficientStock    = "INSUFFICIENT_STOCK"
	CodeInsufficientMaterial = "INSUFFICIENT_MATERIAL"
	CodeResourceUnavailable  = "RESOURCE_UNAVAILABLE"
	CodeInternal             = "INTERNAL"
)

// Code clasifica un error en su código estable; cualquier error no clasificado es INTERNAL.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return CodeValidation
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrInsufficientStock):
		return CodeInsufficientStock
	case errors.Is(err, ErrInsufficientMaterial):
		return CodeInsufficientMaterial
	case errors.Is(err, ErrConflict):
		return CodeConflict
	case errors.Is(err, ErrResourceUnavailable):
		return CodeResourceUnavailable
	default:
		return CodeInternal
	}
}
