package dto

// ErrorResponse cuerpo de error HTTP. Field y Details dan contexto accionable
// (campo inválido, producto/material, requerido vs disponible).
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Field   string         `json:"field,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}
