package ports

import (
	"strings"
	"time"

	"github.com/jhoicas/peakers-pos-api/internal/domain"
)

// LedgerMetrics puerto de salida para instrumentar el libro de inventario.
// El adaptador Prometheus vive en infrastructure/metrics; los tests usan NopMetrics.
type LedgerMetrics interface {
	// SaleProcessed cuenta ventas por resultado ("ok" o el código de error en minúsculas).
	SaleProcessed(outcome string)
	// StatusTransition cuenta transiciones aplicadas con su efecto sobre el stock.
	StatusTransition(from, to, effect string)
	// MaterialMoved acumula material consumido ("consume") o devuelto ("return").
	MaterialMoved(direction string, quantity float64)
	// ObserveTx mide la duración de una operación transaccional del libro.
	ObserveTx(operation, outcome string, elapsed time.Duration)
}

// NopMetrics implementación vacía.
type NopMetrics struct{}

func (NopMetrics) SaleProcessed(string)                    {}
func (NopMetrics) StatusTransition(string, string, string) {}
func (NopMetrics) MaterialMoved(string, float64)           {}
func (NopMetrics) ObserveTx(string, string, time.Duration) {}

// Outcome etiqueta de resultado para métricas: "ok" o el código de error en minúsculas.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return strings.ToLower(domain.Code(err))
}
