// Package metrics adaptador Prometheus del puerto ports.LedgerMetrics, con registro propio.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/peakers-pos-api/internal/application/ports"
)

const namespace = "pos_ledger"

var _ ports.LedgerMetrics = (*Ledger)(nil)

// Ledger métricas del libro de inventario. Seguro para uso concurrente.
type Ledger struct {
	registry    *prometheus.Registry
	sales       *prometheus.CounterVec
	transitions *prometheus.CounterVec
	material    *prometheus.CounterVec
	txDuration  *prometheus.HistogramVec
	httpTotal   *prometheus.CounterVec
}

// NewLedger registra los colectores en un registro nuevo (más los de proceso y runtime).
func NewLedger() *Ledger {
	reg := prometheus.NewRegistry()
	l := &Ledger{
		registry: reg,
		sales: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_total",
			Help:      "Ventas procesadas por resultado.",
		}, []string{"outcome"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_transitions_total",
			Help:      "Transiciones de estado aplicadas por origen, destino y efecto en stock.",
		}, []string{"from", "to", "effect"}),
		material: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "material_moved_total",
			Help:      "Cantidad de material consumida o devuelta a lotes.",
		}, []string{"direction"}),
		txDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tx_duration_seconds",
			Help:      "Duración de las operaciones transaccionales del libro.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"operation", "outcome"}),
		httpTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Requests HTTP por método, ruta y código.",
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(
		l.sales, l.transitions, l.material, l.txDuration, l.httpTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return l
}

func (l *Ledger) SaleProcessed(outcome string) {
	l.sales.WithLabelValues(outcome).Inc()
}

func (l *Ledger) StatusTransition(from, to, effect string) {
	l.transitions.WithLabelValues(from, to, effect).Inc()
}

func (l *Ledger) MaterialMoved(direction string, quantity float64) {
	if quantity <= 0 {
		return
	}
	l.material.WithLabelValues(direction).Add(quantity)
}

func (l *Ledger) ObserveTx(operation, outcome string, elapsed time.Duration) {
	l.txDuration.WithLabelValues(operation, outcome).Observe(elapsed.Seconds())
}

// ObserveHTTP lo usa el middleware de requests.
func (l *Ledger) ObserveHTTP(method, route string, status int) {
	l.httpTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// Handler expone el registro en formato de exposición de Prometheus.
func (l *Ledger) Handler() http.Handler {
	return promhttp.HandlerFor(l.registry, promhttp.HandlerOpts{Registry: l.registry})
}

// Registry para tests.
func (l *Ledger) Registry() *prometheus.Registry { return l.registry }
