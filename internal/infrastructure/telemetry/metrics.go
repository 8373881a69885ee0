package telemetry

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "estoque_http_requests_total",
		Help: "Total de requests HTTP",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "estoque_http_request_duration_seconds",
		Help:    "Duración de requests HTTP",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	permissionDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "estoque_permission_decisions_total",
		Help: "Decisiones de permiso por regla aplicada y resultado",
	}, []string{"rule", "allowed"})

	permissionCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "estoque_permission_cache_total",
		Help: "Accesos al cache de snapshots de permisos (hit, miss, error)",
	}, []string{"result"})

	negativeStock = promauto.NewCounter(prometheus.CounterOpts{
		Name: "estoque_negative_stock_detected_total",
		Help: "Veces que el libro de movimientos sumó un saldo negativo y se recortó a 0",
	})

	movementsRegistered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "estoque_movements_registered_total",
		Help: "Movimientos de stock registrados por tipo",
	}, []string{"type"})
)

// ObserveHTTPRequest registra un request HTTP. route es la plantilla de ruta, no el path crudo.
func ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	s := strconv.Itoa(status)
	httpRequestsTotal.WithLabelValues(method, route, s).Inc()
	httpRequestDuration.WithLabelValues(method, route, s).Observe(duration.Seconds())
}

// Recorder implementa los puertos de observación de los casos de uso.
type Recorder struct{}

// NewRecorder devuelve el recorder sobre el registry por defecto de Prometheus.
func NewRecorder() *Recorder { return &Recorder{} }

// ObserveNegativeStock cuenta un recorte a 0 del saldo.
func (Recorder) ObserveNegativeStock() { negativeStock.Inc() }

// ObserveMovement cuenta un movimiento registrado.
func (Recorder) ObserveMovement(movementType string) {
	movementsRegistered.WithLabelValues(movementType).Inc()
}

// ObservePermissionDecision cuenta una decisión del resolvedor.
func (Recorder) ObservePermissionDecision(rule string, allowed bool) {
	permissionDecisions.WithLabelValues(rule, strconv.FormatBool(allowed)).Inc()
}

// ObserveCache cuenta un acceso al cache de permisos.
func (Recorder) ObserveCache(result string) {
	permissionCache.WithLabelValues(result).Inc()
}
