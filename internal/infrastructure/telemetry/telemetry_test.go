package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Estoque-api/internal/infrastructure/telemetry"
	"github.com/jhoicas/Estoque-api/pkg/logger"
)

func TestInitTracing_SinEndpointEsNoop(t *testing.T) {
	shutdown, err := telemetry.InitTracing(context.Background(), logger.Nop(), "", "estoque-api", "test")
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestRecorder_RegistraEnElRegistryPorDefecto(t *testing.T) {
	r := telemetry.NewRecorder()
	r.ObserveNegativeStock()
	r.ObservePermissionDecision("USER_DENY", false)
	r.ObserveCache("hit")
	r.ObserveMovement("ENTRADA")
	telemetry.ObserveHTTPRequest("GET", "/health", 200, 5*time.Millisecond)

	mfs, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	for _, want := range []string{
		"estoque_negative_stock_detected_total",
		"estoque_permission_decisions_total",
		"estoque_permission_cache_total",
		"estoque_movements_registered_total",
		"estoque_http_requests_total",
	} {
		assert.True(t, names[want], want)
	}
}

func TestRecorder_StockNegativoIncrementa(t *testing.T) {
	before := counterValue(t, "estoque_negative_stock_detected_total")
	telemetry.NewRecorder().ObserveNegativeStock()
	assert.Equal(t, before+1, counterValue(t, "estoque_negative_stock_detected_total"))
}

func counterValue(t *testing.T, name string) float64 {
	t.Helper()
	mfs, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() == name && len(mf.GetMetric()) > 0 {
			return mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	return 0
}
