package metrics_test

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonotes/pkg/metrics"
)

func TestObserve(t *testing.T) {
	m := metrics.New("test")

	m.Observe("GET", "/api/notes", 200, 10*time.Millisecond)
	m.Observe("GET", "/api/notes", 200, 20*time.Millisecond)
	m.Observe("GET", "/api/notes", 400, time.Millisecond)

	assert.InDelta(t, 2, testutil.ToFloat64(m.RequestCounter.WithLabelValues("GET", "/api/notes", "200")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.RequestCounter.WithLabelValues("GET", "/api/notes", "400")), 0)
}

func TestInstancesDoNotCollide(t *testing.T) {
	assert.NotPanics(t, func() {
		metrics.New("a")
		metrics.New("a")
	})
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := metrics.New("exposed")
	m.BusinessErrors.WithLabelValues("WRONG_PASSWORD").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `exposed_business_errors_total{code="WRONG_PASSWORD"} 1`)
}
