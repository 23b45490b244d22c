package metrics

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	t.Parallel()

	m := New("test")
	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/insights/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for _, id := range []string{"a", "b"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/insights/"+id, nil))
		require.Equal(t, http.StatusNoContent, w.Code)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/insights/:id", "204")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, unmatchedRoute, "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.HTTPRequestsInFlight))
}

func TestObserveDailyHit(t *testing.T) {
	t.Parallel()

	m := New("test")
	m.ObserveDailyHit("hit")
	m.ObserveDailyHit("hit")
	m.ObserveDailyHit("generated")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.DailyHitLookups.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DailyHitLookups.WithLabelValues("generated")))
}

func TestHandler_ExposesRegisteredMetrics(t *testing.T) {
	t.Parallel()

	m := New("test")
	m.ObserveDailyHit("empty")

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `test_daily_hit_lookups_total{outcome="empty"} 1`)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
