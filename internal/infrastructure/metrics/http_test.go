package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestHTTPMetrics_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/v1/quotes/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	for _, path := range []string{"/v1/quotes/a", "/v1/quotes/b", "/nowhere"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("/v1/quotes/:id", "GET", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("unmatched", "GET", "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.duration))
}

func TestHTTPMetrics_NilSafe(t *testing.T) {
	var m *HTTPMetrics
	m.Observe("/x", "GET", 200, time.Millisecond)
	NewHTTPMetrics(nil).Observe("/x", "GET", 200, time.Millisecond)
}
