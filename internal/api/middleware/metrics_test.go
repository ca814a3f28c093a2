package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics("blog", reg)

	r := chi.NewRouter()
	r.Use(RequestMetrics(m))
	r.Get("/blog/{id}", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "id") == "404" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("ok"))
	})

	for _, path := range []string{"/blog/1", "/blog/2", "/blog/404"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, float64(2),
		testutil.ToFloat64(m.CounterRequests.WithLabelValues(http.MethodGet, "/blog/{id}", "200")))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.CounterRequests.WithLabelValues(http.MethodGet, "/blog/{id}", "404")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.GaugeInFlight))

	count, err := testutil.GatherAndCount(reg, "blog_http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRequestMetricsUnmatchedRoute(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics("blog", reg)

	handler := RequestMetrics(m)(http.NotFoundHandler())
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	err := testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP blog_http_requests_total The total number of handled requests
# TYPE blog_http_requests_total counter
blog_http_requests_total{method="GET",route="unmatched",status="404"} 1
`), "blog_http_requests_total")
	assert.NoError(t, err)
}
