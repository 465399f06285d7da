package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) (*gin.Engine, *prometheus.Registry) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	route := func(c *gin.Context) string { return c.FullPath() }
	p := NewPrometheus(NewPrometheusOptions{
		MetricsList:             []*Metric{MetricsBusinessProcess},
		ReqCntURLLabelMappingFn: route,
		Registry:                reg,
	})
	r := gin.New()
	p.Use(r)
	r.GET("/items/:id", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r, reg
}

func TestPrometheus_CountsRequestsByRoute(t *testing.T) {
	r, reg := newTestEngine(t)
	for _, id := range []string{"a", "b"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/"+id, nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	expected := `
# HELP req_total How many HTTP requests processed, partitioned by status code and HTTP method.
# TYPE req_total counter
req_total{code="200",method="GET",ref="",url="/items/:id"} 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "req_total"))
}

func TestPrometheus_ServesMetricsPath(t *testing.T) {
	r, _ := newTestEngine(t)
	ObserveBusinessProcess("subscription", "create", time.Now())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `bp_dur_bucket{subtype="create",type="subscription"`)
}

func TestPrometheus_ShutdownWithoutServer(t *testing.T) {
	p := NewPrometheus(NewPrometheusOptions{Registry: prometheus.NewRegistry()})
	require.NoError(t, p.Shutdown())
}

func TestComputeApproximateRequestSize(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader("abcd"))
	req.Header = http.Header{}
	req.Host = "h"
	// "/x" + "POST" + "HTTP/1.1" + "h" + 4 body bytes
	require.Equal(t, 2+4+8+1+4, computeApproximateRequestSize(req))
}
