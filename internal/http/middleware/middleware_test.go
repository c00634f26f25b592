package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/recipebook-backend/internal/observability"
	"github.com/yungbote/recipebook-backend/internal/platform/ctxutil"
	"github.com/yungbote/recipebook-backend/internal/platform/logger"
)

func TestAttachTraceContextGeneratesIDs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachTraceContext())

	var seen *ctxutil.TraceData
	r.GET("/api/health", func(c *gin.Context) {
		seen = ctxutil.GetTraceData(c.Request.Context())
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.NotNil(t, seen)
	assert.NotEmpty(t, seen.RequestID)
	assert.NotEmpty(t, seen.TraceID)
	assert.Equal(t, seen.RequestID, rec.Header().Get(HeaderRequestID))
	assert.Equal(t, seen.TraceID, rec.Header().Get(HeaderTraceID))
}

func TestAttachTraceContextKeepsIncomingIDs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachTraceContext())
	r.GET("/api/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(HeaderRequestID, "req-123")
	req.Header.Set(HeaderTraceID, "trace-abc")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get(HeaderRequestID))
	assert.Equal(t, "trace-abc", rec.Header().Get(HeaderTraceID))
}

func TestMetricsRecordsRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := observability.NewMetrics(observability.MetricsConfig{})
	r := gin.New()
	r.Use(Metrics(m, "/api/events/stream"))
	r.GET("/api/recipes/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/api/events/stream", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/api/recipes/1", "/api/recipes/2", "/api/events/stream", "/nope"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	var buf bytes.Buffer
	require.NoError(t, m.WritePrometheus(&buf))
	out := buf.String()
	assert.Contains(t, out, `rb_api_requests_total{method="GET",route="/api/recipes/:id",status="404"} 2`)
	assert.Contains(t, out, `rb_api_requests_total{method="GET",route="/api/events/stream",status="200"} 1`)
	assert.Contains(t, out, `route="unmatched"`)
	assert.Contains(t, out, "rb_api_inflight_requests 0")
}

func TestRequestLoggerPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, err := logger.New("test")
	require.NoError(t, err)

	r := gin.New()
	r.Use(RequestLogger(log), RequestLogger(nil))
	r.GET("/api/pantry", func(c *gin.Context) { c.String(http.StatusTeapot, "x") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/pantry?x=1", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
