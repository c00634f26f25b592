package observability

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/api/recipes", "200", time.Millisecond)
	m.ApiInflightInc()
	m.ObserveShoppingList("ok", time.Millisecond, 3, 1, 2)
	m.IncChangeEvent("recipes", "created")
	m.SSEClientsInc()

	rec := httptest.NewRecorder()
	m.WriteHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Nil(t, Init(nil, MetricsConfig{Enabled: false}))
}

func TestObserveShoppingList(t *testing.T) {
	m := NewMetrics(MetricsConfig{})

	m.ObserveShoppingList("ok", 20*time.Millisecond, 4, 1, 2)
	m.ObserveShoppingList("ok", 10*time.Millisecond, 0, 0, 5)
	m.ObserveShoppingList("error", time.Millisecond, 9, 9, 9)

	assert.Equal(t, 2.0, m.shoppingLists.Value("ok"))
	assert.Equal(t, 1.0, m.shoppingLists.Value("error"))
	assert.Equal(t, uint64(2), m.shoppingLines.Count())
	assert.Equal(t, 1.0, m.shoppingSkipped.Value())
	assert.Equal(t, 7.0, m.shoppingCovered.Value())
}

func TestWritePrometheusExposition(t *testing.T) {
	m := NewMetrics(MetricsConfig{})
	m.ObserveAPI("POST", "/api/shopping-list", "200", 30*time.Millisecond)
	m.ApiInflightInc()
	m.IncChangeEvent("pantry", "updated")

	var buf bytes.Buffer
	require.NoError(t, m.WritePrometheus(&buf))
	out := buf.String()

	assert.Contains(t, out, "# TYPE rb_api_requests_total counter")
	assert.Contains(t, out, `rb_api_requests_total{method="POST",route="/api/shopping-list",status="200"} 1`)
	assert.Contains(t, out, `rb_api_request_duration_seconds_bucket{method="POST",route="/api/shopping-list",status="200",le="0.05"} 1`)
	assert.Contains(t, out, `rb_api_request_duration_seconds_bucket{method="POST",route="/api/shopping-list",status="200",le="0.025"} 0`)
	assert.Contains(t, out, "rb_api_inflight_requests 1")
	assert.Contains(t, out, `rb_change_events_total{topic="pantry",kind="updated"} 1`)
}

func TestLabelHelpers(t *testing.T) {
	assert.Equal(t, "", labelString(nil, []string{"x"}))
	assert.Equal(t, `{a="1",b="unknown"}`, labelString([]string{"a", "b"}, []string{"1"}))
	assert.Equal(t, `{a="q\"\\\n"}`, labelString([]string{"a"}, []string{"q\"\\\n"}))
	assert.Equal(t, `{le="+Inf"}`, withLe("", "+Inf"))
	assert.Equal(t, `{a="1",le="0.5"}`, withLe(`{a="1"}`, "0.5"))
}

func TestParseHeaders(t *testing.T) {
	assert.Equal(t, map[string]string{"api-key": "abc", "x-team": "kitchen"}, ParseHeaders(" api-key=abc, bad ,x-team=kitchen,empty="))
	assert.Nil(t, ParseHeaders(""))
	assert.Equal(t, 0.0, clampRatio(-1))
	assert.Equal(t, 1.0, clampRatio(3))
}
