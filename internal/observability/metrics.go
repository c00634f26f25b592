package observability

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/recipebook-backend/internal/platform/logger"
)

type Metrics struct {
	apiRequests *CounterVec
	apiLatency  *HistogramVec
	apiInflight *Gauge

	shoppingLists    *CounterVec
	shoppingLatency  *HistogramVec
	shoppingLines    *HistogramVec
	shoppingSkipped  *Counter
	shoppingCovered  *Counter
	changeEvents     *CounterVec
	sseClients       *Gauge
	dbStats          *GaugeVec
	redisUp          *Gauge
	redisPingSeconds *Gauge

	scrapeInterval time.Duration
}

type MetricsConfig struct {
	Enabled        bool
	ScrapeInterval time.Duration
}

var (
	initOnce sync.Once
	instance *Metrics
)

// Init builds the process-wide registry once. It returns nil when metrics are
// disabled; every *Metrics method is safe on a nil receiver.
func Init(log *logger.Logger, cfg MetricsConfig) *Metrics {
	if !cfg.Enabled {
		return nil
	}
	initOnce.Do(func() {
		instance = NewMetrics(cfg)
		if log != nil {
			log.Info("Observability metrics enabled")
		}
	})
	return instance
}

func Current() *Metrics {
	return instance
}

func NewMetrics(cfg MetricsConfig) *Metrics {
	interval := cfg.ScrapeInterval
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &Metrics{
		apiRequests: NewCounterVec("rb_api_requests_total", "Total API requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec(
			"rb_api_request_duration_seconds",
			"API request latency in seconds by method/route/status.",
			[]string{"method", "route", "status"},
			[]float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		),
		apiInflight: NewGauge("rb_api_inflight_requests", "In-flight API requests."),

		shoppingLists: NewCounterVec("rb_shopping_lists_total", "Shopping list generations by outcome.", []string{"status"}),
		shoppingLatency: NewHistogramVec(
			"rb_shopping_list_duration_seconds",
			"Shopping list generation latency in seconds.",
			[]string{"status"},
			nil,
		),
		shoppingLines: NewHistogramVec(
			"rb_shopping_list_lines",
			"Lines emitted per generated shopping list.",
			nil,
			[]float64{0, 1, 5, 10, 25, 50, 100},
		),
		shoppingSkipped:  NewCounter("rb_shopping_list_recipes_skipped_total", "Requested recipe ids that did not resolve."),
		shoppingCovered:  NewCounter("rb_shopping_list_keys_covered_total", "Ingredient keys fully covered by the pantry."),
		changeEvents:     NewCounterVec("rb_change_events_total", "Change events published by topic/kind.", []string{"topic", "kind"}),
		sseClients:       NewGauge("rb_sse_clients", "Connected event stream clients."),
		dbStats:          NewGaugeVec("rb_db_pool", "Database connection pool stats.", []string{"stat"}),
		redisUp:          NewGauge("rb_redis_up", "Whether the last Redis ping succeeded."),
		redisPingSeconds: NewGauge("rb_redis_ping_seconds", "Latency of the last Redis ping."),

		scrapeInterval: interval,
	}
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, log *logger.Logger, addr string) error {
	if m == nil {
		return nil
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", m.WriteHTTP)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = srv.Shutdown(shutdownCtx)
		cancel()
	}()
	if log != nil {
		log.Info("Metrics server listening", "addr", addr)
	}
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, r *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

type promWriter interface {
	WritePrometheus(w io.Writer) error
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	for _, c := range []promWriter{
		m.apiRequests,
		m.apiLatency,
		m.apiInflight,
		m.shoppingLists,
		m.shoppingLatency,
		m.shoppingLines,
		m.shoppingSkipped,
		m.shoppingCovered,
		m.changeEvents,
		m.sseClients,
		m.dbStats,
		m.redisUp,
		m.redisPingSeconds,
	} {
		if err := c.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	if status == "" {
		status = "0"
	}
	m.apiRequests.Inc(method, route, status)
	m.apiLatency.Observe(dur.Seconds(), method, route, status)
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

// ObserveShoppingList records one generation. status is "ok" or "error";
// the line and coverage counts are only meaningful on success.
func (m *Metrics) ObserveShoppingList(status string, dur time.Duration, lines, skipped, covered int) {
	if m == nil {
		return
	}
	m.shoppingLists.Inc(status)
	m.shoppingLatency.Observe(dur.Seconds(), status)
	if status != "ok" {
		return
	}
	m.shoppingLines.Observe(float64(lines))
	m.shoppingSkipped.Add(float64(skipped))
	m.shoppingCovered.Add(float64(covered))
}

func (m *Metrics) IncChangeEvent(topic, kind string) {
	if m == nil {
		return
	}
	m.changeEvents.Inc(topic, kind)
}

func (m *Metrics) SSEClientsInc() {
	if m == nil {
		return
	}
	m.sseClients.Inc()
}

func (m *Metrics) SSEClientsDec() {
	if m == nil {
		return
	}
	m.sseClients.Dec()
}

// StartDBCollector samples the gorm connection pool every scrape interval.
func (m *Metrics) StartDBCollector(ctx context.Context, log *logger.Logger, db *gorm.DB) {
	if m == nil || db == nil {
		return
	}
	go func() {
		ticker := time.NewTicker(m.scrapeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					if log != nil {
						log.Warn("metrics: db stats unavailable", "error", err)
					}
					continue
				}
				stats := sqlDB.Stats()
				m.dbStats.Set(float64(stats.OpenConnections), "open_connections")
				m.dbStats.Set(float64(stats.InUse), "in_use")
				m.dbStats.Set(float64(stats.Idle), "idle")
				m.dbStats.Set(float64(stats.WaitCount), "wait_count")
				m.dbStats.Set(stats.WaitDuration.Seconds(), "wait_duration_seconds")
			}
		}
	}()
}

func (m *Metrics) StartRedisCollector(ctx context.Context, log *logger.Logger, addr string) {
	if m == nil {
		return
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	go func() {
		defer rdb.Close()
		ticker := time.NewTicker(m.scrapeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				start := time.Now()
				if err := rdb.Ping(ctx).Err(); err != nil {
					m.redisUp.Set(0)
					if log != nil {
						log.Warn("metrics: redis ping failed", "error", err)
					}
					continue
				}
				m.redisUp.Set(1)
				m.redisPingSeconds.Set(time.Since(start).Seconds())
			}
		}
	}()
}
