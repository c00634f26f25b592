package app

import (
	"time"

	"github.com/yungbote/recipebook-backend/internal/data/db"
	"github.com/yungbote/recipebook-backend/internal/http/middleware"
	"github.com/yungbote/recipebook-backend/internal/observability"
	"github.com/yungbote/recipebook-backend/internal/platform/envutil"
	"github.com/yungbote/recipebook-backend/internal/platform/logger"
	"github.com/yungbote/recipebook-backend/internal/realtime/bus"
)

type Config struct {
	Port        string
	LogMode     string
	AutoMigrate bool

	DB    db.Config
	Redis bus.RedisConfig

	AllowedOrigins []string

	Metrics     observability.MetricsConfig
	MetricsAddr string
	Otel        observability.OtelConfig

	ShoppingListMaxRecipes int
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:        envutil.String("PORT", "8080"),
		LogMode:     envutil.String("LOG_MODE", "development"),
		AutoMigrate: envutil.Bool("DB_AUTO_MIGRATE", true),
		DB: db.Config{
			Driver:           envutil.String("DB_DRIVER", db.DriverPostgres),
			PostgresHost:     envutil.String("POSTGRES_HOST", "localhost"),
			PostgresPort:     envutil.String("POSTGRES_PORT", "5432"),
			PostgresUser:     envutil.String("POSTGRES_USER", "postgres"),
			PostgresPassword: envutil.String("POSTGRES_PASSWORD", ""),
			PostgresName:     envutil.String("POSTGRES_NAME", "recipebook"),
			PostgresSSLMode:  envutil.String("POSTGRES_SSLMODE", "disable"),
			SQLitePath:       envutil.String("SQLITE_PATH", "data/recipebook.db"),
		},
		Redis: bus.RedisConfig{
			Addr:    envutil.String("REDIS_ADDR", ""),
			Channel: envutil.String("REDIS_CHANNEL", "recipebook-events"),
		},
		AllowedOrigins: envutil.List("CORS_ALLOWED_ORIGINS", middleware.DefaultAllowedOrigins),
		Metrics: observability.MetricsConfig{
			Enabled:        envutil.Bool("METRICS_ENABLED", false),
			ScrapeInterval: time.Duration(envutil.Int("METRICS_SCRAPE_INTERVAL_SECONDS", 15)) * time.Second,
		},
		MetricsAddr: envutil.String("METRICS_ADDR", ":9090"),
		Otel: observability.OtelConfig{
			Enabled:     envutil.Bool("OTEL_ENABLED", false),
			ServiceName: envutil.String("SERVICE_NAME", "recipebook"),
			Environment: envutil.String("DEPLOY_ENV", "development"),
			Version:     envutil.String("SERVICE_VERSION", "dev"),
			Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", true),
			Headers:     observability.ParseHeaders(envutil.String("OTEL_EXPORTER_OTLP_HEADERS", "")),
			SampleRatio: envutil.Float("OTEL_SAMPLER_RATIO", 1),
		},
		ShoppingListMaxRecipes: envutil.Int("SHOPPING_LIST_MAX_RECIPES", 0),
	}
	if log != nil {
		log.Info("Config loaded",
			"port", cfg.Port,
			"db_driver", cfg.DB.Driver,
			"redis", cfg.Redis.Addr != "",
			"metrics", cfg.Metrics.Enabled,
			"otel", cfg.Otel.Enabled,
		)
	}
	return cfg
}
