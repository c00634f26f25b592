package app

import (
	"context"
	"errors"
	"fmt"
	"net"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/recipebook-backend/internal/data/db"
	apphttp "github.com/yungbote/recipebook-backend/internal/http"
	"github.com/yungbote/recipebook-backend/internal/observability"
	"github.com/yungbote/recipebook-backend/internal/platform/logger"
	"github.com/yungbote/recipebook-backend/internal/realtime"
	"github.com/yungbote/recipebook-backend/internal/realtime/bus"
)

type App struct {
	Log      *logger.Logger
	Cfg      Config
	Store    *db.DatabaseService
	DB       *gorm.DB
	Repos    Repos
	Services Services
	Hub      *realtime.Hub
	Bus      bus.Bus
	Metrics  *observability.Metrics
	Server   *apphttp.Server

	otelShutdown func(context.Context) error
}

// OpenStore connects to the configured database and migrates it when
// cfg.AutoMigrate is set.
func OpenStore(log *logger.Logger, cfg Config) (*db.DatabaseService, error) {
	store, err := db.NewDatabaseService(cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	if cfg.AutoMigrate {
		if err := db.AutoMigrateAll(store.DB()); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("automigrate: %w", err)
		}
	}
	return store, nil
}

func New(log *logger.Logger, cfg Config) (*App, error) {
	store, err := OpenStore(log, cfg)
	if err != nil {
		return nil, err
	}
	theDB := store.DB()

	eventBus, err := bus.New(log, cfg.Redis)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("init event bus: %w", err)
	}

	metrics := observability.Init(log, cfg.Metrics)
	otelShutdown := observability.InitOTel(context.Background(), log, cfg.Otel)

	hub := realtime.NewHub(log)
	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, cfg, reposet, eventBus, metrics)
	handlerset := wireHandlers(log, serviceset, hub, metrics)
	server := wireServer(log, cfg, handlerset, metrics)

	return &App{
		Log:          log,
		Cfg:          cfg,
		Store:        store,
		DB:           theDB,
		Repos:        reposet,
		Services:     serviceset,
		Hub:          hub,
		Bus:          eventBus,
		Metrics:      metrics,
		Server:       server,
		otelShutdown: otelShutdown,
	}, nil
}

// Run serves HTTP (and metrics, when enabled) until ctx is cancelled or a
// server fails. Change events from the bus are forwarded to the SSE hub.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return errors.New("app not initialized")
	}
	g, gctx := errgroup.WithContext(ctx)

	if err := a.Bus.StartForwarder(gctx, a.Hub.Broadcast); err != nil {
		return fmt.Errorf("start event forwarder: %w", err)
	}
	a.Metrics.StartDBCollector(gctx, a.Log, a.DB)
	a.Metrics.StartRedisCollector(gctx, a.Log, a.Cfg.Redis.Addr)

	g.Go(func() error {
		return a.Server.Run(gctx, net.JoinHostPort("", a.Cfg.Port))
	})
	if a.Metrics != nil {
		g.Go(func() error {
			return a.Metrics.Serve(gctx, a.Log, a.Cfg.MetricsAddr)
		})
	}
	return g.Wait()
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Bus != nil {
		if err := a.Bus.Close(); err != nil && a.Log != nil {
			a.Log.Warn("event bus close failed", "error", err)
		}
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(context.Background()); err != nil && a.Log != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
	}
	if a.Store != nil {
		if err := a.Store.Close(); err != nil && a.Log != nil {
			a.Log.Warn("database close failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
