package app

import (
	apphttp "github.com/yungbote/recipebook-backend/internal/http"
	httpH "github.com/yungbote/recipebook-backend/internal/http/handlers"
	"github.com/yungbote/recipebook-backend/internal/observability"
	"github.com/yungbote/recipebook-backend/internal/platform/logger"
	"github.com/yungbote/recipebook-backend/internal/realtime"
)

type Handlers struct {
	Health       *httpH.HealthHandler
	Recipe       *httpH.RecipeHandler
	Pantry       *httpH.PantryHandler
	ShoppingList *httpH.ShoppingListHandler
	Realtime     *httpH.RealtimeHandler
}

func wireHandlers(log *logger.Logger, services Services, hub *realtime.Hub, metrics *observability.Metrics) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:       httpH.NewHealthHandler(),
		Recipe:       httpH.NewRecipeHandler(log, services.Recipe),
		Pantry:       httpH.NewPantryHandler(log, services.Pantry),
		ShoppingList: httpH.NewShoppingListHandler(log, services.ShoppingList),
		Realtime:     httpH.NewRealtimeHandler(log, hub, metrics),
	}
}

func wireServer(log *logger.Logger, cfg Config, handlers Handlers, metrics *observability.Metrics) *apphttp.Server {
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.Otel.ServiceName
	}
	return apphttp.NewServer(apphttp.RouterConfig{
		Log:                 log,
		Metrics:             metrics,
		AllowedOrigins:      cfg.AllowedOrigins,
		ServiceName:         serviceName,
		HealthHandler:       handlers.Health,
		RecipeHandler:       handlers.Recipe,
		PantryHandler:       handlers.Pantry,
		ShoppingListHandler: handlers.ShoppingList,
		RealtimeHandler:     handlers.Realtime,
	})
}
