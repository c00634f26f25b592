package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/recipebook-backend/internal/http/handlers"
	httpMW "github.com/yungbote/recipebook-backend/internal/http/middleware"
	"github.com/yungbote/recipebook-backend/internal/observability"
	"github.com/yungbote/recipebook-backend/internal/platform/logger"
)

const eventStreamRoute = "/api/events/stream"

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	AllowedOrigins []string
	// ServiceName enables otelgin spans when non-empty.
	ServiceName string

	HealthHandler       *httpH.HealthHandler
	RecipeHandler       *httpH.RecipeHandler
	PantryHandler       *httpH.PantryHandler
	ShoppingListHandler *httpH.ShoppingListHandler
	RealtimeHandler     *httpH.RealtimeHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics, eventStreamRoute))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		if cfg.HealthHandler != nil {
			api.GET("/health", cfg.HealthHandler.APIHealth)
		}

		// Recipes
		if cfg.RecipeHandler != nil {
			api.GET("/recipes", cfg.RecipeHandler.ListRecipes)
			api.GET("/recipes/search", cfg.RecipeHandler.SearchRecipes)
			api.GET("/recipes/:id", cfg.RecipeHandler.GetRecipe)
			api.POST("/recipes", cfg.RecipeHandler.CreateRecipe)
			api.PUT("/recipes/:id", cfg.RecipeHandler.UpdateRecipe)
			api.DELETE("/recipes/:id", cfg.RecipeHandler.DeleteRecipe)
			api.GET("/recipes/:id/scale", cfg.RecipeHandler.ScaleRecipe)
		}

		// Pantry
		if cfg.PantryHandler != nil {
			api.GET("/pantry", cfg.PantryHandler.ListPantryItems)
			api.GET("/pantry/:id", cfg.PantryHandler.GetPantryItem)
			api.POST("/pantry", cfg.PantryHandler.CreatePantryItem)
			api.PUT("/pantry/:id", cfg.PantryHandler.UpdatePantryItem)
			api.DELETE("/pantry/:id", cfg.PantryHandler.DeletePantryItem)
		}

		// Shopping list
		if cfg.ShoppingListHandler != nil {
			api.POST("/shopping-list", cfg.ShoppingListHandler.GenerateShoppingList)
		}

		// Realtime (SSE)
		if cfg.RealtimeHandler != nil {
			api.GET("/events/stream", cfg.RealtimeHandler.SSEStream)
		}
	}

	return r
}
