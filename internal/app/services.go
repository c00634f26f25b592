package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/recipebook-backend/internal/observability"
	"github.com/yungbote/recipebook-backend/internal/platform/logger"
	"github.com/yungbote/recipebook-backend/internal/realtime/bus"
	"github.com/yungbote/recipebook-backend/internal/services"
)

type Services struct {
	Recipe       services.RecipeService
	Pantry       services.PantryService
	ShoppingList services.ShoppingListService
	Notifier     services.ChangeNotifier
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, eventBus bus.Bus, metrics *observability.Metrics) Services {
	log.Info("Wiring services...")
	notify := services.NewChangeNotifier(&services.BusEmitter{Bus: eventBus, Log: log}, metrics)
	return Services{
		Recipe:       services.NewRecipeService(db, log, repos.Recipe, repos.Ingredient, repos.Step, notify),
		Pantry:       services.NewPantryService(db, log, repos.Pantry, notify),
		ShoppingList: services.NewShoppingListService(log, repos.Recipe, repos.Pantry, metrics, cfg.ShoppingListMaxRecipes),
		Notifier:     notify,
	}
}
