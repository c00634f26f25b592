package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/recipebook-backend/internal/data/repos"
	"github.com/yungbote/recipebook-backend/internal/platform/logger"
)

type Repos struct {
	Recipe     repos.RecipeRepo
	Ingredient repos.IngredientRepo
	Step       repos.StepRepo
	Pantry     repos.PantryRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Recipe:     repos.NewRecipeRepo(db, log),
		Ingredient: repos.NewIngredientRepo(db, log),
		Step:       repos.NewStepRepo(db, log),
		Pantry:     repos.NewPantryRepo(db, log),
	}
}
