package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/recipebook-backend/internal/data/repos/recipes"
	"github.com/yungbote/recipebook-backend/internal/platform/logger"
)

type RecipeRepo = recipes.RecipeRepo
type IngredientRepo = recipes.IngredientRepo
type StepRepo = recipes.StepRepo
type PantryRepo = recipes.PantryRepo

func NewRecipeRepo(db *gorm.DB, baseLog *logger.Logger) RecipeRepo {
	return recipes.NewRecipeRepo(db, baseLog)
}

func NewIngredientRepo(db *gorm.DB, baseLog *logger.Logger) IngredientRepo {
	return recipes.NewIngredientRepo(db, baseLog)
}

func NewStepRepo(db *gorm.DB, baseLog *logger.Logger) StepRepo {
	return recipes.NewStepRepo(db, baseLog)
}

func NewPantryRepo(db *gorm.DB, baseLog *logger.Logger) PantryRepo {
	return recipes.NewPantryRepo(db, baseLog)
}
