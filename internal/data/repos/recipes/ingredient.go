package recipes

import (
	"gorm.io/gorm"

	types "github.com/yungbote/recipebook-backend/internal/domain/recipes"
	"github.com/yungbote/recipebook-backend/internal/platform/dbctx"
	"github.com/yungbote/recipebook-backend/internal/platform/logger"
)

type IngredientRepo interface {
	Create(dbc dbctx.Context, rows []*types.Ingredient) ([]*types.Ingredient, error)
	GetByRecipeID(dbc dbctx.Context, recipeID uint) ([]*types.Ingredient, error)
	DeleteByRecipeID(dbc dbctx.Context, recipeID uint) error
}

type ingredientRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIngredientRepo(db *gorm.DB, baseLog *logger.Logger) IngredientRepo {
	return &ingredientRepo{
		db:  db,
		log: baseLog.With("repo", "IngredientRepo"),
	}
}

func (r *ingredientRepo) Create(dbc dbctx.Context, rows []*types.Ingredient) ([]*types.Ingredient, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(rows) == 0 {
		return []*types.Ingredient{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetByRecipeID returns the recipe's ingredient lines in the order they were written.
func (r *ingredientRepo) GetByRecipeID(dbc dbctx.Context, recipeID uint) ([]*types.Ingredient, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	out := []*types.Ingredient{}
	if recipeID == 0 {
		return out, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("recipe_id = ?", recipeID).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ingredientRepo) DeleteByRecipeID(dbc dbctx.Context, recipeID uint) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if recipeID == 0 {
		return nil
	}
	return transaction.WithContext(dbc.Ctx).
		Where("recipe_id = ?", recipeID).
		Delete(&types.Ingredient{}).Error
}
