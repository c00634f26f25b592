package recipes

import (
	"gorm.io/gorm"

	types "github.com/yungbote/recipebook-backend/internal/domain/recipes"
	"github.com/yungbote/recipebook-backend/internal/platform/dbctx"
	"github.com/yungbote/recipebook-backend/internal/platform/logger"
)

type RecipeRepo interface {
	List(dbc dbctx.Context, skip, limit int) ([]*types.Recipe, error)
	SearchByName(dbc dbctx.Context, q string, limit int) ([]*types.Recipe, error)
	GetByID(dbc dbctx.Context, id uint) (*types.Recipe, error)
	GetByName(dbc dbctx.Context, name string) (*types.Recipe, error)
	Exists(dbc dbctx.Context, id uint) (bool, error)
	Create(dbc dbctx.Context, recipe *types.Recipe) (*types.Recipe, error)
	UpdateFields(dbc dbctx.Context, id uint, updates map[string]interface{}) error
	Delete(dbc dbctx.Context, id uint) (bool, error)
}

type recipeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecipeRepo(db *gorm.DB, baseLog *logger.Logger) RecipeRepo {
	return &recipeRepo{
		db:  db,
		log: baseLog.With("repo", "RecipeRepo"),
	}
}

// withChildren preloads ingredients in insertion order and steps by step number.
func withChildren(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("step_number ASC, id ASC") })
}

func (r *recipeRepo) List(dbc dbctx.Context, skip, limit int) ([]*types.Recipe, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	out := []*types.Recipe{}
	if limit <= 0 {
		return out, nil
	}
	if skip < 0 {
		skip = 0
	}
	if err := withChildren(transaction.WithContext(dbc.Ctx)).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *recipeRepo) SearchByName(dbc dbctx.Context, q string, limit int) ([]*types.Recipe, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	out := []*types.Recipe{}
	if q == "" || limit <= 0 {
		return out, nil
	}
	if err := withChildren(transaction.WithContext(dbc.Ctx)).
		Where("name LIKE ?", "%"+q+"%").
		Order("id ASC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *recipeRepo) GetByID(dbc dbctx.Context, id uint) (*types.Recipe, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == 0 {
		return nil, nil
	}
	var recipe types.Recipe
	if err := withChildren(transaction.WithContext(dbc.Ctx)).
		Where("id = ?", id).
		Limit(1).
		Find(&recipe).Error; err != nil {
		return nil, err
	}
	if recipe.ID == 0 {
		return nil, nil
	}
	return &recipe, nil
}

func (r *recipeRepo) GetByName(dbc dbctx.Context, name string) (*types.Recipe, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if name == "" {
		return nil, nil
	}
	var recipe types.Recipe
	if err := transaction.WithContext(dbc.Ctx).
		Where("name = ?", name).
		Order("id ASC").
		Limit(1).
		Find(&recipe).Error; err != nil {
		return nil, err
	}
	if recipe.ID == 0 {
		return nil, nil
	}
	return &recipe, nil
}

func (r *recipeRepo) Exists(dbc dbctx.Context, id uint) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == 0 {
		return false, nil
	}
	var n int64
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.Recipe{}).
		Where("id = ?", id).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// Create inserts the recipe together with any ingredients and steps it carries.
func (r *recipeRepo) Create(dbc dbctx.Context, recipe *types.Recipe) (*types.Recipe, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(dbc.Ctx).Create(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

func (r *recipeRepo) UpdateFields(dbc dbctx.Context, id uint, updates map[string]interface{}) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == 0 || len(updates) == 0 {
		return nil
	}
	return transaction.WithContext(dbc.Ctx).
		Model(&types.Recipe{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// Delete removes the recipe and its children. It reports false when no recipe matched.
func (r *recipeRepo) Delete(dbc dbctx.Context, id uint) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == 0 {
		return false, nil
	}
	var deleted bool
	err := transaction.WithContext(dbc.Ctx).Transaction(func(txx *gorm.DB) error {
		if err := txx.Where("recipe_id = ?", id).Delete(&types.Ingredient{}).Error; err != nil {
			return err
		}
		if err := txx.Where("recipe_id = ?", id).Delete(&types.Step{}).Error; err != nil {
			return err
		}
		res := txx.Where("id = ?", id).Delete(&types.Recipe{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}
