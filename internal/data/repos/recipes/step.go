package recipes

import (
	"gorm.io/gorm"

	types "github.com/yungbote/recipebook-backend/internal/domain/recipes"
	"github.com/yungbote/recipebook-backend/internal/platform/dbctx"
	"github.com/yungbote/recipebook-backend/internal/platform/logger"
)

type StepRepo interface {
	Create(dbc dbctx.Context, rows []*types.Step) ([]*types.Step, error)
	GetByRecipeID(dbc dbctx.Context, recipeID uint) ([]*types.Step, error)
	DeleteByRecipeID(dbc dbctx.Context, recipeID uint) error
}

type stepRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStepRepo(db *gorm.DB, baseLog *logger.Logger) StepRepo {
	return &stepRepo{
		db:  db,
		log: baseLog.With("repo", "StepRepo"),
	}
}

func (r *stepRepo) Create(dbc dbctx.Context, rows []*types.Step) ([]*types.Step, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(rows) == 0 {
		return []*types.Step{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *stepRepo) GetByRecipeID(dbc dbctx.Context, recipeID uint) ([]*types.Step, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	out := []*types.Step{}
	if recipeID == 0 {
		return out, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("recipe_id = ?", recipeID).
		Order("step_number ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *stepRepo) DeleteByRecipeID(dbc dbctx.Context, recipeID uint) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if recipeID == 0 {
		return nil
	}
	return transaction.WithContext(dbc.Ctx).
		Where("recipe_id = ?", recipeID).
		Delete(&types.Step{}).Error
}
