package recipes

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/recipebook-backend/internal/domain/recipes"
	"github.com/yungbote/recipebook-backend/internal/platform/dbctx"
	"github.com/yungbote/recipebook-backend/internal/platform/logger"
)

type PantryRepo interface {
	List(dbc dbctx.Context) ([]*types.PantryItem, error)
	GetByID(dbc dbctx.Context, id uint) (*types.PantryItem, error)
	// GetByNameForUpdate locks the matching row for the rest of dbc.Tx where the
	// dialect supports row locks.
	GetByNameForUpdate(dbc dbctx.Context, name string) (*types.PantryItem, error)
	Create(dbc dbctx.Context, item *types.PantryItem) (*types.PantryItem, error)
	UpdateFields(dbc dbctx.Context, id uint, updates map[string]interface{}) error
	Delete(dbc dbctx.Context, id uint) (bool, error)
}

type pantryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPantryRepo(db *gorm.DB, baseLog *logger.Logger) PantryRepo {
	return &pantryRepo{
		db:  db,
		log: baseLog.With("repo", "PantryRepo"),
	}
}

func (r *pantryRepo) List(dbc dbctx.Context) ([]*types.PantryItem, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	out := []*types.PantryItem{}
	if err := transaction.WithContext(dbc.Ctx).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *pantryRepo) GetByID(dbc dbctx.Context, id uint) (*types.PantryItem, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == 0 {
		return nil, nil
	}
	var item types.PantryItem
	if err := transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&item).Error; err != nil {
		return nil, err
	}
	if item.ID == 0 {
		return nil, nil
	}
	return &item, nil
}

func (r *pantryRepo) GetByNameForUpdate(dbc dbctx.Context, name string) (*types.PantryItem, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if name == "" {
		return nil, nil
	}
	var item types.PantryItem
	if err := transaction.WithContext(dbc.Ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("name = ?", name).
		Limit(1).
		Find(&item).Error; err != nil {
		return nil, err
	}
	if item.ID == 0 {
		return nil, nil
	}
	return &item, nil
}

func (r *pantryRepo) Create(dbc dbctx.Context, item *types.PantryItem) (*types.PantryItem, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(dbc.Ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (r *pantryRepo) UpdateFields(dbc dbctx.Context, id uint, updates map[string]interface{}) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == 0 || len(updates) == 0 {
		return nil
	}
	return transaction.WithContext(dbc.Ctx).
		Model(&types.PantryItem{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *pantryRepo) Delete(dbc dbctx.Context, id uint) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == 0 {
		return false, nil
	}
	res := transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Delete(&types.PantryItem{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
