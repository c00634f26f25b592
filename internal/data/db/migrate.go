package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/recipebook-backend/internal/domain/recipes"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(recipes.Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
