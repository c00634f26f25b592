package testutil

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/recipebook-backend/internal/domain/recipes"
)

// SeedRecipe inserts a recipe with one ingredient per entry of ingredients and
// a single step.
func SeedRecipe(tb testing.TB, ctx context.Context, tx *gorm.DB, name string, ingredients ...recipes.Ingredient) *recipes.Recipe {
	tb.Helper()
	r := &recipes.Recipe{
		Name:        name,
		Servings:    2,
		Ingredients: ingredients,
		Steps:       []recipes.Step{{StepNumber: 1, Instruction: "Cook."}},
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed recipe: %v", err)
	}
	return r
}

func SeedPantryItem(tb testing.TB, ctx context.Context, tx *gorm.DB, name string, qty float64, unit string) *recipes.PantryItem {
	tb.Helper()
	p := &recipes.PantryItem{Name: name, Quantity: qty, Unit: unit}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed pantry item: %v", err)
	}
	return p
}

func PtrString(v string) *string { return &v }

func PtrInt(v int) *int { return &v }
