package recipes

import (
	"context"
	"testing"

	"github.com/yungbote/recipebook-backend/internal/data/repos/testutil"
	types "github.com/yungbote/recipebook-backend/internal/domain/recipes"
	"github.com/yungbote/recipebook-backend/internal/platform/dbctx"
)

func TestRecipeRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewRecipeRepo(db, testutil.Logger(t))

	rec := &types.Recipe{
		Name:            "Bún Chả Hà Nội",
		Cuisine:         testutil.PtrString("Vietnamese"),
		Servings:        4,
		CookTimeMinutes: testutil.PtrInt(30),
		Ingredients: []types.Ingredient{
			{Name: "Pork belly", Quantity: 500, Unit: "g"},
			{Name: "Fish sauce", Quantity: 3, Unit: "tbsp"},
		},
		Steps: []types.Step{
			{StepNumber: 2, Instruction: "Grill the patties."},
			{StepNumber: 1, Instruction: "Marinate the pork."},
		},
	}
	if _, err := repo.Create(dbc, rec); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.ID == 0 {
		t.Fatalf("Create: expected id to be assigned")
	}

	got, err := repo.GetByID(dbc, rec.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID: err=%v got=%v", err, got)
	}
	if len(got.Ingredients) != 2 || got.Ingredients[0].Name != "Pork belly" {
		t.Fatalf("GetByID ingredients: %+v", got.Ingredients)
	}
	if len(got.Steps) != 2 || got.Steps[0].StepNumber != 1 {
		t.Fatalf("GetByID steps not ordered: %+v", got.Steps)
	}

	if missing, err := repo.GetByID(dbc, rec.ID+1000); err != nil || missing != nil {
		t.Fatalf("GetByID(missing): err=%v got=%v", err, missing)
	}
	if ok, err := repo.Exists(dbc, rec.ID); err != nil || !ok {
		t.Fatalf("Exists: err=%v ok=%v", err, ok)
	}
	if byName, err := repo.GetByName(dbc, "Bún Chả Hà Nội"); err != nil || byName == nil || byName.ID != rec.ID {
		t.Fatalf("GetByName: err=%v got=%v", err, byName)
	}

	if rows, err := repo.SearchByName(dbc, "Chả", 100); err != nil || len(rows) != 1 {
		t.Fatalf("SearchByName: err=%v len=%d", err, len(rows))
	}
	if rows, err := repo.SearchByName(dbc, "Pizza", 100); err != nil || len(rows) != 0 {
		t.Fatalf("SearchByName(miss): err=%v len=%d", err, len(rows))
	}

	second := testutil.SeedRecipe(t, ctx, tx, "Cơm Tấm Sườn")
	if rows, err := repo.List(dbc, 0, 100); err != nil || len(rows) < 2 {
		t.Fatalf("List: err=%v len=%d", err, len(rows))
	}
	if rows, err := repo.List(dbc, 0, 1); err != nil || len(rows) != 1 {
		t.Fatalf("List(limit=1): err=%v len=%d", err, len(rows))
	}

	if err := repo.UpdateFields(dbc, rec.ID, map[string]interface{}{"servings": 6}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	if got, _ := repo.GetByID(dbc, rec.ID); got == nil || got.Servings != 6 {
		t.Fatalf("UpdateFields not applied: %+v", got)
	}

	if ok, err := repo.Delete(dbc, rec.ID); err != nil || !ok {
		t.Fatalf("Delete: err=%v ok=%v", err, ok)
	}
	if ok, err := repo.Delete(dbc, rec.ID); err != nil || ok {
		t.Fatalf("Delete(again): err=%v ok=%v", err, ok)
	}
	var orphans int64
	if err := tx.Model(&types.Ingredient{}).Where("recipe_id = ?", rec.ID).Count(&orphans).Error; err != nil || orphans != 0 {
		t.Fatalf("Delete left ingredients: err=%v n=%d", err, orphans)
	}
	if ok, _ := repo.Exists(dbc, second.ID); !ok {
		t.Fatalf("Delete removed the wrong recipe")
	}
}

func TestIngredientAndStepRepos(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	ingredients := NewIngredientRepo(db, testutil.Logger(t))
	steps := NewStepRepo(db, testutil.Logger(t))

	rec := testutil.SeedRecipe(t, ctx, tx, "Bánh Mì Thịt")

	if _, err := ingredients.Create(dbc, []*types.Ingredient{
		{RecipeID: rec.ID, Name: "Baguette", Quantity: 4, Unit: "pieces"},
		{RecipeID: rec.ID, Name: "Pâté", Quantity: 100, Unit: "g"},
	}); err != nil {
		t.Fatalf("ingredients.Create: %v", err)
	}
	if rows, err := ingredients.GetByRecipeID(dbc, rec.ID); err != nil || len(rows) != 2 || rows[0].Name != "Baguette" {
		t.Fatalf("ingredients.GetByRecipeID: err=%v rows=%v", err, rows)
	}
	if err := ingredients.DeleteByRecipeID(dbc, rec.ID); err != nil {
		t.Fatalf("ingredients.DeleteByRecipeID: %v", err)
	}
	if rows, err := ingredients.GetByRecipeID(dbc, rec.ID); err != nil || len(rows) != 0 {
		t.Fatalf("after DeleteByRecipeID: err=%v len=%d", err, len(rows))
	}

	if _, err := steps.Create(dbc, []*types.Step{
		{RecipeID: rec.ID, StepNumber: 3, Instruction: "Assemble."},
	}); err != nil {
		t.Fatalf("steps.Create: %v", err)
	}
	rows, err := steps.GetByRecipeID(dbc, rec.ID)
	if err != nil || len(rows) != 2 || rows[0].StepNumber != 1 || rows[1].StepNumber != 3 {
		t.Fatalf("steps.GetByRecipeID: err=%v rows=%v", err, rows)
	}
	if err := steps.DeleteByRecipeID(dbc, rec.ID); err != nil {
		t.Fatalf("steps.DeleteByRecipeID: %v", err)
	}
}
