package recipes

import (
	"context"
	"testing"

	"github.com/yungbote/recipebook-backend/internal/data/repos/testutil"
	types "github.com/yungbote/recipebook-backend/internal/domain/recipes"
	"github.com/yungbote/recipebook-backend/internal/platform/dbctx"
)

func TestPantryRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewPantryRepo(db, testutil.Logger(t))

	item, err := repo.Create(dbc, &types.PantryItem{Name: "Fish sauce", Quantity: 500, Unit: "ml"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	testutil.SeedPantryItem(t, ctx, tx, "Rice", 5, "kg")

	if rows, err := repo.List(dbc); err != nil || len(rows) != 2 || rows[0].Name != "Fish sauce" {
		t.Fatalf("List: err=%v rows=%v", err, rows)
	}
	if got, err := repo.GetByID(dbc, item.ID); err != nil || got == nil || got.Quantity != 500 {
		t.Fatalf("GetByID: err=%v got=%v", err, got)
	}
	if got, err := repo.GetByNameForUpdate(dbc, "Fish sauce"); err != nil || got == nil || got.ID != item.ID {
		t.Fatalf("GetByNameForUpdate: err=%v got=%v", err, got)
	}
	if got, err := repo.GetByNameForUpdate(dbc, "fish sauce"); err != nil || got != nil {
		t.Fatalf("GetByNameForUpdate is case-sensitive: err=%v got=%v", err, got)
	}

	if err := repo.UpdateFields(dbc, item.ID, map[string]interface{}{"quantity": 250.5, "unit": "tbsp"}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	if got, _ := repo.GetByID(dbc, item.ID); got == nil || got.Quantity != 250.5 || got.Unit != "tbsp" {
		t.Fatalf("UpdateFields not applied: %+v", got)
	}

	if ok, err := repo.Delete(dbc, item.ID); err != nil || !ok {
		t.Fatalf("Delete: err=%v ok=%v", err, ok)
	}
	if got, err := repo.GetByID(dbc, item.ID); err != nil || got != nil {
		t.Fatalf("GetByID after Delete: err=%v got=%v", err, got)
	}
	if ok, err := repo.Delete(dbc, item.ID); err != nil || ok {
		t.Fatalf("Delete(again): err=%v ok=%v", err, ok)
	}
}
