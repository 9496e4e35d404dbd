package repos_test

import (
	"context"
	"testing"

	"github.com/akulinich/foodgram-backend/internal/repos"
	"github.com/akulinich/foodgram-backend/internal/repos/testutil"
	"github.com/akulinich/foodgram-backend/internal/types"

	"github.com/google/uuid"
)

func TestRecipeIngredientGetByRecipeIDPreloadsCatalogRow(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := repos.NewRecipeIngredientRepo(gdb, testutil.Logger(t))

	user := testutil.SeedUser(t, ctx, tx, "ri-preload@example.com")
	recipe := testutil.SeedRecipe(t, ctx, tx, user.ID, "pancakes")
	flour := testutil.SeedIngredient(t, ctx, tx, "Flour", "g")
	egg := testutil.SeedIngredient(t, ctx, tx, "Egg", "pcs")
	testutil.SeedRecipeIngredient(t, ctx, tx, recipe.ID, flour, 200)
	testutil.SeedRecipeIngredient(t, ctx, tx, recipe.ID, egg, 2)

	rows, err := repo.GetByRecipeID(ctx, tx, recipe.ID)
	if err != nil {
		t.Fatalf("GetByRecipeID: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	for _, r := range rows {
		if r.Ingredient == nil {
			t.Fatalf("row %s has no preloaded ingredient", r.ID)
		}
		if r.Ingredient.Name == "" || r.Ingredient.MeasurementUnit == "" {
			t.Errorf("row %s preloaded an incomplete ingredient: %+v", r.ID, r.Ingredient)
		}
	}
}

func TestRecipeIngredientReplaceForRecipe(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := repos.NewRecipeIngredientRepo(gdb, testutil.Logger(t))

	user := testutil.SeedUser(t, ctx, tx, "ri-replace@example.com")
	recipe := testutil.SeedRecipe(t, ctx, tx, user.ID, "bread")
	flour := testutil.SeedIngredient(t, ctx, tx, "Flour", "kg")
	water := testutil.SeedIngredient(t, ctx, tx, "Water", "ml")
	testutil.SeedRecipeIngredient(t, ctx, tx, recipe.ID, flour, 1)

	replacement := []*types.RecipeIngredient{
		{ID: uuid.New(), RecipeID: recipe.ID, IngredientID: water.ID, Amount: 300},
	}
	if err := repo.ReplaceForRecipe(ctx, tx, recipe.ID, replacement); err != nil {
		t.Fatalf("ReplaceForRecipe: %v", err)
	}

	rows, err := repo.GetByRecipeID(ctx, tx, recipe.ID)
	if err != nil {
		t.Fatalf("GetByRecipeID: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row after replace, got %d", len(rows))
	}
	if rows[0].IngredientID != water.ID || rows[0].Amount != 300 {
		t.Fatalf("unexpected row after replace: %+v", rows[0])
	}
}
