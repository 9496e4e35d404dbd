package repos_test

import (
	"context"
	"testing"

	"github.com/akulinich/foodgram-backend/internal/repos"
	"github.com/akulinich/foodgram-backend/internal/repos/testutil"
)

func TestIngredientListFilters(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := repos.NewIngredientRepo(gdb, testutil.Logger(t))

	testutil.SeedIngredient(t, ctx, tx, "Sugar", "g")
	testutil.SeedIngredient(t, ctx, tx, "Brown sugar", "g")
	testutil.SeedIngredient(t, ctx, tx, "Salt", "g")

	tests := []struct {
		name   string
		filter repos.IngredientFilter
		want   int
	}{
		{"no filter", repos.IngredientFilter{}, 3},
		{"prefix match", repos.IngredientFilter{NameStarts: "su"}, 1},
		{"substring match", repos.IngredientFilter{NameContains: "sugar"}, 2},
		{"no hits", repos.IngredientFilter{NameStarts: "pepper"}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.List(ctx, tx, tc.filter)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(got) != tc.want {
				t.Fatalf("expected %d ingredients, got %d", tc.want, len(got))
			}
		})
	}
}
