package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/akulinich/foodgram-backend/internal/types"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Email:     email,
		Username:  email,
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedIngredient(tb testing.TB, ctx context.Context, tx *gorm.DB, name, unit string) *types.Ingredient {
	tb.Helper()
	ing := &types.Ingredient{
		ID:              uuid.New(),
		Name:            name,
		MeasurementUnit: unit,
	}
	if err := tx.WithContext(ctx).Create(ing).Error; err != nil {
		tb.Fatalf("seed ingredient: %v", err)
	}
	return ing
}

func SeedRecipe(tb testing.TB, ctx context.Context, tx *gorm.DB, authorID uuid.UUID, name string) *types.Recipe {
	tb.Helper()
	r := &types.Recipe{
		ID:          uuid.New(),
		AuthorID:    authorID,
		Name:        name,
		Text:        fmt.Sprintf("how to cook %s", name),
		CookingTime: 30,
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed recipe: %v", err)
	}
	return r
}

func SeedRecipeIngredient(tb testing.TB, ctx context.Context, tx *gorm.DB, recipeID uuid.UUID, ing *types.Ingredient, amount int) *types.RecipeIngredient {
	tb.Helper()
	row := &types.RecipeIngredient{
		ID:           uuid.New(),
		RecipeID:     recipeID,
		IngredientID: ing.ID,
		Amount:       amount,
	}
	if err := tx.WithContext(ctx).Create(row).Error; err != nil {
		tb.Fatalf("seed recipe ingredient: %v", err)
	}
	return row
}

func SeedShoppingListEntry(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, recipeID uuid.UUID) *types.ShoppingListEntry {
	tb.Helper()
	e := &types.ShoppingListEntry{
		ID:       uuid.New(),
		UserID:   userID,
		RecipeID: recipeID,
	}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed shopping list entry: %v", err)
	}
	return e
}
