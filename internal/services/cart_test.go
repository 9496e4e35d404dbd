package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/akulinich/foodgram-backend/internal/logger"
	"github.com/akulinich/foodgram-backend/internal/repos"
	"github.com/akulinich/foodgram-backend/internal/types"
)

type fakeShoppingListRepo struct {
	entries []*types.ShoppingListEntry
}

func (f *fakeShoppingListRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ShoppingListEntry, error) {
	var out []*types.ShoppingListEntry
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeShoppingListRepo) GetOrCreate(ctx context.Context, tx *gorm.DB, userID, recipeID uuid.UUID) (*types.ShoppingListEntry, bool, error) {
	for _, e := range f.entries {
		if e.UserID == userID && e.RecipeID == recipeID {
			return e, false, nil
		}
	}
	e := &types.ShoppingListEntry{ID: uuid.New(), UserID: userID, RecipeID: recipeID}
	f.entries = append(f.entries, e)
	return e, true, nil
}

func (f *fakeShoppingListRepo) Delete(ctx context.Context, tx *gorm.DB, userID, recipeID uuid.UUID) error {
	for i, e := range f.entries {
		if e.UserID == userID && e.RecipeID == recipeID {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return repos.ErrEntryNotFound
}

type fakeRecipeRepo struct {
	recipes map[uuid.UUID]*types.Recipe
}

func (f *fakeRecipeRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Recipe, error) {
	r, ok := f.recipes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r, nil
}

func (f *fakeRecipeRepo) Create(ctx context.Context, tx *gorm.DB, recipe *types.Recipe) (*types.Recipe, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeRecipeRepo) Update(ctx context.Context, tx *gorm.DB, recipe *types.Recipe) error {
	return errors.New("not implemented")
}
func (f *fakeRecipeRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return errors.New("not implemented")
}
func (f *fakeRecipeRepo) GetByAuthorIDs(ctx context.Context, tx *gorm.DB, authorIDs []uuid.UUID) ([]*types.Recipe, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeRecipeRepo) List(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.Recipe, int64, error) {
	return nil, 0, errors.New("not implemented")
}
func (f *fakeRecipeRepo) ReplaceTags(ctx context.Context, tx *gorm.DB, recipe *types.Recipe, tags []*types.Tag) error {
	return errors.New("not implemented")
}

type fakeRecipeIngredientRepo struct {
	rows map[uuid.UUID][]*types.RecipeIngredient
}

func (f *fakeRecipeIngredientRepo) GetByRecipeID(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID) ([]*types.RecipeIngredient, error) {
	return f.rows[recipeID], nil
}

func (f *fakeRecipeIngredientRepo) ReplaceForRecipe(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID, rows []*types.RecipeIngredient) error {
	return errors.New("not implemented")
}

type cartFixture struct {
	service  CartService
	lists    *fakeShoppingListRepo
	recipes  *fakeRecipeRepo
	rows     *fakeRecipeIngredientRepo
	userID   uuid.UUID
	recipeID map[string]uuid.UUID
}

func newCartFixture(t *testing.T) *cartFixture {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	lists := &fakeShoppingListRepo{}
	recipes := &fakeRecipeRepo{recipes: map[uuid.UUID]*types.Recipe{}}
	rows := &fakeRecipeIngredientRepo{rows: map[uuid.UUID][]*types.RecipeIngredient{}}
	return &cartFixture{
		service:  NewCartService(nil, log, lists, recipes, rows),
		lists:    lists,
		recipes:  recipes,
		rows:     rows,
		userID:   uuid.New(),
		recipeID: map[string]uuid.UUID{},
	}
}

// addRecipe registers a recipe with the given ingredient rows and puts it in
// the fixture user's shopping list.
func (fx *cartFixture) addRecipe(t *testing.T, name string, ingredients ...*types.RecipeIngredient) uuid.UUID {
	t.Helper()
	id := uuid.New()
	fx.recipeID[name] = id
	fx.recipes.recipes[id] = &types.Recipe{ID: id, Name: name}
	for _, row := range ingredients {
		row.RecipeID = id
	}
	fx.rows.rows[id] = ingredients
	if _, err := fx.service.AddRecipe(context.Background(), fx.userID, id); err != nil {
		t.Fatalf("add recipe %s: %v", name, err)
	}
	return id
}

func row(name, unit string, amount int) *types.RecipeIngredient {
	return &types.RecipeIngredient{
		ID:     uuid.New(),
		Amount: amount,
		Ingredient: &types.Ingredient{
			ID:              uuid.New(),
			Name:            name,
			MeasurementUnit: unit,
		},
	}
}

func TestAggregateEmptyList(t *testing.T) {
	fx := newCartFixture(t)

	lines, err := fx.service.Aggregate(context.Background(), fx.userID)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if lines == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(lines) != 0 {
		t.Fatalf("expected no lines, got %d", len(lines))
	}
}

func TestAggregateSumsAcrossRecipes(t *testing.T) {
	fx := newCartFixture(t)
	fx.addRecipe(t, "pancakes",
		row("Flour", "g", 200),
		row("Egg", "pcs", 2),
	)
	fx.addRecipe(t, "bread",
		row("Flour", "g", 300),
		row("Milk", "ml", 150),
	)

	lines, err := fx.service.Aggregate(context.Background(), fx.userID)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}

	want := []types.AggregatedLine{
		{Name: "Egg", MeasurementUnit: "pcs", Amount: 2},
		{Name: "Flour", MeasurementUnit: "g", Amount: 500},
		{Name: "Milk", MeasurementUnit: "ml", Amount: 150},
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %+v", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: expected %+v, got %+v", i, want[i], lines[i])
		}
	}
}

func TestAggregateIdempotentOnUnchangedData(t *testing.T) {
	fx := newCartFixture(t)
	fx.addRecipe(t, "pancakes",
		row("Flour", "g", 200),
		row("Egg", "pcs", 2),
	)
	fx.addRecipe(t, "bread",
		row("Flour", "g", 300),
		row("Milk", "ml", 150),
	)

	first, err := fx.service.Aggregate(context.Background(), fx.userID)
	if err != nil {
		t.Fatalf("first aggregate: %v", err)
	}
	second, err := fx.service.Aggregate(context.Background(), fx.userID)
	if err != nil {
		t.Fatalf("second aggregate: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("expected identical results, got %d and %d lines", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("line %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestAggregateKeepsUnitsSeparate(t *testing.T) {
	fx := newCartFixture(t)
	fx.addRecipe(t, "syrup", row("Sugar", "g", 500))
	fx.addRecipe(t, "jam", row("Sugar", "kg", 2))

	lines, err := fx.service.Aggregate(context.Background(), fx.userID)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %+v", len(lines), lines)
	}
	if lines[0].MeasurementUnit != "g" || lines[0].Amount != 500 {
		t.Errorf("expected Sugar/g 500 first, got %+v", lines[0])
	}
	if lines[1].MeasurementUnit != "kg" || lines[1].Amount != 2 {
		t.Errorf("expected Sugar/kg 2 second, got %+v", lines[1])
	}
}

func TestAggregateReflectsRemoval(t *testing.T) {
	fx := newCartFixture(t)
	fx.addRecipe(t, "pancakes", row("Flour", "g", 200))
	breadID := fx.addRecipe(t, "bread", row("Flour", "g", 300))

	if err := fx.service.RemoveRecipe(context.Background(), fx.userID, breadID); err != nil {
		t.Fatalf("remove recipe: %v", err)
	}

	lines, err := fx.service.Aggregate(context.Background(), fx.userID)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(lines) != 1 || lines[0].Amount != 200 {
		t.Fatalf("expected single Flour/g 200 line, got %+v", lines)
	}
}

func TestAddRecipeDuplicate(t *testing.T) {
	fx := newCartFixture(t)
	id := fx.addRecipe(t, "pancakes", row("Flour", "g", 200))

	_, err := fx.service.AddRecipe(context.Background(), fx.userID, id)
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestAddRecipeUnknown(t *testing.T) {
	fx := newCartFixture(t)

	_, err := fx.service.AddRecipe(context.Background(), fx.userID, uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRemoveRecipeNotInList(t *testing.T) {
	fx := newCartFixture(t)

	err := fx.service.RemoveRecipe(context.Background(), fx.userID, uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
