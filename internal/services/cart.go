package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/akulinich/foodgram-backend/internal/logger"
	"github.com/akulinich/foodgram-backend/internal/repos"
	"github.com/akulinich/foodgram-backend/internal/types"
)

// CartService owns shopping-list membership and the ingredient aggregation
// behind the export endpoint.
type CartService interface {
	AddRecipe(ctx context.Context, userID, recipeID uuid.UUID) (*types.Recipe, error)
	RemoveRecipe(ctx context.Context, userID, recipeID uuid.UUID) error
	Aggregate(ctx context.Context, userID uuid.UUID) ([]types.AggregatedLine, error)
}

type cartService struct {
	db                   *gorm.DB
	log                  *logger.Logger
	shoppingListRepo     repos.ShoppingListRepo
	recipeRepo           repos.RecipeRepo
	recipeIngredientRepo repos.RecipeIngredientRepo
}

func NewCartService(
	db *gorm.DB,
	log *logger.Logger,
	shoppingListRepo repos.ShoppingListRepo,
	recipeRepo repos.RecipeRepo,
	recipeIngredientRepo repos.RecipeIngredientRepo,
) CartService {
	return &cartService{
		db:                   db,
		log:                  log.With("service", "CartService"),
		shoppingListRepo:     shoppingListRepo,
		recipeRepo:           recipeRepo,
		recipeIngredientRepo: recipeIngredientRepo,
	}
}

func (cs *cartService) AddRecipe(ctx context.Context, userID, recipeID uuid.UUID) (*types.Recipe, error) {
	recipe, err := cs.recipeRepo.GetByID(ctx, nil, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: recipe %s", ErrNotFound, recipeID)
		}
		return nil, fmt.Errorf("load recipe: %w", err)
	}

	_, created, err := cs.shoppingListRepo.GetOrCreate(ctx, nil, userID, recipeID)
	if err != nil {
		return nil, fmt.Errorf("add recipe to shopping list: %w", err)
	}
	if !created {
		return nil, fmt.Errorf("%w: recipe already in shopping list", ErrAlreadyExists)
	}
	return recipe, nil
}

func (cs *cartService) RemoveRecipe(ctx context.Context, userID, recipeID uuid.UUID) error {
	if err := cs.shoppingListRepo.Delete(ctx, nil, userID, recipeID); err != nil {
		if errors.Is(err, repos.ErrEntryNotFound) {
			return fmt.Errorf("%w: recipe not in shopping list", ErrNotFound)
		}
		return fmt.Errorf("remove recipe from shopping list: %w", err)
	}
	return nil
}

type aggregationKey struct {
	name string
	unit string
}

// Aggregate merges the ingredient rows of every recipe in the user's
// shopping list, summing amounts per exact (name, measurement unit) pair.
// Units are never merged across: Sugar/g and Sugar/kg stay separate lines.
// Recipes are read concurrently; the merge is commutative so per-entry order
// does not matter, and the result is sorted by name then unit so repeated
// exports of unchanged data produce identical documents.
func (cs *cartService) Aggregate(ctx context.Context, userID uuid.UUID) ([]types.AggregatedLine, error) {
	entries, err := cs.shoppingListRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load shopping list: %w", err)
	}
	if len(entries) == 0 {
		return []types.AggregatedLine{}, nil
	}

	rowsPerEntry := make([][]*types.RecipeIngredient, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	for i, entry := range entries {
		g.Go(func() error {
			rows, err := cs.recipeIngredientRepo.GetByRecipeID(gctx, nil, entry.RecipeID)
			if err != nil {
				return fmt.Errorf("load ingredient rows for recipe %s: %w", entry.RecipeID, err)
			}
			rowsPerEntry[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	totals := make(map[aggregationKey]int)
	for _, rows := range rowsPerEntry {
		for _, row := range rows {
			if row.Ingredient == nil {
				return nil, fmt.Errorf("recipe ingredient %s has no catalog row", row.ID)
			}
			key := aggregationKey{
				name: row.Ingredient.Name,
				unit: row.Ingredient.MeasurementUnit,
			}
			totals[key] += row.Amount
		}
	}

	lines := make([]types.AggregatedLine, 0, len(totals))
	for key, amount := range totals {
		lines = append(lines, types.AggregatedLine{
			Name:            key.name,
			MeasurementUnit: key.unit,
			Amount:          amount,
		})
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Name != lines[j].Name {
			return lines[i].Name < lines[j].Name
		}
		return lines[i].MeasurementUnit < lines[j].MeasurementUnit
	})
	return lines, nil
}
