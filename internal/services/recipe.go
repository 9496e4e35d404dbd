package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/akulinich/foodgram-backend/internal/config"
	"github.com/akulinich/foodgram-backend/internal/logger"
	"github.com/akulinich/foodgram-backend/internal/media"
	"github.com/akulinich/foodgram-backend/internal/repos"
	"github.com/akulinich/foodgram-backend/internal/types"
)

type RecipeIngredientInput struct {
	IngredientID uuid.UUID `json:"id"`
	Amount       int       `json:"amount"`
}

type RecipeInput struct {
	Name        string                  `json:"name"`
	Text        string                  `json:"text"`
	CookingTime int                     `json:"cooking_time"`
	Image       string                  `json:"image,omitempty"` // base64, optionally a data URL
	TagIDs      []uuid.UUID             `json:"tags"`
	Ingredients []RecipeIngredientInput `json:"ingredients"`
}

type RecipePage struct {
	Recipes []*types.Recipe `json:"results"`
	Total   int64           `json:"count"`
}

type RecipeService interface {
	Create(ctx context.Context, authorID uuid.UUID, input RecipeInput) (*types.Recipe, error)
	Update(ctx context.Context, callerID, recipeID uuid.UUID, input RecipeInput) (*types.Recipe, error)
	Delete(ctx context.Context, callerID, recipeID uuid.UUID) error
	GetByID(ctx context.Context, recipeID uuid.UUID) (*types.Recipe, error)
	List(ctx context.Context, page, limit int) (*RecipePage, error)
}

type recipeService struct {
	db                   *gorm.DB
	log                  *logger.Logger
	cfg                  config.Config
	recipeRepo           repos.RecipeRepo
	recipeIngredientRepo repos.RecipeIngredientRepo
	ingredientRepo       repos.IngredientRepo
	tagRepo              repos.TagRepo
	mediaStore           *media.Store
}

func NewRecipeService(
	db *gorm.DB,
	log *logger.Logger,
	cfg config.Config,
	recipeRepo repos.RecipeRepo,
	recipeIngredientRepo repos.RecipeIngredientRepo,
	ingredientRepo repos.IngredientRepo,
	tagRepo repos.TagRepo,
	mediaStore *media.Store,
) RecipeService {
	return &recipeService{
		db:                   db,
		log:                  log.With("service", "RecipeService"),
		cfg:                  cfg,
		recipeRepo:           recipeRepo,
		recipeIngredientRepo: recipeIngredientRepo,
		ingredientRepo:       ingredientRepo,
		tagRepo:              tagRepo,
		mediaStore:           mediaStore,
	}
}

func (rs *recipeService) validate(ctx context.Context, input RecipeInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: recipe name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.Text) == "" {
		return fmt.Errorf("%w: recipe text is required", ErrInvalidInput)
	}
	if input.CookingTime < rs.cfg.MinCookingTime || input.CookingTime > rs.cfg.MaxCookingTime {
		return fmt.Errorf("%w: cooking time must be between %d and %d minutes",
			ErrInvalidInput, rs.cfg.MinCookingTime, rs.cfg.MaxCookingTime)
	}
	if len(input.Ingredients) == 0 {
		return fmt.Errorf("%w: at least one ingredient is required", ErrInvalidInput)
	}

	seen := make(map[uuid.UUID]struct{}, len(input.Ingredients))
	ids := make([]uuid.UUID, 0, len(input.Ingredients))
	for _, row := range input.Ingredients {
		if row.Amount < rs.cfg.MinAmount || row.Amount > rs.cfg.MaxAmount {
			return fmt.Errorf("%w: ingredient amount must be between %d and %d",
				ErrInvalidInput, rs.cfg.MinAmount, rs.cfg.MaxAmount)
		}
		if _, dup := seen[row.IngredientID]; dup {
			return fmt.Errorf("%w: duplicate ingredient %s", ErrInvalidInput, row.IngredientID)
		}
		seen[row.IngredientID] = struct{}{}
		ids = append(ids, row.IngredientID)
	}

	found, err := rs.ingredientRepo.GetByIDs(ctx, nil, ids)
	if err != nil {
		return fmt.Errorf("check ingredients: %w", err)
	}
	if len(found) != len(ids) {
		return fmt.Errorf("%w: unknown ingredient in recipe", ErrInvalidInput)
	}

	if len(input.TagIDs) > 0 {
		tags, err := rs.tagRepo.GetByIDs(ctx, nil, input.TagIDs)
		if err != nil {
			return fmt.Errorf("check tags: %w", err)
		}
		if len(tags) != len(input.TagIDs) {
			return fmt.Errorf("%w: unknown tag in recipe", ErrInvalidInput)
		}
	}
	return nil
}

func (rs *recipeService) saveImage(recipeID uuid.UUID, encoded string) (string, error) {
	// Accept both a bare base64 string and a data URL.
	if idx := strings.Index(encoded, ";base64,"); idx >= 0 {
		encoded = encoded[idx+len(";base64,"):]
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: image is not valid base64", ErrInvalidInput)
	}
	rel, err := rs.mediaStore.Save("recipes", fmt.Sprintf("%s.png", recipeID), raw)
	if err != nil {
		return "", fmt.Errorf("store recipe image: %w", err)
	}
	return rel, nil
}

func (rs *recipeService) Create(ctx context.Context, authorID uuid.UUID, input RecipeInput) (*types.Recipe, error) {
	if err := rs.validate(ctx, input); err != nil {
		return nil, err
	}

	recipe := &types.Recipe{
		ID:          uuid.New(),
		AuthorID:    authorID,
		Name:        strings.TrimSpace(input.Name),
		Text:        input.Text,
		CookingTime: input.CookingTime,
	}

	if input.Image != "" {
		rel, err := rs.saveImage(recipe.ID, input.Image)
		if err != nil {
			return nil, err
		}
		recipe.ImagePath = rel
	}

	if err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := rs.recipeRepo.Create(ctx, tx, recipe); err != nil {
			return fmt.Errorf("create recipe: %w", err)
		}
		if err := rs.applyRelations(ctx, tx, recipe, input); err != nil {
			return err
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return rs.GetByID(ctx, recipe.ID)
}

func (rs *recipeService) Update(ctx context.Context, callerID, recipeID uuid.UUID, input RecipeInput) (*types.Recipe, error) {
	existing, err := rs.loadOwned(ctx, callerID, recipeID)
	if err != nil {
		return nil, err
	}
	if err := rs.validate(ctx, input); err != nil {
		return nil, err
	}

	existing.Name = strings.TrimSpace(input.Name)
	existing.Text = input.Text
	existing.CookingTime = input.CookingTime
	if input.Image != "" {
		rel, err := rs.saveImage(existing.ID, input.Image)
		if err != nil {
			return nil, err
		}
		existing.ImagePath = rel
	}

	if err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := rs.recipeRepo.Update(ctx, tx, existing); err != nil {
			return fmt.Errorf("update recipe: %w", err)
		}
		if err := rs.applyRelations(ctx, tx, existing, input); err != nil {
			return err
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return rs.GetByID(ctx, existing.ID)
}

func (rs *recipeService) applyRelations(ctx context.Context, tx *gorm.DB, recipe *types.Recipe, input RecipeInput) error {
	rows := make([]*types.RecipeIngredient, 0, len(input.Ingredients))
	for _, in := range input.Ingredients {
		rows = append(rows, &types.RecipeIngredient{
			ID:           uuid.New(),
			RecipeID:     recipe.ID,
			IngredientID: in.IngredientID,
			Amount:       in.Amount,
		})
	}
	if err := rs.recipeIngredientRepo.ReplaceForRecipe(ctx, tx, recipe.ID, rows); err != nil {
		return fmt.Errorf("replace recipe ingredients: %w", err)
	}

	tags, err := rs.tagRepo.GetByIDs(ctx, tx, input.TagIDs)
	if err != nil {
		return fmt.Errorf("load tags: %w", err)
	}
	if err := rs.recipeRepo.ReplaceTags(ctx, tx, recipe, tags); err != nil {
		return fmt.Errorf("replace recipe tags: %w", err)
	}
	return nil
}

func (rs *recipeService) Delete(ctx context.Context, callerID, recipeID uuid.UUID) error {
	existing, err := rs.loadOwned(ctx, callerID, recipeID)
	if err != nil {
		return err
	}
	if err := rs.recipeRepo.DeleteByID(ctx, nil, existing.ID); err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	if existing.ImagePath != "" {
		if err := rs.mediaStore.Remove(existing.ImagePath); err != nil {
			rs.log.Warn("Failed to remove recipe image", "path", existing.ImagePath, "error", err)
		}
	}
	return nil
}

func (rs *recipeService) loadOwned(ctx context.Context, callerID, recipeID uuid.UUID) (*types.Recipe, error) {
	existing, err := rs.recipeRepo.GetByID(ctx, nil, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: recipe %s", ErrNotFound, recipeID)
		}
		return nil, fmt.Errorf("load recipe: %w", err)
	}
	if existing.AuthorID != callerID {
		return nil, fmt.Errorf("%w: only the author can modify a recipe", ErrForbidden)
	}
	return existing, nil
}

func (rs *recipeService) GetByID(ctx context.Context, recipeID uuid.UUID) (*types.Recipe, error) {
	recipe, err := rs.recipeRepo.GetByID(ctx, nil, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: recipe %s", ErrNotFound, recipeID)
		}
		return nil, fmt.Errorf("load recipe: %w", err)
	}
	return recipe, nil
}

func (rs *recipeService) List(ctx context.Context, page, limit int) (*RecipePage, error) {
	if limit <= 0 {
		limit = rs.cfg.PageSize
	}
	if page <= 0 {
		page = 1
	}
	recipes, total, err := rs.recipeRepo.List(ctx, nil, (page-1)*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return &RecipePage{Recipes: recipes, Total: total}, nil
}
