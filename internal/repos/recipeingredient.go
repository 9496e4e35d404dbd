package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/akulinich/foodgram-backend/internal/logger"
	"github.com/akulinich/foodgram-backend/internal/types"
)

// RecipeIngredientRepo reads the (ingredient, amount) rows of a recipe. The
// rows come back with the Ingredient preloaded so callers see the name and
// measurement unit without a second query.
type RecipeIngredientRepo interface {
	GetByRecipeID(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID) ([]*types.RecipeIngredient, error)
	ReplaceForRecipe(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID, rows []*types.RecipeIngredient) error
}

type recipeIngredientRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecipeIngredientRepo(db *gorm.DB, baseLog *logger.Logger) RecipeIngredientRepo {
	return &recipeIngredientRepo{db: db, log: baseLog.With("repo", "RecipeIngredientRepo")}
}

func (r *recipeIngredientRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *recipeIngredientRepo) GetByRecipeID(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID) ([]*types.RecipeIngredient, error) {
	var results []*types.RecipeIngredient
	if err := r.conn(tx).WithContext(ctx).
		Preload("Ingredient").
		Where("recipe_id = ?", recipeID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *recipeIngredientRepo) ReplaceForRecipe(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID, rows []*types.RecipeIngredient) error {
	conn := r.conn(tx).WithContext(ctx)
	if err := conn.Where("recipe_id = ?", recipeID).
		Delete(&types.RecipeIngredient{}).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	for _, row := range rows {
		row.RecipeID = recipeID
	}
	return conn.Create(&rows).Error
}
