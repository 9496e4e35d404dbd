package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/akulinich/foodgram-backend/internal/logger"
	"github.com/akulinich/foodgram-backend/internal/types"
)

type RecipeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, recipe *types.Recipe) (*types.Recipe, error)
	Update(ctx context.Context, tx *gorm.DB, recipe *types.Recipe) error
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Recipe, error)
	GetByAuthorIDs(ctx context.Context, tx *gorm.DB, authorIDs []uuid.UUID) ([]*types.Recipe, error)
	List(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.Recipe, int64, error)
	ReplaceTags(ctx context.Context, tx *gorm.DB, recipe *types.Recipe, tags []*types.Tag) error
}

type recipeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecipeRepo(db *gorm.DB, baseLog *logger.Logger) RecipeRepo {
	return &recipeRepo{db: db, log: baseLog.With("repo", "RecipeRepo")}
}

func (r *recipeRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *recipeRepo) Create(ctx context.Context, tx *gorm.DB, recipe *types.Recipe) (*types.Recipe, error) {
	if err := r.conn(tx).WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

func (r *recipeRepo) Update(ctx context.Context, tx *gorm.DB, recipe *types.Recipe) error {
	return r.conn(tx).WithContext(ctx).
		Model(recipe).
		Select("name", "image_path", "text", "cooking_time", "updated_at").
		Updates(recipe).Error
}

func (r *recipeRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Recipe{}).Error
}

func (r *recipeRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Recipe, error) {
	var result types.Recipe
	if err := r.conn(tx).WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients").
		Preload("Ingredients.Ingredient").
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *recipeRepo) GetByAuthorIDs(ctx context.Context, tx *gorm.DB, authorIDs []uuid.UUID) ([]*types.Recipe, error) {
	var results []*types.Recipe
	if len(authorIDs) == 0 {
		return results, nil
	}
	if err := r.conn(tx).WithContext(ctx).
		Where("author_id IN ?", authorIDs).
		Order("name").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *recipeRepo) List(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.Recipe, int64, error) {
	var total int64
	if err := r.conn(tx).WithContext(ctx).
		Model(&types.Recipe{}).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var results []*types.Recipe
	if err := r.conn(tx).WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients").
		Preload("Ingredients.Ingredient").
		Order("name").
		Offset(offset).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (r *recipeRepo) ReplaceTags(ctx context.Context, tx *gorm.DB, recipe *types.Recipe, tags []*types.Tag) error {
	return r.conn(tx).WithContext(ctx).
		Model(recipe).
		Association("Tags").
		Replace(tags)
}
